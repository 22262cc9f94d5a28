// Package icon renders status symbols in the variant picked by the icons.variant setting.
package icon

import (
	"github.com/natty-misc/ymd3/key"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

// Icon identifies a symbol in the registry.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Warn
	Lua
	Video
	Link
)

// variants lists the supported renderings, in the column order of glyphs.
var variants = []string{"emoji", "nerd", "plain", "kaomoji", "squares"}

type glyphs [5]string

var icons = map[Icon]glyphs{
	Success:  {"✅", "", "✓", "(^_^)", "🟩"},
	Fail:     {"❌", "", "✗", "(T_T)", "🟥"},
	Progress: {"⏳", "", "...", "(o_O)", "🟦"},
	Warn:     {"⚠️", "", "!", "(>_<)", "🟨"},
	Lua:      {"🌙", "", "lua", "(◕‿◕)", "🟪"},
	Video:    {"🎬", "", "#", "(•̀ᴗ•́)", "⬛"},
	Link:     {"🔗", "", "->", "(-_-)", "⬜"},
}

// AvailableVariants returns the accepted values of icons.variant.
func AvailableVariants() []string {
	return slices.Clone(variants)
}

// Get renders i in the configured variant, or returns "" for an unknown variant.
func Get(i Icon) string {
	column := slices.Index(variants, viper.GetString(key.IconsVariant))
	if column < 0 {
		return ""
	}
	return icons[i][column]
}

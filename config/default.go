package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/natty-misc/ymd3/color"
	"github.com/natty-misc/ymd3/constant"
	"github.com/natty-misc/ymd3/key"
	"github.com/natty-misc/ymd3/style"
	"github.com/spf13/viper"
)

// Field is a registered setting with its default value.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Env returns the environment variable overriding the field.
func (f *Field) Env() string {
	return strings.ToUpper(constant.App + "_" + EnvKeyReplacer.Replace(f.Key))
}

// Type names the Go type of the default value as shown to users.
func (f *Field) Type() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	default:
		return fmt.Sprintf("%T", f.Value)
	}
}

// Pretty renders the description, current value and default for a terminal.
func (f *Field) Pretty() string {
	label := style.Fg(color.Blue)
	row := func(name, value string) string {
		return fmt.Sprintf("%s %s\n", label(fmt.Sprintf("%-8s", name+":")), value)
	}

	var b strings.Builder
	b.WriteString(style.Faint(f.Description) + "\n")
	b.WriteString(row("Key", style.Fg(color.Purple)(f.Key)))
	b.WriteString(row("Env", f.Env()))
	b.WriteString(row("Value", highlight(viper.Get(f.Key))))
	b.WriteString(row("Default", highlight(f.Value)))
	b.WriteString(row("Type", f.Type()))
	return strings.TrimSuffix(b.String(), "\n")
}

func highlight(v any) string {
	switch value := v.(type) {
	case bool:
		if value {
			return style.Fg(color.Green)("true")
		}
		return style.Fg(color.Red)("false")
	case string:
		return style.Fg(color.Yellow)(value)
	default:
		return fmt.Sprint(value)
	}
}

// MarshalJSON reports the current value next to the default.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"key":         f.Key,
		"value":       viper.Get(f.Key),
		"default":     f.Value,
		"description": f.Description,
		"type":        f.Type(),
	})
}

var fields = []Field{
	{key.ScriptsPath, "", "Directory containing extraction programs.\nEmpty means the default scripts directory, see \"ymd where --scripts\""},
	{key.ScriptsDefault, constant.DefaultScript, "Extraction program used when none is given"},
	{key.ScriptsBootstrap, constant.BootstrapScript, "Support program loaded before every extraction program"},
	{key.FetchTimeout, 0, "Timeout in seconds for a single retrieve call.\n0 disables the timeout"},
	{key.FetchFingerprint, false, "Mimic a Chrome TLS fingerprint when retrieving pages"},
	{key.FetchUserAgent, constant.UserAgent, "User-Agent header sent by retrieve"},
	{key.ExtractWorkers, 4, "Maximum number of extractions running at once"},
	{key.HistorySave, true, "Record successful extractions in the history"},
	{key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)"},
	{key.LogsWrite, false, "Write logs"},
	{key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace"},
	{key.LogsJson, false, "Use json format for logs"},
	{key.CliColored, true, "Enable colored CLI output"},
	{key.CliVersionCheck, false, "Enable automatic version check"},
}

// Default maps every setting key to its field.
var Default = func() map[string]Field {
	m := make(map[string]Field, len(fields))
	for _, f := range fields {
		if _, exists := m[f.Key]; exists {
			panic("duplicate config key: " + f.Key)
		}
		m[f.Key] = f
	}
	return m
}()

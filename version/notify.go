package version

import (
	"context"
	"fmt"

	"github.com/natty-misc/ymd3/color"
	"github.com/natty-misc/ymd3/constant"
	"github.com/natty-misc/ymd3/fetch"
	"github.com/natty-misc/ymd3/icon"
	"github.com/natty-misc/ymd3/key"
	"github.com/natty-misc/ymd3/style"
	"github.com/natty-misc/ymd3/util"
	"github.com/spf13/viper"
)

// Notify displays a terminal alert if a more recent stable application version is available.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	erase := util.PrintErasable(fmt.Sprintf("%s Checking if new version is available...", icon.Get(icon.Progress)))
	version, err := Latest(context.Background(), fetch.FromConfig())
	erase()
	if err != nil {
		return
	}

	if comp, err := Compare(version, constant.Version); err != nil || comp <= 0 {
		return
	}

	fmt.Printf(`
%s New version is available %s %s
%s

`,
		style.Fg(color.Yellow)(icon.Get(icon.Warn)),
		style.Bold(version),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint("https://github.com/"+constant.Repository+"/releases/tag/v"+version),
	)
}

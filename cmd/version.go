package cmd

import (
	"fmt"
	goruntime "runtime"
	"strings"

	"github.com/natty-misc/ymd3/color"
	"github.com/natty-misc/ymd3/constant"
	"github.com/natty-misc/ymd3/icon"
	"github.com/natty-misc/ymd3/style"
	"github.com/natty-misc/ymd3/version"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	lua "github.com/yuin/gopher-lua"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolP("short", "s", false, "Print only the version number")
}

// versionCmd prints the version together with build and runtime details.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build information",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		defer version.Notify()

		rows := []lo.Tuple2[string, string]{
			{A: "Version", B: constant.Version},
			{A: "Git Commit", B: constant.Revision},
			{A: "Build Date", B: strings.TrimSpace(constant.BuiltAt)},
			{A: "Built By", B: constant.BuiltBy},
			{A: "Engine", B: lua.LuaVersion + " (gopher-lua)"},
			{A: "Platform", B: goruntime.GOOS + "/" + goruntime.GOARCH},
		}

		cmd.Printf("%s %s\n\n", style.Fg(color.Purple)(icon.Get(icon.Video)), style.Fg(color.Purple)(constant.Name))
		for _, row := range rows {
			cmd.Printf("  %s %s\n", style.Faint(fmt.Sprintf("%-15s", row.A)), style.Bold(row.B))
		}
	},
}

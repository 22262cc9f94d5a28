package cmd

import (
	"github.com/natty-misc/ymd3/color"
	"github.com/natty-misc/ymd3/style"
	"github.com/natty-misc/ymd3/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// location is a path ymd reads or writes, selectable by a flag of the where command.
type location struct {
	title   string
	flag    string
	short   string
	resolve func() string
	// internal paths are only printed when asked for explicitly.
	internal bool
}

var locations = []location{
	{title: "Config", flag: "config", short: "c", resolve: where.Config},
	{title: "Scripts", flag: "scripts", short: "s", resolve: where.Scripts},
	{title: "Logs", flag: "logs", short: "l", resolve: where.Logs},
	{title: "Cache", flag: "cache", resolve: where.Cache, internal: true},
	{title: "History", flag: "history", resolve: where.History, internal: true},
}

func init() {
	rootCmd.AddCommand(whereCmd)

	for _, l := range locations {
		whereCmd.Flags().BoolP(l.flag, l.short, false, l.title+" path")
		if l.internal {
			lo.Must0(whereCmd.Flags().MarkHidden(l.flag))
		}
	}

	whereCmd.MarkFlagsMutuallyExclusive(lo.Map(locations, func(l location, _ int) string {
		return l.flag
	})...)
}

// whereCmd prints where ymd keeps its files.
var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where configuration, programs and logs are stored",
	Run: func(cmd *cobra.Command, args []string) {
		for _, l := range locations {
			if lo.Must(cmd.Flags().GetBool(l.flag)) {
				cmd.Println(l.resolve())
				return
			}
		}

		header := style.New().Bold(true).Foreground(color.HiPurple).Render
		visible := lo.Reject(locations, func(l location, _ int) bool {
			return l.internal
		})

		for i, l := range visible {
			cmd.Printf("%s %s\n%s\n", header(l.title+"?"), style.Fg(color.Yellow)("--"+l.flag), l.resolve())
			if i < len(visible)-1 {
				cmd.Println()
			}
		}
	},
}

package cmd

import (
	"encoding/json"

	"github.com/natty-misc/ymd3/color"
	"github.com/natty-misc/ymd3/history"
	"github.com/natty-misc/ymd3/icon"
	"github.com/natty-misc/ymd3/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	historyCmd.Flags().BoolP("clear", "c", false, "Delete every record")
	historyCmd.Flags().StringP("search", "s", "", "Only show records fuzzily matching the query")
	historyCmd.MarkFlagsMutuallyExclusive("json", "clear")
	historyCmd.MarkFlagsMutuallyExclusive("search", "clear")
}

// historyCmd lists previous successful extractions.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show previous successful extractions",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("clear")) {
			handleErr(history.Clear())
			cmd.Printf("%s history cleared\n", style.Fg(color.Green)(icon.Get(icon.Success)))
			return
		}

		records, err := history.Search(lo.Must(cmd.Flags().GetString("search")))
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			lo.Must0(encoder.Encode(records))
			return
		}

		if len(records) == 0 {
			cmd.Println(style.Faint("No extractions recorded yet"))
			return
		}

		for _, r := range records {
			cmd.Printf("%s %s %s\n",
				style.Faint(r.ExtractedAt.Format("2006-01-02 15:04")),
				style.Fg(color.Purple)(r.ID),
				style.Bold(r.Result.String()),
			)
			cmd.Printf("  %s %s %s\n", icon.Get(icon.Link), style.Fg(color.Yellow)(r.Program), r.Result.DownloadURL())
		}
	},
}

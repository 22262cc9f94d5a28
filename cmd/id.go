package cmd

import (
	"github.com/natty-misc/ymd3/retriever"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(idCmd)
}

// idCmd prints the canonical identifiers of URLs without extracting them.
var idCmd = &cobra.Command{
	Use:     "id [urls...]",
	Short:   "Print the canonical identifier found in each URL",
	Args:    cobra.MinimumNArgs(1),
	Example: "  ymd id https://www.youtube.com/watch?v=dQw4w9WgXcQ&feature=share",
	Run: func(cmd *cobra.Command, args []string) {
		for _, url := range args {
			id, err := retriever.Normalize(url)
			handleErr(err)
			cmd.Println(id)
		}
	},
}

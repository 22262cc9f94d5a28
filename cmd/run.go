package cmd

import (
	"encoding/json"

	"github.com/natty-misc/ymd3/identifier"
	"github.com/natty-misc/ymd3/log"
	"github.com/natty-misc/ymd3/open"
	"github.com/natty-misc/ymd3/script"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolP("json", "j", false, "Format the result as JSON")
	runCmd.Flags().BoolP("open", "o", false, "Open the first download URL with the default handler")
	runCmd.ValidArgsFunction = completionPrograms
}

// runCmd runs one program against one identifier with the program log on stderr.
var runCmd = &cobra.Command{
	Use:   "run [program] [id or url]",
	Short: "Run an extraction program and print its log",
	Long: `Run a single extraction program against a canonical identifier, printing everything
the program logs to stderr. Useful for program development and debugging.
A URL is accepted too and normalized first.`,
	Args:    cobra.ExactArgs(2),
	Example: "  ymd run youtube dQw4w9WgXcQ",
	Run: func(cmd *cobra.Command, args []string) {
		name, id := args[0], args[1]

		if !identifier.Valid(id) {
			normalized, err := identifier.Normalize(id)
			handleErr(err)
			id = normalized
		}

		s, err := script.New(runtime, name, script.Options{Logger: log.Stderr(name)})
		handleErr(err)

		result, err := s.Extract(cmd.Context(), id)
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("open")) {
			handleErr(open.Start(result.DownloadURL()))
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			lo.Must0(encoder.Encode(result))
			return
		}

		printResult(cmd, result)
	},
}

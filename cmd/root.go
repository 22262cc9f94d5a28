// Package cmd implements the command-line interface for ymd.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/natty-misc/ymd3/color"
	"github.com/natty-misc/ymd3/constant"
	"github.com/natty-misc/ymd3/engine"
	"github.com/natty-misc/ymd3/icon"
	"github.com/natty-misc/ymd3/key"
	"github.com/natty-misc/ymd3/log"
	"github.com/natty-misc/ymd3/media"
	"github.com/natty-misc/ymd3/retriever"
	"github.com/natty-misc/ymd3/script"
	"github.com/natty-misc/ymd3/scripts"
	"github.com/natty-misc/ymd3/style"
	"github.com/natty-misc/ymd3/util"
	"github.com/natty-misc/ymd3/version"
	"github.com/natty-misc/ymd3/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// runtime creates the execution contexts of every command. Set by Execute.
var runtime engine.Runtime

func completionPrograms(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	names, err := scripts.List(where.Scripts())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func init() {
	rootCmd.Run = runRoot

	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().BoolP("write-history", "H", true, "Record successful extractions in the history")
	lo.Must0(viper.BindPFlag(key.HistorySave, rootCmd.PersistentFlags().Lookup("write-history")))

	rootCmd.PersistentFlags().String("scripts", "", "Directory containing extraction programs")
	lo.Must0(viper.BindPFlag(key.ScriptsPath, rootCmd.PersistentFlags().Lookup("scripts")))

	rootCmd.Flags().StringP("program", "p", "", "Extraction program to run")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("program", completionPrograms))
	lo.Must0(viper.BindPFlag(key.ScriptsDefault, rootCmd.Flags().Lookup("program")))

	rootCmd.Flags().IntP("workers", "w", 0, "Maximum number of extractions running at once")
	lo.Must0(viper.BindPFlag(key.ExtractWorkers, rootCmd.Flags().Lookup("workers")))

	rootCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})
}

// rootCmd extracts every URL given on the command line.
var rootCmd = &cobra.Command{
	Use:   constant.App + " [urls...]",
	Short: "Extract downloadable media metadata from video pages",
	Long: style.New().Bold(true).Foreground(color.HiRed).Render(constant.Name) + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Extract downloadable media metadata with small, site-specific Lua programs"),
	Example: "  ymd https://youtu.be/dQw4w9WgXcQ\n  ymd -p youtube --json https://www.youtube.com/watch?v=dQw4w9WgXcQ",
	Args:    cobra.ArbitraryArgs,
}

func runRoot(cmd *cobra.Command, args []string) {
	if lo.Must(cmd.Flags().GetBool("version")) {
		versionCmd.Run(versionCmd, args)
		return
	}

	if len(args) == 0 {
		handleErr(cmd.Help())
		return
	}

	program := viper.GetString(key.ScriptsDefault)
	outcomes := retriever.New(runtime, script.Options{}).Batch(cmd.Context(), args, program)

	failed := lo.CountBy(outcomes, func(o retriever.Outcome) bool {
		return o.Err != nil
	})

	if lo.Must(cmd.Flags().GetBool("json")) {
		printOutcomesJSON(cmd, outcomes)
	} else {
		printOutcomes(cmd, outcomes, failed)
	}

	if failed > 0 {
		panic(exitCode(1))
	}
}

func printOutcomes(cmd *cobra.Command, outcomes []retriever.Outcome, failed int) {
	for i, o := range outcomes {
		if o.Err != nil {
			log.Errorf("extraction of %s failed: %s", o.URL, o.Err)
			cmd.Printf("%s %s\n%s\n", style.Fg(color.Red)(icon.Get(icon.Fail)), style.Bold(o.URL), strings.TrimSpace(o.Err.Error()))
		} else {
			printResult(cmd, o.Result)
		}

		if i < len(outcomes)-1 {
			cmd.Println()
		}
	}

	if len(outcomes) > 1 {
		succeeded := len(outcomes) - failed
		cmd.Println()
		cmd.Println(style.Faint(fmt.Sprintf("%s of %s extracted", util.Quantify(succeeded, "video", "videos"), util.Quantify(len(outcomes), "URL", "URLs"))))
	}
}

func printResult(cmd *cobra.Command, result *media.Result) {
	cmd.Printf("%s %s\n", style.Fg(color.Green)(icon.Get(icon.Video)), style.Bold(result.String()))
	cmd.Print(style.Faint(result.Details()))
}

func printOutcomesJSON(cmd *cobra.Command, outcomes []retriever.Outcome) {
	type entry struct {
		URL    string        `json:"url"`
		Result *media.Result `json:"result,omitempty"`
		Error  string        `json:"error,omitempty"`
	}

	entries := lo.Map(outcomes, func(o retriever.Outcome, _ int) entry {
		e := entry{URL: o.URL, Result: o.Result}
		if o.Err != nil {
			e.Error = o.Err.Error()
		}
		return e
	})

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	lo.Must0(encoder.Encode(entries))
}

// exitCode unwinds a command with the given process exit code.
// Execute recovers it so main can close the engine before exiting.
type exitCode int

// Execute initializes child command routing and processes the CLI entry point.
// Interrupts cancel running extractions. It returns the process exit code.
func Execute(rt engine.Runtime) (code int) {
	runtime = rt

	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	defer func() {
		if r := recover(); r != nil {
			exit, ok := r.(exitCode)
			if !ok {
				panic(r)
			}
			code = int(exit)
		}
	}()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(rootCmd.ErrOrStderr(), err)
		return 1
	}
	return 0
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(rootCmd.ErrOrStderr(), "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		panic(exitCode(1))
	}
}

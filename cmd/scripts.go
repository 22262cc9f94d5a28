package cmd

import (
	"fmt"
	"os"
	"os/user"

	"github.com/natty-misc/ymd3/color"
	"github.com/natty-misc/ymd3/icon"
	"github.com/natty-misc/ymd3/key"
	"github.com/natty-misc/ymd3/scripts"
	"github.com/natty-misc/ymd3/style"
	"github.com/natty-misc/ymd3/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(scriptsCmd)
}

// scriptsCmd provides a parent command for managing extraction programs.
var scriptsCmd = &cobra.Command{
	Use:   "scripts",
	Short: "Manage extraction programs",
}

func init() {
	scriptsCmd.AddCommand(scriptsListCmd)
	scriptsListCmd.Flags().BoolP("raw", "r", false, "Suppress the header in the output")
}

// scriptsListCmd displays the programs found in the script root.
var scriptsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the installed extraction programs",
	Run: func(cmd *cobra.Command, args []string) {
		names, err := scripts.List(where.Scripts())
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("raw")) {
			for _, name := range names {
				cmd.Println(name)
			}
			return
		}

		cmd.Println(style.New().Foreground(color.HiBlue).Bold(true).Render("Installed:"))

		bootstrap := viper.GetString(key.ScriptsBootstrap)
		for _, name := range names {
			if name == bootstrap {
				cmd.Println(name + style.Faint(" (bootstrap)"))
				continue
			}
			cmd.Println(style.Fg(color.Blue)(icon.Get(icon.Lua)), name)
		}
	},
}

func init() {
	scriptsCmd.AddCommand(scriptsInstallCmd)
	scriptsInstallCmd.Flags().BoolP("force", "f", false, "Overwrite programs that already exist")
}

// scriptsInstallCmd writes the bundled programs to the script root.
var scriptsInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the bundled bootstrap and extraction programs",
	Run: func(cmd *cobra.Command, args []string) {
		written, err := scripts.Install(where.Scripts(), lo.Must(cmd.Flags().GetBool("force")))
		handleErr(err)

		if len(written) == 0 {
			cmd.Println(style.Faint("Everything is already installed, use --force to overwrite"))
			return
		}

		for _, path := range written {
			cmd.Printf("%s installed %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), path)
		}
	},
}

func init() {
	scriptsCmd.AddCommand(scriptsRemoveCmd)

	scriptsRemoveCmd.Flags().StringArrayP("name", "n", []string{}, "Name of the program(s) to remove")
	lo.Must0(scriptsRemoveCmd.MarkFlagRequired("name"))
	lo.Must0(scriptsRemoveCmd.RegisterFlagCompletionFunc("name", completionPrograms))
}

// scriptsRemoveCmd deletes programs from the script root.
var scriptsRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove extraction programs",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range lo.Must(cmd.Flags().GetStringArray("name")) {
			handleErr(scripts.Remove(where.Scripts(), name))
			cmd.Printf("%s successfully removed %s\n", icon.Get(icon.Success), style.Fg(color.Yellow)(name))
		}
	},
}

func init() {
	scriptsCmd.AddCommand(scriptsGenCmd)

	scriptsGenCmd.Flags().StringP("name", "n", "", "Name of the new program")
	scriptsGenCmd.Flags().StringP("url", "u", "", "Page URL the identifier is appended to")

	lo.Must0(scriptsGenCmd.MarkFlagRequired("name"))
	lo.Must0(scriptsGenCmd.MarkFlagRequired("url"))
}

// scriptsGenCmd scaffolds a new program from the template.
var scriptsGenCmd = &cobra.Command{
	Use:   "gen",
	Short: "Scaffold a new extraction program",
	Run: func(cmd *cobra.Command, args []string) {
		author := "Anonymous"
		if usr, err := user.Current(); err == nil {
			author = usr.Username
		}

		target, err := scripts.Generate(where.Scripts(), scripts.Scaffold{
			Name:   lo.Must(cmd.Flags().GetString("name")),
			URL:    lo.Must(cmd.Flags().GetString("url")),
			Author: author,
		})
		handleErr(err)

		fmt.Fprintln(os.Stdout, target)
	},
}

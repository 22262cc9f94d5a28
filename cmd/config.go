package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/natty-misc/ymd3/color"
	"github.com/natty-misc/ymd3/config"
	"github.com/natty-misc/ymd3/constant"
	"github.com/natty-misc/ymd3/filesystem"
	"github.com/natty-misc/ymd3/icon"
	"github.com/natty-misc/ymd3/style"
	"github.com/natty-misc/ymd3/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

func errUnknownKey(key string) error {
	closest := lo.MinBy(lo.Keys(config.Default), func(a string, b string) bool {
		return levenshtein.Distance(key, a) < levenshtein.Distance(key, b)
	})

	return fmt.Errorf(
		"unknown key %s, did you mean %s?",
		style.Fg(color.Red)(key),
		style.Fg(color.Yellow)(closest),
	)
}

func completionConfigKeys(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return lo.Keys(config.Default), cobra.ShellCompDirectiveNoFileComp
}

func configPath() string {
	return filepath.Join(where.Config(), constant.App+".toml")
}

// writeConfig persists viper's state, creating the file on first use.
func writeConfig() error {
	err := viper.WriteConfig()
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		return viper.SafeWriteConfig()
	}
	return err
}

// keyArg takes the key from the first argument or the --key flag.
func keyArg(cmd *cobra.Command, args []string) string {
	key := lo.Must(cmd.Flags().GetString("key"))
	if len(args) > 0 {
		key = args[0]
	}

	if key == "" {
		handleErr(errors.New("key is required as an argument or --key flag"))
	}

	if _, ok := config.Default[key]; !ok {
		handleErr(errUnknownKey(key))
	}

	return key
}

func init() {
	rootCmd.AddCommand(configCmd)
}

// configCmd serves as the parent command for managing application configuration.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage application configuration settings and defaults",
}

func init() {
	configCmd.AddCommand(configInfoCmd)
	configInfoCmd.Flags().StringSliceP("key", "k", []string{}, "Specify the configuration keys to retrieve information for")
	configInfoCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON string")
	_ = configInfoCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)
}

// configInfoCmd displays metadata and descriptions for configuration fields.
var configInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Display detailed information and descriptions for specified configuration fields",
	Run: func(cmd *cobra.Command, args []string) {
		keys := lo.Must(cmd.Flags().GetStringSlice("key"))
		fields := lo.Values(config.Default)

		if len(keys) > 0 {
			fields = lo.Map(keys, func(key string, _ int) config.Field {
				field, ok := config.Default[key]
				if !ok {
					handleErr(errUnknownKey(key))
				}
				return field
			})
		}

		slices.SortFunc(fields, func(a, b config.Field) int {
			return strings.Compare(a.Key, b.Key)
		})

		if lo.Must(cmd.Flags().GetBool("json")) {
			lo.Must0(json.NewEncoder(cmd.OutOrStdout()).Encode(lo.ToSlicePtr(fields)))
			return
		}

		for i, field := range fields {
			cmd.Print(field.Pretty())

			if i < len(fields)-1 {
				cmd.Println()
				cmd.Println()
			}
		}
		cmd.Println()
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configSetCmd.Flags().StringP("key", "k", "", "The configuration key to update")
	configSetCmd.Flags().StringSliceP("value", "v", []string{}, "The new value to assign to the configuration key")
	_ = configSetCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)
}

// configSetCmd updates the value of a specific configuration key.
var configSetCmd = &cobra.Command{
	Use:               "set [key] [value]",
	Short:             "Update the value of a specified configuration key",
	Args:              cobra.MaximumNArgs(2),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		key := keyArg(cmd, args)

		value := lo.Must(cmd.Flags().GetStringSlice("value"))
		if len(args) >= 2 {
			value = args[1:]
		}
		if len(value) == 0 {
			handleErr(errors.New("value is required as an argument or --value flag"))
		}

		var v any
		switch config.Default[key].Value.(type) {
		case string:
			v = value[0]
		case int:
			parsed, err := strconv.Atoi(value[0])
			if err != nil {
				handleErr(fmt.Errorf("invalid integer value: %s", value[0]))
			}
			v = parsed
		case bool:
			parsed, err := strconv.ParseBool(value[0])
			if err != nil {
				handleErr(fmt.Errorf("invalid boolean value: %s", value[0]))
			}
			v = parsed
		case []string:
			v = value
		}

		viper.Set(key, v)
		handleErr(writeConfig())

		cmd.Printf(
			"%s set %s to %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Purple)(key),
			style.Fg(color.Yellow)(fmt.Sprint(v)),
		)
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configGetCmd.Flags().StringP("key", "k", "", "The specific configuration key to retrieve")
	_ = configGetCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)
}

// configGetCmd retrieves the current value of a configuration key.
var configGetCmd = &cobra.Command{
	Use:               "get [key]",
	Short:             "Retrieve the current value of a specified configuration key",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(viper.Get(keyArg(cmd, args)))
	},
}

func init() {
	configCmd.AddCommand(configWriteCmd)
	configWriteCmd.Flags().BoolP("force", "f", false, "Forcefully overwrite the existing configuration file")
}

// configWriteCmd serializes the current in-memory configuration to disk.
var configWriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Persist the current in-memory configuration to the config file",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("force")) {
			if err := filesystem.API().Remove(configPath()); !errors.Is(err, os.ErrNotExist) {
				handleErr(err)
			}
		}

		handleErr(viper.SafeWriteConfig())
		cmd.Printf("%s wrote config to %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), configPath())
	},
}

func init() {
	configCmd.AddCommand(configDeleteCmd)
}

// configDeleteCmd removes the configuration file.
var configDeleteCmd = &cobra.Command{
	Use:     "delete",
	Short:   "Permanently remove the configuration file",
	Aliases: []string{"remove"},
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(filesystem.API().Remove(configPath()))
		cmd.Printf("%s deleted config\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}

func init() {
	configCmd.AddCommand(configResetCmd)

	configResetCmd.Flags().StringP("key", "k", "", "The configuration key to restore to its default value")
	configResetCmd.Flags().BoolP("all", "a", false, "Restore all configuration settings to their defaults")
	configResetCmd.MarkFlagsMutuallyExclusive("key", "all")
	configResetCmd.MarkFlagsOneRequired("key", "all")
	_ = configResetCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)
}

// configResetCmd restores configuration keys to their default values.
var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore configuration keys to their default values",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("all")) {
			for key, field := range config.Default {
				viper.Set(key, field.Value)
			}
			handleErr(writeConfig())
			cmd.Printf("%s reset all config values\n", style.Fg(color.Green)(icon.Get(icon.Success)))
			return
		}

		key := keyArg(cmd, nil)
		viper.Set(key, config.Default[key].Value)
		handleErr(writeConfig())

		cmd.Printf(
			"%s reset %s to default value %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Purple)(key),
			style.Fg(color.Yellow)(fmt.Sprint(config.Default[key].Value)),
		)
	},
}

package cmd

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vishav1771/signac-flow/internal/config"
	"github.com/vishav1771/signac-flow/internal/utils"
)

var showPath bool

// configKeys is the list of known configuration keys for shell completion
var configKeys = []string{
	"project_file",
	"script_dir",
	"golden_dir",
	"environment",
	"scheduler_bin",
	"bundle_size",
}

// configKeysCompletion returns config keys for shell completion
func configKeysCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return configKeys, cobra.ShellCompDirectiveNoFileComp
	}
	if len(args) == 1 && args[0] == "environment" {
		return environmentCompletion(cmd, nil, toComplete)
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

// envVarName maps a config key to its environment variable (bundle_size -> FLOW_BUNDLE_SIZE).
func envVarName(key string) string {
	return config.EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// getConfigEnvVars returns the environment variable names of the known keys, sorted.
func getConfigEnvVars() []string {
	vars := make([]string, 0, len(configKeys))
	for _, key := range configKeys {
		vars = append(vars, envVarName(key))
	}
	slices.Sort(vars)
	return vars
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage flow configuration",
	Long: `Manage flow configuration settings.

Configuration file priority (highest to lowest):
  1. Command-line flags
  2. Environment variables (FLOW_*)
  3. User config file (~/.config/flow/config.yaml)
  4. Home config file (~/.flow/config.yaml)
  5. System config file (/etc/flow/config.yaml)
  6. ./config.yaml
  7. Defaults

Additional environments are declared under the "environments" key.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Run: func(cmd *cobra.Command, args []string) {
		if showPath {
			configPath, err := config.GetUserConfigPath()
			if err != nil {
				utils.PrintError("Failed to get config path: %v", err)
				os.Exit(1)
			}
			fmt.Fprintln(utils.Stdout, configPath)
			return
		}
		w := utils.Stdout

		fmt.Fprintln(w, utils.StyleTitle("Config File Search Paths:"))
		used := viper.ConfigFileUsed()
		for i, dir := range config.SearchPaths() {
			fmt.Fprintf(w, "  %d. %s\n", i+1, dir)
		}
		if used != "" {
			fmt.Fprintf(w, "  %s %s\n", utils.StyleSuccess("in use:"), utils.StylePath(used))
		} else {
			fmt.Fprintf(w, "  %s (use 'flow config init' to create)\n", utils.StyleWarning("No config file found"))
		}
		fmt.Fprintln(w)

		fmt.Fprintln(w, utils.StyleTitle("Current Configuration:"))
		fmt.Fprintf(w, "  project_file:   %s\n", config.Global.ProjectFile)
		fmt.Fprintf(w, "  script_dir:     %s\n", config.Global.ScriptDir)
		fmt.Fprintf(w, "  golden_dir:     %s\n", config.Global.GoldenDir)
		fmt.Fprintf(w, "  environment:    %s\n", config.Global.Environment)
		fmt.Fprintf(w, "  scheduler_bin:  %s\n", config.Global.SchedulerBin)
		fmt.Fprintf(w, "  bundle_size:    %d\n", config.Global.BundleSize)
		fmt.Fprintln(w)

		fmt.Fprintln(w, utils.StyleTitle("Configured Environments:"))
		envs, err := config.LoadEnvironments(viper.GetViper())
		switch {
		case err != nil:
			fmt.Fprintf(w, "  %s\n", utils.StyleError(err.Error()))
		case len(envs) == 0:
			fmt.Fprintf(w, "  %s\n", utils.StyleInfo("none"))
		default:
			for _, env := range envs {
				fmt.Fprintf(w, "  %s (%s, %d partitions)\n", utils.StyleName(env.Name), env.Scheduler, len(env.Partitions))
			}
		}
		fmt.Fprintln(w)

		fmt.Fprintln(w, utils.StyleTitle("Environment Variable Overrides:"))
		hasEnvOverrides := false
		for _, envVar := range getConfigEnvVars() {
			if val := os.Getenv(envVar); val != "" {
				fmt.Fprintf(w, "  %s=%s\n", envVar, val)
				hasEnvOverrides = true
			}
		}
		if !hasEnvOverrides {
			fmt.Fprintf(w, "  %s\n", utils.StyleInfo("none"))
		}
	},
}

var configGetCmd = &cobra.Command{
	Use:               "get <key>",
	Short:             "Get a configuration value",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: configKeysCompletion,
	Run: func(cmd *cobra.Command, args []string) {
		value := viper.Get(args[0])
		if value == nil {
			utils.PrintError("Unknown config key: %s", args[0])
			os.Exit(1)
		}
		fmt.Fprintln(utils.Stdout, value)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value and save to the user config file.

Examples:
  flow config set environment comet
  flow config set bundle_size 4
  flow config set scheduler_bin /opt/slurm/bin/sbatch`,
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: configKeysCompletion,
	Run: func(cmd *cobra.Command, args []string) {
		key, value := args[0], args[1]

		if key == config.EnvironmentsKey {
			utils.PrintError("'%s' is a list setting. Edit the config file directly.", key)
			os.Exit(1)
		}
		if !slices.Contains(configKeys, key) {
			utils.PrintWarning("Warning: '%s' is not a standard config key", key)
		}

		viper.Set(key, value)
		if err := config.SaveConfig(); err != nil {
			utils.PrintError("Failed to save config: %v", err)
			os.Exit(1)
		}

		configPath, _ := config.GetUserConfigPath()
		utils.PrintSuccess("Set %s = %s", utils.StyleInfo(key), utils.StyleInfo(value))
		utils.PrintNote("Config saved to: %s", configPath)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a user config file with defaults",
	Run: func(cmd *cobra.Command, args []string) {
		configPath, err := config.GetUserConfigPath()
		if err != nil {
			utils.PrintError("Failed to get config path: %v", err)
			os.Exit(1)
		}
		if _, err := os.Stat(configPath); err == nil {
			utils.PrintWarning("Config file already exists: %s", configPath)
			utils.PrintHint("Use 'flow config set <key> <value>' to change it")
			return
		}
		if err := config.SaveConfig(); err != nil {
			utils.PrintError("Failed to save config: %v", err)
			os.Exit(1)
		}
		utils.PrintSuccess("Created config file: %s", utils.StylePath(configPath))
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configGetCmd, configSetCmd, configInitCmd)
	configShowCmd.Flags().BoolVar(&showPath, "path", false, "Only print the user config file path")
}

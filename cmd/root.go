package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vishav1771/signac-flow/internal/config"
	"github.com/vishav1771/signac-flow/internal/scheduler"
	"github.com/vishav1771/signac-flow/internal/utils"
)

var (
	debugMode bool
	quietMode bool
)

var rootCmd = &cobra.Command{
	Use:           "flow",
	Short:         "flow: render and submit workflow operations as HPC batch scripts.",
	Version:       config.VERSION,
	SilenceErrors: true,

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Step 1: Load defaults
		config.LoadDefaults()

		// Step 2: Initialize Viper (read config file, env vars)
		if err := config.InitViper(); err != nil {
			utils.PrintWarning("%v", err)
		}

		// Step 3: Load values from Viper into Global config
		config.LoadFromViper()

		// Step 4: Apply command-line flags (highest priority)
		if quietMode {
			utils.QuietMode = true
			config.Global.Quiet = true
		}
		if debugMode {
			utils.DebugMode = true
			config.Global.Debug = true
			utils.PrintDebug("Debug mode enabled")
			utils.PrintDebug("flow Version: %s", utils.StyleInfo(config.VERSION))
			utils.PrintDebug("Project File: %s", config.Global.ProjectFile)
			utils.PrintDebug("Script Directory: %s", config.Global.ScriptDir)
			utils.PrintDebug("Default Environment: %s", config.Global.Environment)
			if config.Global.SchedulerBin != "" {
				utils.PrintDebug("Scheduler Binary: %s", config.Global.SchedulerBin)
			}
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra's automatic error printing is silenced. For submission errors
		// print the scheduler output (trimmed) after the message.
		var se *scheduler.SubmissionError
		if errors.As(err, &se) {
			utils.PrintError("%s submission failed for job %s: %v", se.Scheduler, se.JobName, se.Err)
			if out := strings.TrimSpace(se.Output); out != "" {
				fmt.Fprintln(os.Stderr, out)
			}
			os.Exit(1)
		}
		utils.PrintError("%v", err)
		os.Exit(1)
	}
}

func init() {
	// Subcommands are attached to rootCmd in their respective init() functions
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode with verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Only print warnings, errors and scripts")
}

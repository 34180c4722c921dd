package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vishav1771/signac-flow/internal/config"
	"github.com/vishav1771/signac-flow/internal/scheduler"
	"github.com/vishav1771/signac-flow/internal/utils"
)

var envsCmd = &cobra.Command{
	Use:     "envs [name]",
	Aliases: []string{"env"},
	Short:   "Display the known cluster environments",
	Long: `List the built-in and configured environments, or show the partitions
and defaults of one environment.`,
	Example: `  flow envs           # List environments
  flow envs comet     # Show comet partitions`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: environmentCompletion,
	SilenceUsage:      true,
	RunE:              runEnvs,
}

func init() {
	rootCmd.AddCommand(envsCmd)
}

func runEnvs(cmd *cobra.Command, args []string) error {
	registry, err := config.NewRegistry(viper.GetViper())
	if err != nil {
		return err
	}

	if len(args) == 0 {
		fmt.Fprintln(utils.Stdout, utils.StyleTitle("Environments:"))
		for _, env := range registry.Environments() {
			fmt.Fprintf(utils.Stdout, "  %-12s %-8s %s\n",
				utils.StyleName(env.Name), env.Scheduler, env.Description)
		}
		return nil
	}

	env, err := registry.Lookup(args[0])
	if err != nil {
		return err
	}
	printEnvironment(env)
	return nil
}

func printEnvironment(env *scheduler.Environment) {
	w := utils.Stdout
	fmt.Fprintln(w, utils.StyleTitle("Environment Information:"))
	fmt.Fprintf(w, "  Name:        %s\n", utils.StyleName(env.Name))
	fmt.Fprintf(w, "  Scheduler:   %s\n", utils.StyleInfo(env.Scheduler.String()))
	if bin := scheduler.SubmitBinary(env.Scheduler); bin != "" {
		fmt.Fprintf(w, "  Submit with: %s\n", utils.StyleCommand(bin))
	}
	if env.Description != "" {
		fmt.Fprintf(w, "  About:       %s\n", env.Description)
	}
	if env.DefaultWalltime != nil {
		fmt.Fprintf(w, "  Walltime:    %s (default)\n", utils.StyleNumber(env.DefaultWalltime.String()))
	}
	fmt.Fprintf(w, "  Bundling:    %v\n", env.SupportsBundling)
	if env.MaxJobNameLength > 0 {
		fmt.Fprintf(w, "  Name limit:  %s\n", utils.StyleNumber(env.MaxJobNameLength))
	}
	if env.MPILauncher != "" {
		fmt.Fprintf(w, "  MPI:         %s\n", utils.StyleCommand(env.MPILauncher))
	}

	if len(env.Partitions) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, utils.StyleTitle("Partitions:"))
	for _, p := range env.Partitions {
		var notes []string
		if p.MaxNodes > 0 {
			notes = append(notes, fmt.Sprintf("nodes %d-%d", p.MinNodes, p.MaxNodes))
		} else {
			notes = append(notes, fmt.Sprintf("nodes >= %d", p.MinNodes))
		}
		if p.CoresPerNode > 0 {
			notes = append(notes, fmt.Sprintf("%d cores/node", p.CoresPerNode))
		}
		if p.GPUOnly {
			notes = append(notes, "GPU only")
		}
		fmt.Fprintf(w, "  %s: %s\n", utils.StyleName(p.Name), strings.Join(notes, ", "))
	}
}

// environmentCompletion completes environment names.
func environmentCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	registry, err := config.NewRegistry(viper.GetViper())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return registry.Names(), cobra.ShellCompDirectiveNoFileComp
}

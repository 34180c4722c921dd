package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vishav1771/signac-flow/internal/config"
	"github.com/vishav1771/signac-flow/internal/project"
	"github.com/vishav1771/signac-flow/internal/submit"
	"github.com/vishav1771/signac-flow/internal/utils"
)

var (
	submitEnv        string
	submitOps        []string
	submitJobs       []string
	submitBundleSize int
	submitPartition  string
	submitWalltime   walltimeValue
	submitNodes      int
	submitParallel   bool
	submitPretend    bool
	submitForce      bool
	submitProject    string
	submitScriptDir  string
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Render and submit operations to a cluster scheduler",
	Long: `Render batch scripts for the selected operations and jobs and submit them.

Operations and jobs default to everything in the project file. Jobs are
selected by ID prefix. With --pretend the scripts are printed instead of
submitted.`,
	Example: `  flow submit --env comet -o mpi_op --pretend          # Print the script
  flow submit --env comet -o mpi_op -o omp_op -b 2     # Two operations per script
  flow submit --env bridges -j 3f2a --walltime 2h      # One job, all operations
  flow submit --env titan --nn 2 --parallel --force    # Replace existing scripts`,
	SilenceUsage: true, // Runtime errors should not show usage
	RunE:         runSubmit,
}

func init() {
	rootCmd.AddCommand(submitCmd)

	f := submitCmd.Flags()
	f.StringVarP(&submitEnv, "env", "e", "", "Target environment (default from config)")
	f.StringSliceVarP(&submitOps, "operation", "o", nil, "Operation to submit (repeatable, default all)")
	f.StringSliceVarP(&submitJobs, "job", "j", nil, "Job ID prefix (repeatable, default all)")
	f.IntVarP(&submitBundleSize, "bundle-size", "b", 0, "Operations per script (0 = all in one script)")
	f.StringVarP(&submitPartition, "partition", "p", "", "Partition/queue (default: first compatible)")
	f.Var(&submitWalltime, "walltime", "Walltime: hours (1, 0.5), Go duration (90m) or HH:MM:SS")
	f.IntVar(&submitNodes, "nn", 0, "Number of nodes (default: estimated)")
	f.BoolVar(&submitParallel, "parallel", false, "Run bundled operations in parallel within the script")
	f.BoolVar(&submitPretend, "pretend", false, "Print the scripts instead of submitting them")
	f.BoolVarP(&submitForce, "force", "f", false, "Overwrite existing script artifacts")
	f.StringVar(&submitProject, "project", "", "Project file (default from config)")
	f.StringVar(&submitScriptDir, "script-dir", "", "Directory for submitted scripts (default from config)")

	submitCmd.RegisterFlagCompletionFunc("env", environmentCompletion)
}

func runSubmit(cmd *cobra.Command, args []string) error {
	projectFile := firstNonEmpty(submitProject, config.Global.ProjectFile)
	p, err := project.Load(afero.NewOsFs(), projectFile)
	if err != nil {
		return err
	}
	utils.PrintDebug("Loaded project %s with %d operation(s) and %d job(s)",
		utils.StyleName(p.Name), len(p.Operations), len(p.Jobs))

	requests, err := submit.Select(p, submitOps, submitJobs)
	if err != nil {
		return err
	}

	registry, err := config.NewRegistry(viper.GetViper())
	if err != nil {
		return err
	}

	bundleSize := submitBundleSize
	if !cmd.Flags().Changed("bundle-size") {
		bundleSize = config.Global.BundleSize
	}
	opts := submit.Options{
		Project:   p.Name,
		Partition: submitPartition,
		Walltime:  submitWalltime.Duration(),
		Parallel:  submitParallel,
		Pretend:   submitPretend,
		Force:     submitForce,
	}
	if cmd.Flags().Changed("nn") {
		n := submitNodes
		opts.Nodes = &n
	}

	ctrl := &submit.Controller{
		Registry:  registry,
		Submitter: &submit.ExecSubmitter{Binary: config.Global.SchedulerBin},
		Store:     submit.NewArtifactStore(firstNonEmpty(submitScriptDir, config.Global.ScriptDir)),
	}
	if !submitPretend {
		utils.PrintMessage("Submitting %s request(s) from project %s",
			utils.StyleNumber(len(requests)), utils.StyleName(p.Name))
	}
	results, err := ctrl.Submit(cmd.Context(), submit.Submission{
		Environment: firstNonEmpty(submitEnv, config.Global.Environment),
		Requests:    requests,
		BundleSize:  bundleSize,
		Options:     opts,
	})
	for _, r := range results {
		if submitPretend {
			fmt.Fprint(utils.Stdout, r.Script.Text)
			fmt.Fprintln(utils.Stdout)
			continue
		}
		utils.PrintSuccess("Submitted %s as job %s", utils.StyleName(r.Script.Name), utils.StyleNumber(r.JobID))
		utils.PrintDebug("Script: %s", utils.StylePath(r.Path))
	}
	if err != nil {
		return err
	}
	if submitPretend {
		utils.PrintNote("Pretend mode: %d script(s) rendered, nothing submitted", len(results))
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

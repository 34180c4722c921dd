package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/vishav1771/signac-flow/internal/config"
	"github.com/vishav1771/signac-flow/internal/golden"
	"github.com/vishav1771/signac-flow/internal/utils"
)

var (
	goldenDir   string
	goldenForce bool
)

var goldenCmd = &cobra.Command{
	Use:   "golden",
	Short: "Generate or check the reference submission scripts",
	Long: `Render every reference case (environment x parameter set x operation) and
keep only the scheduler header and OMP_NUM_THREADS lines. The job-name hash
is stripped so the output is stable.`,
}

var goldenGenerateCmd = &cobra.Command{
	Use:          "generate",
	Short:        "Write the reference scripts",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := firstNonEmpty(goldenDir, config.Global.GoldenDir)
		n, err := golden.NewGenerator().Generate(afero.NewOsFs(), dir, golden.Cases(), goldenForce)
		if err != nil {
			return err
		}
		utils.PrintSuccess("Wrote %s reference scripts to %s", utils.StyleNumber(n), utils.StylePath(dir))
		return nil
	},
}

var goldenCheckCmd = &cobra.Command{
	Use:          "check",
	Short:        "Compare the current rendering with the reference scripts",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := firstNonEmpty(goldenDir, config.Global.GoldenDir)
		mismatches, err := golden.NewGenerator().Check(afero.NewOsFs(), dir, golden.Cases())
		if err != nil {
			return err
		}
		for _, m := range mismatches {
			if m.Missing {
				utils.PrintWarning("Missing: %s", utils.StylePath(m.Path))
				continue
			}
			utils.PrintWarning("Differs: %s", utils.StylePath(m.Path))
			utils.PrintDebug("Expected:\n%sActual:\n%s", m.Expected, m.Actual)
		}
		if len(mismatches) > 0 {
			return fmt.Errorf("%d reference script(s) out of date", len(mismatches))
		}
		utils.PrintSuccess("All reference scripts match")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(goldenCmd)
	goldenCmd.AddCommand(goldenGenerateCmd, goldenCheckCmd)

	goldenCmd.PersistentFlags().StringVarP(&goldenDir, "dir", "d", "", "Reference script directory (default from config)")
	goldenGenerateCmd.Flags().BoolVarP(&goldenForce, "force", "f", false, "Replace an existing directory")
}

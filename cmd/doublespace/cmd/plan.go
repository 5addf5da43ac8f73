package cmd

import (
	"fmt"

	"github.com/piwi3910/DoubleSpace/internal/engine"
	"github.com/piwi3910/DoubleSpace/internal/imaging"
	"github.com/piwi3910/DoubleSpace/internal/model"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan [inputs...]",
	Short: "Show where tiles would go without reading any pictures",
	Long: `Computes the sheets and placements a job would produce. Batch profiles
take their inputs from the arguments, from --dir, or from --count
placeholder names. Exports work on the planned layout.`,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().String("dir", "", "Plan a batch over the files in this directory")
	planCmd.Flags().Int("count", 0, "Plan a batch of this many pictures")
	planCmd.Flags().Bool("placements", false, "List every placement")
	addExportFlags(planCmd)
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	profile, err := resolveProfile(cmd, "")
	if err != nil {
		return err
	}

	inputs := args
	if dir := mustGetString(cmd, "dir"); dir != "" {
		listing, err := imaging.NewRaster().ListDirectory(dir)
		if err != nil {
			return err
		}
		inputs = append(inputs, listing...)
	}
	for i := 1; i <= mustGetInt(cmd, "count"); i++ {
		inputs = append(inputs, fmt.Sprintf("picture-%d", i))
	}
	if profile.Mode == model.ModeBatch && len(inputs) == 0 {
		return fmt.Errorf("batch profile %q needs inputs, --dir or --count", profile.Name)
	}

	result, err := engine.Plan(profile, inputs)
	if err != nil {
		return err
	}

	printResult(cmd, result)
	if mustGetBool(cmd, "placements") {
		out := cmd.OutOrStdout()
		for _, s := range result.Sheets {
			for _, p := range s.Placements {
				fmt.Fprintf(out, "  sheet %d  %-8s at (%4d, %4d) %4d x %-4d %s\n",
					s.Index, p.Tile, p.X, p.Y, p.Width, p.Height, p.Source)
			}
		}
	}
	return writeExports(cmd, result)
}

package cmd

import (
	"fmt"

	"github.com/piwi3910/DoubleSpace/internal/engine"
	"github.com/piwi3910/DoubleSpace/internal/model"
	"github.com/spf13/cobra"
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate how much paper a print run needs",
	Long: `Uses the capacity of the selected profile to work out how many sheets to
buy for a number of prints, with a waste allowance for misprints. Replicate
and batch profiles count tiles; composition profiles count pictures.`,
	RunE: runEstimate,
}

func init() {
	estimateCmd.Flags().Int("prints", 1, "Number of prints")
	estimateCmd.Flags().Float64("waste", 10, "Waste allowance in percent")
	estimateCmd.Flags().Float64("price", -1, "Price per sheet (defaults to the built-in price list)")
	rootCmd.AddCommand(estimateCmd)
}

// perSheet returns how many prints one sheet of the profile holds.
func perSheet(profile model.LayoutProfile) (int, error) {
	if profile.Mode == model.ModeComposition {
		return 1, nil
	}
	packer, err := engine.NewSheetPacker(profile.Paper, profile.Tile, profile.Margins)
	if err != nil {
		return 0, err
	}
	return packer.Capacity(), nil
}

func runEstimate(cmd *cobra.Command, args []string) error {
	profile, err := resolveProfile(cmd, "")
	if err != nil {
		return err
	}
	capacity, err := perSheet(profile)
	if err != nil {
		return err
	}

	price := mustGetFloat64(cmd, "price")
	if price < 0 {
		price = cfg.Prices.PaperPrice(profile.Paper.Name)
	}
	est := model.CalculatePaperEstimate(mustGetInt(cmd, "prints"), capacity, mustGetFloat64(cmd, "waste"), price)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Profile:        %s on %s\n", profile.Name, profile.Paper.Name)
	fmt.Fprintf(out, "Per sheet:      %d\n", est.PerSheet)
	fmt.Fprintf(out, "Sheets needed:  %d (%d empty slot(s) on the last sheet)\n", est.SheetsNeeded, est.EmptySlots)
	fmt.Fprintf(out, "With %.0f%% waste: %d\n", est.WastePercent, est.SheetsWithWaste)
	if est.PricePerSheet > 0 {
		fmt.Fprintf(out, "Estimated cost: %.2f (%.2f per sheet)\n", est.EstimatedCost, est.PricePerSheet)
	}
	return nil
}

package cmd

import (
	"fmt"

	"github.com/piwi3910/DoubleSpace/internal/engine"
	"github.com/piwi3910/DoubleSpace/internal/model"
	"github.com/piwi3910/DoubleSpace/internal/project"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare how many tiles fit on each paper size",
	Long: `For a tile size and spacing, lists the capacity of every built-in and
inventory paper and how many sheets a number of prints would need.`,
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().String("tile", "2R", "Tile size name")
	compareCmd.Flags().Int("interval", 50, "Gap between tiles in pixels")
	compareCmd.Flags().Int("offset", 100, "Inset of the first tile in pixels")
	compareCmd.Flags().Int("column-gap", 0, "Extra horizontal gap per column in pixels")
	compareCmd.Flags().Int("prints", 1, "Number of tiles to print")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	inv, err := project.LoadInventory(project.DefaultInventoryPath())
	if err != nil {
		return fmt.Errorf("failed to load inventory: %w", err)
	}

	tile, err := inv.ResolveTile(mustGetString(cmd, "tile"))
	if err != nil {
		return err
	}
	margins := model.Margins{
		Interval:    mustGetInt(cmd, "interval"),
		StartOffset: mustGetInt(cmd, "offset"),
		ColumnGap:   mustGetInt(cmd, "column-gap"),
	}
	prints := mustGetInt(cmd, "prints")

	papers := append([]model.PaperSpec{}, model.PaperSizes...)
	papers = append(papers, inv.Papers...)
	results := engine.ComparePapers(papers, tile, margins, prints)
	best, found := engine.BestPaper(results)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Tile %s (%d x %d px), %d print(s)\n", tile.Name, tile.Width, tile.Height, prints)
	fmt.Fprintf(out, "%-10s %6s %6s %8s %7s %9s\n", "Paper", "Cols", "Rows", "Per sheet", "Sheets", "Coverage")
	for _, r := range results {
		if !r.Fits {
			fmt.Fprintf(out, "%-10s does not fit: %s\n", r.Paper.Name, r.Reason)
			continue
		}
		marker := ""
		if found && r.Paper.Name == best.Paper.Name {
			marker = "  <- best"
		}
		fmt.Fprintf(out, "%-10s %6d %6d %8d %7d %8.1f%%%s\n",
			r.Paper.Name, r.Columns, r.Rows, r.Capacity, r.SheetsNeeded, r.Efficiency, marker)
	}
	if !found {
		return fmt.Errorf("tile %s does not fit on any paper", tile.Name)
	}
	return nil
}

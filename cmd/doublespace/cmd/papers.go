package cmd

import (
	"fmt"
	"strings"

	"github.com/piwi3910/DoubleSpace/internal/importer"
	"github.com/piwi3910/DoubleSpace/internal/model"
	"github.com/piwi3910/DoubleSpace/internal/project"
	"github.com/spf13/cobra"
)

var papersCmd = &cobra.Command{
	Use:   "papers",
	Short: "Manage paper and tile sizes",
}

var papersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List built-in and inventory paper and tile sizes",
	Args:  cobra.NoArgs,
	RunE:  runPapersList,
}

var papersImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import sizes from a CSV, XLSX or inventory JSON file",
	Long: `Reads paper and tile sizes from a spreadsheet with label, width and height
columns, plus optional kind and unit columns. Sizes are in pixels at 600 DPI
unless a unit (mm, cm, in) is given. Inventory JSON files are merged as is.`,
	Args: cobra.ExactArgs(1),
	RunE: runPapersImport,
}

func init() {
	papersImportCmd.Flags().String("kind", "paper", "Kind for rows without a kind column: paper or tile")
	papersCmd.AddCommand(papersListCmd, papersImportCmd)
	rootCmd.AddCommand(papersCmd)
}

func runPapersList(cmd *cobra.Command, args []string) error {
	inv, err := project.LoadInventory(project.DefaultInventoryPath())
	if err != nil {
		return fmt.Errorf("failed to load inventory: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Papers:")
	for _, p := range model.PaperSizes {
		fmt.Fprintf(out, "  %-12s %5d x %-5d built-in\n", p.Name, p.Width, p.Height)
	}
	for _, p := range inv.Papers {
		fmt.Fprintf(out, "  %-12s %5d x %-5d\n", p.Name, p.Width, p.Height)
	}
	fmt.Fprintln(out, "Tiles:")
	for _, t := range model.TileSizes {
		fmt.Fprintf(out, "  %-12s %5d x %-5d built-in\n", t.Name, t.Width, t.Height)
	}
	for _, t := range inv.Tiles {
		fmt.Fprintf(out, "  %-12s %5d x %-5d\n", t.Name, t.Width, t.Height)
	}
	return nil
}

func runPapersImport(cmd *cobra.Command, args []string) error {
	path := args[0]
	invPath := project.DefaultInventoryPath()
	inv, err := project.LoadInventory(invPath)
	if err != nil {
		return fmt.Errorf("failed to load inventory: %w", err)
	}

	out := cmd.OutOrStdout()
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		inv, err = project.ImportInventory(path, inv)
		if err != nil {
			return fmt.Errorf("failed to import inventory: %w", err)
		}
	} else {
		kind := importer.Kind(strings.ToLower(mustGetString(cmd, "kind")))
		if kind != importer.KindPaper && kind != importer.KindTile {
			return fmt.Errorf("--kind must be paper or tile, got %q", kind)
		}

		result := importer.ImportFile(path, kind)
		for _, w := range result.Warnings {
			logger.Warn(w, "file", path)
		}
		for _, e := range result.Errors {
			logger.Error(e, "file", path)
		}
		if result.Count() == 0 {
			return fmt.Errorf("no sizes imported from %s", path)
		}
		inv = project.MergeInventory(inv, result.Inventory())
		fmt.Fprintf(out, "Read %d paper(s) and %d tile(s)\n", len(result.Papers), len(result.Tiles))
	}

	if err := project.SaveInventory(invPath, inv); err != nil {
		return fmt.Errorf("failed to save inventory: %w", err)
	}
	fmt.Fprintf(out, "Inventory now has %d paper(s) and %d tile(s)\n", len(inv.Papers), len(inv.Tiles))
	return nil
}

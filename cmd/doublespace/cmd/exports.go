package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/piwi3910/DoubleSpace/internal/export"
	"github.com/piwi3910/DoubleSpace/internal/model"
	"github.com/spf13/cobra"
)

// addExportFlags registers the optional side outputs of a layout.
func addExportFlags(cmd *cobra.Command) {
	cmd.Flags().String("proof", "", "Write a PDF proof of the sheets to this path")
	cmd.Flags().String("labels", "", "Write a PDF of QR-coded sheet labels to this path")
	cmd.Flags().String("report", "", "Write an XLSX report of the layout to this path")
	cmd.Flags().String("cut-guide", "", "Write DXF cut guides (one per sheet) to this path")
}

func writeExports(cmd *cobra.Command, result model.LayoutResult) error {
	out := cmd.OutOrStdout()

	if path := mustGetString(cmd, "proof"); path != "" {
		if err := export.ExportProofPDF(path, result); err != nil {
			return fmt.Errorf("failed to export proof: %w", err)
		}
		fmt.Fprintf(out, "Proof: %s\n", path)
	}
	if path := mustGetString(cmd, "labels"); path != "" {
		if err := export.ExportSheetLabels(path, result); err != nil {
			return fmt.Errorf("failed to export labels: %w", err)
		}
		fmt.Fprintf(out, "Labels: %s\n", path)
	}
	if path := mustGetString(cmd, "report"); path != "" {
		if err := export.ExportReport(path, result); err != nil {
			return fmt.Errorf("failed to export report: %w", err)
		}
		fmt.Fprintf(out, "Report: %s\n", path)
	}
	if path := mustGetString(cmd, "cut-guide"); path != "" {
		written, err := export.ExportCutGuides(path, result)
		if err != nil {
			return fmt.Errorf("failed to export cut guide: %w", err)
		}
		for _, p := range written {
			fmt.Fprintf(out, "Cut guide: %s\n", p)
		}
	}
	return nil
}

// printResult summarises a finished or planned layout.
func printResult(cmd *cobra.Command, result model.LayoutResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Job %s (%s): %d sheet(s), %d tile(s), %.1f%% coverage\n",
		result.JobID, result.Profile, len(result.Sheets), result.TotalPlacements(), result.TotalEfficiency())
	for _, s := range result.Sheets {
		target := s.OutputPath
		if target == "" {
			target = "(not written)"
		}
		fmt.Fprintf(out, "  %2d  %-6s %2d tile(s)  %s\n", s.Index, s.Paper.Name, len(s.Placements), target)
	}
	for _, path := range result.Skipped {
		fmt.Fprintf(out, "  skipped: %s\n", filepath.Base(path))
	}
}

package cmd

import (
	"fmt"

	"github.com/piwi3910/DoubleSpace/internal/layout"
	"github.com/piwi3910/DoubleSpace/internal/model"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch [directory]",
	Short: "Print one copy of every picture in a directory",
	Long: `Lays out one tile per picture found in the directory, starting a new sheet
whenever the current one is full. Files that cannot be decoded are skipped.
The directory defaults to --input, then DOUBLESPACE_INPUT_DIR, then the
configured input directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().String("input", "", "Source directory")
	batchCmd.Flags().Bool("no-progress", false, "Disable the progress bar")
	addExportFlags(batchCmd)
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	dir := cfg.App.InputDir
	if in := mustGetString(cmd, "input"); in != "" {
		dir = in
	}
	if len(args) == 1 {
		dir = args[0]
	}

	var bar *progressbar.ProgressBar
	var onProgress func(layout.Progress)
	if !mustGetBool(cmd, "no-progress") {
		onProgress = func(p layout.Progress) {
			if bar == nil {
				bar = progressbar.NewOptions(p.Total,
					progressbar.OptionSetWriter(cmd.ErrOrStderr()),
					progressbar.OptionSetDescription("Laying out"),
					progressbar.OptionShowCount(),
					progressbar.OptionShowIts(),
					progressbar.OptionSetItsString("pictures"),
					progressbar.OptionShowElapsedTimeOnFinish(),
					progressbar.OptionFullWidth(),
				)
			}
			_ = bar.Add(1)
		}
	}

	result, err := runLayout(cmd, model.ModeBatch, "multi-images-2r", dir, onProgress)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return err
	}

	if len(result.Skipped) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%d file(s) skipped\n", len(result.Skipped))
	}
	return nil
}

package cmd

import (
	"github.com/piwi3910/DoubleSpace/internal/model"
	"github.com/spf13/cobra"
)

var composeCmd = &cobra.Command{
	Use:   "compose <image>",
	Short: "Print a fixed mix of tile sizes of one picture",
	Long:  `Places a picture in several sizes on one sheet, e.g. four 2x2 and four 1x1 ID photos on 5R.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCompose,
}

func init() {
	addExportFlags(composeCmd)
	rootCmd.AddCommand(composeCmd)
}

func runCompose(cmd *cobra.Command, args []string) error {
	_, err := runLayout(cmd, model.ModeComposition, "5r-2x2-1x1", args[0], nil)
	return err
}

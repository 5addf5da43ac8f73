package cmd

import (
	"github.com/piwi3910/DoubleSpace/internal/model"
	"github.com/spf13/cobra"
)

var replicateCmd = &cobra.Command{
	Use:   "replicate <image>",
	Short: "Fill one sheet with copies of a picture",
	Long: `Cuts the picture to the profile's tile size and repeats it across the
sheet until no more copies fit, e.g. 2R on 4R or 1.5x1.5 ID photos.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplicate,
}

func init() {
	addExportFlags(replicateCmd)
	rootCmd.AddCommand(replicateCmd)
}

func runReplicate(cmd *cobra.Command, args []string) error {
	_, err := runLayout(cmd, model.ModeReplicate, "", args[0], nil)
	return err
}

package cmd

import (
	"fmt"

	"github.com/piwi3910/DoubleSpace/internal/imaging"
	"github.com/piwi3910/DoubleSpace/internal/layout"
	"github.com/piwi3910/DoubleSpace/internal/model"
	"github.com/spf13/cobra"
)

// runLayout runs a single-picture or batch job with the resolved profile
// and writes any requested exports.
func runLayout(cmd *cobra.Command, mode model.Mode, fallback, input string, onProgress func(layout.Progress)) (model.LayoutResult, error) {
	profile, err := resolveProfile(cmd, fallback)
	if err != nil {
		return model.LayoutResult{}, err
	}
	if profile.Mode != mode {
		return model.LayoutResult{}, fmt.Errorf("profile %q is a %s layout, use the %s command", profile.Name, profile.Mode, profile.Mode)
	}

	job := layout.NewJob(profile, imaging.NewRaster(), cfg.App)
	job.Logger = logger
	job.OnProgress = onProgress

	logger.Debug("starting job", "job", job.ID(), "profile", profile.Name, "paper", profile.Paper.Name, "input", input)
	result, err := job.Run(cmd.Context(), input)
	if err != nil {
		return result, err
	}

	printResult(cmd, result)
	return result, writeExports(cmd, result)
}

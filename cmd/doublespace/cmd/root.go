package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/piwi3910/DoubleSpace/internal/config"
	"github.com/piwi3910/DoubleSpace/internal/model"
	"github.com/piwi3910/DoubleSpace/internal/project"
	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "doublespace",
	Short: "Lay out photo prints on standard paper sizes",
	Long: `DoubleSpace takes a picture (or a directory of pictures), cuts it to a
print size such as 2R or 2x2 and tiles the copies on a 4R, 5R, A4 or Letter
sheet ready for printing at 600 DPI.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().Bool("verbose", false, "Log debug diagnostics")
	rootCmd.PersistentFlags().String("output", "", "Output directory (overrides DOUBLESPACE_OUTPUT_DIR and the config file)")
	rootCmd.PersistentFlags().String("format", "", "Output format: jpeg or png")
	rootCmd.PersistentFlags().Int("quality", 0, "JPEG quality 1-100")
	rootCmd.PersistentFlags().String("paper", "", "Paper size to print on")
	rootCmd.PersistentFlags().String("profile", "", "Layout profile name")
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = config.LoadDotEnv()
}

// loadSettings resolves the effective configuration for every command:
// config file, then environment, then flags.
func loadSettings(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if mustGetBool(cmd, "verbose") {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	loaded, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config %s: %w", config.Path(), err)
	}
	cfg = loaded
	cfg.App = applyFlags(cmd, cfg.App)

	profiles, err := project.LoadCustomProfiles(project.DefaultProfilesPath())
	if err != nil {
		logger.Warn("ignoring unreadable custom profiles", "path", project.DefaultProfilesPath(), "error", err)
	}
	model.CustomProfiles = profiles

	return nil
}

func applyFlags(cmd *cobra.Command, app model.AppConfig) model.AppConfig {
	if cmd.Flags().Changed("output") {
		app.OutputDir = mustGetString(cmd, "output")
	}
	if cmd.Flags().Changed("format") {
		switch f := mustGetString(cmd, "format"); f {
		case "jpg", model.FormatJPEG:
			app.Format = model.FormatJPEG
		case model.FormatPNG:
			app.Format = model.FormatPNG
		default:
			logger.Warn("unknown output format, keeping configured one", "format", f, "using", app.Format)
		}
	}
	if cmd.Flags().Changed("quality") {
		app.Quality = mustGetInt(cmd, "quality")
	}
	if cmd.Flags().Changed("paper") {
		app.DefaultPaper = mustGetString(cmd, "paper")
	}
	return app.Normalize()
}

// resolveProfile picks the profile named by --profile, falling back to
// fallback and then to the configured default, and applies the paper
// choice. An explicit --paper the profile cannot use is an error; a paper
// coming from the config file or environment is ignored instead.
func resolveProfile(cmd *cobra.Command, fallback string) (model.LayoutProfile, error) {
	name := mustGetString(cmd, "profile")
	if name == "" {
		name = fallback
	}
	if name == "" {
		name = cfg.App.DefaultProfile
	}

	profile, err := model.GetProfile(name)
	if err != nil {
		return profile, err
	}

	withPaper, err := profile.WithPaper(cfg.App.DefaultPaper)
	if err != nil {
		if cmd.Flags().Changed("paper") {
			return profile, err
		}
		logger.Debug("configured paper not offered by profile", "paper", cfg.App.DefaultPaper, "profile", profile.Name)
		return profile, nil
	}
	return withPaper, nil
}

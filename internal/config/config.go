// Package config resolves the effective application settings from the
// config file, the environment and an optional .env file.
package config

import (
	_ "embed"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/piwi3910/DoubleSpace/internal/model"
	"github.com/piwi3910/DoubleSpace/internal/project"
	"gopkg.in/yaml.v3"
)

//go:embed prices.yaml
var pricesYAML []byte

// Environment variables recognised by Load.
const (
	EnvConfig    = "DOUBLESPACE_CONFIG"
	EnvOutputDir = "DOUBLESPACE_OUTPUT_DIR"
	EnvInputDir  = "DOUBLESPACE_INPUT_DIR"
	EnvQuality   = "DOUBLESPACE_QUALITY"
	EnvFormat    = "DOUBLESPACE_FORMAT"
	EnvPaper     = "DOUBLESPACE_PAPER"
)

type Config struct {
	Path   string          // Config file the settings were read from
	App    model.AppConfig // Effective settings after env overrides
	Prices PricesConfig
}

type PricesConfig struct {
	Papers map[string]float64 `yaml:"papers"`
}

// PaperPrice returns the default price of one sheet of the named paper, or 0
// when no price is known.
func (p PricesConfig) PaperPrice(name string) float64 {
	for k, v := range p.Papers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return 0
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

func envString(key, defaultVal string) string {
	if s := strings.TrimSpace(os.Getenv(key)); s != "" {
		return s
	}
	return defaultVal
}

// LoadDotEnv loads variables from the given .env files (or ./.env) without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	return godotenv.Load(present...)
}

// Path returns the config file location: DOUBLESPACE_CONFIG when set,
// otherwise ~/.doublespace/config.json.
func Path() string {
	return envString(EnvConfig, project.DefaultConfigPath())
}

// Load reads the config file and applies environment overrides on top.
func Load() (*Config, error) {
	var prices PricesConfig
	if err := yaml.Unmarshal(pricesYAML, &prices); err != nil {
		panic("failed to unmarshal embedded prices.yaml: " + err.Error())
	}

	path := Path()
	app, err := project.LoadAppConfig(path)
	if err != nil {
		return nil, err
	}

	return &Config{
		Path:   path,
		App:    ApplyEnv(app),
		Prices: prices,
	}, nil
}

// ApplyEnv overlays DOUBLESPACE_* environment variables onto cfg.
func ApplyEnv(cfg model.AppConfig) model.AppConfig {
	cfg.OutputDir = envString(EnvOutputDir, cfg.OutputDir)
	cfg.InputDir = envString(EnvInputDir, cfg.InputDir)
	cfg.DefaultPaper = envString(EnvPaper, cfg.DefaultPaper)
	cfg.Quality = envInt(EnvQuality, cfg.Quality)
	if f := strings.ToLower(envString(EnvFormat, "")); f != "" {
		switch f {
		case "jpg", model.FormatJPEG:
			cfg.Format = model.FormatJPEG
		case model.FormatPNG:
			cfg.Format = model.FormatPNG
		}
	}
	return cfg.Normalize()
}

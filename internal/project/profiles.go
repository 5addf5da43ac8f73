package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/piwi3910/DoubleSpace/internal/model"
)

// DefaultProfilesPath returns the default file path for custom profiles.
func DefaultProfilesPath() string {
	return filepath.Join(DefaultConfigDir(), "profiles.json")
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func marshalFor(path string, v any) ([]byte, error) {
	if isYAML(path) {
		return yaml.Marshal(v)
	}
	return json.MarshalIndent(v, "", "  ")
}

func unmarshalFor(path string, data []byte, v any) error {
	if isYAML(path) {
		return yaml.Unmarshal(data, v)
	}
	return json.Unmarshal(data, v)
}

// SaveCustomProfiles saves custom profiles to a JSON or YAML file, chosen
// by extension.
func SaveCustomProfiles(path string, profiles []model.LayoutProfile) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := marshalFor(path, profiles)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadCustomProfiles loads custom profiles from a JSON or YAML file.
// Returns an empty slice if the file does not exist.
func LoadCustomProfiles(path string) ([]model.LayoutProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.LayoutProfile{}, nil
		}
		return nil, err
	}

	var profiles []model.LayoutProfile
	if err := unmarshalFor(path, data, &profiles); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	// Ensure loaded profiles are not marked as built-in
	for i := range profiles {
		profiles[i].IsBuiltIn = false
	}
	return profiles, nil
}

// ExportProfile exports a single profile to a JSON or YAML file (for sharing).
func ExportProfile(path string, profile model.LayoutProfile) error {
	profile.IsBuiltIn = false
	data, err := marshalFor(path, profile)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ImportProfile imports a single profile from a JSON or YAML file. The
// profile must validate and must not reuse a built-in name.
func ImportProfile(path string) (model.LayoutProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.LayoutProfile{}, err
	}

	var profile model.LayoutProfile
	if err := unmarshalFor(path, data, &profile); err != nil {
		return model.LayoutProfile{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	profile.IsBuiltIn = false
	if profile.Name == "" {
		return model.LayoutProfile{}, errors.New("imported profile has no name")
	}
	if model.IsBuiltInName(profile.Name) {
		return model.LayoutProfile{}, &model.ConfigurationError{Reason: fmt.Sprintf("profile name %q is reserved for a built-in layout", profile.Name)}
	}
	if profile.Mode == "" {
		profile.Mode = model.ModeReplicate
	}
	if err := profile.Validate(); err != nil {
		return model.LayoutProfile{}, err
	}
	return profile, nil
}

// UpsertProfile adds profile to the list or replaces the entry with the
// same name, updating its timestamp.
func UpsertProfile(profiles []model.LayoutProfile, profile model.LayoutProfile) []model.LayoutProfile {
	profile.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	if profile.CreatedAt == "" {
		profile.CreatedAt = profile.UpdatedAt
	}
	for i := range profiles {
		if strings.EqualFold(profiles[i].Name, profile.Name) {
			profiles[i] = profile
			return profiles
		}
	}
	return append(profiles, profile)
}

package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/DoubleSpace/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func walletProfile() model.LayoutProfile {
	p := model.NewLayoutProfile("wallet", "wallet prints", model.Paper5R, model.Tile15x15, model.Margins{Interval: 25, StartOffset: 50})
	p.Shape = model.ShapeRule{RequireSquare: true, MinWidth: 450, MinHeight: 450}
	return p
}

func TestSaveAndLoadCustomProfiles(t *testing.T) {
	for _, name := range []string{"profiles.json", "profiles.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			composed := model.BuiltInProfiles[2]
			composed.Name = "my-composition"
			composed.IsBuiltIn = true

			require.NoError(t, SaveCustomProfiles(path, []model.LayoutProfile{walletProfile(), composed}))

			loaded, err := LoadCustomProfiles(path)
			require.NoError(t, err)
			require.Len(t, loaded, 2)

			assert.Equal(t, "wallet", loaded[0].Name)
			assert.Equal(t, model.Paper5R, loaded[0].Paper)
			assert.Equal(t, 25, loaded[0].Margins.Interval)
			assert.True(t, loaded[0].Shape.RequireSquare)

			require.NotNil(t, loaded[1].Composition)
			assert.Len(t, loaded[1].Composition.Rows, 3)
			assert.False(t, loaded[1].IsBuiltIn, "loaded profiles are never built-in")
		})
	}
}

func TestLoadCustomProfilesMissingFile(t *testing.T) {
	profiles, err := LoadCustomProfiles(filepath.Join(t.TempDir(), "none.json"))
	require.NoError(t, err)
	assert.NotNil(t, profiles)
	assert.Empty(t, profiles)
}

func TestLoadCustomProfilesInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yml")
	require.NoError(t, os.WriteFile(path, []byte("- name: [unclosed"), 0644))
	_, err := LoadCustomProfiles(path)
	assert.Error(t, err)
}

func TestExportAndImportProfile(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"wallet.json", "wallet.yaml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, ExportProfile(path, walletProfile()))

		imported, err := ImportProfile(path)
		require.NoError(t, err, name)
		assert.Equal(t, "wallet", imported.Name)
		assert.Equal(t, model.Tile15x15, imported.Tile)
		assert.Equal(t, model.FitExact, imported.Fit)
	}
}

func TestImportProfileRejectsBuiltInName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "2r.yaml")
	require.NoError(t, ExportProfile(path, model.BuiltInProfiles[0]))

	_, err := ImportProfile(path)
	var cfgErr *model.ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestImportProfileValidates(t *testing.T) {
	dir := t.TempDir()

	noName := filepath.Join(dir, "noname.json")
	require.NoError(t, os.WriteFile(noName, []byte(`{"description":"x"}`), 0644))
	_, err := ImportProfile(noName)
	assert.Error(t, err)

	badTile := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(badTile, []byte("name: odd\npaper: {name: 4R, width: 1200, height: 1800}\ntile: {name: x, width: 0, height: 10}\n"), 0644))
	_, err = ImportProfile(badTile)
	assert.Error(t, err)

	minimal := filepath.Join(dir, "minimal.yaml")
	require.NoError(t, os.WriteFile(minimal, []byte("name: stamps\npaper: {name: 4R, width: 1200, height: 1800}\ntile: {name: stamp, width: 200, height: 250}\nmargins: {interval: 20, start_offset: 40}\n"), 0644))
	p, err := ImportProfile(minimal)
	require.NoError(t, err)
	assert.Equal(t, model.ModeReplicate, p.Mode)
	assert.Equal(t, 40, p.Margins.StartOffset)
}

func TestUpsertProfile(t *testing.T) {
	var profiles []model.LayoutProfile
	profiles = UpsertProfile(profiles, walletProfile())
	require.Len(t, profiles, 1)
	assert.NotEmpty(t, profiles[0].UpdatedAt)

	changed := walletProfile()
	changed.Name = "WALLET"
	changed.Description = "updated"
	profiles = UpsertProfile(profiles, changed)
	require.Len(t, profiles, 1)
	assert.Equal(t, "updated", profiles[0].Description)
}

package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/DoubleSpace/internal/model"
)

// DefaultInventoryPath returns the default file path for the inventory file.
// This is located at ~/.doublespace/inventory.json.
func DefaultInventoryPath() string {
	return filepath.Join(DefaultConfigDir(), "inventory.json")
}

// SaveInventory writes the inventory to the specified JSON file.
// It creates parent directories if they do not exist.
func SaveInventory(path string, inv model.Inventory) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(inv, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadInventory reads the inventory from the specified JSON file.
// If the file does not exist, it returns the default inventory and saves it.
func LoadInventory(path string) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			inv := model.DefaultInventory()
			if saveErr := SaveInventory(path, inv); saveErr != nil {
				return inv, saveErr
			}
			return inv, nil
		}
		return model.Inventory{}, err
	}
	var inv model.Inventory
	if err := json.Unmarshal(data, &inv); err != nil {
		return model.Inventory{}, err
	}
	return inv, nil
}

// MergeInventory adds the imported papers and tiles to existing. Entries
// whose ID is already present are skipped; a matching name replaces the
// stored preset.
func MergeInventory(existing, imported model.Inventory) model.Inventory {
	paperIDs := make(map[string]bool, len(existing.Papers))
	for _, p := range existing.Papers {
		paperIDs[p.ID] = true
	}
	tileIDs := make(map[string]bool, len(existing.Tiles))
	for _, t := range existing.Tiles {
		tileIDs[t.ID] = true
	}

	for _, p := range imported.Papers {
		if p.ID != "" && paperIDs[p.ID] {
			continue
		}
		existing.AddPaper(p)
		paperIDs[p.ID] = true
	}
	for _, t := range imported.Tiles {
		if t.ID != "" && tileIDs[t.ID] {
			continue
		}
		existing.AddTile(t)
		tileIDs[t.ID] = true
	}
	return existing
}

// ImportInventory reads an inventory JSON file and merges it into existing.
func ImportInventory(path string, existing model.Inventory) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return existing, err
	}
	var imported model.Inventory
	if err := json.Unmarshal(data, &imported); err != nil {
		return existing, err
	}
	return MergeInventory(existing, imported), nil
}

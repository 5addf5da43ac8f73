package model

import "strings"

// Inventory holds the user's saved paper and tile presets. Built-in sizes
// are always available and are not stored here.
type Inventory struct {
	Papers []PaperSpec `json:"papers"`
	Tiles  []TileSpec  `json:"tiles"`
}

// DefaultInventory returns an inventory with a few common extra sizes.
func DefaultInventory() Inventory {
	return Inventory{
		Papers: []PaperSpec{
			NewPaperSpec("3R", 1050, 1500),
			NewPaperSpec("6R", 1800, 2400),
			NewPaperSpec("8R", 2400, 3000),
		},
		Tiles: []TileSpec{
			NewTileSpec("US Passport", 1200, 1200),
			NewTileSpec("35x45mm", 827, 1063),
		},
	}
}

// FindPaperByID returns a pointer to the paper with the given ID, or nil.
func (inv *Inventory) FindPaperByID(id string) *PaperSpec {
	for i := range inv.Papers {
		if inv.Papers[i].ID == id {
			return &inv.Papers[i]
		}
	}
	return nil
}

// FindTileByID returns a pointer to the tile with the given ID, or nil.
func (inv *Inventory) FindTileByID(id string) *TileSpec {
	for i := range inv.Tiles {
		if inv.Tiles[i].ID == id {
			return &inv.Tiles[i]
		}
	}
	return nil
}

// FindPaperByName returns a pointer to the first paper with the given name, or nil.
func (inv *Inventory) FindPaperByName(name string) *PaperSpec {
	for i := range inv.Papers {
		if strings.EqualFold(inv.Papers[i].Name, name) {
			return &inv.Papers[i]
		}
	}
	return nil
}

// FindTileByName returns a pointer to the first tile with the given name, or nil.
func (inv *Inventory) FindTileByName(name string) *TileSpec {
	for i := range inv.Tiles {
		if strings.EqualFold(inv.Tiles[i].Name, name) {
			return &inv.Tiles[i]
		}
	}
	return nil
}

// PaperNames returns the names of the saved papers.
func (inv *Inventory) PaperNames() []string {
	names := make([]string, len(inv.Papers))
	for i, p := range inv.Papers {
		names[i] = p.Name
	}
	return names
}

// TileNames returns the names of the saved tiles.
func (inv *Inventory) TileNames() []string {
	names := make([]string, len(inv.Tiles))
	for i, t := range inv.Tiles {
		names[i] = t.Name
	}
	return names
}

// AddPaper stores a paper, replacing any existing entry with the same name.
func (inv *Inventory) AddPaper(p PaperSpec) {
	if existing := inv.FindPaperByName(p.Name); existing != nil {
		*existing = p
		return
	}
	inv.Papers = append(inv.Papers, p)
}

// AddTile stores a tile, replacing any existing entry with the same name.
func (inv *Inventory) AddTile(t TileSpec) {
	if existing := inv.FindTileByName(t.Name); existing != nil {
		*existing = t
		return
	}
	inv.Tiles = append(inv.Tiles, t)
}

// ResolvePaper finds a paper among the built-ins first, then the inventory.
func (inv *Inventory) ResolvePaper(name string) (PaperSpec, error) {
	if p, err := LookupPaper(name); err == nil {
		return p, nil
	}
	if p := inv.FindPaperByName(name); p != nil {
		return *p, nil
	}
	return LookupPaper(name)
}

// ResolveTile finds a tile among the built-ins first, then the inventory.
func (inv *Inventory) ResolveTile(name string) (TileSpec, error) {
	if t, err := LookupTile(name); err == nil {
		return t, nil
	}
	if t := inv.FindTileByName(name); t != nil {
		return *t, nil
	}
	return LookupTile(name)
}

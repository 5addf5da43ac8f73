package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Mode selects how a layout job fills its sheets.
type Mode string

const (
	ModeReplicate   Mode = "replicate"   // Repeat one tile until the sheet is full
	ModeComposition Mode = "composition" // Fixed hand-specified placement list
	ModeBatch       Mode = "batch"       // One copy of each file from a directory
)

// FitMode controls how a source is scaled into its tile.
type FitMode string

const (
	FitExact  FitMode = "exact"  // Stretch to the tile size
	FitDerive FitMode = "derive" // Tile width, height from the source aspect ratio
	FitCover  FitMode = "cover"  // Scale to cover the tile, then center-crop
)

// RotationPolicy controls orientation correction before resizing.
type RotationPolicy string

const (
	RotateNone         RotationPolicy = "none"
	RotatePortraitOnly RotationPolicy = "portrait-only" // Portrait sources are turned 90° clockwise
	RotateMatchTile    RotationPolicy = "match-tile"    // Turn whenever source and tile orientation differ
)

// ShapeRule constrains the sources a profile accepts.
type ShapeRule struct {
	RequireSquare bool `json:"require_square" yaml:"require_square"`
	MinWidth      int  `json:"min_width" yaml:"min_width"`
	MinHeight     int  `json:"min_height" yaml:"min_height"`
}

// Check validates a width x height source against the rule.
func (r ShapeRule) Check(width, height int) error {
	if r.RequireSquare && width != height {
		return &ImageShapeError{Width: width, Height: height, Reason: "image is not a perfect square"}
	}
	if width < r.MinWidth || height < r.MinHeight {
		return &ImageShapeError{
			Width:  width,
			Height: height,
			Reason: fmt.Sprintf("minimum size should be %d x %d pixels", r.MinWidth, r.MinHeight),
		}
	}
	return nil
}

// CompositionRow is one row of identical tiles in a fixed composition.
type CompositionRow struct {
	Tile  TileSpec `json:"tile" yaml:"tile"`
	Count int      `json:"count" yaml:"count"`
	Gap   int      `json:"gap" yaml:"gap"` // Horizontal gap between tiles in the row
}

// Composition is a declarative placement list: rows stacked top to bottom,
// each row starting at OriginX, separated by RowGap.
type Composition struct {
	OriginX int              `json:"origin_x" yaml:"origin_x"`
	OriginY int              `json:"origin_y" yaml:"origin_y"`
	RowGap  int              `json:"row_gap" yaml:"row_gap"`
	Rows    []CompositionRow `json:"rows" yaml:"rows"`
}

// Tiles returns the distinct tiles used by the composition, in row order.
func (c Composition) Tiles() []TileSpec {
	var out []TileSpec
	seen := map[string]bool{}
	for _, r := range c.Rows {
		if seen[r.Tile.Name] {
			continue
		}
		seen[r.Tile.Name] = true
		out = append(out, r.Tile)
	}
	return out
}

// LayoutProfile describes one layout variant end to end.
type LayoutProfile struct {
	ID          string         `json:"id" yaml:"id"`
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description" yaml:"description"`
	IsBuiltIn   bool           `json:"is_built_in" yaml:"-"`
	Mode        Mode           `json:"mode" yaml:"mode"`
	Paper       PaperSpec      `json:"paper" yaml:"paper"`
	Papers      []string       `json:"papers,omitempty" yaml:"papers,omitempty"` // Selectable paper names; empty means Paper only
	Tile        TileSpec       `json:"tile" yaml:"tile"`
	Margins     Margins        `json:"margins" yaml:"margins"`
	Composition *Composition   `json:"composition,omitempty" yaml:"composition,omitempty"`
	Shape       ShapeRule      `json:"shape" yaml:"shape"`
	Fit         FitMode        `json:"fit" yaml:"fit"`
	Rotation    RotationPolicy `json:"rotation" yaml:"rotation"`
	CreatedAt   string         `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt   string         `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// NewLayoutProfile creates a custom replicate profile with a fresh ID.
func NewLayoutProfile(name, description string, paper PaperSpec, tile TileSpec, margins Margins) LayoutProfile {
	now := time.Now().UTC().Format(time.RFC3339)
	return LayoutProfile{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		Mode:        ModeReplicate,
		Paper:       paper,
		Tile:        tile,
		Margins:     margins,
		Fit:         FitExact,
		Rotation:    RotateNone,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// WithPaper returns a copy of the profile printing on the named paper.
// The paper must be one of the profile's selectable papers.
func (p LayoutProfile) WithPaper(name string) (LayoutProfile, error) {
	if name == "" || strings.EqualFold(name, p.Paper.Name) {
		return p, nil
	}
	allowed := false
	for _, n := range p.Papers {
		if strings.EqualFold(n, name) {
			allowed = true
			break
		}
	}
	if !allowed {
		return p, &ConfigurationError{
			Reason: fmt.Sprintf("profile %q does not support paper %q (choose from %s)", p.Name, name, strings.Join(p.PaperChoices(), ", ")),
		}
	}
	paper, err := LookupPaper(name)
	if err != nil {
		return p, err
	}
	p.Paper = paper
	return p, nil
}

// PaperChoices returns the paper names this profile can print on.
func (p LayoutProfile) PaperChoices() []string {
	if len(p.Papers) == 0 {
		return []string{p.Paper.Name}
	}
	return p.Papers
}

// Validate checks the parts of the profile that do not depend on geometry.
// Whether tiles fit the sheet is checked by the engine.
func (p LayoutProfile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return &ConfigurationError{Reason: "profile has no name"}
	}
	if p.Paper.Width <= 0 || p.Paper.Height <= 0 {
		return &ConfigurationError{Reason: fmt.Sprintf("profile %q has invalid paper size %dx%d", p.Name, p.Paper.Width, p.Paper.Height)}
	}
	switch p.Mode {
	case ModeReplicate, ModeBatch:
		if p.Tile.Width <= 0 || p.Tile.Height <= 0 {
			return &ConfigurationError{Reason: fmt.Sprintf("profile %q has invalid tile size %dx%d", p.Name, p.Tile.Width, p.Tile.Height)}
		}
	case ModeComposition:
		if p.Composition == nil || len(p.Composition.Rows) == 0 {
			return &ConfigurationError{Reason: fmt.Sprintf("profile %q has no composition rows", p.Name)}
		}
	default:
		return &ConfigurationError{Reason: fmt.Sprintf("profile %q has unknown mode %q", p.Name, p.Mode)}
	}
	switch p.Fit {
	case FitExact, FitDerive, FitCover, "":
	default:
		return &ConfigurationError{Reason: fmt.Sprintf("profile %q has unknown fit %q", p.Name, p.Fit)}
	}
	switch p.Rotation {
	case RotateNone, RotatePortraitOnly, RotateMatchTile, "":
	default:
		return &ConfigurationError{Reason: fmt.Sprintf("profile %q has unknown rotation %q", p.Name, p.Rotation)}
	}
	return nil
}

var idPhotoShape = ShapeRule{RequireSquare: true, MinWidth: 600, MinHeight: 600}

// BuiltInProfiles are the four layouts shipped with the tool.
var BuiltInProfiles = []LayoutProfile{
	{
		ID:          "2r",
		Name:        "2r",
		Description: "Make 2R copies of a picture",
		IsBuiltIn:   true,
		Mode:        ModeReplicate,
		Paper:       Paper4R,
		Papers:      []string{"4R", "5R", "A4", "Letter"},
		Tile:        Tile2R,
		Margins:     Margins{Interval: 50, StartOffset: 100},
		Fit:         FitDerive,
		Rotation:    RotatePortraitOnly,
	},
	{
		ID:          "multi-15x15",
		Name:        "multi-15x15",
		Description: "Make multiple 1.5 x 1.5 copies of a square ID picture on 4R",
		IsBuiltIn:   true,
		Mode:        ModeReplicate,
		Paper:       Paper4R,
		Tile:        Tile15x15,
		Margins:     Margins{Interval: 50, StartOffset: 100, ColumnGap: 50},
		Shape:       idPhotoShape,
		Fit:         FitExact,
		Rotation:    RotateNone,
	},
	{
		ID:          "5r-2x2-1x1",
		Name:        "5r-2x2-1x1",
		Description: "Four 2x2 and four 1x1 copies of a square ID picture on 5R",
		IsBuiltIn:   true,
		Mode:        ModeComposition,
		Paper:       Paper5R,
		Composition: &Composition{
			OriginX: 100,
			OriginY: 100,
			RowGap:  50,
			Rows: []CompositionRow{
				{Tile: Tile2x2, Count: 2, Gap: 75},
				{Tile: Tile2x2, Count: 2, Gap: 75},
				{Tile: Tile1x1, Count: 4, Gap: 25},
			},
		},
		Shape:    idPhotoShape,
		Fit:      FitExact,
		Rotation: RotateNone,
	},
	{
		ID:          "multi-images-2r",
		Name:        "multi-images-2r",
		Description: "Make multiple 2R layouts of different pictures from a source directory",
		IsBuiltIn:   true,
		Mode:        ModeBatch,
		Paper:       Paper4R,
		Papers:      []string{"4R", "5R", "A4"},
		Tile:        Tile2R,
		Margins:     Margins{Interval: 50, StartOffset: 100},
		Fit:         FitExact,
		Rotation:    RotatePortraitOnly,
	},
}

// CustomProfiles holds user-defined profiles loaded at runtime.
var CustomProfiles []LayoutProfile

// AllProfiles returns built-in profiles followed by custom ones.
func AllProfiles() []LayoutProfile {
	all := make([]LayoutProfile, 0, len(BuiltInProfiles)+len(CustomProfiles))
	all = append(all, BuiltInProfiles...)
	all = append(all, CustomProfiles...)
	return all
}

// GetProfile looks a profile up by name, ignoring case.
func GetProfile(name string) (LayoutProfile, error) {
	for _, p := range AllProfiles() {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return LayoutProfile{}, &ConfigurationError{Reason: fmt.Sprintf("unknown profile %q", name)}
}

// GetProfileNames returns the names of all profiles.
func GetProfileNames() []string {
	all := AllProfiles()
	names := make([]string, len(all))
	for i, p := range all {
		names[i] = p.Name
	}
	return names
}

// IsBuiltInName reports whether name collides with a built-in profile.
func IsBuiltInName(name string) bool {
	for _, p := range BuiltInProfiles {
		if strings.EqualFold(p.Name, name) {
			return true
		}
	}
	return false
}

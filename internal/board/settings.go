package board

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownLayout     = errors.New("unknown layout")
	ErrUnknownBackground = errors.New("unknown background type")
	ErrInvalidColumns    = errors.New("grid columns must be at least 1")
	ErrInvalidResolution = errors.New("export resolution must be a positive integer")
	ErrTranslucentColor  = errors.New("background colours must be fully opaque")
)

type LayoutMode string

const (
	LayoutGrid    LayoutMode = "grid"
	LayoutCollage LayoutMode = "collage"
	LayoutSmart   LayoutMode = "smart"
)

func (m LayoutMode) Valid() bool {
	switch m {
	case LayoutGrid, LayoutCollage, LayoutSmart:
		return true
	}
	return false
}

type BackgroundMode string

const (
	BackgroundSolid    BackgroundMode = "solid"
	BackgroundGradient BackgroundMode = "gradient"
	BackgroundTexture  BackgroundMode = "texture"
)

func (m BackgroundMode) Valid() bool {
	switch m {
	case BackgroundSolid, BackgroundGradient, BackgroundTexture:
		return true
	}
	return false
}

// GradientDirection selects the gradient geometry. Anything unrecognised
// paints as GradientVertical.
type GradientDirection string

const (
	GradientVertical   GradientDirection = "vertical"
	GradientHorizontal GradientDirection = "horizontal"
	GradientDiagonal   GradientDirection = "diagonal"
	GradientRadial     GradientDirection = "radial"
)

// TextureType selects the procedural pattern. Unknown types paint the base
// colour only.
type TextureType string

const (
	TexturePaper  TextureType = "paper"
	TextureCanvas TextureType = "canvas"
	TextureFabric TextureType = "fabric"
)

// Settings is the board configuration. Only the sub-fields of the active
// Background mode are read when painting; the rest are kept as-is.
type Settings struct {
	Layout      LayoutMode `json:"layout" yaml:"layout"`
	GridColumns int        `json:"grid_columns" yaml:"grid_columns"`

	Background        BackgroundMode    `json:"background" yaml:"background"`
	BackgroundColor   Color             `json:"background_color" yaml:"background_color"`
	GradientColor1    Color             `json:"gradient_color1" yaml:"gradient_color1"`
	GradientColor2    Color             `json:"gradient_color2" yaml:"gradient_color2"`
	GradientDirection GradientDirection `json:"gradient_direction" yaml:"gradient_direction"`
	TextureType       TextureType       `json:"texture_type" yaml:"texture_type"`
	TextureColor      Color             `json:"texture_color" yaml:"texture_color"`

	Filter           Filter `json:"filter" yaml:"filter"`
	ExportResolution int    `json:"export_resolution" yaml:"export_resolution"`
	Labels           bool   `json:"labels" yaml:"labels"`
}

// DefaultSettings returns the settings a fresh board starts with.
func DefaultSettings() Settings {
	return Settings{
		Layout:            LayoutGrid,
		GridColumns:       3,
		Background:        BackgroundSolid,
		BackgroundColor:   MustColor("#ffffff"),
		GradientColor1:    MustColor("#ffffff"),
		GradientColor2:    MustColor("#f0f0f0"),
		GradientDirection: GradientVertical,
		TextureType:       TexturePaper,
		TextureColor:      MustColor("#f8f8f8"),
		Filter:            FilterNone,
		ExportResolution:  1,
		Labels:            false,
	}
}

// Validate reports settings the engine cannot honour.
func (s Settings) Validate() error {
	if !s.Layout.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownLayout, s.Layout)
	}
	if !s.Background.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownBackground, s.Background)
	}
	if s.GridColumns < 1 {
		return fmt.Errorf("%w (got %d)", ErrInvalidColumns, s.GridColumns)
	}
	if s.ExportResolution < 1 {
		return fmt.Errorf("%w (got %d)", ErrInvalidResolution, s.ExportResolution)
	}
	// The background must cover the canvas, so its colours carry no alpha.
	for _, c := range []struct {
		field string
		color Color
	}{
		{"background_color", s.BackgroundColor},
		{"gradient_color1", s.GradientColor1},
		{"gradient_color2", s.GradientColor2},
		{"texture_color", s.TextureColor},
	} {
		if c.color.A != 0xff {
			return fmt.Errorf("%w: %s is %s", ErrTranslucentColor, c.field, c.color)
		}
	}
	return nil
}

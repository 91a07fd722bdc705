package board

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color is a straight-alpha RGBA colour that reads and writes as #hex.
type Color color.NRGBA

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA(c).RGBA()
}

// NRGBA returns c as the standard library type.
func (c Color) NRGBA() color.NRGBA { return color.NRGBA(c) }

var namedColors = map[string]string{
	"black": "#000000",
	"white": "#ffffff",
	"gray":  "#808080",
	"grey":  "#808080",
	"red":   "#ff0000",
	"green": "#008000",
	"blue":  "#0000ff",
	"beige": "#f5f5dc",
	"ivory": "#fffff0",
	"linen": "#faf0e6",
}

// ParseColor accepts #rgb, #rgba, #rrggbb, #rrggbbaa and a few names.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{}, fmt.Errorf("empty color")
	}
	if hex, ok := namedColors[strings.ToLower(s)]; ok {
		s = hex
	}
	if s[0] != '#' {
		return Color{}, fmt.Errorf("unsupported color format: %s", s)
	}
	hex := s[1:]
	if len(hex) == 3 || len(hex) == 4 {
		var b strings.Builder
		for _, r := range hex {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		hex = b.String()
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return Color{}, fmt.Errorf("unsupported hex color length: %d", len(s)-1)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// MustColor is ParseColor for constants.
func MustColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Color) String() string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

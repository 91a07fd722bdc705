package imagepkg

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/youruser/moodboard/internal/board"
)

// EffectKind is one colour operation of a filter preset.
type EffectKind int

const (
	Sepia EffectKind = iota
	Contrast
	Brightness
	Saturate
	HueRotate
)

// Effect is an operation with its amount: a fraction for Sepia, a
// multiplier for Contrast, Brightness and Saturate, degrees for HueRotate.
type Effect struct {
	Kind   EffectKind
	Amount float64
}

// filterEffects is applied left to right.
var filterEffects = map[board.Filter][]Effect{
	board.FilterNone:     nil,
	board.FilterVintage:  {{Sepia, 0.5}, {Contrast, 1.2}, {Brightness, 1.1}},
	board.FilterBright:   {{Brightness, 1.2}, {Contrast, 1.1}},
	board.FilterContrast: {{Contrast, 1.5}, {Brightness, 1.05}},
	board.FilterWarm:     {{Sepia, 0.2}, {Saturate, 1.2}, {HueRotate, 10}},
	board.FilterCool:     {{Saturate, 1.1}, {HueRotate, -10}, {Brightness, 1.05}},
}

// Effects returns the effect chain of f; unknown presets have none.
func Effects(f board.Filter) []Effect {
	return filterEffects[f]
}

// colorMatrix maps (r,g,b,1) to (r',g',b'), all channels in 0..1.
type colorMatrix [3][4]float64

func (m colorMatrix) apply(r, g, b float64) (float64, float64, float64) {
	return clamp01(m[0][0]*r + m[0][1]*g + m[0][2]*b + m[0][3]),
		clamp01(m[1][0]*r + m[1][1]*g + m[1][2]*b + m[1][3]),
		clamp01(m[2][0]*r + m[2][1]*g + m[2][2]*b + m[2][3])
}

// matrix uses the coefficients of the CSS filter functions of the same
// names.
func (e Effect) matrix() colorMatrix {
	a := e.Amount
	switch e.Kind {
	case Sepia:
		s := 1 - clamp01(a)
		return colorMatrix{
			{0.393 + 0.607*s, 0.769 - 0.769*s, 0.189 - 0.189*s, 0},
			{0.349 - 0.349*s, 0.686 + 0.314*s, 0.168 - 0.168*s, 0},
			{0.272 - 0.272*s, 0.534 - 0.534*s, 0.131 + 0.869*s, 0},
		}
	case Contrast:
		o := 0.5 - 0.5*a
		return colorMatrix{{a, 0, 0, o}, {0, a, 0, o}, {0, 0, a, o}}
	case Brightness:
		return colorMatrix{{a, 0, 0, 0}, {0, a, 0, 0}, {0, 0, a, 0}}
	case Saturate:
		return colorMatrix{
			{0.213 + 0.787*a, 0.715 - 0.715*a, 0.072 - 0.072*a, 0},
			{0.213 - 0.213*a, 0.715 + 0.285*a, 0.072 - 0.072*a, 0},
			{0.213 - 0.213*a, 0.715 - 0.715*a, 0.072 + 0.928*a, 0},
		}
	case HueRotate:
		rad := a * math.Pi / 180
		c, s := math.Cos(rad), math.Sin(rad)
		return colorMatrix{
			{0.213 + c*0.787 - s*0.213, 0.715 - c*0.715 - s*0.715, 0.072 - c*0.072 + s*0.928, 0},
			{0.213 - c*0.213 + s*0.143, 0.715 + c*0.285 + s*0.140, 0.072 - c*0.072 - s*0.283, 0},
			{0.213 - c*0.213 - s*0.787, 0.715 - c*0.715 + s*0.715, 0.072 + c*0.928 + s*0.072, 0},
		}
	}
	return colorMatrix{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}}
}

// FilterColor runs one colour through the chain of f.
func FilterColor(c color.NRGBA, f board.Filter) color.NRGBA {
	return filterFunc(Effects(f))(c)
}

func filterFunc(effects []Effect) func(color.NRGBA) color.NRGBA {
	matrices := make([]colorMatrix, len(effects))
	for i, e := range effects {
		matrices[i] = e.matrix()
	}
	return func(c color.NRGBA) color.NRGBA {
		r, g, b := float64(c.R)/255, float64(c.G)/255, float64(c.B)/255
		for _, m := range matrices {
			r, g, b = m.apply(r, g, b)
		}
		return color.NRGBA{R: to8(r), G: to8(g), B: to8(b), A: c.A}
	}
}

func to8(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

// ApplyFilter returns a filtered copy of img. Alpha is left untouched.
func ApplyFilter(img image.Image, f board.Filter) *image.NRGBA {
	effects := Effects(f)
	if len(effects) == 0 {
		return imaging.Clone(img)
	}
	return imaging.AdjustFunc(img, filterFunc(effects))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

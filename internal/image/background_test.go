package imagepkg

import (
	"errors"
	"image"
	"image/color"
	"math"
	"math/rand"
	"testing"

	"github.com/youruser/moodboard/internal/board"
)

func makeSolid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i+0] = c.R
			img.Pix[i+1] = c.G
			img.Pix[i+2] = c.B
			img.Pix[i+3] = c.A
		}
	}
	return img
}

func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func near(a, b color.NRGBA, tol int) bool {
	d := func(p, q uint8) bool {
		v := int(p) - int(q)
		return v <= tol && v >= -tol
	}
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B) && d(a.A, b.A)
}

func newSurface(t *testing.T, w, h, scale float64) *Surface {
	t.Helper()
	s, err := NewSurface(w, h, scale)
	if err != nil {
		t.Fatalf("surface %vx%v@%v: %v", w, h, scale, err)
	}
	return s
}

func TestSolidBackgroundIsUniform(t *testing.T) {
	s := board.DefaultSettings()
	s.BackgroundColor = board.MustColor("#336699")
	want := s.BackgroundColor.NRGBA()
	for _, scale := range []float64{1, 2, 1.5} {
		surf := newSurface(t, 50, 30, scale)
		PaintBackground(surf, 50, 30, s, rand.New(rand.NewSource(1)))
		b := surf.Img.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				if got := nrgbaAt(surf.Img, x, y); got != want {
					t.Fatalf("scale %v pixel (%d,%d) = %v, want %v", scale, x, y, got, want)
				}
			}
		}
	}
}

func TestGradientEndpoints(t *testing.T) {
	s := board.DefaultSettings()
	s.Background = board.BackgroundGradient
	s.GradientColor1 = board.MustColor("#ff0000")
	s.GradientColor2 = board.MustColor("#0000ff")
	from, to := s.GradientColor1.NRGBA(), s.GradientColor2.NRGBA()
	const w, h = 400, 300

	cases := []struct {
		dir    board.GradientDirection
		x0, y0 int
		x1, y1 int
	}{
		{board.GradientVertical, 200, 0, 200, h - 1},
		{board.GradientHorizontal, 0, 150, w - 1, 150},
		{board.GradientDiagonal, 0, 0, w - 1, h - 1},
		{board.GradientRadial, w / 2, h / 2, w - 1, h / 2},
		{"sideways", 200, 0, 200, h - 1},
	}
	for _, tc := range cases {
		s.GradientDirection = tc.dir
		surf := newSurface(t, w, h, 1)
		PaintBackground(surf, w, h, s, nil)
		if got := nrgbaAt(surf.Img, tc.x0, tc.y0); !near(got, from, 3) {
			t.Errorf("%s: colour at the start = %v, want %v", tc.dir, got, from)
		}
		if got := nrgbaAt(surf.Img, tc.x1, tc.y1); !near(got, to, 3) {
			t.Errorf("%s: colour at the end = %v, want %v", tc.dir, got, to)
		}
	}
}

func TestLinearGradientsAreOpaque(t *testing.T) {
	s := board.DefaultSettings()
	s.Background = board.BackgroundGradient
	s.GradientColor1 = board.MustColor("#204060")
	s.GradientColor2 = board.MustColor("#f0e0d0")
	for _, dir := range []board.GradientDirection{board.GradientVertical, board.GradientHorizontal, board.GradientDiagonal} {
		s.GradientDirection = dir
		surf := newSurface(t, 120, 80, 1.5)
		PaintBackground(surf, 120, 80, s, nil)
		b := surf.Img.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				if a := surf.Img.RGBAAt(x, y).A; a != 255 {
					t.Fatalf("%s: pixel (%d,%d) has alpha %d", dir, x, y, a)
				}
			}
		}
	}
}

func TestFillRectCoverage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	fillRect(img, 2, 2, 5.5, 4, color.NRGBA{A: 255})
	if a := img.RGBAAt(3, 3).A; a != 255 {
		t.Errorf("covered pixel alpha = %d, want 255", a)
	}
	if a := img.RGBAAt(5, 3).A; a < 120 || a > 135 {
		t.Errorf("half covered pixel alpha = %d, want about 128", a)
	}
	if a := img.RGBAAt(6, 3).A; a != 0 {
		t.Errorf("pixel outside the rectangle was painted: alpha %d", a)
	}

	// Rectangles running past the image are clipped, not rejected.
	fillRect(img, 8, 8, 14, 14, color.NRGBA{R: 255, A: 255})
	if c := img.RGBAAt(9, 9); c.R != 255 || c.A != 255 {
		t.Errorf("clipped rectangle missed its corner: %v", c)
	}
	fillRect(img, 20, 20, 30, 30, color.NRGBA{A: 255})
}

func TestNewSurfaceRejectsOversize(t *testing.T) {
	if _, err := NewSurface(800, 600, 100000); !errors.Is(err, ErrSurfaceTooLarge) {
		t.Errorf("expected ErrSurfaceTooLarge, got %v", err)
	}
	if _, err := NewSurface(800, 600, math.NaN()); !errors.Is(err, ErrSurfaceTooLarge) {
		t.Errorf("expected ErrSurfaceTooLarge for NaN scale, got %v", err)
	}
	s := newSurface(t, 800, 600, 4)
	if s.Img.Bounds().Dx() != 3200 || s.Img.Bounds().Dy() != 2400 {
		t.Errorf("unexpected surface size %v", s.Img.Bounds())
	}
}

func TestGradientBackgroundCoversSurface(t *testing.T) {
	s := board.DefaultSettings()
	s.Background = board.BackgroundGradient
	s.GradientColor1 = board.MustColor("#000000")
	s.GradientColor2 = board.MustColor("#ffffff")
	surf := newSurface(t, 100, 200, 2)
	PaintBackground(surf, 100, 200, s, nil)

	top := nrgbaAt(surf.Img, 10, 0)
	bottom := nrgbaAt(surf.Img, 10, 399)
	if !near(top, color.NRGBA{0, 0, 0, 255}, 2) {
		t.Errorf("top row should be near black, got %v", top)
	}
	if !near(bottom, color.NRGBA{255, 255, 255, 255}, 2) {
		t.Errorf("bottom row should be near white, got %v", bottom)
	}
	mid := nrgbaAt(surf.Img, 10, 200)
	if !near(mid, color.NRGBA{128, 128, 128, 255}, 2) {
		t.Errorf("middle row should be mid grey, got %v", mid)
	}
}

func TestTextureBackgroundsAreOpaque(t *testing.T) {
	base := board.MustColor("#f8f8f8")
	for _, kind := range []board.TextureType{board.TexturePaper, board.TextureCanvas, board.TextureFabric, "burlap"} {
		for _, scale := range []float64{1, 2} {
			s := board.DefaultSettings()
			s.Background = board.BackgroundTexture
			s.TextureType = kind
			s.TextureColor = base
			surf := newSurface(t, 250, 130, scale)
			PaintBackground(surf, 250, 130, s, rand.New(rand.NewSource(9)))

			varied := false
			b := surf.Img.Bounds()
			for y := b.Min.Y; y < b.Max.Y; y++ {
				for x := b.Min.X; x < b.Max.X; x++ {
					c := nrgbaAt(surf.Img, x, y)
					if c.A != 255 {
						t.Fatalf("%s@%v: transparent pixel at (%d,%d)", kind, scale, x, y)
					}
					if c != base.NRGBA() {
						varied = true
					}
				}
			}
			if kind == "burlap" && varied {
				t.Errorf("unknown texture should paint the base colour only")
			}
			if kind != "burlap" && !varied {
				t.Errorf("%s texture left no pattern", kind)
			}
		}
	}
}

func TestTextureTileRepeats(t *testing.T) {
	s := board.DefaultSettings()
	s.Background = board.BackgroundTexture
	s.TextureType = board.TextureFabric
	surf := newSurface(t, 300, 300, 1)
	PaintBackground(surf, 300, 300, s, nil)
	for _, pt := range []image.Point{{1, 1}, {5, 37}, {50, 2}} {
		a := nrgbaAt(surf.Img, pt.X, pt.Y)
		b := nrgbaAt(surf.Img, pt.X+TextureTileSize, pt.Y+2*TextureTileSize)
		if a != b {
			t.Errorf("texture does not repeat at %v: %v vs %v", pt, a, b)
		}
	}
}

func TestGradientSwatchSize(t *testing.T) {
	img, err := GradientSwatch(board.DefaultSettings(), 200, 40)
	if err != nil {
		t.Fatalf("swatch: %v", err)
	}
	if img.Bounds().Dx() != 200 || img.Bounds().Dy() != 40 {
		t.Fatalf("unexpected swatch size %v", img.Bounds())
	}
}

package layout

import (
	"errors"
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/youruser/moodboard/internal/board"
)

func makeAssets(dims ...[2]int) []board.ImageAsset {
	out := make([]board.ImageAsset, len(dims))
	for i, d := range dims {
		out[i] = board.ImageAsset{ID: string(rune('a' + i)), Width: d[0], Height: d[1]}
	}
	return out
}

func squares(n int) []board.ImageAsset {
	dims := make([][2]int, n)
	for i := range dims {
		dims[i] = [2]int{100, 100}
	}
	return makeAssets(dims...)
}

func settingsFor(mode board.LayoutMode) board.Settings {
	s := board.DefaultSettings()
	s.Layout = mode
	return s
}

type constRand float64

func (c constRand) Float64() float64 { return float64(c) }

func TestComputeEmpty(t *testing.T) {
	for _, mode := range []board.LayoutMode{board.LayoutGrid, board.LayoutCollage, board.LayoutSmart} {
		if _, err := Compute(nil, settingsFor(mode), nil); !errors.Is(err, ErrNoImages) {
			t.Errorf("%s: expected ErrNoImages, got %v", mode, err)
		}
	}
}

func TestGridThreeSquares(t *testing.T) {
	res, err := Compute(squares(3), settingsFor(board.LayoutGrid), nil)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if res.Width != 720 || res.Height != 280 {
		t.Fatalf("expected 720x280 canvas, got %vx%v", res.Width, res.Height)
	}
	wantX := []float64{40, 260, 480}
	for i, p := range res.Placements {
		if p.X != wantX[i] || p.Y != 40 || p.Width != 200 || p.Height != 200 {
			t.Errorf("placement %d: got (%v,%v %vx%v)", i, p.X, p.Y, p.Width, p.Height)
		}
		if p.Rotation != 0 {
			t.Errorf("grid placement %d rotated by %v", i, p.Rotation)
		}
	}
}

func TestGridClosedForm(t *testing.T) {
	for cols := 1; cols <= 6; cols++ {
		for n := 1; n <= 13; n++ {
			s := settingsFor(board.LayoutGrid)
			s.GridColumns = cols
			res, err := Compute(squares(n), s, nil)
			if err != nil {
				t.Fatalf("compute: %v", err)
			}
			rows := int(math.Ceil(float64(n) / float64(cols)))
			wantW := float64(cols*200 + (cols-1)*20 + 80)
			wantH := float64(rows*200 + (rows-1)*20 + 80)
			if res.Width != wantW || res.Height != wantH {
				t.Fatalf("n=%d cols=%d: expected %vx%v, got %vx%v", n, cols, wantW, wantH, res.Width, res.Height)
			}
			for i, p := range res.Placements {
				if p.Index != i {
					t.Fatalf("grid reordered image %d to slot %d", p.Index, i)
				}
				for j := i + 1; j < len(res.Placements); j++ {
					q := res.Placements[j]
					if (rect{p.X, p.Y, p.Width, p.Height}).overlaps(rect{q.X, q.Y, q.Width, q.Height}) {
						t.Fatalf("tiles %d and %d overlap", i, j)
					}
				}
			}
		}
	}
}

func TestGridZeroColumnsClamped(t *testing.T) {
	s := settingsFor(board.LayoutGrid)
	s.GridColumns = 0
	res, err := Compute(squares(2), s, nil)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if res.Width != 280 {
		t.Errorf("expected a single column 280 wide, got %v", res.Width)
	}
}

func TestSmartInterleaveOrder(t *testing.T) {
	images := makeAssets(
		[2]int{200, 100}, // a landscape
		[2]int{100, 200}, // b portrait
		[2]int{100, 100}, // c square
		[2]int{150, 100}, // d landscape
		[2]int{110, 100}, // e square
		[2]int{50, 100},  // f portrait
		[2]int{300, 100}, // g landscape
	)
	res, err := Compute(images, settingsFor(board.LayoutSmart), nil)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	var got []string
	for _, p := range res.Placements {
		got = append(got, p.ImageID)
	}
	want := []string{"a", "c", "b", "d", "e", "f", "g"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected order %v, got %v", want, got)
	}
}

func TestSmartBoundsAndWrap(t *testing.T) {
	res, err := Compute(squares(5), settingsFor(board.LayoutSmart), nil)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	last := res.Placements[4]
	if last.X != 40 || last.Y != 220 {
		t.Errorf("fifth square should wrap to (40,220), got (%v,%v)", last.X, last.Y)
	}
	if res.Height != 600 {
		t.Errorf("expected minimum height 600, got %v", res.Height)
	}

	rnd := rand.New(rand.NewSource(7))
	var dims [][2]int
	for i := 0; i < 40; i++ {
		dims = append(dims, [2]int{20 + rnd.Intn(900), 20 + rnd.Intn(900)})
	}
	dims = append(dims, [2]int{2000, 100})
	res, err = Compute(makeAssets(dims...), settingsFor(board.LayoutSmart), nil)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if res.Height < 600 {
		t.Errorf("height below 600: %v", res.Height)
	}
	for _, p := range res.Placements {
		if p.X+p.Width > res.Width {
			t.Errorf("image %s right edge %v beyond canvas %v", p.ImageID, p.X+p.Width, res.Width)
		}
		if p.Y+p.Height > res.Height {
			t.Errorf("image %s bottom edge %v beyond canvas %v", p.ImageID, p.Y+p.Height, res.Height)
		}
	}
}

func TestCollageDeterministicWithSeed(t *testing.T) {
	images := makeAssets([2]int{400, 300}, [2]int{300, 400}, [2]int{100, 100}, [2]int{1600, 900})
	s := settingsFor(board.LayoutCollage)
	a, err := Compute(images, s, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	b, _ := Compute(images, s, rand.New(rand.NewSource(42)))
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same seed produced different collages")
	}
}

func TestCollageBounds(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	for _, n := range []int{1, 5, 20, 60} {
		res, err := Compute(squares(n), settingsFor(board.LayoutCollage), rnd)
		if err != nil {
			t.Fatalf("compute: %v", err)
		}
		if len(res.Placements) != n {
			t.Fatalf("expected %d placements, got %d", n, len(res.Placements))
		}
		for i, p := range res.Placements {
			if p.Index != i {
				t.Errorf("collage placement %d refers to image %d", i, p.Index)
			}
			if p.Width <= 0 || p.Height <= 0 {
				t.Errorf("non-positive size %vx%v", p.Width, p.Height)
			}
			if p.X < 0 || p.Y < 0 || p.X > res.Width || p.Y > res.Height {
				t.Errorf("n=%d image %d at (%v,%v) outside canvas", n, i, p.X, p.Y)
			}
			if math.Abs(p.Rotation) > CollageMaxRotation {
				t.Errorf("rotation %v out of range", p.Rotation)
			}
		}
	}
}

func TestCollageFallbackSlot(t *testing.T) {
	// A constant source makes every trial for the second image land on
	// the first, so it must take its fallback slot.
	res, err := Compute(squares(2), settingsFor(board.LayoutCollage), constRand(0.5))
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	first, second := res.Placements[0], res.Placements[1]
	if first.X != 320 || first.Y != 220 || first.Width != 160 {
		t.Errorf("unexpected first placement %+v", first)
	}
	if second.X != 400 || second.Y != 40 {
		t.Errorf("expected fallback slot (400,40), got (%v,%v)", second.X, second.Y)
	}
}

// scriptRand replays vals, then returns 0.5 forever.
type scriptRand struct {
	vals []float64
	i    int
}

func (s *scriptRand) Float64() float64 {
	if s.i < len(s.vals) {
		v := s.vals[s.i]
		s.i++
		return v
	}
	return 0.5
}

func TestCollageLastTrialTakesFallback(t *testing.T) {
	// First image: size, rotation and one fitting trial. Second image:
	// size, rotation, 49 trials onto the first image, then a 50th trial
	// at the free top-left corner.
	vals := make([]float64, 4+2+2*(CollageAttempts-1))
	for i := range vals {
		vals[i] = 0.5
	}
	vals = append(vals, 0, 0)

	res, err := Compute(squares(2), settingsFor(board.LayoutCollage), &scriptRand{vals: vals})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	second := res.Placements[1]
	if second.X != 400 || second.Y != 40 {
		t.Errorf("expected fallback slot (400,40) after the last trial, got (%v,%v)", second.X, second.Y)
	}

	// One trial earlier the free corner is kept.
	vals = make([]float64, 4+2+2*(CollageAttempts-2))
	for i := range vals {
		vals[i] = 0.5
	}
	vals = append(vals, 0, 0)
	res, err = Compute(squares(2), settingsFor(board.LayoutCollage), &scriptRand{vals: vals})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if second := res.Placements[1]; second.X != 40 || second.Y != 40 {
		t.Errorf("expected trial position (40,40), got (%v,%v)", second.X, second.Y)
	}
}

func TestOverlapIsHalfOpen(t *testing.T) {
	a := rect{0, 0, 10, 10}
	if a.overlaps(rect{10, 0, 10, 10}) {
		t.Errorf("edge-sharing rectangles reported as overlapping")
	}
	if !a.overlaps(rect{9.5, 9.5, 10, 10}) {
		t.Errorf("overlapping rectangles not detected")
	}
}

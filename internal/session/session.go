// Package session owns one board and serializes its mutations against
// renders. Every mutation returns the freshly computed layout.
package session

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/youruser/moodboard/internal/board"
	"github.com/youruser/moodboard/internal/layout"
)

var (
	// ErrEmptyBoard is returned instead of rendering a board with no images.
	ErrEmptyBoard = errors.New("board has no images")
	ErrNotFound   = errors.New("image not found")
)

// EmptyBoardMessage is shown to users who try to export an empty board.
const EmptyBoardMessage = "Please upload some images first."

// Renderer rasterizes a computed layout. *imagepkg.Renderer satisfies it.
type Renderer interface {
	RenderLayout(lay *layout.Result, settings board.Settings, scale float64) (*image.RGBA, error)
}

// Status is what a client needs to enable or disable export.
type Status struct {
	Count     int  `json:"count"`
	CanExport bool `json:"can_export"`
}

// Session is safe for concurrent use. Renders hold the lock, so a
// mutation never lands in the middle of one.
type Session struct {
	mu       sync.Mutex
	board    *board.Board
	current  *layout.Result
	renderer Renderer
	rnd      layout.Rand
	onChange func(*layout.Result)
}

// New starts an empty session. rnd drives collage placement; nil means a
// time-seeded source per layout.
func New(settings board.Settings, renderer Renderer, rnd layout.Rand) *Session {
	return &Session{
		board:    board.New(settings),
		renderer: renderer,
		rnd:      rnd,
	}
}

// OnChange registers fn to run after every successful mutation with the
// new layout, which is nil once the board is empty. fn runs without the
// session lock held.
func (s *Session) OnChange(fn func(*layout.Result)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Images returns a copy of the ordered image list.
func (s *Session) Images() []board.ImageAsset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Snapshot().Images
}

func (s *Session) Settings() board.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Settings
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.board.Len()
	return Status{Count: n, CanExport: n > 0}
}

// Add appends assets in order.
func (s *Session) Add(assets ...board.ImageAsset) *layout.Result {
	lay, _ := s.mutate(func(b *board.Board) error {
		b.Add(assets...)
		return nil
	})
	return lay
}

func (s *Session) Remove(id string) (*layout.Result, error) {
	return s.mutate(func(b *board.Board) error {
		if !b.Remove(id) {
			return fmt.Errorf("%s: %w", id, ErrNotFound)
		}
		return nil
	})
}

// Move places id just before or after target.
func (s *Session) Move(id, target string, pos board.Position) (*layout.Result, error) {
	return s.mutate(func(b *board.Board) error {
		if !b.Move(id, target, pos) {
			return fmt.Errorf("move %s next to %s: %w", id, target, ErrNotFound)
		}
		return nil
	})
}

func (s *Session) SetLabel(id, label string) (*layout.Result, error) {
	return s.mutate(func(b *board.Board) error {
		if !b.SetLabel(id, label) {
			return fmt.Errorf("%s: %w", id, ErrNotFound)
		}
		return nil
	})
}

// UpdateSettings validates and replaces the settings. Changing settings
// re-rolls a collage.
func (s *Session) UpdateSettings(settings board.Settings) (*layout.Result, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return s.mutate(func(b *board.Board) error {
		b.Settings = settings
		return nil
	})
}

// Layout returns the current layout.
func (s *Session) Layout() (*layout.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil, ErrEmptyBoard
	}
	return s.current, nil
}

// Preview renders the current layout at scale 1.
func (s *Session) Preview() (*image.RGBA, error) {
	img, _, err := s.render(func(board.Settings) float64 { return 1 })
	return img, err
}

// Export renders the current layout at the configured export resolution
// and returns the settings it was rendered with.
func (s *Session) Export() (*image.RGBA, board.Settings, error) {
	return s.render(func(st board.Settings) float64 { return float64(st.ExportResolution) })
}

func (s *Session) render(scale func(board.Settings) float64) (*image.RGBA, board.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	settings := s.board.Settings
	if s.current == nil {
		return nil, settings, ErrEmptyBoard
	}
	img, err := s.renderer.RenderLayout(s.current, settings, scale(settings))
	if err != nil {
		return nil, settings, err
	}
	return img, settings, nil
}

func (s *Session) mutate(fn func(b *board.Board) error) (*layout.Result, error) {
	s.mu.Lock()
	if err := fn(s.board); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	lay := s.recompute()
	hook := s.onChange
	s.mu.Unlock()

	if hook != nil {
		hook(lay)
	}
	return lay, nil
}

// recompute lays out a snapshot of the board. Callers hold mu.
func (s *Session) recompute() *layout.Result {
	if s.board.Len() == 0 {
		s.current = nil
		return nil
	}
	snap := s.board.Snapshot()
	lay, err := layout.Compute(snap.Images, snap.Settings, s.rnd)
	if err != nil {
		// Only an empty list fails, and that is handled above.
		s.current = nil
		return nil
	}
	s.current = lay
	return lay
}

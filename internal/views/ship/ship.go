// Package ship implements the gameplay view: a player ship steered with the
// arrow keys over scrolling parallax star fields.
package ship

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/gfx"
)

// ErrUnreachableStance means the movement deltas matched no stance.
// It indicates a logic defect, never a recoverable condition.
var ErrUnreachableStance = errors.New("unreachable ship stance")

// Stance selects the sprite sheet frame. Frames are ordered left to right,
// then top to bottom: rows are vertical motion, columns horizontal.
type Stance int

const (
	UpNorm Stance = iota
	UpFast
	UpSlow
	MidNorm
	MidFast
	MidSlow
	DownNorm
	DownFast
	DownSlow

	stanceCount = 9
)

var stanceNames = [stanceCount]string{
	"up-norm", "up-fast", "up-slow",
	"mid-norm", "mid-fast", "mid-slow",
	"down-norm", "down-fast", "down-slow",
}

func (s Stance) String() string {
	if s < 0 || int(s) >= stanceCount {
		return fmt.Sprintf("stance(%d)", int(s))
	}
	return stanceNames[s]
}

// StanceFor derives the stance from one frame of movement. Moving right is
// "fast" (the ship speeds up against the scroll), moving left is "slow".
func StanceFor(dx, dy float64) (Stance, error) {
	var row, col Stance
	switch {
	case dy < 0:
		row = UpNorm
	case dy == 0:
		row = MidNorm
	case dy > 0:
		row = DownNorm
	default:
		return 0, fmt.Errorf("%w: dx=%v dy=%v", ErrUnreachableStance, dx, dy)
	}
	switch {
	case dx == 0:
		col = 0
	case dx > 0:
		col = 1
	case dx < 0:
		col = 2
	default:
		return 0, fmt.Errorf("%w: dx=%v dy=%v", ErrUnreachableStance, dx, dy)
	}
	return row + col, nil
}

// Controls is the held state of the steering keys for one frame.
type Controls struct {
	Up, Down, Left, Right bool
}

// Ship is the player. Its rectangle always stays inside bounds.
type Ship struct {
	pos     core.Rect
	bounds  core.Rect
	speed   float64
	sprites []gfx.Sprite
	stance  Stance
}

// NewShip cuts the stance frames out of sheet and places the ship at (x, y),
// moved inside bounds if needed.
func NewShip(sheet gfx.Sprite, cols, rows int, x, y, speed float64, bounds core.Rect) (*Ship, error) {
	if cols*rows != stanceCount {
		return nil, fmt.Errorf("ship: sheet grid %dx%d must hold %d stances", cols, rows, stanceCount)
	}
	sprites, err := sheet.Grid(cols, rows)
	if err != nil {
		return nil, fmt.Errorf("ship: slice sheet: %w", err)
	}

	w, h := sprites[0].Size()
	pos, ok := core.NewRect(x, y, w, h).MoveInside(bounds)
	if !ok {
		return nil, fmt.Errorf("ship: %gx%g frame does not fit bounds %v", w, h, bounds)
	}

	return &Ship{
		pos:     pos,
		bounds:  bounds,
		speed:   speed,
		sprites: sprites,
		stance:  MidNorm,
	}, nil
}

// Update moves the ship for elapsed seconds. Opposite keys cancel out and
// diagonal motion is scaled so the ship never moves faster than speed.
func (s *Ship) Update(in Controls, elapsed float64) error {
	diagonal := (in.Up != in.Down) && (in.Left != in.Right)

	moved := s.speed * elapsed
	if diagonal {
		moved /= math.Sqrt2
	}

	dx := axis(in.Left, in.Right, moved)
	dy := axis(in.Up, in.Down, moved)

	pos, ok := s.pos.Translate(dx, dy).MoveInside(s.bounds)
	if !ok {
		return fmt.Errorf("ship: %v does not fit bounds %v", s.pos, s.bounds)
	}
	s.pos = pos

	stance, err := StanceFor(dx, dy)
	if err != nil {
		return err
	}
	s.stance = stance
	return nil
}

func axis(neg, pos bool, moved float64) float64 {
	switch {
	case neg && !pos:
		return -moved
	case pos && !neg:
		return moved
	default:
		return 0
	}
}

// Render draws the frame for the current stance.
func (s *Ship) Render(dst core.Surface) {
	s.sprites[s.stance].Render(dst, s.pos)
}

// Rect returns the ship's position and size.
func (s *Ship) Rect() core.Rect { return s.pos }

// Bounds returns the movable region.
func (s *Ship) Bounds() core.Rect { return s.bounds }

// Stance returns the current stance.
func (s *Ship) Stance() Stance { return s.stance }

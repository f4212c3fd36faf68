package tetris

import (
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Direction is a player intent for the active piece.
type Direction int

const (
	DirNone Direction = iota
	DirLeft
	DirRight
	DirDown
	DirRotate
)

func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirRotate:
		return "rotate"
	default:
		return "none"
	}
}

// Piece is a live tetrimino: a shared shape plus its own rotation, position,
// color, movement flags and timers.
type Piece struct {
	shape    *Shape
	rotation int
	pos      core.Point
	color    int

	movable      bool
	acceptsInput bool
	pending      Direction
	softDrop     bool

	fallElapsed time.Duration
	dirElapsed  time.Duration
	// dirArmed is false until the pending direction has acted once, so the
	// first tick after a change fires immediately.
	dirArmed bool
}

// NewPiece creates a movable piece at the origin.
func NewPiece(shape *Shape, rotation, color int) *Piece {
	n := shape.FrameCount()
	return &Piece{
		shape:    shape,
		rotation: ((rotation % n) + n) % n,
		color:    color,
		movable:  true,
	}
}

func (p *Piece) Shape() *Shape { return p.shape }
func (p *Piece) Rotation() int { return p.rotation }
func (p *Piece) Position() core.Point { return p.pos }
func (p *Piece) Color() int { return p.color }
func (p *Piece) Movable() bool { return p.movable }
func (p *Piece) AcceptsInput() bool { return p.acceptsInput }
func (p *Piece) PendingDirection() Direction { return p.pending }
func (p *Piece) SoftDrop() bool { return p.softDrop }

// SetPosition moves the anchor without validation.
func (p *Piece) SetPosition(pos core.Point) { p.pos = pos }

// Frame returns the current rotation frame.
func (p *Piece) Frame() Frame {
	return p.shape.Frame(p.rotation)
}

// Cells returns the absolute grid cells the piece occupies.
func (p *Piece) Cells() []core.Point {
	return p.Frame().Cells(p.pos)
}

// TryShift moves the piece by (dx, dy) if the target placement is valid.
func (p *Piece) TryShift(field *Playfield, dx, dy int) bool {
	next := p.pos.Add(core.Point{X: dx, Y: dy})
	if !field.IsValid(next, p.Frame()) {
		return false
	}
	p.pos = next
	return true
}

// Rotate advances to the next frame. When the rotated frame collides it tries
// one horizontal correction away from the wall it crossed; if that fails the
// piece is left untouched.
func (p *Piece) Rotate(field *Playfield) bool {
	nextRot := (p.rotation + 1) % p.shape.FrameCount()
	next := p.shape.Frame(nextRot)

	if field.IsValid(p.pos, next) {
		p.rotation = nextRot
		return true
	}

	pad := next.Paddings()
	leftLedge := -(p.pos.X + pad.Left)
	rightLedge := p.pos.X + TemplateSize - pad.Right - field.Width()

	var kicked core.Point
	switch {
	case leftLedge > 0:
		kicked = core.Point{X: p.pos.X + leftLedge, Y: p.pos.Y}
	case rightLedge > 0:
		kicked = core.Point{X: p.pos.X - rightLedge, Y: p.pos.Y}
	default:
		return false
	}
	if !field.IsValid(kicked, next) {
		return false
	}
	p.rotation = nextRot
	p.pos = kicked
	return true
}

func (p *Piece) setIntent(dir Direction) {
	p.acceptsInput = true
	p.pending = dir
}

func (p *Piece) cancelIntent() {
	p.acceptsInput = false
	p.pending = DirNone
	p.softDrop = false
	p.dirArmed = false
	p.dirElapsed = 0
}

// resolveIntent runs the pending direction on the first tick after a change
// and then whenever the time accumulated by earlier ticks reaches the repeat
// interval. It reports whether the piece moved or rotated.
func (p *Piece) resolveIntent(field *Playfield, dt, repeat time.Duration) bool {
	if !p.acceptsInput || p.pending == DirNone {
		return false
	}
	if p.dirArmed && p.dirElapsed < repeat {
		p.dirElapsed += dt
		return false
	}
	p.dirArmed = true
	p.dirElapsed = 0

	switch p.pending {
	case DirLeft:
		return p.TryShift(field, -1, 0)
	case DirRight:
		return p.TryShift(field, 1, 0)
	case DirRotate:
		return p.Rotate(field)
	case DirDown:
		p.softDrop = true
	}
	return false
}

// applyGravity accumulates fall time. At the interval it moves the piece one
// row down, or marks it landed when the row below is blocked.
func (p *Piece) applyGravity(field *Playfield, dt, interval time.Duration) (moved, landed bool) {
	p.fallElapsed += dt
	if p.fallElapsed < interval {
		return false, false
	}
	p.fallElapsed = 0
	if p.TryShift(field, 0, -1) {
		return true, false
	}
	p.movable = false
	return false, true
}

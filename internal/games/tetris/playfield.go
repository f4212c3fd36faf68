package tetris

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Playfield is the grid of locked cells. Row 0 is the bottom row and every
// cell holds 0 (empty) or a 1-based palette index.
type Playfield struct {
	width  int
	height int
	cells  [][]int
}

// NewPlayfield creates an empty playfield.
func NewPlayfield(width, height int) *Playfield {
	p := &Playfield{width: width, height: height}
	p.Reset()
	return p
}

// Width returns the number of columns.
func (p *Playfield) Width() int { return p.width }

// Height returns the number of rows.
func (p *Playfield) Height() int { return p.height }

// Reset empties every cell.
func (p *Playfield) Reset() {
	p.cells = make([][]int, p.height)
	for y := range p.cells {
		p.cells[y] = make([]int, p.width)
	}
}

// Cell returns the color at (x, y), or 0 outside the grid.
func (p *Playfield) Cell(x, y int) int {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return 0
	}
	return p.cells[y][x]
}

// IsValid reports whether a frame anchored at pos stays inside the side
// walls and the floor without touching a locked cell. There is no ceiling:
// cells at or above Height never collide.
func (p *Playfield) IsValid(pos core.Point, f Frame) bool {
	for _, c := range f.Cells(pos) {
		if c.X < 0 || c.X >= p.width || c.Y < 0 {
			return false
		}
		if c.Y < p.height && p.cells[c.Y][c.X] != 0 {
			return false
		}
	}
	return true
}

// Commit writes the piece's color into every cell it occupies. The caller
// must have validated the placement; an invalid piece is reported as
// ErrInvariantViolation and the grid is left untouched.
func (p *Playfield) Commit(piece *Piece) error {
	cells := piece.Cells()
	for _, c := range cells {
		if c.X < 0 || c.X >= p.width || c.Y < 0 || c.Y >= p.height {
			return fmt.Errorf("%w: cell (%d,%d) outside %dx%d grid", ErrInvariantViolation, c.X, c.Y, p.width, p.height)
		}
		if p.cells[c.Y][c.X] != 0 {
			return fmt.Errorf("%w: cell (%d,%d) already occupied", ErrInvariantViolation, c.X, c.Y)
		}
	}
	if piece.Color() <= 0 {
		return fmt.Errorf("%w: color %d is not a palette index", ErrInvariantViolation, piece.Color())
	}
	for _, c := range cells {
		p.cells[c.Y][c.X] = piece.Color()
	}
	return nil
}

// ClearFullRows removes every full row in a single pass and pushes the same
// number of empty rows on top. Rows above a cleared row shift down by the
// number of cleared rows beneath them.
func (p *Playfield) ClearFullRows() int {
	kept := p.cells[:0]
	cleared := 0
	for _, row := range p.cells {
		if rowFull(row) {
			cleared++
			continue
		}
		kept = append(kept, row)
	}
	for range cleared {
		kept = append(kept, make([]int, p.width))
	}
	p.cells = kept
	return cleared
}

// IsTopRowsOccupied is the game-over check: the second row from the top
// holds a block. The top row itself is spawn headroom and is not checked.
func (p *Playfield) IsTopRowsOccupied() bool {
	return !rowEmpty(p.cells[p.height-2])
}

// SeedRows fills the bottom level rows with random blocks: each cell is
// empty or a random color with equal odds. The top two rows are never seeded.
func (p *Playfield) SeedRows(level, paletteSize int, rng *rand.Rand) {
	level = core.Clamp(level, 0, p.height-2)
	for y := 0; y < level; y++ {
		for x := 0; x < p.width; x++ {
			if rng.Intn(2) == 0 {
				p.cells[y][x] = 0
				continue
			}
			p.cells[y][x] = 1 + rng.Intn(paletteSize)
		}
	}
}

// Snapshot returns a deep copy of the grid, row 0 first.
func (p *Playfield) Snapshot() [][]int {
	out := make([][]int, p.height)
	for y, row := range p.cells {
		out[y] = append([]int(nil), row...)
	}
	return out
}

func rowFull(row []int) bool {
	for _, v := range row {
		if v == 0 {
			return false
		}
	}
	return true
}

func rowEmpty(row []int) bool {
	for _, v := range row {
		if v != 0 {
			return false
		}
	}
	return true
}

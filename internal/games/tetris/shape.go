package tetris

import "github.com/vovakirdan/tui-tetris/internal/core"

// TemplateSize is the side length of every rotation frame.
const TemplateSize = 4

// Frame is one rotation state of a shape. Row 0 is the top of the template.
type Frame [TemplateSize][TemplateSize]bool

// Paddings counts the empty template rows and columns around a frame's cells.
// Only Left and Right take part in wall kicks.
type Paddings struct {
	Top   int
	Left  int
	Right int
}

// ShapeID identifies a catalogue entry.
type ShapeID int

const (
	ShapeI ShapeID = iota
	ShapeO
	ShapeT
	ShapeS
	ShapeZ
	ShapeJ
	ShapeL
)

// String returns the conventional letter of the shape.
func (id ShapeID) String() string {
	switch id {
	case ShapeI:
		return "I"
	case ShapeO:
		return "O"
	case ShapeT:
		return "T"
	case ShapeS:
		return "S"
	case ShapeZ:
		return "Z"
	case ShapeJ:
		return "J"
	case ShapeL:
		return "L"
	default:
		return "?"
	}
}

// Shape is an immutable sequence of rotation frames shared by every piece
// drawn from it.
type Shape struct {
	ID     ShapeID
	Frames []Frame
}

// FrameCount returns the number of rotation states.
func (s *Shape) FrameCount() int {
	return len(s.Frames)
}

// Frame returns the frame for a rotation index, wrapping out-of-range values.
func (s *Shape) Frame(rotation int) Frame {
	n := len(s.Frames)
	return s.Frames[((rotation%n)+n)%n]
}

// Cells returns the absolute cells a frame occupies when anchored at origin.
// Template row r maps to y = origin.Y + (TemplateSize - r - 1).
func (f Frame) Cells(origin core.Point) []core.Point {
	cells := make([]core.Point, 0, 4)
	for r := 0; r < TemplateSize; r++ {
		for c := 0; c < TemplateSize; c++ {
			if !f[r][c] {
				continue
			}
			cells = append(cells, core.Point{
				X: origin.X + c,
				Y: origin.Y + (TemplateSize - r - 1),
			})
		}
	}
	return cells
}

// Paddings computes the empty rows from the top and empty columns on each side.
func (f Frame) Paddings() Paddings {
	var p Paddings
	for r := 0; r < TemplateSize && f.rowEmpty(r); r++ {
		p.Top++
	}
	for c := 0; c < TemplateSize && f.colEmpty(c); c++ {
		p.Left++
	}
	for c := TemplateSize - 1; c >= 0 && f.colEmpty(c); c-- {
		p.Right++
	}
	return p
}

func (f Frame) rowEmpty(r int) bool {
	for c := 0; c < TemplateSize; c++ {
		if f[r][c] {
			return false
		}
	}
	return true
}

func (f Frame) colEmpty(c int) bool {
	for r := 0; r < TemplateSize; r++ {
		if f[r][c] {
			return false
		}
	}
	return true
}

// parseFrame builds a frame from four rows of '#' (filled) and '.' (empty).
func parseFrame(rows ...string) Frame {
	if len(rows) != TemplateSize {
		panic("tetris: frame needs exactly 4 rows")
	}
	var f Frame
	for r, row := range rows {
		if len(row) != TemplateSize {
			panic("tetris: frame row must be 4 cells wide: " + row)
		}
		for c := 0; c < TemplateSize; c++ {
			f[r][c] = row[c] == '#'
		}
	}
	return f
}

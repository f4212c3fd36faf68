package tetris

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

func fillRow(f *Playfield, y, color int) {
	for x := 0; x < f.Width(); x++ {
		f.cells[y][x] = color
	}
}

func TestPlayfieldIsValidBounds(t *testing.T) {
	f := NewPlayfield(10, 22)
	flat := shapeI.Frames[0] // cells on template row 1

	tests := []struct {
		name     string
		pos      core.Point
		expected bool
	}{
		{"inside", core.Point{X: 3, Y: 5}, true},
		{"left edge", core.Point{X: 0, Y: 5}, true},
		{"past left wall", core.Point{X: -1, Y: 5}, false},
		{"right edge", core.Point{X: 6, Y: 5}, true},
		{"past right wall", core.Point{X: 7, Y: 5}, false},
		{"on floor", core.Point{X: 3, Y: -2}, true},
		{"below floor", core.Point{X: 3, Y: -3}, false},
		{"above ceiling", core.Point{X: 3, Y: 40}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, f.IsValid(tt.pos, flat))
		})
	}
}

func TestPlayfieldIsValidMatchesCellCheck(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	f := NewPlayfield(10, 22)
	f.SeedRows(8, 5, rng)

	for _, shape := range StandardCatalogue() {
		for rot := 0; rot < shape.FrameCount(); rot++ {
			frame := shape.Frame(rot)
			for x := -4; x <= 10; x++ {
				for y := -4; y <= 24; y++ {
					pos := core.Point{X: x, Y: y}
					expected := true
					for _, c := range frame.Cells(pos) {
						if c.X < 0 || c.X >= 10 || c.Y < 0 || f.Cell(c.X, c.Y) != 0 {
							expected = false
						}
					}
					require.Equal(t, expected, f.IsValid(pos, frame), "%s rot %d at %v", shape.ID, rot, pos)
				}
			}
		}
	}
}

func TestPlayfieldCommitWritesOnlyPieceCells(t *testing.T) {
	f := NewPlayfield(10, 22)
	f.cells[0][0] = 2
	before := f.Snapshot()

	p := NewPiece(shapeT, 0, 4)
	p.SetPosition(core.Point{X: 4, Y: 0})
	require.NoError(t, f.Commit(p))

	expected := before
	for _, c := range p.Cells() {
		expected[c.Y][c.X] = 4
	}
	assert.Equal(t, expected, f.Snapshot())
}

func TestPlayfieldCommitInvalidLeavesGrid(t *testing.T) {
	f := NewPlayfield(10, 22)
	f.cells[2][5] = 1
	before := f.Snapshot()

	p := NewPiece(shapeT, 0, 3)
	p.SetPosition(core.Point{X: 4, Y: 0}) // the T bar covers (4..6, 2)
	err := f.Commit(p)
	require.ErrorIs(t, err, ErrInvariantViolation)
	assert.Equal(t, before, f.Snapshot())

	p.SetPosition(core.Point{X: 8, Y: 5})
	require.ErrorIs(t, f.Commit(p), ErrInvariantViolation)
	assert.Equal(t, before, f.Snapshot())
}

func TestPlayfieldClearFullRows(t *testing.T) {
	f := NewPlayfield(6, 8)
	fillRow(f, 0, 1)
	f.cells[1][2] = 3
	fillRow(f, 2, 2)
	fillRow(f, 3, 4)
	f.cells[4][0] = 5

	n := f.ClearFullRows()
	assert.Equal(t, 3, n)
	require.Len(t, f.Snapshot(), 8)

	// Partial rows shift down by the number of cleared rows beneath them.
	assert.Equal(t, 3, f.Cell(2, 0))
	assert.Equal(t, 5, f.Cell(0, 1))
	for y := 0; y < f.Height(); y++ {
		assert.False(t, rowFull(f.cells[y]), "row %d still full", y)
		assert.Len(t, f.cells[y], 6)
	}
	for y := 2; y < f.Height(); y++ {
		assert.True(t, rowEmpty(f.cells[y]), "row %d should be empty", y)
	}

	assert.Equal(t, 0, f.ClearFullRows())
}

func TestPlayfieldIsTopRowsOccupied(t *testing.T) {
	f := NewPlayfield(10, 22)
	assert.False(t, f.IsTopRowsOccupied())

	f.cells[21][4] = 1
	assert.False(t, f.IsTopRowsOccupied(), "top row is spawn headroom")

	f.cells[20][9] = 1
	assert.True(t, f.IsTopRowsOccupied())

	f.Reset()
	f.cells[19][0] = 1
	assert.False(t, f.IsTopRowsOccupied())
}

func TestPlayfieldSeedRows(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	f := NewPlayfield(10, 22)
	f.SeedRows(4, 6, rng)

	filled := 0
	for y := 0; y < f.Height(); y++ {
		for x := 0; x < f.Width(); x++ {
			v := f.Cell(x, y)
			if y >= 4 {
				assert.Zero(t, v, "cell (%d,%d) above seeded rows", x, y)
				continue
			}
			assert.GreaterOrEqual(t, v, 0)
			assert.LessOrEqual(t, v, 6)
			if v != 0 {
				filled++
			}
		}
	}
	assert.Positive(t, filled)
	assert.Less(t, filled, 40)

	f.Reset()
	f.SeedRows(100, 6, rng)
	assert.True(t, rowEmpty(f.cells[20]))
	assert.True(t, rowEmpty(f.cells[21]))
}

func TestPlayfieldCellOutOfRange(t *testing.T) {
	f := NewPlayfield(4, 4)
	assert.Zero(t, f.Cell(-1, 0))
	assert.Zero(t, f.Cell(0, 4))
}

package tetris

import (
	"strconv"
	"strings"
	"time"
)

// Snapshot captures the complete session state for determinism testing and
// replay. It is comparable with ==.
type Snapshot struct {
	State        State
	Level        int
	RowsCleared  int
	Score        int
	HighScore    int
	FallInterval time.Duration

	ActiveShape    ShapeID
	ActiveRotation int
	ActiveX        int
	ActiveY        int
	ActiveColor    int

	UpcomingShape ShapeID
	UpcomingColor int

	// Grid lists the rows top to bottom separated by '/', one base-36 digit
	// per cell.
	Grid string
}

// Snapshot returns the current session snapshot.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		State:        s.state,
		Level:        s.player.Level,
		RowsCleared:  s.player.RowsCleared,
		Score:        s.Score(),
		HighScore:    s.player.HighScore,
		FallInterval: s.fallInterval,
		Grid:         encodeGrid(s.field),
	}
	if p := s.active; p != nil {
		snap.ActiveShape = p.shape.ID
		snap.ActiveRotation = p.rotation
		snap.ActiveX = p.pos.X
		snap.ActiveY = p.pos.Y
		snap.ActiveColor = p.color
	}
	if p := s.upcoming; p != nil {
		snap.UpcomingShape = p.shape.ID
		snap.UpcomingColor = p.color
	}
	return snap
}

func encodeGrid(f *Playfield) string {
	var sb strings.Builder
	sb.Grow((f.width + 1) * f.height)
	for y := f.height - 1; y >= 0; y-- {
		for x := 0; x < f.width; x++ {
			sb.WriteString(strconv.FormatInt(int64(f.cells[y][x]%36), 36))
		}
		if y > 0 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

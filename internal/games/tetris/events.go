package tetris

import "github.com/vovakirdan/tui-tetris/internal/core"

// Event is a notification published by a Session. Events raised during one
// Update or API call are delivered together when the call returns.
type Event interface {
	tetrisEvent()
}

// PieceMoved carries the active piece's occupancy after it moved, rotated or
// spawned.
type PieceMoved struct {
	Cells []core.Point
	Color int
}

func (PieceMoved) tetrisEvent() {}

// RowsCleared is sent after every lock, including locks that clear nothing.
type RowsCleared struct {
	Count int
	Total int
}

func (RowsCleared) tetrisEvent() {}

// GridChanged carries a copy of the playfield after a lock and clear.
type GridChanged struct {
	Cells [][]int
}

func (GridChanged) tetrisEvent() {}

// UpcomingChanged describes the new preview piece.
type UpcomingChanged struct {
	Shape    ShapeID
	Rotation int
	Color    int
}

func (UpcomingChanged) tetrisEvent() {}

// HighScoreChanged is sent whenever the score beats the stored high score.
type HighScoreChanged struct {
	HighScore int
}

func (HighScoreChanged) tetrisEvent() {}

// StateChanged reports a state machine transition.
type StateChanged struct {
	From State
	To   State
}

func (StateChanged) tetrisEvent() {}

// GameOverReason tells how a run ended.
type GameOverReason int

const (
	// TopOut: a lock left blocks in the second row from the top.
	TopOut GameOverReason = iota
	// BlockOut: the promoted piece overlapped the stack at the spawn point.
	BlockOut
)

func (r GameOverReason) String() string {
	if r == BlockOut {
		return "block out"
	}
	return "top out"
}

// GameOver is sent once when the session ends.
type GameOver struct {
	Reason    GameOverReason
	Score     int
	HighScore int
}

func (GameOver) tetrisEvent() {}

// Observer receives event batches from a session.
type Observer interface {
	OnEvents(events []Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(events []Event)

// OnEvents calls f(events).
func (f ObserverFunc) OnEvents(events []Event) { f(events) }

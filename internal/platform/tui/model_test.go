package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// fakeGame records the frames it is stepped with.
type fakeGame struct {
	frames  []core.InputFrame
	state   core.GameState
	resets  int
	resized [2]int
}

func (g *fakeGame) ID() string { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }
func (g *fakeGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "fake") }
func (g *fakeGame) State() core.GameState { return g.state }
func (g *fakeGame) Resize(w, h int) { g.resized = [2]int{w, h} }

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	return core.StepResult{State: g.state}
}

func (g *fakeGame) lastFrame() core.InputFrame {
	return g.frames[len(g.frames)-1]
}

func newTestModel(g *fakeGame, store *storage.Store) Model {
	return NewModel(g, store, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 1})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return nm
}

func TestModelKeysReachNextTick(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g, nil)

	m = update(t, m, runeKey("a"))
	m = update(t, m, TickMsg{})
	if !g.lastFrame().Has(core.ActionLeft) {
		t.Error("tick should carry ActionLeft")
	}

	update(t, m, TickMsg{})
	if g.lastFrame().Has(core.ActionLeft) {
		t.Error("input should be cleared after a tick")
	}
}

func TestModelFocusMessages(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g, nil)

	m = update(t, m, tea.BlurMsg{})
	m = update(t, m, TickMsg{})
	if !g.lastFrame().Has(core.ActionFocusLost) {
		t.Error("blur should become ActionFocusLost")
	}

	m = update(t, m, tea.FocusMsg{})
	update(t, m, TickMsg{})
	if !g.lastFrame().Has(core.ActionFocusGained) {
		t.Error("focus should become ActionFocusGained")
	}
}

func TestModelResizeKeepsRun(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g, nil)

	update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if g.resized != [2]int{100, 30} {
		t.Errorf("resized = %v, expected [100 30]", g.resized)
	}
	if g.resets != 0 {
		t.Errorf("resizable game was reset %d times", g.resets)
	}
}

func TestModelBackOnlyWhenStopped(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g, nil)
	m.embedded = true

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Error("back should be ignored while running")
	}

	g.state.Paused = true
	m = update(t, m, TickMsg{})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("back should work while paused")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(&fakeGame{}, nil)
	next, cmd := m.Update(runeKey("q"))
	if !next.(Model).IsQuitting() {
		t.Error("q should quit")
	}
	if cmd == nil {
		t.Error("quit should return a command")
	}
	if next.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestModelSavesScoreOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	g := &fakeGame{state: core.GameState{Score: 40, Level: 3, Rows: 4, GameOver: true}}
	m := newTestModel(g, store)
	for i := 0; i < 3; i++ {
		m = update(t, m, TickMsg{})
	}

	scores, err := store.TopScores("fake", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("saved %d scores, expected 1", len(scores))
	}
	if scores[0].Score != 40 || scores[0].Rows != 4 || scores[0].Level != 3 {
		t.Errorf("saved %+v, expected score 40, rows 4, level 3", scores[0])
	}

	// A new run that ends again is saved again
	g.state.GameOver = false
	m = update(t, m, TickMsg{})
	g.state.GameOver = true
	update(t, m, TickMsg{})
	scores, _ = store.TopScores("fake", 10)
	if len(scores) != 2 {
		t.Errorf("saved %d scores, expected 2", len(scores))
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(&fakeGame{}, nil)
	if view := m.View(); len(view) == 0 || view[:4] != "fake" {
		t.Errorf("View() = %q, expected it to start with the game render", view)
	}
}

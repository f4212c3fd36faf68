package tetris

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// Board layout on screen: every grid cell is two characters wide and the
// side panel holds the preview and HUD.
const (
	cellWidth  = 2
	panelWidth = 16
	panelGap   = 1
)

// Package-level settings applied by the CLI before games are created.
var (
	// configPath stores the custom config path set via CLI
	configPath string
	// difficultyPreset stores the difficulty preset set via CLI
	difficultyPreset config.DifficultyPreset
	scoreKeeper      ScoreKeeper
	logger           = log.New(io.Discard)
)

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParseDifficultyPreset(preset)
}

// SetScoreKeeper sets where high scores are read and written.
func SetScoreKeeper(k ScoreKeeper) {
	scoreKeeper = k
}

// SetLogger sets the logger used by new sessions.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game adapts a Session to the registry.Game interface: it maps input frames
// to intents, drives the session with a fixed tick and renders it.
type Game struct {
	id      string
	title   string
	bagMode BagMode

	cfg        config.TetrisConfig
	difficulty *config.DifficultyManager
	session    *Session

	tick       uint64
	tickDur    time.Duration
	startLevel int // -1 uses the configured level

	// Terminals report key presses only; a direction is treated as held
	// until no press arrives for releaseWindow.
	held          Direction
	releaseWindow time.Duration
	releaseLeft   time.Duration

	screenW  int
	screenH  int
	tooSmall bool

	message      string
	messageTicks int
	newBest      bool
}

// New creates the standard game: shapes are dealt from a full shuffled bag.
func New() *Game {
	return &Game{id: "tetris", title: "Tetris", bagMode: BagFull, startLevel: -1}
}

// NewClassic creates the classic variant that reshuffles for every piece.
func NewClassic() *Game {
	return &Game{id: "tetris_classic", title: "Tetris (Classic Shuffle)", bagMode: BagSingle, startLevel: -1}
}

func init() {
	registry.Register(registry.GameInfo{
		ID:          "tetris",
		Description: "Shapes dealt from a shuffled bag of all seven",
	}, func() registry.Game { return New() })
	registry.Register(registry.GameInfo{
		ID:          "tetris_classic",
		Description: "Every shape drawn at random, repeats allowed",
	}, func() registry.Game { return NewClassic() })
}

// ID returns the game identifier.
func (g *Game) ID() string { return g.id }

// Title returns the display name.
func (g *Game) Title() string { return g.title }

// SetStartLevel selects how many seeded rows the next Reset uses.
// Negative values fall back to the configured level.
func (g *Game) SetStartLevel(level int) {
	g.startLevel = level
}

// Reset loads configuration and starts a fresh session.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.tick = 0
	g.held = DirNone
	g.releaseLeft = 0
	g.message = ""
	g.messageTicks = 0
	g.newBest = false
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH

	g.tickDur = cfg.TickInterval()

	g.applyConfig(g.loadConfig())
	g.startSession(cfg.Seed)
}

// applyConfig installs cfg together with everything derived from it.
func (g *Game) applyConfig(cfg config.TetrisConfig) {
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.releaseWindow = cfg.Timing.RepeatInterval * 9 / 10
	g.tooSmall = g.screenW < g.requiredWidth() || g.screenH < g.requiredHeight()
}

// startSession creates and starts a session from the current config. A
// rejected config falls back to the built-in defaults; defaults that fail
// too are a programming defect.
func (g *Game) startSession(seed int64) {
	session, err := NewSession(g.options(seed))
	if err != nil {
		logger.Error("invalid session options, using defaults", "error", err)
		g.applyConfig(config.DefaultTetrisConfig())
		session, err = NewSession(g.options(seed))
		if err != nil {
			panic(fmt.Errorf("tetris: default options rejected: %w", err))
		}
	}
	g.session = session
	g.session.Start()
}

func (g *Game) loadConfig() config.TetrisConfig {
	cfg, err := config.LoadTetris(configPath)
	if err != nil {
		logger.Warn("could not load config, using defaults", "error", err)
		cfg = config.DefaultTetrisConfig()
	}
	if difficultyPreset != "" {
		config.ApplyTetrisPreset(&cfg, difficultyPreset)
	}
	if g.startLevel >= 0 {
		cfg.Gameplay.StartLevel = g.startLevel
	}
	if err := cfg.Validate(); err != nil {
		logger.Warn("invalid config, using defaults", "error", err)
		cfg = config.DefaultTetrisConfig()
	}
	return cfg
}

func (g *Game) options(seed int64) Options {
	opts := DefaultOptions()
	opts.Width = g.cfg.Grid.Width
	opts.Height = g.cfg.Grid.Height
	opts.FallInterval = g.cfg.Timing.FallInterval
	opts.RepeatInterval = g.cfg.Timing.RepeatInterval
	opts.StartLevel = g.cfg.Gameplay.StartLevel
	opts.PaletteSize = g.cfg.Gameplay.PaletteSize
	opts.ScorePerRow = g.cfg.Gameplay.ScorePerRow
	opts.BagMode = BagMode(g.cfg.Gameplay.BagMode)
	if g.bagMode == BagSingle {
		opts.BagMode = BagSingle
	}
	opts.Seed = seed
	opts.Scores = scoreKeeper
	opts.Observer = g
	opts.Logger = logger.With("game", g.id)
	opts.FallInterval = g.difficulty.FallInterval(opts.FallInterval, 0)
	return opts
}

// Session exposes the underlying simulation.
func (g *Game) Session() *Session { return g.session }

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++
	if g.messageTicks > 0 {
		g.messageTicks--
	}

	if input.Has(core.ActionFocusLost) {
		g.session.SetFocus(false)
	}
	if input.Has(core.ActionFocusGained) {
		g.session.SetFocus(true)
	}

	if input.Has(core.ActionRestart) && g.session.State() == StateGameOver {
		g.held = DirNone
		g.newBest = false
		g.session.PlayAgain()
		g.applyDifficulty()
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) && g.session.State() != StateGameOver {
		g.session.TogglePause()
	}

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	g.processInput(input)
	g.session.Update(g.tickDur)
	g.applyDifficulty()

	return core.StepResult{State: g.State()}
}

// processInput turns key presses into intents. A press refreshes the
// release window; once it runs out the intent is cancelled.
func (g *Game) processInput(input core.InputFrame) {
	dir := DirNone
	switch {
	case input.Has(core.ActionRotate):
		dir = DirRotate
	case input.Has(core.ActionLeft):
		dir = DirLeft
	case input.Has(core.ActionRight):
		dir = DirRight
	case input.Has(core.ActionDown):
		dir = DirDown
	}

	if dir != DirNone {
		if dir != g.held {
			g.session.OnDirectionCancel()
		}
		g.session.OnDirectionChange(dir)
		g.held = dir
		g.releaseLeft = g.releaseWindow
		return
	}

	if g.held == DirNone {
		return
	}
	g.releaseLeft -= g.tickDur
	if g.releaseLeft <= 0 {
		g.session.OnDirectionCancel()
		g.held = DirNone
	}
}

func (g *Game) applyDifficulty() {
	next := g.difficulty.FallInterval(g.cfg.Timing.FallInterval, g.session.RowsCleared())
	if next == g.session.FallInterval() {
		return
	}
	logger.Debug("fall interval changed", "from", g.session.FallInterval(), "to", next)
	g.session.SetFallInterval(next)
}

// OnEvents implements Observer and drives HUD messages.
func (g *Game) OnEvents(events []Event) {
	for _, e := range events {
		switch ev := e.(type) {
		case RowsCleared:
			if ev.Count > 0 {
				g.flash(rowsClearedLabel(ev.Count))
			}
		case HighScoreChanged:
			g.newBest = true
		}
	}
}

func (g *Game) flash(msg string) {
	g.message = msg
	g.messageTicks = int(time.Second / g.tickDur)
}

func rowsClearedLabel(n int) string {
	switch n {
	case 1:
		return "SINGLE"
	case 2:
		return "DOUBLE"
	case 3:
		return "TRIPLE"
	case 4:
		return "TETRIS!"
	default:
		return fmt.Sprintf("%d ROWS", n)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	st := g.session.State()
	player := g.session.Player()
	return core.GameState{
		Score:     g.session.Score(),
		HighScore: player.HighScore,
		Level:     player.Level,
		Rows:      player.RowsCleared,
		GameOver:  st == StateGameOver,
		Paused:    st == StatePaused,
	}
}

// GameSnapshot is the session snapshot plus the adapter's tick counter.
type GameSnapshot struct {
	Tick uint64
	Snapshot
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() GameSnapshot {
	return GameSnapshot{Tick: g.tick, Snapshot: g.session.Snapshot()}
}

// Resize adapts the layout to a new terminal size and keeps the run going.
// The simulation holds while the window is too small for the board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	wasSmall := g.tooSmall
	g.tooSmall = w < g.requiredWidth() || h < g.requiredHeight()
	if g.tooSmall && !wasSmall {
		logger.Debug("window too small, holding simulation", "width", w, "height", h)
	}
}

func (g *Game) requiredWidth() int {
	return g.cfg.Grid.Width*cellWidth + 2 + panelGap + panelWidth
}

func (g *Game) requiredHeight() int {
	return g.cfg.Grid.Height + 2
}

// boardRect returns the bordered board area, centered on screen.
func (g *Game) boardRect(dst *core.Screen) core.Rect {
	w := g.cfg.Grid.Width*cellWidth + 2
	h := g.cfg.Grid.Height + 2
	x := max(0, (dst.Width()-(w+panelGap+panelWidth))/2)
	y := max(0, (dst.Height()-h)/2)
	return core.NewRect(x, y, w, h)
}

// Render draws the current game state.
func (g *Game) Render(dst *core.Screen) {
	if g.tooSmall {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1,
			fmt.Sprintf("Need %dx%d, have %dx%d", g.requiredWidth(), g.requiredHeight(), dst.Width(), dst.Height()))
		return
	}

	board := g.boardRect(dst)
	dst.DrawBox(board)
	g.renderGrid(dst, board)
	g.renderActive(dst, board)
	g.renderPanel(dst, board)

	switch g.session.State() {
	case StateGameOver:
		g.renderOverlay(dst, board, "Game Over", "Press R to restart")
	case StatePaused:
		g.renderOverlay(dst, board, "Paused", "Press P to continue")
	}
}

// screenPos maps a grid cell (row 0 at the bottom) to the screen.
func (g *Game) screenPos(board core.Rect, x, y int) (int, int) {
	return board.X + 1 + x*cellWidth, board.Y + 1 + (g.cfg.Grid.Height - 1 - y)
}

func (g *Game) renderGrid(dst *core.Screen, board core.Rect) {
	field := g.session.Playfield()
	for y := 0; y < field.Height(); y++ {
		for x := 0; x < field.Width(); x++ {
			sx, sy := g.screenPos(board, x, y)
			if c := field.Cell(x, y); c != 0 {
				drawBlock(dst, sx, sy, core.PaletteColor(c))
				continue
			}
			dst.SetColored(sx+1, sy, '.', core.ColorGray)
		}
	}
}

func (g *Game) renderActive(dst *core.Screen, board core.Rect) {
	p := g.session.Active()
	if p == nil {
		return
	}
	color := core.PaletteColor(p.Color())
	inner := board.Inset(1)
	for _, c := range p.Cells() {
		// Cells above the grid have no screen row
		sx, sy := g.screenPos(board, c.X, c.Y)
		if !inner.Contains(sx, sy) {
			continue
		}
		drawBlock(dst, sx, sy, color)
	}
}

func (g *Game) renderPanel(dst *core.Screen, board core.Rect) {
	x := board.Right() + panelGap
	y := board.Y

	dst.DrawText(x, y, "NEXT")
	preview := core.NewRect(x, y+1, TemplateSize*cellWidth+2, TemplateSize+2)
	dst.DrawBox(preview)
	if up := g.session.Upcoming(); up != nil {
		color := core.PaletteColor(up.Color())
		frame := up.Frame()
		for r := 0; r < TemplateSize; r++ {
			for c := 0; c < TemplateSize; c++ {
				if frame[r][c] {
					drawBlock(dst, preview.X+1+c*cellWidth, preview.Y+1+r, color)
				}
			}
		}
	}

	y = preview.Bottom() + 1
	lines := []string{
		fmt.Sprintf("SCORE %d", g.session.Score()),
		fmt.Sprintf("LINES %d", g.session.RowsCleared()),
		fmt.Sprintf("LEVEL %d", g.session.Level()),
		fmt.Sprintf("BEST  %d", g.session.HighScore()),
	}
	for i, line := range lines {
		dst.DrawText(x, y+i, line)
	}
	y += len(lines) + 1

	if g.newBest {
		dst.SetColored(x, y, '*', core.ColorBrightYellow)
		dst.DrawText(x+2, y, "NEW BEST")
	}
	if g.messageTicks > 0 && g.message != "" {
		dst.DrawText(x, y+1, g.message)
	}

	help := board.Bottom() - 4
	dst.DrawText(x, help, "←/→ move  ↑ rot")
	dst.DrawText(x, help+1, "↓ drop  P pause")
	dst.DrawText(x, help+2, "Q quit")
}

func (g *Game) renderOverlay(dst *core.Screen, board core.Rect, line1, line2 string) {
	maxLen := max(len(line1), len(line2))
	boxW := min(maxLen+4, board.W)
	box := core.NewRect(board.X+(board.W-boxW)/2, board.Y+(board.H-5)/2, boxW, 5)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawText(box.X+(box.W-len(line1))/2, box.Y+1, line1)
	dst.DrawText(box.X+(box.W-len(line2))/2, box.Y+3, line2)
}

func drawBlock(dst *core.Screen, x, y int, color core.Color) {
	dst.SetColored(x, y, '█', color)
	dst.SetColored(x+1, y, '█', color)
}

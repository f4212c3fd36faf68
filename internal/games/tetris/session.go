package tetris

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// HighScoreKey is the persistence key for the best score.
const HighScoreKey = "tetris.high_score"

// Reference settings.
const (
	DefaultWidth          = 10
	DefaultHeight         = 22
	DefaultFallInterval   = 500 * time.Millisecond
	DefaultRepeatInterval = 100 * time.Millisecond
	DefaultPaletteSize    = 7
	DefaultScorePerRow    = 10
)

// State is the session state machine.
type State int

const (
	StateReady State = iota
	StateRunning
	StatePaused
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// ScoreKeeper persists integers by key. GetInt returns 0 for a missing key.
type ScoreKeeper interface {
	GetInt(key string) (int, error)
	SetInt(key string, value int) error
}

// Options configures a Session.
type Options struct {
	Width          int
	Height         int
	FallInterval   time.Duration
	RepeatInterval time.Duration
	StartLevel     int
	PaletteSize    int
	ScorePerRow    int
	BagMode        BagMode
	Seed           int64
	Catalogue      Catalogue

	Scores   ScoreKeeper // optional
	Observer Observer    // optional
	Logger   *log.Logger // optional
}

// DefaultOptions returns the reference 10x22 setup.
func DefaultOptions() Options {
	return Options{
		Width:          DefaultWidth,
		Height:         DefaultHeight,
		FallInterval:   DefaultFallInterval,
		RepeatInterval: DefaultRepeatInterval,
		PaletteSize:    DefaultPaletteSize,
		ScorePerRow:    DefaultScorePerRow,
		BagMode:        BagFull,
		Catalogue:      StandardCatalogue(),
	}
}

func (o Options) validate() error {
	if o.Width < TemplateSize || o.Height < TemplateSize {
		return fmt.Errorf("%w: grid %dx%d is smaller than %dx%d", ErrInvalidConfig, o.Width, o.Height, TemplateSize, TemplateSize)
	}
	if o.FallInterval <= 0 {
		return fmt.Errorf("%w: fall interval must be positive, got %s", ErrInvalidConfig, o.FallInterval)
	}
	if o.RepeatInterval <= 0 {
		return fmt.Errorf("%w: repeat interval must be positive, got %s", ErrInvalidConfig, o.RepeatInterval)
	}
	if err := validateLevel(o.StartLevel, o.Height); err != nil {
		return err
	}
	if o.PaletteSize < 1 {
		return fmt.Errorf("%w: palette size must be at least 1, got %d", ErrInvalidConfig, o.PaletteSize)
	}
	if o.ScorePerRow < 0 {
		return fmt.Errorf("%w: score per row must not be negative, got %d", ErrInvalidConfig, o.ScorePerRow)
	}
	if _, err := ParseBagMode(string(o.BagMode)); err != nil {
		return err
	}
	if len(o.Catalogue) == 0 {
		return fmt.Errorf("%w: empty shape catalogue", ErrInvalidConfig)
	}
	for i, s := range o.Catalogue {
		if s == nil || s.FrameCount() == 0 {
			return fmt.Errorf("%w: catalogue entry %d has no frames", ErrInvalidConfig, i)
		}
	}
	return nil
}

func validateLevel(level, height int) error {
	if level < 0 || level > height-TemplateSize {
		return fmt.Errorf("%w: level %d outside [0, %d]", ErrInvalidConfig, level, height-TemplateSize)
	}
	return nil
}

// Player tracks progress for one run plus the persisted best score.
type Player struct {
	Level       int
	RowsCleared int
	HighScore   int
}

// Score is rows cleared times the per-row constant.
func (p Player) Score(perRow int) int {
	return p.RowsCleared * perRow
}

// Session owns the playfield and the active and upcoming pieces. It is
// driven by one external tick and is not safe for concurrent use.
type Session struct {
	opts   Options
	logger *log.Logger

	// rng feeds both row seeding and the supply so one seed fixes a run.
	rng *rand.Rand

	field    *Playfield
	supply   *Supply
	active   *Piece
	upcoming *Piece

	state        State
	player       Player
	fallInterval time.Duration

	pending []Event
}

// NewSession validates opts and reads the stored high score. The session
// starts in StateReady; call Start to spawn the first piece.
func NewSession(opts Options) (*Session, error) {
	if opts.BagMode == "" {
		opts.BagMode = BagFull
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	rng := rand.New(rand.NewSource(opts.Seed))

	s := &Session{
		opts:         opts,
		logger:       logger,
		rng:          rng,
		field:        NewPlayfield(opts.Width, opts.Height),
		supply:       NewSupply(opts.Catalogue, opts.PaletteSize, opts.BagMode, rng),
		fallInterval: opts.FallInterval,
		player:       Player{Level: opts.StartLevel},
	}

	if opts.Scores != nil {
		hs, err := opts.Scores.GetInt(HighScoreKey)
		if err != nil {
			logger.Warn("could not read high score", "error", err)
		} else {
			s.player.HighScore = hs
		}
	}
	return s, nil
}

// Start seeds the playfield and spawns the first piece. It only acts in
// StateReady.
func (s *Session) Start() {
	defer s.flush()
	if s.state != StateReady {
		return
	}
	s.begin()
}

// PlayAgain resets the playfield, score and pieces after a game over.
func (s *Session) PlayAgain() bool {
	defer s.flush()
	if s.state != StateGameOver {
		return false
	}
	s.begin()
	return true
}

// SetLevel changes the number of seeded rows used by the next Start or
// PlayAgain.
func (s *Session) SetLevel(level int) error {
	if err := validateLevel(level, s.opts.Height); err != nil {
		return err
	}
	s.player.Level = level
	return nil
}

func (s *Session) begin() {
	s.field.Reset()
	s.player.RowsCleared = 0
	s.fallInterval = s.opts.FallInterval
	s.field.SeedRows(s.player.Level, s.opts.PaletteSize, s.rng)
	if n := s.field.ClearFullRows(); n > 0 {
		s.logger.Debug("removed full seeded rows", "rows", n)
	}
	s.emit(GridChanged{Cells: s.field.Snapshot()})

	s.setState(StateRunning)
	s.logger.Info("session started", "level", s.player.Level, "seed", s.opts.Seed)

	s.active = nil
	s.upcoming = s.supply.Next()
	s.spawn()
}

// SpawnPoint is the top-center anchor new pieces are placed at.
func (s *Session) SpawnPoint() core.Point {
	return core.Point{X: s.opts.Width/2 - TemplateSize/2, Y: s.opts.Height - TemplateSize}
}

// spawn promotes the preview to the active piece and draws a new preview.
// A promoted piece that already overlaps the stack ends the game.
func (s *Session) spawn() {
	p := s.upcoming
	p.SetPosition(s.SpawnPoint())
	s.active = p

	s.upcoming = s.supply.Next()
	s.emit(UpcomingChanged{
		Shape:    s.upcoming.shape.ID,
		Rotation: s.upcoming.rotation,
		Color:    s.upcoming.color,
	})
	s.logger.Debug("spawned piece", "shape", p.shape.ID, "rotation", p.rotation, "color", p.color)

	if !s.field.IsValid(p.pos, p.Frame()) {
		p.movable = false
		s.endGame(BlockOut)
		return
	}
	s.emitOccupancy()
}

// Update advances the simulation by dt. Per tick it resolves the pending
// direction, applies soft drop and then gravity, and locks a landed piece.
func (s *Session) Update(dt time.Duration) {
	defer s.flush()
	if s.state != StateRunning || s.active == nil || !s.active.movable {
		return
	}
	p := s.active

	moved := p.resolveIntent(s.field, dt, s.opts.RepeatInterval)
	if p.softDrop && p.TryShift(s.field, 0, -1) {
		moved = true
	}
	fell, landed := p.applyGravity(s.field, dt, s.fallInterval)
	if moved || fell {
		s.emitOccupancy()
	}
	if landed {
		s.lock()
	}
}

func (s *Session) lock() {
	p := s.active
	if err := s.field.Commit(p); err != nil {
		panic(fmt.Errorf("tetris: lock %s piece at %v: %w", p.shape.ID, p.pos, err))
	}

	n := s.field.ClearFullRows()
	s.player.RowsCleared += n
	s.emit(RowsCleared{Count: n, Total: s.player.RowsCleared})
	s.emit(GridChanged{Cells: s.field.Snapshot()})
	if n > 0 {
		s.logger.Debug("rows cleared", "count", n, "total", s.player.RowsCleared)
	}
	s.updateHighScore()

	if s.field.IsTopRowsOccupied() {
		s.endGame(TopOut)
		return
	}
	s.spawn()
}

func (s *Session) updateHighScore() {
	score := s.Score()
	if score <= s.player.HighScore {
		return
	}
	s.player.HighScore = score
	s.emit(HighScoreChanged{HighScore: score})
	if s.opts.Scores == nil {
		return
	}
	if err := s.opts.Scores.SetInt(HighScoreKey, score); err != nil {
		s.logger.Error("could not save high score", "error", err)
	}
}

func (s *Session) endGame(reason GameOverReason) {
	s.setState(StateGameOver)
	s.emit(GameOver{Reason: reason, Score: s.Score(), HighScore: s.player.HighScore})
	s.logger.Info("game over", "reason", reason, "score", s.Score(), "rows", s.player.RowsCleared)
}

// OnDirectionChange sets the active piece's pending intent. It acts on the
// next Update; ignored unless the session is running.
func (s *Session) OnDirectionChange(dir Direction) {
	if s.state != StateRunning || s.active == nil || dir == DirNone {
		return
	}
	s.active.setIntent(dir)
}

// OnDirectionCancel clears the pending intent and soft drop and disarms the
// repeat timer.
func (s *Session) OnDirectionCancel() {
	if s.active == nil {
		return
	}
	s.active.cancelIntent()
}

// SetFocus pauses a running session when focus is lost and resumes a paused
// one when it returns. A finished game stays over.
func (s *Session) SetFocus(focused bool) {
	defer s.flush()
	switch {
	case !focused && s.state == StateRunning:
		s.setState(StatePaused)
	case focused && s.state == StatePaused:
		s.setState(StateRunning)
	}
}

// TogglePause switches between Running and Paused.
func (s *Session) TogglePause() {
	s.SetFocus(s.state != StateRunning)
}

// SetFallInterval changes the gravity period, e.g. for difficulty scaling.
// Non-positive values are ignored.
func (s *Session) SetFallInterval(d time.Duration) {
	if d > 0 {
		s.fallInterval = d
	}
}

func (s *Session) setState(to State) {
	if s.state == to {
		return
	}
	from := s.state
	s.state = to
	s.emit(StateChanged{From: from, To: to})
}

func (s *Session) emitOccupancy() {
	s.emit(PieceMoved{Cells: s.active.Cells(), Color: s.active.color})
}

func (s *Session) emit(e Event) {
	s.pending = append(s.pending, e)
}

func (s *Session) flush() {
	if len(s.pending) == 0 {
		return
	}
	events := s.pending
	s.pending = nil
	if s.opts.Observer != nil {
		s.opts.Observer.OnEvents(events)
	}
}

func (s *Session) State() State { return s.state }
func (s *Session) Playfield() *Playfield { return s.field }
func (s *Session) Active() *Piece { return s.active }
func (s *Session) Upcoming() *Piece { return s.upcoming }
func (s *Session) Player() Player { return s.player }
func (s *Session) Level() int { return s.player.Level }
func (s *Session) RowsCleared() int { return s.player.RowsCleared }
func (s *Session) HighScore() int { return s.player.HighScore }
func (s *Session) FallInterval() time.Duration { return s.fallInterval }
func (s *Session) Options() Options { return s.opts }

// Score returns the current run's score.
func (s *Session) Score() int {
	return s.player.Score(s.opts.ScorePerRow)
}

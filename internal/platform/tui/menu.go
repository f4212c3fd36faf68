package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// levelSetter is implemented by games that accept a starting level.
type levelSetter interface {
	SetStartLevel(level int)
}

// Selection is what the player picked in the menu.
type Selection struct {
	GameID string
	Level  int
}

// ApplySelection creates the selected game and applies its start level.
func ApplySelection(sel Selection) (registry.Game, error) {
	game, err := registry.Create(sel.GameID)
	if err != nil {
		return nil, err
	}
	if ls, ok := game.(levelSetter); ok {
		ls.SetStartLevel(sel.Level)
	}
	return game, nil
}

// MenuModel lets the player pick a variant and then a starting level.
type MenuModel struct {
	items         []registry.GameInfo
	cursor        int
	levelCursor   int
	levelCount    int
	inLevelSelect bool
	width         int
	height        int
	config        core.RuntimeConfig
	keyMapper     *KeyMapper

	selected       *Selection
	quitting       bool
	openScoreboard bool
}

// NewMenuModel creates a menu offering levels 0 through maxLevel.
func NewMenuModel(cfg core.RuntimeConfig, maxLevel int) MenuModel {
	return MenuModel{
		items:      registry.List(),
		levelCount: max(1, maxLevel+1),
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action := m.keyMapper.MapKeyToMenuAction(msg)
		if m.inLevelSelect {
			return m.handleLevelKey(action)
		}
		return m.handleVariantKey(action)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

func (m MenuModel) handleVariantKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		if len(m.items) > 0 {
			m.inLevelSelect = true
			m.levelCursor = 0
		}
	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}
	return m, nil
}

func (m MenuModel) handleLevelKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < m.levelCount-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		m.selected = &Selection{
			GameID: m.items[m.cursor].ID,
			Level:  m.levelCursor,
		}
		return m, tea.Quit
	case MenuActionBack:
		m.inLevelSelect = false
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	if m.inLevelSelect {
		return m.viewLevels()
	}
	return m.viewVariants()
}

func (m MenuModel) viewVariants() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("T E T R I S", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a variant", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+item.Title, m.width))
		b.WriteString("\n")
	}

	if len(m.items) > 0 && m.items[m.cursor].Description != "" {
		b.WriteString("\n")
		b.WriteString(centerText(m.items[m.cursor].Description, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit", m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) viewLevels() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("STARTING LEVEL", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Higher levels start with rows of scattered blocks", m.width))
	b.WriteString("\n\n")

	// Keep the cursor visible on short terminals
	visible := max(1, min(m.levelCount, m.height-9))
	first := min(max(0, m.levelCursor-visible/2), m.levelCount-visible)
	for i := first; i < first+visible; i++ {
		cursor := "  "
		if i == m.levelCursor {
			cursor = "> "
		}
		b.WriteString(centerText(fmt.Sprintf("%sLevel %2d", cursor, i), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Start  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the selection, or nil if none was made.
func (m MenuModel) Selected() *Selection {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Selection       *Selection
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(cfg core.RuntimeConfig, maxLevel int) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(cfg, maxLevel), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Selected() != nil:
		result.Selection = m.Selected()
	default:
		result.Quit = true
	}
	return result, nil
}

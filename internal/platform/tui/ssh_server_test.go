package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func sessionMsgs(t *testing.T, m SessionModel, msgs ...tea.Msg) SessionModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(SessionModel)
	}
	return m
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	m := NewSessionModel(nil, testConfig(), 18, nil)

	m = sessionMsgs(t, m, keyEnter, keyEnter)
	if m.screen != screenGame {
		t.Fatalf("screen = %v, expected the game", m.screen)
	}
	if m.View() == "" {
		t.Error("game view should not be empty")
	}

	// Leaving needs a paused run
	m = sessionMsgs(t, m, keyEsc)
	if m.screen != screenGame {
		t.Fatal("esc should not leave a running game")
	}

	m = sessionMsgs(t, m, runeKey("p"), TickMsg{}, keyEsc)
	if m.screen != screenMenu {
		t.Fatalf("screen = %v, expected the menu", m.screen)
	}
	if m.game != nil {
		t.Error("game should be dropped on return to the menu")
	}
}

func TestSessionScoreboardAndBack(t *testing.T) {
	m := NewSessionModel(nil, testConfig(), 18, nil)

	m = sessionMsgs(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenScores {
		t.Fatalf("screen = %v, expected the scoreboard", m.screen)
	}
	if m.View() == "" {
		t.Error("scoreboard view should not be empty")
	}

	m = sessionMsgs(t, m, keyEsc)
	if m.screen != screenMenu {
		t.Errorf("screen = %v, expected the menu", m.screen)
	}
	if m.quitting {
		t.Error("leaving the scoreboard should not end the session")
	}
}

func TestSessionQuit(t *testing.T) {
	m := sessionMsgs(t, NewSessionModel(nil, testConfig(), 18, nil), runeKey("q"))
	if !m.quitting {
		t.Error("q should end the session")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

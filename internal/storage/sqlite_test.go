package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func save(t *testing.T, store *Store, gameID string, score, rows int) {
	t.Helper()
	if _, err := store.SaveScore(ScoreEntry{GameID: gameID, Score: score, Rows: rows}); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.SetInt("tetris.high_score", 70); err != nil {
		t.Fatalf("SetInt() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	v, err := store.GetInt("tetris.high_score")
	if err != nil {
		t.Fatalf("GetInt() failed: %v", err)
	}
	if v != 70 {
		t.Errorf("GetInt() after reopen = %d, expected 70", v)
	}
}

func TestStoreSettings(t *testing.T) {
	store := openTestStore(t)

	v, err := store.GetInt("missing")
	if err != nil {
		t.Fatalf("GetInt() failed: %v", err)
	}
	if v != 0 {
		t.Errorf("GetInt(missing) = %d, expected 0", v)
	}

	if err := store.SetInt("tetris.high_score", 40); err != nil {
		t.Fatalf("SetInt() failed: %v", err)
	}
	if err := store.SetInt("tetris.high_score", 90); err != nil {
		t.Fatalf("SetInt() overwrite failed: %v", err)
	}
	if err := store.SetInt("other", 5); err != nil {
		t.Fatalf("SetInt() failed: %v", err)
	}

	v, err = store.GetInt("tetris.high_score")
	if err != nil {
		t.Fatalf("GetInt() failed: %v", err)
	}
	if v != 90 {
		t.Errorf("GetInt() = %d, expected 90", v)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	save(t, store, "tetris", 100, 10)
	save(t, store, "tetris", 50, 5)
	save(t, store, "tetris", 200, 20)
	save(t, store, "tetris_classic", 500, 50)

	scores, err := store.TopScores("tetris", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	expected := []int{200, 100, 50}
	for i, e := range expected {
		if scores[i].Score != e {
			t.Errorf("scores[%d].Score = %d, expected %d", i, scores[i].Score, e)
		}
	}
	if scores[0].Rows != 20 {
		t.Errorf("scores[0].Rows = %d, expected 20", scores[0].Rows)
	}

	classic, err := store.TopScores("tetris_classic", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(classic) != 1 {
		t.Errorf("Expected 1 classic score, got %d", len(classic))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		save(t, store, "test", (i+1)*100, i)
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}

	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("tetris")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	save(t, store, "tetris", 100, 10)
	save(t, store, "tetris", 300, 30)
	save(t, store, "tetris", 200, 20)

	high, err = store.HighScore("tetris")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	save(t, store, "tetris", 100, 10)
	save(t, store, "tetris", 200, 20)
	save(t, store, "tetris_classic", 300, 30)

	if err := store.ClearScores("tetris"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores("tetris", 10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}

	classic, _ := store.TopScores("tetris_classic", 10)
	if len(classic) != 1 {
		t.Errorf("classic scores should not be affected by clearing tetris")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		save(t, store, "test", i*10, i)
	}

	scores, err := store.AllScores("test")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}

	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	save(t, store, "tetris", 100, 10)
	save(t, store, "tetris", 300, 30)

	stats, err := store.GetGameStats("tetris")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 {
		t.Errorf("GamesCount = %d, expected 2", stats.GamesCount)
	}
	if stats.HighScore != 300 {
		t.Errorf("HighScore = %d, expected 300", stats.HighScore)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, expected 200", stats.AvgScore)
	}
	if stats.TotalRows != 40 {
		t.Errorf("TotalRows = %d, expected 40", stats.TotalRows)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 1 || all["tetris"] == nil {
		t.Errorf("GetAllGamesStats() = %v, expected only tetris", all)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

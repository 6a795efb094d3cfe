package storage

import (
	"database/sql"
	"testing"
	"time"

	"loteria/internal/card"
	"loteria/internal/game"
	"loteria/internal/stats"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func calls(t *testing.T, numbers ...int) []card.Card {
	t.Helper()
	var out []card.Card
	for _, n := range numbers {
		c, ok := card.Standard().ByNumber(n)
		if !ok {
			t.Fatalf("no card %d", n)
		}
		out = append(out, c)
	}
	return out
}

func testResult(t *testing.T, id, winner string, ended time.Time, numbers ...int) game.Result {
	t.Helper()
	state := game.Finished
	if winner == "" {
		state = game.Cancelled
	}
	return game.Result{
		GameID:       id,
		State:        state,
		Winner:       winner,
		Participants: []string{"Ana", "Beto"},
		Pattern:      "Four Corners",
		Calls:        calls(t, numbers...),
		StartedAt:    ended.Add(-90 * time.Second),
		EndedAt:      ended,
	}
}

func TestSaveAndGetGame(t *testing.T) {
	s := newTestStore(t)
	ended := time.Date(2024, 5, 1, 21, 0, 0, 0, time.UTC)
	r := testResult(t, "g1", "Ana", ended, 1, 2, 3)

	id, err := s.SaveResult(r)
	if err != nil {
		t.Fatalf("save result: %v", err)
	}
	if id != "g1" {
		t.Fatalf("expected id g1, got %s", id)
	}

	g, err := s.GetGame("g1")
	if err != nil {
		t.Fatalf("get game: %v", err)
	}
	if g.State != "finished" {
		t.Fatalf("expected state finished, got %s", g.State)
	}
	if g.Winner != "Ana" {
		t.Fatalf("expected winner Ana, got %s", g.Winner)
	}
	if g.CardsCalled != 3 {
		t.Fatalf("expected 3 cards called, got %d", g.CardsCalled)
	}
	if g.Duration != 90*time.Second {
		t.Fatalf("expected 90s, got %v", g.Duration)
	}
	if !g.EndedAt.Equal(ended) {
		t.Fatalf("expected ended %v, got %v", ended, g.EndedAt)
	}
	if len(g.Players) != 2 || g.Players[0] != "Ana" || g.Players[1] != "Beto" {
		t.Fatalf("unexpected players %v", g.Players)
	}
	if len(g.Calls) != 3 || g.Calls[0] != 1 || g.Calls[2] != 3 {
		t.Fatalf("unexpected calls %v", g.Calls)
	}
}

func TestSaveResultAssignsID(t *testing.T) {
	s := newTestStore(t)
	id, err := s.SaveResult(testResult(t, "", "Ana", time.Now(), 5))
	if err != nil {
		t.Fatalf("save result: %v", err)
	}
	if id == "" {
		t.Fatal("expected generated id")
	}
	if _, err := s.GetGame(id); err != nil {
		t.Fatalf("get generated game: %v", err)
	}
}

func TestSaveResultDuplicateID(t *testing.T) {
	s := newTestStore(t)
	r := testResult(t, "dup", "Ana", time.Now(), 1)
	if _, err := s.SaveResult(r); err != nil {
		t.Fatalf("save result: %v", err)
	}
	if _, err := s.SaveResult(r); err == nil {
		t.Fatal("expected error on duplicate id")
	}
	// The failed insert must not leave extra rows behind.
	g, err := s.GetGame("dup")
	if err != nil {
		t.Fatalf("get game: %v", err)
	}
	if len(g.Players) != 2 {
		t.Fatalf("expected 2 players after rollback, got %d", len(g.Players))
	}
}

func TestGetGameNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetGame("nonexistent")
	if err != sql.ErrNoRows {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestListGamesNewestFirst(t *testing.T) {
	s := newTestStore(t)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.SaveResult(testResult(t, "a", "Ana", base, 1))
	s.SaveResult(testResult(t, "b", "Beto", base.Add(time.Hour), 2))
	s.SaveResult(testResult(t, "c", "", base.Add(2*time.Hour), 3))

	rows, err := s.ListGames(0)
	if err != nil {
		t.Fatalf("list games: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 games, got %d", len(rows))
	}
	if rows[0].ID != "c" || rows[2].ID != "a" {
		t.Fatalf("unexpected order %s, %s, %s", rows[0].ID, rows[1].ID, rows[2].ID)
	}
	if rows[0].State != "cancelled" {
		t.Fatalf("expected cancelled, got %s", rows[0].State)
	}
	if len(rows[1].Players) != 2 {
		t.Fatalf("expected players on listed rows, got %v", rows[1].Players)
	}

	limited, err := s.ListGames(2)
	if err != nil {
		t.Fatalf("list games: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("expected 2 games, got %d", len(limited))
	}
}

func TestLoadStats(t *testing.T) {
	s := newTestStore(t)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.SaveResult(testResult(t, "a", "Ana", base, 1, 2))
	s.SaveResult(testResult(t, "b", "ana", base.Add(time.Minute), 2))
	s.SaveResult(testResult(t, "c", "", base.Add(2*time.Minute), 2, 3))

	agg := stats.New()
	n, err := s.LoadStats(agg)
	if err != nil {
		t.Fatalf("load stats: %v", err)
	}
	if n != 3 || agg.Games() != 3 {
		t.Fatalf("expected 3 games replayed, got %d (agg %d)", n, agg.Games())
	}
	if agg.Wins("Ana") != 2 {
		t.Fatalf("expected 2 wins for Ana, got %d", agg.Wins("Ana"))
	}
	c, count, ok := agg.MostCalled()
	if !ok || c.Number != 2 || count != 3 {
		t.Fatalf("expected card 2 called 3 times, got %d x%d", c.Number, count)
	}
}

func TestDeleteGame(t *testing.T) {
	s := newTestStore(t)
	s.SaveResult(testResult(t, "g1", "Ana", time.Now(), 1, 2))

	if err := s.DeleteGame("g1"); err != nil {
		t.Fatalf("delete game: %v", err)
	}
	_, err := s.GetGame("g1")
	if err != sql.ErrNoRows {
		t.Fatalf("expected sql.ErrNoRows after delete, got %v", err)
	}
	numbers, err := s.calls("g1")
	if err != nil {
		t.Fatalf("calls: %v", err)
	}
	if len(numbers) != 0 {
		t.Fatalf("expected no calls after delete, got %v", numbers)
	}
}

package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"loteria/internal/card"
	"loteria/internal/game"
	"loteria/internal/stats"
)

// GameRow is a finished or cancelled game as stored.
type GameRow struct {
	ID          string
	State       string
	Winner      string // empty when nobody won
	Pattern     string
	CardsCalled int
	Duration    time.Duration
	StartedAt   time.Time
	EndedAt     time.Time
	Players     []string
	Calls       []int // card numbers in call order
}

// Store handles SQLite persistence of game results.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database and runs migrations.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// Each connection to ":memory:" is its own database.
	db.SetMaxOpenConns(1)
	// WAL mode for better concurrent reads
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS games (
			id           TEXT PRIMARY KEY,
			state        TEXT NOT NULL,
			winner       TEXT NOT NULL DEFAULT '',
			pattern      TEXT NOT NULL DEFAULT '',
			cards_called INTEGER NOT NULL DEFAULT 0,
			duration_ms  INTEGER NOT NULL DEFAULT 0,
			started_at   DATETIME NOT NULL,
			ended_at     DATETIME NOT NULL
		);
		CREATE TABLE IF NOT EXISTS game_players (
			game_id TEXT NOT NULL REFERENCES games(id),
			seat    INTEGER NOT NULL,
			name    TEXT NOT NULL,
			PRIMARY KEY (game_id, seat)
		);
		CREATE TABLE IF NOT EXISTS game_calls (
			game_id     TEXT NOT NULL REFERENCES games(id),
			seq         INTEGER NOT NULL,
			card_number INTEGER NOT NULL,
			PRIMARY KEY (game_id, seq)
		);
	`)
	return err
}

// SaveResult stores r with its roster and call history. A result without a
// game id gets a fresh one, which is returned.
func (s *Store) SaveResult(r game.Result) (string, error) {
	id := r.GameID
	if id == "" {
		id = uuid.NewString()
	}
	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO games (id, state, winner, pattern, cards_called, duration_ms, started_at, ended_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, id, string(r.State), r.Winner, r.Pattern, r.CardsCalled(), r.Duration().Milliseconds(), r.StartedAt.UTC(), r.EndedAt.UTC())
	if err != nil {
		return "", fmt.Errorf("insert game %s: %w", id, err)
	}
	for seat, name := range r.Participants {
		if _, err := tx.Exec("INSERT INTO game_players (game_id, seat, name) VALUES (?, ?, ?)", id, seat, name); err != nil {
			return "", fmt.Errorf("insert player %s: %w", name, err)
		}
	}
	for seq, c := range r.Calls {
		if _, err := tx.Exec("INSERT INTO game_calls (game_id, seq, card_number) VALUES (?, ?, ?)", id, seq, c.Number); err != nil {
			return "", fmt.Errorf("insert call %d: %w", seq, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

const gameColumns = "id, state, winner, pattern, cards_called, duration_ms, started_at, ended_at"

type scanner interface {
	Scan(dest ...any) error
}

func scanGame(row scanner) (GameRow, error) {
	var g GameRow
	var ms int64
	err := row.Scan(&g.ID, &g.State, &g.Winner, &g.Pattern, &g.CardsCalled, &ms, &g.StartedAt, &g.EndedAt)
	g.Duration = time.Duration(ms) * time.Millisecond
	return g, err
}

// GetGame retrieves one game with its players and calls. Unknown ids return
// sql.ErrNoRows.
func (s *Store) GetGame(id string) (*GameRow, error) {
	g, err := scanGame(s.db.QueryRow("SELECT "+gameColumns+" FROM games WHERE id = ?", id))
	if err != nil {
		return nil, err
	}
	if g.Players, err = s.players(id); err != nil {
		return nil, err
	}
	if g.Calls, err = s.calls(id); err != nil {
		return nil, err
	}
	return &g, nil
}

// ListGames returns up to limit games, newest first, with players but
// without call histories. limit <= 0 means all.
func (s *Store) ListGames(limit int) ([]GameRow, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.Query("SELECT "+gameColumns+" FROM games ORDER BY ended_at DESC, rowid DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	var result []GameRow
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		result = append(result, g)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range result {
		if result[i].Players, err = s.players(result[i].ID); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (s *Store) players(id string) ([]string, error) {
	rows, err := s.db.Query("SELECT name FROM game_players WHERE game_id = ? ORDER BY seat", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *Store) calls(id string) ([]int, error) {
	rows, err := s.db.Query("SELECT card_number FROM game_calls WHERE game_id = ? ORDER BY seq", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var numbers []int
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		numbers = append(numbers, n)
	}
	return numbers, rows.Err()
}

// LoadStats replays every stored game into agg, oldest first, and returns
// how many were replayed. Card numbers missing from the standard catalog
// are skipped.
func (s *Store) LoadStats(agg *stats.Aggregator) (int, error) {
	games, err := s.ListGames(0)
	if err != nil {
		return 0, fmt.Errorf("list games: %w", err)
	}
	catalog := card.Standard()
	for i := len(games) - 1; i >= 0; i-- {
		g := games[i]
		numbers, err := s.calls(g.ID)
		if err != nil {
			return 0, fmt.Errorf("calls for %s: %w", g.ID, err)
		}
		rec := stats.Record{Winner: g.Winner, Participants: g.Players}
		for _, n := range numbers {
			if c, ok := catalog.ByNumber(n); ok {
				rec.Calls = append(rec.Calls, c)
			}
		}
		agg.Record(rec)
	}
	return len(games), nil
}

// DeleteGame removes a game and its rows.
func (s *Store) DeleteGame(id string) error {
	for _, q := range []string{
		"DELETE FROM game_calls WHERE game_id = ?",
		"DELETE FROM game_players WHERE game_id = ?",
		"DELETE FROM games WHERE id = ?",
	} {
		if _, err := s.db.Exec(q, id); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

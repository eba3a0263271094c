// Package storage provides SQLite-based history of batch runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/autostack/internal/batch"
)

// ErrNotFound is returned when a batch ID has no record.
var ErrNotFound = errors.New("storage: batch not found")

// Store manages the SQLite database connection for batch history.
type Store struct {
	db *sql.DB
}

// BatchEntry is one stored batch run.
type BatchEntry struct {
	ID           string
	Seed         uint32
	Probability  float64
	Blocks       int
	Requested    int
	Played       int
	StopReason   string
	Designated   int
	Wins         int
	Lines        int
	StartBalance decimal.Decimal
	FinalBalance decimal.Decimal
	TotalBet     decimal.Decimal
	TotalPayout  decimal.Decimal
	RTP          decimal.Decimal
	Elapsed      time.Duration
	CreatedAt    time.Time
}

// WinRate returns wins over played rounds.
func (b BatchEntry) WinRate() float64 {
	if b.Played == 0 {
		return 0
	}
	return float64(b.Wins) / float64(b.Played)
}

// RoundEntry is one stored round of a batch.
type RoundEntry struct {
	BatchID     string
	Round       int
	Outcome     string
	Bet         decimal.Decimal
	Payout      decimal.Decimal
	Balance     decimal.Decimal
	Lines       int
	Blocks      int
	ClearEvents int
	Winning     bool
	Won         bool
}

// Totals aggregates every stored batch.
type Totals struct {
	Batches     int
	Rounds      int
	Wins        int
	TotalBet    decimal.Decimal
	TotalPayout decimal.Decimal
}

// RTP returns total payout over total bet, or zero when nothing was bet.
func (t Totals) RTP() decimal.Decimal {
	if t.TotalBet.IsZero() {
		return decimal.Zero
	}
	return t.TotalPayout.DivRound(t.TotalBet, 6)
}

// DefaultPath is where the CLI keeps its history database.
const DefaultPath = "~/.autostack/history.db"

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS batches (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			probability REAL NOT NULL,
			blocks INTEGER NOT NULL,
			rounds_requested INTEGER NOT NULL,
			rounds_played INTEGER NOT NULL,
			stop_reason TEXT NOT NULL,
			designated INTEGER NOT NULL DEFAULT 0,
			wins INTEGER NOT NULL DEFAULT 0,
			lines INTEGER NOT NULL DEFAULT 0,
			start_balance TEXT NOT NULL,
			final_balance TEXT NOT NULL,
			total_bet TEXT NOT NULL,
			total_payout TEXT NOT NULL,
			rtp TEXT NOT NULL,
			elapsed_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS batch_rounds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			batch_id TEXT NOT NULL,
			round INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			bet TEXT NOT NULL,
			payout TEXT NOT NULL,
			balance TEXT NOT NULL,
			lines INTEGER NOT NULL,
			blocks INTEGER NOT NULL,
			clear_events INTEGER NOT NULL,
			winning INTEGER NOT NULL,
			won INTEGER NOT NULL,
			FOREIGN KEY (batch_id) REFERENCES batches(id)
		);
		CREATE INDEX IF NOT EXISTS idx_batch_rounds_batch ON batch_rounds(batch_id, round);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSummary records a batch and all of its rounds in one transaction.
func (s *Store) SaveSummary(sum batch.Summary) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO batches
		 (id, seed, probability, blocks, rounds_requested, rounds_played, stop_reason,
		  designated, wins, lines, start_balance, final_balance, total_bet, total_payout, rtp, elapsed_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sum.ID.String(),
		int64(sum.Params.Seed),
		sum.Params.Probability,
		sum.Params.Blocks,
		sum.Params.Rounds,
		sum.Played,
		sum.StopReason,
		sum.Designated,
		sum.Wins,
		sum.Lines,
		sum.StartBalance.String(),
		sum.FinalBalance.String(),
		sum.TotalBet.String(),
		sum.TotalPayout.String(),
		sum.RTP().String(),
		sum.Elapsed.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save batch: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO batch_rounds
		 (batch_id, round, outcome, bet, payout, balance, lines, blocks, clear_events, winning, won)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot prepare round insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range sum.Records {
		_, err := stmt.Exec(
			sum.ID.String(), r.Round, r.Outcome,
			r.Bet.String(), r.Payout.String(), r.Balance.String(),
			r.Lines, r.Blocks, r.ClearEvents, r.Winning, r.Won,
		)
		if err != nil {
			return fmt.Errorf("storage: cannot save round %d: %w", r.Round, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit batch: %w", err)
	}
	return nil
}

const batchColumns = `id, seed, probability, blocks, rounds_requested, rounds_played, stop_reason,
	designated, wins, lines, start_balance, final_balance, total_bet, total_payout, rtp,
	elapsed_ms, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBatch(row rowScanner) (BatchEntry, error) {
	var b BatchEntry
	var seed, elapsedMs int64
	var createdAt any
	err := row.Scan(
		&b.ID, &seed, &b.Probability, &b.Blocks, &b.Requested, &b.Played, &b.StopReason,
		&b.Designated, &b.Wins, &b.Lines,
		&b.StartBalance, &b.FinalBalance, &b.TotalBet, &b.TotalPayout, &b.RTP,
		&elapsedMs, &createdAt,
	)
	if err != nil {
		return b, err
	}
	b.Seed = uint32(seed)
	b.Elapsed = time.Duration(elapsedMs) * time.Millisecond
	b.CreatedAt = parseTime(createdAt)
	return b, nil
}

// parseTime handles both time.Time and string datetime columns.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// RecentBatches retrieves the latest batches, newest first.
func (s *Store) RecentBatches(limit int) ([]BatchEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+batchColumns+`
		 FROM batches
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query batches: %w", err)
	}
	defer rows.Close()

	var entries []BatchEntry
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		entries = append(entries, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// BatchByID retrieves one batch. It returns ErrNotFound for unknown IDs.
func (s *Store) BatchByID(id string) (BatchEntry, error) {
	row := s.db.QueryRow(`SELECT `+batchColumns+` FROM batches WHERE id = ?`, id)
	b, err := scanBatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return BatchEntry{}, ErrNotFound
	}
	if err != nil {
		return BatchEntry{}, fmt.Errorf("storage: cannot query batch: %w", err)
	}
	return b, nil
}

// BatchRounds retrieves the rounds of one batch in play order.
func (s *Store) BatchRounds(batchID string) ([]RoundEntry, error) {
	rows, err := s.db.Query(
		`SELECT batch_id, round, outcome, bet, payout, balance, lines, blocks, clear_events, winning, won
		 FROM batch_rounds
		 WHERE batch_id = ?
		 ORDER BY round ASC`,
		batchID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var entries []RoundEntry
	for rows.Next() {
		var r RoundEntry
		if err := rows.Scan(
			&r.BatchID, &r.Round, &r.Outcome, &r.Bet, &r.Payout, &r.Balance,
			&r.Lines, &r.Blocks, &r.ClearEvents, &r.Winning, &r.Won,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		entries = append(entries, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// AllTotals aggregates every stored batch.
func (s *Store) AllTotals() (Totals, error) {
	t := Totals{TotalBet: decimal.Zero, TotalPayout: decimal.Zero}
	rows, err := s.db.Query(`SELECT rounds_played, wins, total_bet, total_payout FROM batches`)
	if err != nil {
		return t, fmt.Errorf("storage: cannot query totals: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var played, wins int
		var bet, payout decimal.Decimal
		if err := rows.Scan(&played, &wins, &bet, &payout); err != nil {
			return t, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		t.Batches++
		t.Rounds += played
		t.Wins += wins
		t.TotalBet = t.TotalBet.Add(bet)
		t.TotalPayout = t.TotalPayout.Add(payout)
	}
	if err := rows.Err(); err != nil {
		return t, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return t, nil
}

// DeleteBatch removes a batch and its rounds.
func (s *Store) DeleteBatch(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM batch_rounds WHERE batch_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete rounds: %w", err)
	}
	res, err := tx.Exec("DELETE FROM batches WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete batch: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const createSessionsTableSQL = `
	CREATE TABLE IF NOT EXISTS blackjack_sessions (
		player_id INTEGER PRIMARY KEY,
		bet INTEGER,
		status BOOLEAN,
		deck TEXT NOT NULL,         -- JSON array of card tokens
		player_hand TEXT NOT NULL,  -- JSON array of card tokens
		dealer_hand TEXT NOT NULL,  -- JSON array of card tokens
		player_stay BOOLEAN NOT NULL,
		dealer_stay BOOLEAN NOT NULL,
		first_turn BOOLEAN NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`

// SQLiteRepository implements the Repository interface using SQLite
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite repository
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	// Ensure the directory exists
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("error creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if _, err := db.Exec(createSessionsTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating sessions table: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Get returns the record for a player, or nil when none exists
func (r *SQLiteRepository) Get(ctx context.Context, playerID int64) (*Record, error) {
	query := `
		SELECT player_id, bet, status, deck, player_hand, dealer_hand,
		       player_stay, dealer_stay, first_turn
		FROM blackjack_sessions WHERE player_id = ?`

	return scanRecord(r.db.QueryRowContext(ctx, query, playerID))
}

// Upsert inserts or replaces the record keyed by its player id
func (r *SQLiteRepository) Upsert(ctx context.Context, record *Record) error {
	deckJSON, playerJSON, dealerJSON, err := marshalHands(record)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO blackjack_sessions (
			player_id, bet, status, deck, player_hand, dealer_hand,
			player_stay, dealer_stay, first_turn, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(player_id)
		DO UPDATE SET
			bet = excluded.bet,
			status = excluded.status,
			deck = excluded.deck,
			player_hand = excluded.player_hand,
			dealer_hand = excluded.dealer_hand,
			player_stay = excluded.player_stay,
			dealer_stay = excluded.dealer_stay,
			first_turn = excluded.first_turn,
			updated_at = CURRENT_TIMESTAMP`

	_, err = r.db.ExecContext(ctx, query,
		record.PlayerID, record.Bet, record.Status,
		deckJSON, playerJSON, dealerJSON,
		record.PlayerStay, record.DealerStay, record.FirstTurn)
	return err
}

// Delete removes the record for a player
func (r *SQLiteRepository) Delete(ctx context.Context, playerID int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM blackjack_sessions WHERE player_id = ?`, playerID)
	return err
}

// CountActive returns the number of in-progress sessions
func (r *SQLiteRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM blackjack_sessions WHERE status IS NULL`).Scan(&count)
	return count, err
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// rowScanner covers both sql.Row and sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var (
		record     Record
		bet        sql.NullInt64
		status     sql.NullBool
		deckJSON   []byte
		playerJSON []byte
		dealerJSON []byte
	)

	err := row.Scan(&record.PlayerID, &bet, &status,
		&deckJSON, &playerJSON, &dealerJSON,
		&record.PlayerStay, &record.DealerStay, &record.FirstTurn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if bet.Valid {
		record.Bet = &bet.Int64
	}
	if status.Valid {
		record.Status = &status.Bool
	}

	if err := json.Unmarshal(deckJSON, &record.Deck); err != nil {
		return nil, fmt.Errorf("error decoding deck: %w", err)
	}
	if err := json.Unmarshal(playerJSON, &record.PlayerHand); err != nil {
		return nil, fmt.Errorf("error decoding player hand: %w", err)
	}
	if err := json.Unmarshal(dealerJSON, &record.DealerHand); err != nil {
		return nil, fmt.Errorf("error decoding dealer hand: %w", err)
	}

	return &record, nil
}

func marshalHands(record *Record) ([]byte, []byte, []byte, error) {
	deckJSON, err := json.Marshal(tokensOrEmpty(record.Deck))
	if err != nil {
		return nil, nil, nil, err
	}
	playerJSON, err := json.Marshal(tokensOrEmpty(record.PlayerHand))
	if err != nil {
		return nil, nil, nil, err
	}
	dealerJSON, err := json.Marshal(tokensOrEmpty(record.DealerHand))
	if err != nil {
		return nil, nil, nil, err
	}
	return deckJSON, playerJSON, dealerJSON, nil
}

// tokensOrEmpty keeps nil slices from serializing as JSON null
func tokensOrEmpty(tokens []string) []string {
	if tokens == nil {
		return []string{}
	}
	return tokens
}

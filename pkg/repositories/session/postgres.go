package session

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

const createSessionsTablePostgresSQL = `
	CREATE TABLE IF NOT EXISTS blackjack_sessions (
		player_id BIGINT PRIMARY KEY,
		bet BIGINT,
		status BOOLEAN,
		deck TEXT NOT NULL,
		player_hand TEXT NOT NULL,
		dealer_hand TEXT NOT NULL,
		player_stay BOOLEAN NOT NULL,
		dealer_stay BOOLEAN NOT NULL,
		first_turn BOOLEAN NOT NULL,
		updated_at TIMESTAMPTZ DEFAULT NOW()
	)`

// PostgresRepository implements the Repository interface using PostgreSQL
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL repository. maxOpen
// bounds the connection pool; zero leaves the driver default in place.
func NewPostgresRepository(dsn string, maxOpen int) (*PostgresRepository, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if maxOpen > 0 {
		db.SetMaxOpenConns(maxOpen)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if _, err := db.Exec(createSessionsTablePostgresSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating sessions table: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// Get returns the record for a player, or nil when none exists
func (r *PostgresRepository) Get(ctx context.Context, playerID int64) (*Record, error) {
	query := `
		SELECT player_id, bet, status, deck, player_hand, dealer_hand,
		       player_stay, dealer_stay, first_turn
		FROM blackjack_sessions WHERE player_id = $1`

	return scanRecord(r.db.QueryRowContext(ctx, query, playerID))
}

// Upsert inserts or replaces the record keyed by its player id
func (r *PostgresRepository) Upsert(ctx context.Context, record *Record) error {
	deckJSON, playerJSON, dealerJSON, err := marshalHands(record)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO blackjack_sessions (
			player_id, bet, status, deck, player_hand, dealer_hand,
			player_stay, dealer_stay, first_turn, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (player_id)
		DO UPDATE SET
			bet = EXCLUDED.bet,
			status = EXCLUDED.status,
			deck = EXCLUDED.deck,
			player_hand = EXCLUDED.player_hand,
			dealer_hand = EXCLUDED.dealer_hand,
			player_stay = EXCLUDED.player_stay,
			dealer_stay = EXCLUDED.dealer_stay,
			first_turn = EXCLUDED.first_turn,
			updated_at = NOW()`

	_, err = r.db.ExecContext(ctx, query,
		record.PlayerID, record.Bet, record.Status,
		deckJSON, playerJSON, dealerJSON,
		record.PlayerStay, record.DealerStay, record.FirstTurn)
	return err
}

// Delete removes the record for a player
func (r *PostgresRepository) Delete(ctx context.Context, playerID int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM blackjack_sessions WHERE player_id = $1`, playerID)
	return err
}

// CountActive returns the number of in-progress sessions
func (r *PostgresRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM blackjack_sessions WHERE status IS NULL`).Scan(&count)
	return count, err
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

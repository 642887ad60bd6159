package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/allinbits/telegram-bots/internal/model"
)

// RecipientRepository handles payout address registrations.
type RecipientRepository struct {
	pool *pgxpool.Pool
}

// NewRecipientRepository creates a new RecipientRepository instance.
func NewRecipientRepository(pool *pgxpool.Pool) *RecipientRepository {
	return &RecipientRepository{pool: pool}
}

// Upsert registers an address for a username, overwriting any prior
// registration. No address-format validation happens here; the chain is the
// final arbiter at payout time.
func (r *RecipientRepository) Upsert(ctx context.Context, username, address string) error {
	const query = `
		INSERT INTO recipients (username, address)
		VALUES ($1, $2)
		ON CONFLICT (username) DO UPDATE SET address = EXCLUDED.address
	`

	if _, err := r.pool.Exec(ctx, query, username, address); err != nil {
		return fmt.Errorf("failed to register recipient: %w", err)
	}
	return nil
}

// GetAddress returns the registered address for a username.
// Returns ErrRecipientNotFound if the username has no registration.
func (r *RecipientRepository) GetAddress(ctx context.Context, username string) (string, error) {
	const query = `SELECT address FROM recipients WHERE username = $1`

	var address string
	err := r.pool.QueryRow(ctx, query, username).Scan(&address)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrRecipientNotFound
		}
		return "", fmt.Errorf("failed to get recipient address: %w", err)
	}
	return address, nil
}

// GetUsernameByAddress returns the username registered for an address.
// Returns ErrRecipientNotFound if no registration carries the address.
func (r *RecipientRepository) GetUsernameByAddress(ctx context.Context, address string) (string, error) {
	const query = `SELECT username FROM recipients WHERE address = $1`

	var username string
	err := r.pool.QueryRow(ctx, query, address).Scan(&username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrRecipientNotFound
		}
		return "", fmt.Errorf("failed to get recipient username: %w", err)
	}
	return username, nil
}

// List returns every registration, ordered by username.
func (r *RecipientRepository) List(ctx context.Context) ([]model.Recipient, error) {
	const query = `SELECT username, address FROM recipients ORDER BY username`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipients: %w", err)
	}
	defer rows.Close()

	var recipients []model.Recipient
	for rows.Next() {
		var rec model.Recipient
		if err := rows.Scan(&rec.Username, &rec.Address); err != nil {
			return nil, fmt.Errorf("failed to scan recipient: %w", err)
		}
		recipients = append(recipients, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recipients: %w", err)
	}

	return recipients, nil
}

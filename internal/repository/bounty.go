// Package repository provides data access layer implementations.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/allinbits/telegram-bots/internal/model"
)

// Common errors for repository operations.
var (
	ErrBountyNotFound    = errors.New("bounty not found")
	ErrRecipientNotFound = errors.New("recipient not found")
	ErrScopeNotFound     = errors.New("scope not found")
	ErrChannelNotFound   = errors.New("channel not found")
)

// BountyRepository handles bounty data persistence.
type BountyRepository struct {
	pool *pgxpool.Pool
}

// NewBountyRepository creates a new BountyRepository instance.
func NewBountyRepository(pool *pgxpool.Pool) *BountyRepository {
	return &BountyRepository{pool: pool}
}

const bountyColumns = "id, amount, denom, task, completed, created_at, completed_at, recipient"

func scanBounty(row pgx.Row) (*model.Bounty, error) {
	var b model.Bounty
	err := row.Scan(
		&b.ID,
		&b.Amount,
		&b.Denom,
		&b.Task,
		&b.Completed,
		&b.CreatedAt,
		&b.CompletedAt,
		&b.Recipient,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserts a new open bounty and returns it with its assigned id.
// Amount must already be normalized to the canonical micro-denomination.
func (r *BountyRepository) Create(ctx context.Context, amount, denom, task string) (*model.Bounty, error) {
	const query = `
		INSERT INTO bounties (amount, denom, task, completed, created_at)
		VALUES ($1, $2, $3, FALSE, $4)
		RETURNING ` + bountyColumns

	b, err := scanBounty(r.pool.QueryRow(ctx, query, amount, denom, task, time.Now().Unix()))
	if err != nil {
		return nil, fmt.Errorf("failed to create bounty: %w", err)
	}
	return b, nil
}

// GetByID retrieves a bounty by id.
// Returns ErrBountyNotFound if no such bounty exists.
func (r *BountyRepository) GetByID(ctx context.Context, id int64) (*model.Bounty, error) {
	const query = `SELECT ` + bountyColumns + ` FROM bounties WHERE id = $1`

	b, err := scanBounty(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBountyNotFound
		}
		return nil, fmt.Errorf("failed to get bounty: %w", err)
	}
	return b, nil
}

// Update rewrites a bounty's amount, denom and task. Completion state is not
// checked; an already-completed bounty can still be rewritten.
func (r *BountyRepository) Update(ctx context.Context, id int64, amount, denom, task string) error {
	const query = `UPDATE bounties SET amount = $2, denom = $3, task = $4 WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, amount, denom, task)
	if err != nil {
		return fmt.Errorf("failed to update bounty: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrBountyNotFound
	}
	return nil
}

// Delete removes a bounty regardless of completion state. Returns
// ErrBountyNotFound when no row matches the id.
func (r *BountyRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM bounties WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete bounty: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrBountyNotFound
	}
	return nil
}

// ListOpen returns all bounties with completed = FALSE, ordered by id
// ascending.
func (r *BountyRepository) ListOpen(ctx context.Context) ([]*model.Bounty, error) {
	const query = `
		SELECT ` + bountyColumns + `
		FROM bounties
		WHERE completed = FALSE
		ORDER BY id ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bounties: %w", err)
	}
	defer rows.Close()

	var bounties []*model.Bounty
	for rows.Next() {
		b, err := scanBounty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bounty: %w", err)
		}
		bounties = append(bounties, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bounties: %w", err)
	}

	return bounties, nil
}

// MarkCompleted transitions an open bounty to completed, stamping the
// completion time and recipient. The WHERE guard makes the transition
// happen at most once; a second call returns ErrBountyNotFound.
func (r *BountyRepository) MarkCompleted(ctx context.Context, id int64, recipient string) error {
	const query = `
		UPDATE bounties
		SET completed = TRUE, completed_at = $2, recipient = $3
		WHERE id = $1 AND completed = FALSE
	`

	result, err := r.pool.Exec(ctx, query, id, time.Now().Unix(), recipient)
	if err != nil {
		return fmt.Errorf("failed to mark bounty completed: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrBountyNotFound
	}
	return nil
}

package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/allinbits/telegram-bots/internal/model"
)

// ClaimRepository handles claim data persistence.
//
// Claims reference bounties by id without a foreign key: a claim may point at
// a bounty that was deleted or completed afterwards, and nothing cleans it up.
type ClaimRepository struct {
	pool *pgxpool.Pool
}

// NewClaimRepository creates a new ClaimRepository instance.
func NewClaimRepository(pool *pgxpool.Pool) *ClaimRepository {
	return &ClaimRepository{pool: pool}
}

// Upsert inserts a claim, or replaces the proof when the same user has
// already claimed the same bounty. At most one row per (bounty_id, username).
func (r *ClaimRepository) Upsert(ctx context.Context, bountyID int64, username string, proof *string) (*model.Claim, error) {
	const query = `
		INSERT INTO claims (bounty_id, username, proof, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (bounty_id, username)
		DO UPDATE SET proof = EXCLUDED.proof, created_at = EXCLUDED.created_at
		RETURNING id, bounty_id, username, proof, created_at
	`

	var c model.Claim
	err := r.pool.QueryRow(ctx, query, bountyID, username, proof, time.Now().Unix()).Scan(
		&c.ID,
		&c.BountyID,
		&c.Username,
		&c.Proof,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert claim: %w", err)
	}

	return &c, nil
}

// ListByBounty returns all claims for a bounty, ordered by id ascending.
func (r *ClaimRepository) ListByBounty(ctx context.Context, bountyID int64) ([]model.Claim, error) {
	const query = `
		SELECT id, bounty_id, username, proof, created_at
		FROM claims
		WHERE bounty_id = $1
		ORDER BY id ASC
	`

	rows, err := r.pool.Query(ctx, query, bountyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list claims: %w", err)
	}
	defer rows.Close()

	var claims []model.Claim
	for rows.Next() {
		var c model.Claim
		err := rows.Scan(
			&c.ID,
			&c.BountyID,
			&c.Username,
			&c.Proof,
			&c.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan claim: %w", err)
		}
		claims = append(claims, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating claims: %w", err)
	}

	return claims, nil
}

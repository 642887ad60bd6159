// Package service provides business logic implementations.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/allinbits/telegram-bots/internal/coin"
	"github.com/allinbits/telegram-bots/internal/model"
	"github.com/allinbits/telegram-bots/internal/payout"
	"github.com/allinbits/telegram-bots/internal/repository"
)

// Bounty-related errors.
var (
	ErrBountyNotFound         = errors.New("bounty not found")
	ErrAlreadyCompleted       = errors.New("bounty already completed")
	ErrRecipientNotRegistered = errors.New("recipient not registered")
	ErrEmptyTask              = errors.New("task is empty")
)

// BountyStore is the persistence surface the bounty service needs.
type BountyStore interface {
	Create(ctx context.Context, amount, denom, task string) (*model.Bounty, error)
	GetByID(ctx context.Context, id int64) (*model.Bounty, error)
	Update(ctx context.Context, id int64, amount, denom, task string) error
	Delete(ctx context.Context, id int64) error
	ListOpen(ctx context.Context) ([]*model.Bounty, error)
	MarkCompleted(ctx context.Context, id int64, recipient string) error
}

// ClaimStore is the persistence surface for claims.
type ClaimStore interface {
	Upsert(ctx context.Context, bountyID int64, username string, proof *string) (*model.Claim, error)
	ListByBounty(ctx context.Context, bountyID int64) ([]model.Claim, error)
}

// RecipientStore is the persistence surface for payout registrations.
type RecipientStore interface {
	Upsert(ctx context.Context, username, address string) error
	GetAddress(ctx context.Context, username string) (string, error)
	GetUsernameByAddress(ctx context.Context, address string) (string, error)
	List(ctx context.Context) ([]model.Recipient, error)
}

// BountyService owns the bounty lifecycle: creation, updates, claims,
// completion with payout, and deletion.
type BountyService struct {
	bounties   BountyStore
	claims     ClaimStore
	recipients RecipientStore
	executor   payout.Executor
}

// NewBountyService creates a new BountyService instance.
func NewBountyService(
	bounties BountyStore,
	claims ClaimStore,
	recipients RecipientStore,
	executor payout.Executor,
) *BountyService {
	return &BountyService{
		bounties:   bounties,
		claims:     claims,
		recipients: recipients,
		executor:   executor,
	}
}

// Create validates and normalizes the raw coin token and inserts a new open
// bounty. The same normalizer runs here and in Update so the stored
// amount/denom pair is always canonical.
func (s *BountyService) Create(ctx context.Context, rawCoin, task string) (*model.Bounty, error) {
	if task == "" {
		return nil, ErrEmptyTask
	}

	c, err := coin.Normalize(rawCoin)
	if err != nil {
		return nil, err
	}

	b, err := s.bounties.Create(ctx, c.Amount, c.Denom, task)
	if err != nil {
		return nil, fmt.Errorf("failed to create bounty: %w", err)
	}
	return b, nil
}

// Update rewrites a bounty's amount and description, re-running the amount
// normalizer. Completion state is deliberately not checked: updating a
// completed bounty is allowed, it just no longer matters for payout.
func (s *BountyService) Update(ctx context.Context, id int64, rawCoin, description string) error {
	c, err := coin.Normalize(rawCoin)
	if err != nil {
		return err
	}

	err = s.bounties.Update(ctx, id, c.Amount, c.Denom, description)
	if err != nil {
		if errors.Is(err, repository.ErrBountyNotFound) {
			return ErrBountyNotFound
		}
		return fmt.Errorf("failed to update bounty: %w", err)
	}
	return nil
}

// Claim records a user's proof submission against a bounty. A repeated claim
// by the same user replaces the prior proof. The bounty is not required to
// exist or to be open; claims accumulate independently.
func (s *BountyService) Claim(ctx context.Context, bountyID int64, username string, proof string) (*model.Claim, error) {
	var p *string
	if proof != "" {
		p = &proof
	}

	c, err := s.claims.Upsert(ctx, bountyID, username, p)
	if err != nil {
		return nil, fmt.Errorf("failed to record claim: %w", err)
	}
	return c, nil
}

// Complete pays out a bounty to a registered recipient and transitions it to
// completed. On payout failure the bounty stays open and the error surfaces
// to the caller; reissuing the command is safe because of the completed
// guard. Returns the transaction hash on success.
func (s *BountyService) Complete(ctx context.Context, id int64, username string) (string, error) {
	b, err := s.bounties.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBountyNotFound) {
			return "", ErrBountyNotFound
		}
		return "", fmt.Errorf("failed to load bounty: %w", err)
	}
	if b.Completed {
		return "", ErrAlreadyCompleted
	}

	address, err := s.recipients.GetAddress(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrRecipientNotFound) {
			return "", ErrRecipientNotRegistered
		}
		return "", fmt.Errorf("failed to look up recipient: %w", err)
	}

	txHash, err := s.executor.SendTokens(ctx, address, coin.Coin{Amount: b.Amount, Denom: b.Denom})
	if err != nil {
		return "", err
	}

	if err := s.bounties.MarkCompleted(ctx, id, username); err != nil {
		// The transfer went through but the completion stamp failed; surface
		// the error so the operator knows the record is stale.
		return "", fmt.Errorf("payout sent (tx %s) but failed to mark bounty completed: %w", txHash, err)
	}

	return txHash, nil
}

// Delete removes a bounty unconditionally, completed or not.
func (s *BountyService) Delete(ctx context.Context, id int64) error {
	if err := s.bounties.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrBountyNotFound) {
			return ErrBountyNotFound
		}
		return fmt.Errorf("failed to delete bounty: %w", err)
	}
	return nil
}

// List returns all open bounties in id order, each with its claims.
func (s *BountyService) List(ctx context.Context) ([]model.BountyWithClaims, error) {
	bounties, err := s.bounties.ListOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bounties: %w", err)
	}

	var out []model.BountyWithClaims
	for _, b := range bounties {
		claims, err := s.claims.ListByBounty(ctx, b.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load claims for bounty %d: %w", b.ID, err)
		}
		out = append(out, model.BountyWithClaims{Bounty: *b, Claims: claims})
	}
	return out, nil
}

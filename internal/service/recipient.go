package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/allinbits/telegram-bots/internal/model"
	"github.com/allinbits/telegram-bots/internal/repository"
)

// Recipient-related errors.
var (
	ErrEmptyAddress = errors.New("address is empty")
)

// SyntheticPrefix marks identities derived from a numeric Telegram account id
// rather than a real username. Accounts without a username register under
// "TGID:<id>", which keeps them distinguishable from genuine usernames.
const SyntheticPrefix = "TGID:"

// Identity resolves the registration identity for a sender: the Telegram
// username when present, otherwise the synthetic id-based form.
func Identity(username string, userID int64) string {
	if username != "" {
		return username
	}
	return SyntheticPrefix + strconv.FormatInt(userID, 10)
}

// RecipientService manages payout address registrations.
type RecipientService struct {
	recipients RecipientStore
}

// NewRecipientService creates a new RecipientService instance.
func NewRecipientService(recipients RecipientStore) *RecipientService {
	return &RecipientService{recipients: recipients}
}

// Register upserts the payout address for an identity. Re-registration
// overwrites the prior address. The address format is not validated; the
// chain rejects a bad address at payout time.
func (s *RecipientService) Register(ctx context.Context, identity, address string) error {
	if address == "" {
		return ErrEmptyAddress
	}
	if err := s.recipients.Upsert(ctx, identity, address); err != nil {
		return fmt.Errorf("failed to register recipient: %w", err)
	}
	return nil
}

// AddressOf returns the address registered for a username, or
// ErrRecipientNotRegistered.
func (s *RecipientService) AddressOf(ctx context.Context, username string) (string, error) {
	address, err := s.recipients.GetAddress(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrRecipientNotFound) {
			return "", ErrRecipientNotRegistered
		}
		return "", fmt.Errorf("failed to look up address: %w", err)
	}
	return address, nil
}

// UsernameByAddress returns the username an address is registered to, or
// ErrRecipientNotRegistered.
func (s *RecipientService) UsernameByAddress(ctx context.Context, address string) (string, error) {
	username, err := s.recipients.GetUsernameByAddress(ctx, address)
	if err != nil {
		if errors.Is(err, repository.ErrRecipientNotFound) {
			return "", ErrRecipientNotRegistered
		}
		return "", fmt.Errorf("failed to look up username: %w", err)
	}
	return username, nil
}

// Dump returns every registration, ordered by username.
func (s *RecipientService) Dump(ctx context.Context) ([]model.Recipient, error) {
	recipients, err := s.recipients.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipients: %w", err)
	}
	return recipients, nil
}

package service

import (
	"context"
	"sort"
	"time"

	"github.com/allinbits/telegram-bots/internal/coin"
	"github.com/allinbits/telegram-bots/internal/model"
	"github.com/allinbits/telegram-bots/internal/repository"
)

// In-memory store fakes mirroring the repository contracts, including their
// sentinel errors, so services can be exercised without a database.

type fakeBountyStore struct {
	nextID   int64
	bounties map[int64]*model.Bounty
}

func newFakeBountyStore() *fakeBountyStore {
	return &fakeBountyStore{nextID: 1, bounties: make(map[int64]*model.Bounty)}
}

func (f *fakeBountyStore) Create(_ context.Context, amount, denom, task string) (*model.Bounty, error) {
	b := &model.Bounty{
		ID:        f.nextID,
		Amount:    amount,
		Denom:     denom,
		Task:      task,
		CreatedAt: time.Now().Unix(),
	}
	f.bounties[b.ID] = b
	f.nextID++
	out := *b
	return &out, nil
}

func (f *fakeBountyStore) GetByID(_ context.Context, id int64) (*model.Bounty, error) {
	b, ok := f.bounties[id]
	if !ok {
		return nil, repository.ErrBountyNotFound
	}
	out := *b
	return &out, nil
}

func (f *fakeBountyStore) Update(_ context.Context, id int64, amount, denom, task string) error {
	b, ok := f.bounties[id]
	if !ok {
		return repository.ErrBountyNotFound
	}
	b.Amount, b.Denom, b.Task = amount, denom, task
	return nil
}

func (f *fakeBountyStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.bounties[id]; !ok {
		return repository.ErrBountyNotFound
	}
	delete(f.bounties, id)
	return nil
}

func (f *fakeBountyStore) ListOpen(_ context.Context) ([]*model.Bounty, error) {
	var out []*model.Bounty
	for _, b := range f.bounties {
		if !b.Completed {
			copied := *b
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeBountyStore) MarkCompleted(_ context.Context, id int64, recipient string) error {
	b, ok := f.bounties[id]
	if !ok || b.Completed {
		return repository.ErrBountyNotFound
	}
	now := time.Now().Unix()
	b.Completed = true
	b.CompletedAt = &now
	b.Recipient = &recipient
	return nil
}

type claimKey struct {
	bountyID int64
	username string
}

type fakeClaimStore struct {
	nextID int64
	claims map[claimKey]*model.Claim
}

func newFakeClaimStore() *fakeClaimStore {
	return &fakeClaimStore{nextID: 1, claims: make(map[claimKey]*model.Claim)}
}

func (f *fakeClaimStore) Upsert(_ context.Context, bountyID int64, username string, proof *string) (*model.Claim, error) {
	key := claimKey{bountyID, username}
	if existing, ok := f.claims[key]; ok {
		existing.Proof = proof
		existing.CreatedAt = time.Now().Unix()
		out := *existing
		return &out, nil
	}
	c := &model.Claim{
		ID:        f.nextID,
		BountyID:  bountyID,
		Username:  username,
		Proof:     proof,
		CreatedAt: time.Now().Unix(),
	}
	f.claims[key] = c
	f.nextID++
	out := *c
	return &out, nil
}

func (f *fakeClaimStore) ListByBounty(_ context.Context, bountyID int64) ([]model.Claim, error) {
	var out []model.Claim
	for _, c := range f.claims {
		if c.BountyID == bountyID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeRecipientStore struct {
	addresses map[string]string
}

func newFakeRecipientStore() *fakeRecipientStore {
	return &fakeRecipientStore{addresses: make(map[string]string)}
}

func (f *fakeRecipientStore) Upsert(_ context.Context, username, address string) error {
	f.addresses[username] = address
	return nil
}

func (f *fakeRecipientStore) GetAddress(_ context.Context, username string) (string, error) {
	address, ok := f.addresses[username]
	if !ok {
		return "", repository.ErrRecipientNotFound
	}
	return address, nil
}

func (f *fakeRecipientStore) GetUsernameByAddress(_ context.Context, address string) (string, error) {
	for username, a := range f.addresses {
		if a == address {
			return username, nil
		}
	}
	return "", repository.ErrRecipientNotFound
}

func (f *fakeRecipientStore) List(_ context.Context) ([]model.Recipient, error) {
	var out []model.Recipient
	for username, address := range f.addresses {
		out = append(out, model.Recipient{Username: username, Address: address})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

type fakeChannelStore struct {
	nextScopeID   int64
	nextChannelID int64
	scopes        []model.Scope
	channels      []model.Channel
}

func newFakeChannelStore() *fakeChannelStore {
	return &fakeChannelStore{nextScopeID: 1, nextChannelID: 1}
}

func (f *fakeChannelStore) LinkChatToScope(_ context.Context, chatID int64, name string) (*model.Scope, error) {
	s := model.Scope{ID: f.nextScopeID, Name: name, ChatID: chatID}
	f.scopes = append(f.scopes, s)
	f.nextScopeID++
	return &s, nil
}

func (f *fakeChannelStore) GetScope(_ context.Context, name string, chatID int64) (*model.Scope, error) {
	for _, s := range f.scopes {
		if s.Name == name && s.ChatID == chatID {
			out := s
			return &out, nil
		}
	}
	return nil, repository.ErrScopeNotFound
}

func (f *fakeChannelStore) AddChannel(_ context.Context, scopeID int64, url, description string) (*model.Channel, error) {
	c := model.Channel{ID: f.nextChannelID, ScopeID: scopeID, Description: description, URL: url}
	f.channels = append(f.channels, c)
	f.nextChannelID++
	return &c, nil
}

func (f *fakeChannelStore) ListForChat(_ context.Context, chatID int64) ([]model.Channel, error) {
	names := make(map[string]bool)
	for _, s := range f.scopes {
		if s.ChatID == chatID {
			names[s.Name] = true
		}
	}
	scopeIDs := make(map[int64]bool)
	for _, s := range f.scopes {
		if names[s.Name] {
			scopeIDs[s.ID] = true
		}
	}
	var out []model.Channel
	for _, c := range f.channels {
		if scopeIDs[c.ScopeID] {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeChannelStore) RemoveInScope(_ context.Context, id int64, scopeName string) error {
	scopeIDs := make(map[int64]bool)
	for _, s := range f.scopes {
		if s.Name == scopeName {
			scopeIDs[s.ID] = true
		}
	}
	for i, c := range f.channels {
		if c.ID == id && scopeIDs[c.ScopeID] {
			f.channels = append(f.channels[:i], f.channels[i+1:]...)
			return nil
		}
	}
	return repository.ErrChannelNotFound
}

// stubExecutor counts payout invocations and returns a fixed hash or error.
type stubExecutor struct {
	txHash string
	err    error
	calls  int
}

func (s *stubExecutor) SendTokens(_ context.Context, _ string, _ coin.Coin) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.txHash, nil
}

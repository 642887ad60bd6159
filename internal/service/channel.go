package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/allinbits/telegram-bots/internal/model"
	"github.com/allinbits/telegram-bots/internal/repository"
)

// Channel-related errors.
var (
	ErrScopeNotLinked  = errors.New("chat is not linked to any scope")
	ErrChannelNotFound = errors.New("channel not found in scope")
)

// ChannelStore is the persistence surface for channels and scopes.
type ChannelStore interface {
	LinkChatToScope(ctx context.Context, chatID int64, name string) (*model.Scope, error)
	GetScope(ctx context.Context, name string, chatID int64) (*model.Scope, error)
	AddChannel(ctx context.Context, scopeID int64, url, description string) (*model.Channel, error)
	ListForChat(ctx context.Context, chatID int64) ([]model.Channel, error)
	RemoveInScope(ctx context.Context, id int64, scopeName string) error
}

// ChannelService manages scoped promotional channel lists. Multiple chats
// linked to scopes of the same name share one channel list.
type ChannelService struct {
	channels ChannelStore
}

// NewChannelService creates a new ChannelService instance.
func NewChannelService(channels ChannelStore) *ChannelService {
	return &ChannelService{channels: channels}
}

// Link associates a chat with a scope name. Duplicate links are allowed.
func (s *ChannelService) Link(ctx context.Context, chatID int64, name string) (*model.Scope, error) {
	scope, err := s.channels.LinkChatToScope(ctx, chatID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to link scope: %w", err)
	}
	return scope, nil
}

// Add inserts a channel under the scope matching (name, chatID). The calling
// chat must already be linked to the scope, otherwise ErrScopeNotLinked.
func (s *ChannelService) Add(ctx context.Context, name string, chatID int64, url, description string) (*model.Channel, error) {
	scope, err := s.channels.GetScope(ctx, name, chatID)
	if err != nil {
		if errors.Is(err, repository.ErrScopeNotFound) {
			return nil, ErrScopeNotLinked
		}
		return nil, fmt.Errorf("failed to resolve scope: %w", err)
	}

	channel, err := s.channels.AddChannel(ctx, scope.ID, url, description)
	if err != nil {
		return nil, fmt.Errorf("failed to add channel: %w", err)
	}
	return channel, nil
}

// ListForChat returns every channel visible to the chat through its linked
// scope names.
func (s *ChannelService) ListForChat(ctx context.Context, chatID int64) ([]model.Channel, error) {
	channels, err := s.channels.ListForChat(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}
	return channels, nil
}

// Remove deletes a channel by id within a scope name.
func (s *ChannelService) Remove(ctx context.Context, id int64, scopeName string) error {
	err := s.channels.RemoveInScope(ctx, id, scopeName)
	if err != nil {
		if errors.Is(err, repository.ErrChannelNotFound) {
			return ErrChannelNotFound
		}
		return fmt.Errorf("failed to remove channel: %w", err)
	}
	return nil
}

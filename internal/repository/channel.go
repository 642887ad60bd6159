package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/allinbits/telegram-bots/internal/model"
)

// ChannelRepository handles channel and scope persistence.
//
// Scopes are keyed by (name, chat_id); chats linked to scopes sharing a name
// all see the channels added under that name. Scope names are therefore a
// global namespace across chats.
type ChannelRepository struct {
	pool *pgxpool.Pool
}

// NewChannelRepository creates a new ChannelRepository instance.
func NewChannelRepository(pool *pgxpool.Pool) *ChannelRepository {
	return &ChannelRepository{pool: pool}
}

// LinkChatToScope associates a chat with a scope name. Linking the same pair
// twice inserts a duplicate row, which is harmless for the name-based join.
func (r *ChannelRepository) LinkChatToScope(ctx context.Context, chatID int64, name string) (*model.Scope, error) {
	const query = `
		INSERT INTO scopes (name, chat_id)
		VALUES ($1, $2)
		RETURNING id, name, chat_id
	`

	var s model.Scope
	err := r.pool.QueryRow(ctx, query, name, chatID).Scan(&s.ID, &s.Name, &s.ChatID)
	if err != nil {
		return nil, fmt.Errorf("failed to link chat to scope: %w", err)
	}
	return &s, nil
}

// GetScope resolves the scope row matching (name, chat_id).
// Returns ErrScopeNotFound when the chat is not linked under that name.
func (r *ChannelRepository) GetScope(ctx context.Context, name string, chatID int64) (*model.Scope, error) {
	const query = `
		SELECT id, name, chat_id
		FROM scopes
		WHERE name = $1 AND chat_id = $2
		ORDER BY id ASC
		LIMIT 1
	`

	var s model.Scope
	err := r.pool.QueryRow(ctx, query, name, chatID).Scan(&s.ID, &s.Name, &s.ChatID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrScopeNotFound
		}
		return nil, fmt.Errorf("failed to get scope: %w", err)
	}
	return &s, nil
}

// AddChannel inserts a channel under a scope id.
func (r *ChannelRepository) AddChannel(ctx context.Context, scopeID int64, url, description string) (*model.Channel, error) {
	const query = `
		INSERT INTO channels (scope_id, description, url)
		VALUES ($1, $2, $3)
		RETURNING id, scope_id, description, url
	`

	var c model.Channel
	err := r.pool.QueryRow(ctx, query, scopeID, description, url).Scan(&c.ID, &c.ScopeID, &c.Description, &c.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to add channel: %w", err)
	}
	return &c, nil
}

// ListForChat returns every channel whose scope shares a name with any scope
// linked to the chat. The join is by scope name, not scope id: that is what
// lets one channel list broadcast to a group of chats.
func (r *ChannelRepository) ListForChat(ctx context.Context, chatID int64) ([]model.Channel, error) {
	const query = `
		SELECT DISTINCT c.id, c.scope_id, c.description, c.url
		FROM channels c
		JOIN scopes s ON c.scope_id = s.id
		WHERE s.name IN (SELECT name FROM scopes WHERE chat_id = $1)
		ORDER BY c.id ASC
	`

	rows, err := r.pool.Query(ctx, query, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}
	defer rows.Close()

	var channels []model.Channel
	for rows.Next() {
		var c model.Channel
		if err := rows.Scan(&c.ID, &c.ScopeID, &c.Description, &c.URL); err != nil {
			return nil, fmt.Errorf("failed to scan channel: %w", err)
		}
		channels = append(channels, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating channels: %w", err)
	}

	return channels, nil
}

// RemoveInScope deletes a channel by id, constrained to scopes carrying the
// given name.
func (r *ChannelRepository) RemoveInScope(ctx context.Context, id int64, scopeName string) error {
	const query = `
		DELETE FROM channels
		WHERE id = $1
		  AND scope_id IN (SELECT id FROM scopes WHERE name = $2)
	`

	result, err := r.pool.Exec(ctx, query, id, scopeName)
	if err != nil {
		return fmt.Errorf("failed to remove channel: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrChannelNotFound
	}
	return nil
}

package handler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v3"

	"github.com/allinbits/telegram-bots/internal/pkg/reply"
	"github.com/allinbits/telegram-bots/internal/service"
)

var (
	errEmptyScope     = errors.New("scope is empty")
	errEmptyURL       = errors.New("url is empty")
	errInvalidChannel = errors.New("invalid channel id")
)

// ChannelHandler handles scoped channel list commands.
type ChannelHandler struct {
	channelService *service.ChannelService
}

// NewChannelHandler creates a new ChannelHandler.
func NewChannelHandler(channelService *service.ChannelService) *ChannelHandler {
	return &ChannelHandler{channelService: channelService}
}

// HandleList handles /channels: every channel visible to this chat through
// its linked scope names.
func (h *ChannelHandler) HandleList(c tele.Context) error {
	chat := c.Chat()
	if chat == nil {
		return nil
	}

	channels, err := h.channelService.ListForChat(context.Background(), chat.ID)
	if err != nil {
		return err
	}

	if len(channels) == 0 {
		return c.Reply("No channels configured for this chat", reply.Options())
	}

	entries := make([]string, 0, len(channels))
	for _, ch := range channels {
		entries = append(entries, fmt.Sprintf("%d. %s\n%s\n", ch.ID, ch.Description, ch.URL))
	}

	return reply.Pages(c, reply.PaginateEntries("", entries, reply.MaxMessageLen))
}

// HandleLink handles /channel_link <scope_name> (owner only).
func (h *ChannelHandler) HandleLink(c tele.Context) error {
	chat := c.Chat()
	if chat == nil {
		return nil
	}

	args := c.Args()
	if len(args) < 1 {
		return errEmptyScope
	}
	scopeName := args[0]

	if _, err := h.channelService.Link(context.Background(), chat.ID, scopeName); err != nil {
		return err
	}

	return c.Reply(fmt.Sprintf("Linked this chat to scope '%s'", scopeName), reply.Options())
}

// HandleAdd handles /channel_add <scope> <url> <description...> (owner only).
func (h *ChannelHandler) HandleAdd(c tele.Context) error {
	chat := c.Chat()
	if chat == nil {
		return nil
	}

	args := c.Args()
	if len(args) < 1 {
		return errEmptyScope
	}
	if len(args) < 2 {
		return errEmptyURL
	}
	scopeName := args[0]
	url := args[1]
	description := strings.Join(args[2:], " ")

	if _, err := h.channelService.Add(context.Background(), scopeName, chat.ID, url, description); err != nil {
		return err
	}

	return c.Reply("Added channel successfully", reply.Options())
}

// HandleRemove handles /channel_remove <channel_id> <scope> (owner only).
func (h *ChannelHandler) HandleRemove(c tele.Context) error {
	args := c.Args()
	if len(args) < 1 {
		return errInvalidChannel
	}
	if len(args) < 2 {
		return errEmptyScope
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return errInvalidChannel
	}
	scopeName := args[1]

	if err := h.channelService.Remove(context.Background(), id, scopeName); err != nil {
		return err
	}

	return c.Reply(fmt.Sprintf("Removed channel %d from scope '%s'", id, scopeName), reply.Options())
}

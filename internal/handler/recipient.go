package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/allinbits/telegram-bots/internal/pkg/reply"
	"github.com/allinbits/telegram-bots/internal/service"
)

// confirmationTTL is how long registration confirmations stay visible before
// both the confirmation and the original message are deleted. Registration
// messages carry addresses, so they are cleaned out of the chat history.
const confirmationTTL = 5 * time.Second

// RecipientHandler handles payout address registration commands.
type RecipientHandler struct {
	recipientService *service.RecipientService
}

// NewRecipientHandler creates a new RecipientHandler.
func NewRecipientHandler(recipientService *service.RecipientService) *RecipientHandler {
	return &RecipientHandler{recipientService: recipientService}
}

// HandleRegister handles /register <address>. Accounts without a username
// register under the synthetic "TGID:<id>" identity.
func (h *RecipientHandler) HandleRegister(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}

	args := c.Args()
	if len(args) < 1 {
		return service.ErrEmptyAddress
	}
	address := args[0]

	identity := service.Identity(sender.Username, sender.ID)
	if err := h.recipientService.Register(context.Background(), identity, address); err != nil {
		return err
	}

	var text string
	if sender.Username != "" {
		text = fmt.Sprintf("Registered %s for @%s", address, sender.Username)
	} else {
		text = fmt.Sprintf("Registered %s for user with ID: %d", address, sender.ID)
	}

	sent, err := c.Bot().Reply(c.Message(), text, reply.Options())
	if err != nil {
		return err
	}

	// Best-effort cleanup; deletion failures are deliberately ignored.
	original := c.Message()
	b := c.Bot()
	time.AfterFunc(confirmationTTL, func() {
		_ = b.Delete(original)
		_ = b.Delete(sent)
	})

	return nil
}

// HandleByUsername handles /byusername <username> (owner only).
func (h *RecipientHandler) HandleByUsername(c tele.Context) error {
	args := c.Args()
	if len(args) < 1 {
		return errMissingArgs
	}
	username := strings.TrimPrefix(args[0], "@")

	address, err := h.recipientService.AddressOf(context.Background(), username)
	if err != nil {
		if errors.Is(err, service.ErrRecipientNotRegistered) {
			return c.Reply(fmt.Sprintf("@%s has no registered address", username), reply.Options())
		}
		return err
	}

	return c.Reply(fmt.Sprintf("@%s is registered with address %s", username, address), reply.Options())
}

// HandleByAddress handles /byaddress <address> (owner only).
func (h *RecipientHandler) HandleByAddress(c tele.Context) error {
	args := c.Args()
	if len(args) < 1 {
		return errMissingArgs
	}
	address := args[0]

	username, err := h.recipientService.UsernameByAddress(context.Background(), address)
	if err != nil {
		if errors.Is(err, service.ErrRecipientNotRegistered) {
			return c.Reply(fmt.Sprintf("Address %s is not registered", address), reply.Options())
		}
		return err
	}

	return c.Reply(fmt.Sprintf("Address %s is registered to @%s", address, username), reply.Options())
}

// HandleDump handles /dump (owner only): every registration, one per line.
func (h *RecipientHandler) HandleDump(c tele.Context) error {
	recipients, err := h.recipientService.Dump(context.Background())
	if err != nil {
		return err
	}

	entries := make([]string, 0, len(recipients))
	for _, r := range recipients {
		entries = append(entries, fmt.Sprintf("@%s - %s\n", r.Username, r.Address))
	}

	return reply.Pages(c, reply.PaginateEntries("Registered Users:\n\n", entries, reply.MaxMessageLen))
}

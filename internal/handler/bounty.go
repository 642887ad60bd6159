// Package handler provides Telegram bot command handlers.
package handler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v3"

	"github.com/allinbits/telegram-bots/internal/coin"
	"github.com/allinbits/telegram-bots/internal/model"
	"github.com/allinbits/telegram-bots/internal/pkg/reply"
	"github.com/allinbits/telegram-bots/internal/service"
)

// Argument-shape errors surfaced through the usage reply.
var (
	errMissingArgs   = errors.New("missing arguments")
	errInvalidID     = errors.New("invalid bounty id")
	errEmptyUsername = errors.New("username is empty")
)

// BountyHandler handles bounty lifecycle commands.
type BountyHandler struct {
	bountyService *service.BountyService
	explorerURL   string
}

// NewBountyHandler creates a new BountyHandler.
func NewBountyHandler(bountyService *service.BountyService, explorerURL string) *BountyHandler {
	return &BountyHandler{
		bountyService: bountyService,
		explorerURL:   explorerURL,
	}
}

// HandleCreate handles /bounty <amount><denom> <task>.
func (h *BountyHandler) HandleCreate(c tele.Context) error {
	args := c.Args()
	if len(args) < 2 {
		return errMissingArgs
	}

	task := strings.Join(args[1:], " ")
	b, err := h.bountyService.Create(context.Background(), args[0], task)
	if err != nil {
		return err
	}

	return c.Reply(fmt.Sprintf("Bounty created with ID: %d", b.ID), reply.Options())
}

// HandleList handles /bounties, optionally filtered to a single id.
func (h *BountyHandler) HandleList(c tele.Context) error {
	bounties, err := h.bountyService.List(context.Background())
	if err != nil {
		return err
	}

	args := c.Args()
	if len(args) >= 1 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return errInvalidID
		}
		filtered := bounties[:0]
		for _, b := range bounties {
			if b.Bounty.ID == id {
				filtered = append(filtered, b)
			}
		}
		bounties = filtered
	}

	if len(bounties) == 0 {
		return c.Reply("No active bounties", reply.Options())
	}

	entries := make([]string, 0, len(bounties))
	for _, b := range bounties {
		entries = append(entries, formatBountyEntry(b))
	}

	return reply.Pages(c, reply.PaginateEntries("Active Bounties:\n\n", entries, reply.MaxMessageLen))
}

// HandleUpdate handles /bounty_update <id> <amount><denom> <description>.
func (h *BountyHandler) HandleUpdate(c tele.Context) error {
	args := c.Args()
	if len(args) < 2 {
		return errMissingArgs
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return errInvalidID
	}

	description := strings.Join(args[2:], " ")
	if err := h.bountyService.Update(context.Background(), id, args[1], description); err != nil {
		return err
	}

	return c.Reply(fmt.Sprintf("Bounty with ID: %d updated", id), reply.Options())
}

// HandleClaim handles /bounty_claim <id> <proof text>.
func (h *BountyHandler) HandleClaim(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}

	args := c.Args()
	if len(args) < 1 {
		return errMissingArgs
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return errInvalidID
	}

	proof := strings.Join(args[1:], " ")
	identity := service.Identity(sender.Username, sender.ID)
	if _, err := h.bountyService.Claim(context.Background(), id, identity, proof); err != nil {
		return err
	}

	return c.Reply(fmt.Sprintf("Claim recorded for bounty %d", id), reply.Options())
}

// HandleDelete handles /bounty_delete <id>.
func (h *BountyHandler) HandleDelete(c tele.Context) error {
	args := c.Args()
	if len(args) < 1 {
		return errMissingArgs
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return errInvalidID
	}

	if err := h.bountyService.Delete(context.Background(), id); err != nil {
		return err
	}

	return c.Reply(fmt.Sprintf("Bounty %d deleted", id), reply.Options())
}

// HandleComplete handles /bounty_complete <id> <username>. On success the
// reply carries the explorer link for the payout transaction.
func (h *BountyHandler) HandleComplete(c tele.Context) error {
	args := c.Args()
	if len(args) < 2 {
		return errMissingArgs
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return errInvalidID
	}
	username := strings.TrimPrefix(args[1], "@")
	if username == "" {
		return errEmptyUsername
	}

	txHash, err := h.bountyService.Complete(context.Background(), id, username)
	if err != nil {
		return err
	}

	return c.Reply(fmt.Sprintf(
		"Bounty %d marked as completed and paid to @%s\n\nTransaction: %s%s",
		id, username, h.explorerURL, txHash,
	), reply.Options())
}

// formatBountyEntry renders one bounty (with its claims) for the list reply.
// Amounts rescale to the human unit for display only.
func formatBountyEntry(b model.BountyWithClaims) string {
	var sb strings.Builder
	sb.WriteString("------------------------------------------------\n")
	fmt.Fprintf(&sb, "ID: %d\n", b.Bounty.ID)
	sb.WriteString("Task:\n")
	sb.WriteString(b.Bounty.Task)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Amount: %s\n", coin.Format(coin.Coin{Amount: b.Bounty.Amount, Denom: b.Bounty.Denom}))
	if len(b.Claims) > 0 {
		sb.WriteString("Claims:\n")
		for _, claim := range b.Claims {
			proof := ""
			if claim.Proof != nil {
				proof = " - " + *claim.Proof
			}
			fmt.Fprintf(&sb, "  @%s%s\n", claim.Username, proof)
		}
	}
	sb.WriteString("\n")
	return sb.String()
}

// Package payout defines the boundary to the on-chain transfer service.
//
// The bot never signs or broadcasts transactions itself: a separate signing
// service holds the wallet and exposes a single transfer endpoint. The bot
// hands it a recipient address and a micro-unit coin amount and gets back a
// transaction hash, or an error.
package payout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/allinbits/telegram-bots/internal/coin"
	"github.com/allinbits/telegram-bots/internal/config"
)

// ErrPayoutFailed reports a transfer the payout service did not execute.
var ErrPayoutFailed = errors.New("payout failed")

// Executor performs an on-chain transfer of a coin amount to an address.
type Executor interface {
	SendTokens(ctx context.Context, recipient string, amount coin.Coin) (txHash string, err error)
}

// Client is an HTTP adapter to the payout service.
type Client struct {
	endpoint   string
	memo       string
	httpClient *http.Client
}

// NewClient creates a payout client from configuration.
func NewClient(cfg *config.PayoutConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		endpoint:   cfg.Endpoint,
		memo:       cfg.Memo,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type transferRequest struct {
	Recipient string `json:"recipient"`
	Amount    string `json:"amount"`
	Denom     string `json:"denom"`
	Memo      string `json:"memo,omitempty"`
}

type transferResponse struct {
	TxHash string `json:"tx_hash"`
	Error  string `json:"error,omitempty"`
}

// SendTokens submits a transfer and returns the resulting transaction hash.
// Any transport error, non-2xx status or missing hash surfaces as
// ErrPayoutFailed with the cause attached.
func (c *Client) SendTokens(ctx context.Context, recipient string, amount coin.Coin) (string, error) {
	body, err := json.Marshal(transferRequest{
		Recipient: recipient,
		Amount:    amount.Amount,
		Denom:     amount.Denom,
		Memo:      c.memo,
	})
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %w", ErrPayoutFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: create request: %w", ErrPayoutFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPayoutFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %w", ErrPayoutFailed, err)
	}

	var result transferResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("%w: decode response (status %d): %w", ErrPayoutFailed, resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := result.Error
		if msg == "" {
			msg = string(respBody)
		}
		return "", fmt.Errorf("%w: service returned status %d: %s", ErrPayoutFailed, resp.StatusCode, msg)
	}
	if result.TxHash == "" {
		return "", fmt.Errorf("%w: service returned no transaction hash", ErrPayoutFailed)
	}

	log.Info().
		Str("recipient", recipient).
		Str("amount", amount.Amount).
		Str("denom", amount.Denom).
		Str("tx_hash", result.TxHash).
		Msg("Payout executed")

	return result.TxHash, nil
}

package bot

import (
	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"github.com/allinbits/telegram-bots/internal/config"
	"github.com/allinbits/telegram-bots/internal/pkg/reply"
)

// LoggingMiddleware creates a middleware that logs all incoming messages.
func LoggingMiddleware() tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			chat := c.Chat()

			logEvent := log.Debug()
			if sender != nil {
				logEvent = logEvent.
					Int64("user_id", sender.ID).
					Str("username", sender.Username)
			}
			if chat != nil {
				logEvent = logEvent.
					Int64("chat_id", chat.ID).
					Str("chat_type", string(chat.Type))
			}
			logEvent.
				Str("text", c.Text()).
				Msg("Received message")

			return next(c)
		}
	}
}

// RecoveryMiddleware creates a middleware that recovers from panics.
func RecoveryMiddleware() tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			defer func() {
				if r := recover(); r != nil {
					log.Error().
						Interface("panic", r).
						Str("text", c.Text()).
						Msg("Recovered from panic in handler")
					_ = c.Reply("An internal error occurred, please try again later", reply.Options())
				}
			}()
			return next(c)
		}
	}
}

// ownerGate wraps a handler so only senders whose username is on the owner
// allow-list can run it. Everyone else gets a fixed refusal.
func ownerGate(cfg *config.Config, next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		sender := c.Sender()
		if sender == nil || !cfg.IsOwner(sender.Username) {
			log.Warn().
				Str("username", usernameOf(sender)).
				Str("text", c.Text()).
				Msg("Non-owner attempted owner command")
			return c.Reply("This command is only available to owners", reply.Options())
		}
		return next(c)
	}
}

func usernameOf(sender *tele.User) string {
	if sender == nil {
		return ""
	}
	return sender.Username
}

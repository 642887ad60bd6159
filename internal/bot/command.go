package bot

import (
	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"github.com/allinbits/telegram-bots/internal/config"
	"github.com/allinbits/telegram-bots/internal/pkg/reply"
)

// Command describes one chat command: its registration metadata, its usage
// string, its handler and whether it is restricted to owners.
type Command struct {
	Text        string
	Description string
	Usage       string
	OwnerOnly   bool
	Handler     tele.HandlerFunc
}

// registerCommands wires a command table into the bot: each handler is
// wrapped with the owner gate where required and with the uniform error
// reply (usage string plus the error's message). The table is also pushed to
// Telegram so clients show the command list.
func registerCommands(b *tele.Bot, cfg *config.Config, commands []Command) {
	for _, cmd := range commands {
		handler := withUsage(cmd)
		if cmd.OwnerOnly {
			handler = ownerGate(cfg, handler)
		}
		b.Handle(cmd.Text, handler)
	}

	teleCommands := make([]tele.Command, 0, len(commands))
	for _, cmd := range commands {
		teleCommands = append(teleCommands, tele.Command{
			Text:        cmd.Text[1:], // Telegram wants the name without the slash
			Description: cmd.Description,
		})
	}
	if err := b.SetCommands(teleCommands); err != nil {
		log.Error().Err(err).Msg("Failed to register bot commands")
	}
	if err := b.SetCommands(teleCommands, tele.CommandScope{Type: tele.CommandScopeAllPrivateChats}); err != nil {
		log.Error().Err(err).Msg("Failed to register private chat commands")
	}
	if err := b.SetCommands(teleCommands, tele.CommandScope{Type: tele.CommandScopeAllGroupChats}); err != nil {
		log.Error().Err(err).Msg("Failed to register group chat commands")
	}
}

// withUsage converts handler errors into a user-visible reply combining the
// command's usage string with the error's message, after logging the raw
// command text. No error is silently swallowed.
func withUsage(cmd Command) tele.HandlerFunc {
	return func(c tele.Context) error {
		err := cmd.Handler(c)
		if err == nil {
			return nil
		}
		log.Error().
			Err(err).
			Str("command", cmd.Text).
			Str("text", c.Text()).
			Msg("Command failed")
		return c.Reply(cmd.Usage+"\n\nError: "+err.Error(), reply.Options())
	}
}

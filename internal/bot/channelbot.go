package bot

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"github.com/allinbits/telegram-bots/internal/config"
	"github.com/allinbits/telegram-bots/internal/handler"
	"github.com/allinbits/telegram-bots/internal/service"
)

// ChannelBot wraps the telebot instance for the channel list bot.
type ChannelBot struct {
	bot *tele.Bot
	cfg *config.Config
}

// ChannelDependencies holds everything the channel bot's handlers need.
type ChannelDependencies struct {
	Config         *config.Config
	ChannelService *service.ChannelService
}

// NewChannelBot creates the channel bot and wires its command table.
func NewChannelBot(deps *ChannelDependencies) (*ChannelBot, error) {
	if deps.Config.Bot.Token == "" {
		return nil, fmt.Errorf("bot token is required")
	}

	pref := tele.Settings{
		Token:  deps.Config.Bot.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	teleBot, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	channelHandler := handler.NewChannelHandler(deps.ChannelService)

	commands := []Command{
		{
			Text:        "/channels",
			Description: "List channels for this chat's scope",
			Usage:       "Usage: /channels",
			Handler:     channelHandler.HandleList,
		},
		{
			Text:        "/channel_link",
			Description: "Link this chat to a scope (owners only)",
			Usage:       "Usage: /channel_link <scope_name>",
			OwnerOnly:   true,
			Handler:     channelHandler.HandleLink,
		},
		{
			Text:        "/channel_add",
			Description: "Add channel to scope (owners only)",
			Usage:       "Usage: /channel_add <scope> <url> <description...>",
			OwnerOnly:   true,
			Handler:     channelHandler.HandleAdd,
		},
		{
			Text:        "/channel_remove",
			Description: "Remove channel in scope (owners only)",
			Usage:       "Usage: /channel_remove <channel_id> <scope>",
			OwnerOnly:   true,
			Handler:     channelHandler.HandleRemove,
		},
	}

	teleBot.Use(LoggingMiddleware())
	teleBot.Use(RecoveryMiddleware())
	registerCommands(teleBot, deps.Config, commands)

	return &ChannelBot{bot: teleBot, cfg: deps.Config}, nil
}

// Start starts the bot polling. Blocks until Stop is called.
func (b *ChannelBot) Start() {
	log.Info().Msg("Starting channel bot...")
	b.bot.Start()
}

// Stop stops the bot gracefully.
func (b *ChannelBot) Stop() {
	log.Info().Msg("Stopping channel bot...")
	b.bot.Stop()
}

package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"github.com/allinbits/telegram-bots/internal/config"
	"github.com/allinbits/telegram-bots/internal/handler"
	"github.com/allinbits/telegram-bots/internal/pkg/reply"
	"github.com/allinbits/telegram-bots/internal/service"
)

// BountyBot wraps the telebot instance for the bounty bot.
type BountyBot struct {
	bot      *tele.Bot
	cfg      *config.Config
	commands []Command
}

// BountyDependencies holds everything the bounty bot's handlers need.
type BountyDependencies struct {
	Config           *config.Config
	BountyService    *service.BountyService
	RecipientService *service.RecipientService
}

// NewBountyBot creates the bounty bot, wires its command table and registers
// the commands with Telegram.
func NewBountyBot(deps *BountyDependencies) (*BountyBot, error) {
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

	b := &BountyBot{
		bot: teleBot,
		cfg: deps.Config,
	}

	bountyHandler := handler.NewBountyHandler(deps.BountyService, deps.Config.Payout.ExplorerURL)
	recipientHandler := handler.NewRecipientHandler(deps.RecipientService)

	b.commands = []Command{
		{
			Text:        "/bounty",
			Description: "Create a bounty (owners only)",
			Usage:       "Usage: /bounty <amount><denom> <task>",
			OwnerOnly:   true,
			Handler:     bountyHandler.HandleCreate,
		},
		{
			Text:        "/bounties",
			Description: "List active bounties",
			Usage:       "Usage: /bounties [bounty_id]",
			Handler:     bountyHandler.HandleList,
		},
		{
			Text:        "/bounty_update",
			Description: "Update bounty amount (owners only)",
			Usage:       "Usage: /bounty_update <bounty_id> <amount><denom> <description>",
			OwnerOnly:   true,
			Handler:     bountyHandler.HandleUpdate,
		},
		{
			Text:        "/bounty_claim",
			Description: "Claim a bounty with proof of completion",
			Usage:       "Usage: /bounty_claim <bounty_id> <proof>",
			Handler:     bountyHandler.HandleClaim,
		},
		{
			Text:        "/bounty_delete",
			Description: "Delete a bounty (owners only)",
			Usage:       "Usage: /bounty_delete <bounty_id>",
			OwnerOnly:   true,
			Handler:     bountyHandler.HandleDelete,
		},
		{
			Text:        "/bounty_complete",
			Description: "Complete and pay bounty (owners only)",
			Usage:       "Usage: /bounty_complete <bounty_id> <username>",
			OwnerOnly:   true,
			Handler:     bountyHandler.HandleComplete,
		},
		{
			Text:        "/register",
			Description: "Register your ATONE address",
			Usage:       "Usage: /register <address>",
			Handler:     recipientHandler.HandleRegister,
		},
		{
			Text:        "/byusername",
			Description: "Look up a registered address (owners only)",
			Usage:       "Usage: /byusername <username>",
			OwnerOnly:   true,
			Handler:     recipientHandler.HandleByUsername,
		},
		{
			Text:        "/byaddress",
			Description: "Look up who registered an address (owners only)",
			Usage:       "Usage: /byaddress <address>",
			OwnerOnly:   true,
			Handler:     recipientHandler.HandleByAddress,
		},
		{
			Text:        "/dump",
			Description: "List all registrations (owners only)",
			Usage:       "Usage: /dump",
			OwnerOnly:   true,
			Handler:     recipientHandler.HandleDump,
		},
		{
			Text:        "/bounty_help",
			Description: "Show help",
			Usage:       "Usage: /bounty_help",
			Handler:     b.handleHelp,
		},
	}

	teleBot.Use(LoggingMiddleware())
	teleBot.Use(RecoveryMiddleware())
	registerCommands(teleBot, deps.Config, b.commands)

	return b, nil
}

// handleHelp renders the command table as static usage text.
func (b *BountyBot) handleHelp(c tele.Context) error {
	var sb strings.Builder
	sb.WriteString("Hi, I'm the Atone bounty bot. I'm here to help organize bounties and pay them out.\n\n")
	for _, cmd := range b.commands {
		fmt.Fprintf(&sb, "%s - %s\n%s\n\n", cmd.Text, cmd.Description, cmd.Usage)
	}
	return c.Reply(sb.String(), reply.Options())
}

// Start starts the bot polling. Blocks until Stop is called.
func (b *BountyBot) Start() {
	log.Info().Msg("Starting bounty bot...")
	b.bot.Start()
}

// Stop stops the bot gracefully.
func (b *BountyBot) Stop() {
	log.Info().Msg("Stopping bounty bot...")
	b.bot.Stop()
}

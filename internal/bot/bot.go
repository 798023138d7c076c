package bot

import (
	"github.com/bwmarrin/discordgo"
	"github.com/minecash/discord-bot/config"
	"github.com/minecash/discord-bot/internal/service"
	"github.com/minecash/discord-bot/utils"
)

type Bot struct {
	session *discordgo.Session
	service *service.Service
	logger  *utils.Logger
	config  *config.Config
}

func NewBot(
	session *discordgo.Session,
	svc *service.Service,
	logger *utils.Logger,
	cfg *config.Config,
) *Bot {
	return &Bot{
		session: session,
		service: svc,
		logger:  logger,
		config:  cfg,
	}
}

// Start registers the gateway handlers and opens the websocket connection.
func (b *Bot) Start() error {
	b.session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsMessageContent |
		discordgo.IntentsDirectMessages

	b.session.AddHandler(b.onReady)
	b.session.AddHandler(b.onInteractionCreate)
	b.session.AddHandler(b.onMessageCreate)

	if err := b.session.Open(); err != nil {
		return err
	}
	return nil
}

func (b *Bot) Stop() error {
	return b.session.Close()
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.logger.Infof("Minecash Discord Bot is online as %s#%s", r.User.Username, r.User.Discriminator)
	b.logger.Infof("Monitoring guild: %s", b.config.GuildID)
}

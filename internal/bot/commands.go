package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

const commandCheckUser = "checkuser"

// RegisterCommands publishes the application commands. Safe to call on every
// startup; Discord upserts by name.
func (b *Bot) RegisterCommands() error {
	appID := b.config.DiscordClientID
	if appID == "" && b.session.State != nil && b.session.State.User != nil {
		appID = b.session.State.User.ID
	}

	commands := []*discordgo.ApplicationCommand{
		{
			Name:        commandCheckUser,
			Description: "Check if a user is in the MineCash Discord server",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "userid",
					Description: "The Discord user ID to check",
					Required:    true,
				},
			},
		},
	}

	for _, cmd := range commands {
		if _, err := b.session.ApplicationCommandCreate(appID, "", cmd); err != nil {
			return fmt.Errorf("failed to register /%s: %w", cmd.Name, err)
		}
	}

	b.logger.Info("Registered application commands")
	return nil
}

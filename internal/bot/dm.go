package bot

import (
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/minecash/discord-bot/internal/discord"
)

// onMessageCreate points users who DM the bot about tickets at the website.
// The bot never opens tickets from DMs directly.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if m.GuildID != "" { // guild message, not a DM
		return
	}

	content := strings.ToLower(m.Content)
	if !strings.Contains(content, "withdraw") &&
		!strings.Contains(content, "deposit") &&
		!strings.Contains(content, "support") {
		return
	}

	embed := &discordgo.MessageEmbed{
		Color:       discord.ColorGold,
		Title:       "Minecash support",
		Description: "Please use the website to create support tickets. This bot only handles automated ticket creation.",
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Website", Value: "https://minecash.com", Inline: true},
			{Name: "Support", Value: "Use the website buttons to create tickets", Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Minecash support system"},
	}
	if _, err := s.ChannelMessageSendEmbedReply(m.ChannelID, embed, m.Reference()); err != nil {
		b.logger.Errorf("Failed to reply to DM: %v", err)
	}
}

package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/minecash/discord-bot/internal/discord"
	"github.com/minecash/discord-bot/internal/models"
	"github.com/minecash/discord-bot/internal/service"
)

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	switch i.Type {
	case discordgo.InteractionMessageComponent:
		action, ok := discord.ParseAction(i.MessageComponentData().CustomID)
		if !ok {
			b.logger.Warnf("Ignoring unknown button custom id: %s", i.MessageComponentData().CustomID)
			return
		}
		switch action.Kind {
		case discord.ActionCloseTicket:
			b.handleCloseTicket(ctx, i, action)
		case discord.ActionConfirmDeposit, discord.ActionConfirmWithdraw:
			b.handleConfirmTransaction(ctx, i, action)
		}

	case discordgo.InteractionApplicationCommand:
		if i.ApplicationCommandData().Name == commandCheckUser {
			b.handleCheckUser(ctx, i)
		}
	}
}

func (b *Bot) handleCloseTicket(ctx context.Context, i *discordgo.InteractionCreate, action discord.Action) {
	err := b.service.CloseTicket(ctx, interactionUserID(i), action.ChannelID)
	switch {
	case err == nil:
		b.replyEphemeral(i, "Ticket closed successfully")
	case errors.Is(err, service.ErrPermissionDenied):
		b.replyEmbedEphemeral(i, permissionDeniedEmbed(
			"You do not have permission to close tickets. Only staff members with admin role can close tickets."))
	case errors.Is(err, service.ErrTicketAlreadyClosed):
		b.replyEphemeral(i, "This ticket is already closed")
	case errors.Is(err, service.ErrTicketNotFound):
		b.replyEphemeral(i, "Ticket not found")
	default:
		b.logger.Errorf("Error closing ticket: %v", err)
		b.replyEphemeral(i, "Error closing ticket")
	}
}

func (b *Bot) handleConfirmTransaction(ctx context.Context, i *discordgo.InteractionCreate, action discord.Action) {
	ticketType := action.TicketType()
	_, err := b.service.ConfirmTransaction(ctx, interactionUserID(i), action.ChannelID, ticketType, action.Amount)
	switch {
	case err == nil:
		b.replyEphemeral(i, fmt.Sprintf("%s confirmed successfully", titled(ticketType)))
	case errors.Is(err, service.ErrPermissionDenied):
		b.replyEmbedEphemeral(i, permissionDeniedEmbed(
			"You do not have permission to confirm transactions. Only staff members with admin role can process deposits and withdrawals."))
	case errors.Is(err, service.ErrInsufficientBalance):
		b.replyEphemeral(i, "Insufficient balance for withdrawal")
	case errors.Is(err, service.ErrUserNotFound):
		b.replyEmbedEphemeral(i, &discordgo.MessageEmbed{
			Color:       discord.ColorRed,
			Title:       "User not found",
			Description: "User not found in database. Please ensure you have linked your Discord account.",
			Timestamp:   time.Now().Format(time.RFC3339),
		})
	case errors.Is(err, service.ErrTicketAlreadyProcessed):
		b.replyEphemeral(i, "This ticket has already been processed")
	case errors.Is(err, service.ErrInvalidAction), errors.Is(err, service.ErrTicketNotFound):
		b.replyEphemeral(i, "Invalid transaction data")
	default:
		b.logger.Errorf("Error confirming transaction: %v", err)
		b.replyEphemeral(i, "Error confirming transaction")
	}
}

func (b *Bot) handleCheckUser(ctx context.Context, i *discordgo.InteractionCreate) {
	userID := i.ApplicationCommandData().Options[0].StringValue()
	inServer := b.service.IsMember(ctx, userID)

	color := discord.ColorRed
	answer := "No"
	if inServer {
		color = discord.ColorTeal
		answer = "Yes"
	}
	b.replyEmbedEphemeral(i, &discordgo.MessageEmbed{
		Color: color,
		Title: "User server status",
		Fields: []*discordgo.MessageEmbedField{
			{Name: "User ID", Value: userID, Inline: true},
			{Name: "In server", Value: answer, Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

func (b *Bot) replyEphemeral(i *discordgo.InteractionCreate, content string) {
	err := b.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		b.logger.Errorf("Failed to respond to interaction: %v", err)
	}
}

func (b *Bot) replyEmbedEphemeral(i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	err := b.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		b.logger.Errorf("Failed to respond to interaction: %v", err)
	}
}

func permissionDeniedEmbed(description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color:       discord.ColorRed,
		Title:       "Permission denied",
		Description: description,
		Timestamp:   time.Now().Format(time.RFC3339),
	}
}

// interactionUserID returns the acting user's ID for both guild and DM
// interactions.
func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func titled(t models.TicketType) string {
	switch t {
	case models.TicketTypeDeposit:
		return "Deposit"
	case models.TicketTypeWithdraw:
		return "Withdraw"
	}
	return string(t)
}

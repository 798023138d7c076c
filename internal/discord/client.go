// Package discord wraps the discordgo session behind the narrow surface the
// workflows need: membership and role checks, ticket channel provisioning and
// the embeds posted into ticket channels.
package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/minecash/discord-bot/config"
	"github.com/minecash/discord-bot/internal/models"
	"github.com/minecash/discord-bot/utils"
)

// Embed colors, matching the website's palette.
const (
	ColorRed  = 0xFF6B6B
	ColorTeal = 0x4ECDC4
	ColorBlue = 0x45B7D1
	ColorGold = 0xFFD700
)

// channelDeleteDelay gives participants time to read the closing notice
// before the channel disappears.
const channelDeleteDelay = 10 * time.Second

type Client struct {
	session *discordgo.Session
	cfg     *config.Config
	logger  *utils.Logger

	deleteDelay time.Duration
}

func NewClient(session *discordgo.Session, cfg *config.Config, logger *utils.Logger) *Client {
	return &Client{
		session:     session,
		cfg:         cfg,
		logger:      logger,
		deleteDelay: channelDeleteDelay,
	}
}

// IsMember reports whether the Discord ID is a current member of the guild.
// An unknown member is not an error.
func (c *Client) IsMember(ctx context.Context, discordID string) (bool, error) {
	member, err := c.session.GuildMember(c.cfg.GuildID, discordID, discordgo.WithContext(ctx))
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to fetch guild member %s: %w", discordID, err)
	}
	return member != nil, nil
}

// MemberHasStaffRole reports whether the member carries the configured admin
// role or the Administrator permission. With no admin role configured nobody
// passes.
func (c *Client) MemberHasStaffRole(ctx context.Context, discordID string) (bool, error) {
	if c.cfg.AdminRoleID == "" {
		return false, nil
	}

	member, err := c.session.GuildMember(c.cfg.GuildID, discordID, discordgo.WithContext(ctx))
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to fetch guild member %s: %w", discordID, err)
	}

	for _, roleID := range member.Roles {
		if roleID == c.cfg.AdminRoleID {
			return true, nil
		}
	}

	perms, err := c.memberPermissions(ctx, member)
	if err != nil {
		return false, err
	}
	return perms&discordgo.PermissionAdministrator != 0, nil
}

// memberPermissions ORs the guild-level permissions of the member's roles.
func (c *Client) memberPermissions(ctx context.Context, member *discordgo.Member) (int64, error) {
	roles, err := c.session.GuildRoles(c.cfg.GuildID, discordgo.WithContext(ctx))
	if err != nil {
		return 0, fmt.Errorf("failed to fetch guild roles: %w", err)
	}

	var perms int64
	for _, role := range roles {
		if role.ID == c.cfg.GuildID { // @everyone
			perms |= role.Permissions
			continue
		}
		for _, roleID := range member.Roles {
			if role.ID == roleID {
				perms |= role.Permissions
			}
		}
	}
	return perms, nil
}

// CreateTicketChannel provisions a private text channel under the category for
// the ticket type, visible only to the requester and staff.
func (c *Client) CreateTicketChannel(ctx context.Context, discordID string, ticketType models.TicketType, name string) (string, error) {
	categoryID := c.cfg.DepositCategoryID
	if ticketType == models.TicketTypeSupport {
		categoryID = c.cfg.SupportCategoryID
	}

	channel, err := c.session.GuildChannelCreateComplex(c.cfg.GuildID, discordgo.GuildChannelCreateData{
		Name:     name,
		Type:     discordgo.ChannelTypeGuildText,
		ParentID: categoryID,
		PermissionOverwrites: []*discordgo.PermissionOverwrite{
			{
				ID:   c.cfg.GuildID, // @everyone
				Type: discordgo.PermissionOverwriteTypeRole,
				Deny: discordgo.PermissionViewChannel,
			},
			{
				ID:    discordID,
				Type:  discordgo.PermissionOverwriteTypeMember,
				Allow: discordgo.PermissionViewChannel | discordgo.PermissionSendMessages | discordgo.PermissionReadMessageHistory,
			},
		},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("failed to create channel %s: %w", name, err)
	}

	if c.cfg.AdminRoleID != "" {
		err = c.session.ChannelPermissionSet(
			channel.ID,
			c.cfg.AdminRoleID,
			discordgo.PermissionOverwriteTypeRole,
			discordgo.PermissionViewChannel|discordgo.PermissionSendMessages|discordgo.PermissionReadMessageHistory|discordgo.PermissionManageMessages,
			0,
			discordgo.WithContext(ctx),
		)
		if err != nil {
			c.logger.Errorf("Failed to grant admin role access to channel %s: %v", channel.ID, err)
		}
	}

	return channel.ID, nil
}

// PostTicketSummary posts the summary embed with the action buttons into a
// freshly created ticket channel. Monetary tickets get a confirm button next
// to the close button.
func (c *Client) PostTicketSummary(ctx context.Context, channelID, discordID string, ticketType models.TicketType, amount *float64, description string) error {
	embed := &discordgo.MessageEmbed{
		Color:       ticketColor(ticketType),
		Title:       fmt.Sprintf("Minecash %s request", ticketType),
		Description: fmt.Sprintf("A new %s request has been created", ticketType),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "User", Value: fmt.Sprintf("<@%s>", discordID), Inline: true},
			{Name: "Created", Value: time.Now().Format("1/2/2006, 3:04:05 PM"), Inline: true},
		},
		Footer:    &discordgo.MessageEmbedFooter{Text: "Minecash support system"},
		Timestamp: time.Now().Format(time.RFC3339),
	}
	if amount != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Amount", Value: fmt.Sprintf("%.0f GC", *amount), Inline: true,
		})
	}
	if description != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Description", Value: description,
		})
	}

	_, err := c.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{discordgo.ActionsRow{Components: ticketButtons(ticketType, channelID, amount)}},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to post ticket summary: %w", err)
	}
	return nil
}

// PostClosingNotice posts the staff closure embed into the ticket channel.
func (c *Client) PostClosingNotice(ctx context.Context, channelID string) error {
	embed := &discordgo.MessageEmbed{
		Color:       ColorRed,
		Title:       "Ticket closed",
		Description: "This ticket has been closed by staff.",
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	_, err := c.session.ChannelMessageSendEmbed(channelID, embed, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to post closing notice: %w", err)
	}
	return nil
}

// PostTransactionNotice posts the confirmation embed after a balance mutation.
func (c *Client) PostTransactionNotice(ctx context.Context, channelID, discordID string, ticketType models.TicketType, amount, newBalance float64) error {
	verb := "Deposited"
	title := "Deposit confirmed"
	if ticketType == models.TicketTypeWithdraw {
		verb = "Withdrawn"
		title = "Withdraw confirmed"
	}
	embed := &discordgo.MessageEmbed{
		Color:       ColorTeal,
		Title:       title,
		Description: fmt.Sprintf("%s %.0f GC", verb, amount),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "User", Value: fmt.Sprintf("<@%s>", discordID), Inline: true},
			{Name: "Amount", Value: fmt.Sprintf("%.0f GC", amount), Inline: true},
			{Name: "New balance", Value: fmt.Sprintf("%.0f GC", newBalance), Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
	_, err := c.session.ChannelMessageSendEmbed(channelID, embed, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to post transaction notice: %w", err)
	}
	return nil
}

// ScheduleChannelDelete deletes the channel after the configured delay,
// fire-and-forget. Failure is logged, not retried.
func (c *Client) ScheduleChannelDelete(channelID string) {
	time.AfterFunc(c.deleteDelay, func() {
		if _, err := c.session.ChannelDelete(channelID); err != nil {
			c.logger.Errorf("Failed to delete channel %s: %v", channelID, err)
			return
		}
		c.logger.Infof("Deleted channel %s", channelID)
	})
}

// ticketButtons renders the action row for a ticket summary: every ticket
// gets a close button, monetary tickets additionally get a confirm button
// bound to the channel and amount.
func ticketButtons(ticketType models.TicketType, channelID string, amount *float64) []discordgo.MessageComponent {
	buttons := []discordgo.MessageComponent{
		discordgo.Button{
			Label:    "Close ticket",
			Style:    discordgo.DangerButton,
			CustomID: Action{Kind: ActionCloseTicket, ChannelID: channelID}.CustomID(),
		},
	}
	if ticketType.Monetary() && amount != nil {
		label := "Confirm deposit"
		if ticketType == models.TicketTypeWithdraw {
			label = "Confirm withdrawal"
		}
		buttons = append(buttons, discordgo.Button{
			Label:    label,
			Style:    discordgo.SuccessButton,
			CustomID: ConfirmAction(ticketType, channelID, *amount).CustomID(),
		})
	}
	return buttons
}

func ticketColor(ticketType models.TicketType) int {
	switch ticketType {
	case models.TicketTypeWithdraw:
		return ColorRed
	case models.TicketTypeDeposit:
		return ColorTeal
	default:
		return ColorBlue
	}
}

func isNotFound(err error) bool {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Response != nil {
		return restErr.Response.StatusCode == http.StatusNotFound
	}
	return false
}

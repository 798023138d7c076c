package service

import (
	"context"
	"fmt"

	"github.com/minecash/discord-bot/internal/models"
	"github.com/minecash/discord-bot/utils"
)

const channelSuffixLen = 6

// Default GC bounds used when the gc_limits table is empty or unreadable.
const (
	DefaultMinAmount = 50
	DefaultMaxAmount = 500
)

type Limits struct {
	Min float64
	Max float64
}

type OpenTicketRequest struct {
	DiscordID   string
	Type        models.TicketType
	Amount      *float64
	Description string
}

// TicketChannel identifies the private channel provisioned for a ticket.
type TicketChannel struct {
	ChannelID   string
	ChannelName string
}

// GetGCLimits returns the configured per-type amount bounds, falling back to
// the 50-500 defaults when the table is empty or the read fails.
func (s *Service) GetGCLimits(ctx context.Context) map[models.TicketType]Limits {
	limits := map[models.TicketType]Limits{
		models.TicketTypeDeposit:  {Min: DefaultMinAmount, Max: DefaultMaxAmount},
		models.TicketTypeWithdraw: {Min: DefaultMinAmount, Max: DefaultMaxAmount},
	}

	rows, err := s.repo.GetGCLimits(ctx)
	if err != nil {
		s.logger.Errorf("Failed to fetch GC limits, using defaults: %v", err)
		return limits
	}

	for _, row := range rows {
		limits[models.TicketType(row.LimitType)] = Limits{Min: row.MinAmount, Max: row.MaxAmount}
	}
	return limits
}

// OpenTicket validates the request, provisions a private channel with the
// ticket summary and action buttons, and inserts a pending ticket row.
func (s *Service) OpenTicket(ctx context.Context, req OpenTicketRequest) (*TicketChannel, error) {
	if !req.Type.Valid() {
		return nil, ErrInvalidTicketType
	}

	if req.Type.Monetary() {
		bounds := s.GetGCLimits(ctx)[req.Type]
		if req.Amount == nil || *req.Amount < bounds.Min || *req.Amount > bounds.Max {
			return nil, fmt.Errorf("%w: must be between %.0f and %.0f GC", ErrAmountOutOfRange, bounds.Min, bounds.Max)
		}
	}

	member, err := s.discord.IsMember(ctx, req.DiscordID)
	if err != nil {
		s.logger.Errorf("Failed to check membership for %s: %v", req.DiscordID, err)
		return nil, ErrNotAMember
	}
	if !member {
		return nil, ErrNotAMember
	}

	user, err := s.repo.GetUserByDiscordID(ctx, req.DiscordID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	hasOpen, err := s.repo.HasOpenTicket(ctx, user.ID, req.Type)
	if err != nil {
		return nil, err
	}
	if hasOpen {
		return nil, fmt.Errorf("%w: please wait for your open %s ticket to be resolved before creating a new one", ErrDuplicateOpenTicket, req.Type)
	}

	channelName := fmt.Sprintf("%s-%s", req.Type, utils.RandomSuffix(channelSuffixLen))
	channelID, err := s.discord.CreateTicketChannel(ctx, req.DiscordID, req.Type, channelName)
	if err != nil {
		s.logger.Errorf("Failed to create ticket channel for %s: %v", req.DiscordID, err)
		return nil, err
	}

	if err := s.discord.PostTicketSummary(ctx, channelID, req.DiscordID, req.Type, req.Amount, req.Description); err != nil {
		s.logger.Errorf("Failed to post ticket summary to channel %s: %v", channelID, err)
	}

	ticket := &models.Ticket{
		UserID:           user.ID,
		TicketType:       req.Type,
		Amount:           req.Amount,
		Description:      req.Description,
		Status:           models.TicketStatusPending,
		DiscordChannelID: channelID,
	}
	if err := s.repo.CreateTicket(ctx, ticket); err != nil {
		s.logger.Errorf("Failed to log ticket to database: %v", err)
		return nil, err
	}

	s.logger.Infof("Created %s ticket %s for user %s", req.Type, channelName, req.DiscordID)
	return &TicketChannel{ChannelID: channelID, ChannelName: channelName}, nil
}

// GetOpenTickets lists the user's currently open tickets, newest first.
func (s *Service) GetOpenTickets(ctx context.Context, discordID string) ([]models.Ticket, error) {
	user, err := s.repo.GetUserByDiscordID(ctx, discordID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return s.repo.GetOpenTicketsByUser(ctx, user.ID)
}

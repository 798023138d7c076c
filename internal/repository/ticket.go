package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/minecash/discord-bot/internal/models"
	"gorm.io/gorm"
)

func (r *Repository) CreateTicket(ctx context.Context, ticket *models.Ticket) error {
	return r.db.WithContext(ctx).Create(ticket).Error
}

// HasOpenTicket reports whether the user already holds a pending or approved
// ticket of the given type.
func (r *Repository) HasOpenTicket(ctx context.Context, userID uint, ticketType models.TicketType) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Ticket{}).
		Where("user_id = ? AND ticket_type = ? AND status IN ?", userID, ticketType, models.OpenStatuses).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check open tickets for user %d: %w", userID, err)
	}
	return count > 0, nil
}

func (r *Repository) GetOpenTicketsByUser(ctx context.Context, userID uint) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status IN ?", userID, models.OpenStatuses).
		Order("created_at DESC").
		Find(&tickets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get open tickets for user %d: %w", userID, err)
	}
	return tickets, nil
}

func (r *Repository) GetTicketByChannel(ctx context.Context, channelID string) (*models.Ticket, error) {
	var ticket models.Ticket
	err := r.db.WithContext(ctx).
		Where("discord_channel_id = ?", channelID).
		Order("created_at DESC").
		First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ticket for channel %s: %w", channelID, err)
	}
	return &ticket, nil
}

// CompleteTicket transitions the ticket bound to channelID from an open status
// to completed, recording the processed amount. Returns the number of rows
// touched; zero means the ticket was already processed or closed, so a second
// confirm press is a no-op.
func (r *Repository) CompleteTicket(ctx context.Context, tx *gorm.DB, channelID string, amount float64) (int64, error) {
	now := time.Now()
	res := r.conn(tx).WithContext(ctx).
		Model(&models.Ticket{}).
		Where("discord_channel_id = ? AND status IN ?", channelID, models.OpenStatuses).
		Updates(map[string]interface{}{
			"status":           models.TicketStatusCompleted,
			"completed_at":     now,
			"processed_amount": amount,
		})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to complete ticket for channel %s: %w", channelID, res.Error)
	}
	return res.RowsAffected, nil
}

// CloseTicket marks the ticket bound to channelID closed. The status guard
// makes a repeated close press report zero rows instead of re-closing.
func (r *Repository) CloseTicket(ctx context.Context, channelID string) (int64, error) {
	now := time.Now()
	res := r.db.WithContext(ctx).
		Model(&models.Ticket{}).
		Where("discord_channel_id = ? AND status <> ?", channelID, models.TicketStatusClosed).
		Updates(map[string]interface{}{
			"status":    models.TicketStatusClosed,
			"closed_at": now,
		})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to close ticket for channel %s: %w", channelID, res.Error)
	}
	return res.RowsAffected, nil
}

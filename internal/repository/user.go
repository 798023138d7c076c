package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/minecash/discord-bot/internal/models"
	"gorm.io/gorm"
)

// GetUserByDiscordID looks up the internal user linked to a Discord identity.
// Users are created by the website registration flow, never here.
func (r *Repository) GetUserByDiscordID(ctx context.Context, discordID string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "discord_id = ?", discordID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by discord id %s: %w", discordID, err)
	}
	return &user, nil
}

func (r *Repository) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return &user, nil
}

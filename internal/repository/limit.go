package repository

import (
	"context"
	"fmt"

	"github.com/minecash/discord-bot/internal/models"
)

func (r *Repository) GetGCLimits(ctx context.Context) ([]models.GCLimit, error) {
	var limits []models.GCLimit
	if err := r.db.WithContext(ctx).Find(&limits).Error; err != nil {
		return nil, fmt.Errorf("failed to get gc limits: %w", err)
	}
	return limits, nil
}

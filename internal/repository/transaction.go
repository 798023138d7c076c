package repository

import (
	"context"
	"fmt"

	"github.com/minecash/discord-bot/internal/models"
	"gorm.io/gorm"
)

func (r *Repository) CreateTransaction(ctx context.Context, tx *gorm.DB, entry *models.Transaction) error {
	if err := r.conn(tx).WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to log transaction for user %d: %w", entry.UserID, err)
	}
	return nil
}

func (r *Repository) GetTransactionsByUser(ctx context.Context, userID uint) ([]models.Transaction, error) {
	var entries []models.Transaction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions for user %d: %w", userID, err)
	}
	return entries, nil
}

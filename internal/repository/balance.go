package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/minecash/discord-bot/internal/models"
	"gorm.io/gorm"
)

func (r *Repository) GetBalance(ctx context.Context, tx *gorm.DB, userID uint) (*models.Balance, error) {
	var balance models.Balance
	err := r.conn(tx).WithContext(ctx).First(&balance, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get balance for user %d: %w", userID, err)
	}
	return &balance, nil
}

// UpdateBalanceCAS writes newBalance only when the stored balance still equals
// oldBalance. Zero rows means a concurrent mutation won the race and the
// caller must abort.
func (r *Repository) UpdateBalanceCAS(ctx context.Context, tx *gorm.DB, userID uint, oldBalance, newBalance float64) (int64, error) {
	res := r.conn(tx).WithContext(ctx).
		Model(&models.Balance{}).
		Where("user_id = ? AND balance = ?", userID, oldBalance).
		Update("balance", newBalance)
	if res.Error != nil {
		r.logger.Errorf("Failed to update balance for user %d: %v", userID, res.Error)
		return 0, fmt.Errorf("failed to update balance for user %d: %w", userID, res.Error)
	}
	return res.RowsAffected, nil
}

package service

import (
	"context"

	"github.com/minecash/discord-bot/internal/models"
	"github.com/minecash/discord-bot/utils"
	"gorm.io/gorm"
)

type Service struct {
	repo    Repository
	discord Discord
	logger  *utils.Logger
}

type Repository interface {
	GetUserByDiscordID(ctx context.Context, discordID string) (*models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)

	CreateTicket(ctx context.Context, ticket *models.Ticket) error
	HasOpenTicket(ctx context.Context, userID uint, ticketType models.TicketType) (bool, error)
	GetOpenTicketsByUser(ctx context.Context, userID uint) ([]models.Ticket, error)
	GetTicketByChannel(ctx context.Context, channelID string) (*models.Ticket, error)
	CompleteTicket(ctx context.Context, tx *gorm.DB, channelID string, amount float64) (int64, error)
	CloseTicket(ctx context.Context, channelID string) (int64, error)

	GetBalance(ctx context.Context, tx *gorm.DB, userID uint) (*models.Balance, error)
	UpdateBalanceCAS(ctx context.Context, tx *gorm.DB, userID uint, oldBalance, newBalance float64) (int64, error)
	CreateTransaction(ctx context.Context, tx *gorm.DB, entry *models.Transaction) error

	GetGCLimits(ctx context.Context) ([]models.GCLimit, error)

	BeginTransaction(ctx context.Context) (*gorm.DB, error)
	Commit(tx *gorm.DB) error
	Rollback(tx *gorm.DB)
}

// Discord is the chat platform surface the workflows depend on. The concrete
// implementation lives in internal/discord; tests substitute a fake.
type Discord interface {
	IsMember(ctx context.Context, discordID string) (bool, error)
	MemberHasStaffRole(ctx context.Context, discordID string) (bool, error)

	CreateTicketChannel(ctx context.Context, discordID string, ticketType models.TicketType, name string) (string, error)
	PostTicketSummary(ctx context.Context, channelID, discordID string, ticketType models.TicketType, amount *float64, description string) error
	PostClosingNotice(ctx context.Context, channelID string) error
	PostTransactionNotice(ctx context.Context, channelID, discordID string, ticketType models.TicketType, amount, newBalance float64) error
	ScheduleChannelDelete(channelID string)
}

func NewService(repo Repository, discord Discord, logger *utils.Logger) *Service {
	return &Service{
		repo:    repo,
		discord: discord,
		logger:  logger,
	}
}

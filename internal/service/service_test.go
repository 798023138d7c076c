package service

import (
	"context"
	"fmt"
	"io"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/minecash/discord-bot/internal/models"
	"github.com/minecash/discord-bot/internal/repository"
	"github.com/minecash/discord-bot/utils"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Ticket{}, &models.Balance{}, &models.Transaction{}, &models.GCLimit{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func testLogger() *utils.Logger {
	logger := utils.InitLogger()
	logger.SetOutput(io.Discard)
	return logger
}

// fakeDiscord records the platform side effects of the workflows.
type fakeDiscord struct {
	members map[string]bool
	staff   map[string]bool

	memberErr error
	staffErr  error

	nextChannel int
	channels    []string
	summaries   []summaryCall
	closing     []string
	txNotices   []txNoticeCall
	deletes     []string
}

type summaryCall struct {
	ChannelID   string
	DiscordID   string
	Type        models.TicketType
	Amount      *float64
	Description string
}

type txNoticeCall struct {
	ChannelID  string
	DiscordID  string
	Type       models.TicketType
	Amount     float64
	NewBalance float64
}

func newFakeDiscord() *fakeDiscord {
	return &fakeDiscord{
		members: make(map[string]bool),
		staff:   make(map[string]bool),
	}
}

func (f *fakeDiscord) IsMember(_ context.Context, discordID string) (bool, error) {
	if f.memberErr != nil {
		return false, f.memberErr
	}
	return f.members[discordID], nil
}

func (f *fakeDiscord) MemberHasStaffRole(_ context.Context, discordID string) (bool, error) {
	if f.staffErr != nil {
		return false, f.staffErr
	}
	return f.staff[discordID], nil
}

func (f *fakeDiscord) CreateTicketChannel(_ context.Context, _ string, _ models.TicketType, _ string) (string, error) {
	f.nextChannel++
	id := fmt.Sprintf("chan-%d", f.nextChannel)
	f.channels = append(f.channels, id)
	return id, nil
}

func (f *fakeDiscord) PostTicketSummary(_ context.Context, channelID, discordID string, ticketType models.TicketType, amount *float64, description string) error {
	f.summaries = append(f.summaries, summaryCall{
		ChannelID:   channelID,
		DiscordID:   discordID,
		Type:        ticketType,
		Amount:      amount,
		Description: description,
	})
	return nil
}

func (f *fakeDiscord) PostClosingNotice(_ context.Context, channelID string) error {
	f.closing = append(f.closing, channelID)
	return nil
}

func (f *fakeDiscord) PostTransactionNotice(_ context.Context, channelID, discordID string, ticketType models.TicketType, amount, newBalance float64) error {
	f.txNotices = append(f.txNotices, txNoticeCall{
		ChannelID:  channelID,
		DiscordID:  discordID,
		Type:       ticketType,
		Amount:     amount,
		NewBalance: newBalance,
	})
	return nil
}

func (f *fakeDiscord) ScheduleChannelDelete(channelID string) {
	f.deletes = append(f.deletes, channelID)
}

func newTestService(t *testing.T) (*Service, *gorm.DB, *fakeDiscord) {
	t.Helper()
	db := newTestDB(t)
	fake := newFakeDiscord()
	repo := repository.NewRepository(db, testLogger())
	return NewService(repo, fake, testLogger()), db, fake
}

func seedUser(t *testing.T, db *gorm.DB, discordID string, roleID int) *models.User {
	t.Helper()
	user := &models.User{DiscordID: discordID, RoleID: roleID}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedBalance(t *testing.T, db *gorm.DB, userID uint, amount float64) {
	t.Helper()
	if err := db.Create(&models.Balance{UserID: userID, Balance: amount}).Error; err != nil {
		t.Fatalf("seed balance: %v", err)
	}
}

func seedTicket(t *testing.T, db *gorm.DB, ticket *models.Ticket) *models.Ticket {
	t.Helper()
	if err := db.Create(ticket).Error; err != nil {
		t.Fatalf("seed ticket: %v", err)
	}
	return ticket
}

func floatPtr(v float64) *float64 { return &v }

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/minecash/discord-bot/internal/models"
)

const (
	staffID  = "200000000000000001"
	holderID = "300000000000000001"
)

func TestConfirmDeposit(t *testing.T) {
	svc, db, fake := newTestService(t)
	seedUser(t, db, staffID, models.StaffRoleID)
	fake.staff[staffID] = true

	holder := seedUser(t, db, holderID, 1)
	seedBalance(t, db, holder.ID, 100)
	seedTicket(t, db, &models.Ticket{
		UserID:           holder.ID,
		TicketType:       models.TicketTypeDeposit,
		Amount:           floatPtr(50),
		Status:           models.TicketStatusPending,
		DiscordChannelID: "chan-1",
	})

	result, err := svc.ConfirmTransaction(context.Background(), staffID, "chan-1", models.TicketTypeDeposit, 50)
	if err != nil {
		t.Fatalf("ConfirmTransaction: %v", err)
	}
	if result.NewBalance != 150 {
		t.Errorf("new balance = %.0f, want 150", result.NewBalance)
	}
	if result.UserDiscordID != holderID {
		t.Errorf("result user = %s, want %s", result.UserDiscordID, holderID)
	}

	var balance models.Balance
	if err := db.First(&balance, "user_id = ?", holder.ID).Error; err != nil {
		t.Fatalf("get balance: %v", err)
	}
	if balance.Balance != 150 {
		t.Errorf("stored balance = %.0f, want 150", balance.Balance)
	}

	var entries []models.Transaction
	if err := db.Find(&entries).Error; err != nil {
		t.Fatalf("get transactions: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly one ledger entry, got %d", len(entries))
	}
	if entries[0].BalanceBefore != 100 || entries[0].BalanceAfter != 150 {
		t.Errorf("ledger before/after = %.0f/%.0f, want 100/150", entries[0].BalanceBefore, entries[0].BalanceAfter)
	}
	if entries[0].TransactionType != "deposit" {
		t.Errorf("transaction_type = %s, want deposit", entries[0].TransactionType)
	}

	var ticket models.Ticket
	if err := db.First(&ticket, "discord_channel_id = ?", "chan-1").Error; err != nil {
		t.Fatalf("get ticket: %v", err)
	}
	if ticket.Status != models.TicketStatusCompleted {
		t.Errorf("ticket status = %s, want completed", ticket.Status)
	}
	if ticket.CompletedAt == nil || ticket.ProcessedAmount == nil || *ticket.ProcessedAmount != 50 {
		t.Errorf("ticket should record completion timestamp and processed amount")
	}

	if len(fake.txNotices) != 1 || fake.txNotices[0].NewBalance != 150 {
		t.Errorf("confirmation notice should be posted with the new balance")
	}
}

func TestConfirmWithdraw_InsufficientBalance(t *testing.T) {
	svc, db, fake := newTestService(t)
	seedUser(t, db, staffID, models.StaffRoleID)
	fake.staff[staffID] = true

	holder := seedUser(t, db, holderID, 1)
	seedBalance(t, db, holder.ID, 30)
	seedTicket(t, db, &models.Ticket{
		UserID:           holder.ID,
		TicketType:       models.TicketTypeWithdraw,
		Amount:           floatPtr(50),
		Status:           models.TicketStatusPending,
		DiscordChannelID: "chan-1",
	})

	_, err := svc.ConfirmTransaction(context.Background(), staffID, "chan-1", models.TicketTypeWithdraw, 50)
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	// No mutation at all: balance, ledger and ticket are untouched.
	var balance models.Balance
	if err := db.First(&balance, "user_id = ?", holder.ID).Error; err != nil {
		t.Fatalf("get balance: %v", err)
	}
	if balance.Balance != 30 {
		t.Errorf("balance = %.0f, want unchanged 30", balance.Balance)
	}
	var count int64
	db.Model(&models.Transaction{}).Count(&count)
	if count != 0 {
		t.Errorf("no ledger entry should be written, found %d", count)
	}
	var ticket models.Ticket
	db.First(&ticket, "discord_channel_id = ?", "chan-1")
	if ticket.Status != models.TicketStatusPending {
		t.Errorf("ticket status = %s, want pending", ticket.Status)
	}
}

func TestConfirmWithdraw(t *testing.T) {
	svc, db, fake := newTestService(t)
	seedUser(t, db, staffID, models.StaffRoleID)
	fake.staff[staffID] = true

	holder := seedUser(t, db, holderID, 1)
	seedBalance(t, db, holder.ID, 200)
	seedTicket(t, db, &models.Ticket{
		UserID:           holder.ID,
		TicketType:       models.TicketTypeWithdraw,
		Amount:           floatPtr(80),
		Status:           models.TicketStatusPending,
		DiscordChannelID: "chan-1",
	})

	result, err := svc.ConfirmTransaction(context.Background(), staffID, "chan-1", models.TicketTypeWithdraw, 80)
	if err != nil {
		t.Fatalf("ConfirmTransaction: %v", err)
	}
	if result.NewBalance != 120 {
		t.Errorf("new balance = %.0f, want 120", result.NewBalance)
	}

	var entries []models.Transaction
	db.Find(&entries)
	if len(entries) != 1 || entries[0].TransactionType != "withdrawal" {
		t.Errorf("expected one withdrawal ledger entry")
	}
}

func TestConfirm_SecondPressIsNoOp(t *testing.T) {
	svc, db, fake := newTestService(t)
	seedUser(t, db, staffID, models.StaffRoleID)
	fake.staff[staffID] = true

	holder := seedUser(t, db, holderID, 1)
	seedBalance(t, db, holder.ID, 100)
	seedTicket(t, db, &models.Ticket{
		UserID:           holder.ID,
		TicketType:       models.TicketTypeDeposit,
		Amount:           floatPtr(50),
		Status:           models.TicketStatusPending,
		DiscordChannelID: "chan-1",
	})

	if _, err := svc.ConfirmTransaction(context.Background(), staffID, "chan-1", models.TicketTypeDeposit, 50); err != nil {
		t.Fatalf("first confirm: %v", err)
	}
	_, err := svc.ConfirmTransaction(context.Background(), staffID, "chan-1", models.TicketTypeDeposit, 50)
	if !errors.Is(err, ErrTicketAlreadyProcessed) {
		t.Fatalf("expected ErrTicketAlreadyProcessed, got %v", err)
	}

	var balance models.Balance
	db.First(&balance, "user_id = ?", holder.ID)
	if balance.Balance != 150 {
		t.Errorf("balance mutated twice: %.0f", balance.Balance)
	}
	var count int64
	db.Model(&models.Transaction{}).Count(&count)
	if count != 1 {
		t.Errorf("expected exactly one ledger entry, got %d", count)
	}
}

func TestConfirm_PermissionDenied(t *testing.T) {
	svc, db, fake := newTestService(t)
	// Discord staff role but no database staff role.
	seedUser(t, db, staffID, 1)
	fake.staff[staffID] = true

	holder := seedUser(t, db, holderID, 1)
	seedBalance(t, db, holder.ID, 100)
	seedTicket(t, db, &models.Ticket{
		UserID:           holder.ID,
		TicketType:       models.TicketTypeDeposit,
		Amount:           floatPtr(50),
		Status:           models.TicketStatusPending,
		DiscordChannelID: "chan-1",
	})

	_, err := svc.ConfirmTransaction(context.Background(), staffID, "chan-1", models.TicketTypeDeposit, 50)
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	var balance models.Balance
	db.First(&balance, "user_id = ?", holder.ID)
	if balance.Balance != 100 {
		t.Errorf("balance should be untouched, got %.0f", balance.Balance)
	}
}

func TestConfirm_AmountMismatch(t *testing.T) {
	svc, db, fake := newTestService(t)
	seedUser(t, db, staffID, models.StaffRoleID)
	fake.staff[staffID] = true

	holder := seedUser(t, db, holderID, 1)
	seedBalance(t, db, holder.ID, 100)
	seedTicket(t, db, &models.Ticket{
		UserID:           holder.ID,
		TicketType:       models.TicketTypeDeposit,
		Amount:           floatPtr(50),
		Status:           models.TicketStatusPending,
		DiscordChannelID: "chan-1",
	})

	_, err := svc.ConfirmTransaction(context.Background(), staffID, "chan-1", models.TicketTypeDeposit, 75)
	if !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("expected ErrInvalidAction, got %v", err)
	}
}

func TestCloseTicket(t *testing.T) {
	svc, db, fake := newTestService(t)
	seedUser(t, db, staffID, models.StaffRoleID)
	fake.staff[staffID] = true

	holder := seedUser(t, db, holderID, 1)
	seedTicket(t, db, &models.Ticket{
		UserID:           holder.ID,
		TicketType:       models.TicketTypeSupport,
		Status:           models.TicketStatusPending,
		DiscordChannelID: "chan-1",
	})

	if err := svc.CloseTicket(context.Background(), staffID, "chan-1"); err != nil {
		t.Fatalf("CloseTicket: %v", err)
	}

	var ticket models.Ticket
	db.First(&ticket, "discord_channel_id = ?", "chan-1")
	if ticket.Status != models.TicketStatusClosed || ticket.ClosedAt == nil {
		t.Errorf("ticket should be closed with a timestamp")
	}
	if len(fake.closing) != 1 {
		t.Errorf("closing notice should be posted once, got %d", len(fake.closing))
	}
	if len(fake.deletes) != 1 || fake.deletes[0] != "chan-1" {
		t.Errorf("channel deletion should be scheduled")
	}

	// Closing again must not duplicate the notice.
	err := svc.CloseTicket(context.Background(), staffID, "chan-1")
	if !errors.Is(err, ErrTicketAlreadyClosed) {
		t.Fatalf("expected ErrTicketAlreadyClosed, got %v", err)
	}
	if len(fake.closing) != 1 {
		t.Errorf("closing notice duplicated on second close")
	}
}

func TestCloseTicket_PermissionDenied(t *testing.T) {
	svc, db, fake := newTestService(t)
	seedUser(t, db, staffID, models.StaffRoleID)
	// Database role alone is not enough.
	fake.staff[staffID] = false

	holder := seedUser(t, db, holderID, 1)
	seedTicket(t, db, &models.Ticket{
		UserID:           holder.ID,
		TicketType:       models.TicketTypeSupport,
		Status:           models.TicketStatusPending,
		DiscordChannelID: "chan-1",
	})

	err := svc.CloseTicket(context.Background(), staffID, "chan-1")
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestCloseTicket_NotFound(t *testing.T) {
	svc, db, fake := newTestService(t)
	seedUser(t, db, staffID, models.StaffRoleID)
	fake.staff[staffID] = true

	err := svc.CloseTicket(context.Background(), staffID, "missing-chan")
	if !errors.Is(err, ErrTicketNotFound) {
		t.Fatalf("expected ErrTicketNotFound, got %v", err)
	}
}

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/minecash/discord-bot/internal/models"
)

// TransactionResult describes a confirmed deposit or withdrawal.
type TransactionResult struct {
	UserDiscordID string
	Type          models.TicketType
	Amount        float64
	NewBalance    float64
}

// ConfirmTransaction processes a staff confirmation of a deposit or withdraw
// ticket: the balance mutation, the ledger entry and the ticket transition to
// completed happen in one database transaction. A confirm press on a ticket
// that is no longer open is a no-op (ErrTicketAlreadyProcessed).
func (s *Service) ConfirmTransaction(ctx context.Context, actorDiscordID, channelID string, ticketType models.TicketType, amount float64) (*TransactionResult, error) {
	if !s.HasStaffPrivilege(ctx, actorDiscordID) {
		return nil, ErrPermissionDenied
	}

	ticket, err := s.repo.GetTicketByChannel(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, ErrTicketNotFound
	}
	// The button payload must match the ticket it was rendered for.
	if !ticketType.Monetary() || ticket.TicketType != ticketType ||
		ticket.Amount == nil || *ticket.Amount != amount {
		return nil, ErrInvalidAction
	}

	user, err := s.repo.GetUserByID(ctx, ticket.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	tx, err := s.repo.BeginTransaction(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.CompleteTicket(ctx, tx, channelID, amount)
	if err != nil {
		s.repo.Rollback(tx)
		return nil, err
	}
	if rows == 0 {
		s.repo.Rollback(tx)
		return nil, ErrTicketAlreadyProcessed
	}

	balance, err := s.repo.GetBalance(ctx, tx, user.ID)
	if err != nil {
		s.repo.Rollback(tx)
		return nil, err
	}
	if balance == nil {
		s.repo.Rollback(tx)
		return nil, fmt.Errorf("no balance row for user %d", user.ID)
	}

	var newBalance float64
	switch ticketType {
	case models.TicketTypeDeposit:
		newBalance = balance.Balance + amount
	case models.TicketTypeWithdraw:
		if balance.Balance < amount {
			s.repo.Rollback(tx)
			return nil, ErrInsufficientBalance
		}
		newBalance = balance.Balance - amount
	}

	rows, err = s.repo.UpdateBalanceCAS(ctx, tx, user.ID, balance.Balance, newBalance)
	if err != nil {
		s.repo.Rollback(tx)
		return nil, err
	}
	if rows == 0 {
		s.repo.Rollback(tx)
		return nil, fmt.Errorf("balance for user %d changed concurrently", user.ID)
	}

	txType := "deposit"
	if ticketType == models.TicketTypeWithdraw {
		txType = "withdrawal"
	}
	entry := &models.Transaction{
		UserID:          user.ID,
		TransactionType: txType,
		Amount:          amount,
		BalanceBefore:   balance.Balance,
		BalanceAfter:    newBalance,
		Description:     fmt.Sprintf("%s via Discord ticket", titleCase(string(ticketType))),
	}
	if err := s.repo.CreateTransaction(ctx, tx, entry); err != nil {
		s.repo.Rollback(tx)
		return nil, err
	}

	if err := s.repo.Commit(tx); err != nil {
		return nil, err
	}

	if err := s.discord.PostTransactionNotice(ctx, channelID, user.DiscordID, ticketType, amount, newBalance); err != nil {
		s.logger.Errorf("Failed to post confirmation notice to channel %s: %v", channelID, err)
	}

	s.logger.Infof("Confirmed %s of %.0f GC for user %s, new balance %.0f", ticketType, amount, user.DiscordID, newBalance)
	return &TransactionResult{
		UserDiscordID: user.DiscordID,
		Type:          ticketType,
		Amount:        amount,
		NewBalance:    newBalance,
	}, nil
}

// CloseTicket marks the ticket bound to the channel closed, posts the closing
// notice and schedules channel deletion. Closing an already closed ticket
// returns ErrTicketAlreadyClosed without posting a second notice.
func (s *Service) CloseTicket(ctx context.Context, actorDiscordID, channelID string) error {
	if !s.HasStaffPrivilege(ctx, actorDiscordID) {
		return ErrPermissionDenied
	}

	ticket, err := s.repo.GetTicketByChannel(ctx, channelID)
	if err != nil {
		return err
	}
	if ticket == nil {
		return ErrTicketNotFound
	}
	if ticket.Status == models.TicketStatusClosed {
		return ErrTicketAlreadyClosed
	}

	rows, err := s.repo.CloseTicket(ctx, channelID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrTicketAlreadyClosed
	}

	if err := s.discord.PostClosingNotice(ctx, channelID); err != nil {
		s.logger.Errorf("Failed to post closing notice to channel %s: %v", channelID, err)
	}
	s.discord.ScheduleChannelDelete(channelID)

	s.logger.Infof("Closed ticket in channel %s", channelID)
	return nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Package service implements the ticket lifecycle and GC balance workflows.
// This file centralizes the error values returned by the workflows; the bot
// and HTTP handlers translate them into user-visible messages.
package service

import "errors"

var (
	// ErrInvalidTicketType is returned when the requested type is not one of
	// support, deposit or withdraw.
	ErrInvalidTicketType = errors.New("invalid ticket type")

	// ErrAmountOutOfRange is returned when a deposit/withdraw amount falls
	// outside the configured GC limits. It is wrapped with the bounds.
	ErrAmountOutOfRange = errors.New("amount out of range")

	// ErrNotAMember is returned when the requesting Discord identity is not a
	// member of the configured guild.
	ErrNotAMember = errors.New("user not in server")

	// ErrUserNotFound is returned when a Discord identity has no linked
	// account in the users table.
	ErrUserNotFound = errors.New("user not found in database")

	// ErrDuplicateOpenTicket is returned when the user already holds a
	// pending or approved ticket of the requested type.
	ErrDuplicateOpenTicket = errors.New("open ticket of this type already exists")

	// ErrPermissionDenied is returned when the actor fails the dual staff
	// gate (Discord role and database role must both pass).
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInsufficientBalance is returned when confirming a withdrawal that
	// would drive the balance negative. No mutation is performed.
	ErrInsufficientBalance = errors.New("insufficient balance for withdrawal")

	// ErrTicketNotFound is returned when no ticket is bound to the channel.
	ErrTicketNotFound = errors.New("ticket not found")

	// ErrTicketAlreadyProcessed is returned when a confirm control is pressed
	// for a ticket that is no longer pending or approved.
	ErrTicketAlreadyProcessed = errors.New("ticket already processed")

	// ErrTicketAlreadyClosed is returned when a close control is pressed for
	// a ticket that is already closed.
	ErrTicketAlreadyClosed = errors.New("ticket already closed")

	// ErrInvalidAction is returned when a button payload does not match the
	// ticket it is bound to.
	ErrInvalidAction = errors.New("invalid transaction data")
)

package models

import "time"

type TicketType string

const (
	TicketTypeSupport  TicketType = "support"
	TicketTypeDeposit  TicketType = "deposit"
	TicketTypeWithdraw TicketType = "withdraw"
)

func (t TicketType) Valid() bool {
	switch t {
	case TicketTypeSupport, TicketTypeDeposit, TicketTypeWithdraw:
		return true
	}
	return false
}

// Monetary reports whether the ticket type moves GC and therefore requires an
// amount and a confirm step.
func (t TicketType) Monetary() bool {
	return t == TicketTypeDeposit || t == TicketTypeWithdraw
}

type TicketStatus string

const (
	TicketStatusPending   TicketStatus = "pending"
	TicketStatusApproved  TicketStatus = "approved"
	TicketStatusCompleted TicketStatus = "completed"
	TicketStatusClosed    TicketStatus = "closed"
)

// OpenStatuses are the statuses that count against the one-open-ticket-per-type
// rule and are eligible for confirmation.
var OpenStatuses = []TicketStatus{TicketStatusPending, TicketStatusApproved}

// StaffRoleID is the role_id value in the users table that marks staff.
const StaffRoleID = 3

// User is created by the website registration flow. The bot only ever looks it
// up by Discord ID.
type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	DiscordID string `gorm:"uniqueIndex" json:"discord_id"`
	RoleID    int    `json:"role_id"`
}

func (User) TableName() string { return "users" }

// IsStaff reports whether the user's database role is the staff sentinel.
func (u *User) IsStaff() bool { return u.RoleID == StaffRoleID }

type Ticket struct {
	ID               uint         `gorm:"primaryKey" json:"id"`
	UserID           uint         `gorm:"index" json:"user_id"`
	TicketType       TicketType   `json:"ticket_type"`
	Amount           *float64     `json:"amount,omitempty"`
	Description      string       `json:"description"`
	Status           TicketStatus `gorm:"default:pending" json:"status"`
	DiscordChannelID string       `gorm:"index" json:"discord_channel_id"`
	ProcessedAmount  *float64     `json:"processed_amount,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
	ApprovedAt       *time.Time   `json:"approved_at,omitempty"`
	CompletedAt      *time.Time   `json:"completed_at,omitempty"`
	ClosedAt         *time.Time   `json:"closed_at,omitempty"`
}

func (Ticket) TableName() string { return "support_tickets" }

// Balance is one row per user holding the current GC balance.
type Balance struct {
	UserID  uint    `gorm:"primaryKey" json:"user_id"`
	Balance float64 `gorm:"default:0" json:"balance"`
}

func (Balance) TableName() string { return "gc_balances" }

// Transaction is an append-only ledger entry, written exactly once per
// confirmed deposit/withdraw ticket.
type Transaction struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"index" json:"user_id"`
	TransactionType string    `json:"transaction_type"` // deposit, withdrawal
	Amount          float64   `json:"amount"`
	BalanceBefore   float64   `json:"balance_before"`
	BalanceAfter    float64   `json:"balance_after"`
	Description     string    `json:"description"`
	CreatedAt       time.Time `json:"created_at"`
}

func (Transaction) TableName() string { return "gc_transactions" }

// GCLimit holds the configurable per-type amount bounds.
type GCLimit struct {
	LimitType string  `gorm:"primaryKey" json:"limit_type"` // deposit, withdraw
	MinAmount float64 `json:"min_amount"`
	MaxAmount float64 `json:"max_amount"`
}

func (GCLimit) TableName() string { return "gc_limits" }

package discord

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/minecash/discord-bot/internal/models"
)

// ActionKind tags the button actions the bot renders on ticket messages.
type ActionKind string

const (
	ActionCloseTicket     ActionKind = "close_ticket"
	ActionConfirmDeposit  ActionKind = "confirm_deposit"
	ActionConfirmWithdraw ActionKind = "confirm_withdraw"
)

// Action is the decoded payload of a ticket button. Discord only carries a
// string custom ID, so the tagged struct is encoded into the wire format
// close_ticket_{channelID} / confirm_{type}_{channelID}_{amount} and parsed
// back in exactly one place.
type Action struct {
	Kind      ActionKind
	ChannelID string
	Amount    float64 // confirm actions only
}

// TicketType returns the monetary ticket type a confirm action refers to, or
// "" for non-confirm actions.
func (a Action) TicketType() models.TicketType {
	switch a.Kind {
	case ActionConfirmDeposit:
		return models.TicketTypeDeposit
	case ActionConfirmWithdraw:
		return models.TicketTypeWithdraw
	}
	return ""
}

// CustomID encodes the action into the button custom ID wire format.
func (a Action) CustomID() string {
	switch a.Kind {
	case ActionCloseTicket:
		return fmt.Sprintf("close_ticket_%s", a.ChannelID)
	case ActionConfirmDeposit, ActionConfirmWithdraw:
		return fmt.Sprintf("%s_%s_%s", a.Kind, a.ChannelID, strconv.FormatFloat(a.Amount, 'f', -1, 64))
	}
	return ""
}

// ConfirmAction builds the confirm button action for a monetary ticket.
func ConfirmAction(ticketType models.TicketType, channelID string, amount float64) Action {
	kind := ActionConfirmDeposit
	if ticketType == models.TicketTypeWithdraw {
		kind = ActionConfirmWithdraw
	}
	return Action{Kind: kind, ChannelID: channelID, Amount: amount}
}

// ParseAction decodes a button custom ID. Unknown or malformed IDs return
// ok=false and are ignored by the interaction handler.
func ParseAction(customID string) (Action, bool) {
	switch {
	case strings.HasPrefix(customID, string(ActionCloseTicket)+"_"):
		channelID := strings.TrimPrefix(customID, string(ActionCloseTicket)+"_")
		if channelID == "" {
			return Action{}, false
		}
		return Action{Kind: ActionCloseTicket, ChannelID: channelID}, true

	case strings.HasPrefix(customID, string(ActionConfirmDeposit)+"_"),
		strings.HasPrefix(customID, string(ActionConfirmWithdraw)+"_"):
		kind := ActionConfirmDeposit
		if strings.HasPrefix(customID, string(ActionConfirmWithdraw)+"_") {
			kind = ActionConfirmWithdraw
		}
		rest := strings.TrimPrefix(customID, string(kind)+"_")
		parts := strings.Split(rest, "_")
		if len(parts) != 2 {
			return Action{}, false
		}
		amount, err := strconv.ParseFloat(parts[1], 64)
		if err != nil || parts[0] == "" || amount <= 0 {
			return Action{}, false
		}
		return Action{Kind: kind, ChannelID: parts[0], Amount: amount}, true
	}
	return Action{}, false
}

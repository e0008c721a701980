package entities

import (
	"fmt"

	"github.com/Jacobbrewer1/warden/pkg/custom"
)

// TicketType is the category a user picked from the intake menu.
type TicketType string

const (
	TicketTypeSupport    TicketType = "support"
	TicketTypeSuggestion TicketType = "suggestion"
	TicketTypeFeedback   TicketType = "feedback"
	TicketTypeReport     TicketType = "report"
)

// TicketTypes is every type offered by the intake menu, in display order.
var TicketTypes = []TicketType{
	TicketTypeSupport,
	TicketTypeSuggestion,
	TicketTypeFeedback,
	TicketTypeReport,
}

// IsValid reports whether the type is one the intake menu offers.
func (t TicketType) IsValid() bool {
	switch t {
	case TicketTypeSupport, TicketTypeSuggestion, TicketTypeFeedback, TicketTypeReport:
		return true
	}
	return false
}

func (t TicketType) String() string {
	return string(t)
}

// TicketStatusOpen is the only status a stored ticket can have; closing a
// ticket removes the row rather than transitioning it.
const TicketStatusOpen = "open"

// Ticket is an open ticket. The row is the source of truth; the Discord
// channel is a derived resource whose lifetime tracks the row's.
type Ticket struct {
	// GuildID is the ID of the guild that the ticket is in.
	GuildID string `json:"guild_id" bson:"guild_id"`

	// UserID is the ID of the user that opened the ticket.
	UserID string `json:"user_id" bson:"user_id"`

	// Username is the username of the user that opened the ticket.
	Username string `json:"username" bson:"username"`

	// ChannelID is the ID of the private channel created for the ticket.
	ChannelID string `json:"channel_id" bson:"channel_id"`

	// Type is the category the user picked from the intake menu.
	Type TicketType `json:"ticket_type" bson:"ticket_type"`

	// Status is the status of the ticket.
	Status string `json:"status" bson:"status"`

	// CreatedAt is the time that the ticket was opened.
	CreatedAt custom.Datetime `json:"created_at" bson:"created_at"`
}

// ChannelName is the name given to the ticket's private channel.
func (t *Ticket) ChannelName() string {
	return fmt.Sprintf("%s-%s-ticket", t.Username, t.Type)
}

// Package messages holds the user facing message strings for the bot. These
// are the only strings that get sent to Discord users, so keeping them in one
// place makes the copy easy to review.
package messages

const (
	// ErrUserErrorProcessing is sent when a command fails for an internal reason.
	ErrUserErrorProcessing = "An error occurred whilst processing your request, please try again later"

	// TicketAlreadyOpen is sent when a user with an open ticket tries to open another.
	TicketAlreadyOpen = "You already have an open ticket."

	// TicketCreated is sent when a ticket has been opened successfully.
	TicketCreated = "Your ticket has been created successfully."

	// TicketCreateFailed is sent when the ticket could not be saved.
	TicketCreateFailed = "An error occurred while creating your ticket."

	// TicketOwnerOnlyClose is sent when a non-owner presses the close button.
	TicketOwnerOnlyClose = "Only the ticket owner can close the ticket."

	// TicketNotFound is sent when a close request hits a channel with no ticket.
	TicketNotFound = "No ticket found for this channel."

	// TicketClosed is sent when a ticket has been closed successfully.
	TicketClosed = "Your ticket has been closed and the channel has been deleted."

	// TicketCloseFailed is sent when the ticket could not be removed.
	TicketCloseFailed = "An error occurred while closing your ticket."
)

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/warden/cmd/bot/monitoring"
	"github.com/Jacobbrewer1/warden/pkg/custom"
	"github.com/Jacobbrewer1/warden/pkg/dataaccess"
	"github.com/Jacobbrewer1/warden/pkg/entities"
	"github.com/Jacobbrewer1/warden/pkg/logging"
	"github.com/Jacobbrewer1/warden/pkg/messages"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	// SelectTicketTypeID is the custom ID of the intake type-selection menu.
	SelectTicketTypeID = "select_ticket_type"

	// CloseTicketButtonPrefix prefixes the close button's custom ID; the
	// suffix is the ID of the user that owns the ticket.
	CloseTicketButtonPrefix = "close_ticket_"
)

// ticketCreateLocks serializes ticket creation per (guild, user).
var ticketCreateLocks = newKeyedMutex()

// ticketOwnerFromCustomID extracts the owning user's ID from a close
// button's custom ID.
func ticketOwnerFromCustomID(customID string) string {
	return strings.TrimPrefix(customID, CloseTicketButtonPrefix)
}

// newTicketMessage is the welcome message sent into a freshly created
// ticket channel.
func newTicketMessage(ticket *entities.Ticket) *discordgo.MessageSend {
	return &discordgo.MessageSend{
		Content: fmt.Sprintf("Hello <@%s>, thank you for reaching out to our support team. Our team will assist you shortly.", ticket.UserID),
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       "Ticket Created",
				Description: fmt.Sprintf("Ticket type: **%s**\n\nPlease describe your issue in detail to receive the best support.", ticket.Type),
				Color:       0x00ff00,
				Footer: &discordgo.MessageEmbedFooter{
					Text: "Support Team",
				},
			},
		},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Close Ticket",
						Style:    discordgo.DangerButton,
						CustomID: CloseTicketButtonPrefix + ticket.UserID,
					},
				},
			},
		},
	}
}

// ticketChannelData is the channel created for a ticket: hidden from
// @everyone, visible to the requester and every configured support role.
func ticketChannelData(ticket *entities.Ticket, settings entities.GuildTicketConfig) discordgo.GuildChannelCreateData {
	overwrites := []*discordgo.PermissionOverwrite{
		// Deny @everyone from seeing the ticket.
		{
			ID:   ticket.GuildID,
			Type: discordgo.PermissionOverwriteTypeRole,
			Deny: discordgo.PermissionViewChannel,
		},
		// The creator of the ticket can see the ticket.
		{
			ID:    ticket.UserID,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: discordgo.PermissionViewChannel,
		},
	}
	for _, roleID := range settings.SupportRoleIDs {
		overwrites = append(overwrites, &discordgo.PermissionOverwrite{
			ID:    roleID,
			Type:  discordgo.PermissionOverwriteTypeRole,
			Allow: discordgo.PermissionViewChannel,
		})
	}

	return discordgo.GuildChannelCreateData{
		Name:                 ticket.ChannelName(),
		Type:                 discordgo.ChannelTypeGuildText,
		Topic:                fmt.Sprintf("%s ticket opened by %s", ticket.Type, ticket.Username),
		PermissionOverwrites: overwrites,
	}
}

// openTicket handles a selection on the intake menu. At most one ticket may
// be open per (guild, user) at any time.
func openTicket(a IApp, i *discordgo.InteractionCreate) error {
	if i.Member == nil || i.Member.User == nil {
		return nil
	}

	// Acknowledge before validating so every outcome, including a forged
	// component value, can be reported as a follow-up.
	if err := deferEphemeral(a, i); err != nil {
		return fmt.Errorf("error deferring interaction: %w", err)
	}

	data := i.MessageComponentData()
	if len(data.Values) == 0 {
		return errors.New("no ticket type selected")
	}
	ticketType := entities.TicketType(data.Values[0])
	if !ticketType.IsValid() {
		return fmt.Errorf("unknown ticket type %q", data.Values[0])
	}

	guildID := i.GuildID
	user := i.Member.User

	// Serialize creation per (guild, user) so concurrent selections cannot
	// both pass the existence check below.
	unlock := ticketCreateLocks.Lock(guildID + ":" + user.ID)
	defer unlock()

	// Failure paths that have already told the user return nil, so the
	// dispatcher does not send a second apology on top.
	existing, err := a.TicketDal(context.Background()).GetTicketByUser(guildID, user.ID)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		a.Log().Error("Error getting existing ticket",
			slog.String(logging.KeyGuild, guildID),
			slog.String(logging.KeyUser, user.ID),
			slog.String(logging.KeyError, err.Error()),
		)
		return followUpEphemeral(a, i, messages.TicketCreateFailed)
	}
	if existing != nil {
		return followUpEphemeral(a, i, messages.TicketAlreadyOpen)
	}

	// No configuration for the guild means ticketing is not set up; there
	// is nothing useful to tell the user.
	settings, ok := a.GuildTicketConfig(guildID)
	if !ok {
		return nil
	}

	ticket := &entities.Ticket{
		GuildID:   guildID,
		UserID:    user.ID,
		Username:  user.Username,
		Type:      ticketType,
		Status:    entities.TicketStatusOpen,
		CreatedAt: custom.Now(),
	}

	channel, err := a.Discord().GuildChannelCreate(guildID, ticketChannelData(ticket, settings))
	if err != nil {
		a.Log().Error("Error creating ticket channel",
			slog.String(logging.KeyGuild, guildID),
			slog.String(logging.KeyUser, user.ID),
			slog.String(logging.KeyError, err.Error()),
		)
		return followUpEphemeral(a, i, messages.TicketCreateFailed)
	}
	ticket.ChannelID = channel.ID

	if _, err := a.Discord().ChannelMessageSendComplex(channel.ID, newTicketMessage(ticket)); err != nil {
		// The ticket is usable without its welcome message.
		a.Log().Warn("Error sending ticket welcome message",
			slog.String(logging.KeyGuild, guildID),
			slog.String(logging.KeyChannel, channel.ID),
			slog.String(logging.KeyError, err.Error()),
		)
	}

	if err := a.TicketDal(context.Background()).InsertTicket(ticket); err != nil {
		// Roll the channel back so a failed insert cannot orphan it.
		if _, derr := a.Discord().ChannelDelete(channel.ID); derr != nil {
			a.Log().Error("Error deleting channel after failed ticket insert",
				slog.String(logging.KeyGuild, guildID),
				slog.String(logging.KeyChannel, channel.ID),
				slog.String(logging.KeyError, derr.Error()),
			)
		}

		// A duplicate key means the unique index caught a ticket this
		// process did not see; treat it as the precondition failure it is.
		if errors.Is(err, dataaccess.ErrDuplicateTicket) {
			return followUpEphemeral(a, i, messages.TicketAlreadyOpen)
		}

		a.Log().Error("Error saving ticket",
			slog.String(logging.KeyGuild, guildID),
			slog.String(logging.KeyUser, user.ID),
			slog.String(logging.KeyError, err.Error()),
		)
		return followUpEphemeral(a, i, messages.TicketCreateFailed)
	}

	monitoring.TotalTicketsOpened.WithLabelValues(ticketType.String()).Inc()

	return followUpEphemeral(a, i, messages.TicketCreated)
}

// closeTicket handles the close button inside a ticket channel. Only the
// ticket owner may close it.
func closeTicket(a IApp, i *discordgo.InteractionCreate) error {
	if i.Member == nil || i.Member.User == nil {
		return nil
	}

	if err := deferEphemeral(a, i); err != nil {
		return fmt.Errorf("error deferring interaction: %w", err)
	}

	ownerID := ticketOwnerFromCustomID(i.MessageComponentData().CustomID)
	if i.Member.User.ID != ownerID {
		return followUpEphemeral(a, i, messages.TicketOwnerOnlyClose)
	}

	ticket, err := a.TicketDal(context.Background()).GetTicketByChannel(i.GuildID, i.ChannelID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return followUpEphemeral(a, i, messages.TicketNotFound)
		}
		a.Log().Error("Error getting ticket",
			slog.String(logging.KeyGuild, i.GuildID),
			slog.String(logging.KeyChannel, i.ChannelID),
			slog.String(logging.KeyError, err.Error()),
		)
		return followUpEphemeral(a, i, messages.TicketCloseFailed)
	}

	// Remove the row before the channel. A surviving channel without a row
	// is visible and easy to clean up; a row pointing at a deleted channel
	// is not.
	if err := a.TicketDal(context.Background()).DeleteTicketByChannel(i.GuildID, ticket.ChannelID); err != nil {
		a.Log().Error("Error deleting ticket",
			slog.String(logging.KeyGuild, i.GuildID),
			slog.String(logging.KeyChannel, ticket.ChannelID),
			slog.String(logging.KeyError, err.Error()),
		)
		return followUpEphemeral(a, i, messages.TicketCloseFailed)
	}

	if _, err := a.Discord().ChannelDelete(ticket.ChannelID); err != nil {
		a.Log().Error("Error deleting ticket channel",
			slog.String(logging.KeyGuild, i.GuildID),
			slog.String(logging.KeyChannel, ticket.ChannelID),
			slog.String(logging.KeyError, err.Error()),
		)
		return followUpEphemeral(a, i, messages.TicketCloseFailed)
	}

	monitoring.TotalTicketsClosed.Inc()

	return followUpEphemeral(a, i, messages.TicketClosed)
}

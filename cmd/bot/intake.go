package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/warden/cmd/bot/monitoring"
	"github.com/Jacobbrewer1/warden/pkg/entities"
	"github.com/Jacobbrewer1/warden/pkg/logging"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/time/rate"
)

// intakeFetchLimit bounds the purge of a previous intake channel.
const intakeFetchLimit = 100

// purgeLimiter paces message deletions so a large purge cannot hammer the
// Discord API.
var purgeLimiter = rate.NewLimiter(rate.Every(250*time.Millisecond), 5)

// intakeMessage is the published "create a ticket" message: a welcome embed
// plus the four-option type selection menu.
func intakeMessage() *discordgo.MessageSend {
	options := make([]discordgo.SelectMenuOption, 0, len(entities.TicketTypes))
	labels := map[entities.TicketType]string{
		entities.TicketTypeSupport:    "\U0001F198 Support",
		entities.TicketTypeSuggestion: "\U0001F4C2 Suggestion",
		entities.TicketTypeFeedback:   "\U0001F49C Feedback",
		entities.TicketTypeReport:     "⚠️ Report",
	}
	for _, t := range entities.TicketTypes {
		options = append(options, discordgo.SelectMenuOption{
			Label: labels[t],
			Value: t.String(),
		})
	}

	return &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{
			{
				Author: &discordgo.MessageEmbedAuthor{
					Name: "Welcome to Ticket Support",
				},
				Description: "- Please click below menu to create a new ticket.\n\n" +
					"**Ticket Guidelines:**\n" +
					"- Empty tickets are not permitted.\n" +
					"- Please be patient while waiting for a response from our support team.",
				Color: 0x00ff00,
				Footer: &discordgo.MessageEmbedFooter{
					Text: "We are here to Help!",
				},
			},
		},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.SelectMenu{
						MenuType:    discordgo.StringSelectMenu,
						CustomID:    SelectTicketTypeID,
						Placeholder: "Choose ticket type",
						Options:     options,
					},
				},
			},
		},
	}
}

// publishIntake makes sure exactly one up-to-date intake message exists in
// the guild's designated channel, purging the previous channel when the
// designation moved. Absent guilds or channels are skipped quietly; the next
// config change will retry.
func publishIntake(a IApp, guildID string, settings entities.GuildTicketConfig) error {
	if _, err := a.Discord().Guild(guildID); err != nil {
		a.Log().Debug("Skipping intake publish, guild not resolvable",
			slog.String(logging.KeyGuild, guildID),
			slog.String(logging.KeyError, err.Error()),
		)
		return nil
	}

	channel, err := a.Discord().Channel(settings.TicketChannelID)
	if err != nil {
		a.Log().Debug("Skipping intake publish, channel not resolvable",
			slog.String(logging.KeyGuild, guildID),
			slog.String(logging.KeyChannel, settings.TicketChannelID),
			slog.String(logging.KeyError, err.Error()),
		)
		return nil
	}

	row, err := a.SettingsDal(context.Background()).GetSettings(guildID)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("error getting ticket settings: %w", err)
	}

	embedSent := false
	savedChannelID := ""
	if row != nil {
		embedSent = row.EmbedSent
		savedChannelID = row.ChannelID
	}

	// The designated channel moved; clear our old intake messages out of
	// the previous one.
	if savedChannelID != "" && savedChannelID != settings.TicketChannelID {
		purgeIntakeMessages(a, savedChannelID)
	}

	if !embedSent || savedChannelID != settings.TicketChannelID {
		// Mark the state "about to (re)publish" before sending, so a crash
		// between send and confirm republishes rather than going silent.
		if err := a.SettingsDal(context.Background()).SaveSettings(&entities.TicketSettings{
			GuildID:   guildID,
			EmbedSent: false,
			ChannelID: settings.TicketChannelID,
		}); err != nil {
			return fmt.Errorf("error saving ticket settings: %w", err)
		}

		if _, err := a.Discord().ChannelMessageSendComplex(channel.ID, intakeMessage()); err != nil {
			return fmt.Errorf("error sending intake message: %w", err)
		}

		monitoring.TotalIntakePublishes.Inc()

		if err := a.SettingsDal(context.Background()).SaveSettings(&entities.TicketSettings{
			GuildID:   guildID,
			EmbedSent: true,
			ChannelID: settings.TicketChannelID,
		}); err != nil {
			return fmt.Errorf("error saving ticket settings: %w", err)
		}
	}

	return nil
}

// purgeIntakeMessages deletes our embed-bearing messages from a previous
// intake channel. Best-effort: every failure is logged and swallowed.
func purgeIntakeMessages(a IApp, channelID string) {
	msgs, err := a.Discord().ChannelMessages(channelID, intakeFetchLimit, "", "", "")
	if err != nil {
		a.Log().Warn("Error fetching messages from previous intake channel",
			slog.String(logging.KeyChannel, channelID),
			slog.String(logging.KeyError, err.Error()),
		)
		return
	}

	botID := a.Discord().BotUserID()

	for _, msg := range msgs {
		if len(msg.Embeds) == 0 || msg.Author == nil || msg.Author.ID != botID {
			continue
		}

		if err := purgeLimiter.Wait(context.Background()); err != nil {
			return
		}

		if err := a.Discord().ChannelMessageDelete(channelID, msg.ID); err != nil {
			a.Log().Warn("Error deleting stale intake message",
				slog.String(logging.KeyChannel, channelID),
				slog.String("message", msg.ID),
				slog.String(logging.KeyError, err.Error()),
			)
		}
	}
}

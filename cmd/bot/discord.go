package main

import (
	"github.com/Jacobbrewer1/discordgo"
)

// DiscordPlatform is the slice of the Discord API that the ticketing code
// uses. Handlers talk to this rather than the session so they can be
// exercised against a fake.
type DiscordPlatform interface {
	// BotUserID returns the ID of the logged-in bot user.
	BotUserID() string

	// Guild gets a guild by ID.
	Guild(guildID string) (*discordgo.Guild, error)

	// Channel gets a channel by ID.
	Channel(channelID string) (*discordgo.Channel, error)

	// GuildChannelCreate creates a channel in a guild with the given
	// per-principal permission overwrites.
	GuildChannelCreate(guildID string, data discordgo.GuildChannelCreateData) (*discordgo.Channel, error)

	// ChannelDelete deletes a channel. This is irreversible.
	ChannelDelete(channelID string) (*discordgo.Channel, error)

	// ChannelMessages fetches up to limit recent messages from a channel.
	ChannelMessages(channelID string, limit int, beforeID, afterID, aroundID string) ([]*discordgo.Message, error)

	// ChannelMessageSendComplex sends a message to a channel.
	ChannelMessageSendComplex(channelID string, msg *discordgo.MessageSend) (*discordgo.Message, error)

	// ChannelMessageDelete deletes a single message from a channel.
	ChannelMessageDelete(channelID, messageID string) error

	// InteractionRespond responds to an interaction.
	InteractionRespond(i *discordgo.Interaction, resp *discordgo.InteractionResponse) error

	// FollowupMessageCreate creates a follow-up message for an interaction.
	FollowupMessageCreate(i *discordgo.Interaction, wait bool, params *discordgo.WebhookParams) (*discordgo.Message, error)
}

// sessionPlatform implements DiscordPlatform over the live discord session.
type sessionPlatform struct {
	s *discordgo.Session
}

func newSessionPlatform(s *discordgo.Session) DiscordPlatform {
	return &sessionPlatform{s: s}
}

func (p *sessionPlatform) BotUserID() string {
	if p.s.State == nil || p.s.State.User == nil {
		return ""
	}
	return p.s.State.User.ID
}

func (p *sessionPlatform) Guild(guildID string) (*discordgo.Guild, error) {
	return p.s.Guild(guildID)
}

func (p *sessionPlatform) Channel(channelID string) (*discordgo.Channel, error) {
	return p.s.Channel(channelID)
}

func (p *sessionPlatform) GuildChannelCreate(guildID string, data discordgo.GuildChannelCreateData) (*discordgo.Channel, error) {
	return p.s.GuildChannelCreateComplex(guildID, data)
}

func (p *sessionPlatform) ChannelDelete(channelID string) (*discordgo.Channel, error) {
	return p.s.ChannelDelete(channelID)
}

func (p *sessionPlatform) ChannelMessages(channelID string, limit int, beforeID, afterID, aroundID string) ([]*discordgo.Message, error) {
	return p.s.ChannelMessages(channelID, limit, beforeID, afterID, aroundID)
}

func (p *sessionPlatform) ChannelMessageSendComplex(channelID string, msg *discordgo.MessageSend) (*discordgo.Message, error) {
	return p.s.ChannelMessageSendComplex(channelID, msg)
}

func (p *sessionPlatform) ChannelMessageDelete(channelID, messageID string) error {
	return p.s.ChannelMessageDelete(channelID, messageID)
}

func (p *sessionPlatform) InteractionRespond(i *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
	return p.s.InteractionRespond(i, resp)
}

func (p *sessionPlatform) FollowupMessageCreate(i *discordgo.Interaction, wait bool, params *discordgo.WebhookParams) (*discordgo.Message, error) {
	return p.s.FollowupMessageCreate(i, wait, params)
}

package entities

// TicketSettings records whether, and where, the intake message was last
// published for a guild. EmbedSent is true iff a live intake message exists
// in ChannelID. Rows are upserted on every (re)publish and never deleted.
type TicketSettings struct {
	// GuildID is the ID of the guild that the settings are for.
	GuildID string `json:"guild_id" bson:"guild_id"`

	// EmbedSent is whether the intake message has been sent to ChannelID.
	EmbedSent bool `json:"embed_sent" bson:"embed_sent"`

	// ChannelID is the channel the intake message was last published to.
	ChannelID string `json:"channel_id" bson:"channel_id"`
}

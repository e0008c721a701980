package entities

// GuildTicketConfig is the externally managed ticketing configuration for a
// single guild. It is read-only to the bot; the config file owns it.
type GuildTicketConfig struct {
	// Status is whether ticketing is enabled for the guild.
	Status bool `json:"status"`

	// TicketChannelID is the designated intake channel.
	TicketChannelID string `json:"ticketChannelId"`

	// SupportRoleIDs are the roles granted visibility into opened tickets.
	SupportRoleIDs []string `json:"supportRoleIds"`
}

// Equal reports whether two guild configurations are structurally equal.
// Role order is significant, matching the file's own ordering.
func (c *GuildTicketConfig) Equal(o *GuildTicketConfig) bool {
	if c == nil || o == nil {
		return c == o
	}
	if c.Status != o.Status || c.TicketChannelID != o.TicketChannelID {
		return false
	}
	if len(c.SupportRoleIDs) != len(o.SupportRoleIDs) {
		return false
	}
	for i := range c.SupportRoleIDs {
		if c.SupportRoleIDs[i] != o.SupportRoleIDs[i] {
			return false
		}
	}
	return true
}

// TicketsConfig is a point-in-time snapshot of the polled configuration
// file. Snapshots are immutable once loaded; the watcher swaps whole
// snapshots rather than mutating one in place.
type TicketsConfig struct {
	// Tickets is the per-guild ticketing configuration, keyed by guild ID.
	Tickets map[string]GuildTicketConfig `json:"tickets"`
}

// Guild returns the configuration for the guild, if present.
func (c *TicketsConfig) Guild(guildID string) (GuildTicketConfig, bool) {
	if c == nil {
		return GuildTicketConfig{}, false
	}
	settings, ok := c.Tickets[guildID]
	return settings, ok
}

// Equal reports whether two snapshots are structurally equal.
func (c *TicketsConfig) Equal(o *TicketsConfig) bool {
	if c == nil || o == nil {
		return c == o
	}
	if len(c.Tickets) != len(o.Tickets) {
		return false
	}
	for id := range c.Tickets {
		cur, prev := c.Tickets[id], o.Tickets[id]
		if _, ok := o.Tickets[id]; !ok || !cur.Equal(&prev) {
			return false
		}
	}
	return true
}

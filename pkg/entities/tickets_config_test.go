package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGuildTicketConfigEqual(t *testing.T) {
	base := &GuildTicketConfig{
		Status:          true,
		TicketChannelID: "C1",
		SupportRoleIDs:  []string{"R1", "R2"},
	}

	tests := []struct {
		name  string
		other *GuildTicketConfig
		equal bool
	}{
		{
			name: "Identical",
			other: &GuildTicketConfig{
				Status:          true,
				TicketChannelID: "C1",
				SupportRoleIDs:  []string{"R1", "R2"},
			},
			equal: true,
		},
		{
			name: "StatusDiffers",
			other: &GuildTicketConfig{
				Status:          false,
				TicketChannelID: "C1",
				SupportRoleIDs:  []string{"R1", "R2"},
			},
			equal: false,
		},
		{
			name: "ChannelDiffers",
			other: &GuildTicketConfig{
				Status:          true,
				TicketChannelID: "C2",
				SupportRoleIDs:  []string{"R1", "R2"},
			},
			equal: false,
		},
		{
			name: "RoleAdded",
			other: &GuildTicketConfig{
				Status:          true,
				TicketChannelID: "C1",
				SupportRoleIDs:  []string{"R1", "R2", "R3"},
			},
			equal: false,
		},
		{
			name: "RoleOrderDiffers",
			other: &GuildTicketConfig{
				Status:          true,
				TicketChannelID: "C1",
				SupportRoleIDs:  []string{"R2", "R1"},
			},
			equal: false,
		},
		{
			name:  "Nil",
			other: nil,
			equal: false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.equal, base.Equal(test.other))
		})
	}
}

func TestTicketsConfigEqual(t *testing.T) {
	base := &TicketsConfig{
		Tickets: map[string]GuildTicketConfig{
			"G1": {Status: true, TicketChannelID: "C1"},
			"G2": {Status: false},
		},
	}

	tests := []struct {
		name  string
		other *TicketsConfig
		equal bool
	}{
		{
			name: "Identical",
			other: &TicketsConfig{
				Tickets: map[string]GuildTicketConfig{
					"G1": {Status: true, TicketChannelID: "C1"},
					"G2": {Status: false},
				},
			},
			equal: true,
		},
		{
			name: "GuildRemoved",
			other: &TicketsConfig{
				Tickets: map[string]GuildTicketConfig{
					"G1": {Status: true, TicketChannelID: "C1"},
				},
			},
			equal: false,
		},
		{
			name: "GuildChanged",
			other: &TicketsConfig{
				Tickets: map[string]GuildTicketConfig{
					"G1": {Status: true, TicketChannelID: "C9"},
					"G2": {Status: false},
				},
			},
			equal: false,
		},
		{
			name: "DifferentGuildSet",
			other: &TicketsConfig{
				Tickets: map[string]GuildTicketConfig{
					"G1": {Status: true, TicketChannelID: "C1"},
					"G3": {Status: false},
				},
			},
			equal: false,
		},
		{
			name:  "Nil",
			other: nil,
			equal: false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.equal, base.Equal(test.other))
		})
	}
}

func TestTicketsConfigGuild(t *testing.T) {
	cfg := &TicketsConfig{
		Tickets: map[string]GuildTicketConfig{
			"G1": {Status: true, TicketChannelID: "C1"},
		},
	}

	got, ok := cfg.Guild("G1")
	require.True(t, ok)
	require.Equal(t, "C1", got.TicketChannelID)

	_, ok = cfg.Guild("G2")
	require.False(t, ok)

	var nilCfg *TicketsConfig
	_, ok = nilCfg.Guild("G1")
	require.False(t, ok)
}

func TestTicketsConfigUnmarshal(t *testing.T) {
	raw := `{
		"tickets": {
			"G1": {
				"status": true,
				"ticketChannelId": "C1",
				"supportRoleIds": ["R1"]
			}
		}
	}`

	cfg := new(TicketsConfig)
	require.NoError(t, json.Unmarshal([]byte(raw), cfg))

	got, ok := cfg.Guild("G1")
	require.True(t, ok)
	require.Equal(t, GuildTicketConfig{
		Status:          true,
		TicketChannelID: "C1",
		SupportRoleIDs:  []string{"R1"},
	}, got)
}

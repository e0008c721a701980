package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/warden/pkg/dataaccess"
	"github.com/Jacobbrewer1/warden/pkg/entities"
	"go.mongodb.org/mongo-driver/mongo"
)

// fakePlatform is an in-memory DiscordPlatform.
type fakePlatform struct {
	mu sync.Mutex

	botID    string
	guilds   map[string]*discordgo.Guild
	channels map[string]*discordgo.Channel
	messages map[string][]*discordgo.Message

	sent            map[string][]*discordgo.MessageSend
	created         []*discordgo.Channel
	deletedChannels []string
	deletedMessages map[string][]string
	responses       []*discordgo.InteractionResponse
	followups       []*discordgo.WebhookParams

	createErr error
	sendErr   error
	nextID    int
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		botID:           "bot",
		guilds:          make(map[string]*discordgo.Guild),
		channels:        make(map[string]*discordgo.Channel),
		messages:        make(map[string][]*discordgo.Message),
		sent:            make(map[string][]*discordgo.MessageSend),
		deletedMessages: make(map[string][]string),
	}
}

func (p *fakePlatform) addGuild(id string) {
	p.guilds[id] = &discordgo.Guild{ID: id}
}

func (p *fakePlatform) addChannel(guildID, id string) {
	p.channels[id] = &discordgo.Channel{ID: id, GuildID: guildID, Type: discordgo.ChannelTypeGuildText}
}

func (p *fakePlatform) BotUserID() string {
	return p.botID
}

func (p *fakePlatform) Guild(guildID string) (*discordgo.Guild, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	g, ok := p.guilds[guildID]
	if !ok {
		return nil, fmt.Errorf("unknown guild %s", guildID)
	}
	return g, nil
}

func (p *fakePlatform) Channel(channelID string) (*discordgo.Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.channels[channelID]
	if !ok {
		return nil, fmt.Errorf("unknown channel %s", channelID)
	}
	return c, nil
}

func (p *fakePlatform) GuildChannelCreate(guildID string, data discordgo.GuildChannelCreateData) (*discordgo.Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.createErr != nil {
		return nil, p.createErr
	}
	p.nextID++
	c := &discordgo.Channel{
		ID:                   fmt.Sprintf("created-%d", p.nextID),
		GuildID:              guildID,
		Name:                 data.Name,
		Type:                 data.Type,
		Topic:                data.Topic,
		PermissionOverwrites: data.PermissionOverwrites,
	}
	p.channels[c.ID] = c
	p.created = append(p.created, c)
	return c, nil
}

func (p *fakePlatform) ChannelDelete(channelID string) (*discordgo.Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.channels[channelID]
	if !ok {
		return nil, fmt.Errorf("unknown channel %s", channelID)
	}
	delete(p.channels, channelID)
	p.deletedChannels = append(p.deletedChannels, channelID)
	return c, nil
}

func (p *fakePlatform) ChannelMessages(channelID string, limit int, beforeID, afterID, aroundID string) ([]*discordgo.Message, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	msgs := p.messages[channelID]
	if len(msgs) > limit {
		msgs = msgs[:limit]
	}
	return msgs, nil
}

func (p *fakePlatform) ChannelMessageSendComplex(channelID string, msg *discordgo.MessageSend) (*discordgo.Message, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sendErr != nil {
		return nil, p.sendErr
	}
	p.nextID++
	p.sent[channelID] = append(p.sent[channelID], msg)
	return &discordgo.Message{ID: fmt.Sprintf("msg-%d", p.nextID), ChannelID: channelID}, nil
}

func (p *fakePlatform) ChannelMessageDelete(channelID, messageID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deletedMessages[channelID] = append(p.deletedMessages[channelID], messageID)
	return nil
}

func (p *fakePlatform) InteractionRespond(i *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.responses = append(p.responses, resp)
	return nil
}

func (p *fakePlatform) FollowupMessageCreate(i *discordgo.Interaction, wait bool, params *discordgo.WebhookParams) (*discordgo.Message, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.followups = append(p.followups, params)
	return &discordgo.Message{ID: "followup"}, nil
}

// lastFollowup returns the content of the most recent follow-up message.
func (p *fakePlatform) lastFollowup() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.followups) == 0 {
		return ""
	}
	return p.followups[len(p.followups)-1].Content
}

// fakeTicketDal is an in-memory ITicketDal honoring the same error
// contracts as the Mongo implementation.
type fakeTicketDal struct {
	mu        sync.Mutex
	tickets   []*entities.Ticket
	insertErr error
	deleteErr error
}

func (d *fakeTicketDal) InsertTicket(ticket *entities.Ticket) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.insertErr != nil {
		return d.insertErr
	}
	for _, t := range d.tickets {
		if t.GuildID == ticket.GuildID && t.UserID == ticket.UserID {
			return fmt.Errorf("error inserting ticket: %w", dataaccess.ErrDuplicateTicket)
		}
	}
	cp := *ticket
	d.tickets = append(d.tickets, &cp)
	return nil
}

func (d *fakeTicketDal) GetTicketByUser(guildID, userID string) (*entities.Ticket, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, t := range d.tickets {
		if t.GuildID == guildID && t.UserID == userID {
			cp := *t
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("error getting ticket by user: %w", mongo.ErrNoDocuments)
}

func (d *fakeTicketDal) GetTicketByChannel(guildID, channelID string) (*entities.Ticket, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, t := range d.tickets {
		if t.GuildID == guildID && t.ChannelID == channelID {
			cp := *t
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("error getting ticket by channel: %w", mongo.ErrNoDocuments)
}

func (d *fakeTicketDal) DeleteTicketByChannel(guildID, channelID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.deleteErr != nil {
		return d.deleteErr
	}
	for idx, t := range d.tickets {
		if t.GuildID == guildID && t.ChannelID == channelID {
			d.tickets = append(d.tickets[:idx], d.tickets[idx+1:]...)
			return nil
		}
	}
	return fmt.Errorf("error deleting ticket: %w", mongo.ErrNoDocuments)
}

func (d *fakeTicketDal) EnsureIndexes() error {
	return nil
}

// fakeSettingsDal is an in-memory ISettingsDal that records every save.
type fakeSettingsDal struct {
	mu       sync.Mutex
	settings map[string]*entities.TicketSettings
	saves    []entities.TicketSettings
}

func newFakeSettingsDal() *fakeSettingsDal {
	return &fakeSettingsDal{
		settings: make(map[string]*entities.TicketSettings),
	}
}

func (d *fakeSettingsDal) GetSettings(guildID string) (*entities.TicketSettings, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	s, ok := d.settings[guildID]
	if !ok {
		return nil, fmt.Errorf("error getting ticket settings: %w", mongo.ErrNoDocuments)
	}
	cp := *s
	return &cp, nil
}

func (d *fakeSettingsDal) SaveSettings(settings *entities.TicketSettings) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	cp := *settings
	d.settings[settings.GuildID] = &cp
	d.saves = append(d.saves, cp)
	return nil
}

// fakeApp wires the fakes into the IApp the handlers expect.
type fakeApp struct {
	l        *slog.Logger
	platform *fakePlatform
	tickets  *fakeTicketDal
	settings *fakeSettingsDal
	config   map[string]entities.GuildTicketConfig
}

func newFakeApp() *fakeApp {
	return &fakeApp{
		l:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		platform: newFakePlatform(),
		tickets:  new(fakeTicketDal),
		settings: newFakeSettingsDal(),
		config:   make(map[string]entities.GuildTicketConfig),
	}
}

func (a *fakeApp) Log() *slog.Logger {
	return a.l
}

func (a *fakeApp) Discord() DiscordPlatform {
	return a.platform
}

func (a *fakeApp) TicketDal(_ context.Context) dataaccess.ITicketDal {
	return a.tickets
}

func (a *fakeApp) SettingsDal(_ context.Context) dataaccess.ISettingsDal {
	return a.settings
}

func (a *fakeApp) GuildTicketConfig(guildID string) (entities.GuildTicketConfig, bool) {
	c, ok := a.config[guildID]
	return c, ok
}

// selectInteraction builds the interaction fired by a pick on the intake menu.
func selectInteraction(guildID, userID, username, value string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:      discordgo.InteractionMessageComponent,
			GuildID:   guildID,
			ChannelID: "intake",
			Member: &discordgo.Member{
				User: &discordgo.User{ID: userID, Username: username},
			},
			Data: discordgo.MessageComponentInteractionData{
				CustomID:      SelectTicketTypeID,
				ComponentType: discordgo.SelectMenuComponent,
				Values:        []string{value},
			},
		},
	}
}

// closeInteraction builds the interaction fired by the close button press.
func closeInteraction(guildID, channelID, actorID, ownerID string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:      discordgo.InteractionMessageComponent,
			GuildID:   guildID,
			ChannelID: channelID,
			Member: &discordgo.Member{
				User: &discordgo.User{ID: actorID, Username: "actor"},
			},
			Data: discordgo.MessageComponentInteractionData{
				CustomID:      CloseTicketButtonPrefix + ownerID,
				ComponentType: discordgo.ButtonComponent,
			},
		},
	}
}

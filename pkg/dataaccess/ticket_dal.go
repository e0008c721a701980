package dataaccess

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Jacobbrewer1/warden/pkg/dataaccess/monitoring"
	"github.com/Jacobbrewer1/warden/pkg/entities"
	"github.com/Jacobbrewer1/warden/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ticketDalName = "ticket_dal"

// ErrDuplicateTicket is returned by InsertTicket when the unique
// (guild_id, user_id) index rejects a second open ticket for a user.
var ErrDuplicateTicket = errors.New("user already has an open ticket")

// ITicketDal is the data access layer for open tickets. Lookups that find
// nothing return mongo.ErrNoDocuments wrapped, so callers can errors.Is it.
type ITicketDal interface {
	// InsertTicket inserts a new open ticket.
	InsertTicket(ticket *entities.Ticket) error

	// GetTicketByUser gets the open ticket for a user in a guild.
	GetTicketByUser(guildID, userID string) (*entities.Ticket, error)

	// GetTicketByChannel gets the open ticket backed by a channel.
	GetTicketByChannel(guildID, channelID string) (*entities.Ticket, error)

	// DeleteTicketByChannel removes the ticket backed by a channel.
	DeleteTicketByChannel(guildID, channelID string) error

	// EnsureIndexes creates the unique (guild_id, user_id) index. The index
	// is the store-level backstop for the one-open-ticket-per-user rule.
	EnsureIndexes() error
}

type ticketDal struct {
	// ctx is the context the dal is bound to.
	ctx context.Context

	// l is the logger.
	l *slog.Logger

	// client is the database.
	client *mongo.Client
}

// NewTicketDal creates a new ticket data access layer.
func NewTicketDal(ctx context.Context, logger *slog.Logger) ITicketDal {
	// If the context is nil, create a new one.
	if ctx == nil {
		ctx = context.Background()
	}

	l := logger.With(slog.String(logging.KeyDal, ticketDalName))

	if MongoDB == nil {
		l.Warn("MongoDB is nil, this can cause a panic. Proceeding...")
	}

	return &ticketDal{
		ctx:    ctx,
		l:      l,
		client: MongoDB,
	}
}

func (d *ticketDal) collection() *mongo.Collection {
	return d.client.Database(mongoDatabase).Collection(collectionTickets)
}

func (d *ticketDal) InsertTicket(ticket *entities.Ticket) error {
	monitoring.MongoTotalRequests.WithLabelValues(ticketDalName, "insert_ticket", mongoDatabase, collectionTickets).Inc()
	t := prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(ticketDalName, "insert_ticket", mongoDatabase, collectionTickets))
	defer t.ObserveDuration()

	if _, err := d.collection().InsertOne(d.ctx, ticket); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("error inserting ticket: %w", ErrDuplicateTicket)
		}
		return fmt.Errorf("error inserting ticket: %w", err)
	}
	return nil
}

func (d *ticketDal) GetTicketByUser(guildID, userID string) (*entities.Ticket, error) {
	monitoring.MongoTotalRequests.WithLabelValues(ticketDalName, "get_ticket_by_user", mongoDatabase, collectionTickets).Inc()
	t := prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(ticketDalName, "get_ticket_by_user", mongoDatabase, collectionTickets))
	defer t.ObserveDuration()

	ticket := new(entities.Ticket)
	err := d.collection().FindOne(d.ctx, bson.M{
		"guild_id": guildID,
		"user_id":  userID,
	}).Decode(ticket)
	if err != nil {
		return nil, fmt.Errorf("error getting ticket by user: %w", err)
	}
	return ticket, nil
}

func (d *ticketDal) GetTicketByChannel(guildID, channelID string) (*entities.Ticket, error) {
	monitoring.MongoTotalRequests.WithLabelValues(ticketDalName, "get_ticket_by_channel", mongoDatabase, collectionTickets).Inc()
	t := prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(ticketDalName, "get_ticket_by_channel", mongoDatabase, collectionTickets))
	defer t.ObserveDuration()

	ticket := new(entities.Ticket)
	err := d.collection().FindOne(d.ctx, bson.M{
		"guild_id":   guildID,
		"channel_id": channelID,
	}).Decode(ticket)
	if err != nil {
		return nil, fmt.Errorf("error getting ticket by channel: %w", err)
	}
	return ticket, nil
}

func (d *ticketDal) DeleteTicketByChannel(guildID, channelID string) error {
	monitoring.MongoTotalRequests.WithLabelValues(ticketDalName, "delete_ticket_by_channel", mongoDatabase, collectionTickets).Inc()
	t := prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(ticketDalName, "delete_ticket_by_channel", mongoDatabase, collectionTickets))
	defer t.ObserveDuration()

	res, err := d.collection().DeleteOne(d.ctx, bson.M{
		"guild_id":   guildID,
		"channel_id": channelID,
	})
	if err != nil {
		return fmt.Errorf("error deleting ticket: %w", err)
	} else if res.DeletedCount == 0 {
		return fmt.Errorf("error deleting ticket: %w", mongo.ErrNoDocuments)
	}
	return nil
}

func (d *ticketDal) EnsureIndexes() error {
	monitoring.MongoTotalRequests.WithLabelValues(ticketDalName, "ensure_indexes", mongoDatabase, collectionTickets).Inc()
	t := prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(ticketDalName, "ensure_indexes", mongoDatabase, collectionTickets))
	defer t.ObserveDuration()

	_, err := d.collection().Indexes().CreateOne(d.ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "guild_id", Value: 1},
			{Key: "user_id", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("error creating ticket indexes: %w", err)
	}
	return nil
}

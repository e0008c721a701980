package dataaccess

import (
	"context"
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

const settingsDalName = "settings_dal"

// ISettingsDal is the data access layer for per-guild intake settings.
type ISettingsDal interface {
	// GetSettings gets the settings row for a guild.
	GetSettings(guildID string) (*entities.TicketSettings, error)

	// SaveSettings upserts the settings row for a guild.
	SaveSettings(settings *entities.TicketSettings) error
}

type settingsDal struct {
	// ctx is the context the dal is bound to.
	ctx context.Context

	// l is the logger.
	l *slog.Logger

	// client is the database.
	client *mongo.Client
}

// NewSettingsDal creates a new settings data access layer.
func NewSettingsDal(ctx context.Context, logger *slog.Logger) ISettingsDal {
	// If the context is nil, create a new one.
	if ctx == nil {
		ctx = context.Background()
	}

	l := logger.With(slog.String(logging.KeyDal, settingsDalName))

	if MongoDB == nil {
		l.Warn("MongoDB is nil, this can cause a panic. Proceeding...")
	}

	return &settingsDal{
		ctx:    ctx,
		l:      l,
		client: MongoDB,
	}
}

func (d *settingsDal) collection() *mongo.Collection {
	return d.client.Database(mongoDatabase).Collection(collectionTicketSettings)
}

func (d *settingsDal) GetSettings(guildID string) (*entities.TicketSettings, error) {
	monitoring.MongoTotalRequests.WithLabelValues(settingsDalName, "get_settings", mongoDatabase, collectionTicketSettings).Inc()
	t := prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(settingsDalName, "get_settings", mongoDatabase, collectionTicketSettings))
	defer t.ObserveDuration()

	settings := new(entities.TicketSettings)
	err := d.collection().FindOne(d.ctx, bson.M{"guild_id": guildID}).Decode(settings)
	if err != nil {
		return nil, fmt.Errorf("error getting ticket settings: %w", err)
	}
	return settings, nil
}

func (d *settingsDal) SaveSettings(settings *entities.TicketSettings) error {
	monitoring.MongoTotalRequests.WithLabelValues(settingsDalName, "save_settings", mongoDatabase, collectionTicketSettings).Inc()
	t := prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(settingsDalName, "save_settings", mongoDatabase, collectionTicketSettings))
	defer t.ObserveDuration()

	opts := options.Update().SetUpsert(true)
	_, err := d.collection().UpdateOne(d.ctx, bson.M{"guild_id": settings.GuildID}, bson.M{"$set": settings}, opts)
	if err != nil {
		return fmt.Errorf("error upserting ticket settings: %w", err)
	}
	return nil
}

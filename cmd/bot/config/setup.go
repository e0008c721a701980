package config

import (
	"log/slog"
	"os"

	"github.com/Jacobbrewer1/warden/pkg/dataaccess"
	"github.com/Jacobbrewer1/warden/pkg/dataaccess/connection"
	"github.com/Jacobbrewer1/warden/pkg/logging"
)

func Parse(l *slog.Logger) {
	if envBT := os.Getenv(EnvBotToken); envBT != "" {
		l.Debug("Found bot token in environment", slog.String("key", EnvBotToken))
		BotToken = envBT
	}

	if envMongoUri := os.Getenv(EnvMongoUri); envMongoUri != "" {
		l.Debug("Found MongoDB URI in environment", slog.String("key", EnvMongoUri))
		MongoUri = envMongoUri
	}

	if envMonitoringPort := os.Getenv(EnvMonitoringPort); envMonitoringPort != "" {
		l.Debug("Found monitoring port in environment", slog.String("key", EnvMonitoringPort))
		MonitoringPort = envMonitoringPort
	} else {
		// Default to 8080 if not provided.
		MonitoringPort = "8080"

		l.Info("No monitoring port provided in environment, defaulting to 8080", slog.String("key", EnvMonitoringPort))
	}

	if envTickets := os.Getenv(EnvTicketsConfigPath); envTickets != "" {
		l.Debug("Found tickets config path in environment", slog.String("key", EnvTicketsConfigPath))
		TicketsConfigPath = envTickets
	} else {
		// Default to a config.json next to the binary if not provided.
		TicketsConfigPath = "config.json"

		l.Info("No tickets config path provided in environment, defaulting to config.json", slog.String("key", EnvTicketsConfigPath))
	}

	if BotToken == "" ||
		MongoUri == "" {

		l.Error("Not all required environment variables have been provided", slog.String(logging.KeyError, "Incomplete configuration"))
		os.Exit(1)
	}

	l.Debug("All required environment variables have been provided")
	connectMongo(l)
}

func connectMongo(l *slog.Logger) {
	mongoConn := new(connection.MongoDB)
	mongoConn.ConnectionString = MongoUri

	db, err := mongoConn.Connect()
	if err != nil {
		l.Error("Error connecting to mongo", slog.String(logging.KeyError, err.Error()))
		os.Exit(1)
	} else if db == nil {
		l.Error("MongoDB came back nil", slog.String(logging.KeyError, "MongoDB came back nil"))
		os.Exit(1)
	}

	dataaccess.MongoDB = db

	l.Debug("Connected to MongoDB", slog.String("key", EnvMongoUri))
}

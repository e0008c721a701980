package config

const (
	// AppName is the name of the application.
	AppName = "warden"

	// EnvBotToken is the environment variable for the bot token.
	EnvBotToken = `BOT_TOKEN`

	// EnvMongoUri is the environment variable for the MongoDB URI.
	EnvMongoUri = `MONGO_URI`

	// EnvMonitoringPort is the environment variable for the monitoring port.
	EnvMonitoringPort = `MONITORING_PORT`

	// EnvTicketsConfigPath is the environment variable for the path of the
	// polled ticketing configuration file.
	EnvTicketsConfigPath = `TICKETS_CONFIG_PATH`
)

var (
	// BotToken is the token for the bot.
	BotToken string

	// MongoUri is the URI for the MongoDB database.
	MongoUri string

	// MonitoringPort is the port for the monitoring server.
	MonitoringPort string

	// TicketsConfigPath is the path of the polled ticketing configuration file.
	TicketsConfigPath string
)

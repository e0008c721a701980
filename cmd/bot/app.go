package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/warden/cmd/bot/config"
	"github.com/Jacobbrewer1/warden/cmd/bot/monitoring"
	"github.com/Jacobbrewer1/warden/pkg/dataaccess"
	"github.com/Jacobbrewer1/warden/pkg/entities"
	"github.com/Jacobbrewer1/warden/pkg/logging"
	"github.com/Jacobbrewer1/warden/pkg/request"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// IApp is the slice of the application the interaction handlers use.
type IApp interface {
	// Log returns the application logger.
	Log() *slog.Logger

	// Discord returns the discord platform.
	Discord() DiscordPlatform

	// TicketDal returns the ticket data access layer bound to ctx.
	TicketDal(ctx context.Context) dataaccess.ITicketDal

	// SettingsDal returns the settings data access layer bound to ctx.
	SettingsDal(ctx context.Context) dataaccess.ISettingsDal

	// GuildTicketConfig returns the current ticketing configuration for a
	// guild, from the most recently loaded config snapshot.
	GuildTicketConfig(guildID string) (entities.GuildTicketConfig, bool)
}

type App struct {
	// is the logger.
	*slog.Logger

	// r is the router for the application.
	r *mux.Router

	// svr is the monitoring server for the application.
	svr *http.Server

	// s is the discord session.
	s *discordgo.Session

	// platform wraps s for the interaction handlers.
	platform DiscordPlatform

	// watcher polls the ticketing configuration file.
	watcher *configWatcher

	// eventNotifier is the channel for notifying of gateway events.
	eventNotifier chan any

	// shutdown cancels the watcher loops.
	shutdown context.CancelFunc
}

// NewApp creates a new instance of App.
func NewApp(l *slog.Logger, r *mux.Router) *App {
	return &App{
		Logger: l,
		r:      r,
	}
}

func (a *App) Run() error {
	// Register bot.
	if err := a.RegisterBot(); err != nil {
		return fmt.Errorf("error registering bot: %w", err)
	}

	a.s.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		a.Info(fmt.Sprintf("Logged in as %s#%s", r.User.Username, r.User.Discriminator))
	})

	if err := a.RegisterDiscordHandlers(); err != nil {
		return fmt.Errorf("error registering discord handlers: %w", err)
	}

	// Start event listener.
	go a.eventListener()

	// Open websocket.
	if err := a.s.Open(); err != nil {
		return fmt.Errorf("error opening connection to Discord: %w", err)
	}

	a.Info("Bot is now running.")

	// The unique ticket index backs the one-open-ticket-per-user rule.
	if err := a.TicketDal(context.Background()).EnsureIndexes(); err != nil {
		a.Warn("Error ensuring ticket indexes", slog.String(logging.KeyError, err.Error()))
	}

	// Start watching the ticketing configuration file.
	ctx, cancel := context.WithCancel(context.Background())
	a.shutdown = cancel
	a.watcher = newConfigWatcher(a, config.TicketsConfigPath)
	a.watcher.Start(ctx)

	a.generateServer()
	a.setupRoutes()
	a.runServer()

	// Register listener for shutdown signal.
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)

	// Process shutdown signal.
	for sig := range c {
		a.Info("Received shutdown signal", slog.String("signal", sig.String()))
		if err := a.ShutdownHook(); err != nil {
			a.Error("Error shutting down application", slog.String(logging.KeyError, err.Error()))
		}
		os.Exit(0)
	}
	return nil
}

func (a *App) ShutdownHook() error {
	// Reset the total number of guilds to 0.
	monitoring.TotalDiscordGuilds.Set(0)

	// Stop the config watcher.
	if a.shutdown != nil {
		a.shutdown()
	}

	// Close the connection to Discord.
	if err := a.s.Close(); err != nil {
		return fmt.Errorf("error closing connection to Discord: %w", err)
	}
	return nil
}

func (a *App) RegisterBot() error {
	// Default the number of guilds to 0.
	monitoring.TotalDiscordGuilds.Set(0)

	dg, err := discordgo.New("Bot " + config.BotToken)
	if err != nil {
		return fmt.Errorf("error creating Discord session: %w", err)
	}

	dg.Identify.Intents = discordgo.MakeIntent(discordgo.IntentsAll)

	if a.eventNotifier == nil {
		// Buffered to prevent blocking the gateway read loop.
		a.eventNotifier = make(chan any, 100)
	}

	dg.SetEventNotifier(a.eventNotifier)

	a.s = dg
	a.platform = newSessionPlatform(dg)
	return nil
}

func (a *App) RegisterDiscordHandlers() error {
	// Bot joined guild.
	a.s.AddHandler(guildJoinedHandler(a))

	// Bot left guild.
	a.s.AddHandler(guildLeaveHandler(a))

	// Component interactions drive the whole ticket lifecycle.
	a.s.AddHandler(interactionHandler(a,
		// Select menu controllers.
		map[string]commandProcessor{
			SelectTicketTypeID: openTicket,
		},
		// Button controllers, matched by custom ID prefix.
		map[string]commandProcessor{
			CloseTicketButtonPrefix: closeTicket,
		}))
	return nil
}

func (a *App) eventListener() {
	for e := range a.eventNotifier {
		switch t := e.(type) {
		case *discordgo.Event:
			if t.Type != "" {
				monitoring.TotalDiscordEvents.WithLabelValues(t.Type).Inc()
			} else {
				// If there is no type, then use the operation name.
				monitoring.TotalDiscordEvents.WithLabelValues(strings.ToUpper(t.Operation.String())).Inc()
			}
		default:
			a.Error("Unknown event type", slog.String("type", fmt.Sprintf("%T", e)))
			monitoring.TotalDiscordEvents.WithLabelValues("UNKNOWN").Inc()
		}
	}
}

func (a *App) generateServer() {
	a.svr = &http.Server{
		Addr:    ":" + config.MonitoringPort,
		Handler: a.r,
	}
}

func (a *App) setupRoutes() {
	// PathMetrics is the path for metrics.
	a.r.HandleFunc(PathMetrics, promhttp.Handler().ServeHTTP).Methods(http.MethodGet)

	// PathHealth is the path for health check.
	a.r.HandleFunc(PathHealth, middlewareHttp(a, a.healthCheck())).Methods(http.MethodGet)

	// NotFoundHandler is the handler for 404.
	a.r.NotFoundHandler = request.NotFoundHandler(a.Log())

	// MethodNotAllowedHandler is the handler for 405.
	a.r.MethodNotAllowedHandler = request.MethodNotAllowedHandler(a.Log())
}

func (a *App) runServer() {
	go func() {
		a.Info("Starting monitoring server")
		if err := a.svr.ListenAndServe(); err != nil {
			a.Error("Error starting monitoring server", slog.String(logging.KeyError, err.Error()))
			a.Warn("Monitoring server will not be available")
		}
	}()
}

func (a *App) Log() *slog.Logger {
	return a.Logger
}

func (a *App) Session() *discordgo.Session {
	return a.s
}

func (a *App) Discord() DiscordPlatform {
	return a.platform
}

func (a *App) TicketDal(ctx context.Context) dataaccess.ITicketDal {
	return dataaccess.NewTicketDal(ctx, a.Logger)
}

func (a *App) SettingsDal(ctx context.Context) dataaccess.ISettingsDal {
	return dataaccess.NewSettingsDal(ctx, a.Logger)
}

func (a *App) GuildTicketConfig(guildID string) (entities.GuildTicketConfig, bool) {
	if a.watcher == nil {
		return entities.GuildTicketConfig{}, false
	}
	return a.watcher.GuildSettings(guildID)
}

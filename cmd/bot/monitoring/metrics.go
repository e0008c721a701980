package monitoring

import (
	"fmt"

	"github.com/Jacobbrewer1/warden/cmd/bot/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TotalDiscordEvents is the total number of gateway events received.
	TotalDiscordEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_total_discord_events", config.AppName),
			Help: "Total number of events",
		},
		[]string{"event"},
	)

	// HttpTotalRequests is the total number of http requests.
	HttpTotalRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_http_total_requests", config.AppName),
			Help: "Total number of http requests",
		},
		[]string{"path", "method", "status_code"},
	)

	// HttpRequestDuration is the duration of the http request.
	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: fmt.Sprintf("%s_http_request_duration", config.AppName),
			Help: "Duration of the http request",
		},
		[]string{"path", "method", "status_code"},
	)

	// TotalDiscordGuilds is the number of guilds the bot is currently in.
	TotalDiscordGuilds = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: fmt.Sprintf("%s_total_discord_guilds", config.AppName),
			Help: "Total number of discord guilds",
		},
	)

	// TotalTicketsOpened is the total number of tickets opened, by type.
	TotalTicketsOpened = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_total_tickets_opened", config.AppName),
			Help: "Total number of tickets opened",
		},
		[]string{"type"},
	)

	// TotalTicketsClosed is the total number of tickets closed.
	TotalTicketsClosed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_total_tickets_closed", config.AppName),
			Help: "Total number of tickets closed",
		},
	)

	// TotalConfigReloads is the total number of ticket config reloads, by outcome.
	TotalConfigReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_total_config_reloads", config.AppName),
			Help: "Total number of ticket config reloads",
		},
		[]string{"outcome"},
	)

	// TotalReconcileCycles is the total number of reconciliation cycles that
	// observed a changed config snapshot.
	TotalReconcileCycles = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_total_reconcile_cycles", config.AppName),
			Help: "Total number of reconciliation cycles acting on a changed config",
		},
	)

	// TotalIntakePublishes is the total number of intake messages published.
	TotalIntakePublishes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_total_intake_publishes", config.AppName),
			Help: "Total number of intake messages published",
		},
	)
)

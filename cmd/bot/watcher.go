package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/Jacobbrewer1/warden/cmd/bot/monitoring"
	"github.com/Jacobbrewer1/warden/pkg/entities"
	"github.com/Jacobbrewer1/warden/pkg/logging"
)

const (
	// configPollInterval is how often the config file is re-read.
	configPollInterval = 5 * time.Second

	// reconcileInterval is how often the current snapshot is compared to
	// the previously observed one.
	reconcileInterval = 5 * time.Second
)

// configWatcher polls the ticketing configuration file and reconciles
// per-guild intake state whenever the snapshot changes. It owns both the
// current and the previously observed snapshot; snapshots are immutable
// once loaded.
type configWatcher struct {
	a IApp

	// path is the config file being polled.
	path string

	// mu guards current, which is read from interaction handlers.
	mu      sync.RWMutex
	current *entities.TicketsConfig

	// previous is the snapshot the last reconciliation acted on. Only the
	// reconcile loop touches it.
	previous *entities.TicketsConfig
}

func newConfigWatcher(a IApp, path string) *configWatcher {
	return &configWatcher{
		a:    a,
		path: path,
	}
}

// Start loads the config once, then runs the poll and reconcile loops until
// ctx is cancelled.
func (w *configWatcher) Start(ctx context.Context) {
	w.load()

	go w.pollLoop(ctx)
	go w.reconcileLoop(ctx)
}

func (w *configWatcher) pollLoop(ctx context.Context) {
	t := time.NewTicker(configPollInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			w.load()
		}
	}
}

func (w *configWatcher) reconcileLoop(ctx context.Context) {
	t := time.NewTicker(reconcileInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			w.reconcile()
		}
	}
}

// load re-reads the config file. On any read or parse error the last good
// snapshot is retained.
func (w *configWatcher) load() {
	data, err := os.ReadFile(w.path)
	if err != nil {
		w.a.Log().Error("Error reading tickets config file",
			slog.String("path", w.path),
			slog.String(logging.KeyError, err.Error()),
		)
		monitoring.TotalConfigReloads.WithLabelValues("error").Inc()
		return
	}

	cfg := new(entities.TicketsConfig)
	if err := json.Unmarshal(data, cfg); err != nil {
		w.a.Log().Error("Error parsing tickets config file",
			slog.String("path", w.path),
			slog.String(logging.KeyError, err.Error()),
		)
		monitoring.TotalConfigReloads.WithLabelValues("error").Inc()
		return
	}

	w.mu.Lock()
	w.current = cfg
	w.mu.Unlock()

	monitoring.TotalConfigReloads.WithLabelValues("ok").Inc()
}

// reconcile compares the current snapshot against the previously observed
// one. On any difference every guild in the current config is evaluated and
// the whole snapshot becomes the new "previous".
func (w *configWatcher) reconcile() {
	w.mu.RLock()
	current := w.current
	w.mu.RUnlock()

	if current == nil || current.Equal(w.previous) {
		return
	}

	monitoring.TotalReconcileCycles.Inc()

	for guildID, settings := range current.Tickets {
		var prev *entities.GuildTicketConfig
		if w.previous != nil {
			if p, ok := w.previous.Tickets[guildID]; ok {
				prev = &p
			}
		}
		w.reconcileGuild(guildID, settings, prev)
	}

	w.previous = current
}

// reconcileGuild republishes the intake message when ticketing has been
// enabled for a guild or its designated channel moved. Other settings
// changes (support roles included) do not republish.
func (w *configWatcher) reconcileGuild(guildID string, settings entities.GuildTicketConfig, previous *entities.GuildTicketConfig) {
	if !settings.Status || settings.TicketChannelID == "" {
		return
	}
	if previous != nil && previous.TicketChannelID == settings.TicketChannelID {
		return
	}

	if err := publishIntake(w.a, guildID, settings); err != nil {
		w.a.Log().Error("Error publishing intake message",
			slog.String(logging.KeyGuild, guildID),
			slog.String(logging.KeyError, err.Error()),
		)
	}
}

// GuildSettings returns the ticketing configuration for a guild from the
// current snapshot.
func (w *configWatcher) GuildSettings(guildID string) (entities.GuildTicketConfig, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current.Guild(guildID)
}

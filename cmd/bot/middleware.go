package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/warden/cmd/bot/monitoring"
	"github.com/Jacobbrewer1/warden/pkg/logging"
	"github.com/Jacobbrewer1/warden/pkg/messages"
	"github.com/Jacobbrewer1/warden/pkg/request"
	"github.com/gorilla/mux"
)

const (
	// PathMetrics is the path for metrics.
	PathMetrics = "/metrics"

	// PathHealth is the path for health check.
	PathHealth = "/health"
)

// commandProcessor handles a single routed interaction.
type commandProcessor func(a IApp, i *discordgo.InteractionCreate) error

type Controller func(w http.ResponseWriter, r *http.Request)

func middlewareHttp(a IApp, handler Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now().UTC()
		cw := request.NewClientWriter(w)

		// Recover from any panics that occur in the handler.
		defer func() {
			if rec := recover(); rec != nil {
				a.Log().Error("Panic in handler",
					slog.String(logging.KeyError, fmt.Sprintf("%v", rec)),
					slog.String("stack", string(debug.Stack())),
				)
				cw.WriteHeader(http.StatusInternalServerError)
				if err := json.NewEncoder(cw).Encode(request.NewMessage(messages.ErrUserErrorProcessing)); err != nil {
					a.Log().Error("Error encoding response", slog.String(logging.KeyError, err.Error()))
				}
			}
		}()

		var path string
		route := mux.CurrentRoute(r)
		if route != nil { // The route may be nil if the request is not routed.
			var err error
			path, err = route.GetPathTemplate()
			if err != nil {
				// An error here is only returned if the route does not define a path.
				a.Log().Error("Error getting path template", slog.String(logging.KeyError, err.Error()))
				path = r.URL.Path
			}
		} else {
			path = r.URL.Path
		}

		defer func() {
			// Run after the handler so the status code is available.
			monitoring.HttpTotalRequests.WithLabelValues(path, r.Method, fmt.Sprintf("%d", cw.StatusCode())).Inc()
			monitoring.HttpRequestDuration.WithLabelValues(path, r.Method, fmt.Sprintf("%d", cw.StatusCode())).Observe(time.Since(now).Seconds())
		}()

		handler(cw, r)
	}
}

// interactionHandler routes component interactions to their controllers.
// Select menus are matched on the exact custom ID; buttons are matched on a
// custom ID prefix, since button IDs carry the ticket owner as a suffix.
// Every other interaction shape is ignored. A returned error means the
// controller has not told the user anything yet, so the dispatcher answers
// with the generic apology; controllers that already replied return nil.
func interactionHandler(a IApp, selectControllers, buttonControllers map[string]commandProcessor) func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return func(_ *discordgo.Session, i *discordgo.InteractionCreate) {
		if i.Type != discordgo.InteractionMessageComponent {
			return
		}

		data := i.MessageComponentData()

		var processor commandProcessor
		switch {
		case data.ComponentType == discordgo.SelectMenuComponent:
			processor = selectControllers[data.CustomID]
		case data.ComponentType == discordgo.ButtonComponent:
			for prefix, p := range buttonControllers {
				if strings.HasPrefix(data.CustomID, prefix) {
					processor = p
					break
				}
			}
		}

		if processor == nil {
			return
		}

		a.Log().Debug("Handling component interaction", slog.String("custom_id", data.CustomID))

		if err := processor(a, i); err != nil {
			a.Log().Error(fmt.Sprintf("Error processing interaction %s", data.CustomID),
				slog.String(logging.KeyError, err.Error()))

			if err := followUpEphemeral(a, i, messages.ErrUserErrorProcessing); err != nil {
				a.Log().Error("Error responding to interaction", slog.String(logging.KeyError, err.Error()))
			}
		}
	}
}

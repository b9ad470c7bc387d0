package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"avquoter/collections"
	"avquoter/services"
	"avquoter/templates"
)

type contextKey string

const NavDataKey contextKey = "navData"

// navLimit caps the recent proposals shown in the sidebar.
const navLimit = 15

// GetNavData extracts the pre-built NavData from the request context.
func GetNavData(r *http.Request) templates.NavData {
	if val, ok := r.Context().Value(NavDataKey).(templates.NavData); ok {
		return val
	}
	return templates.NavData{}
}

// NavMiddleware loads the most recently updated proposals for the sidebar
// and stores them in the request context. The active proposal is taken from
// a /proposals/{id} path.
func NavMiddleware(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		nav := templates.NavData{ActiveID: activeProposalID(e.Request.URL.Path)}

		records, err := app.FindRecordsByFilter(collections.Proposals, "id != ''", "-updated", navLimit, 0)
		if err != nil {
			loggerFor(e).Debug().Err(err).Msg("nav: could not list proposals")
		}
		for _, rec := range records {
			nav.Proposals = append(nav.Proposals, templates.ProposalLink{
				ID:        rec.Id,
				Client:    rec.GetString("client"),
				ModeLabel: services.Mode(rec.GetString("mode")).Label(),
			})
		}

		ctx := context.WithValue(e.Request.Context(), NavDataKey, nav)
		e.Request = e.Request.WithContext(ctx)
		return e.Next()
	}
}

func activeProposalID(path string) string {
	rest, ok := strings.CutPrefix(path, "/proposals/")
	if !ok {
		return ""
	}
	id, _, _ := strings.Cut(rest, "/")
	return id
}

// loggerFor returns the request-scoped logger, or the global one outside a
// request.
func loggerFor(e *core.RequestEvent) *zerolog.Logger {
	if e.Request == nil {
		return &log.Logger
	}
	return zerolog.Ctx(e.Request.Context())
}

// RequestLogger attaches l to the request context and logs one line per
// request once the handler chain returns.
func RequestLogger(l zerolog.Logger) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		start := time.Now()
		e.Request = e.Request.WithContext(l.WithContext(e.Request.Context()))

		err := e.Next()

		status := e.Status()
		if err != nil && status < http.StatusBadRequest {
			status = http.StatusInternalServerError
		}
		evt := l.Info()
		if status >= http.StatusInternalServerError {
			evt = l.Error().Err(err)
		}
		evt.Str("method", e.Request.Method).
			Str("path", e.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")
		return err
	}
}

package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/pocketbase/pocketbase/core"
)

// ToastLevel selects the colour of a status toast.
type ToastLevel string

const (
	ToastSuccess ToastLevel = "success"
	ToastWarning ToastLevel = "warning"
	ToastError   ToastLevel = "error"
)

const flashCookie = "flash_toast"

type toast struct {
	Message string     `json:"message"`
	Type    ToastLevel `json:"type"`
}

// SetToast shows message as the status line after the response lands.
// HTMX requests get a showToast event in HX-Trigger, merged into any events
// already set. A short-lived flash cookie carries the same toast across a
// plain 302 redirect.
func SetToast(e *core.RequestEvent, level ToastLevel, message string) {
	t := toast{Message: message, Type: level}

	events := map[string]any{}
	if existing := e.Response.Header().Get("HX-Trigger"); existing != "" {
		if err := json.Unmarshal([]byte(existing), &events); err != nil {
			loggerFor(e).Warn().Err(err).Str("hx_trigger", existing).Msg("toast: replacing unparseable HX-Trigger")
			events = map[string]any{}
		}
	}
	events["showToast"] = t

	trigger, err := json.Marshal(events)
	if err != nil {
		loggerFor(e).Error().Err(err).Msg("toast: could not encode HX-Trigger")
		return
	}
	e.Response.Header().Set("HX-Trigger", string(trigger))

	flash, err := json.Marshal(t)
	if err != nil {
		return
	}
	http.SetCookie(e.Response, &http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(string(flash)),
		Path:     "/",
		MaxAge:   10,
		SameSite: http.SameSiteLaxMode,
	})
}

// ErrorToast answers with status and message and shows the message as an
// error toast. HX-Reswap: none keeps HTMX from swapping the text into the
// page.
func ErrorToast(e *core.RequestEvent, status int, message string) error {
	SetToast(e, ToastError, message)
	e.Response.Header().Set("HX-Reswap", "none")
	return e.String(status, message)
}

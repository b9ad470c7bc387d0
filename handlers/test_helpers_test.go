package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"avquoter/config"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// withPathValues sets route parameters as the router would: key, value, ...
func withPathValues(req *http.Request, kv ...string) *http.Request {
	for i := 0; i+1 < len(kv); i += 2 {
		req.SetPathValue(kv[i], kv[i+1])
	}
	return req
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		OutputDir:         t.TempDir(),
		Signatory:         "Jo Bloggs",
		BookingPanelPrice: 2200,
	}
}

// toastOf returns the type and message of the showToast trigger, if any.
func toastOf(t *testing.T, rec *httptest.ResponseRecorder) (string, string) {
	t.Helper()
	trigger := rec.Header().Get("HX-Trigger")
	if trigger == "" {
		return "", ""
	}
	var parsed struct {
		ShowToast struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"showToast"`
	}
	if err := json.Unmarshal([]byte(trigger), &parsed); err != nil {
		t.Fatalf("HX-Trigger is not valid JSON: %v", err)
	}
	return parsed.ShowToast.Type, parsed.ShowToast.Message
}

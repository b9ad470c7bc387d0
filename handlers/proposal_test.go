package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"avquoter/collections"
	"avquoter/testhelpers"
)

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	return req
}

func TestHandleProposalList_RendersDrafts(t *testing.T) {
	app := testhelpers.NewSeededTestApp(t)
	p := testhelpers.CreateTestProposal(t, app, "Acme Corp", "partner")
	testhelpers.AddTestRoom(t, app, p.Id, "Huddle", 2.5, "")
	handler := HandleProposalList(app, testConfig(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"New proposal",
		`value="Jo Bloggs"`,
		`href="/proposals/`+p.Id+`"`,
		"Acme Corp",
		"Data#3 (Cisco)",
		`<td class="num">1</td>`,
	)
}

func TestHandleProposalList_Empty(t *testing.T) {
	app := testhelpers.NewSeededTestApp(t)
	handler := HandleProposalList(app, testConfig(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "No proposals yet.")
}

func TestHandleProposalSave_ValidData(t *testing.T) {
	app := testhelpers.NewSeededTestApp(t)
	handler := HandleProposalSave(app, testConfig(t))

	form := url.Values{}
	form.Set("client", "  Acme Corp ")
	form.Set("mode", "Fit-Out (Full Scope)")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, postForm("/proposals", form), rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}

	records, err := app.FindRecordsByFilter(collections.Proposals, "client = {:c}", "", 1, 0,
		map[string]any{"c": "Acme Corp"})
	if err != nil || len(records) == 0 {
		t.Fatal("expected proposal to be created in database")
	}
	got := records[0]
	if got.GetString("mode") != "fitout" {
		t.Errorf("mode = %q, want fitout", got.GetString("mode"))
	}
	if got.GetString("signatory") != "Jo Bloggs" {
		t.Errorf("signatory = %q, want the configured default", got.GetString("signatory"))
	}
	testhelpers.AssertHXRedirect(t, rec.Header().Get("HX-Redirect"), "/proposals/"+got.Id)
}

func TestHandleProposalSave_Invalid(t *testing.T) {
	tests := []struct {
		name string
		form url.Values
		want string
	}{
		{"blank client", url.Values{"client": {"   "}, "mode": {"partner"}}, "Enter Client Name"},
		{"unknown mode", url.Values{"client": {"Acme"}, "mode": {"hybrid"}}, "Unknown project scope"},
		{"missing mode", url.Values{"client": {"Acme"}}, "Select a project scope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := testhelpers.NewSeededTestApp(t)
			handler := HandleProposalSave(app, testConfig(t))
			rec := httptest.NewRecorder()

			if err := handler(newTestRequestEvent(app, postForm("/proposals", tt.form), rec)); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != http.StatusOK {
				t.Errorf("expected status 200 (form re-rendered), got %d", rec.Code)
			}
			if rec.Header().Get("HX-Redirect") != "" {
				t.Error("invalid form should not redirect")
			}
			testhelpers.AssertHTMLContains(t, rec.Body.String(), tt.want)

			n, _ := app.CountRecords(collections.Proposals)
			if n != 0 {
				t.Errorf("stored %d proposals, want 0", n)
			}
		})
	}
}

func TestHandleProposalView_RendersRoomsAndTotals(t *testing.T) {
	app := testhelpers.NewSeededTestApp(t)
	p := testhelpers.CreateTestProposal(t, app, "Acme Corp", "partner")
	testhelpers.AddTestRoom(t, app, p.Id, "Board", 7, "")
	testhelpers.AddTestRoom(t, app, p.Id, "Huddle", 2.5, "")
	testhelpers.AddTestRoom(t, app, p.Id, "Hall", 40, "")
	handler := HandleProposalView(app, testConfig(t))

	req := withPathValues(httptest.NewRequest(http.MethodGet, "/proposals/"+p.Id, nil), "id", p.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body,
		"<h1>Acme Corp</h1>",
		"Total Rooms: 3",
		"Small Room (2.5m)",
		"Boardroom (7m)",
		"Distance exceeds the largest room tier",
		`hx-post="/proposals/`+p.Id+`/rooms/import"`,
	)
	if strings.Contains(body, "Room Booking Panel") {
		t.Error("partner proposals should not offer booking panels")
	}
	if strings.Index(body, "Huddle") > strings.Index(body, "Board<") {
		t.Error("rooms should be listed by ascending distance")
	}
}

func TestHandleProposalView_FitOutAddOns(t *testing.T) {
	app := testhelpers.NewSeededTestApp(t)
	p := testhelpers.CreateTestProposal(t, app, "Acme Corp", "fitout")
	testhelpers.AddTestRoom(t, app, p.Id, "Small", 2, "")
	testhelpers.AddTestRoom(t, app, p.Id, "Large", 7.5, "")
	handler := HandleProposalView(app, testConfig(t))

	req := withPathValues(httptest.NewRequest(http.MethodGet, "/proposals/"+p.Id, nil), "id", p.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "Room Booking Panel", "$4,400.00")
}

func TestHandleProposalView_NotFound(t *testing.T) {
	app := testhelpers.NewSeededTestApp(t)
	handler := HandleProposalView(app, testConfig(t))

	req := withPathValues(httptest.NewRequest(http.MethodGet, "/proposals/missing", nil), "id", "missing")
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}

func TestHandleProposalDelete_CascadesRooms(t *testing.T) {
	app := testhelpers.NewSeededTestApp(t)
	p := testhelpers.CreateTestProposal(t, app, "Acme", "partner")
	testhelpers.AddTestRoom(t, app, p.Id, "Huddle", 2.5, "")
	handler := HandleProposalDelete(app)

	req := withPathValues(httptest.NewRequest(http.MethodDelete, "/proposals/"+p.Id, nil), "id", p.Id)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	testhelpers.AssertHXRedirect(t, rec.Header().Get("HX-Redirect"), "/")

	if _, err := app.FindRecordById(collections.Proposals, p.Id); err == nil {
		t.Error("expected proposal to be deleted")
	}
	rooms, _ := app.CountRecords(collections.ProposalRooms)
	if rooms != 0 {
		t.Errorf("rooms left = %d, want 0", rooms)
	}
}

func TestHandleProposalDelete_NotFound(t *testing.T) {
	app := testhelpers.NewSeededTestApp(t)
	handler := HandleProposalDelete(app)

	req := withPathValues(httptest.NewRequest(http.MethodDelete, "/proposals/nope", nil), "id", "nope")
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}

func TestHandleRoomDelete(t *testing.T) {
	app := testhelpers.NewSeededTestApp(t)
	p := testhelpers.CreateTestProposal(t, app, "Acme", "partner")
	other := testhelpers.CreateTestProposal(t, app, "Other", "partner")
	room := testhelpers.AddTestRoom(t, app, p.Id, "Huddle", 2.5, "")
	handler := HandleRoomDelete(app)

	t.Run("wrong proposal", func(t *testing.T) {
		req := withPathValues(httptest.NewRequest(http.MethodDelete, "/", nil), "id", other.Id, "roomId", room.Id)
		rec := httptest.NewRecorder()
		if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected status 404, got %d", rec.Code)
		}
	})

	t.Run("own proposal", func(t *testing.T) {
		req := withPathValues(httptest.NewRequest(http.MethodDelete, "/", nil), "id", p.Id, "roomId", room.Id)
		req.Header.Set("HX-Request", "true")
		rec := httptest.NewRecorder()
		if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		testhelpers.AssertHXRedirect(t, rec.Header().Get("HX-Redirect"), "/proposals/"+p.Id)
		if _, err := app.FindRecordById(collections.ProposalRooms, room.Id); err == nil {
			t.Error("expected room to be deleted")
		}
	})
}

func TestLoadDraft_Errors(t *testing.T) {
	t.Run("missing proposal", func(t *testing.T) {
		app := testhelpers.NewSeededTestApp(t)
		cat, err := loadCatalog(app, testConfig(t))
		if err != nil {
			t.Fatalf("loadCatalog() error = %v", err)
		}
		if _, err := loadDraft(app, cat, "missing"); !errors.Is(err, errProposalNotFound) {
			t.Errorf("loadDraft() error = %v, want errProposalNotFound", err)
		}
	})

	t.Run("room query fails", func(t *testing.T) {
		app := testhelpers.NewSeededTestApp(t)
		p := testhelpers.CreateTestProposal(t, app, "Acme", "partner")
		testhelpers.AddTestRoom(t, app, p.Id, "Huddle", 2.5, "")
		cat, err := loadCatalog(app, testConfig(t))
		if err != nil {
			t.Fatalf("loadCatalog() error = %v", err)
		}

		rooms, err := app.FindCollectionByNameOrId(collections.ProposalRooms)
		if err != nil {
			t.Fatalf("find rooms collection: %v", err)
		}
		if err := app.Delete(rooms); err != nil {
			t.Fatalf("delete rooms collection: %v", err)
		}

		_, err = loadDraft(app, cat, p.Id)
		if err == nil {
			t.Fatal("loadDraft() returned no error for a failed room query")
		}
		if errors.Is(err, errProposalNotFound) {
			t.Errorf("loadDraft() error = %v, should not read as a missing proposal", err)
		}

		req := withPathValues(httptest.NewRequest(http.MethodGet, "/proposals/"+p.Id, nil), "id", p.Id)
		rec := httptest.NewRecorder()
		if err := HandleProposalView(app, testConfig(t))(newTestRequestEvent(app, req, rec)); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("expected status 500, got %d", rec.Code)
		}
	})
}

package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"avquoter/collections"
	"avquoter/testhelpers"
)

func storedRooms(t *testing.T, app *pocketbase.PocketBase, proposalID string) []*core.Record {
	t.Helper()
	rooms, err := app.FindRecordsByFilter(collections.ProposalRooms, "proposal = {:id}", "sort_order", 0, 0,
		map[string]any{"id": proposalID})
	if err != nil {
		t.Fatalf("query rooms: %v", err)
	}
	return rooms
}

func TestHandleRoomAdd_Single(t *testing.T) {
	app := testhelpers.NewSeededTestApp(t)
	p := testhelpers.CreateTestProposal(t, app, "Acme", "partner")
	handler := HandleRoomAdd(app, testConfig(t))

	form := url.Values{"name": {"Huddle"}, "distance": {"2.5m"}}
	req := withPathValues(postForm("/proposals/"+p.Id+"/rooms", form), "id", p.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	testhelpers.AssertHXRedirect(t, rec.Header().Get("HX-Redirect"), "/proposals/"+p.Id)
	if typ, msg := toastOf(t, rec); typ != "success" || msg != "Room Added Successfully" {
		t.Errorf("toast = (%q, %q)", typ, msg)
	}

	rooms := storedRooms(t, app, p.Id)
	if len(rooms) != 1 {
		t.Fatalf("stored %d rooms, want 1", len(rooms))
	}
	if rooms[0].GetString("name") != "Huddle" || rooms[0].GetFloat("distance") != 2.5 {
		t.Errorf("room = %q %v", rooms[0].GetString("name"), rooms[0].GetFloat("distance"))
	}
}

func TestHandleRoomAdd_PackageDefaults(t *testing.T) {
	app := testhelpers.NewSeededTestApp(t)
	p := testhelpers.CreateTestProposal(t, app, "Acme", "fitout")
	handler := HandleRoomAdd(app, testConfig(t))

	form := url.Values{"package": {"fit-out 98"}}
	req := withPathValues(postForm("/", form), "id", p.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	rooms := storedRooms(t, app, p.Id)
	if len(rooms) != 1 {
		t.Fatalf("stored %d rooms, want 1", len(rooms))
	}
	r := rooms[0]
	if r.GetString("name") != "Fit-Out 98" || r.GetString("package") != "Fit-Out 98" || r.GetFloat("distance") != 7.5 {
		t.Errorf("room = name %q package %q distance %v", r.GetString("name"), r.GetString("package"), r.GetFloat("distance"))
	}
}

func TestHandleRoomAdd_Bulk(t *testing.T) {
	app := testhelpers.NewSeededTestApp(t)
	p := testhelpers.CreateTestProposal(t, app, "Acme", "partner")
	testhelpers.AddTestRoom(t, app, p.Id, "Existing", 4, "")
	handler := HandleRoomAdd(app, testConfig(t))

	form := url.Values{"lines": {"Huddle, 2.5\nno comma here\nHall, 40\nBoard\t7m\n"}}
	req := withPathValues(postForm("/", form), "id", p.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	typ, msg := toastOf(t, rec)
	if typ != "warning" {
		t.Errorf("toast type = %q, want warning", typ)
	}
	for _, want := range []string{"Added 2 rooms", "line 2 (missing comma)", "Hall (too far for any tier)"} {
		if !strings.Contains(msg, want) {
			t.Errorf("toast %q missing %q", msg, want)
		}
	}

	rooms := storedRooms(t, app, p.Id)
	if len(rooms) != 3 {
		t.Fatalf("stored %d rooms, want 3", len(rooms))
	}
	if rooms[1].GetString("name") != "Huddle" || rooms[1].GetInt("sort_order") != 2 {
		t.Errorf("second room = %q order %d", rooms[1].GetString("name"), rooms[1].GetInt("sort_order"))
	}
	if rooms[2].GetString("name") != "Board" || rooms[2].GetFloat("distance") != 7 {
		t.Errorf("third room = %q %v", rooms[2].GetString("name"), rooms[2].GetFloat("distance"))
	}
}

func TestHandleRoomAdd_Errors(t *testing.T) {
	tests := []struct {
		name string
		form url.Values
		want string
	}{
		{"missing name", url.Values{"distance": {"3"}}, "Room name is required"},
		{"missing distance", url.Values{"name": {"Huddle"}}, "Enter a distance or choose a package"},
		{"not a number", url.Values{"name": {"Huddle"}, "distance": {"far"}}, "Distance must be a number of metres"},
		{"too far", url.Values{"name": {"Hall"}, "distance": {"40"}}, "Distance exceeds the largest room tier"},
		{"unknown package", url.Values{"package": {"Stadium"}}, "Unknown room package"},
		{"no parsable lines", url.Values{"lines": {"nothing useful"}}, "No valid rooms found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := testhelpers.NewSeededTestApp(t)
			p := testhelpers.CreateTestProposal(t, app, "Acme", "partner")
			handler := HandleRoomAdd(app, testConfig(t))

			req := withPathValues(postForm("/", tt.form), "id", p.Id)
			rec := httptest.NewRecorder()

			if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != http.StatusOK {
				t.Errorf("expected status 200 (page re-rendered), got %d", rec.Code)
			}
			testhelpers.AssertHTMLContains(t, rec.Body.String(), tt.want)
			if n := len(storedRooms(t, app, p.Id)); n != 0 {
				t.Errorf("stored %d rooms, want 0", n)
			}
		})
	}
}

func multipartRequest(t *testing.T, target, field, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("HX-Request", "true")
	return req
}

func TestHandleRoomImport_CSV(t *testing.T) {
	app := testhelpers.NewSeededTestApp(t)
	p := testhelpers.CreateTestProposal(t, app, "Acme", "partner")
	handler := HandleRoomImport(app, testConfig(t))

	schedule := "Room Name,Distance,Package\n" +
		"Huddle,2.5,\n" +
		"Board,,boardroom\n" +
		"Hall,40,\n" +
		"Lobby,,Stadium\n" +
		",3,\n"
	req := withPathValues(multipartRequest(t, "/", "schedule", "level3.csv", []byte(schedule)), "id", p.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	testhelpers.AssertHXRedirect(t, rec.Header().Get("HX-Redirect"), "/proposals/"+p.Id)

	typ, msg := toastOf(t, rec)
	if typ != "warning" {
		t.Errorf("toast type = %q, want warning", typ)
	}
	for _, want := range []string{"Imported 2 rooms from level3.csv", "row 6 (room name is empty)", "Hall (too far for any tier)", `Lobby (unknown package "Stadium")`} {
		if !strings.Contains(msg, want) {
			t.Errorf("toast %q missing %q", msg, want)
		}
	}

	rooms := storedRooms(t, app, p.Id)
	if len(rooms) != 2 {
		t.Fatalf("stored %d rooms, want 2", len(rooms))
	}
	board := rooms[1]
	if board.GetString("package") != "Boardroom" || board.GetFloat("distance") != 7.5 {
		t.Errorf("package room = %q %v, want Boardroom at 7.5", board.GetString("package"), board.GetFloat("distance"))
	}
}

func TestHandleRoomImport_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  string
		status   int
	}{
		{"unsupported file", "rooms.txt", "Huddle, 2.5", http.StatusUnprocessableEntity},
		{"no usable rows", "rooms.csv", "Room Name,Distance\nHall,40\n", http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := testhelpers.NewSeededTestApp(t)
			p := testhelpers.CreateTestProposal(t, app, "Acme", "partner")
			handler := HandleRoomImport(app, testConfig(t))

			req := withPathValues(multipartRequest(t, "/", "schedule", tt.filename, []byte(tt.content)), "id", p.Id)
			rec := httptest.NewRecorder()

			if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, rec.Code)
			}
			if rec.Header().Get("HX-Reswap") != "none" {
				t.Error("expected HX-Reswap: none on a rejected upload")
			}
			if n := len(storedRooms(t, app, p.Id)); n != 0 {
				t.Errorf("stored %d rooms, want 0", n)
			}
		})
	}
}

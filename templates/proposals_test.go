package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestProposalListPage(t *testing.T) {
	data := ProposalListData{
		Proposals: []ProposalSummary{{ID: "abc", Client: "Acme <Corp>", ModeLabel: "Data#3 (Cisco)", Created: "14 March 2026", Rooms: 3}},
		Modes:     []ModeOption{{Value: "partner", Label: "Data#3 (Cisco)", Selected: true}, {Value: "fitout", Label: "Fit-Out (Full Scope)"}},
		Errors:    map[string]string{"client": "Client name is required"},
	}
	nav := NavData{Proposals: []ProposalLink{{ID: "abc", Client: "Acme <Corp>", ModeLabel: "Data#3 (Cisco)"}}}

	var buf bytes.Buffer
	if err := ProposalListPage(data, nav).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	body := buf.String()

	for _, want := range []string{
		`<title>Proposals | Alder Quotes</title>`,
		`href="/proposals/abc"`,
		`Acme &lt;Corp&gt;`,
		`<option value="partner" selected>`,
		`Client name is required`,
		`hx-delete="/proposals/abc"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
	if strings.Contains(body, "Acme <Corp>") {
		t.Error("client name was not escaped")
	}
}

func TestProposalListPage_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := ProposalListPage(ProposalListData{}, NavData{}).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(buf.String(), "No proposals yet.") {
		t.Error("empty list message missing")
	}
}

func TestProposalViewPage(t *testing.T) {
	data := ProposalViewData{
		ID:        "p1",
		Client:    "Acme Corp",
		ModeLabel: "Fit-Out (Full Scope)",
		Rooms: []RoomRow{
			{ID: "r1", Name: "Huddle", Distance: "2.5m", Classification: "Fit-Out 55 (2.5m)", Upfront: "$8,280.00", ManagedService: "$1,200.00", Year1: "$9,480.00"},
			{ID: "r2", Name: "Hall", Distance: "12m", Error: "Error: Distance exceeds the largest room tier"},
		},
		Packages:   []PackageOption{{Name: "Fit-Out 55", Label: "Fit-Out 55 (0m - 3m)"}},
		AddOns:     []AddOnRow{{Item: "Room Booking Panel", Description: "Crestron", UnitPrice: "$2,200.00", Qty: 1, Total: "$2,200.00"}},
		Upfront:    "$8,280.00",
		Managed:    "$1,200.00",
		GrandTotal: "$9,480.00",
		Status:     "Ready",
	}

	var buf bytes.Buffer
	if err := ProposalViewPage(data, NavData{ActiveID: "p1"}).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	body := buf.String()

	for _, want := range []string{
		`<h1>Acme Corp</h1>`,
		`Fit-Out 55 (2.5m)`,
		`$9,480.00`,
		`Error: Distance exceeds the largest room tier`,
		`hx-delete="/proposals/p1/rooms/r1"`,
		`hx-post="/proposals/p1/rooms"`,
		`<option value="Fit-Out 55">Fit-Out 55 (0m - 3m)</option>`,
		`Room Booking Panel`,
		`href="/proposals/p1/export/docx"`,
		`href="/proposals/p1/export/pdf"`,
		`href="/proposals/p1/export/xlsx"`,
		`hx-post="/proposals/p1/generate"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestProposalViewPage_Sidebar(t *testing.T) {
	nav := NavData{
		Proposals: []ProposalLink{{ID: "p1", Client: "Acme", ModeLabel: "Fit-Out (Full Scope)"}, {ID: "p2", Client: "Globex", ModeLabel: "Data#3 (Cisco)"}},
		ActiveID:  "p1",
	}
	data := ProposalViewData{ID: "p1", Client: "Acme", LastOutput: `C:\Quotes\Alder_Quote_Acme.docx`}

	var buf bytes.Buffer
	if err := ProposalViewPage(data, nav).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	body := buf.String()

	for _, want := range []string{
		`<!doctype html>`,
		`<li class="active"><a href="/proposals/p1">Acme</a>`,
		`<li><a href="/proposals/p2">Globex</a>`,
		`<main><h1>Acme</h1>`,
		`Last saved to <code>C:\Quotes\Alder_Quote_Acme.docx</code>`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
	if strings.Contains(body, "None yet") {
		t.Error("sidebar shows the empty message with proposals present")
	}
}

package services

import (
	"errors"
	"strings"
	"testing"
	"time"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 15, 0, time.UTC)

func buildTestProposal(t *testing.T, mode Mode, inputs []RoomInput) ProposalData {
	t.Helper()
	cat := DefaultCatalog()
	rooms, errs := BuildRooms(cat, mode, inputs)
	if len(errs) != 0 {
		t.Fatalf("BuildRooms errors = %v", errs)
	}
	data, err := BuildProposal(cat, "Acme Corp", mode, rooms, fixedNow, "")
	if err != nil {
		t.Fatalf("BuildProposal() error = %v", err)
	}
	return data
}

func TestBuildProposal_Validation(t *testing.T) {
	cat := DefaultCatalog()
	rooms, _ := BuildRooms(cat, ModePartner, []RoomInput{{Name: "A", Distance: 2}})

	tests := []struct {
		name   string
		client string
		mode   Mode
		rooms  []Room
		want   error
	}{
		{"blank client", "   ", ModePartner, rooms, ErrMissingClient},
		{"no rooms", "Acme", ModePartner, nil, ErrNoRooms},
		{"bad mode", "Acme", Mode("x"), rooms, ErrUnknownMode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildProposal(cat, tt.client, tt.mode, tt.rooms, fixedNow, "")
			if !errors.Is(err, tt.want) {
				t.Errorf("BuildProposal() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestBuildProposal_PartnerBOM(t *testing.T) {
	data := buildTestProposal(t, ModePartner, []RoomInput{
		{Name: "Board", Distance: 7.0},
		{Name: "Huddle", Distance: 2.0},
	})

	if data.Client != "Acme Corp" || data.Signatory != DefaultSignatory {
		t.Errorf("client/signatory = %q/%q", data.Client, data.Signatory)
	}
	if data.Date != "14 March 2026" {
		t.Errorf("Date = %q, want 14 March 2026", data.Date)
	}
	if data.Rooms[0].Room.Name != "Huddle" {
		t.Errorf("first room = %q, want Huddle (sorted by distance)", data.Rooms[0].Room.Name)
	}

	huddle := data.Rooms[0]
	if huddle.Classification != "Small Room (2m)" {
		t.Errorf("Classification = %q", huddle.Classification)
	}
	if huddle.Sections[0].Rows[0].Description != "Cisco Room Bar / CS-BAR-T-C-K9" {
		t.Errorf("room bar part code = %q", huddle.Sections[0].Rows[0].Description)
	}

	board := data.Rooms[1]
	titles := []string{
		"1. Data#3 Supply Scope (Cisco Hardware)",
		"2. Alder Technology Supply Scope",
		"3. Managed Services",
	}
	if len(board.Sections) != len(titles) {
		t.Fatalf("Boardroom sections = %d, want %d", len(board.Sections), len(titles))
	}
	for i, title := range titles {
		if board.Sections[i].Title != title {
			t.Errorf("section %d = %q, want %q", i, board.Sections[i].Title, title)
		}
	}
	for _, row := range board.Sections[0].Rows {
		if strings.Contains(row.Description, "Shure") {
			t.Errorf("Shure item %q left in partner scope", row.Description)
		}
		if !row.Partner {
			t.Errorf("partner row %q not flagged", row.Description)
		}
	}

	var moved *BOMRow
	for i, row := range board.Sections[1].Rows {
		if strings.Contains(row.Description, "Shure") {
			moved = &board.Sections[1].Rows[i]
		}
	}
	if moved == nil {
		t.Fatal("Shure item not moved to Alder scope")
	}
	if !moved.Total.IsZero() || moved.Category != "Conf/Audio" {
		t.Errorf("moved Shure row = %+v, want Conf/Audio at $0", moved)
	}
}

func TestBuildProposal_SubtotalMatchesYear1(t *testing.T) {
	for _, mode := range Modes {
		data := buildTestProposal(t, mode, []RoomInput{
			{Name: "A", Distance: 1}, {Name: "B", Distance: 4}, {Name: "C", Distance: 5.2},
			{Name: "D", Distance: 6.1}, {Name: "E", Distance: 7.4},
		})
		for _, r := range data.Rooms {
			if !r.Subtotal().Equal(r.Costs.Year1) {
				t.Errorf("%s %s: subtotal %s != Year1 %s", mode, r.Room.Tier.Name, r.Subtotal(), r.Costs.Year1)
			}
		}
	}
}

func TestBuildProposal_FitOutUpgradeSection(t *testing.T) {
	data := buildTestProposal(t, ModeFitOut, []RoomInput{{Name: "Big", Distance: 7.2}})

	room := data.Rooms[0]
	last := room.Sections[len(room.Sections)-1]
	if !last.Optional || !strings.HasPrefix(last.Title, "3. Optional Upgrade: ") {
		t.Errorf("last section = %+v, want optional upgrade", last.Title)
	}
	if len(room.TextBlocks) != 4 || room.TextBlocks[1].Heading != "Audio Option" {
		t.Errorf("98 text blocks = %d", len(room.TextBlocks))
	}
	if room.Sections[0].Title != "1. Hardware & Services Scope" {
		t.Errorf("first section = %q", room.Sections[0].Title)
	}
}

func TestCiscoPartCode(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Cisco Room Bar Pro", "Cisco Room Bar Pro / CS-BARPRO-K9"},
		{"Cisco Room Bar", "Cisco Room Bar / CS-BAR-T-C-K9"},
		{"Cisco Ceiling Microphone Pro", "Cisco Ceiling Microphone Pro / CS-MIC-CLGPRO="},
		{"Wire Hanging Kit", "Wire Hanging Kit / CS-MIC-CLGP-WHK="},
		{"Cisco Quad Camera", "Cisco Quad Camera"},
	}
	for _, tt := range tests {
		if got := CiscoPartCode(tt.in); got != tt.want {
			t.Errorf("CiscoPartCode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFitOutTextBlocks_Default(t *testing.T) {
	blocks := FitOutTextBlocks("Custom Package")
	if len(blocks) != 2 || blocks[0].Body != "Standard fit-out solution as per Bill of Materials." {
		t.Errorf("default blocks = %+v", blocks)
	}
	if got := FitOutTextBlocks("Fit-Out 65"); !strings.Contains(got[0].Body, "4.5m") {
		t.Errorf("65 block = %q", got[0].Body)
	}
}

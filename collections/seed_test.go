package collections_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"avquoter/collections"
	"avquoter/services"
	"avquoter/testhelpers"
)

func TestSeedTiers_CreatesDefaultCatalog(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.SeedTiers(app); err != nil {
		t.Fatalf("SeedTiers() error: %v", err)
	}

	col, _ := app.FindCollectionByNameOrId(collections.PricingTiers)
	records, err := app.FindAllRecords(col)
	if err != nil {
		t.Fatalf("query pricing_tiers error: %v", err)
	}
	if want := len(services.DefaultTiers()); len(records) != want {
		t.Fatalf("expected %d tiers, got %d", want, len(records))
	}
}

func TestSeedTiers_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.SeedTiers(app); err != nil {
		t.Fatalf("first SeedTiers() error: %v", err)
	}
	if err := collections.SeedTiers(app); err != nil {
		t.Fatalf("second SeedTiers() error: %v", err)
	}

	col, _ := app.FindCollectionByNameOrId(collections.PricingTiers)
	records, _ := app.FindAllRecords(col)
	if want := len(services.DefaultTiers()); len(records) != want {
		t.Errorf("expected %d tiers after idempotent seed, got %d", want, len(records))
	}
}

func TestLoadCatalog_MatchesDefaults(t *testing.T) {
	app := testhelpers.NewSeededTestApp(t)

	cat, err := collections.LoadCatalog(app)
	if err != nil {
		t.Fatalf("LoadCatalog() error: %v", err)
	}

	want := services.DefaultCatalog()
	for _, mode := range services.Modes {
		got := cat.Tiers(mode)
		exp := want.Tiers(mode)
		if len(got) != len(exp) {
			t.Fatalf("%s: got %d tiers, want %d", mode, len(got), len(exp))
		}
		for i := range exp {
			if got[i].Name != exp[i].Name {
				t.Errorf("%s tier %d name = %q, want %q", mode, i, got[i].Name, exp[i].Name)
			}
			if got[i].MaxDistance != exp[i].MaxDistance {
				t.Errorf("%s max distance = %v, want %v", exp[i].Name, got[i].MaxDistance, exp[i].MaxDistance)
			}
			g, w := services.CalcRoomCosts(got[i]), services.CalcRoomCosts(exp[i])
			if !g.Year1.Equal(w.Year1) {
				t.Errorf("%s Year1 = %s, want %s", exp[i].Name, g.Year1, w.Year1)
			}
		}
	}
}

func TestLoadCatalog_RestoresListsAndUpgrade(t *testing.T) {
	app := testhelpers.NewSeededTestApp(t)

	cat, err := collections.LoadCatalog(app)
	if err != nil {
		t.Fatalf("LoadCatalog() error: %v", err)
	}

	board, err := cat.Tier("Boardroom", services.ModePartner)
	if err != nil {
		t.Fatalf("Tier(Boardroom) error: %v", err)
	}
	if len(board.VCItems) != 5 || board.VCItems[4] != "6-8x Shure Ceiling Speakers" {
		t.Errorf("Boardroom VC items = %v", board.VCItems)
	}

	fit98, err := cat.Tier("Fit-Out 98", services.ModeFitOut)
	if err != nil {
		t.Fatalf("Tier(Fit-Out 98) error: %v", err)
	}
	if fit98.AudioUpgrade == nil {
		t.Fatal("Fit-Out 98 lost its audio upgrade")
	}
	if !fit98.AudioUpgrade.UnitPrice.Equal(decimal.NewFromInt(15860)) {
		t.Errorf("audio upgrade price = %s, want 15860", fit98.AudioUpgrade.UnitPrice)
	}

	fit55, _ := cat.Tier("Fit-Out 55", services.ModeFitOut)
	if fit55.AudioUpgrade != nil {
		t.Error("Fit-Out 55 should not carry an audio upgrade")
	}
}

func TestLoadCatalog_Empty(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	_, err := collections.LoadCatalog(app)
	if !errors.Is(err, services.ErrEmptyCatalog) {
		t.Errorf("LoadCatalog() error = %v, want ErrEmptyCatalog", err)
	}
}

func TestLoadCatalog_BookingPanelOption(t *testing.T) {
	app := testhelpers.NewSeededTestApp(t)

	cat, err := collections.LoadCatalog(app, services.WithBookingPanelPrice(decimal.NewFromInt(1800)))
	if err != nil {
		t.Fatalf("LoadCatalog() error: %v", err)
	}
	if !cat.BookingPanelPrice().Equal(decimal.NewFromInt(1800)) {
		t.Errorf("BookingPanelPrice() = %s, want 1800", cat.BookingPanelPrice())
	}
}

func TestReplaceTiers(t *testing.T) {
	app := testhelpers.NewSeededTestApp(t)

	custom, err := services.NewCatalog([]services.Tier{
		{
			Name: "Huddle", Mode: services.ModePartner, MaxDistance: 2.5,
			VCItems:      []string{"Cisco Room Bar"},
			DisplayPrice: decimal.NewFromInt(1000),
			Extras: []services.LineItem{
				{Category: "Hardware", Description: "Cable Cubby", UnitPrice: decimal.NewFromInt(120), Qty: 2},
			},
		},
		{
			Name: "Fit-Out 65 Dual", Mode: services.ModeFitOut, MaxDistance: 4.5,
			VCModel: "Maxhub XBAR W70", VCPrice: decimal.NewFromInt(3900),
			DisplayPrice: decimal.NewFromInt(2100), DisplayQty: 2,
		},
	})
	if err != nil {
		t.Fatalf("NewCatalog() error: %v", err)
	}

	if err := collections.ReplaceTiers(app, custom); err != nil {
		t.Fatalf("ReplaceTiers() error: %v", err)
	}

	col, _ := app.FindCollectionByNameOrId(collections.PricingTiers)
	records, _ := app.FindAllRecords(col)
	if len(records) != 2 {
		t.Fatalf("expected 2 tiers after replace, got %d", len(records))
	}

	cat, err := collections.LoadCatalog(app)
	if err != nil {
		t.Fatalf("LoadCatalog() error: %v", err)
	}
	huddle, err := cat.Resolve(2, services.ModePartner)
	if err != nil {
		t.Fatalf("Resolve(2) error: %v", err)
	}
	if huddle.Name != "Huddle" {
		t.Errorf("Resolve(2) = %q, want Huddle", huddle.Name)
	}
	if len(huddle.Extras) != 1 || huddle.Extras[0].Qty != 2 || huddle.Extras[0].Description != "Cable Cubby" {
		t.Errorf("Huddle extras = %+v", huddle.Extras)
	}

	dual, _ := cat.Tier("Fit-Out 65 Dual", services.ModeFitOut)
	if dual.DisplayQty != 2 {
		t.Errorf("DisplayQty = %d, want 2", dual.DisplayQty)
	}
	if _, err := cat.Tier("Boardroom", services.ModePartner); err == nil {
		t.Error("Boardroom should be gone after replace")
	}
}

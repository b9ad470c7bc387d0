package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/xuri/excelize/v2"

	"avquoter/collections"
	"avquoter/services"
	"avquoter/testhelpers"
)

func TestHandleTierOptions(t *testing.T) {
	app := testhelpers.NewSeededTestApp(t)
	handler := HandleTierOptions(app, testConfig(t))

	tests := []struct {
		name      string
		query     string
		wantMode  services.Mode
		wantFirst string
		wantMax   float64
	}{
		{"default mode", "", services.ModePartner, "Small Room (0m - 3m)", 7.5},
		{"fit-out", "?mode=fitout", services.ModeFitOut, "Fit-Out 55 (0m - 3m)", 7.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/tiers"+tt.query, nil)
			rec := httptest.NewRecorder()

			if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", rec.Code)
			}

			var resp tierOptionsResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if resp.Mode != tt.wantMode {
				t.Errorf("mode = %q, want %q", resp.Mode, tt.wantMode)
			}
			if len(resp.Options) != 5 || resp.Options[0].Label != tt.wantFirst {
				t.Errorf("options = %+v", resp.Options)
			}
			if resp.MaxDistance != tt.wantMax {
				t.Errorf("max_distance = %v, want %v", resp.MaxDistance, tt.wantMax)
			}
		})
	}
}

func TestHandleTierOptions_Errors(t *testing.T) {
	t.Run("unknown mode", func(t *testing.T) {
		app := testhelpers.NewSeededTestApp(t)
		req := httptest.NewRequest(http.MethodGet, "/api/tiers?mode=hybrid", nil)
		rec := httptest.NewRecorder()

		if err := HandleTierOptions(app, testConfig(t))(newTestRequestEvent(app, req, rec)); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rec.Code)
		}
	})

	t.Run("empty catalog", func(t *testing.T) {
		app := testhelpers.NewTestApp(t)
		req := httptest.NewRequest(http.MethodGet, "/api/tiers", nil)
		rec := httptest.NewRecorder()

		if err := HandleTierOptions(app, testConfig(t))(newTestRequestEvent(app, req, rec)); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("expected status 503, got %d", rec.Code)
		}
	})
}

func TestHandlePricelistTemplate(t *testing.T) {
	for _, seeded := range []bool{true, false} {
		name := "stored tiers"
		if !seeded {
			name = "built-in fallback"
		}
		t.Run(name, func(t *testing.T) {
			app := testhelpers.NewTestApp(t)
			if seeded {
				if err := collections.SeedTiers(app); err != nil {
					t.Fatalf("SeedTiers() error = %v", err)
				}
			}
			req := httptest.NewRequest(http.MethodGet, "/pricelist/template", nil)
			rec := httptest.NewRecorder()

			if err := HandlePricelistTemplate(app, testConfig(t))(newTestRequestEvent(app, req, rec)); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", rec.Code)
			}
			if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="master_pricelist.xlsx"` {
				t.Errorf("Content-Disposition = %q", cd)
			}

			cat, err := services.LoadPricelist(bytes.NewReader(rec.Body.Bytes()))
			if err != nil {
				t.Fatalf("downloaded template does not load: %v", err)
			}
			if got, want := len(cat.All()), len(services.DefaultTiers()); got != want {
				t.Errorf("template has %d tiers, want %d", got, want)
			}
		})
	}
}

func TestHandlePricelistUpload_ReplacesTiers(t *testing.T) {
	app := testhelpers.NewSeededTestApp(t)

	tiers := services.DefaultTiers()[:2]
	tiers[0].ManagedServiceAnnual = tiers[0].ManagedServiceAnnual.Add(tiers[0].ManagedServiceAnnual)
	custom, err := services.NewCatalog(tiers)
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	content, err := services.GeneratePricelistTemplate(custom)
	if err != nil {
		t.Fatalf("GeneratePricelistTemplate() error = %v", err)
	}

	req := multipartRequest(t, "/pricelist", "pricelist", "master_pricelist.xlsx", content)
	rec := httptest.NewRecorder()

	if err := HandlePricelistUpload(app, testConfig(t))(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	testhelpers.AssertHXRedirect(t, rec.Header().Get("HX-Redirect"), "/")
	if typ, msg := toastOf(t, rec); typ != "success" || msg != "Loaded 2 tiers from master_pricelist.xlsx" {
		t.Errorf("toast = (%q, %q)", typ, msg)
	}

	stored, err := collections.LoadCatalog(app)
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}
	if len(stored.All()) != 2 {
		t.Fatalf("stored %d tiers, want 2", len(stored.All()))
	}
	small, err := stored.Tier(tiers[0].Name, tiers[0].Mode)
	if err != nil {
		t.Fatalf("Tier(%q) error = %v", tiers[0].Name, err)
	}
	if !small.ManagedServiceAnnual.Equal(tiers[0].ManagedServiceAnnual) {
		t.Errorf("managed service = %s, want %s", small.ManagedServiceAnnual, tiers[0].ManagedServiceAnnual)
	}
}

func TestHandlePricelistUpload_Rejected(t *testing.T) {
	app := testhelpers.NewSeededTestApp(t)

	blank := excelize.NewFile()
	var buf bytes.Buffer
	if err := blank.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	blank.Close()

	req := multipartRequest(t, "/pricelist", "pricelist", "empty.xlsx", buf.Bytes())
	rec := httptest.NewRecorder()

	if err := HandlePricelistUpload(app, testConfig(t))(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected status 422, got %d", rec.Code)
	}

	n, _ := app.CountRecords(collections.PricingTiers)
	if int(n) != len(services.DefaultTiers()) {
		t.Errorf("stored tiers = %d, want the seeded %d kept", n, len(services.DefaultTiers()))
	}
}

// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"avquoter/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// NewSeededTestApp is NewTestApp with the default tier catalog stored.
func NewSeededTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	app := NewTestApp(t)
	if err := collections.SeedTiers(app); err != nil {
		t.Fatalf("failed to seed tiers: %v", err)
	}
	return app
}

// CreateTestProposal creates a proposal record for client in mode and returns it.
func CreateTestProposal(t *testing.T, app *pocketbase.PocketBase, client, mode string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId(collections.Proposals)
	if err != nil {
		t.Fatalf("failed to find proposals collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("client", client)
	record.Set("mode", mode)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test proposal: %v", err)
	}

	return record
}

// AddTestRoom adds a room to a proposal. An empty pkg leaves the tier to be
// resolved from distance.
func AddTestRoom(t *testing.T, app *pocketbase.PocketBase, proposalID, name string, distance float64, pkg string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId(collections.ProposalRooms)
	if err != nil {
		t.Fatalf("failed to find proposal_rooms collection: %v", err)
	}

	existing, _ := app.FindRecordsByFilter(col, "proposal = {:id}", "", 0, 0, map[string]any{"id": proposalID})

	record := core.NewRecord(col)
	record.Set("proposal", proposalID)
	record.Set("sort_order", len(existing)+1)
	record.Set("name", name)
	record.Set("distance", distance)
	record.Set("package", pkg)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test room: %v", err)
	}

	return record
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

// AssertHXRedirect checks that the response has an HX-Redirect header with the expected URL.
func AssertHXRedirect(t *testing.T, headerVal, expectedURL string) {
	t.Helper()

	if headerVal != expectedURL {
		t.Errorf("expected HX-Redirect %q, got %q", expectedURL, headerVal)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

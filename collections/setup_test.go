package collections_test

import (
	"testing"

	"github.com/pocketbase/pocketbase/core"

	"avquoter/collections"
	"avquoter/testhelpers"
)

// expectedCollections is the full list of collections that Setup() must create.
var expectedCollections = []string{
	collections.PricingTiers,
	collections.Proposals,
	collections.ProposalRooms,
}

func TestSetup_AllCollectionsExist(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q not found after Setup(): %v", name, err)
			continue
		}
		if col.Name != name {
			t.Errorf("expected collection name %q, got %q", name, col.Name)
		}
	}
}

func TestSetup_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t) // Setup() already called once via NewTestApp

	ids := make(map[string]string)
	for _, name := range expectedCollections {
		col, _ := app.FindCollectionByNameOrId(name)
		ids[name] = col.Id
	}

	collections.Setup(app)

	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q missing after second Setup(): %v", name, err)
			continue
		}
		if col.Id != ids[name] {
			t.Errorf("collection %q id changed after second Setup(): %s -> %s", name, ids[name], col.Id)
		}
	}
}

func TestSetup_PricingTiersFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, err := app.FindCollectionByNameOrId(collections.PricingTiers)
	if err != nil {
		t.Fatalf("pricing_tiers not found: %v", err)
	}

	fields := []string{
		"name", "mode", "max_distance", "sort_order",
		"vc_items", "vc_model", "vc_price",
		"display_model", "display_price", "display_qty",
		"mount_model", "mount_price", "cabling_desc", "cabling_price",
		"service_price", "ms_annual", "extras", "has_audio_upgrade",
	}
	for _, name := range fields {
		if col.Fields.GetByName(name) == nil {
			t.Errorf("pricing_tiers missing field %q", name)
		}
	}

	mode, ok := col.Fields.GetByName("mode").(*core.SelectField)
	if !ok {
		t.Fatalf("mode field is %T, want *core.SelectField", col.Fields.GetByName("mode"))
	}
	if len(mode.Values) != 2 || mode.Values[0] != "partner" || mode.Values[1] != "fitout" {
		t.Errorf("mode values = %v, want [partner fitout]", mode.Values)
	}
}

func TestSetup_ProposalRoomsRelation(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proposals, _ := app.FindCollectionByNameOrId(collections.Proposals)
	rooms, err := app.FindCollectionByNameOrId(collections.ProposalRooms)
	if err != nil {
		t.Fatalf("proposal_rooms not found: %v", err)
	}

	rel, ok := rooms.Fields.GetByName("proposal").(*core.RelationField)
	if !ok {
		t.Fatalf("proposal field is %T, want *core.RelationField", rooms.Fields.GetByName("proposal"))
	}
	if rel.CollectionId != proposals.Id {
		t.Errorf("proposal relation points at %q, want %q", rel.CollectionId, proposals.Id)
	}
	if !rel.CascadeDelete {
		t.Error("proposal relation should cascade delete")
	}
}

func TestSetup_CascadeDeleteRooms(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	proposal := testhelpers.CreateTestProposal(t, app, "Cascade Co", "partner")
	room := testhelpers.AddTestRoom(t, app, proposal.Id, "Huddle", 2.5, "")

	if err := app.Delete(proposal); err != nil {
		t.Fatalf("failed to delete proposal: %v", err)
	}

	if _, err := app.FindRecordById(collections.ProposalRooms, room.Id); err == nil {
		t.Error("proposal room should have been cascade-deleted")
	}
}

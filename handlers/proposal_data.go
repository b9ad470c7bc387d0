package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"

	"avquoter/collections"
	"avquoter/config"
	"avquoter/services"
)

// errProposalNotFound marks a missing proposal record so handlers can answer 404.
var errProposalNotFound = errors.New("proposal not found")

// loadCatalog builds the catalog from the stored tiers with the configured
// booking panel price.
func loadCatalog(app *pocketbase.PocketBase, cfg config.Config) (*services.Catalog, error) {
	return collections.LoadCatalog(app, services.WithBookingPanelPrice(decimal.NewFromFloat(cfg.BookingPanelPrice)))
}

// draftRoom is one stored room with its resolution result.
type draftRoom struct {
	ID    string
	Input services.RoomInput
	Room  services.Room
	Err   error
}

// draft is a stored proposal with every room resolved against the catalog.
type draft struct {
	Record *core.Record
	Mode   services.Mode
	Rooms  []draftRoom
}

// valid returns the rooms that resolved to a tier.
func (d draft) valid() []services.Room {
	var list services.RoomList
	for _, r := range d.Rooms {
		if r.Err == nil {
			list.Add(r.Room)
		}
	}
	return list.Rooms()
}

// loadDraft fetches a proposal and its rooms. Rooms are resolved one at a
// time so a failure is reported against the row it belongs to. The result
// is ordered by ascending distance, matching the generated documents.
func loadDraft(app *pocketbase.PocketBase, cat *services.Catalog, proposalID string) (draft, error) {
	record, err := app.FindRecordById(collections.Proposals, proposalID)
	if errors.Is(err, sql.ErrNoRows) {
		return draft{}, fmt.Errorf("%w: %s", errProposalNotFound, proposalID)
	}
	if err != nil {
		return draft{}, fmt.Errorf("load proposal %s: %w", proposalID, err)
	}
	mode, err := services.ParseMode(record.GetString("mode"))
	if err != nil {
		return draft{}, err
	}

	roomRecords, err := app.FindRecordsByFilter(
		collections.ProposalRooms,
		"proposal = {:id}",
		"sort_order", 0, 0,
		map[string]any{"id": proposalID},
	)
	if err != nil {
		return draft{}, fmt.Errorf("load rooms of %s: %w", proposalID, err)
	}

	d := draft{Record: record, Mode: mode}
	for _, rr := range roomRecords {
		in := services.RoomInput{
			Name:     rr.GetString("name"),
			Distance: rr.GetFloat("distance"),
			Package:  rr.GetString("package"),
		}
		dr := draftRoom{ID: rr.Id, Input: in}
		rooms, errs := services.BuildRooms(cat, mode, []services.RoomInput{in})
		if len(errs) > 0 {
			dr.Err = errs[0]
		} else {
			dr.Room = rooms[0]
		}
		d.Rooms = append(d.Rooms, dr)
	}
	sort.SliceStable(d.Rooms, func(i, j int) bool {
		return d.Rooms[i].Input.Distance < d.Rooms[j].Input.Distance
	})
	return d, nil
}

// buildProposalData assembles the document model for a stored proposal.
func buildProposalData(app *pocketbase.PocketBase, cfg config.Config, proposalID string, now time.Time) (services.ProposalData, error) {
	cat, err := loadCatalog(app, cfg)
	if err != nil {
		return services.ProposalData{}, err
	}
	d, err := loadDraft(app, cat, proposalID)
	if err != nil {
		return services.ProposalData{}, err
	}
	signatory := d.Record.GetString("signatory")
	if signatory == "" {
		signatory = cfg.Signatory
	}
	return services.BuildProposal(cat, d.Record.GetString("client"), d.Mode, d.valid(), now, signatory)
}

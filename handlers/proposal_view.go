package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"avquoter/config"
	"avquoter/services"
	"avquoter/templates"
)

// buildViewData assembles the room builder page for a stored proposal.
func buildViewData(app *pocketbase.PocketBase, cfg config.Config, proposalID string) (templates.ProposalViewData, error) {
	cat, err := loadCatalog(app, cfg)
	if err != nil {
		return templates.ProposalViewData{}, err
	}
	d, err := loadDraft(app, cat, proposalID)
	if err != nil {
		return templates.ProposalViewData{}, err
	}

	data := templates.ProposalViewData{
		ID:         d.Record.Id,
		Client:     d.Record.GetString("client"),
		Mode:       string(d.Mode),
		ModeLabel:  d.Mode.Label(),
		Signatory:  d.Record.GetString("signatory"),
		LastOutput: d.Record.GetString("last_output"),
		Status:     fmt.Sprintf("Total Rooms: %d", len(d.Rooms)),
		Errors:     make(map[string]string),
	}
	for _, opt := range cat.Options(d.Mode) {
		data.Packages = append(data.Packages, templates.PackageOption{Name: opt.Name, Label: opt.Label})
	}

	for _, r := range d.Rooms {
		row := templates.RoomRow{
			ID:       r.ID,
			Name:     r.Input.Name,
			Distance: strconv.FormatFloat(r.Input.Distance, 'f', -1, 64) + "m",
		}
		if r.Err != nil {
			row.Error = services.UserMessage(r.Err)
		} else {
			costs := services.CalcRoomCosts(r.Room.Tier)
			row.Classification = fmt.Sprintf("%s (%sm)", r.Room.Tier.Name, strconv.FormatFloat(r.Room.Distance, 'f', -1, 64))
			row.Upfront = services.FormatMoney(costs.Upfront)
			row.ManagedService = services.FormatMoney(costs.ManagedService)
			row.Year1 = services.FormatMoney(costs.Year1)
		}
		data.Rooms = append(data.Rooms, row)
	}

	totals := services.CalcProposalTotals(cat, d.valid())
	data.Upfront = services.FormatMoney(totals.TotalUpfront)
	data.Managed = services.FormatMoney(totals.TotalManagedService)
	data.GrandTotal = services.FormatMoney(totals.GrandTotal)
	for _, a := range totals.AddOns {
		data.AddOns = append(data.AddOns, templates.AddOnRow{
			Item:        a.Item,
			Description: a.Description,
			UnitPrice:   services.FormatMoney(a.UnitPrice),
			Qty:         a.Qty,
			Total:       services.FormatMoney(a.Total),
		})
	}
	return data, nil
}

// HandleProposalView renders the room builder for one proposal.
func HandleProposalView(app *pocketbase.PocketBase, cfg config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		data, err := buildViewData(app, cfg, id)
		if err != nil {
			return viewError(e, err)
		}
		component := templates.ProposalViewPage(data, GetNavData(e.Request))
		return component.Render(e.Request.Context(), e.Response)
	}
}

// viewError maps a load failure to a response.
func viewError(e *core.RequestEvent, err error) error {
	if errors.Is(err, errProposalNotFound) {
		return e.String(http.StatusNotFound, "Proposal not found")
	}
	loggerFor(e).Error().Err(err).Msg("proposal: could not load")
	return ErrorToast(e, http.StatusInternalServerError, services.UserMessage(err))
}

package handlers

import (
	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"avquoter/collections"
	"avquoter/config"
	"avquoter/services"
	"avquoter/templates"
)

func modeOptions(selected string) []templates.ModeOption {
	opts := make([]templates.ModeOption, 0, len(services.Modes))
	for _, m := range services.Modes {
		opts = append(opts, templates.ModeOption{
			Value:    string(m),
			Label:    m.Label(),
			Selected: string(m) == selected,
		})
	}
	return opts
}

// HandleProposalList renders the home page: the create form and every draft.
func HandleProposalList(app *pocketbase.PocketBase, cfg config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data := templates.ProposalListData{
			Modes:     modeOptions(string(services.ModePartner)),
			Signatory: cfg.Signatory,
			Errors:    make(map[string]string),
		}
		data.Proposals = listProposals(app, e)

		component := templates.ProposalListPage(data, GetNavData(e.Request))
		return component.Render(e.Request.Context(), e.Response)
	}
}

func listProposals(app *pocketbase.PocketBase, e *core.RequestEvent) []templates.ProposalSummary {
	records, err := app.FindRecordsByFilter(collections.Proposals, "id != ''", "-created", 0, 0)
	if err != nil {
		loggerFor(e).Error().Err(err).Msg("proposal_list: could not query proposals")
		return nil
	}

	summaries := make([]templates.ProposalSummary, 0, len(records))
	for _, rec := range records {
		rooms, _ := app.CountRecords(collections.ProposalRooms, dbx.HashExp{"proposal": rec.Id})
		created := ""
		if dt := rec.GetDateTime("created"); !dt.IsZero() {
			created = dt.Time().Format("2 January 2006")
		}
		summaries = append(summaries, templates.ProposalSummary{
			ID:        rec.Id,
			Client:    rec.GetString("client"),
			ModeLabel: services.Mode(rec.GetString("mode")).Label(),
			Created:   created,
			Rooms:     int(rooms),
		})
	}
	return summaries
}

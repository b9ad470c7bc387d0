package handlers

import (
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"avquoter/collections"
	"avquoter/config"
	"avquoter/services"
	"avquoter/templates"
)

// HandleProposalSave creates a draft proposal from the home page form.
func HandleProposalSave(app *pocketbase.PocketBase, cfg config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}
		logger := loggerFor(e)

		req := services.CreateProposalRequest{
			Client:    strings.TrimSpace(e.Request.FormValue("client")),
			Mode:      strings.TrimSpace(e.Request.FormValue("mode")),
			Signatory: strings.TrimSpace(e.Request.FormValue("signatory")),
		}
		// Accept the display label as well as the key.
		if m, err := services.ParseMode(req.Mode); err == nil {
			req.Mode = string(m)
		}

		if errs := services.FieldErrors(req.Validate()); len(errs) > 0 {
			SetToast(e, ToastWarning, "Please fix the errors below")
			data := templates.ProposalListData{
				Proposals: listProposals(app, e),
				Modes:     modeOptions(req.Mode),
				Client:    req.Client,
				Signatory: req.Signatory,
				Errors:    errs,
			}
			component := templates.ProposalListPage(data, GetNavData(e.Request))
			return component.Render(e.Request.Context(), e.Response)
		}

		col, err := app.FindCollectionByNameOrId(collections.Proposals)
		if err != nil {
			logger.Error().Err(err).Msg("proposal_create: could not find proposals collection")
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		signatory := req.Signatory
		if signatory == "" {
			signatory = cfg.Signatory
		}

		record := core.NewRecord(col)
		record.Set("client", req.Client)
		record.Set("mode", req.Mode)
		record.Set("signatory", signatory)

		if err := app.Save(record); err != nil {
			logger.Error().Err(err).Msg("proposal_create: could not save proposal")
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		logger.Info().Str("proposal", record.Id).Str("client", req.Client).Str("mode", req.Mode).Msg("proposal created")

		SetToast(e, ToastSuccess, "Proposal created")
		return redirect(e, "/proposals/"+record.Id)
	}
}

// redirect sends HTMX requests an HX-Redirect and everything else a 302.
func redirect(e *core.RequestEvent, url string) error {
	if e.Request.Header.Get("HX-Request") == "true" {
		e.Response.Header().Set("HX-Redirect", url)
		return e.String(http.StatusOK, "")
	}
	return e.Redirect(http.StatusFound, url)
}

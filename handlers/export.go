package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"avquoter/collections"
	"avquoter/config"
	"avquoter/services"
)

// exportFormat describes one downloadable document type.
type exportFormat struct {
	contentType string
	generate    func(services.ProposalData) ([]byte, error)
}

var exportFormats = map[string]exportFormat{
	"docx": {"application/vnd.openxmlformats-officedocument.wordprocessingml.document", services.GenerateDOCX},
	"pdf":  {"application/pdf", services.GeneratePDF},
	"xlsx": {"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", services.GenerateBOMExcel},
}

// now is swapped in tests.
var now = time.Now

// proposalError answers a failed document build. Input problems are the
// salesperson's to fix and get a 422 with the status-line text.
func proposalError(e *core.RequestEvent, err error) error {
	switch {
	case errors.Is(err, errProposalNotFound):
		return e.String(http.StatusNotFound, "Proposal not found")
	case errors.Is(err, services.ErrNoRooms), errors.Is(err, services.ErrMissingClient),
		errors.Is(err, services.ErrUnknownMode), errors.Is(err, services.ErrEmptyCatalog):
		return ErrorToast(e, http.StatusUnprocessableEntity, services.UserMessage(err))
	default:
		loggerFor(e).Error().Err(err).Msg("export: failed")
		return ErrorToast(e, http.StatusInternalServerError, services.UserMessage(err))
	}
}

// HandleProposalExport streams the proposal as a .docx, .pdf or .xlsx download.
func HandleProposalExport(app *pocketbase.PocketBase, cfg config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		proposalID := e.Request.PathValue("id")
		ext := e.Request.PathValue("format")
		format, ok := exportFormats[ext]
		if !ok {
			return e.String(http.StatusNotFound, "Unknown export format")
		}

		ts := now()
		data, err := buildProposalData(app, cfg, proposalID, ts)
		if err != nil {
			return proposalError(e, err)
		}

		content, err := format.generate(data)
		if err != nil {
			return proposalError(e, err)
		}

		filename := services.ProposalFilename(data.Client, data.Mode, ts, services.NewFileSuffix(), ext)
		loggerFor(e).Info().
			Str("proposal", proposalID).
			Str("file", filename).
			Str("size", humanize.Bytes(uint64(len(content)))).
			Msg("export generated")

		e.Response.Header().Set("Content-Type", format.contentType)
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		_, err = e.Response.Write(content)
		return err
	}
}

// HandleProposalGenerate writes the Word proposal into the configured output
// directory and reports where it went.
func HandleProposalGenerate(app *pocketbase.PocketBase, cfg config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		logger := loggerFor(e)
		proposalID := e.Request.PathValue("id")

		ts := now()
		data, err := buildProposalData(app, cfg, proposalID, ts)
		if err != nil {
			return proposalError(e, err)
		}

		content, err := services.GenerateDOCX(data)
		if err != nil {
			return proposalError(e, err)
		}

		path, err := services.SaveProposal(cfg.OutputDir, services.ProposalFilename(data.Client, data.Mode, ts, services.NewFileSuffix(), "docx"), content)
		if err != nil {
			logger.Error().Err(err).Str("dir", cfg.OutputDir).Msg("generate: could not save")
			return ErrorToast(e, http.StatusInternalServerError, services.UserMessage(err))
		}

		if record, err := app.FindRecordById(collections.Proposals, proposalID); err == nil {
			record.Set("last_output", path)
			if err := app.Save(record); err != nil {
				logger.Warn().Err(err).Msg("generate: could not record output path")
			}
		}
		logger.Info().Str("proposal", proposalID).Str("path", path).
			Str("total", services.FormatWholeMoney(data.Totals.GrandTotal)).
			Msg("proposal saved")

		SetToast(e, ToastSuccess, "Saved: "+path)
		return redirect(e, "/proposals/"+proposalID)
	}
}

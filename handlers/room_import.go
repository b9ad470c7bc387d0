package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"avquoter/config"
	"avquoter/services"
)

// HandleRoomImport adds every room of an uploaded .csv or .xlsx room
// schedule to a proposal. Rows that cannot be priced are skipped and listed
// in the toast.
// Route: POST /proposals/{id}/rooms/import
func HandleRoomImport(app *pocketbase.PocketBase, cfg config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		logger := loggerFor(e)
		proposalID := e.Request.PathValue("id")

		if err := e.Request.ParseMultipartForm(10 << 20); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "File too large or invalid form data")
		}
		file, header, err := e.Request.FormFile("schedule")
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Please select a file to upload")
		}
		defer file.Close()

		cat, err := loadCatalog(app, cfg)
		if err != nil {
			return viewError(e, err)
		}
		d, err := loadDraft(app, cat, proposalID)
		if err != nil {
			return viewError(e, err)
		}

		parsed, skipped, err := services.ParseRoomFile(file, header.Filename)
		if err != nil {
			logger.Warn().Err(err).Str("file", header.Filename).Msg("room_import: rejected")
			return ErrorToast(e, http.StatusUnprocessableEntity, services.UserMessage(err))
		}

		inputs, notes := importInputs(cat, d.Mode, parsed, skipped)
		if len(inputs) == 0 {
			return ErrorToast(e, http.StatusUnprocessableEntity, services.UserMessage(services.ErrNoRooms))
		}
		if err := saveRooms(app, proposalID, inputs); err != nil {
			logger.Error().Err(err).Str("proposal", proposalID).Msg("room_import: could not save rooms")
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		logger.Info().Str("proposal", proposalID).Str("file", header.Filename).
			Int("added", len(inputs)).Int("skipped", len(notes)).Msg("rooms imported")

		msg := fmt.Sprintf("Imported %d rooms from %s", len(inputs), header.Filename)
		if len(notes) > 0 {
			SetToast(e, ToastWarning, msg+". Skipped: "+strings.Join(notes, "; "))
		} else {
			SetToast(e, ToastSuccess, msg)
		}
		return redirect(e, "/proposals/"+proposalID)
	}
}

// importInputs keeps the schedule rows that price under mode. Package rows
// without a distance sit at their tier's ceiling.
func importInputs(cat *services.Catalog, mode services.Mode, parsed []services.RoomInput, skipped []services.SkippedLine) ([]services.RoomInput, []string) {
	var notes []string
	for _, s := range skipped {
		notes = append(notes, fmt.Sprintf("row %d (%s)", s.Line, s.Reason))
	}

	var inputs []services.RoomInput
	for _, in := range parsed {
		if in.Package != "" {
			tier, err := cat.Tier(in.Package, mode)
			if err != nil {
				notes = append(notes, fmt.Sprintf("%s (unknown package %q)", in.Name, in.Package))
				continue
			}
			in.Package = tier.Name
			if in.Distance == 0 {
				in.Distance = tier.MaxDistance
			}
			inputs = append(inputs, in)
			continue
		}

		if _, err := cat.Resolve(in.Distance, mode); err != nil {
			reason := "invalid distance"
			if errors.Is(err, services.ErrNoTier) {
				reason = "too far for any tier"
			}
			notes = append(notes, fmt.Sprintf("%s (%s)", in.Name, reason))
			continue
		}
		inputs = append(inputs, in)
	}
	return inputs, notes
}

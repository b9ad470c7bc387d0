package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cast"

	"avquoter/collections"
	"avquoter/config"
	"avquoter/services"
	"avquoter/templates"
)

// HandleRoomAdd adds rooms to a proposal, either one from the name,
// distance and package fields or a batch from pasted "Name, Distance" lines.
func HandleRoomAdd(app *pocketbase.PocketBase, cfg config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		logger := loggerFor(e)
		proposalID := e.Request.PathValue("id")

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		cat, err := loadCatalog(app, cfg)
		if err != nil {
			return viewError(e, err)
		}
		d, err := loadDraft(app, cat, proposalID)
		if err != nil {
			return viewError(e, err)
		}

		req := services.AddRoomRequest{
			Name:    strings.TrimSpace(e.Request.FormValue("name")),
			Package: strings.TrimSpace(e.Request.FormValue("package")),
			Lines:   e.Request.FormValue("lines"),
		}
		errs := make(map[string]string)
		if raw := strings.TrimSpace(e.Request.FormValue("distance")); raw != "" {
			dist, err := cast.ToFloat64E(strings.TrimSuffix(strings.ToLower(raw), "m"))
			if err != nil {
				errs["distance"] = "Distance must be a number of metres"
			} else {
				req.Distance = &dist
			}
		}
		for field, msg := range services.FieldErrors(req.Validate()) {
			if _, ok := errs[field]; !ok {
				errs[field] = msg
			}
		}

		var inputs []services.RoomInput
		var notes []string
		if len(errs) == 0 {
			if strings.TrimSpace(req.Lines) != "" {
				inputs, notes = bulkInputs(cat, d.Mode, req.Lines)
				if len(inputs) == 0 {
					errs["lines"] = services.UserMessage(services.ErrNoRooms)
				}
			} else {
				in, field, err := singleInput(cat, d.Mode, req)
				if err != nil {
					errs[field] = services.UserMessage(err)
				} else {
					inputs = append(inputs, in)
				}
			}
		}

		if len(errs) > 0 {
			data, err := buildViewData(app, cfg, proposalID)
			if err != nil {
				return viewError(e, err)
			}
			data.Errors = errs
			data.Status = firstError(errs)
			SetToast(e, ToastWarning, data.Status)
			component := templates.ProposalViewPage(data, GetNavData(e.Request))
			return component.Render(e.Request.Context(), e.Response)
		}

		if err := saveRooms(app, proposalID, inputs); err != nil {
			logger.Error().Err(err).Str("proposal", proposalID).Msg("room_add: could not save rooms")
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		logger.Info().Str("proposal", proposalID).Int("added", len(inputs)).Int("skipped", len(notes)).Msg("rooms added")

		msg := "Room Added Successfully"
		if len(inputs) > 1 || len(notes) > 0 {
			msg = fmt.Sprintf("Added %d rooms", len(inputs))
		}
		if len(notes) > 0 {
			SetToast(e, ToastWarning, msg+". Skipped: "+strings.Join(notes, "; "))
		} else {
			SetToast(e, ToastSuccess, msg)
		}
		return redirect(e, "/proposals/"+proposalID)
	}
}

// singleInput resolves the one-room form. It returns the form field to
// blame when the room cannot be priced.
func singleInput(cat *services.Catalog, mode services.Mode, req services.AddRoomRequest) (services.RoomInput, string, error) {
	in := services.RoomInput{Name: req.Name, Package: req.Package}
	if req.Package != "" {
		tier, err := cat.Tier(req.Package, mode)
		if err != nil {
			return in, "package", err
		}
		in.Package = tier.Name
		if in.Name == "" {
			in.Name = tier.Name
		}
		in.Distance = tier.MaxDistance
		if req.Distance != nil {
			in.Distance = *req.Distance
		}
		return in, "", nil
	}

	in.Distance = *req.Distance
	if _, err := cat.Resolve(in.Distance, mode); err != nil {
		return in, "distance", err
	}
	return in, "", nil
}

// bulkInputs parses pasted lines, dropping lines that do not parse or whose
// distance is beyond every tier. Each dropped line gets a short note.
func bulkInputs(cat *services.Catalog, mode services.Mode, text string) ([]services.RoomInput, []string) {
	parsed, skipped := services.ParseRoomLines(text)

	var notes []string
	for _, s := range skipped {
		notes = append(notes, fmt.Sprintf("line %d (%s)", s.Line, s.Reason))
	}

	_, roomErrs := services.BuildRooms(cat, mode, parsed)
	rejected := make(map[string]bool, len(roomErrs))
	for _, re := range roomErrs {
		rejected[roomKey(re.Input)] = true
		reason := "invalid distance"
		if errors.Is(re.Err, services.ErrNoTier) {
			reason = "too far for any tier"
		}
		notes = append(notes, fmt.Sprintf("%s (%s)", re.Input.Name, reason))
	}

	inputs := make([]services.RoomInput, 0, len(parsed))
	for i, in := range parsed {
		if rejected[roomKey(in)] {
			continue
		}
		if strings.TrimSpace(in.Name) == "" {
			in.Name = fmt.Sprintf("Room %d", i+1)
		}
		inputs = append(inputs, in)
	}
	return inputs, notes
}

func roomKey(in services.RoomInput) string {
	return fmt.Sprintf("%s|%v", in.Name, in.Distance)
}

// saveRooms appends inputs after the proposal's existing rooms.
func saveRooms(app *pocketbase.PocketBase, proposalID string, inputs []services.RoomInput) error {
	col, err := app.FindCollectionByNameOrId(collections.ProposalRooms)
	if err != nil {
		return err
	}
	existing, err := app.CountRecords(col, dbx.HashExp{"proposal": proposalID})
	if err != nil {
		return err
	}

	return app.RunInTransaction(func(txApp core.App) error {
		for i, in := range inputs {
			r := core.NewRecord(col)
			r.Set("proposal", proposalID)
			r.Set("sort_order", int(existing)+i+1)
			r.Set("name", in.Name)
			r.Set("distance", in.Distance)
			r.Set("package", in.Package)
			if err := txApp.Save(r); err != nil {
				return fmt.Errorf("save room %q: %w", in.Name, err)
			}
		}
		// Bump the proposal so it sorts first in the sidebar.
		p, err := txApp.FindRecordById(collections.Proposals, proposalID)
		if err != nil {
			return err
		}
		return txApp.Save(p)
	})
}

func firstError(errs map[string]string) string {
	for _, field := range []string{"name", "distance", "package", "lines", "form"} {
		if msg, ok := errs[field]; ok {
			return msg
		}
	}
	return "Please fix the errors below"
}

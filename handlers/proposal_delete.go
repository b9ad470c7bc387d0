package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"avquoter/collections"
)

// HandleProposalDelete removes a proposal. Its rooms cascade.
func HandleProposalDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		logger := loggerFor(e)
		proposalID := e.Request.PathValue("id")
		if proposalID == "" {
			return e.String(http.StatusBadRequest, "Missing proposal ID")
		}

		record, err := app.FindRecordById(collections.Proposals, proposalID)
		if err != nil {
			logger.Warn().Err(err).Str("proposal", proposalID).Msg("proposal_delete: not found")
			return e.String(http.StatusNotFound, "Proposal not found")
		}

		if err := app.Delete(record); err != nil {
			logger.Error().Err(err).Str("proposal", proposalID).Msg("proposal_delete: failed")
			return ErrorToast(e, http.StatusInternalServerError, "Failed to delete proposal")
		}
		logger.Info().Str("proposal", proposalID).Msg("proposal deleted")

		SetToast(e, ToastSuccess, "Proposal deleted")
		return redirect(e, "/")
	}
}

// HandleRoomDelete removes one room from a proposal.
func HandleRoomDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		logger := loggerFor(e)
		proposalID := e.Request.PathValue("id")
		roomID := e.Request.PathValue("roomId")

		room, err := app.FindRecordById(collections.ProposalRooms, roomID)
		if err != nil || room.GetString("proposal") != proposalID {
			return e.String(http.StatusNotFound, "Room not found")
		}

		if err := app.Delete(room); err != nil {
			logger.Error().Err(err).Str("room", roomID).Msg("room_delete: failed")
			return ErrorToast(e, http.StatusInternalServerError, "Failed to remove room")
		}

		SetToast(e, ToastSuccess, "Room removed")
		return redirect(e, "/proposals/"+proposalID)
	}
}

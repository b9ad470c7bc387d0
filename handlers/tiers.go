package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"avquoter/config"
	"avquoter/services"
)

// tierOptionsResponse is the JSON body of GET /api/tiers.
type tierOptionsResponse struct {
	Mode        services.Mode         `json:"mode"`
	Label       string                `json:"label"`
	MaxDistance float64               `json:"max_distance"`
	Options     []services.TierOption `json:"options"`
}

// HandleTierOptions lists the tier dropdown entries for ?mode= (default
// partner).
// Route: GET /api/tiers
func HandleTierOptions(app *pocketbase.PocketBase, cfg config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		modeParam := e.Request.URL.Query().Get("mode")
		mode := services.ModePartner
		if modeParam != "" {
			m, err := services.ParseMode(modeParam)
			if err != nil {
				return e.JSON(http.StatusBadRequest, map[string]string{"error": services.UserMessage(err)})
			}
			mode = m
		}

		cat, err := loadCatalog(app, cfg)
		if err != nil {
			return e.JSON(http.StatusServiceUnavailable, map[string]string{"error": services.UserMessage(err)})
		}

		options := cat.Options(mode)
		if options == nil {
			options = []services.TierOption{}
		}
		return e.JSON(http.StatusOK, tierOptionsResponse{
			Mode:        mode,
			Label:       mode.Label(),
			MaxDistance: cat.MaxCeiling(mode),
			Options:     options,
		})
	}
}

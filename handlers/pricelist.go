package handlers

import (
	"fmt"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"

	"avquoter/collections"
	"avquoter/config"
	"avquoter/services"
)

// HandlePricelistTemplate downloads master_pricelist.xlsx filled with the
// stored tiers, ready to edit and upload again.
// Route: GET /pricelist/template
func HandlePricelistTemplate(app *pocketbase.PocketBase, cfg config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		cat, err := loadCatalog(app, cfg)
		if err != nil {
			loggerFor(e).Warn().Err(err).Msg("pricelist_template: falling back to the built-in catalog")
			cat = services.DefaultCatalog()
		}

		xlsxBytes, err := services.GeneratePricelistTemplate(cat)
		if err != nil {
			loggerFor(e).Error().Err(err).Msg("pricelist_template: failed to generate")
			return e.String(http.StatusInternalServerError, "Failed to generate price list")
		}

		e.Response.Header().Set("Content-Type",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="%s"`, services.PricelistFilename))
		_, err = e.Response.Write(xlsxBytes)
		return err
	}
}

// HandlePricelistUpload replaces the stored tiers with an uploaded price list.
// Route: POST /pricelist
func HandlePricelistUpload(app *pocketbase.PocketBase, cfg config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		logger := loggerFor(e)

		// Parse multipart form (max 10MB)
		if err := e.Request.ParseMultipartForm(10 << 20); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "File too large or invalid form data")
		}

		file, header, err := e.Request.FormFile("pricelist")
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Please select a file to upload")
		}
		defer file.Close()

		cat, err := services.LoadPricelist(file, services.WithBookingPanelPrice(decimal.NewFromFloat(cfg.BookingPanelPrice)))
		if err != nil {
			logger.Warn().Err(err).Str("file", header.Filename).Msg("pricelist_upload: rejected")
			return ErrorToast(e, http.StatusUnprocessableEntity, services.UserMessage(err))
		}

		if err := collections.ReplaceTiers(app, cat); err != nil {
			logger.Error().Err(err).Msg("pricelist_upload: could not store tiers")
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		count := len(cat.All())
		logger.Info().Str("file", header.Filename).Int("tiers", count).Msg("price list loaded")
		SetToast(e, ToastSuccess, fmt.Sprintf("Loaded %d tiers from %s", count, header.Filename))
		return redirect(e, "/")
	}
}

// Package commands holds the command-line entry points that work without the
// web server.
package commands

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"avquoter/config"
	"avquoter/services"
)

// now is swapped in tests.
var now = time.Now

// Register adds every command to root.
func Register(root *cobra.Command, cfg config.Config, logger zerolog.Logger) {
	root.AddCommand(
		NewGenerateCommand(cfg, logger),
		NewTiersCommand(cfg, logger),
		NewPricelistTemplateCommand(cfg, logger),
	)
}

// loadCatalog reads the price list at path, or returns the built-in catalog
// when path is empty.
func loadCatalog(path string, cfg config.Config, logger zerolog.Logger) (*services.Catalog, error) {
	opt := services.WithBookingPanelPrice(decimal.NewFromFloat(cfg.BookingPanelPrice))
	if path == "" {
		logger.Debug().Msg("no price list given, using the built-in catalog")
		return services.NewCatalog(services.DefaultTiers(), opt)
	}
	cat, err := services.LoadPricelistFile(path, opt)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("pricelist", path).Int("tiers", len(cat.All())).Msg("price list loaded")
	return cat, nil
}

package main

import (
	"os"
	"runtime/debug"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/rs/zerolog/log"

	"avquoter/collections"
	"avquoter/commands"
	"avquoter/config"
	"avquoter/handlers"
	"avquoter/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger := config.NewLogger(cfg, os.Stderr)
	log.Logger = logger

	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Str("stack", string(debug.Stack())).Msg("unexpected failure")
			os.Exit(1)
		}
	}()

	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: cfg.DataDir,
	})
	commands.Register(app.RootCmd, cfg, logger)

	// Create collections and seed tiers on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.SeedTiers(app); err != nil {
			logger.Warn().Err(err).Msg("seeding pricing tiers failed")
		}
		if cfg.Pricelist != "" {
			loadStartupPricelist(app, cfg)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.BindFunc(handlers.RequestLogger(logger))
		se.Router.BindFunc(handlers.NavMiddleware(app))

		// ── Proposals ────────────────────────────────────────────
		se.Router.GET("/", handlers.HandleProposalList(app, cfg))
		se.Router.POST("/proposals", handlers.HandleProposalSave(app, cfg))
		se.Router.GET("/proposals/{id}", handlers.HandleProposalView(app, cfg))
		se.Router.DELETE("/proposals/{id}", handlers.HandleProposalDelete(app))

		// ── Rooms ────────────────────────────────────────────────
		se.Router.POST("/proposals/{id}/rooms", handlers.HandleRoomAdd(app, cfg))
		se.Router.POST("/proposals/{id}/rooms/import", handlers.HandleRoomImport(app, cfg))
		se.Router.DELETE("/proposals/{id}/rooms/{roomId}", handlers.HandleRoomDelete(app))

		// ── Documents ────────────────────────────────────────────
		se.Router.GET("/proposals/{id}/export/{format}", handlers.HandleProposalExport(app, cfg))
		se.Router.POST("/proposals/{id}/generate", handlers.HandleProposalGenerate(app, cfg))

		// ── Catalog ──────────────────────────────────────────────
		se.Router.GET("/api/tiers", handlers.HandleTierOptions(app, cfg))
		se.Router.GET("/pricelist/template", handlers.HandlePricelistTemplate(app, cfg))
		se.Router.POST("/pricelist", handlers.HandlePricelistUpload(app, cfg))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

// loadStartupPricelist replaces the stored tiers with QUOTER_PRICELIST. A
// missing or broken file keeps the stored tiers.
func loadStartupPricelist(app *pocketbase.PocketBase, cfg config.Config) {
	cat, err := services.LoadPricelistFile(cfg.Pricelist)
	if err != nil {
		log.Warn().Err(err).Str("pricelist", cfg.Pricelist).Msg(services.UserMessage(err))
		return
	}
	if err := collections.ReplaceTiers(app, cat); err != nil {
		log.Error().Err(err).Msg("could not store price list tiers")
		return
	}
	log.Info().Str("pricelist", cfg.Pricelist).Int("tiers", len(cat.All())).Msg("price list loaded")
}

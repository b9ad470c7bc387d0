package collections

import (
	"fmt"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"avquoter/services"
)

// SeedTiers populates pricing_tiers with the built-in catalog. It is safe to
// call on every startup because it returns early if any tier records exist.
func SeedTiers(app *pocketbase.PocketBase) error {
	col, err := app.FindCollectionByNameOrId(PricingTiers)
	if err != nil {
		return fmt.Errorf("seed: could not find %s collection: %w", PricingTiers, err)
	}
	existing, err := app.FindAllRecords(col)
	if err != nil {
		return fmt.Errorf("seed: could not query %s: %w", PricingTiers, err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Info().Msg("seed: pricing_tiers is empty, inserting the default catalog")

	return app.RunInTransaction(func(txApp core.App) error {
		for i, t := range services.DefaultTiers() {
			r := core.NewRecord(col)
			setTierFields(r, t, i)
			if err := txApp.Save(r); err != nil {
				return fmt.Errorf("seed: tier %q: %w", t.Name, err)
			}
		}
		return nil
	})
}

// ReplaceTiers swaps every stored tier for the contents of cat in one
// transaction.
func ReplaceTiers(app core.App, cat *services.Catalog) error {
	col, err := app.FindCollectionByNameOrId(PricingTiers)
	if err != nil {
		return fmt.Errorf("could not find %s collection: %w", PricingTiers, err)
	}

	return app.RunInTransaction(func(txApp core.App) error {
		existing, err := txApp.FindAllRecords(col)
		if err != nil {
			return err
		}
		for _, r := range existing {
			if err := txApp.Delete(r); err != nil {
				return fmt.Errorf("delete tier %q: %w", r.GetString("name"), err)
			}
		}
		for i, t := range cat.All() {
			r := core.NewRecord(col)
			setTierFields(r, t, i)
			if err := txApp.Save(r); err != nil {
				return fmt.Errorf("save tier %q: %w", t.Name, err)
			}
		}
		return nil
	})
}

// LoadCatalog builds a Catalog from the stored tiers. An empty collection
// yields services.ErrEmptyCatalog.
func LoadCatalog(app core.App, opts ...services.CatalogOption) (*services.Catalog, error) {
	col, err := app.FindCollectionByNameOrId(PricingTiers)
	if err != nil {
		return nil, fmt.Errorf("could not find %s collection: %w", PricingTiers, err)
	}
	records, err := app.FindRecordsByFilter(col, "id != ''", "sort_order", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", PricingTiers, err)
	}

	tiers := make([]services.Tier, 0, len(records))
	for _, r := range records {
		tiers = append(tiers, TierFromRecord(r))
	}
	return services.NewCatalog(tiers, opts...)
}

// TierFromRecord converts a pricing_tiers record into a Tier.
func TierFromRecord(r *core.Record) services.Tier {
	money := func(field string) decimal.Decimal {
		return decimal.NewFromFloat(r.GetFloat(field))
	}

	t := services.Tier{
		Name:                 r.GetString("name"),
		Mode:                 services.Mode(r.GetString("mode")),
		MaxDistance:          r.GetFloat("max_distance"),
		VCModel:              r.GetString("vc_model"),
		VCPrice:              money("vc_price"),
		DisplayModel:         r.GetString("display_model"),
		DisplayPrice:         money("display_price"),
		DisplayQty:           r.GetInt("display_qty"),
		MountModel:           r.GetString("mount_model"),
		MountPrice:           money("mount_price"),
		CablingDesc:          r.GetString("cabling_desc"),
		CablingPrice:         money("cabling_price"),
		ServicePrice:         money("service_price"),
		ManagedServiceAnnual: money("ms_annual"),
		Extras:               services.ParseExtras(r.GetString("extras")),
	}
	for _, item := range strings.Split(r.GetString("vc_items"), "\n") {
		if item = strings.TrimSpace(item); item != "" {
			t.VCItems = append(t.VCItems, item)
		}
	}
	if r.GetBool("has_audio_upgrade") {
		t.AudioUpgrade = services.PremiumAudioUpgrade()
	}
	return t
}

func setTierFields(r *core.Record, t services.Tier, sortOrder int) {
	r.Set("name", t.Name)
	r.Set("mode", string(t.Mode))
	r.Set("max_distance", t.MaxDistance)
	r.Set("sort_order", sortOrder)
	r.Set("vc_items", strings.Join(t.VCItems, "\n"))
	r.Set("vc_model", t.VCModel)
	r.Set("vc_price", t.VCPrice.InexactFloat64())
	r.Set("display_model", t.DisplayModel)
	r.Set("display_price", t.DisplayPrice.InexactFloat64())
	r.Set("display_qty", t.DisplayQty)
	r.Set("mount_model", t.MountModel)
	r.Set("mount_price", t.MountPrice.InexactFloat64())
	r.Set("cabling_desc", t.CablingDesc)
	r.Set("cabling_price", t.CablingPrice.InexactFloat64())
	r.Set("service_price", t.ServicePrice.InexactFloat64())
	r.Set("ms_annual", t.ManagedServiceAnnual.InexactFloat64())
	r.Set("extras", services.FormatExtras(t.Extras))
	r.Set("has_audio_upgrade", t.AudioUpgrade != nil)
}

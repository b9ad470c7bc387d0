package collections

import (
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/rs/zerolog/log"

	"avquoter/services"
)

// Collection names.
const (
	PricingTiers  = "pricing_tiers"
	Proposals     = "proposals"
	ProposalRooms = "proposal_rooms"
)

func modeValues() []string {
	vals := make([]string, 0, len(services.Modes))
	for _, m := range services.Modes {
		vals = append(vals, string(m))
	}
	return vals
}

// Setup programmatically creates/ensures the pricing_tiers, proposals and
// proposal_rooms collections exist.
func Setup(app *pocketbase.PocketBase) {
	ensureCollection(app, PricingTiers, func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "mode",
			Required:  true,
			Values:    modeValues(),
			MaxSelect: 1,
		})
		// Numbers are not Required: PocketBase treats 0 as blank.
		c.Fields.Add(&core.NumberField{Name: "max_distance"})
		c.Fields.Add(&core.NumberField{Name: "sort_order"})
		c.Fields.Add(&core.TextField{Name: "vc_items"})
		c.Fields.Add(&core.TextField{Name: "vc_model"})
		c.Fields.Add(&core.NumberField{Name: "vc_price"})
		c.Fields.Add(&core.TextField{Name: "display_model"})
		c.Fields.Add(&core.NumberField{Name: "display_price"})
		c.Fields.Add(&core.NumberField{Name: "display_qty", OnlyInt: true})
		c.Fields.Add(&core.TextField{Name: "mount_model"})
		c.Fields.Add(&core.NumberField{Name: "mount_price"})
		c.Fields.Add(&core.TextField{Name: "cabling_desc"})
		c.Fields.Add(&core.NumberField{Name: "cabling_price"})
		c.Fields.Add(&core.NumberField{Name: "service_price"})
		c.Fields.Add(&core.NumberField{Name: "ms_annual"})
		c.Fields.Add(&core.TextField{Name: "extras"})
		c.Fields.Add(&core.BoolField{Name: "has_audio_upgrade"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	proposals := ensureCollection(app, Proposals, func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "client", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "mode",
			Required:  true,
			Values:    modeValues(),
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "signatory"})
		c.Fields.Add(&core.TextField{Name: "last_output"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, ProposalRooms, func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "proposal",
			Required:      true,
			CollectionId:  proposals.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order"})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.NumberField{Name: "distance"})
		c.Fields.Add(&core.TextField{Name: "package"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Debug().Str("collection", name).Msg("collection already exists, skipping creation")
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatal().Err(err).Str("collection", name).Msg("failed to create collection")
	}

	log.Info().Str("collection", name).Str("id", collection.Id).Msg("created collection")
	return collection
}

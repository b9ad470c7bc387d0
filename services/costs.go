// Package services provides tier resolution, cost aggregation and proposal
// document generation.
package services

import "github.com/shopspring/decimal"

// RoomCosts holds the computed money figures for one room.
type RoomCosts struct {
	Upfront        decimal.Decimal
	ManagedService decimal.Decimal
	Year1          decimal.Decimal
}

// CalcUpfront sums every one-off charge of a tier: displays, mount, cabling,
// services, the fit-out bar and any extra line items.
func CalcUpfront(t Tier) decimal.Decimal {
	total := t.DisplayPrice.Mul(decimal.NewFromInt(int64(t.displayQty())))
	total = total.Add(t.MountPrice).
		Add(t.CablingPrice).
		Add(t.ServicePrice).
		Add(t.VCPrice)
	for _, li := range t.Extras {
		total = total.Add(li.Total())
	}
	return total
}

func CalcRoomCosts(t Tier) RoomCosts {
	upfront := CalcUpfront(t)
	return RoomCosts{
		Upfront:        upfront,
		ManagedService: t.ManagedServiceAnnual,
		Year1:          upfront.Add(t.ManagedServiceAnnual),
	}
}

// AddOn is an optional line quoted beside the proposal total.
type AddOn struct {
	Item        string
	Description string
	UnitPrice   decimal.Decimal
	Qty         int
	Total       decimal.Decimal
}

// ProposalTotals aggregates room costs. AddOns are optional and are not part
// of GrandTotal.
type ProposalTotals struct {
	Rooms               []RoomCosts
	TotalUpfront        decimal.Decimal
	TotalManagedService decimal.Decimal
	GrandTotal          decimal.Decimal
	AddOns              []AddOn
}

// CalcProposalTotals computes per-room costs in room order, the grand total
// and the count-based optional add-ons.
func CalcProposalTotals(cat *Catalog, rooms []Room) ProposalTotals {
	var totals ProposalTotals
	totals.Rooms = make([]RoomCosts, len(rooms))

	panels := 0
	audio := 0
	var audioUpgrade *Upgrade

	for i, r := range rooms {
		c := CalcRoomCosts(r.Tier)
		totals.Rooms[i] = c
		totals.TotalUpfront = totals.TotalUpfront.Add(c.Upfront)
		totals.TotalManagedService = totals.TotalManagedService.Add(c.ManagedService)
		totals.GrandTotal = totals.GrandTotal.Add(c.Year1)

		if r.Mode == ModeFitOut {
			panels++
		}
		if r.Tier.AudioUpgrade != nil {
			audio++
			if audioUpgrade == nil {
				audioUpgrade = r.Tier.AudioUpgrade
			}
		}
	}

	if panels > 0 {
		price := DefaultBookingPanelPrice
		if cat != nil {
			price = cat.BookingPanelPrice()
		}
		totals.AddOns = append(totals.AddOns, AddOn{
			Item:        "Room Booking Panel",
			Description: BookingPanelDescription,
			UnitPrice:   price,
			Qty:         panels,
			Total:       price.Mul(decimal.NewFromInt(int64(panels))),
		})
	}
	if audio > 0 {
		totals.AddOns = append(totals.AddOns, AddOn{
			Item:        "Premium Audio",
			Description: audioUpgrade.Name,
			UnitPrice:   audioUpgrade.UnitPrice,
			Qty:         audio,
			Total:       audioUpgrade.UnitPrice.Mul(decimal.NewFromInt(int64(audio))),
		})
	}

	return totals
}

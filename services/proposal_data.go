package services

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Section shades (hex fill colours) used by the renderers.
const (
	ShadeHeader   = "D9E2F3"
	ShadeSection  = "E7E6E6"
	ShadeUpgrade  = "FCE4D6"
	ShadePartner  = "FFF2CC"
	ShadeRoomBar  = "1F4E79"
	FloorPlanText = "[PASTE FLOOR PLAN IMAGE HERE]"
)

// BOMRow is one bill-of-materials line. Partner rows are supplied and priced
// by the partner, so they carry no price.
type BOMRow struct {
	Category    string
	Qty         int
	Description string
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
	Partner     bool
}

// BOMSection groups rows under a numbered heading. Optional sections are
// quoted for reference and never count towards the room subtotal.
type BOMSection struct {
	Title    string
	Shade    string
	Optional bool
	Rows     []BOMRow
}

// RoomDetail is everything rendered for one room.
type RoomDetail struct {
	Room           Room
	Classification string
	Header         string
	Costs          RoomCosts
	TextBlocks     []TextBlock
	Sections       []BOMSection
}

// ProposalData holds all data needed to render a proposal document.
type ProposalData struct {
	Client      string
	Mode        Mode
	ModeLabel   string
	Date        string
	GeneratedAt time.Time
	Overview    string
	Rooms       []RoomDetail
	Totals      ProposalTotals
	MSA         string
	Exclusions  []string
	Closing     string
	Signatory   string
}

// BuildProposal validates the inputs and assembles the document model. Rooms
// are ordered by ascending distance.
func BuildProposal(cat *Catalog, client string, mode Mode, rooms []Room, now time.Time, signatory string) (ProposalData, error) {
	client = strings.TrimSpace(client)
	if client == "" {
		return ProposalData{}, ErrMissingClient
	}
	if len(rooms) == 0 {
		return ProposalData{}, ErrNoRooms
	}
	if mode != ModePartner && mode != ModeFitOut {
		return ProposalData{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	if strings.TrimSpace(signatory) == "" {
		signatory = DefaultSignatory
	}

	sorted := slices.Clone(rooms)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Distance < sorted[j].Distance
	})

	data := ProposalData{
		Client:      client,
		Mode:        mode,
		ModeLabel:   mode.Label(),
		Date:        now.Format("2 January 2006"),
		GeneratedAt: now,
		Overview:    OverviewText(mode),
		Totals:      CalcProposalTotals(cat, sorted),
		MSA:         MSAText,
		Exclusions:  slices.Clone(Exclusions),
		Closing:     ClosingText,
		Signatory:   signatory,
	}

	for i, r := range sorted {
		detail := RoomDetail{
			Room:           r,
			Classification: fmt.Sprintf("%s (%sm)", r.Tier.Name, formatMetres(r.Distance)),
			Header:         fmt.Sprintf("ROOM: %s - %s (Furthest Participant: %sm)", r.Name, r.Tier.Name, formatMetres(r.Distance)),
			Costs:          data.Totals.Rooms[i],
		}
		if r.Mode == ModeFitOut {
			detail.TextBlocks = FitOutTextBlocks(r.Tier.Name)
			detail.Sections = fitOutSections(r.Tier)
		} else {
			detail.Sections = partnerSections(r.Tier)
		}
		data.Rooms = append(data.Rooms, detail)
	}

	return data, nil
}

// Subtotal sums the priced rows of every non-optional section.
func (d RoomDetail) Subtotal() decimal.Decimal {
	var sum decimal.Decimal
	for _, s := range d.Sections {
		if s.Optional {
			continue
		}
		for _, row := range s.Rows {
			sum = sum.Add(row.Total)
		}
	}
	return sum
}

func pricedRow(category string, qty int, desc string, unit decimal.Decimal) BOMRow {
	return BOMRow{
		Category:    category,
		Qty:         qty,
		Description: desc,
		UnitPrice:   unit,
		Total:       unit.Mul(decimal.NewFromInt(int64(qty))),
	}
}

// CiscoPartCode appends the orderable part code to known Cisco items.
func CiscoPartCode(item string) string {
	switch {
	case strings.Contains(item, "Room Bar Pro"):
		return item + " / CS-BARPRO-K9"
	case strings.Contains(item, "Room Bar") && !strings.Contains(item, "Pro"):
		return item + " / CS-BAR-T-C-K9"
	case strings.Contains(item, "Ceiling Microphone Pro"):
		return item + " / CS-MIC-CLGPRO="
	case strings.Contains(item, "Wire Hanging"):
		return item + " / CS-MIC-CLGP-WHK="
	}
	return item
}

// splitPartnerItems separates partner-supplied VC items from Shure audio,
// which Alder supplies.
func splitPartnerItems(items []string) (partner, moved []string) {
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if strings.Contains(item, "Shure") {
			moved = append(moved, item)
			continue
		}
		partner = append(partner, CiscoPartCode(item))
	}
	return partner, moved
}

func partnerSections(t Tier) []BOMSection {
	partnerItems, moved := splitPartnerItems(t.VCItems)

	var sections []BOMSection
	if len(partnerItems) > 0 {
		s := BOMSection{Title: "1. Data#3 Supply Scope (Cisco Hardware)", Shade: ShadeSection}
		for _, item := range partnerItems {
			s.Rows = append(s.Rows, BOMRow{Category: "Video Conf", Qty: 1, Description: item, Partner: true})
		}
		sections = append(sections, s)
	}

	alder := BOMSection{Title: "2. Alder Technology Supply Scope", Shade: ShadeSection}
	alder.Rows = append(alder.Rows, pricedRow("Visual Display", t.displayQty(), t.DisplayModel, t.DisplayPrice))
	alder.Rows = append(alder.Rows, pricedRow("Mounting", 1, t.MountModel, t.MountPrice))
	for _, item := range moved {
		alder.Rows = append(alder.Rows, pricedRow("Conf/Audio", 1, item, decimal.Zero))
	}
	for _, li := range t.Extras {
		alder.Rows = append(alder.Rows, pricedRow(li.Category, li.Qty, li.Description, li.UnitPrice))
	}
	alder.Rows = append(alder.Rows, pricedRow("Cabling", 1, t.CablingDesc, t.CablingPrice))
	alder.Rows = append(alder.Rows, pricedRow("Services", 1, "Professional Services: Installation, Staging & PM", t.ServicePrice))
	if !t.VCPrice.IsZero() {
		alder.Rows = append(alder.Rows, pricedRow("Video Conf", 1, t.VCModel, t.VCPrice))
	}
	sections = append(sections, alder)

	sections = append(sections, BOMSection{
		Title: "3. Managed Services",
		Shade: ShadeSection,
		Rows:  []BOMRow{pricedRow("Support", 1, "Managed Service Agreement - Year 1 (Annual Billing)", t.ManagedServiceAnnual)},
	})
	return sections
}

func fitOutSections(t Tier) []BOMSection {
	hw := BOMSection{Title: "1. Hardware & Services Scope", Shade: ShadeSection}
	vcModel := t.VCModel
	if vcModel == "" && len(t.VCItems) > 0 {
		vcModel = strings.Join(t.VCItems, ", ")
	}
	hw.Rows = append(hw.Rows, pricedRow("Video Conf", 1, vcModel, t.VCPrice))
	hw.Rows = append(hw.Rows, pricedRow("Visual Display", t.displayQty(), t.DisplayModel, t.DisplayPrice))
	for _, li := range t.Extras {
		hw.Rows = append(hw.Rows, pricedRow(li.Category, li.Qty, li.Description, li.UnitPrice))
	}
	hw.Rows = append(hw.Rows, pricedRow("Mounting", 1, t.MountModel, t.MountPrice))
	hw.Rows = append(hw.Rows, pricedRow("Cabling", 1, t.CablingDesc, t.CablingPrice))
	hw.Rows = append(hw.Rows, pricedRow("Services", 1, "Total Services (Staging, Installation, PM, Engineering)", t.ServicePrice))

	sections := []BOMSection{
		hw,
		{
			Title: "2. Managed Services",
			Shade: ShadeSection,
			Rows:  []BOMRow{pricedRow("Support", 1, "Managed Service Agreement - Year 1 (Annual Billing)", t.ManagedServiceAnnual)},
		},
	}

	if t.AudioUpgrade != nil {
		upg := BOMSection{
			Title:    "3. Optional Upgrade: " + t.AudioUpgrade.Name,
			Shade:    ShadeUpgrade,
			Optional: true,
		}
		for _, li := range t.AudioUpgrade.Items {
			upg.Rows = append(upg.Rows, pricedRow(li.Category, li.Qty, li.Description, li.UnitPrice))
		}
		sections = append(sections, upg)
	}
	return sections
}

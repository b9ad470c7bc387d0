package services

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"
)

// PricelistFilename is the conventional name of the price-list workbook.
const PricelistFilename = "master_pricelist.xlsx"

// PricelistHeaders is the fixed column layout, A through M.
var PricelistHeaders = []string{
	"Max Distance",       // A
	"Tier Name",          // B
	"Cisco/VC Items",     // C
	"Display Model",      // D
	"Display Price",      // E
	"Mount Model",        // F
	"Mount Price",        // G
	"Cables Desc",        // H
	"Cables Price",       // I
	"Service Price",      // J
	"MS Annual Price",    // K
	"Extra Items String", // L
	"VC Price",           // M
}

const (
	colMaxDistance = iota
	colTierName
	colVCItems
	colDisplayModel
	colDisplayPrice
	colMountModel
	colMountPrice
	colCablesDesc
	colCablesPrice
	colServicePrice
	colMSPrice
	colExtras
	colVCPrice
)

// DefaultFitOutVCPrice is used for fit-out rows that leave the VC Price
// column blank.
var DefaultFitOutVCPrice = decimal.NewFromInt(3900)

// fitOutSizeCeilings maps a package's display size to its distance ceiling
// for fit-out rows whose Max Distance is 0.
var fitOutSizeCeilings = []struct {
	size    string
	ceiling float64
}{
	{"55", 3.0},
	{"65", 4.5},
	{"75", 5.5},
	{"86", 6.5},
	{"98", 7.5},
}

// LoadPricelistFile opens path and loads it with LoadPricelist.
func LoadPricelistFile(path string, opts ...CatalogOption) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrPricelistMissing, path)
		}
		return nil, fmt.Errorf("open price list: %w", err)
	}
	defer f.Close()
	return LoadPricelist(f, opts...)
}

// LoadPricelist reads the first sheet of a price-list workbook and builds a
// Catalog. Row 1 is the header. Rows with neither a distance nor a name are
// skipped. Blank price cells count as zero.
func LoadPricelist(r io.Reader, opts ...CatalogOption) (*Catalog, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPricelistMalformed, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: read rows: %v", ErrPricelistMalformed, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: no tier rows", ErrEmptyCatalog)
	}

	var tiers []Tier
	prevFitOutCeiling := 0.0
	for i, row := range rows[1:] {
		rowNum := i + 2
		cell := func(col int) string {
			if col < len(row) {
				return strings.TrimSpace(row[col])
			}
			return ""
		}
		if cell(colMaxDistance) == "" && cell(colTierName) == "" {
			continue
		}

		t, err := parsePricelistRow(cell, rowNum)
		if err != nil {
			return nil, err
		}
		if t.Mode == ModeFitOut {
			if t.MaxDistance == 0 {
				t.MaxDistance = fitOutCeiling(t.Name, prevFitOutCeiling)
			}
			prevFitOutCeiling = t.MaxDistance
		}
		tiers = append(tiers, t)
	}

	cat, err := NewCatalog(tiers, opts...)
	if err != nil {
		if errors.Is(err, ErrEmptyCatalog) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPricelistMalformed, err)
	}
	return cat, nil
}

func parsePricelistRow(cell func(int) string, rowNum int) (Tier, error) {
	money := func(col int) (decimal.Decimal, error) {
		v := cell(col)
		if v == "" {
			return decimal.Zero, nil
		}
		d, err := decimal.NewFromString(normaliseNumber(v))
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: row %d column %s: %q is not a number",
				ErrPricelistMalformed, rowNum, PricelistHeaders[col], v)
		}
		return d, nil
	}

	var t Tier
	t.Name = cell(colTierName)
	if t.Name == "" {
		return Tier{}, fmt.Errorf("%w: row %d has no tier name", ErrPricelistMalformed, rowNum)
	}

	dist := cell(colMaxDistance)
	if dist != "" {
		d, err := cast.ToFloat64E(normaliseNumber(dist))
		if err != nil {
			return Tier{}, fmt.Errorf("%w: row %d column %s: %q is not a number",
				ErrPricelistMalformed, rowNum, PricelistHeaders[colMaxDistance], dist)
		}
		t.MaxDistance = d
	}

	t.Mode = ModePartner
	if strings.Contains(t.Name, "Fit-Out") {
		t.Mode = ModeFitOut
	}
	if t.Mode == ModeFitOut && strings.Contains(t.Name, "Dual") {
		t.DisplayQty = 2
	}

	vc := cell(colVCItems)
	if t.Mode == ModeFitOut {
		t.VCModel = vc
	} else if vc != "" {
		for _, item := range strings.Split(vc, ",") {
			if item = strings.TrimSpace(item); item != "" {
				t.VCItems = append(t.VCItems, item)
			}
		}
	}

	t.DisplayModel = cell(colDisplayModel)
	t.MountModel = cell(colMountModel)
	t.CablingDesc = cell(colCablesDesc)

	prices := []struct {
		col int
		dst *decimal.Decimal
	}{
		{colDisplayPrice, &t.DisplayPrice},
		{colMountPrice, &t.MountPrice},
		{colCablesPrice, &t.CablingPrice},
		{colServicePrice, &t.ServicePrice},
		{colMSPrice, &t.ManagedServiceAnnual},
	}
	for _, p := range prices {
		v, err := money(p.col)
		if err != nil {
			return Tier{}, err
		}
		*p.dst = v
	}
	// Partners supply their own codec, so column M only prices fit-out rows.
	if t.Mode == ModeFitOut {
		t.VCPrice = DefaultFitOutVCPrice
		if cell(colVCPrice) != "" {
			v, err := money(colVCPrice)
			if err != nil {
				return Tier{}, err
			}
			t.VCPrice = v
		}
		// 98" packages offer the premium audio upgrade.
		if strings.Contains(t.Name, "98") {
			t.AudioUpgrade = PremiumAudioUpgrade()
		}
	}

	t.Extras = ParseExtras(cell(colExtras))
	return t, nil
}

// normaliseNumber strips currency symbols, grouping commas and a trailing
// metre unit so "$1,600" and "4.5m" parse.
func normaliseNumber(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(strings.ToLower(s), "m")
	return strings.TrimSpace(s)
}

func fitOutCeiling(name string, prev float64) float64 {
	for _, sc := range fitOutSizeCeilings {
		if strings.Contains(name, sc.size) {
			return sc.ceiling
		}
	}
	return prev
}

// ParseExtras parses "Name|Price|Qty; Name|Price|Qty". Groups that do not
// have exactly three parts or carry bad numbers are skipped.
func ParseExtras(s string) []LineItem {
	var items []LineItem
	for _, group := range strings.Split(s, ";") {
		group = strings.TrimSpace(group)
		if group == "" {
			continue
		}
		parts := strings.Split(group, "|")
		if len(parts) != 3 {
			continue
		}
		name := strings.TrimSpace(parts[0])
		price, err := decimal.NewFromString(normaliseNumber(parts[1]))
		if err != nil || name == "" {
			continue
		}
		qty, err := cast.ToIntE(strings.TrimSpace(parts[2]))
		if err != nil || qty < 0 {
			continue
		}
		items = append(items, LineItem{Category: "Hardware", Description: name, UnitPrice: price, Qty: qty})
	}
	return items
}

// FormatExtras is the inverse of ParseExtras.
func FormatExtras(items []LineItem) string {
	groups := make([]string, 0, len(items))
	for _, li := range items {
		groups = append(groups, fmt.Sprintf("%s|%s|%d", li.Description, li.UnitPrice.String(), li.Qty))
	}
	return strings.Join(groups, "; ")
}

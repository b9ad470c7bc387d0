package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

var pricelistColumnNotes = []struct {
	rule, description string
}{
	{"Number (metres)", "Furthest participant distance this tier covers. Fit-Out rows may use 0 to derive it from the display size."},
	{"Text", "Tier or package name. Names containing 'Fit-Out' are full-scope packages; 'Dual' doubles the display quantity."},
	{"Comma separated", "Partner: Cisco/VC items supplied by the partner. Fit-Out: the conferencing bar model."},
	{"Text", "Display model."},
	{"Number", "Display unit price (ex GST)."},
	{"Text", "Mount model."},
	{"Number", "Mount price."},
	{"Text", "Cabling description."},
	{"Number", "Cabling price."},
	{"Number", "Installation, staging and PM services."},
	{"Number", "Managed Service annual price."},
	{"Name|Price|Qty; ...", "Extra hardware lines added to the bill of materials."},
	{"Number", "Fit-Out conferencing bar price. Blank uses the standard bar price."},
}

// GeneratePricelistTemplate writes the tiers of cat to a workbook in the
// layout LoadPricelist reads.
func GeneratePricelistTemplate(cat *Catalog) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Pricelist"
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#009A44"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	columns := columnLetters(len(PricelistHeaders))
	for i, h := range PricelistHeaders {
		cell := fmt.Sprintf("%s1", columns[i])
		f.SetCellValue(sheetName, cell, h)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)

		width := float64(len(h)) * 1.3
		if width < 15 {
			width = 15
		}
		f.SetColWidth(sheetName, columns[i], columns[i], width)
	}
	f.SetColWidth(sheetName, columns[colVCItems], columns[colVCItems], 45)
	f.SetColWidth(sheetName, columns[colExtras], columns[colExtras], 45)

	for i, t := range cat.All() {
		row := i + 2
		vc := strings.Join(t.VCItems, ", ")
		if t.Mode == ModeFitOut {
			vc = t.VCModel
		}
		values := []any{
			t.MaxDistance,
			t.Name,
			sanitizeExcelCell(vc),
			sanitizeExcelCell(t.DisplayModel),
			t.DisplayPrice.InexactFloat64(),
			sanitizeExcelCell(t.MountModel),
			t.MountPrice.InexactFloat64(),
			sanitizeExcelCell(t.CablingDesc),
			t.CablingPrice.InexactFloat64(),
			t.ServicePrice.InexactFloat64(),
			t.ManagedServiceAnnual.InexactFloat64(),
			FormatExtras(t.Extras),
			nil,
		}
		if t.Mode == ModeFitOut {
			values[colVCPrice] = t.VCPrice.InexactFloat64()
		}
		if err := f.SetSheetRow(sheetName, fmt.Sprintf("A%d", row), &values); err != nil {
			return nil, fmt.Errorf("write tier %q: %w", t.Name, err)
		}
	}

	f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		Split:       false,
		XSplit:      0,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	addPricelistInstructions(f, columns)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write pricelist template: %w", err)
	}
	return buf.Bytes(), nil
}

// addPricelistInstructions creates a hidden sheet describing each column.
func addPricelistInstructions(f *excelize.File, columns []string) {
	instSheet := "Instructions"
	f.NewSheet(instSheet)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E5E7EB"}, Pattern: 1},
	})

	f.SetCellValue(instSheet, "A1", "Master Price List - Instructions")
	f.SetCellStyle(instSheet, "A1", "A1", titleStyle)

	for i, h := range []string{"Column", "Header", "Format", "Description"} {
		cell := fmt.Sprintf("%s3", columns[i])
		f.SetCellValue(instSheet, cell, h)
		f.SetCellStyle(instSheet, cell, cell, headerStyle)
	}
	for i, note := range pricelistColumnNotes {
		row := fmt.Sprintf("%d", i+4)
		f.SetCellValue(instSheet, "A"+row, columns[i])
		f.SetCellValue(instSheet, "B"+row, PricelistHeaders[i])
		f.SetCellValue(instSheet, "C"+row, note.rule)
		f.SetCellValue(instSheet, "D"+row, note.description)
	}

	for i, w := range []float64{10, 20, 22, 80} {
		f.SetColWidth(instSheet, columns[i], columns[i], w)
	}

	f.SetSheetVisible(instSheet, false)
}

// columnLetters returns Excel column letters for n columns: A, B, ... Z, AA, AB ...
func columnLetters(n int) []string {
	cols := make([]string, n)
	for i := 0; i < n; i++ {
		name, _ := excelize.ColumnNumberToName(i + 1)
		cols[i] = name
	}
	return cols
}

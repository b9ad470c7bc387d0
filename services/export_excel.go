package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	bomSheet     = "Bill of Materials"
)

type bomStyles struct {
	title, subtitle, header, section, partner, row, money, total int
}

// GenerateBOMExcel writes the room summary and every room's bill of materials
// to a workbook and returns the file contents. Money cells hold numbers so the
// sheet can be re-totalled.
func GenerateBOMExcel(data ProposalData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, summarySheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}
	if _, err := f.NewSheet(bomSheet); err != nil {
		return nil, fmt.Errorf("create bom sheet: %w", err)
	}

	st, err := newBOMStyles(f)
	if err != nil {
		return nil, err
	}

	if err := writeSummarySheet(f, st, data); err != nil {
		return nil, err
	}
	if err := writeBOMSheet(f, st, data); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

func newBOMStyles(f *excelize.File) (bomStyles, error) {
	var st bomStyles
	moneyFmt := "$#,##0.00"

	specs := []struct {
		dst   *int
		name  string
		style *excelize.Style
	}{
		{&st.title, "title", &excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}}},
		{&st.subtitle, "subtitle", &excelize.Style{Font: &excelize.Font{Size: 11}}},
		{&st.header, "header", &excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{"#009A44"}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
			Border:    thinBorders(),
		}},
		{&st.section, "section", &excelize.Style{
			Font:   &excelize.Font{Bold: true, Size: 10},
			Fill:   excelize.Fill{Type: "pattern", Color: []string{"#" + ShadeSection}, Pattern: 1},
			Border: thinBorders(),
		}},
		{&st.partner, "partner", &excelize.Style{
			Font:   &excelize.Font{Size: 10},
			Fill:   excelize.Fill{Type: "pattern", Color: []string{"#" + ShadePartner}, Pattern: 1},
			Border: thinBorders(),
		}},
		{&st.row, "row", &excelize.Style{Font: &excelize.Font{Size: 10}, Border: thinBorders()}},
		{&st.money, "money", &excelize.Style{
			Font:         &excelize.Font{Size: 10},
			Border:       thinBorders(),
			CustomNumFmt: &moneyFmt,
		}},
		{&st.total, "total", &excelize.Style{
			Font:         &excelize.Font{Bold: true, Size: 11},
			Border:       thinBorders(),
			CustomNumFmt: &moneyFmt,
		}},
	}
	for _, s := range specs {
		id, err := f.NewStyle(s.style)
		if err != nil {
			return st, fmt.Errorf("create %s style: %w", s.name, err)
		}
		*s.dst = id
	}
	return st, nil
}

func writeSummarySheet(f *excelize.File, st bomStyles, data ProposalData) error {
	sh := summarySheet
	widths := map[string]float64{"A": 30, "B": 30, "C": 20, "D": 20, "E": 22}
	for c, w := range widths {
		if err := f.SetColWidth(sh, c, c, w); err != nil {
			return fmt.Errorf("set col width %s: %w", c, err)
		}
	}

	if err := f.MergeCell(sh, "A1", "E1"); err != nil {
		return fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sh, "A1", sanitizeExcelCell("Proposal: "+data.Client))
	f.SetCellStyle(sh, "A1", "E1", st.title)
	f.SetCellValue(sh, "A2", "Scope: "+data.ModeLabel)
	f.SetCellValue(sh, "A3", "Date: "+data.Date)
	f.SetCellStyle(sh, "A2", "A3", st.subtitle)

	headers := []any{"Room Name", "Classification", "Supply & Services", "Managed Service P/A", "Total Year 1 (Ex GST)"}
	f.SetSheetRow(sh, "A5", &headers)
	f.SetCellStyle(sh, "A5", "E5", st.header)

	row := 6
	for _, r := range data.Rooms {
		rs := fmt.Sprintf("%d", row)
		f.SetCellValue(sh, "A"+rs, sanitizeExcelCell(r.Room.Name))
		f.SetCellValue(sh, "B"+rs, sanitizeExcelCell(r.Classification))
		f.SetCellValue(sh, "C"+rs, r.Costs.Upfront.InexactFloat64())
		f.SetCellValue(sh, "D"+rs, r.Costs.ManagedService.InexactFloat64())
		f.SetCellValue(sh, "E"+rs, r.Costs.Year1.InexactFloat64())
		f.SetCellStyle(sh, "A"+rs, "B"+rs, st.row)
		f.SetCellStyle(sh, "C"+rs, "E"+rs, st.money)
		row++
	}

	rs := fmt.Sprintf("%d", row)
	f.SetCellValue(sh, "D"+rs, "Total Year 1:")
	f.SetCellValue(sh, "E"+rs, data.Totals.GrandTotal.InexactFloat64())
	f.SetCellStyle(sh, "D"+rs, "E"+rs, st.total)
	row += 2

	if len(data.Totals.AddOns) > 0 {
		f.SetCellValue(sh, fmt.Sprintf("A%d", row), "Optional Upgrades (Not included in Total above)")
		f.SetCellStyle(sh, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), st.subtitle)
		row++
		addOnHeaders := []any{"Upgrade Item", "Qty", "Description", "Unit Cost", "Total Cost"}
		f.SetSheetRow(sh, fmt.Sprintf("A%d", row), &addOnHeaders)
		f.SetCellStyle(sh, fmt.Sprintf("A%d", row), fmt.Sprintf("E%d", row), st.header)
		row++
		for _, a := range data.Totals.AddOns {
			rs := fmt.Sprintf("%d", row)
			values := []any{a.Item, a.Qty, a.Description, a.UnitPrice.InexactFloat64(), a.Total.InexactFloat64()}
			f.SetSheetRow(sh, "A"+rs, &values)
			f.SetCellStyle(sh, "A"+rs, "C"+rs, st.row)
			f.SetCellStyle(sh, "D"+rs, "E"+rs, st.money)
			row++
		}
	}
	return nil
}

func writeBOMSheet(f *excelize.File, st bomStyles, data ProposalData) error {
	sh := bomSheet
	widths := map[string]float64{"A": 18, "B": 8, "C": 70, "D": 16, "E": 16}
	for c, w := range widths {
		if err := f.SetColWidth(sh, c, c, w); err != nil {
			return fmt.Errorf("set col width %s: %w", c, err)
		}
	}

	row := 1
	for _, r := range data.Rooms {
		rs := fmt.Sprintf("%d", row)
		if err := f.MergeCell(sh, "A"+rs, "E"+rs); err != nil {
			return fmt.Errorf("merge room header: %w", err)
		}
		f.SetCellValue(sh, "A"+rs, sanitizeExcelCell(r.Header))
		f.SetCellStyle(sh, "A"+rs, "E"+rs, st.header)
		row++

		headers := []any{"Item", "Qty", "Description / Model", "Unit Price", "Total"}
		f.SetSheetRow(sh, fmt.Sprintf("A%d", row), &headers)
		f.SetCellStyle(sh, fmt.Sprintf("A%d", row), fmt.Sprintf("E%d", row), st.section)
		row++

		for _, s := range r.Sections {
			rs := fmt.Sprintf("%d", row)
			f.SetCellValue(sh, "A"+rs, s.Title)
			f.SetCellStyle(sh, "A"+rs, "E"+rs, st.section)
			row++

			for _, br := range s.Rows {
				rs := fmt.Sprintf("%d", row)
				f.SetCellValue(sh, "A"+rs, sanitizeExcelCell(br.Category))
				f.SetCellValue(sh, "B"+rs, br.Qty)
				f.SetCellValue(sh, "C"+rs, sanitizeExcelCell(br.Description))
				style := st.row
				if br.Partner {
					style = st.partner
					f.SetCellValue(sh, "D"+rs, "By Partner")
				} else {
					f.SetCellValue(sh, "D"+rs, br.UnitPrice.InexactFloat64())
					f.SetCellValue(sh, "E"+rs, br.Total.InexactFloat64())
				}
				f.SetCellStyle(sh, "A"+rs, "C"+rs, style)
				f.SetCellStyle(sh, "D"+rs, "E"+rs, st.money)
				row++
			}
		}

		rs = fmt.Sprintf("%d", row)
		f.SetCellValue(sh, "C"+rs, "Room Total (Year 1)")
		f.SetCellValue(sh, "E"+rs, r.Subtotal().InexactFloat64())
		f.SetCellStyle(sh, "C"+rs, "E"+rs, st.total)
		row += 2
	}
	return nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}

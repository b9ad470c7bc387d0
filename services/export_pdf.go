package services

import (
	"fmt"
	"strconv"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	pdfAccent = &props.Color{Red: 0, Green: 102, Blue: 204}
	pdfAlert  = &props.Color{Red: 255, Green: 0, Blue: 0}
	pdfWhite  = &props.Color{Red: 255, Green: 255, Blue: 255}
	pdfMuted  = &props.Color{Red: 120, Green: 120, Blue: 120}
)

// GeneratePDF renders the proposal as a PDF using maroto/v2. It carries the
// same content as the Word document.
func GeneratePDF(data ProposalData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(12).
		WithRightMargin(15).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   pdfMuted,
		}).
		Build()

	m := maroto.New(cfg)

	addPDFTitle(m, data)
	addPDFHeading(m, "Partnership Overview", 14, nil)
	addPDFBody(m, data.Overview)

	addPDFHeading(m, "1. Master Room Summary & Pricing", 14, nil)
	addPDFSummaryTable(m, data)
	addPDFAddOns(m, data)

	addPDFHeading(m, "2. Detailed Room Specifications", 16, nil)
	for _, room := range data.Rooms {
		addPDFRoom(m, room)
	}

	addPDFHeading(m, "Managed Service Agreement", 14, nil)
	addPDFBody(m, data.MSA)
	addPDFHeading(m, "Exclusions", 14, nil)
	for _, ex := range data.Exclusions {
		addPDFBody(m, ex)
	}

	m.AddRows(row.New(6))
	addPDFBody(m, data.Closing)
	addPDFBody(m, "Regards,")
	m.AddAutoRow(col.New(12).Add(text.New(data.Signatory, props.Text{Size: 10, Style: fontstyle.Bold})))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

// addPDFTitle prints the client and date line.
func addPDFTitle(m core.Maroto, data ProposalData) {
	m.AddRows(
		row.New(8).Add(
			col.New(8).Add(
				text.New(fmt.Sprintf("Proposal: %s - %s", data.Client, data.ModeLabel), props.Text{
					Size:  9,
					Align: align.Left,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
			col.New(4).Add(
				text.New("Date: "+data.Date, props.Text{
					Size:  9,
					Align: align.Right,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
	)
}

func addPDFHeading(m core.Maroto, s string, size float64, color *props.Color) {
	m.AddRows(row.New(4))
	m.AddAutoRow(col.New(12).Add(text.New(s, props.Text{
		Size:  size,
		Style: fontstyle.Bold,
		Color: color,
	})))
	m.AddRows(row.New(2))
}

func addPDFBody(m core.Maroto, s string) {
	m.AddAutoRow(col.New(12).Add(text.New(s, props.Text{
		Size:   10,
		Align:  align.Left,
		Bottom: 2,
	})))
}

// shadeCell converts a hex fill such as "D9E2F3" into a cell style.
func shadeCell(hex string) *props.Cell {
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil
	}
	return &props.Cell{BackgroundColor: &props.Color{
		Red:   int(v >> 16 & 0xFF),
		Green: int(v >> 8 & 0xFF),
		Blue:  int(v & 0xFF),
	}}
}

// addPDFTableRow adds one table row with the given column widths. Columns
// from rightFrom onwards are right aligned; -1 disables that.
func addPDFTableRow(m core.Maroto, widths []int, cells []string, style props.Text, fill string, rightFrom int) {
	cellStyle := shadeCell(fill)
	cols := make([]core.Col, len(cells))
	for i, c := range cells {
		ts := style
		if rightFrom >= 0 && i >= rightFrom {
			ts.Align = align.Right
		}
		column := col.New(widths[i]).Add(text.New(c, ts))
		if cellStyle != nil {
			column = column.WithStyle(cellStyle)
		}
		cols[i] = column
	}
	m.AddAutoRow(cols...)
}

func addPDFSummaryTable(m core.Maroto, data ProposalData) {
	widths := []int{3, 3, 2, 2, 2}
	header := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Center, Top: 1, Bottom: 1}
	body := props.Text{Size: 8, Align: align.Left, Top: 1, Bottom: 1}

	addPDFTableRow(m, widths,
		[]string{"Room Name", "Classification", "Supply & Services", "Managed Service P/A (5 Years)", "Total Year 1 (Ex GST)"},
		header, ShadeHeader, -1)

	for _, r := range data.Rooms {
		addPDFTableRow(m, widths, []string{
			r.Room.Name,
			r.Classification,
			FormatWholeMoney(r.Costs.Upfront),
			FormatWholeMoney(r.Costs.ManagedService),
			FormatMoney(r.Costs.Year1),
		}, body, "", 2)
	}

	m.AddRows(row.New(4))
	m.AddAutoRow(col.New(12).Add(text.New(
		"TOTAL YEAR 1 PROJECT VALUE (EX GST): "+FormatMoney(data.Totals.GrandTotal),
		props.Text{Size: 14, Style: fontstyle.Bold, Align: align.Right, Color: pdfAccent},
	)))
}

func addPDFAddOns(m core.Maroto, data ProposalData) {
	if len(data.Totals.AddOns) == 0 {
		return
	}
	addPDFHeading(m, "Optional Upgrades (Not included in Total above)", 12, pdfAlert)

	widths := []int{2, 1, 5, 2, 2}
	header := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Center, Top: 1, Bottom: 1}
	body := props.Text{Size: 8, Align: align.Left, Top: 1, Bottom: 1}

	addPDFTableRow(m, widths, []string{"Upgrade Item", "Qty", "Description", "Unit Cost", "Total Cost"}, header, ShadeSection, -1)
	for _, a := range data.Totals.AddOns {
		addPDFTableRow(m, widths, []string{
			a.Item,
			strconv.Itoa(a.Qty),
			a.Description,
			FormatMoney(a.UnitPrice),
			FormatMoney(a.Total),
		}, body, "", 3)
	}
}

func addPDFRoom(m core.Maroto, r RoomDetail) {
	m.AddRows(row.New(6))
	m.AddAutoRow(col.New(12).Add(text.New(r.Header, props.Text{
		Size: 10, Style: fontstyle.Bold, Color: pdfWhite, Top: 2, Bottom: 2, Left: 2,
	})).WithStyle(shadeCell(ShadeRoomBar)))
	m.AddRows(row.New(30).Add(col.New(12).Add(text.New(FloorPlanText, props.Text{
		Size: 9, Align: align.Center, Top: 13, Color: pdfMuted,
	}))))

	for _, b := range r.TextBlocks {
		m.AddAutoRow(col.New(12).Add(text.New(b.Heading, props.Text{Size: 10, Style: fontstyle.Bold, Top: 3})))
		addPDFBody(m, b.Body)
	}

	widths := []int{2, 1, 7, 2}
	header := props.Text{Size: 8, Style: fontstyle.Bold, Top: 1, Bottom: 1}
	body := props.Text{Size: 8, Top: 1, Bottom: 1}

	m.AddRows(row.New(3))
	addPDFTableRow(m, widths, []string{"Item", "Qty", "Description / Model", "Price"}, header, ShadeHeader, -1)
	for _, s := range r.Sections {
		m.AddAutoRow(col.New(12).Add(text.New(s.Title, header)).WithStyle(shadeCell(s.Shade)))
		for _, br := range s.Rows {
			fill := ""
			price := FormatMoney(br.Total)
			switch {
			case br.Partner:
				fill = ShadePartner
				price = "By Partner"
			case s.Optional:
				price = ""
			}
			addPDFTableRow(m, widths, []string{br.Category, strconv.Itoa(br.Qty), br.Description, price}, body, fill, 3)
		}
	}
	addPDFTableRow(m, widths, []string{"Room Total (Year 1)", "", "", FormatMoney(r.Subtotal())}, header, ShadeSection, 3)
}

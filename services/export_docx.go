package services

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
	"github.com/gomutex/godocx/wml/ctypes"
	"github.com/gomutex/godocx/wml/stypes"
)

const (
	docxTableStyle = "TableGrid"
	docxAccent     = "0066CC"
	docxAlert      = "FF0000"
)

// GenerateDOCX renders the client-facing Word proposal and returns the file
// contents.
func GenerateDOCX(data ProposalData) ([]byte, error) {
	doc, err := godocx.NewDocument()
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	w := &docxWriter{doc: doc}

	w.heading("Partnership Overview", 14, "")
	w.body(data.Overview)

	w.heading("1. Master Room Summary & Pricing", 14, "")
	w.summaryTable(data)
	w.grandTotal(data)
	w.addOnTable(data)

	doc.AddPageBreak()
	w.heading("2. Detailed Room Specifications", 16, "")
	for _, room := range data.Rooms {
		w.room(room)
	}

	doc.AddPageBreak()
	w.heading("Managed Service Agreement", 14, "")
	w.body(data.MSA)
	w.heading("Exclusions", 14, "")
	for _, ex := range data.Exclusions {
		w.body(ex)
	}

	doc.AddParagraph("")
	w.body(data.Closing)
	w.body("Regards,")
	doc.AddParagraph("").AddText(data.Signatory).Bold(true)

	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		return nil, fmt.Errorf("write docx: %w", err)
	}
	return buf.Bytes(), nil
}

// docxWriter wraps the handful of document operations the proposal uses.
type docxWriter struct {
	doc *docx.RootDoc
}

func (w *docxWriter) heading(text string, size uint64, color string) {
	r := w.doc.AddParagraph("").AddText(text).Bold(true).Size(size)
	if color != "" {
		r.Color(color)
	}
}

// body writes text as paragraphs, one per line.
func (w *docxWriter) body(text string) {
	for _, line := range strings.Split(text, "\n") {
		w.doc.AddParagraph(line)
	}
}

func (w *docxWriter) table() *docx.Table {
	t := w.doc.AddTable()
	t.Style(docxTableStyle)
	return t
}

func addCells(t *docx.Table, bold bool, cells ...string) {
	addShadedCells(t, bold, "", cells...)
}

// addShadedCells adds a row whose cell paragraphs carry a clear fill of the
// given hex colour. godocx keeps the cell properties unexported, so the fill
// goes on the paragraph, which spans the cell width.
func addShadedCells(t *docx.Table, bold bool, fill string, cells ...string) {
	row := t.AddRow()
	for _, c := range cells {
		p := row.AddCell().AddParagraph("")
		if fill != "" {
			shade(p, fill)
		}
		r := p.AddText(c)
		if bold {
			r.Bold(true)
		}
	}
}

func shade(p *docx.Paragraph, fill string) {
	ct := p.GetCT()
	if ct.Property == nil {
		ct.Property = ctypes.DefaultParaProperty()
	}
	ct.Property.Shading = ctypes.NewShading().SetShadingType(stypes.ShdClear).SetColor("auto").SetFill(fill)
}

func (w *docxWriter) summaryTable(data ProposalData) {
	t := w.table()
	addShadedCells(t, true, ShadeHeader, "Room Name", "Classification", "Supply & Services", "Managed Service P/A (5 Years)", "Total Year 1 (Ex GST)")
	for _, r := range data.Rooms {
		addCells(t, false,
			r.Room.Name,
			r.Classification,
			FormatWholeMoney(r.Costs.Upfront),
			FormatWholeMoney(r.Costs.ManagedService),
			FormatMoney(r.Costs.Year1),
		)
	}
	addShadedCells(t, true, ShadeSection,
		"Total",
		"",
		FormatWholeMoney(data.Totals.TotalUpfront),
		FormatWholeMoney(data.Totals.TotalManagedService),
		FormatMoney(data.Totals.GrandTotal),
	)
}

func (w *docxWriter) grandTotal(data ProposalData) {
	w.doc.AddParagraph("")
	w.doc.AddParagraph("").
		AddText("TOTAL YEAR 1 PROJECT VALUE (EX GST): " + FormatMoney(data.Totals.GrandTotal)).
		Bold(true).Size(16).Color(docxAccent)
}

func (w *docxWriter) addOnTable(data ProposalData) {
	if len(data.Totals.AddOns) == 0 {
		return
	}
	w.heading("Optional Upgrades (Not included in Total above)", 12, docxAlert)
	t := w.table()
	addShadedCells(t, true, ShadeUpgrade, "Upgrade Item", "Qty", "Description", "Unit Cost", "Total Cost")
	for _, a := range data.Totals.AddOns {
		addCells(t, false, a.Item, strconv.Itoa(a.Qty), a.Description, FormatMoney(a.UnitPrice), FormatMoney(a.Total))
	}
}

func (w *docxWriter) room(r RoomDetail) {
	hdr := w.table()
	addCells(hdr, true, r.Header)

	img := w.table()
	addCells(img, false, FloorPlanText)

	for _, b := range r.TextBlocks {
		w.doc.AddParagraph("").AddText(b.Heading).Bold(true).Size(11)
		w.body(b.Body)
	}

	bom := w.table()
	addShadedCells(bom, true, ShadeHeader, "Item", "Qty", "Description / Model")
	for _, s := range r.Sections {
		addShadedCells(bom, true, s.Shade, s.Title, "", "")
		for _, row := range s.Rows {
			fill := ""
			if row.Partner {
				fill = ShadePartner
			}
			addShadedCells(bom, false, fill, row.Category, strconv.Itoa(row.Qty), row.Description)
		}
	}
	addShadedCells(bom, true, ShadeSection, "Room Total (Year 1)", "", FormatMoney(r.Subtotal()))

	w.doc.AddParagraph("")
}

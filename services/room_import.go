package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"
)

// Room list columns, matched case-insensitively.
var roomFileHeaders = map[string]string{
	"room name":            "name",
	"room":                 "name",
	"name":                 "name",
	"distance":             "distance",
	"distance (m)":         "distance",
	"furthest participant": "distance",
	"package":              "package",
	"tier":                 "package",
}

// IsRoomFile reports whether filename has an extension ParseRoomFile reads.
func IsRoomFile(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".xlsx":
		return true
	}
	return false
}

// ParseRoomFile reads a room list exported from a floor plan schedule. The
// first row holds headers; a Room Name column and either Distance or Package
// are required. Rows that cannot be read are skipped with a reason, using
// the row number as seen in the spreadsheet.
func ParseRoomFile(r io.Reader, filename string) ([]RoomInput, []SkippedLine, error) {
	var rows [][]string
	var err error

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		rows, err = readCSVRows(r)
	case ".xlsx":
		rows, err = readExcelRows(r)
	default:
		return nil, nil, fmt.Errorf("%w: unsupported file type %q", ErrRoomFile, filepath.Ext(filename))
	}
	if err != nil {
		return nil, nil, err
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("%w: need a header row and at least one room", ErrRoomFile)
	}

	cols := mapRoomHeaders(rows[0])
	if _, ok := cols["name"]; !ok {
		return nil, nil, fmt.Errorf("%w: no Room Name column", ErrRoomFile)
	}
	_, hasDist := cols["distance"]
	_, hasPkg := cols["package"]
	if !hasDist && !hasPkg {
		return nil, nil, fmt.Errorf("%w: no Distance or Package column", ErrRoomFile)
	}

	var inputs []RoomInput
	var skipped []SkippedLine
	for i, row := range rows[1:] {
		rowNum := i + 2
		cell := func(key string) string {
			idx, ok := cols[key]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		name, dist, pkg := cell("name"), cell("distance"), cell("package")
		if name == "" && dist == "" && pkg == "" {
			continue
		}
		text := strings.Join(row, ", ")
		if name == "" {
			skipped = append(skipped, SkippedLine{Line: rowNum, Text: text, Reason: "room name is empty"})
			continue
		}

		in := RoomInput{Name: name, Package: pkg}
		if dist != "" {
			d, err := cast.ToFloat64E(normaliseNumber(dist))
			if err != nil {
				skipped = append(skipped, SkippedLine{Line: rowNum, Text: text, Reason: "distance is not a number"})
				continue
			}
			in.Distance = d
		} else if pkg == "" {
			skipped = append(skipped, SkippedLine{Line: rowNum, Text: text, Reason: "distance is empty"})
			continue
		}
		inputs = append(inputs, in)
	}
	return inputs, skipped, nil
}

func readCSVRows(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRoomFile, err)
	}
	return rows, nil
}

func readExcelRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRoomFile, err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRoomFile, err)
	}
	return rows, nil
}

// mapRoomHeaders returns the column index of each recognised field. The
// first matching column wins.
func mapRoomHeaders(headers []string) map[string]int {
	cols := make(map[string]int, 3)
	for i, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(h))
		norm = strings.TrimSpace(strings.TrimSuffix(norm, "*"))
		key, ok := roomFileHeaders[norm]
		if !ok {
			continue
		}
		if _, seen := cols[key]; !seen {
			cols[key] = i
		}
	}
	return cols
}

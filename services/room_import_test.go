package services

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestParseRoomFile_CSV(t *testing.T) {
	csvText := "Level,Room Name,Distance (m),Package\n" +
		"3,Huddle 1, 2.5m,\n" +
		"3,Boardroom,,Boardroom\n" +
		",,,\n" +
		"4,Training,six,\n" +
		"4,,5,\n" +
		"4,Store Room,,\n" +
		"5,\"Exec, North\",\"1,200\",\n"

	inputs, skipped, err := ParseRoomFile(strings.NewReader(csvText), "rooms.CSV")
	if err != nil {
		t.Fatalf("ParseRoomFile() error = %v", err)
	}

	want := []RoomInput{
		{Name: "Huddle 1", Distance: 2.5},
		{Name: "Boardroom", Package: "Boardroom"},
		{Name: "Exec, North", Distance: 1200},
	}
	if len(inputs) != len(want) {
		t.Fatalf("got %d inputs, want %d: %+v", len(inputs), len(want), inputs)
	}
	for i := range want {
		if inputs[i] != want[i] {
			t.Errorf("input %d = %+v, want %+v", i, inputs[i], want[i])
		}
	}

	wantSkipped := []struct {
		line   int
		reason string
	}{
		{5, "distance is not a number"},
		{6, "room name is empty"},
		{7, "distance is empty"},
	}
	if len(skipped) != len(wantSkipped) {
		t.Fatalf("got %d skipped, want %d: %+v", len(skipped), len(wantSkipped), skipped)
	}
	for i, w := range wantSkipped {
		if skipped[i].Line != w.line || skipped[i].Reason != w.reason {
			t.Errorf("skipped %d = (%d, %q), want (%d, %q)", i, skipped[i].Line, skipped[i].Reason, w.line, w.reason)
		}
	}
}

func TestParseRoomFile_Excel(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"Room", "Furthest Participant"},
		{"Huddle", 2.5},
		{"Board", 7},
	}
	for i, r := range rows {
		r := r
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+1), &r); err != nil {
			t.Fatalf("write row: %v", err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	f.Close()

	inputs, skipped, err := ParseRoomFile(&buf, "schedule.xlsx")
	if err != nil {
		t.Fatalf("ParseRoomFile() error = %v", err)
	}
	if len(skipped) != 0 {
		t.Errorf("skipped = %+v, want none", skipped)
	}
	if len(inputs) != 2 || inputs[0].Name != "Huddle" || inputs[1].Distance != 7 {
		t.Errorf("inputs = %+v", inputs)
	}
}

func TestParseRoomFile_Errors(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  string
	}{
		{"unsupported extension", "rooms.txt", "Room Name,Distance\nA,2\n"},
		{"header only", "rooms.csv", "Room Name,Distance\n"},
		{"no name column", "rooms.csv", "Label,Distance\nA,2\n"},
		{"no distance or package", "rooms.csv", "Room Name,Floor\nA,2\n"},
		{"not a workbook", "rooms.xlsx", "Room Name,Distance\nA,2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseRoomFile(strings.NewReader(tt.content), tt.filename)
			if !errors.Is(err, ErrRoomFile) {
				t.Errorf("ParseRoomFile() error = %v, want ErrRoomFile", err)
			}
		})
	}
}

func TestIsRoomFile(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"rooms.csv", true},
		{"Rooms.XLSX", true},
		{"rooms.txt", false},
		{"-", false},
	}
	for _, tt := range tests {
		if got := IsRoomFile(tt.name); got != tt.want {
			t.Errorf("IsRoomFile(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

package services

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
)

// RoomInput is one room as entered by the salesperson. When Package is set
// the room is priced from that tier by name and Distance is informational.
type RoomInput struct {
	Name     string  `json:"name"`
	Distance float64 `json:"distance"`
	Package  string  `json:"package,omitempty"`
}

// SkippedLine records a pasted line that could not be parsed.
type SkippedLine struct {
	Line   int
	Text   string
	Reason string
}

// ParseRoomLines parses pasted "Name, Distance" lines. Tab separated rows
// copied from a spreadsheet are accepted. Bad lines are reported and skipped,
// never aborting the batch.
func ParseRoomLines(text string) ([]RoomInput, []SkippedLine) {
	var inputs []RoomInput
	var skipped []SkippedLine

	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		line = strings.ReplaceAll(line, "\t", ",")
		if !strings.Contains(line, ",") {
			skipped = append(skipped, SkippedLine{Line: i + 1, Text: line, Reason: "missing comma"})
			continue
		}

		parts := strings.Split(line, ",")
		name := strings.TrimSpace(parts[0])
		distText := strings.ToLower(strings.TrimSpace(parts[len(parts)-1]))
		distText = strings.TrimSpace(strings.ReplaceAll(distText, "m", ""))

		dist, err := strconv.ParseFloat(distText, 64)
		if err != nil {
			skipped = append(skipped, SkippedLine{Line: i + 1, Text: line, Reason: "distance is not a number"})
			continue
		}
		inputs = append(inputs, RoomInput{Name: name, Distance: dist})
	}

	return inputs, skipped
}

// Room is a resolved room: its input plus the tier it prices from.
type Room struct {
	Name     string
	Distance float64
	Mode     Mode
	Tier     Tier
}

// RoomError reports a room that could not be resolved to a tier.
type RoomError struct {
	Input RoomInput
	Err   error
}

func (e RoomError) Error() string {
	return fmt.Sprintf("room %q: %v", e.Input.Name, e.Err)
}

func (e RoomError) Unwrap() error { return e.Err }

// BuildRooms resolves every input against cat. Rooms that fail are returned
// as RoomErrors while the rest are kept. The result is ordered by ascending
// distance; rooms at the same distance keep their input order.
func BuildRooms(cat *Catalog, mode Mode, inputs []RoomInput) ([]Room, []RoomError) {
	rooms := make([]Room, 0, len(inputs))
	var errs []RoomError

	for _, in := range inputs {
		var tier Tier
		var err error
		if strings.TrimSpace(in.Package) != "" {
			tier, err = cat.Tier(in.Package, mode)
		} else {
			tier, err = cat.Resolve(in.Distance, mode)
		}
		if err != nil {
			errs = append(errs, RoomError{Input: in, Err: err})
			continue
		}
		name := strings.TrimSpace(in.Name)
		if name == "" {
			name = fmt.Sprintf("Room %d", len(rooms)+1)
		}
		rooms = append(rooms, Room{Name: name, Distance: in.Distance, Mode: mode, Tier: tier})
	}

	sort.SliceStable(rooms, func(i, j int) bool {
		return rooms[i].Distance < rooms[j].Distance
	})
	return rooms, errs
}

// RoomList is an ordered list of rooms being assembled for one proposal.
type RoomList struct {
	rooms []Room
}

// Add appends r to the list.
func (l *RoomList) Add(r Room) {
	l.rooms = append(l.rooms, r)
}

// Remove deletes the room at index. It reports false when index is out of range.
func (l *RoomList) Remove(index int) bool {
	if index < 0 || index >= len(l.rooms) {
		return false
	}
	l.rooms = slices.Delete(l.rooms, index, index+1)
	return true
}

func (l *RoomList) Len() int { return len(l.rooms) }

// Rooms returns a copy of the list in insertion order.
func (l *RoomList) Rooms() []Room {
	return slices.Clone(l.rooms)
}

package services

import "errors"

// Sentinel errors returned by the quoting pipeline. Callers test for them
// with errors.Is; UserMessage maps them to status-line text.
var (
	ErrMissingClient      = errors.New("client name is required")
	ErrNoRooms            = errors.New("no valid rooms")
	ErrNoTier             = errors.New("distance exceeds every tier")
	ErrInvalidDistance    = errors.New("invalid distance")
	ErrUnknownTier        = errors.New("unknown tier")
	ErrUnknownMode        = errors.New("unknown project mode")
	ErrEmptyCatalog       = errors.New("catalog has no tiers")
	ErrPricelistMissing   = errors.New("price list not found")
	ErrPricelistMalformed = errors.New("price list is malformed")
	ErrFileLocked         = errors.New("file is open in another program")
	ErrRoomFile           = errors.New("room list file could not be read")
)

// UserMessage returns the short status text shown to the salesperson for
// err. Unknown errors fall back to "Error: " plus the error text.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return "Ready"
	case errors.Is(err, ErrMissingClient):
		return "Error: Enter Client Name"
	case errors.Is(err, ErrNoRooms):
		return "Error: No valid rooms found. Format: 'Name, Distance'"
	case errors.Is(err, ErrNoTier):
		return "Error: Distance exceeds the largest room tier"
	case errors.Is(err, ErrInvalidDistance):
		return "Error: Distance must be a positive number of metres"
	case errors.Is(err, ErrUnknownTier):
		return "Error: Unknown room package"
	case errors.Is(err, ErrUnknownMode):
		return "Error: Unknown project scope"
	case errors.Is(err, ErrPricelistMissing):
		return "Error: File 'master_pricelist.xlsx' not found"
	case errors.Is(err, ErrPricelistMalformed), errors.Is(err, ErrEmptyCatalog):
		return "Error: Price list could not be read. Check the column layout"
	case errors.Is(err, ErrRoomFile):
		return "Error: Room list must be a .csv or .xlsx with Room Name and Distance columns"
	case errors.Is(err, ErrFileLocked):
		return "ERROR: PERMISSION DENIED. Close Word and try again"
	default:
		return "Error: " + err.Error()
	}
}

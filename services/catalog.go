package services

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Mode selects which half of the catalog a proposal is priced from.
type Mode string

const (
	// ModePartner: the partner supplies the Cisco/VC hardware, Alder supplies
	// the display, mount, cabling and services.
	ModePartner Mode = "partner"
	// ModeFitOut: Alder supplies every piece of AV hardware as a package.
	ModeFitOut Mode = "fitout"
)

// Modes lists every supported mode in display order.
var Modes = []Mode{ModePartner, ModeFitOut}

// Label is the human readable scope name used in documents and dropdowns.
func (m Mode) Label() string {
	switch m {
	case ModePartner:
		return "Data#3 (Cisco)"
	case ModeFitOut:
		return "Fit-Out (Full Scope)"
	default:
		return string(m)
	}
}

// ParseMode accepts a mode key ("partner", "fitout") or its label.
func ParseMode(s string) (Mode, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	switch {
	case norm == string(ModePartner), strings.HasPrefix(norm, "data#3"), norm == "cisco":
		return ModePartner, nil
	case norm == string(ModeFitOut), strings.HasPrefix(norm, "fit-out"), norm == "fit out":
		return ModeFitOut, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// LineItem is a priced bill-of-materials line outside the fixed tier slots.
type LineItem struct {
	Category    string
	Description string
	UnitPrice   decimal.Decimal
	Qty         int
}

// Total returns UnitPrice × Qty.
func (li LineItem) Total() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Qty)))
}

// Upgrade is an optional per-room add-on offered alongside a tier but never
// included in the room's Year 1 total.
type Upgrade struct {
	Name      string
	UnitPrice decimal.Decimal
	Items     []LineItem
}

// Tier is one fixed pricing/hardware bucket keyed by its distance ceiling.
type Tier struct {
	Name        string
	Mode        Mode
	MaxDistance float64

	VCItems []string
	VCModel string
	VCPrice decimal.Decimal

	DisplayModel string
	DisplayPrice decimal.Decimal
	DisplayQty   int

	MountModel string
	MountPrice decimal.Decimal

	CablingDesc  string
	CablingPrice decimal.Decimal

	ServicePrice         decimal.Decimal
	ManagedServiceAnnual decimal.Decimal

	Extras       []LineItem
	AudioUpgrade *Upgrade
}

// displayQty treats an unset quantity as a single screen.
func (t Tier) displayQty() int {
	if t.DisplayQty <= 0 {
		return 1
	}
	return t.DisplayQty
}

// clone returns a deep copy so callers can never mutate catalog state.
func (t Tier) clone() Tier {
	c := t
	c.VCItems = slices.Clone(t.VCItems)
	c.Extras = slices.Clone(t.Extras)
	if t.AudioUpgrade != nil {
		u := *t.AudioUpgrade
		u.Items = slices.Clone(t.AudioUpgrade.Items)
		c.AudioUpgrade = &u
	}
	return c
}

func (t Tier) validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("tier name is required")
	}
	if t.Mode != ModePartner && t.Mode != ModeFitOut {
		return fmt.Errorf("tier %q: %w: %q", t.Name, ErrUnknownMode, t.Mode)
	}
	if math.IsNaN(t.MaxDistance) || t.MaxDistance < 0 {
		return fmt.Errorf("tier %q: max distance must be >= 0", t.Name)
	}
	prices := map[string]decimal.Decimal{
		"vc":              t.VCPrice,
		"display":         t.DisplayPrice,
		"mount":           t.MountPrice,
		"cabling":         t.CablingPrice,
		"service":         t.ServicePrice,
		"managed service": t.ManagedServiceAnnual,
	}
	for name, p := range prices {
		if p.IsNegative() {
			return fmt.Errorf("tier %q: %s price must not be negative", t.Name, name)
		}
	}
	for _, li := range t.Extras {
		if li.UnitPrice.IsNegative() || li.Qty < 0 {
			return fmt.Errorf("tier %q: extra %q has a negative price or quantity", t.Name, li.Description)
		}
	}
	return nil
}

// DefaultBookingPanelPrice is the unit price of the optional room booking
// panel offered once per fit-out room.
var DefaultBookingPanelPrice = decimal.NewFromInt(2200)

// BookingPanelDescription describes the optional booking panel line.
const BookingPanelDescription = "Crestron TS-1070 with Lightbar kit and Multi Surface Mount"

// Catalog is an immutable, ascending-ordered set of tiers.
type Catalog struct {
	tiers             []Tier
	bookingPanelPrice decimal.Decimal
}

// CatalogOption customises a Catalog at construction.
type CatalogOption func(*Catalog)

// WithBookingPanelPrice overrides the booking panel add-on price.
func WithBookingPanelPrice(p decimal.Decimal) CatalogOption {
	return func(c *Catalog) { c.bookingPanelPrice = p }
}

// NewCatalog validates and copies tiers, sorting them by ascending distance
// ceiling. Tiers that share a ceiling keep their input order.
func NewCatalog(tiers []Tier, opts ...CatalogOption) (*Catalog, error) {
	if len(tiers) == 0 {
		return nil, ErrEmptyCatalog
	}
	c := &Catalog{
		tiers:             make([]Tier, 0, len(tiers)),
		bookingPanelPrice: DefaultBookingPanelPrice,
	}
	seen := make(map[string]bool, len(tiers))
	for _, t := range tiers {
		if err := t.validate(); err != nil {
			return nil, err
		}
		key := string(t.Mode) + "/" + strings.ToLower(t.Name)
		if seen[key] {
			return nil, fmt.Errorf("duplicate tier %q in mode %s", t.Name, t.Mode)
		}
		seen[key] = true
		c.tiers = append(c.tiers, t.clone())
	}
	sort.SliceStable(c.tiers, func(i, j int) bool {
		return c.tiers[i].MaxDistance < c.tiers[j].MaxDistance
	})
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Resolve returns the first tier of mode, in ascending ceiling order, whose
// ceiling is greater than or equal to distance. A negative, NaN or infinite
// distance is ErrInvalidDistance rather than the smallest tier.
func (c *Catalog) Resolve(distance float64, mode Mode) (Tier, error) {
	if math.IsNaN(distance) || math.IsInf(distance, 0) || distance < 0 {
		return Tier{}, fmt.Errorf("%w: %v", ErrInvalidDistance, distance)
	}
	for _, t := range c.tiers {
		if t.Mode != mode {
			continue
		}
		if distance <= t.MaxDistance {
			return t.clone(), nil
		}
	}
	return Tier{}, fmt.Errorf("%w: %.2fm is beyond the largest %s ceiling of %.2fm",
		ErrNoTier, distance, mode.Label(), c.MaxCeiling(mode))
}

// Tier looks a tier up by name (case-insensitive) within mode.
func (c *Catalog) Tier(name string, mode Mode) (Tier, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, t := range c.tiers {
		if t.Mode == mode && strings.ToLower(t.Name) == want {
			return t.clone(), nil
		}
	}
	return Tier{}, fmt.Errorf("%w: %q", ErrUnknownTier, name)
}

// Tiers returns copies of the tiers for mode in ascending ceiling order.
func (c *Catalog) Tiers(mode Mode) []Tier {
	var out []Tier
	for _, t := range c.tiers {
		if t.Mode == mode {
			out = append(out, t.clone())
		}
	}
	return out
}

// All returns copies of every tier in ascending ceiling order.
func (c *Catalog) All() []Tier {
	out := make([]Tier, len(c.tiers))
	for i, t := range c.tiers {
		out[i] = t.clone()
	}
	return out
}

// MaxCeiling is the largest distance any tier of mode supports, or 0 if the
// mode has no tiers.
func (c *Catalog) MaxCeiling(mode Mode) float64 {
	var ceiling float64
	for _, t := range c.tiers {
		if t.Mode == mode && t.MaxDistance > ceiling {
			ceiling = t.MaxDistance
		}
	}
	return ceiling
}

// BookingPanelPrice is the unit price of the optional booking panel.
func (c *Catalog) BookingPanelPrice() decimal.Decimal {
	return c.bookingPanelPrice
}

// TierOption is one dropdown entry: the tier and its distance range label.
type TierOption struct {
	Label       string  `json:"label"`
	Name        string  `json:"name"`
	MinDistance float64 `json:"min_distance"`
	MaxDistance float64 `json:"max_distance"`
}

// Options returns dropdown entries for mode, e.g. "Small Room (0m - 3m)".
func (c *Catalog) Options(mode Mode) []TierOption {
	var opts []TierOption
	prev := 0.0
	for _, t := range c.Tiers(mode) {
		opts = append(opts, TierOption{
			Label:       fmt.Sprintf("%s (%sm - %sm)", t.Name, formatMetres(prev), formatMetres(t.MaxDistance)),
			Name:        t.Name,
			MinDistance: prev,
			MaxDistance: t.MaxDistance,
		})
		prev = t.MaxDistance
	}
	return opts
}

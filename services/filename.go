package services

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// SanitizeClientName keeps letters, digits and spaces, then trims trailing
// spaces.
func SanitizeClientName(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' {
			b.WriteRune(r)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// modePrefix is the first four characters of the mode label ("Data", "Fit-").
func modePrefix(m Mode) string {
	label := []rune(m.Label())
	if len(label) > 4 {
		label = label[:4]
	}
	return string(label)
}

// NewFileSuffix draws the 8 hex characters that keep two proposals
// generated in the same second apart. Draw one per generation run and share
// it across the formats written in that run.
func NewFileSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// ProposalFilename builds
// Alder_Quote_<client>_<mode>_<YYYYMMDD-HHMMSS>_<suffix>.<ext>.
func ProposalFilename(client string, mode Mode, now time.Time, suffix, ext string) string {
	return fmt.Sprintf("Alder_Quote_%s_%s_%s_%s.%s",
		SanitizeClientName(client),
		modePrefix(mode),
		now.Format("20060102-150405"),
		suffix,
		strings.TrimPrefix(ext, "."),
	)
}

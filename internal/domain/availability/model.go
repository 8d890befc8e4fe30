// Package availability stores each doctor's recurring weekly slot labels.
// A label like "09:00-10:00" is display text, not a booking constraint; the
// appointment ledger enforces overlap independently.
package availability

import (
	"regexp"
	"strings"
)

var slotPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]-([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidSlotLabel reports whether the label has the HH:MM-HH:MM shape with
// the start strictly before the end. Zero-padded times compare correctly as
// strings.
func ValidSlotLabel(label string) bool {
	if !slotPattern.MatchString(label) {
		return false
	}
	start, end, _ := strings.Cut(label, "-")
	return start < end
}

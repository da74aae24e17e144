// Package qr contains the pure parsing core of the intake flow: splitting the
// card's QR payload into identity fields and normalizing its date strings.
package qr

import "strings"

// minFields is the number of |-separated fields a CCCD QR payload must carry.
// Fewer than this is rejected unconditionally.
const minFields = 7

// Fields is the structured result of parsing a QR payload. Optional fields
// that could not be resolved are empty strings, never absent keys.
type Fields struct {
	IDNumber    string `json:"cccd_moi"`
	OldIDNumber string `json:"cmnd_cu"`
	Name        string `json:"name"`
	DateOfBirth string `json:"dob"`
	Gender      string `json:"gender"`
	Address     string `json:"address"`
	IssueDate   string `json:"issue_date"`
}

// ParseText splits a raw QR payload into identity fields. It returns ok=false
// when the payload has fewer than seven fields; extra fields are ignored.
// Date fields that fail normalization are emitted as empty strings without
// failing the whole record.
func ParseText(text string) (*Fields, bool) {
	if text == "" {
		return nil, false
	}

	parts := strings.Split(strings.TrimSpace(text), "|")
	if len(parts) < minFields {
		return nil, false
	}

	return &Fields{
		IDNumber:    strings.TrimSpace(parts[0]),
		OldIDNumber: strings.TrimSpace(parts[1]),
		Name:        strings.TrimSpace(parts[2]),
		DateOfBirth: normalizeOrEmpty(strings.TrimSpace(parts[3])),
		Gender:      strings.TrimSpace(parts[4]),
		Address:     strings.TrimSpace(parts[5]),
		IssueDate:   normalizeOrEmpty(strings.TrimSpace(parts[6])),
	}, true
}

func normalizeOrEmpty(s string) string {
	d, ok := NormalizeDate(s)
	if !ok {
		return ""
	}
	return d.Format(ISODate)
}

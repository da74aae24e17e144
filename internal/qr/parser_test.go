package qr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseText(t *testing.T) {
	t.Run("parses a well formed payload", func(t *testing.T) {
		fields, ok := ParseText("079201012345|012345678|NGUYEN VAN A|01/01/1990|Male|Hanoi|01/01/2020")
		require.True(t, ok)
		assert.Equal(t, &Fields{
			IDNumber:    "079201012345",
			OldIDNumber: "012345678",
			Name:        "NGUYEN VAN A",
			DateOfBirth: "1990-01-01",
			Gender:      "Male",
			Address:     "Hanoi",
			IssueDate:   "2020-01-01",
		}, fields)
	})

	t.Run("trims whitespace from every field", func(t *testing.T) {
		fields, ok := ParseText(" 079201012345 | 012345678 |  NGUYEN VAN A | 01/01/1990 | Nam | Ha Noi | 01/01/2020 ")
		require.True(t, ok)
		assert.Equal(t, "079201012345", fields.IDNumber)
		assert.Equal(t, "NGUYEN VAN A", fields.Name)
		assert.Equal(t, "Ha Noi", fields.Address)
	})

	t.Run("rejects payloads with fewer than seven fields", func(t *testing.T) {
		for _, text := range []string{
			"",
			"079201012345",
			"a|b|c|d|e",
			"079201012345|012345678|NGUYEN VAN A|01/01/1990|Male|Hanoi",
		} {
			_, ok := ParseText(text)
			assert.False(t, ok, "payload %q should be rejected", text)
		}
	})

	t.Run("ignores fields beyond the seventh", func(t *testing.T) {
		fields, ok := ParseText("111|222|NAME|01/01/2000|Nu|HCMC|02/02/2021|extra|more")
		require.True(t, ok)
		assert.Equal(t, "111", fields.IDNumber)
		assert.Equal(t, "2021-02-02", fields.IssueDate)
	})

	t.Run("unparseable dates become empty strings without failing the record", func(t *testing.T) {
		fields, ok := ParseText("111|222|NAME|31/13/2020|Nam|HN|bogus")
		require.True(t, ok)
		assert.Empty(t, fields.DateOfBirth)
		assert.Empty(t, fields.IssueDate)
	})

	t.Run("round trips through canonical serialization", func(t *testing.T) {
		fields, ok := ParseText("079201012345|012345678|NGUYEN VAN A|01/01/1990|Male|Hanoi|01/01/2020")
		require.True(t, ok)

		serialized := strings.Join([]string{
			fields.IDNumber, fields.OldIDNumber, fields.Name, fields.DateOfBirth,
			fields.Gender, fields.Address, fields.IssueDate,
		}, "|")

		reparsed, ok := ParseText(serialized)
		require.True(t, ok)
		assert.Equal(t, fields, reparsed)
	})
}

package qr

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDate(t *testing.T) {
	t.Run("slash day month year", func(t *testing.T) {
		d, ok := NormalizeDate("01/01/1990")
		require.True(t, ok)
		assert.Equal(t, time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC), d)
	})

	t.Run("iso year month day", func(t *testing.T) {
		d, ok := NormalizeDate("1990-01-01")
		require.True(t, ok)
		assert.Equal(t, "1990-01-01", d.Format(ISODate))
	})

	t.Run("dash day month year", func(t *testing.T) {
		d, ok := NormalizeDate("15-06-2001")
		require.True(t, ok)
		assert.Equal(t, "2001-06-15", d.Format(ISODate))
	})

	t.Run("idempotent on canonical output", func(t *testing.T) {
		first, ok := NormalizeDate("30/12/1985")
		require.True(t, ok)
		second, ok := NormalizeDate(first.Format(ISODate))
		require.True(t, ok)
		assert.Equal(t, first, second)
	})

	t.Run("empty string is absent", func(t *testing.T) {
		_, ok := NormalizeDate("")
		assert.False(t, ok)
	})

	t.Run("invalid day month combination is absent", func(t *testing.T) {
		_, ok := NormalizeDate("31/13/2020")
		assert.False(t, ok)
	})

	t.Run("garbage is absent", func(t *testing.T) {
		_, ok := NormalizeDate("not-a-date")
		assert.False(t, ok)
	})
}

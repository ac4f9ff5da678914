package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDate(t *testing.T) {
	want := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)

	for _, input := range []string{
		"2026-03-05",
		"05/03/2026",
		"05-03-2026",
		"2026/03/05",
		"05 Mar 2026",
		"Mar 5, 2026",
		"2026-03-05T14:30:00Z",
		"  2026-03-05  ",
	} {
		t.Run(input, func(t *testing.T) {
			got, err := NormalizeDate(input)
			require.NoError(t, err)
			assert.Equal(t, want, got, "time component must be truncated")
		})
	}
}

func TestNormalizeDateRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "   ", "yesterday", "31/02/x", "2026-13-40"} {
		_, err := NormalizeDate(input)
		assert.Error(t, err, "input %q", input)
	}
}

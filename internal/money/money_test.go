package money

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		cases := map[string]int64{
			"10.00":  1000,
			"10":     1000,
			"10.5":   1050,
			"0.07":   7,
			".50":    50,
			"0":      0,
			"-0.00":  0,
			"199.99": 19999,
		}
		for in, want := range cases {
			got, err := Parse(in)
			require.NoError(t, err, in)
			assert.Equal(t, want, got, in)
		}
	})

	t.Run("Malformed", func(t *testing.T) {
		for _, in := range []string{"", ".", "10.123", "1,00", "abc", "1.2.3"} {
			_, err := Parse(in)
			assert.ErrorIs(t, err, ErrMalformed, in)
		}
	})

	t.Run("Negative", func(t *testing.T) {
		_, err := Parse("-1.00")
		assert.ErrorIs(t, err, ErrNegative)
	})

	t.Run("TooLarge", func(t *testing.T) {
		// int64 cents wrap past 19 digits; such amounts must error,
		// never come back negative or truncated.
		for _, in := range []string{
			strings.Repeat("9", 25) + ".00",
			strings.Repeat("9", 19) + ".00",
			"92233720368547758.08", // MaxInt64+1 cents
		} {
			got, err := Parse(in)
			assert.ErrorIs(t, err, ErrTooLarge, in)
			assert.Zero(t, got, in)
		}

		// The largest representable amount still parses.
		got, err := Parse("92233720368547758.07")
		require.NoError(t, err)
		assert.Equal(t, int64(math.MaxInt64), got)
	})
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "10.00", Format(1000))
	assert.Equal(t, "0.07", Format(7))
	assert.Equal(t, "0.00", Format(0))
	assert.Equal(t, "199.99", Format(19999))
}

func TestAdd(t *testing.T) {
	sum, err := Add("10.00", "20.00")
	require.NoError(t, err)
	assert.Equal(t, "30.00", sum)

	_, err = Add("10.00", "bad")
	assert.Error(t, err)

	_, err = Add("92233720368547758.07", "0.01")
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestMul(t *testing.T) {
	total, err := Mul("2.50", 3)
	require.NoError(t, err)
	assert.Equal(t, "7.50", total)

	_, err = Mul("2.50", -1)
	assert.ErrorIs(t, err, ErrNegative)

	_, err = Mul("92233720368547758.07", 2)
	assert.ErrorIs(t, err, ErrTooLarge)

	zero, err := Mul("92233720368547758.07", 0)
	require.NoError(t, err)
	assert.Equal(t, "0.00", zero)
}

func TestRoundTrip(t *testing.T) {
	c, err := Parse("10.10")
	require.NoError(t, err)
	assert.Equal(t, "10.10", Format(c))
}

package amount

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	e := NewExtractor(DefaultMin, DefaultMax)

	tests := []struct {
		name string
		text string
		want float64
		ok   bool
	}{
		{name: "context word with currency", text: "I spent 50 dollars on groceries", want: 50, ok: true},
		{name: "comma grouped with context", text: "paid 2,500 rupees for electricity bill", want: 2500, ok: true},
		{name: "plain number currency pair", text: "coffee was 4.50 dollars", want: 4.5, ok: true},
		{name: "currency before number", text: "rupees 300 for the rickshaw", want: 300, ok: true},
		{name: "dollar sign prefix", text: "groceries came to $42.75 today", want: 42.75, ok: true},
		{name: "comma grouped bare", text: "transferred 12,000 to savings", want: 12000, ok: true},
		{name: "decimal bare", text: "lunch cost 18.25 at the cafe", want: 18.25, ok: true},
		{name: "bare integer", text: "gave the driver 80", want: 80, ok: true},
		{name: "no number at all", text: "lunch with friends"},
		{name: "empty text", text: ""},
		{name: "zero is implausible", text: "paid 0 dollars"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := e.Extract(tt.text)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				require.NotNil(t, got)
				assert.InDelta(t, tt.want, *got, 1e-9)
			} else {
				assert.Nil(t, got)
			}
		})
	}
}

func TestExtractTierPrecedence(t *testing.T) {
	e := NewExtractor(DefaultMin, DefaultMax)

	// the context-anchored 20 must beat the earlier bare 4
	got, ok := e.Extract("met 4 friends and spent 20 dollars")
	require.True(t, ok)
	assert.Equal(t, 20.0, *got)

	// a currency-adjacent number beats a larger bare number
	got, ok = e.Extract("room 512 charged me 60 bucks")
	require.True(t, ok)
	assert.Equal(t, 60.0, *got)
}

func TestExtractBareNumberTakesLargest(t *testing.T) {
	e := NewExtractor(DefaultMin, DefaultMax)

	// no currency token anywhere: the bare tier picks the largest value.
	// Known misfire risk on multi-number utterances (a date plus a price);
	// kept as observed behavior.
	got, ok := e.Extract("on the 3rd I bought 2 coffees and a cake 450")
	require.True(t, ok)
	assert.Equal(t, 450.0, *got)
}

func TestExtractContextTakesFirst(t *testing.T) {
	e := NewExtractor(DefaultMin, DefaultMax)

	got, ok := e.Extract("paid 30 dollars then another 900 dollars")
	require.True(t, ok)
	assert.Equal(t, 30.0, *got, "context-anchored tier takes the first match, not the largest")
}

func TestExtractPlausibilityWindow(t *testing.T) {
	e := NewExtractor(1, 1000)

	t.Run("out of window value discarded", func(t *testing.T) {
		got, ok := e.Extract("won 50000 dollars")
		assert.False(t, ok)
		assert.Nil(t, got)
	})

	t.Run("extraction continues past out-of-window tier match", func(t *testing.T) {
		// 99999 matches the currency tier but is out of window; the bare
		// tier then finds 500
		got, ok := e.Extract("quoted 99999 dollars but we settled on 500")
		require.True(t, ok)
		assert.Equal(t, 500.0, *got)
	})
}

func TestExtractIdempotent(t *testing.T) {
	e := NewExtractor(DefaultMin, DefaultMax)
	for i := 0; i < 3; i++ {
		got, ok := e.Extract("I spent 50 dollars on groceries")
		require.True(t, ok)
		assert.Equal(t, 50.0, *got)
	}
}

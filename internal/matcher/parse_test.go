package matcher

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTitle(t *testing.T) {
	tests := []struct {
		name   string
		title  string
		strike float64
		slot   string
		ok     bool
	}{
		{
			name:   "thousands separators",
			title:  "Bitcoin above $97,500 at 15:00 UTC?",
			strike: 97500,
			slot:   "15:00",
			ok:     true,
		},
		{
			name:   "cents",
			title:  "BTC above $97500.00 at 9:00 UTC",
			strike: 97500,
			slot:   "9:00",
			ok:     true,
		},
		{
			name:  "no strike",
			title: "Will it rain at 15:00 UTC?",
		},
		{
			name:  "no utc marker",
			title: "Bitcoin above $97,500 at 3pm EST",
		},
		{
			name:  "empty",
			title: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, ok := parseTitle(tt.title)
			require.Equal(t, tt.ok, ok)
			if !tt.ok {
				return
			}
			assert.True(t, parsed.strike.Equal(decimal.NewFromFloat(tt.strike)), "strike = %s", parsed.strike)
			assert.Equal(t, tt.slot, parsed.slot)
		})
	}
}

func TestTitleParserMemoizes(t *testing.T) {
	p := newTitleParser()

	title := "Bitcoin above $97,500 at 15:00 UTC?"
	first, ok := p.parse(title)
	require.True(t, ok)

	second, ok := p.parse(title)
	require.True(t, ok)
	assert.Equal(t, first, second)
	assert.Len(t, p.cache, 1)

	// Unparsable titles are memoized too.
	_, ok = p.parse("garbage")
	require.False(t, ok)
	assert.Len(t, p.cache, 2)
}

func TestTitleParserResetsWhenFull(t *testing.T) {
	p := newTitleParser()

	for i := 0; i < maxParsedTitles; i++ {
		p.parse(fmt.Sprintf("Bitcoin above $%d,000 at 15:00 UTC?", i))
	}
	require.Len(t, p.cache, maxParsedTitles)

	// The next distinct title triggers a reset; the map never exceeds the cap.
	p.parse("Bitcoin above $999,000 at 16:00 UTC?")
	assert.Len(t, p.cache, 1)
}

package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPadToWidth(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		width    int
		expected string
	}{
		{name: "short text padded", text: "abc", width: 6, expected: "abc   "},
		{name: "exact width unchanged", text: "abcdef", width: 6, expected: "abcdef"},
		{name: "long text truncated", text: "abcdefgh", width: 6, expected: "abcdef"},
		{name: "empty text", text: "", width: 4, expected: "    "},
		{name: "wide runes pad by display width", text: "日本", width: 6, expected: "日本  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PadToWidth(tt.text, tt.width))
		})
	}
}

func TestTruncateToWidthNeverSplitsWideRune(t *testing.T) {
	// Width 3 has room for one wide rune plus one column, not two wide runes.
	assert.Equal(t, "日", TruncateToWidth("日本", 3))
	assert.Equal(t, 2, DisplayWidth(TruncateToWidth("日本", 3)))
}

func TestCenterToWidth(t *testing.T) {
	assert.Equal(t, " ab ", CenterToWidth("ab", 4))
	assert.Equal(t, " ab  ", CenterToWidth("ab", 5))
	assert.Equal(t, "ab", CenterToWidth("ab", 2))
}

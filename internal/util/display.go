package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// DisplayWidth calculates the rendered column width of a string. Wide
// runes (CJK) occupy two panel columns.
func DisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// RuneDisplayWidth calculates the rendered column width of a single rune.
func RuneDisplayWidth(r rune) int {
	return runewidth.RuneWidth(r)
}

// PadToWidth pads text with trailing spaces up to the given display width,
// truncating first if the text is too wide. Render targets require every
// row at exactly the panel width.
func PadToWidth(text string, width int) string {
	text = TruncateToWidth(text, width)
	if pad := width - runewidth.StringWidth(text); pad > 0 {
		return text + strings.Repeat(" ", pad)
	}
	return text
}

// TruncateToWidth cuts text at the given display width, never splitting a
// wide rune in half.
func TruncateToWidth(text string, width int) string {
	if runewidth.StringWidth(text) <= width {
		return text
	}
	var b strings.Builder
	used := 0
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if used+w > width {
			break
		}
		b.WriteRune(r)
		used += w
	}
	return b.String()
}

// CenterToWidth centers text within the given display width.
func CenterToWidth(text string, width int) string {
	text = TruncateToWidth(text, width)
	space := width - runewidth.StringWidth(text)
	if space <= 0 {
		return text
	}
	left := space / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", space-left)
}

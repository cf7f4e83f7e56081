package core

import (
	"strings"
	"unicode"
)

// Color is a hex color from the fixed group palette.
type Color string

// The palette of colors a group may use.
const (
	ColorPurple Color = "#B38BFA"
	ColorPink   Color = "#FF79F2"
	ColorCyan   Color = "#43E6FC"
	ColorSalmon Color = "#F19576"
	ColorBlue   Color = "#0047FF"
	ColorSky    Color = "#6691FF"
)

// DefaultColor is assigned when a group is created without an explicit color.
const DefaultColor = ColorPurple

// Palette returns the fixed set of group colors in display order.
func Palette() []Color {
	return []Color{ColorPurple, ColorPink, ColorCyan, ColorSalmon, ColorBlue, ColorSky}
}

// Valid reports whether c is one of the palette colors.
func (c Color) Valid() bool {
	for _, p := range Palette() {
		if c == p {
			return true
		}
	}
	return false
}

// Group is a named, colored container for notes.
// The field names follow the durable wire format and must not change.
type Group struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Color    Color  `json:"color" yaml:"color"`
	Initials string `json:"initials" yaml:"initials"`
}

// Initials derives the display initials for a group name: the first letter
// of a single-word name, or the first letters of the first two words,
// uppercased. Whitespace-only input yields an empty string.
func Initials(name string) string {
	words := strings.Fields(name)
	if len(words) == 0 {
		return ""
	}

	initials := string(unicode.ToUpper(firstRune(words[0])))
	if len(words) > 1 {
		initials += string(unicode.ToUpper(firstRune(words[1])))
	}
	return initials
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

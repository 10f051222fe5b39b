// Package colors maps itinerary color tags to the fixed palette used by
// the calendar UI.
package colors

// Style holds the CSS color values for one tag.
type Style struct {
	Bg     string `json:"bg"`
	Border string `json:"border"`
	Text   string `json:"text"`
}

var styles = map[string]Style{
	"blue":    {Bg: "rgba(59, 130, 246, 0.18)", Border: "rgba(59, 130, 246, 0.35)", Text: "rgb(147, 197, 253)"},
	"red":     {Bg: "rgba(239, 68, 68, 0.18)", Border: "rgba(239, 68, 68, 0.35)", Text: "rgb(252, 165, 165)"},
	"green":   {Bg: "rgba(34, 197, 94, 0.18)", Border: "rgba(34, 197, 94, 0.35)", Text: "rgb(134, 239, 172)"},
	"purple":  {Bg: "rgba(168, 85, 247, 0.18)", Border: "rgba(168, 85, 247, 0.35)", Text: "rgb(216, 180, 254)"},
	"orange":  {Bg: "rgba(249, 115, 22, 0.18)", Border: "rgba(249, 115, 22, 0.35)", Text: "rgb(253, 186, 116)"},
	"emerald": {Bg: "rgba(16, 185, 129, 0.18)", Border: "rgba(16, 185, 129, 0.35)", Text: "rgb(110, 231, 183)"},
	"cyan":    {Bg: "rgba(6, 182, 212, 0.18)", Border: "rgba(6, 182, 212, 0.35)", Text: "rgb(103, 232, 249)"},
	"amber":   {Bg: "rgba(245, 158, 11, 0.18)", Border: "rgba(245, 158, 11, 0.35)", Text: "rgb(252, 211, 77)"},
	"pink":    {Bg: "rgba(236, 72, 153, 0.18)", Border: "rgba(236, 72, 153, 0.35)", Text: "rgb(249, 168, 212)"},
	"indigo":  {Bg: "rgba(99, 102, 241, 0.18)", Border: "rgba(99, 102, 241, 0.35)", Text: "rgb(165, 180, 252)"},
}

// defaultStyle is the slate fallback for unknown tags.
var defaultStyle = Style{
	Bg:     "rgba(148, 163, 184, 0.18)",
	Border: "rgba(148, 163, 184, 0.35)",
	Text:   "rgb(203, 213, 225)",
}

// For returns the style for a color tag, falling back to the slate
// default for unknown tags.
func For(tag string) Style {
	if s, ok := styles[tag]; ok {
		return s
	}
	return defaultStyle
}

// Known reports whether the tag is part of the palette.
func Known(tag string) bool {
	_, ok := styles[tag]
	return ok
}

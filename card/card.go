// Package card describes the social card template as a tree of boxes.
//
// A tree is a plain description: an element kind, an inline style map and
// either a text leaf or child nodes. It carries no behaviour; the render
// package lays it out and paints it.
package card

// Canvas size of every card, in pixels.
const (
	Width  = 1200
	Height = 630
)

// Colors and spacing shared by every card variant.
const (
	Background = "#fdfdfa"
	Foreground = "#301940"
	Muted      = "#83758c"

	Padding      = "120px 80px"
	TitleSpacing = 60 // space between the title and what follows it
	FieldGap     = 60 // horizontal space between metadata fields
	LabelSize    = 24
	LabelGap     = 12
)

// Field is one name/value pair in the metadata row under the title.
type Field struct {
	Name  string
	Value string
}

// Properties is what gets drawn on a card. When Metadata is non-nil it is
// drawn in place of Subtitle.
type Properties struct {
	Title            string
	Subtitle         string
	Metadata         []Field
	TitleFontSize    float64
	SubtitleFontSize float64
}

// HasMetadata reports whether the card shows a metadata row instead of a subtitle.
func (p Properties) HasMetadata() bool {
	return p.Metadata != nil
}

// Style maps a CSS-like property name to its value (string or number).
type Style map[string]any

// Node is one box in the card tree. A node with no children is a text leaf.
type Node struct {
	Kind     string
	Style    Style
	Text     string
	Children []*Node
}

// IsText reports whether n is a text leaf.
func (n *Node) IsText() bool {
	return len(n.Children) == 0
}

// Div returns a container node.
func Div(style Style, children ...*Node) *Node {
	return &Node{Kind: "div", Style: style, Children: children}
}

// Text returns a text leaf node.
func Text(style Style, text string) *Node {
	return &Node{Kind: "div", Style: style, Text: text}
}

// Build returns the card tree for p. The result depends only on p.
func Build(p Properties) *Node {
	title := Text(Style{
		"whiteSpace":    "pre",
		"fontSize":      p.TitleFontSize,
		"fontWeight":    400,
		"lineHeight":    1,
		"letterSpacing": -2,
		"marginBottom":  TitleSpacing,
	}, p.Title)

	var below *Node
	if p.HasMetadata() {
		below = metadataRow(p.Metadata, p.SubtitleFontSize)
	} else {
		below = Text(Style{
			"color":      Muted,
			"fontSize":   p.SubtitleFontSize,
			"fontWeight": 400,
		}, p.Subtitle)
	}

	return Div(Style{
		"display":         "flex",
		"height":          "100%",
		"width":           "100%",
		"padding":         Padding,
		"flexDirection":   "column",
		"alignItems":      "flex-start",
		"justifyContent":  "flex-end",
		"backgroundColor": Background,
		"color":           Foreground,
	}, title, below)
}

func metadataRow(fields []Field, valueSize float64) *Node {
	cells := make([]*Node, 0, len(fields))
	for _, f := range fields {
		cells = append(cells, Div(Style{
			"display":       "flex",
			"flexDirection": "column",
		},
			Text(Style{
				"color":         Muted,
				"fontSize":      LabelSize,
				"letterSpacing": 2,
				"textTransform": "uppercase",
				"marginBottom":  LabelGap,
			}, f.Name),
			Text(Style{
				"fontSize":   valueSize,
				"fontWeight": 400,
				"whiteSpace": "pre",
			}, f.Value),
		))
	}
	return Div(Style{
		"display":       "flex",
		"flexDirection": "row",
		"gap":           FieldGap,
	}, cells...)
}

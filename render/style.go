package render

import (
	"fmt"
	"image/color"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/ofcrse/ofcrse/card"
)

const (
	defaultFontSize   = 16
	defaultLineHeight = 1.2
)

// length is a width or height: unset, a pixel value or a percentage of the
// parent's content box.
type length struct {
	set bool
	pct bool
	v   float32
}

func (l length) resolve(parent float32) (float32, bool) {
	if !l.set {
		return 0, false
	}
	if l.pct {
		return parent * l.v / 100, true
	}
	return l.v, true
}

type edges struct {
	top, right, bottom, left float32
}

func (e edges) horizontal() float32 { return e.left + e.right }
func (e edges) vertical() float32   { return e.top + e.bottom }

// computed holds the resolved style of one node. Text properties are
// inherited from the parent.
type computed struct {
	fontSize      float32
	lineHeight    float32 // multiple of fontSize
	letterSpacing float32
	color         color.RGBA
	pre           bool
	uppercase     bool

	background *color.RGBA
	border     float32
	borderFill color.RGBA

	padding edges
	margin  edges
	gap     float32

	row     bool
	justify string
	align   string

	width  length
	height length
}

func rootStyle() computed {
	return computed{
		fontSize:   defaultFontSize,
		lineHeight: defaultLineHeight,
		color:      color.RGBA{A: 0xff},
	}
}

// inherit returns the style a child starts from before its own properties.
func (c computed) inherit() computed {
	return computed{
		fontSize:      c.fontSize,
		lineHeight:    c.lineHeight,
		letterSpacing: c.letterSpacing,
		color:         c.color,
		pre:           c.pre,
		uppercase:     c.uppercase,
	}
}

func resolveStyle(parent computed, s card.Style) (computed, error) {
	c := parent.inherit()
	// Sorted so shorthands ("margin") apply before longhands ("marginBottom").
	for _, key := range slices.Sorted(maps.Keys(s)) {
		raw := s[key]
		var err error
		switch key {
		case "fontSize":
			c.fontSize, err = number(raw)
		case "lineHeight":
			c.lineHeight, err = number(raw)
		case "letterSpacing":
			c.letterSpacing, err = number(raw)
		case "color":
			c.color, err = parseColor(raw)
		case "backgroundColor":
			var bg color.RGBA
			bg, err = parseColor(raw)
			c.background = &bg
		case "borderBottom":
			c.border, c.borderFill, err = parseBorder(raw)
		case "whiteSpace":
			c.pre = raw == "pre"
		case "textTransform":
			c.uppercase = raw == "uppercase"
		case "padding":
			c.padding, err = parseEdges(raw)
		case "margin":
			c.margin, err = parseEdges(raw)
		case "marginTop":
			c.margin.top, err = number(raw)
		case "marginRight":
			c.margin.right, err = number(raw)
		case "marginBottom":
			c.margin.bottom, err = number(raw)
		case "marginLeft":
			c.margin.left, err = number(raw)
		case "gap":
			c.gap, err = number(raw)
		case "flexDirection":
			c.row = raw == "row"
		case "justifyContent":
			c.justify, err = keyword(raw)
		case "alignItems":
			c.align, err = keyword(raw)
		case "width":
			c.width, err = parseLength(raw)
		case "height":
			c.height, err = parseLength(raw)
		case "display", "fontWeight", "fontFamily", "fontStyle":
			// single flex model and a single font face
		default:
			err = fmt.Errorf("unsupported property")
		}
		if err != nil {
			return c, fmt.Errorf("style %s=%v: %w", key, raw, err)
		}
	}
	return c, nil
}

func keyword(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("not a keyword")
	}
	switch s {
	case "flex-start", "flex-end", "center", "stretch":
		return s, nil
	}
	return "", fmt.Errorf("unknown keyword %q", s)
}

func number(v any) (float32, error) {
	switch n := v.(type) {
	case int:
		return float32(n), nil
	case int64:
		return float32(n), nil
	case float64:
		return float32(n), nil
	case float32:
		return n, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(n), "px"), 32)
		if err != nil {
			return 0, err
		}
		return float32(f), nil
	}
	return 0, fmt.Errorf("not a number")
}

func parseLength(v any) (length, error) {
	if s, ok := v.(string); ok && strings.HasSuffix(s, "%") {
		f, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 32)
		if err != nil {
			return length{}, err
		}
		return length{set: true, pct: true, v: float32(f)}, nil
	}
	n, err := number(v)
	if err != nil {
		return length{}, err
	}
	return length{set: true, v: n}, nil
}

// parseEdges accepts a number or a CSS shorthand with one to four values.
func parseEdges(v any) (edges, error) {
	s, ok := v.(string)
	if !ok {
		n, err := number(v)
		return edges{n, n, n, n}, err
	}
	fields := strings.Fields(s)
	vals := make([]float32, len(fields))
	for i, f := range fields {
		n, err := number(f)
		if err != nil {
			return edges{}, err
		}
		vals[i] = n
	}
	switch len(vals) {
	case 1:
		return edges{vals[0], vals[0], vals[0], vals[0]}, nil
	case 2:
		return edges{vals[0], vals[1], vals[0], vals[1]}, nil
	case 3:
		return edges{vals[0], vals[1], vals[2], vals[1]}, nil
	case 4:
		return edges{vals[0], vals[1], vals[2], vals[3]}, nil
	}
	return edges{}, fmt.Errorf("want 1 to 4 values, got %d", len(vals))
}

// parseBorder reads "<width> solid <color>".
func parseBorder(v any) (float32, color.RGBA, error) {
	s, ok := v.(string)
	if !ok {
		return 0, color.RGBA{}, fmt.Errorf("not a border")
	}
	parts := strings.Fields(s)
	if len(parts) != 3 || parts[1] != "solid" {
		return 0, color.RGBA{}, fmt.Errorf("want \"<width> solid <color>\"")
	}
	w, err := number(parts[0])
	if err != nil {
		return 0, color.RGBA{}, err
	}
	c, err := parseColor(parts[2])
	return w, c, err
}

// parseColor reads #rgb and #rrggbb.
func parseColor(v any) (color.RGBA, error) {
	s, ok := v.(string)
	if !ok || !strings.HasPrefix(s, "#") {
		return color.RGBA{}, fmt.Errorf("not a hex color")
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("not a hex color")
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, err
	}
	return color.RGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 0xff}, nil
}

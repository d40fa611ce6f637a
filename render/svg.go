package render

import (
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"
)

func writeSVG(w io.Writer, s *Scene) {
	canvas := svg.New(w)
	canvas.Start(s.Width, s.Height)
	for _, sh := range s.Shapes {
		canvas.Path(pathData(sh.Segments), "fill:"+hexColor(sh.Fill))
	}
	canvas.End()
}

func pathData(segs []Segment) string {
	var b strings.Builder
	for _, seg := range segs {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		switch seg.Op {
		case MoveTo:
			b.WriteString("M")
			writePoints(&b, seg.Pts[:1])
		case LineTo:
			b.WriteString("L")
			writePoints(&b, seg.Pts[:1])
		case QuadTo:
			b.WriteString("Q")
			writePoints(&b, seg.Pts[:2])
		case CubeTo:
			b.WriteString("C")
			writePoints(&b, seg.Pts[:3])
		case ClosePath:
			b.WriteString("Z")
		}
	}
	return b.String()
}

func writePoints(b *strings.Builder, pts []Point) {
	for i, p := range pts {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(coord(p.X))
		b.WriteByte(' ')
		b.WriteString(coord(p.Y))
	}
}

func coord(v float32) string {
	s := strconv.FormatFloat(float64(v), 'f', 2, 32)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

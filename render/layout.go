package render

import (
	"fmt"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/ofcrse/ofcrse/card"
)

// box is a node with its resolved style and measured border-box size.
type box struct {
	node     *card.Node
	style    computed
	w, h     float32
	lines    []string
	children []*box
}

// layout carries the per-call glyph buffer; sfnt.Buffer is not shareable.
type layout struct {
	font *sfnt.Font
	buf  sfnt.Buffer
}

// Layout measures and places n on the canvas and returns the painted shapes.
func (r *Renderer) Layout(n *card.Node) (*Scene, error) {
	if n == nil {
		return nil, &Error{Op: "layout", Err: fmt.Errorf("nil node")}
	}
	l := &layout{font: r.font}
	w, h := float32(r.width), float32(r.height)

	root, err := l.measure(n, rootStyle(), w, h)
	if err != nil {
		return nil, &Error{Op: "layout", Err: err}
	}
	scene := &Scene{Width: r.width, Height: r.height}
	if err := l.place(scene, root, 0, 0); err != nil {
		return nil, &Error{Op: "paint", Err: err}
	}
	return scene, nil
}

func (l *layout) measure(n *card.Node, parent computed, availW, availH float32) (*box, error) {
	style, err := resolveStyle(parent, n.Style)
	if err != nil {
		return nil, err
	}
	b := &box{node: n, style: style}

	outerW, hasW := style.width.resolve(availW)
	outerH, hasH := style.height.resolve(availH)
	innerAvail := availW - style.padding.horizontal()
	if hasW {
		innerAvail = outerW - style.padding.horizontal()
	}
	innerAvailH := availH - style.padding.vertical()
	if hasH {
		innerAvailH = outerH - style.padding.vertical()
	}

	var contentW, contentH float32
	if n.IsText() {
		text := n.Text
		if style.uppercase {
			text = strings.ToUpper(text)
		}
		if style.pre {
			b.lines = strings.Split(text, "\n")
		} else {
			b.lines, err = l.wrap(text, style, innerAvail)
			if err != nil {
				return nil, err
			}
		}
		for _, line := range b.lines {
			lw, err := l.advance(line, style)
			if err != nil {
				return nil, err
			}
			contentW = max(contentW, lw)
		}
		contentH = float32(len(b.lines)) * style.fontSize * style.lineHeight
	} else {
		for i, child := range n.Children {
			cb, err := l.measure(child, style, innerAvail, innerAvailH)
			if err != nil {
				return nil, fmt.Errorf("child %d: %w", i, err)
			}
			b.children = append(b.children, cb)
			cw := cb.w + cb.style.margin.horizontal()
			ch := cb.h + cb.style.margin.vertical()
			if style.row {
				contentW += cw
				contentH = max(contentH, ch)
			} else {
				contentW = max(contentW, cw)
				contentH += ch
			}
		}
		if gaps := float32(len(b.children) - 1); gaps > 0 {
			if style.row {
				contentW += gaps * style.gap
			} else {
				contentH += gaps * style.gap
			}
		}
	}

	b.w = contentW + style.padding.horizontal()
	b.h = contentH + style.padding.vertical() + style.border
	if hasW {
		b.w = outerW
	}
	if hasH {
		b.h = outerH
	}
	return b, nil
}

// wrap breaks text into lines no wider than width, splitting on spaces.
// A word wider than width keeps its own line.
func (l *layout) wrap(text string, style computed, width float32) ([]string, error) {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			candidate := line + " " + word
			cw, err := l.advance(candidate, style)
			if err != nil {
				return nil, err
			}
			if cw > width {
				lines = append(lines, line)
				line = word
				continue
			}
			line = candidate
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func ppem(size float32) fixed.Int26_6 {
	return fixed.Int26_6(size*64 + 0.5)
}

func toPx(v fixed.Int26_6) float32 {
	return float32(v) / 64
}

// advance returns the width of s including kerning and letter spacing.
func (l *layout) advance(s string, style computed) (float32, error) {
	size := ppem(style.fontSize)
	var w float32
	var prev sfnt.GlyphIndex
	for i, r := range []rune(s) {
		idx, err := l.font.GlyphIndex(&l.buf, r)
		if err != nil {
			return 0, err
		}
		if i > 0 {
			if k, err := l.font.Kern(&l.buf, prev, idx, size, font.HintingNone); err == nil {
				w += toPx(k)
			}
		}
		adv, err := l.font.GlyphAdvance(&l.buf, idx, size, font.HintingNone)
		if err != nil {
			return 0, err
		}
		w += toPx(adv) + style.letterSpacing
		prev = idx
	}
	return w, nil
}

func (l *layout) place(scene *Scene, b *box, x, y float32) error {
	s := b.style
	if s.background != nil {
		scene.Shapes = append(scene.Shapes, rectShape(x, y, b.w, b.h, *s.background))
	}
	if s.border > 0 {
		scene.Shapes = append(scene.Shapes, rectShape(x, y+b.h-s.border, b.w, s.border, s.borderFill))
	}

	innerX := x + s.padding.left
	innerY := y + s.padding.top
	innerW := b.w - s.padding.horizontal()
	innerH := b.h - s.padding.vertical() - s.border

	if b.node.IsText() {
		lineH := s.fontSize * s.lineHeight
		for i, line := range b.lines {
			top := innerY + float32(i)*lineH
			if err := l.text(scene, line, s, innerX, top, lineH); err != nil {
				return err
			}
		}
		return nil
	}

	var mainSize float32
	for _, c := range b.children {
		if s.row {
			mainSize += c.w + c.style.margin.horizontal()
		} else {
			mainSize += c.h + c.style.margin.vertical()
		}
	}
	if gaps := float32(len(b.children) - 1); gaps > 0 {
		mainSize += gaps * s.gap
	}
	free := innerH - mainSize
	if s.row {
		free = innerW - mainSize
	}
	cursor := offset(s.justify, free)

	for _, c := range b.children {
		m := c.style.margin
		var cx, cy float32
		if s.row {
			cx = innerX + cursor + m.left
			cy = innerY + m.top + offset(s.align, innerH-c.h-m.vertical())
			cursor += c.w + m.horizontal() + s.gap
		} else {
			cx = innerX + m.left + offset(s.align, innerW-c.w-m.horizontal())
			cy = innerY + cursor + m.top
			cursor += c.h + m.vertical() + s.gap
		}
		if err := l.place(scene, c, cx, cy); err != nil {
			return err
		}
	}
	return nil
}

// offset returns where content starts along an axis with free space left over.
func offset(keyword string, free float32) float32 {
	switch keyword {
	case "flex-end":
		return free
	case "center":
		return free / 2
	}
	return 0
}

// text appends the outlines of one line of text whose line box starts at
// (x, top) and is lineH tall.
func (l *layout) text(scene *Scene, line string, s computed, x, top, lineH float32) error {
	if line == "" {
		return nil
	}
	size := ppem(s.fontSize)
	m, err := l.font.Metrics(&l.buf, size, font.HintingNone)
	if err != nil {
		return err
	}
	ascent, descent := toPx(m.Ascent), toPx(m.Descent)
	baseline := top + (lineH-(ascent+descent))/2 + ascent

	shape := Shape{Fill: s.color}
	pen := x
	var prev sfnt.GlyphIndex
	for i, r := range []rune(line) {
		idx, err := l.font.GlyphIndex(&l.buf, r)
		if err != nil {
			return err
		}
		if i > 0 {
			if k, err := l.font.Kern(&l.buf, prev, idx, size, font.HintingNone); err == nil {
				pen += toPx(k)
			}
		}
		segs, err := l.font.LoadGlyph(&l.buf, idx, size, nil)
		if err != nil {
			return err
		}
		shape.Segments = appendGlyph(shape.Segments, segs, pen, baseline)

		adv, err := l.font.GlyphAdvance(&l.buf, idx, size, font.HintingNone)
		if err != nil {
			return err
		}
		pen += toPx(adv) + s.letterSpacing
		prev = idx
	}
	if len(shape.Segments) > 0 {
		scene.Shapes = append(scene.Shapes, shape)
	}
	return nil
}

// appendGlyph copies glyph segments out of the sfnt buffer, translated to the
// pen position and with every contour explicitly closed.
func appendGlyph(dst []Segment, segs sfnt.Segments, x, y float32) []Segment {
	pt := func(p fixed.Point26_6) Point {
		return Point{X: x + toPx(p.X), Y: y + toPx(p.Y)}
	}
	open := false
	for _, seg := range segs {
		var out Segment
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				dst = append(dst, Segment{Op: ClosePath})
			}
			open = true
			out = Segment{Op: MoveTo, Pts: [3]Point{pt(seg.Args[0])}}
		case sfnt.SegmentOpLineTo:
			out = Segment{Op: LineTo, Pts: [3]Point{pt(seg.Args[0])}}
		case sfnt.SegmentOpQuadTo:
			out = Segment{Op: QuadTo, Pts: [3]Point{pt(seg.Args[0]), pt(seg.Args[1])}}
		case sfnt.SegmentOpCubeTo:
			out = Segment{Op: CubeTo, Pts: [3]Point{pt(seg.Args[0]), pt(seg.Args[1]), pt(seg.Args[2])}}
		}
		dst = append(dst, out)
	}
	if open {
		dst = append(dst, Segment{Op: ClosePath})
	}
	return dst
}

package render

import (
	"image"
	"image/color"
	"math"
)

// Op is a path command.
type Op uint8

const (
	MoveTo Op = iota
	LineTo
	QuadTo
	CubeTo
	ClosePath
)

// Point is a canvas coordinate in pixels, y pointing down.
type Point struct {
	X, Y float32
}

// Segment is one path command. LineTo and MoveTo use Pts[0], QuadTo uses
// Pts[0:2] and CubeTo uses all three points.
type Segment struct {
	Op  Op
	Pts [3]Point
}

// Shape is a filled path.
type Shape struct {
	Fill     color.RGBA
	Segments []Segment

	// rect is set when the shape is a pixel-aligned rectangle.
	rect image.Rectangle
}

// Scene is the painted result of a layout, in paint order.
type Scene struct {
	Width  int
	Height int
	Shapes []Shape
}

func rectShape(x, y, w, h float32, fill color.RGBA) Shape {
	s := Shape{
		Fill: fill,
		Segments: []Segment{
			{Op: MoveTo, Pts: [3]Point{{x, y}}},
			{Op: LineTo, Pts: [3]Point{{x + w, y}}},
			{Op: LineTo, Pts: [3]Point{{x + w, y + h}}},
			{Op: LineTo, Pts: [3]Point{{x, y + h}}},
			{Op: ClosePath},
		},
	}
	if aligned(x) && aligned(y) && aligned(w) && aligned(h) {
		s.rect = image.Rect(int(x), int(y), int(x+w), int(y+h))
	}
	return s
}

func aligned(v float32) bool {
	return float64(v) == math.Trunc(float64(v))
}

package render

import (
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// Rasterize paints the scene onto a new RGBA image. Pixel-aligned rectangles
// are filled directly; everything else goes through the anti-aliasing
// vector rasterizer.
func Rasterize(s *Scene) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, s.Width, s.Height))
	z := vector.NewRasterizer(s.Width, s.Height)
	for _, sh := range s.Shapes {
		src := image.NewUniform(sh.Fill)
		if !sh.rect.Empty() {
			draw.Draw(dst, sh.rect, src, image.Point{}, draw.Over)
			continue
		}
		z.Reset(s.Width, s.Height)
		for _, seg := range sh.Segments {
			p := seg.Pts
			switch seg.Op {
			case MoveTo:
				z.MoveTo(p[0].X, p[0].Y)
			case LineTo:
				z.LineTo(p[0].X, p[0].Y)
			case QuadTo:
				z.QuadTo(p[0].X, p[0].Y, p[1].X, p[1].Y)
			case CubeTo:
				z.CubeTo(p[0].X, p[0].Y, p[1].X, p[1].Y, p[2].X, p[2].Y)
			case ClosePath:
				z.ClosePath()
			}
		}
		z.Draw(dst, dst.Bounds(), src, image.Point{})
	}
	return dst
}

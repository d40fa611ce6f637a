// Package render lays out a card tree against a TrueType font and paints it
// as SVG or PNG.
//
// A Renderer holds the parsed font and the canvas size. It is read-only after
// New returns, so one Renderer can serve concurrent calls; every call keeps
// its own glyph buffer.
package render

import (
	"bytes"
	"fmt"
	"image/png"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"

	"github.com/ofcrse/ofcrse/card"
)

// Error wraps a failure in one render step.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("render: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Renderer paints card trees onto a fixed-size canvas.
type Renderer struct {
	font   *sfnt.Font
	width  int
	height int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSize overrides the canvas size (default card.Width x card.Height).
func WithSize(width, height int) Option {
	return func(r *Renderer) {
		r.width = width
		r.height = height
	}
}

// New parses fontData (TTF or OTF) and returns a Renderer using it.
func New(fontData []byte, opts ...Option) (*Renderer, error) {
	f, err := sfnt.Parse(fontData)
	if err != nil {
		return nil, &Error{Op: "parse font", Err: err}
	}
	r := &Renderer{font: f, width: card.Width, height: card.Height}
	for _, opt := range opts {
		opt(r)
	}
	if r.width <= 0 || r.height <= 0 {
		return nil, &Error{Op: "configure", Err: fmt.Errorf("invalid canvas %dx%d", r.width, r.height)}
	}
	return r, nil
}

// NewDefault returns a Renderer using the embedded Go Regular font.
func NewDefault(opts ...Option) (*Renderer, error) {
	return New(goregular.TTF, opts...)
}

// Size returns the canvas size.
func (r *Renderer) Size() (width, height int) {
	return r.width, r.height
}

// SVG renders n as an SVG document with text converted to outlines.
func (r *Renderer) SVG(n *card.Node) ([]byte, error) {
	scene, err := r.Layout(n)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	writeSVG(&buf, scene)
	return buf.Bytes(), nil
}

// PNG renders n and encodes the bitmap as PNG.
func (r *Renderer) PNG(n *card.Node) ([]byte, error) {
	scene, err := r.Layout(n)
	if err != nil {
		return nil, err
	}
	img := Rasterize(scene)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, &Error{Op: "encode png", Err: err}
	}
	return buf.Bytes(), nil
}

// Package render draws triangulation results to PNG for debugging.
//
// Triangles are filled, their edges stroked, and constraint segments drawn
// on top in a contrasting colour. The y axis points up as in the input
// coordinates.
package render

import (
	"errors"
	"fmt"
	"image"
	"io"
	"math"

	"github.com/fogleman/gg"

	"github.com/katalvlaran/lvmesh/delaun"
	"github.com/katalvlaran/lvmesh/geom"
)

var (
	// ErrEmptyResult is returned when there is nothing to draw.
	ErrEmptyResult = errors.New("render: result has no triangles")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("render: invalid option supplied")
)

// Option configures drawing.
type Option func(*Options)

// Options holds drawing parameters.
type Options struct {
	// Size is the pixel length of the longer side of the drawing area.
	Size int

	// Padding in pixels around the drawing area.
	Padding int

	// LineWidth in pixels for triangle edges; constraints use twice that.
	LineWidth float64

	// Constraints enables the constraint overlay.
	Constraints bool

	// Vertices marks every used vertex with a dot.
	Vertices bool

	err error
}

// DefaultOptions returns an 800px drawing with constraints shown.
func DefaultOptions() Options {
	return Options{Size: 800, Padding: 16, LineWidth: 1, Constraints: true}
}

// WithSize sets the longer side in pixels (must be > 0).
func WithSize(px int) Option {
	return func(o *Options) {
		if px <= 0 {
			o.err = fmt.Errorf("%w: size must be > 0, got %d", ErrOptionViolation, px)
			return
		}
		o.Size = px
	}
}

// WithPadding sets the border in pixels (must be >= 0).
func WithPadding(px int) Option {
	return func(o *Options) {
		if px < 0 {
			o.err = fmt.Errorf("%w: padding must be >= 0, got %d", ErrOptionViolation, px)
			return
		}
		o.Padding = px
	}
}

// WithLineWidth sets the edge width in pixels.
func WithLineWidth(w float64) Option {
	return func(o *Options) {
		if !(w > 0) {
			o.err = fmt.Errorf("%w: line width must be > 0, got %v", ErrOptionViolation, w)
			return
		}
		o.LineWidth = w
	}
}

// WithConstraints toggles the constraint overlay.
func WithConstraints(on bool) Option { return func(o *Options) { o.Constraints = on } }

// WithVertices toggles vertex dots.
func WithVertices(on bool) Option { return func(o *Options) { o.Vertices = on } }

// Draw renders res into a new image.
func Draw(res *delaun.Result, opts ...Option) (image.Image, error) {
	c, err := draw(res, opts)
	if err != nil {
		return nil, err
	}
	return c.Image(), nil
}

// EncodePNG renders res and writes it to w as PNG.
func EncodePNG(w io.Writer, res *delaun.Result, opts ...Option) error {
	c, err := draw(res, opts)
	if err != nil {
		return err
	}
	return c.EncodePNG(w)
}

// SavePNG renders res into the PNG file at path.
func SavePNG(path string, res *delaun.Result, opts ...Option) error {
	c, err := draw(res, opts)
	if err != nil {
		return err
	}
	return c.SavePNG(path)
}

func draw(res *delaun.Result, opts []Option) (*gg.Context, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if res == nil || len(res.Triangles) == 0 {
		return nil, ErrEmptyResult
	}

	used := res.UsedVertices()
	pts := make([]geom.Point, len(used))
	for i, v := range used {
		pts[i] = res.Point(v)
	}
	box := geom.BoxOf(pts...)
	extent := math.Max(box.Width(), box.Height())
	if extent <= 0 {
		return nil, ErrEmptyResult
	}
	scale := float64(o.Size) / extent

	// Set up the context
	width := int(math.Ceil(scale*box.Width())) + o.Padding*2
	height := int(math.Ceil(scale*box.Height())) + o.Padding*2
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	// Origin at the bottom left, padded, scaled, shifted to the box corner
	c.Translate(0, float64(height))
	c.Scale(1, -1)
	c.Translate(float64(o.Padding), float64(o.Padding))
	c.Scale(scale, scale)
	c.Translate(-box.Min.X, -box.Min.Y)

	// Line widths are in user space after scaling.
	c.SetLineWidth(o.LineWidth / scale)
	for _, t := range res.Triangles {
		a, b, d := res.Point(t[0]), res.Point(t[1]), res.Point(t[2])
		c.MoveTo(a.X, a.Y)
		c.LineTo(b.X, b.Y)
		c.LineTo(d.X, d.Y)
		c.ClosePath()
		c.SetRGB(0, 0.5, 0)
		c.FillPreserve()
		c.SetRGB(0, 1, 1)
		c.Stroke()
	}

	if o.Constraints {
		c.SetLineWidth(2 * o.LineWidth / scale)
		c.SetRGB(1, 0.6, 0)
		for _, s := range res.Constraints {
			a, b := res.Point(s[0]), res.Point(s[1])
			c.DrawLine(a.X, a.Y, b.X, b.Y)
		}
		c.Stroke()
	}

	if o.Vertices {
		c.SetRGB(1, 1, 1)
		for _, p := range pts {
			c.DrawCircle(p.X, p.Y, 2*o.LineWidth/scale)
		}
		c.Fill()
	}
	return c, nil
}

// Package fixture declares a small API surface for the gotypes tests.
package fixture

import (
	"context"
	"errors"
	"io"
)

// Shape is implemented by everything that can be drawn.
type Shape interface {
	Area() float64
	Bounds() Rect
}

// Solid is a Shape with depth.
type Solid interface {
	Shape
	Volume() float64
}

// Point is a position on the canvas.
type Point struct {
	X, Y int
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	Min, Max Point
	label    string
}

func (r Rect) Area() float64 {
	return float64((r.Max.X - r.Min.X) * (r.Max.Y - r.Min.Y))
}

func (r Rect) Bounds() Rect {
	return r
}

// Layer is a named drawing layer.
type Layer struct {
	Name string
}

type secret struct{}

// Canvas draws shapes onto layers.
type Canvas struct {
	Rect
	Layers map[string][]*Layer
	Hook   func(context.Context) error
	hidden *secret
}

// NewCanvas creates a canvas of the given size.
func NewCanvas(w, h int) (*Canvas, error) {
	if w <= 0 || h <= 0 {
		return nil, errors.New("fixture: empty canvas")
	}
	return &Canvas{Rect: Rect{Max: Point{X: w, Y: h}}}, nil
}

func newCanvas() *Canvas {
	return &Canvas{}
}

func (c *Canvas) Draw(s Shape) error {
	if s == nil {
		return errors.New("fixture: nil shape")
	}
	return nil
}

func (c *Canvas) Export(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, c.label)
	return int64(n), err
}

func (c Canvas) Size() (Point, Point) {
	return c.Min, c.Max
}

func (c *Canvas) reset() {
	*c = *newCanvas()
	c.hidden = nil
}

// Palette holds items of one kind.
type Palette[T any] struct {
	Items []T
}

// NewPalette creates a palette.
func NewPalette[T any](items ...T) *Palette[T] {
	return &Palette[T]{Items: items}
}

func (p *Palette[T]) Add(item T) {
	p.Items = append(p.Items, item)
}

// Stream sends points.
type Stream struct {
	Out  <-chan Point
	Grid [4][]Point
	Raw  []byte
}

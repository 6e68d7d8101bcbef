package netcomponents

import "math"

// Shape is the render geometry of an entity, in entity-local coordinates.
// It is a closed set: PolygonShape, ArcShape and RectShape.
type Shape interface {
	isShape()
}

// PolygonShape is a closed polygon through Vertices.
type PolygonShape struct {
	X, Y     float64
	Vertices [][2]float64
	Fill     bool
}

// ArcShape is a circle segment from StartAngle to EndAngle (radians).
type ArcShape struct {
	X, Y       float64
	Radius     float64
	StartAngle float64
	EndAngle   float64
	Fill       bool
}

// RectShape is an axis-aligned rectangle with its top-left corner at X, Y.
type RectShape struct {
	X, Y          float64
	Width, Height float64
	Fill          bool
}

func (PolygonShape) isShape() {}
func (ArcShape) isShape()     {}
func (RectShape) isShape()    {}

// Bounds is an axis-aligned box in entity-local coordinates.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

func (b Bounds) Width() float64  { return b.MaxX - b.MinX }
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// ShapeBounds returns the extent of s. Arcs use the full circle so that the
// rasterized image does not depend on the sweep.
func ShapeBounds(s Shape) Bounds {
	switch v := s.(type) {
	case PolygonShape:
		if len(v.Vertices) == 0 {
			return Bounds{MinX: v.X, MinY: v.Y, MaxX: v.X, MaxY: v.Y}
		}
		b := Bounds{
			MinX: math.Inf(1), MinY: math.Inf(1),
			MaxX: math.Inf(-1), MaxY: math.Inf(-1),
		}
		for _, p := range v.Vertices {
			b.MinX = math.Min(b.MinX, v.X+p[0])
			b.MinY = math.Min(b.MinY, v.Y+p[1])
			b.MaxX = math.Max(b.MaxX, v.X+p[0])
			b.MaxY = math.Max(b.MaxY, v.Y+p[1])
		}
		return b
	case ArcShape:
		return Bounds{
			MinX: v.X - v.Radius, MinY: v.Y - v.Radius,
			MaxX: v.X + v.Radius, MaxY: v.Y + v.Radius,
		}
	case RectShape:
		return Bounds{MinX: v.X, MinY: v.Y, MaxX: v.X + v.Width, MaxY: v.Y + v.Height}
	default:
		panic("netcomponents: unknown shape type")
	}
}

// ShapePivot returns the point the entity rotates around, relative to the
// top-left corner of its bounds. Arcs pivot on their centre, polygons and
// rectangles on the entity origin.
func ShapePivot(s Shape) (x, y float64) {
	b := ShapeBounds(s)
	switch v := s.(type) {
	case ArcShape:
		return v.X - b.MinX, v.Y - b.MinY
	case PolygonShape, RectShape:
		return -b.MinX, -b.MinY
	default:
		panic("netcomponents: unknown shape type")
	}
}

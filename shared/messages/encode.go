package messages

import (
	"github.com/automoto/splinesync/shared/gamemath"
	"github.com/automoto/splinesync/shared/netcomponents"
)

// EncodeEntity builds the full wire form of an entity record. The result
// shares no memory with s.
func EncodeEntity(id netcomponents.EntityID, s *netcomponents.ServerStateData) EntityData {
	d := EntityData{
		ID:       string(id),
		Position: fromVec(s.Position),
		Velocity: fromVec(s.Velocity),
	}
	if s.Color != nil {
		c := *s.Color
		d.Color = &c
	}
	if s.Angle != nil {
		a := *s.Angle
		d.Angle = &a
	}
	if s.Shape != nil {
		shape := EncodeShape(s.Shape)
		d.Shape = &shape
	}
	return d
}

// EncodeShortEntity keeps only the motion fields of an entity record.
func EncodeShortEntity(id netcomponents.EntityID, s *netcomponents.ServerStateData) ShortEntityData {
	return ShortEntityData{
		ID:       string(id),
		Position: fromVec(s.Position),
		Velocity: fromVec(s.Velocity),
	}
}

func EncodeShape(s netcomponents.Shape) ShapeData {
	switch v := s.(type) {
	case netcomponents.PolygonShape:
		vertices := make([][]float64, len(v.Vertices))
		for i, p := range v.Vertices {
			vertices[i] = []float64{p[0], p[1]}
		}
		return ShapeData{Form: FormPolygon, X: v.X, Y: v.Y, Vertices: vertices, Fill: v.Fill}
	case netcomponents.ArcShape:
		return ShapeData{
			Form: FormArc, X: v.X, Y: v.Y,
			Radius:     v.Radius,
			StartAngle: v.StartAngle,
			EndAngle:   v.EndAngle,
			Fill:       v.Fill,
		}
	case netcomponents.RectShape:
		return ShapeData{Form: FormRect, X: v.X, Y: v.Y, Width: v.Width, Height: v.Height, Fill: v.Fill}
	default:
		panic("messages: unhandled shape type")
	}
}

func fromVec(v *gamemath.Vec2) []float64 {
	if v == nil {
		return nil
	}
	return []float64{v.X, v.Y}
}

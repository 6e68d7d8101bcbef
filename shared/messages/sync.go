package messages

import (
	"errors"
	"fmt"

	"github.com/automoto/splinesync/shared/gamemath"
	"github.com/automoto/splinesync/shared/netcomponents"
)

// ErrMalformedUpdate is returned when a sync message cannot be turned into
// entity updates.
var ErrMalformedUpdate = errors.New("malformed entity update")

// Shape forms as sent by the server.
const (
	FormPolygon = "polygon"
	FormArc     = "arc"
	FormRect    = "rect"
)

// ShapeData is the wire form of every shape; Form selects which fields apply.
type ShapeData struct {
	Form       string
	X, Y       float64
	Vertices   [][]float64 // polygon
	Radius     float64     // arc
	StartAngle float64     // arc
	EndAngle   float64     // arc
	Width      float64     // rect
	Height     float64     // rect
	Fill       bool
}

// EntityData is a full entity update. Nil fields are unchanged on the client.
type EntityData struct {
	ID       string
	Position []float64
	Velocity []float64
	Shape    *ShapeData
	Color    *uint32
	Angle    *float64
}

// ShortEntityData only carries motion, for the high-rate sync stream.
type ShortEntityData struct {
	ID       string
	Position []float64
	Velocity []float64
}

// LongSyncDTO is a snapshot of full entity updates plus removals.
type LongSyncDTO struct {
	Updates []EntityData
	Remove  []string
}

// ShortSyncDTO is a snapshot of motion-only updates plus removals.
type ShortSyncDTO struct {
	Updates []ShortEntityData
	Remove  []string
}

// Batch converts the message into a sync batch.
func (m LongSyncDTO) Batch() (netcomponents.SyncBatch, error) {
	batch := netcomponents.SyncBatch{
		Updates: make([]netcomponents.EntityUpdate, 0, len(m.Updates)),
		Remove:  removals(m.Remove),
	}
	for i, d := range m.Updates {
		u, err := d.update()
		if err != nil {
			return netcomponents.SyncBatch{}, fmt.Errorf("update %d: %w", i, err)
		}
		batch.Updates = append(batch.Updates, u)
	}
	return batch, nil
}

// Batch converts the message into a sync batch.
func (m ShortSyncDTO) Batch() (netcomponents.SyncBatch, error) {
	batch := netcomponents.SyncBatch{
		Updates: make([]netcomponents.EntityUpdate, 0, len(m.Updates)),
		Remove:  removals(m.Remove),
	}
	for i, d := range m.Updates {
		u, err := EntityData{ID: d.ID, Position: d.Position, Velocity: d.Velocity}.update()
		if err != nil {
			return netcomponents.SyncBatch{}, fmt.Errorf("update %d: %w", i, err)
		}
		batch.Updates = append(batch.Updates, u)
	}
	return batch, nil
}

func (d EntityData) update() (netcomponents.EntityUpdate, error) {
	if d.ID == "" {
		return netcomponents.EntityUpdate{}, fmt.Errorf("%w: empty id", ErrMalformedUpdate)
	}
	u := netcomponents.EntityUpdate{
		ID:    netcomponents.EntityID(d.ID),
		Color: d.Color,
		Angle: d.Angle,
	}

	var err error
	if u.Position, err = toVec(d.Position); err != nil {
		return u, fmt.Errorf("%s position: %w", d.ID, err)
	}
	if u.Velocity, err = toVec(d.Velocity); err != nil {
		return u, fmt.Errorf("%s velocity: %w", d.ID, err)
	}
	if d.Shape != nil {
		if u.Shape, err = d.Shape.shape(); err != nil {
			return u, fmt.Errorf("%s shape: %w", d.ID, err)
		}
	}
	return u, nil
}

func (s ShapeData) shape() (netcomponents.Shape, error) {
	switch s.Form {
	case FormPolygon:
		vertices := make([][2]float64, 0, len(s.Vertices))
		for _, v := range s.Vertices {
			if len(v) != 2 {
				return nil, fmt.Errorf("%w: vertex has %d components", ErrMalformedUpdate, len(v))
			}
			vertices = append(vertices, [2]float64{v[0], v[1]})
		}
		return netcomponents.PolygonShape{X: s.X, Y: s.Y, Vertices: vertices, Fill: s.Fill}, nil
	case FormArc:
		return netcomponents.ArcShape{
			X: s.X, Y: s.Y,
			Radius:     s.Radius,
			StartAngle: s.StartAngle,
			EndAngle:   s.EndAngle,
			Fill:       s.Fill,
		}, nil
	case FormRect:
		return netcomponents.RectShape{X: s.X, Y: s.Y, Width: s.Width, Height: s.Height, Fill: s.Fill}, nil
	default:
		return nil, fmt.Errorf("%w: unknown shape form %q", ErrMalformedUpdate, s.Form)
	}
}

func toVec(v []float64) (*gamemath.Vec2, error) {
	if v == nil {
		return nil, nil
	}
	if len(v) != 2 {
		return nil, fmt.Errorf("%w: vector has %d components", ErrMalformedUpdate, len(v))
	}
	return &gamemath.Vec2{X: v[0], Y: v[1]}, nil
}

func removals(ids []string) []netcomponents.EntityID {
	out := make([]netcomponents.EntityID, len(ids))
	for i, id := range ids {
		out[i] = netcomponents.EntityID(id)
	}
	return out
}

package netcomponents

import (
	"github.com/automoto/splinesync/shared/gamemath"
	"github.com/automoto/splinesync/shared/interp"
	"github.com/yohamta/donburi"
)

// DefaultColor is used when a shape arrives before any colour.
const DefaultColor uint32 = 0xffffff

// ServerStateData is the latest server-reported value of every field.
// A field stays set until an update overwrites it.
type ServerStateData struct {
	Position *gamemath.Vec2
	Velocity *gamemath.Vec2
	Shape    Shape
	Color    *uint32
	Angle    *float64
}

var ServerState = donburi.NewComponentType[ServerStateData]()

// Merge copies the fields present in u over the record.
func (s *ServerStateData) Merge(u EntityUpdate) {
	if u.Position != nil {
		p := *u.Position
		s.Position = &p
	}
	if u.Velocity != nil {
		v := *u.Velocity
		s.Velocity = &v
	}
	if u.Shape != nil {
		s.Shape = u.Shape
	}
	if u.Color != nil {
		c := *u.Color
		s.Color = &c
	}
	if u.Angle != nil {
		a := *u.Angle
		s.Angle = &a
	}
}

// Kinematics returns the known position and velocity, zero where unknown.
func (s *ServerStateData) Kinematics() interp.Kinematics {
	var k interp.Kinematics
	if s.Position != nil {
		k.Position = *s.Position
	}
	if s.Velocity != nil {
		k.Velocity = *s.Velocity
	}
	return k
}

// ColorOrDefault returns the entity colour as 0xRRGGBB.
func (s *ServerStateData) ColorOrDefault() uint32 {
	if s.Color == nil {
		return DefaultColor
	}
	return *s.Color
}

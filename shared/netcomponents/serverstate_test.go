package netcomponents

import (
	"testing"

	"github.com/automoto/splinesync/shared/gamemath"
	"github.com/automoto/splinesync/shared/interp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vec(x, y float64) *gamemath.Vec2 { return &gamemath.Vec2{X: x, Y: y} }

func TestServerState_MergeKeepsUnspecifiedFields(t *testing.T) {
	color := uint32(0xff0000)
	angle := 1.5
	s := ServerStateData{}
	s.Merge(EntityUpdate{
		ID:       "0",
		Position: vec(0, 1),
		Velocity: vec(2, 3),
		Shape:    RectShape{Width: 4, Height: 2},
		Color:    &color,
		Angle:    &angle,
	})

	s.Merge(EntityUpdate{ID: "0", Velocity: vec(4, 5)})

	require.NotNil(t, s.Position)
	assert.Equal(t, gamemath.Vec2{X: 0, Y: 1}, *s.Position)
	assert.Equal(t, gamemath.Vec2{X: 4, Y: 5}, *s.Velocity)
	assert.Equal(t, RectShape{Width: 4, Height: 2}, s.Shape)
	assert.Equal(t, uint32(0xff0000), s.ColorOrDefault())
	assert.Equal(t, 1.5, *s.Angle)
}

func TestServerState_MergeCopiesValues(t *testing.T) {
	p := vec(1, 1)
	s := ServerStateData{}
	s.Merge(EntityUpdate{Position: p})

	p.X = 99
	assert.Equal(t, 1.0, s.Position.X)
}

func TestServerState_KinematicsFallsBackToZero(t *testing.T) {
	s := ServerStateData{}
	assert.Equal(t, interp.Kinematics{}, s.Kinematics())

	s.Merge(EntityUpdate{Position: vec(3, 4)})
	assert.Equal(t, interp.Kinematics{Position: gamemath.Vec2{X: 3, Y: 4}}, s.Kinematics())
}

func TestServerState_DefaultColor(t *testing.T) {
	s := ServerStateData{}
	assert.Equal(t, DefaultColor, s.ColorOrDefault())
}

package core

import (
	"math"
	"testing"

	"github.com/automoto/splinesync/shared/gamemath"
	"github.com/automoto/splinesync/shared/netcomponents"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(s *Scene) map[netcomponents.EntityID]netcomponents.ServerStateData {
	out := make(map[netcomponents.EntityID]netcomponents.ServerStateData)
	s.Each(func(id netcomponents.EntityID, state *netcomponents.ServerStateData) {
		out[id] = *state
	})
	return out
}

func TestNewScene_SpawnsCompleteRecords(t *testing.T) {
	s := NewScene(3, gamemath.Vec2{X: 100, Y: 100}, 0)
	require.Equal(t, 3, s.Len())

	for id, state := range collect(s) {
		assert.NotNil(t, state.Position, id)
		assert.NotNil(t, state.Velocity, id)
		assert.NotNil(t, state.Shape, id)
		assert.NotNil(t, state.Color, id)
		assert.NotNil(t, state.Angle, id)
	}

	removed, spawned := s.TakeChanges()
	assert.Empty(t, removed)
	assert.True(t, spawned)

	_, spawned = s.TakeChanges()
	assert.False(t, spawned)
}

func TestScene_StepMovesAlongOrbit(t *testing.T) {
	center := gamemath.Vec2{X: 100, Y: 100}
	s := NewScene(1, center, 0)
	before := *collect(s)["0"].Position

	s.Step(0.5)
	after := collect(s)["0"]

	assert.NotEqual(t, before, *after.Position)
	dx, dy := after.Position.X-center.X, after.Position.Y-center.Y
	assert.InDelta(t, 50, math.Hypot(dx, dy), 1e-9)

	// velocity is tangent to the orbit
	assert.InDelta(t, 0, dx*after.Velocity.X+dy*after.Velocity.Y, 1e-6)
}

func TestScene_ChurnReplacesOldest(t *testing.T) {
	s := NewScene(2, gamemath.Vec2{}, 1)
	s.TakeChanges()

	s.Step(0.5)
	removed, spawned := s.TakeChanges()
	assert.Empty(t, removed)
	assert.False(t, spawned)

	s.Step(0.5)
	removed, spawned = s.TakeChanges()
	assert.Equal(t, []netcomponents.EntityID{"0"}, removed)
	assert.True(t, spawned)

	ids := collect(s)
	assert.Len(t, ids, 2)
	assert.Contains(t, ids, netcomponents.EntityID("1"))
	assert.Contains(t, ids, netcomponents.EntityID("2"))
}

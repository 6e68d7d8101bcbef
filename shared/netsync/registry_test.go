package netsync

import (
	"testing"
	"time"

	"github.com/automoto/splinesync/shared/gamemath"
	"github.com/automoto/splinesync/shared/interp"
	"github.com/automoto/splinesync/shared/netcomponents"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSprite struct {
	shape     netcomponents.Shape
	color     uint32
	pos       gamemath.Vec2
	rotation  float64
	destroyed int
}

func (f *fakeSprite) SetPosition(x, y float64) { f.pos = gamemath.Vec2{X: x, Y: y} }
func (f *fakeSprite) SetRotation(theta float64) { f.rotation = theta }
func (f *fakeSprite) Destroy()                  { f.destroyed++ }
func (f *fakeSprite) Destroyed() bool           { return f.destroyed > 0 }

type fakeFactory struct {
	built []*fakeSprite
}

func (f *fakeFactory) NewRenderable(shape netcomponents.Shape, color uint32) interp.Renderable {
	s := &fakeSprite{shape: shape, color: color}
	f.built = append(f.built, s)
	return s
}

func (f *fakeFactory) last() *fakeSprite {
	return f.built[len(f.built)-1]
}

type testEnv struct {
	registry *Registry
	coord    *interp.Coordinator
	factory  *fakeFactory
	now      time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		factory: &fakeFactory{},
		now:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	coord, err := interp.NewCoordinator(interp.Config{
		BufferSize:      5,
		FrameSeed:       1,
		DelaySeedMillis: 1,
		Enabled:         true,
		Now:             func() time.Time { return env.now },
	})
	require.NoError(t, err)
	env.coord = coord
	env.registry = NewRegistry(coord, env.factory)
	return env
}

func vec(x, y float64) *gamemath.Vec2 { return &gamemath.Vec2{X: x, Y: y} }

var square = netcomponents.PolygonShape{Vertices: [][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}, Fill: true}

func TestApplyUpdate_CreatesUnknownEntity(t *testing.T) {
	env := newTestEnv(t)
	env.registry.ApplyUpdate(netcomponents.EntityUpdate{ID: "0", Position: vec(0, 1), Velocity: vec(2, 3)})

	server, local, ok := env.registry.Lookup("0")
	require.True(t, ok)
	assert.Equal(t, gamemath.Vec2{X: 0, Y: 1}, *server.Position)
	assert.Equal(t, gamemath.Vec2{X: 2, Y: 3}, *server.Velocity)
	assert.Nil(t, server.Shape)
	assert.Empty(t, local.Renderables)
	assert.Nil(t, local.Interp)
	assert.Equal(t, 1, env.registry.Len())
}

func TestApplyUpdate_MergesPartialFields(t *testing.T) {
	env := newTestEnv(t)
	env.registry.ApplyUpdate(netcomponents.EntityUpdate{ID: "0", Position: vec(0, 1), Velocity: vec(2, 3)})
	env.registry.ApplyUpdate(netcomponents.EntityUpdate{ID: "0", Velocity: vec(4, 5)})

	server, _, ok := env.registry.Lookup("0")
	require.True(t, ok)
	assert.Equal(t, gamemath.Vec2{X: 0, Y: 1}, *server.Position)
	assert.Equal(t, gamemath.Vec2{X: 4, Y: 5}, *server.Velocity)
}

func TestApplyUpdate_ShapeBuildsRenderableAtKnownPosition(t *testing.T) {
	env := newTestEnv(t)
	env.registry.ApplyUpdate(netcomponents.EntityUpdate{ID: "a", Position: vec(7, 8)})
	env.registry.ApplyUpdate(netcomponents.EntityUpdate{ID: "a", Shape: square})

	require.Len(t, env.factory.built, 1)
	sprite := env.factory.last()
	assert.Equal(t, gamemath.Vec2{X: 7, Y: 8}, sprite.pos)
	assert.Equal(t, netcomponents.DefaultColor, sprite.color)
	assert.Equal(t, 1, env.coord.Len())
}

func TestApplyUpdate_ShapeWithoutPositionStartsAtOrigin(t *testing.T) {
	env := newTestEnv(t)
	color := uint32(0x00ff00)
	env.registry.ApplyUpdate(netcomponents.EntityUpdate{ID: "a", Shape: square, Color: &color})

	sprite := env.factory.last()
	assert.Equal(t, gamemath.Vec2{}, sprite.pos)
	assert.Equal(t, color, sprite.color)
}

func TestApplyUpdate_ShapeChangeReplacesRenderable(t *testing.T) {
	env := newTestEnv(t)
	env.registry.ApplyUpdate(netcomponents.EntityUpdate{ID: "a", Shape: square, Position: vec(1, 1)})
	_, local, _ := env.registry.Lookup("a")
	state := local.Interp
	old := env.factory.last()

	env.registry.ApplyUpdate(netcomponents.EntityUpdate{
		ID:       "a",
		Shape:    netcomponents.ArcShape{Radius: 3},
		Position: vec(4, 4),
	})

	fresh := env.factory.last()
	assert.Equal(t, 1, old.destroyed)
	assert.NotSame(t, old, fresh)
	assert.Same(t, state, local.Interp, "interpolation state is reseeded, not replaced")
	assert.Equal(t, []interp.Renderable{fresh}, local.Renderables)
	assert.Equal(t, gamemath.Vec2{X: 4, Y: 4}, fresh.pos)

	env.coord.Tick()
	assert.Equal(t, 1, env.coord.Len())
	assert.Equal(t, gamemath.Vec2{X: 4, Y: 4}, fresh.pos)
}

func TestApplyUpdate_PositionRecalculates(t *testing.T) {
	env := newTestEnv(t)
	env.registry.ApplyUpdate(netcomponents.EntityUpdate{ID: "a", Shape: square, Position: vec(0, 0)})

	env.registry.ApplyUpdate(netcomponents.EntityUpdate{ID: "a", Position: vec(10, 0)})

	_, local, _ := env.registry.Lookup("a")
	assert.Equal(t, gamemath.Vec2{X: 10, Y: 0}, local.Interp.Target().Position)
	assert.Len(t, env.factory.built, 1, "position updates keep the renderable")
}

func TestApplyUpdate_AngleSnaps(t *testing.T) {
	env := newTestEnv(t)
	env.registry.ApplyUpdate(netcomponents.EntityUpdate{ID: "a", Shape: square})

	angle := 0.75
	env.registry.ApplyUpdate(netcomponents.EntityUpdate{ID: "a", Angle: &angle})
	assert.Equal(t, 0.75, env.factory.last().rotation)

	env.registry.ApplyUpdate(netcomponents.EntityUpdate{ID: "a", Shape: square})
	assert.Equal(t, 0.75, env.factory.last().rotation, "rebuilt renderable keeps the known angle")
}

func TestRemoveEntity_DestroysRenderablesOnce(t *testing.T) {
	env := newTestEnv(t)
	env.registry.ApplyUpdate(netcomponents.EntityUpdate{ID: "a", Shape: square})
	sprite := env.factory.last()

	env.registry.RemoveEntity("a")
	env.registry.RemoveEntity("a")

	assert.Equal(t, 1, sprite.destroyed)
	_, _, ok := env.registry.Lookup("a")
	assert.False(t, ok)
	assert.Zero(t, env.registry.Len())

	env.coord.Tick()
	assert.Zero(t, env.coord.Len())
}

func TestRemoveEntity_UnknownIsNoop(t *testing.T) {
	env := newTestEnv(t)
	env.registry.RemoveEntity("missing")
	assert.Zero(t, env.registry.Len())
}

func TestApplyBatch_UpdatesThenRemovals(t *testing.T) {
	env := newTestEnv(t)
	env.registry.ApplyBatch(netcomponents.SyncBatch{
		Updates: []netcomponents.EntityUpdate{
			{ID: "a", Shape: square},
			{ID: "b", Shape: square},
		},
	})
	require.Equal(t, 2, env.registry.Len())

	env.registry.ApplyBatch(netcomponents.SyncBatch{
		Updates: []netcomponents.EntityUpdate{{ID: "a", Position: vec(1, 1)}},
		Remove:  []netcomponents.EntityID{"a"},
	})

	_, _, ok := env.registry.Lookup("a")
	assert.False(t, ok)
	_, _, ok = env.registry.Lookup("b")
	assert.True(t, ok)
}

func TestApplyBatch_SharesOneEstimate(t *testing.T) {
	env := newTestEnv(t)
	env.registry.ApplyBatch(netcomponents.SyncBatch{
		Updates: []netcomponents.EntityUpdate{
			{ID: "a", Shape: square},
			{ID: "b", Shape: square},
		},
	})
	for range 6 {
		env.coord.Tick()
	}
	env.now = env.now.Add(100 * time.Millisecond)

	env.registry.ApplyBatch(netcomponents.SyncBatch{
		Updates: []netcomponents.EntityUpdate{
			{ID: "a", Position: vec(10, 0)},
			{ID: "b", Position: vec(0, 10)},
		},
	})
	frames := env.coord.Estimate().Frames
	require.Greater(t, frames, 1)

	for range frames {
		env.coord.Tick()
	}
	_, a, _ := env.registry.Lookup("a")
	_, b, _ := env.registry.Lookup("b")
	assert.InDelta(t, 10, a.Interp.Position().X, 1e-9)
	assert.InDelta(t, 10, b.Interp.Position().Y, 1e-9)
}

func TestEndToEnd_EntityReachesTargetAfterCadence(t *testing.T) {
	env := newTestEnv(t)
	env.registry.ApplyBatch(netcomponents.SyncBatch{
		Updates: []netcomponents.EntityUpdate{
			{ID: "0", Shape: square, Position: vec(0, 1), Velocity: vec(0, 0)},
		},
	})
	sprite := env.factory.last()
	assert.Equal(t, gamemath.Vec2{X: 0, Y: 1}, sprite.pos)

	env.now = env.now.Add(50 * time.Millisecond)
	env.registry.ApplyBatch(netcomponents.SyncBatch{
		Updates: []netcomponents.EntityUpdate{
			{ID: "0", Position: vec(5, 5), Velocity: vec(0, 0)},
		},
	})

	for range env.coord.Estimate().Frames {
		env.coord.Tick()
	}
	assert.InDelta(t, 5, sprite.pos.X, 1e-9)
	assert.InDelta(t, 5, sprite.pos.Y, 1e-9)
}

func TestEach_VisitsEveryEntity(t *testing.T) {
	env := newTestEnv(t)
	env.registry.ApplyUpdate(netcomponents.EntityUpdate{ID: "a", Shape: square})
	env.registry.ApplyUpdate(netcomponents.EntityUpdate{ID: "b"})

	seen := map[netcomponents.EntityID]int{}
	env.registry.Each(func(id netcomponents.EntityID, local *netcomponents.LocalStateData) {
		seen[id] = len(local.Renderables)
	})
	assert.Equal(t, map[netcomponents.EntityID]int{"a": 1, "b": 0}, seen)
}

func TestClear_DestroysEverything(t *testing.T) {
	env := newTestEnv(t)
	env.registry.ApplyUpdate(netcomponents.EntityUpdate{ID: "a", Shape: square})
	env.registry.ApplyUpdate(netcomponents.EntityUpdate{ID: "b", Shape: square})

	env.registry.Clear()
	assert.Zero(t, env.registry.Len())
	for _, s := range env.factory.built {
		assert.Equal(t, 1, s.destroyed)
	}
}

func TestApplyBatch_TimesBatchesByArrival(t *testing.T) {
	env := newTestEnv(t)
	start := env.now
	env.now = env.now.Add(time.Second)

	env.registry.ApplyBatch(netcomponents.SyncBatch{ReceivedAt: start.Add(40 * time.Millisecond)})
	env.registry.ApplyBatch(netcomponents.SyncBatch{ReceivedAt: start.Add(80 * time.Millisecond)})

	// delay: mean(40,40,1,1,1) ms, not the 1 s the frame was applied at
	assert.InDelta(t, 0.0166, env.coord.Estimate().DelaySeconds, 1e-12)
}

package core

import (
	"math"
	"strconv"

	"github.com/automoto/splinesync/shared/gamemath"
	"github.com/automoto/splinesync/shared/netcomponents"
	"github.com/yohamta/donburi"
)

// orbitData drives one demo entity around a circle.
type orbitData struct {
	Center gamemath.Vec2
	Radius float64
	Speed  float64 // radians per second
	Phase  float64
	Spin   float64 // angle multiplier, 0 keeps the shape upright
}

var orbit = donburi.NewComponentType[orbitData]()

type palette struct {
	shape netcomponents.Shape
	color uint32
}

var shapes = []palette{
	{netcomponents.RectShape{X: -16, Y: -16, Width: 32, Height: 32, Fill: true}, 0xe94560},
	{netcomponents.ArcShape{Radius: 16, EndAngle: 2 * math.Pi, Fill: true}, 0x53d769},
	{netcomponents.PolygonShape{Vertices: [][2]float64{{-18, -18}, {18, 0}, {-18, 18}}, Fill: true}, 0x3a86ff},
	{netcomponents.ArcShape{Radius: 20, StartAngle: 0.4, EndAngle: 2*math.Pi - 0.4}, 0xffbe0b},
	{netcomponents.RectShape{X: -24, Y: -6, Width: 48, Height: 12}, 0xffffff},
}

// Scene owns the authoritative entities. It is not safe for concurrent use.
type Scene struct {
	world    donburi.World
	entities []donburi.Entity
	center   gamemath.Vec2

	nextID     int
	elapsed    float64
	sinceChurn float64
	churnEvery float64

	removed []netcomponents.EntityID
	spawned bool
}

// NewScene spawns count orbiting entities around center. A positive churnEvery
// replaces the oldest entity with a new one at that interval in seconds.
func NewScene(count int, center gamemath.Vec2, churnEvery float64) *Scene {
	s := &Scene{
		world:      donburi.NewWorld(),
		center:     center,
		churnEvery: churnEvery,
	}
	for i := 0; i < count; i++ {
		s.spawn()
	}
	return s
}

func (s *Scene) spawn() {
	n := s.nextID
	s.nextID++

	p := shapes[n%len(shapes)]
	id := netcomponents.EntityID(strconv.Itoa(n))
	entity := s.world.Create(netcomponents.NetEntity, netcomponents.ServerState, orbit)
	entry := s.world.Entry(entity)

	netcomponents.NetEntity.SetValue(entry, netcomponents.NetEntityData{ID: id})
	color := p.color
	netcomponents.ServerState.SetValue(entry, netcomponents.ServerStateData{
		Shape: p.shape,
		Color: &color,
	})

	ring := float64(n%4 + 1)
	dir := 1.0
	if n%2 == 1 {
		dir = -1
	}
	orbit.SetValue(entry, orbitData{
		Center: s.center,
		Radius: 50 * ring,
		Speed:  dir * (1.2 / ring),
		Phase:  float64(n) * 0.9,
		Spin:   float64(n%3) * dir,
	})
	s.place(entry)

	s.entities = append(s.entities, entity)
	s.spawned = true
}

func (s *Scene) despawnOldest() {
	if len(s.entities) == 0 {
		return
	}
	entity := s.entities[0]
	s.entities = s.entities[1:]
	entry := s.world.Entry(entity)
	s.removed = append(s.removed, netcomponents.NetEntity.Get(entry).ID)
	s.world.Remove(entity)
}

// Step advances the simulation by dt seconds.
func (s *Scene) Step(dt float64) {
	s.elapsed += dt
	if s.churnEvery > 0 {
		s.sinceChurn += dt
		if s.sinceChurn >= s.churnEvery {
			s.sinceChurn = 0
			s.despawnOldest()
			s.spawn()
		}
	}
	for _, entity := range s.entities {
		s.place(s.world.Entry(entity))
	}
}

func (s *Scene) place(entry *donburi.Entry) {
	o := orbit.Get(entry)
	theta := o.Phase + o.Speed*s.elapsed

	pos := o.Center.Add(gamemath.Vec2{X: math.Cos(theta), Y: math.Sin(theta)}.Scale(o.Radius))
	vel := gamemath.Vec2{X: -math.Sin(theta), Y: math.Cos(theta)}.Scale(o.Radius * o.Speed)
	angle := theta * o.Spin

	state := netcomponents.ServerState.Get(entry)
	state.Position = &pos
	state.Velocity = &vel
	state.Angle = &angle
}

// Each calls fn for every live entity in spawn order.
func (s *Scene) Each(fn func(id netcomponents.EntityID, state *netcomponents.ServerStateData)) {
	for _, entity := range s.entities {
		entry := s.world.Entry(entity)
		fn(netcomponents.NetEntity.Get(entry).ID, netcomponents.ServerState.Get(entry))
	}
}

// TakeChanges returns the ids removed since the last call and whether any
// entity was spawned, then resets both.
func (s *Scene) TakeChanges() (removed []netcomponents.EntityID, spawned bool) {
	removed, spawned = s.removed, s.spawned
	s.removed, s.spawned = nil, false
	return removed, spawned
}

func (s *Scene) Len() int {
	return len(s.entities)
}

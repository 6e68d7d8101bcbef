// Package netsync keeps the client's copy of every server entity and turns
// snapshot batches into renderable, interpolated state.
package netsync

import (
	"github.com/automoto/splinesync/shared/interp"
	"github.com/automoto/splinesync/shared/netcomponents"
	"github.com/sirupsen/logrus"
	"github.com/yohamta/donburi"
)

// RenderableFactory builds the drawable for a shape. Colour is 0xRRGGBB.
type RenderableFactory interface {
	NewRenderable(shape netcomponents.Shape, color uint32) interp.Renderable
}

// Registry owns every known entity: its server record and its renderables.
// Entities are created by the first update naming them and only leave on an
// explicit removal. It is not safe for concurrent use.
type Registry struct {
	world   donburi.World
	index   map[netcomponents.EntityID]donburi.Entity
	interp  *interp.Coordinator
	factory RenderableFactory
	log     *logrus.Entry
}

// NewRegistry creates an empty registry. Interpolation states for shaped
// entities are registered with coord.
func NewRegistry(coord *interp.Coordinator, factory RenderableFactory) *Registry {
	return &Registry{
		world:   donburi.NewWorld(),
		index:   make(map[netcomponents.EntityID]donburi.Entity),
		interp:  coord,
		factory: factory,
		log:     logrus.WithField("component", "netsync"),
	}
}

// ApplyBatch processes one snapshot batch: timing first, then updates in
// order, then removals.
func (r *Registry) ApplyBatch(batch netcomponents.SyncBatch) {
	if batch.ReceivedAt.IsZero() {
		r.interp.OnSnapshotReceived()
	} else {
		r.interp.OnSnapshotReceivedAt(batch.ReceivedAt)
	}

	for _, u := range batch.Updates {
		r.ApplyUpdate(u)
	}
	for _, id := range batch.Remove {
		r.RemoveEntity(id)
	}
}

// ApplyUpdate merges u into the entity it names, creating it if needed.
// A new shape rebuilds the renderable; otherwise a new position refits the
// interpolation curve. Angles are applied immediately.
func (r *Registry) ApplyUpdate(u netcomponents.EntityUpdate) {
	entry := r.entry(u.ID)
	if entry == nil {
		entry = r.create(u.ID)
		r.log.WithField("id", u.ID).Debug("entity created")
	}

	server := netcomponents.ServerState.Get(entry)
	server.Merge(u)
	local := netcomponents.LocalState.Get(entry)

	switch {
	case u.Shape != nil:
		r.rebuild(server, local)
	case u.Position != nil && local.Interp != nil:
		est := r.interp.Estimate()
		local.Interp.Recalculate(server.Kinematics(), est.DelaySeconds, est.Frames)
	}

	if u.Angle != nil {
		for _, rd := range local.Renderables {
			rd.SetRotation(*u.Angle)
		}
	}
}

// RemoveEntity destroys the entity's renderables and forgets it.
// Unknown ids are ignored.
func (r *Registry) RemoveEntity(id netcomponents.EntityID) {
	entry := r.entry(id)
	if entry == nil {
		return
	}

	local := netcomponents.LocalState.Get(entry)
	destroyAll(local)
	local.Interp = nil

	r.world.Remove(entry.Entity())
	delete(r.index, id)
	r.log.WithField("id", id).Debug("entity removed")
}

// Lookup returns the entity's server record and local state.
func (r *Registry) Lookup(id netcomponents.EntityID) (*netcomponents.ServerStateData, *netcomponents.LocalStateData, bool) {
	entry := r.entry(id)
	if entry == nil {
		return nil, nil, false
	}
	return netcomponents.ServerState.Get(entry), netcomponents.LocalState.Get(entry), true
}

// Len returns the number of known entities.
func (r *Registry) Len() int {
	return len(r.index)
}

// Each calls fn for every known entity, in no particular order.
func (r *Registry) Each(fn func(id netcomponents.EntityID, local *netcomponents.LocalStateData)) {
	netcomponents.LocalState.Each(r.world, func(entry *donburi.Entry) {
		fn(netcomponents.NetEntity.Get(entry).ID, netcomponents.LocalState.Get(entry))
	})
}

// Clear destroys every entity.
func (r *Registry) Clear() {
	for id := range r.index {
		r.RemoveEntity(id)
	}
}

func (r *Registry) entry(id netcomponents.EntityID) *donburi.Entry {
	e, ok := r.index[id]
	if !ok || !r.world.Valid(e) {
		return nil
	}
	return r.world.Entry(e)
}

func (r *Registry) create(id netcomponents.EntityID) *donburi.Entry {
	e := r.world.Create(netcomponents.NetEntity, netcomponents.ServerState, netcomponents.LocalState)
	entry := r.world.Entry(e)
	netcomponents.NetEntity.SetValue(entry, netcomponents.NetEntityData{ID: id})
	r.index[id] = e
	return entry
}

// rebuild replaces the entity's renderables with one built from the current
// shape and restarts interpolation from the latest known kinematics.
func (r *Registry) rebuild(server *netcomponents.ServerStateData, local *netcomponents.LocalStateData) {
	destroyAll(local)

	rd := r.factory.NewRenderable(server.Shape, server.ColorOrDefault())
	local.Renderables = []interp.Renderable{rd}
	if server.Angle != nil {
		rd.SetRotation(*server.Angle)
	}

	k := server.Kinematics()
	if local.Interp == nil {
		local.Interp = r.interp.Register(rd, k)
		return
	}
	r.interp.Reseed(local.Interp, rd, k)
}

func destroyAll(local *netcomponents.LocalStateData) {
	for _, rd := range local.Renderables {
		if !rd.Destroyed() {
			rd.Destroy()
		}
	}
	local.Renderables = nil
}

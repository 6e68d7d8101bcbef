package netcomponents

import (
	"time"

	"github.com/automoto/splinesync/shared/gamemath"
)

// EntityID is the server's stable key for an entity.
type EntityID string

// EntityUpdate is a partial entity state from one snapshot. Nil fields were
// not part of the update.
type EntityUpdate struct {
	ID       EntityID
	Position *gamemath.Vec2
	Velocity *gamemath.Vec2
	Shape    Shape
	Color    *uint32
	Angle    *float64
}

// SyncBatch is one snapshot: updates in arrival order, then removals.
type SyncBatch struct {
	Updates []EntityUpdate
	Remove  []EntityID

	// ReceivedAt is when the transport got the batch. Zero means it is
	// timed when applied.
	ReceivedAt time.Time
}

package systems

import (
	"github.com/automoto/splinesync/shared/interp"
	"github.com/yohamta/donburi/ecs"
)

// NewNetInterpSystem advances every interpolated entity by one render frame.
// coord is looked up on each tick because reconnects replace it.
func NewNetInterpSystem(coord func() *interp.Coordinator) func(*ecs.ECS) {
	return func(_ *ecs.ECS) {
		if c := coord(); c != nil {
			c.Tick()
		}
	}
}

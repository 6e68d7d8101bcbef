package netcomponents

import (
	"github.com/automoto/splinesync/shared/interp"
	"github.com/yohamta/donburi"
)

// LocalStateData is what the client derives for an entity: the renderables it
// owns and the interpolation state animating them.
type LocalStateData struct {
	Renderables []interp.Renderable
	Interp      *interp.State
}

var LocalState = donburi.NewComponentType[LocalStateData]()

// NetEntityData tags a world entry with its server id.
type NetEntityData struct {
	ID EntityID
}

var NetEntity = donburi.NewComponentType[NetEntityData]()

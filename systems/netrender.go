package systems

import (
	"github.com/automoto/splinesync/components"
	"github.com/automoto/splinesync/shared/netcomponents"
	"github.com/automoto/splinesync/shared/netsync"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

// Render layers for the networked scene.
const (
	LayerEntities ecs.LayerID = iota
	LayerHUD
)

var netDrawOp = &ebiten.DrawImageOptions{}

// NewNetEntityRenderer returns a renderer that draws every sprite owned by the
// registry at its interpolated position.
func NewNetEntityRenderer(reg func() *netsync.Registry) func(*ecs.ECS, *ebiten.Image) {
	return func(_ *ecs.ECS, screen *ebiten.Image) {
		r := reg()
		if r == nil {
			return
		}
		r.Each(func(_ netcomponents.EntityID, local *netcomponents.LocalStateData) {
			for _, rd := range local.Renderables {
				sprite, ok := rd.(*components.SpriteData)
				if !ok || sprite.Destroyed() {
					continue
				}
				drawSprite(screen, sprite)
			}
		})
	}
}

func drawSprite(screen *ebiten.Image, sprite *components.SpriteData) {
	netDrawOp.GeoM.Reset()
	netDrawOp.GeoM.Translate(-sprite.PivotX, -sprite.PivotY)
	netDrawOp.GeoM.Rotate(sprite.Rotation)
	netDrawOp.GeoM.Translate(sprite.X, sprite.Y)
	screen.DrawImage(sprite.Image, netDrawOp)
}

package components

import "github.com/hajimehoshi/ebiten/v2"

// SpriteData is a pre-rasterized image drawn at a server-driven position.
// It implements interp.Renderable.
type SpriteData struct {
	Image    *ebiten.Image
	X, Y     float64
	Rotation float64
	PivotX   float64
	PivotY   float64

	destroyed bool
}

func (s *SpriteData) SetPosition(x, y float64) {
	s.X, s.Y = x, y
}

func (s *SpriteData) SetRotation(theta float64) {
	s.Rotation = theta
}

// Destroy releases the image. The sprite is skipped from then on.
func (s *SpriteData) Destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	if s.Image != nil {
		s.Image.Deallocate()
		s.Image = nil
	}
}

func (s *SpriteData) Destroyed() bool {
	return s.destroyed
}

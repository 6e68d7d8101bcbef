package interp

import (
	"time"

	"github.com/automoto/splinesync/shared/gamemath"
)

type fakeRenderable struct {
	pos       gamemath.Vec2
	rotation  float64
	sets      int
	destroyed bool
}

func (f *fakeRenderable) SetPosition(x, y float64) {
	f.pos = gamemath.Vec2{X: x, Y: y}
	f.sets++
}

func (f *fakeRenderable) SetRotation(theta float64) { f.rotation = theta }
func (f *fakeRenderable) Destroy()                  { f.destroyed = true }
func (f *fakeRenderable) Destroyed() bool           { return f.destroyed }

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

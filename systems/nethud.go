package systems

import (
	"image/color"

	cfg "github.com/automoto/splinesync/config"
	"github.com/automoto/splinesync/fonts"
	"github.com/automoto/splinesync/network"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi/ecs"
)

// NetHUD draws connection diagnostics and a fading banner after toggles.
type NetHUD struct {
	stats   func() network.Stats
	visible bool

	banner      string
	bannerTween *gween.Tween
	bannerAlpha float32
}

func NewNetHUD(stats func() network.Stats) *NetHUD {
	return &NetHUD{stats: stats, visible: cfg.HUD.Visible}
}

// ShowBanner flashes msg in the middle of the screen.
func (h *NetHUD) ShowBanner(msg string) {
	h.banner = msg
	h.bannerAlpha = 1
	h.bannerTween = gween.New(1, 0, cfg.HUD.BannerDuration, ease.InQuad)
}

func (h *NetHUD) ToggleVisible() {
	h.visible = !h.visible
}

func (h *NetHUD) Visible() bool {
	return h.visible
}

// Update advances the banner fade.
func (h *NetHUD) Update(_ *ecs.ECS) {
	if h.bannerTween == nil {
		return
	}
	alpha, done := h.bannerTween.Update(1 / float32(ebiten.TPS()))
	h.bannerAlpha = alpha
	if done {
		h.bannerTween = nil
		h.banner = ""
	}
}

func (h *NetHUD) Draw(_ *ecs.ECS, screen *ebiten.Image) {
	if h.banner != "" {
		clr := fade(cfg.White, h.bannerAlpha)
		x := cfg.C.Width/2 - len(h.banner)*7
		text.Draw(screen, h.banner, fonts.Title.Get(), x, cfg.C.Height/2, clr)
	}

	if !h.visible {
		return
	}

	s := h.stats()
	if !s.Connected {
		text.Draw(screen, s.Header(), fonts.Mono.Get(), 4, 16, cfg.HUD.WarnColor)
		return
	}

	lines := s.Lines()
	vector.DrawFilledRect(screen, 0, 0, 170, float32(24+len(lines)*12), cfg.BlackOverlay, false)
	text.Draw(screen, s.Header(), fonts.Mono.Get(), 4, 16, cfg.HUD.TextColor)
	face := fonts.Small.Get()
	for i, line := range lines {
		text.Draw(screen, line, face, 4, 30+i*12, cfg.HUD.TextColor)
	}
}

func fade(c color.RGBA, alpha float32) color.RGBA {
	a := max(0, min(1, alpha))
	return color.RGBA{
		R: uint8(float32(c.R) * a),
		G: uint8(float32(c.G) * a),
		B: uint8(float32(c.B) * a),
		A: uint8(float32(c.A) * a),
	}
}

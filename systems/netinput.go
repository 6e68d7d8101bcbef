package systems

import (
	cfg "github.com/automoto/splinesync/config"
	"github.com/automoto/splinesync/shared/interp"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"
	"github.com/yohamta/donburi/ecs"
)

// Diagnostics key bindings.
const (
	KeyToggleInterp = ebiten.KeyI
	KeyToggleHUD    = ebiten.KeyF3
)

// NewNetDebugInputSystem handles the diagnostics keys: toggling curve
// interpolation (persisted across runs) and the HUD overlay.
func NewNetDebugInputSystem(coord func() *interp.Coordinator, hud *NetHUD) func(*ecs.ECS) {
	log := logrus.WithField("component", "input")

	return func(_ *ecs.ECS) {
		if inpututil.IsKeyJustPressed(KeyToggleHUD) {
			hud.ToggleVisible()
			cfg.HUD.Visible = hud.Visible()
			saveDebugSettings()
		}

		if !inpututil.IsKeyJustPressed(KeyToggleInterp) {
			return
		}
		c := coord()
		if c == nil {
			return
		}
		c.SetEnabled(!c.Enabled())
		cfg.Interp.Enabled = c.Enabled()
		if c.Enabled() {
			hud.ShowBanner("Interpolation ON")
		} else {
			hud.ShowBanner("Interpolation OFF")
		}
		log.WithField("enabled", c.Enabled()).Debug("interpolation key")
		saveDebugSettings()
	}
}

func saveDebugSettings() {
	_ = SaveSettings(cfg.CurrentSettings())
}

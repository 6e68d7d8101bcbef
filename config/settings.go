package config

// Settings are the user toggles kept between runs.
type Settings struct {
	Interpolation bool `json:"interpolation"`
	ShowHUD       bool `json:"showHud"`
}

// CurrentSettings snapshots the toggles from the live configuration.
func CurrentSettings() Settings {
	return Settings{
		Interpolation: Interp.Enabled,
		ShowHUD:       HUD.Visible,
	}
}

// Apply writes s back into the live configuration.
func (s Settings) Apply() {
	Interp.Enabled = s.Interpolation
	HUD.Visible = s.ShowHUD
}

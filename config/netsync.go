package config

import "image/color"

// InterpConfig tunes how remote entities are smoothed between snapshots.
type InterpConfig struct {
	BufferSize      int     `yaml:"buffer_size"`       // Snapshots averaged for the cadence and delay estimates
	FrameSeed       float64 `yaml:"frame_seed"`        // Initial frames-between-snapshots sample
	DelaySeedMillis float64 `yaml:"delay_seed_millis"` // Initial delay sample
	Enabled         bool    `yaml:"enabled"`           // Curve interpolation on start
}

// NetConfig holds connection settings.
type NetConfig struct {
	Address        string `yaml:"address"`
	PlayerName     string `yaml:"player_name"`
	Room           string `yaml:"room"`
	Version        string `yaml:"version"`
	ReconnectDelay int    `yaml:"reconnect_delay"` // Frames to wait before reconnecting
}

// HUDConfig controls the diagnostics overlay.
type HUDConfig struct {
	Visible        bool       `yaml:"visible"`
	TextColor      color.RGBA `yaml:"-"`
	WarnColor      color.RGBA `yaml:"-"`
	BannerDuration float32    `yaml:"banner_duration"` // Seconds the toggle banner takes to fade
}

var Interp InterpConfig
var Net NetConfig
var HUD HUDConfig

func init() {
	Interp = InterpConfig{
		BufferSize:      5,
		FrameSeed:       1,
		DelaySeedMillis: 1,
		Enabled:         true,
	}

	Net = NetConfig{
		Address:        "localhost:8080",
		PlayerName:     "player",
		Room:           "lobby",
		ReconnectDelay: 120,
	}

	HUD = HUDConfig{
		Visible:        true,
		TextColor:      LightGreen,
		WarnColor:      BrightOrange,
		BannerDuration: 1.5,
	}
}

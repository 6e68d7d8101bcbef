package systems

import (
	"encoding/json"

	cfg "github.com/automoto/splinesync/config"
	"github.com/quasilyte/gdata"
	"github.com/sirupsen/logrus"
)

var gdataManager *gdata.Manager
var gdataInitialized bool

var persistLog = logrus.WithField("component", "persistence")

// InitPersistence initializes the gdata manager for settings storage
func InitPersistence() error {
	m, err := gdata.Open(gdata.Config{
		AppName: "splinesync",
	})
	if err != nil {
		persistLog.WithError(err).Warn("could not initialize persistence")
		return err
	}
	gdataManager = m
	gdataInitialized = true
	return nil
}

// LoadSettings loads settings from disk
func LoadSettings() (*cfg.Settings, error) {
	if !gdataInitialized || gdataManager == nil {
		return nil, nil
	}

	data, err := gdataManager.LoadItem("settings")
	if err != nil {
		persistLog.WithError(err).Warn("could not load settings")
		return nil, nil
	}
	if data == nil {
		// No saved settings yet, use defaults
		return nil, nil
	}

	var settings cfg.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		persistLog.WithError(err).Warn("could not parse saved settings")
		return nil, err
	}

	return &settings, nil
}

// SaveSettings saves settings to disk
func SaveSettings(s cfg.Settings) error {
	if !gdataInitialized || gdataManager == nil {
		return nil
	}

	data, err := json.Marshal(s)
	if err != nil {
		persistLog.WithError(err).Warn("could not serialize settings")
		return err
	}

	if err := gdataManager.SaveItem("settings", data); err != nil {
		persistLog.WithError(err).Warn("could not save settings")
		return err
	}
	return nil
}

// ApplySavedSettingsGlobal applies loaded settings to the global config before
// the first connection is made.
func ApplySavedSettingsGlobal(saved *cfg.Settings) {
	if saved == nil {
		return
	}
	saved.Apply()
}

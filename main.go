package main

import (
	"image"
	"os"

	"github.com/automoto/splinesync/config"
	"github.com/automoto/splinesync/fonts"
	"github.com/automoto/splinesync/network"
	"github.com/automoto/splinesync/scenes"
	"github.com/automoto/splinesync/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	bounds image.Rectangle
	scene  Scene
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, config.C.Width, config.C.Height)
	return config.C.Width, config.C.Height
}

var (
	configPath string
	logLevel   string
	server     string
	playerName string
	room       string
	noInterp   bool
)

var rootCmd = &cobra.Command{
	Use:   "splinesync",
	Short: "Client that renders server-pushed entities with spline interpolation",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		logrus.SetLevel(level)

		if configPath != "" {
			if err := config.LoadFile(configPath); err != nil {
				return err
			}
		}

		// Initialize persistence and load saved settings
		if err := systems.InitPersistence(); err != nil {
			logrus.WithError(err).Warn("settings will not be saved")
		}
		if saved, err := systems.LoadSettings(); err == nil && saved != nil {
			systems.ApplySavedSettingsGlobal(saved)
		}
		applyFlagOverrides(cmd)

		if err := fonts.LoadDefaults(); err != nil {
			return err
		}

		scene, err := scenes.NewNetworkedScene(network.JoinParams{
			Address:    config.Net.Address,
			Version:    config.Net.Version,
			PlayerName: config.Net.PlayerName,
			Room:       config.Net.Room,
		})
		if err != nil {
			return err
		}

		ebiten.SetWindowSize(config.C.Width, config.C.Height)
		ebiten.SetWindowTitle("splinesync")
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeOnlyFullscreenEnabled)

		return ebiten.RunGame(&Game{scene: scene})
	},
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
	rootCmd.Flags().StringVar(&server, "server", config.Net.Address, "Server address (host:port)")
	rootCmd.Flags().StringVar(&playerName, "name", config.Net.PlayerName, "Player name")
	rootCmd.Flags().StringVar(&room, "room", config.Net.Room, "Room to join")
	rootCmd.Flags().BoolVar(&noInterp, "no-interp", false, "Start with interpolation disabled")
}

// applyFlagOverrides lets explicit flags win over the config file and saved settings.
func applyFlagOverrides(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("server") {
		config.Net.Address = server
	}
	if flags.Changed("name") {
		config.Net.PlayerName = playerName
	}
	if flags.Changed("room") {
		config.Net.Room = room
	}
	if flags.Changed("no-interp") {
		config.Interp.Enabled = !noInterp
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

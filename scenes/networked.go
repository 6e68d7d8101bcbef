package scenes

import (
	"fmt"
	"image/color"
	"sync"

	cfg "github.com/automoto/splinesync/config"
	"github.com/automoto/splinesync/network"
	"github.com/automoto/splinesync/shared/interp"
	"github.com/automoto/splinesync/shared/netsync"
	"github.com/automoto/splinesync/systems"
	"github.com/automoto/splinesync/systems/factory"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// session is the state of one connection. Reconnecting throws it away.
type session struct {
	coord    *interp.Coordinator
	registry *netsync.Registry
}

func newSession() (*session, error) {
	coord, err := interp.NewCoordinator(interp.Config{
		BufferSize:      cfg.Interp.BufferSize,
		FrameSeed:       cfg.Interp.FrameSeed,
		DelaySeedMillis: cfg.Interp.DelaySeedMillis,
		Enabled:         cfg.Interp.Enabled,
	})
	if err != nil {
		return nil, fmt.Errorf("interpolation: %w", err)
	}
	return &session{
		coord:    coord,
		registry: netsync.NewRegistry(coord, factory.ShapeSprites{}),
	}, nil
}

type NetworkedScene struct {
	ecsWorld  *ecs.ECS
	netClient *network.Client
	params    network.JoinParams
	session   *session
	hud       *systems.NetHUD
	once      sync.Once

	reconnectIn int
	log         *logrus.Entry
}

// NewNetworkedScene validates the interpolation settings and starts connecting.
func NewNetworkedScene(params network.JoinParams) (*NetworkedScene, error) {
	s, err := newSession()
	if err != nil {
		return nil, err
	}
	ns := &NetworkedScene{
		params:  params,
		session: s,
		log:     logrus.WithField("component", "networked"),
	}
	ns.hud = systems.NewNetHUD(ns.stats)
	ns.connect()
	return ns, nil
}

func (ns *NetworkedScene) Update() {
	ns.once.Do(ns.configure)

	switch ns.netClient.State() {
	case network.StateDisconnected, network.StateError:
		ns.handleDisconnect()
	default:
		for _, batch := range ns.netClient.DrainBatches() {
			ns.session.registry.ApplyBatch(batch)
		}
	}

	ns.ecsWorld.Update()
}

func (ns *NetworkedScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	if ns.ecsWorld == nil {
		return
	}

	ns.ecsWorld.Draw(screen)
}

func (ns *NetworkedScene) configure() {
	ns.ecsWorld = ecs.NewECS(donburi.NewWorld())

	ns.ecsWorld.AddSystem(systems.NewNetDebugInputSystem(ns.coordinator, ns.hud))
	ns.ecsWorld.AddSystem(systems.NewNetInterpSystem(ns.coordinator))
	ns.ecsWorld.AddSystem(ns.hud.Update)
	ns.ecsWorld.AddRenderer(systems.LayerEntities, systems.NewNetEntityRenderer(ns.registry))
	ns.ecsWorld.AddRenderer(systems.LayerHUD, ns.hud.Draw)
}

func (ns *NetworkedScene) connect() {
	ns.netClient = network.NewClient()
	ns.netClient.Connect(ns.params)
	ns.log.WithField("address", ns.params.Address).Info("connecting")
}

// handleDisconnect discards all interpolation state and retries after the
// configured delay with a fresh registry and coordinator.
func (ns *NetworkedScene) handleDisconnect() {
	if ns.session != nil {
		if err := ns.netClient.LastError(); err != nil {
			ns.log.WithError(err).Warn("connection lost")
		} else {
			ns.log.Info("connection closed")
		}
		ns.netClient.Disconnect()
		ns.session.registry.Clear()
		ns.session = nil
		ns.reconnectIn = cfg.Net.ReconnectDelay
		return
	}

	if ns.reconnectIn > 0 {
		ns.reconnectIn--
		return
	}

	s, err := newSession()
	if err != nil {
		ns.log.WithError(err).Error("cannot rebuild session")
		ns.reconnectIn = cfg.Net.ReconnectDelay
		return
	}
	ns.session = s
	ns.connect()
}

func (ns *NetworkedScene) coordinator() *interp.Coordinator {
	if ns.session == nil {
		return nil
	}
	return ns.session.coord
}

func (ns *NetworkedScene) registry() *netsync.Registry {
	if ns.session == nil {
		return nil
	}
	return ns.session.registry
}

func (ns *NetworkedScene) stats() network.Stats {
	if ns.session == nil {
		return network.Stats{}
	}
	return ns.netClient.Stats(
		ns.session.registry.Len(),
		ns.session.coord.Estimate(),
		ns.session.coord.Enabled(),
	)
}

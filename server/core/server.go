package core

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/automoto/splinesync/shared/gamemath"
	"github.com/automoto/splinesync/shared/messages"
	"github.com/automoto/splinesync/shared/netcomponents"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/sirupsen/logrus"
)

// Options configure the demo sync server.
type Options struct {
	Name          string
	Version       string // empty accepts any client version
	TickRate      int
	LongSyncEvery int     // ticks between full snapshots
	DropRate      float64 // chance of skipping a motion-only snapshot
	Entities      int
	ChurnSeconds  float64
	Seed          uint64
}

// Server streams the demo scene to every joined client.
type Server struct {
	opts      Options
	loop      *GameLoop
	transport *transports.WsServerTransport

	// mu guards everything below; router callbacks and the loop run on
	// different goroutines.
	mu      sync.Mutex
	scene   *Scene
	clients map[*router.NetworkClient]string
	ticks   int
	rng     *rand.Rand

	log *logrus.Entry
}

func NewServer(opts Options) *Server {
	if opts.TickRate < 1 {
		opts.TickRate = 20
	}
	if opts.LongSyncEvery < 1 {
		opts.LongSyncEvery = opts.TickRate
	}

	s := &Server{
		opts:    opts,
		scene:   NewScene(opts.Entities, gamemath.Vec2{X: 320, Y: 240}, opts.ChurnSeconds),
		clients: make(map[*router.NetworkClient]string),
		rng:     rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
		log:     logrus.WithField("component", "server"),
	}
	s.loop = NewGameLoop(s, opts.TickRate)
	return s
}

// Start runs the tick loop and serves websocket clients on port. It blocks
// until the transport stops.
func (s *Server) Start(port uint) error {
	s.setupRouterCallbacks()
	go s.loop.Run()

	s.transport = transports.NewWsServerTransport(port, "", nil)
	return s.transport.Start()
}

func (s *Server) Stop() {
	s.loop.Stop()
}

func (s *Server) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		s.log.WithField("client", client.Id()).Info("client connected")
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		s.mu.Lock()
		delete(s.clients, client)
		s.mu.Unlock()
		s.log.WithFields(logrus.Fields{
			"client":  client.Id(),
			"players": s.PlayerCount(),
		}).WithError(err).Info("client disconnected")
	})

	router.On(func(client *router.NetworkClient, req messages.JoinRequest) {
		s.onJoin(client, req)
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		s.log.WithField("client", client.Id()).WithError(err).Warn("client error")
	})
}

func (s *Server) onJoin(client *router.NetworkClient, req messages.JoinRequest) {
	log := s.log.WithFields(logrus.Fields{
		"client": client.Id(),
		"player": req.PlayerName,
		"room":   req.Room,
	})

	if reason := s.checkJoin(req); reason != "" {
		log.WithField("reason", reason).Warn("join rejected")
		if err := client.SendMessage(messages.JoinRejected{Reason: reason}); err != nil {
			log.WithError(err).Warn("failed to send rejection")
		}
		return
	}

	s.mu.Lock()
	s.clients[client] = req.Room
	full := s.longSync(nil)
	s.mu.Unlock()

	accepted := messages.JoinAccepted{
		ServerName: s.opts.Name,
		Room:       req.Room,
		TickRate:   s.opts.TickRate,
	}
	if err := client.SendMessage(accepted); err != nil {
		log.WithError(err).Warn("failed to send join accept")
		return
	}
	if err := client.SendMessage(full); err != nil {
		log.WithError(err).Warn("failed to send initial snapshot")
		return
	}
	log.WithField("players", s.PlayerCount()).Info("player joined")
}

func (s *Server) checkJoin(req messages.JoinRequest) string {
	if s.opts.Version != "" && req.Version != s.opts.Version {
		return fmt.Sprintf("version mismatch: server %s, client %s", s.opts.Version, req.Version)
	}
	if req.Room == "" {
		return "room name required"
	}
	return ""
}

// tick advances the scene and sends this tick's snapshot to every joined client.
func (s *Server) tick(dt float64) {
	s.mu.Lock()
	msg := s.snapshot(dt)
	targets := make([]*router.NetworkClient, 0, len(s.clients))
	for c := range s.clients {
		targets = append(targets, c)
	}
	s.mu.Unlock()

	if msg == nil {
		return
	}
	for _, c := range targets {
		if err := c.SendMessage(msg); err != nil {
			s.log.WithField("client", c.Id()).WithError(err).Debug("send failed")
		}
	}
}

// snapshot steps the scene and returns the message for this tick: a full
// snapshot when entities appeared or the long interval elapsed, otherwise a
// motion-only one. Motion-only snapshots are skipped at DropRate to mimic an
// irregular cadence, unless they carry removals. Callers hold mu.
func (s *Server) snapshot(dt float64) any {
	s.scene.Step(dt)
	s.ticks++

	removed, spawned := s.scene.TakeChanges()
	if spawned || s.ticks%s.opts.LongSyncEvery == 0 {
		return s.longSync(removed)
	}
	if len(removed) == 0 && s.opts.DropRate > 0 && s.rng.Float64() < s.opts.DropRate {
		return nil
	}
	return s.shortSync(removed)
}

func (s *Server) longSync(removed []netcomponents.EntityID) messages.LongSyncDTO {
	dto := messages.LongSyncDTO{Remove: idStrings(removed)}
	s.scene.Each(func(id netcomponents.EntityID, state *netcomponents.ServerStateData) {
		dto.Updates = append(dto.Updates, messages.EncodeEntity(id, state))
	})
	return dto
}

func (s *Server) shortSync(removed []netcomponents.EntityID) messages.ShortSyncDTO {
	dto := messages.ShortSyncDTO{Remove: idStrings(removed)}
	s.scene.Each(func(id netcomponents.EntityID, state *netcomponents.ServerStateData) {
		dto.Updates = append(dto.Updates, messages.EncodeShortEntity(id, state))
	})
	return dto
}

func idStrings(ids []netcomponents.EntityID) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

// PlayerCount returns the number of joined clients.
func (s *Server) PlayerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

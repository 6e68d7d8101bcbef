package network

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/automoto/splinesync/shared/messages"
	"github.com/automoto/splinesync/shared/netcomponents"
	"github.com/coder/websocket"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/sirupsen/logrus"
)

// ErrNotConnected is returned when sending without an open connection.
var ErrNotConnected = errors.New("not connected")

type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateConnected
	StateJoinedGame
	StateError
)

func (s ClientState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateJoinedGame:
		return "joined"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// JoinParams identify the player and the room to join.
type JoinParams struct {
	Address    string
	Version    string
	PlayerName string
	Room       string
}

// Client manages a WebSocket connection to the game server.
// All shared fields are protected by mu (router callbacks run on necs goroutines).
type Client struct {
	mu sync.RWMutex

	state      ClientState
	lastError  error
	serverName string
	tickRate   int
	conn       *websocket.Conn

	// Every batch is kept: updates are partial, so dropping one loses state.
	batches *BatchQueue

	log *logrus.Entry
}

func NewClient() *Client {
	return &Client{
		state:   StateDisconnected,
		batches: &BatchQueue{},
		log:     logrus.WithField("component", "client"),
	}
}

// Connect dials the server in a background goroutine and initiates the join handshake.
func (c *Client) Connect(p JoinParams) {
	c.mu.Lock()
	c.state = StateConnecting
	c.lastError = nil
	c.mu.Unlock()

	router.OnConnect(func(_ *router.NetworkClient) {
		c.log.Info("connected to server")
		c.mu.Lock()
		c.state = StateConnected
		c.mu.Unlock()

		err := c.SendMessage(messages.JoinRequest{
			Version:    p.Version,
			PlayerName: p.PlayerName,
			Room:       p.Room,
		})
		if err != nil {
			c.setError(fmt.Errorf("failed to send join request: %w", err))
		}
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinAccepted) {
		c.onJoinAccepted(msg)
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinRejected) {
		c.log.WithField("reason", msg.Reason).Warn("join rejected")
		c.setError(fmt.Errorf("join rejected: %s", msg.Reason))
	})

	router.On(func(_ *router.NetworkClient, msg messages.LongSyncDTO) {
		c.enqueue(msg.Batch())
	})

	router.On(func(_ *router.NetworkClient, msg messages.ShortSyncDTO) {
		c.enqueue(msg.Batch())
	})

	router.OnDisconnect(func(_ *router.NetworkClient, err error) {
		c.log.WithError(err).Info("disconnected")
		c.mu.Lock()
		if c.state != StateError {
			c.state = StateDisconnected
		}
		c.conn = nil
		c.mu.Unlock()
	})

	router.OnError(func(_ *router.NetworkClient, err error) {
		c.log.WithError(err).Warn("router error")
	})

	go func() {
		transport := transports.NewWsClientTransport("ws://" + p.Address)
		err := transport.Start(func(conn *websocket.Conn) {
			c.mu.Lock()
			c.conn = conn
			c.mu.Unlock()
		})
		if err != nil {
			c.setError(fmt.Errorf("connection failed: %w", err))
		}
	}()
}

func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.state = StateDisconnected
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		_ = conn.CloseNow()
	}

	router.ResetRouter()
	c.batches.Drain()
}

func (c *Client) State() ClientState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

func (c *Client) ServerName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.serverName
}

func (c *Client) TickRate() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tickRate
}

// DrainBatches returns every sync batch received since the last call, in
// arrival order. Non-blocking.
func (c *Client) DrainBatches() []netcomponents.SyncBatch {
	return c.batches.Drain()
}

func (c *Client) SendMessage(msg any) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return ErrNotConnected
	}

	payload, err := router.Serialize(msg)
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}

	return conn.Write(context.Background(), websocket.MessageBinary, payload)
}

func (c *Client) onJoinAccepted(msg messages.JoinAccepted) {
	c.log.WithFields(logrus.Fields{
		"server":   msg.ServerName,
		"room":     msg.Room,
		"tickRate": msg.TickRate,
	}).Info("join accepted")
	c.mu.Lock()
	c.serverName = msg.ServerName
	c.tickRate = msg.TickRate
	c.state = StateJoinedGame
	c.mu.Unlock()
}

func (c *Client) enqueue(batch netcomponents.SyncBatch, err error) {
	if err != nil {
		// the transport drops malformed snapshots; the core only sees valid ones
		c.log.WithError(err).Warn("dropping malformed sync message")
		return
	}
	c.batches.Push(batch)
}

func (c *Client) setError(err error) {
	c.mu.Lock()
	c.state = StateError
	c.lastError = err
	c.mu.Unlock()
}

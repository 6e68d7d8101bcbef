package interp

import (
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
)

// Config tunes the network timing estimate.
type Config struct {
	BufferSize      int     // samples kept for both rolling means
	FrameSeed       float64 // initial frames-between-snapshots sample
	DelaySeedMillis float64 // initial delay sample, in milliseconds
	Enabled         bool    // false snaps entities to their server position

	// Now is the wall clock used for snapshot delays; nil means time.Now.
	Now func() time.Time
}

// Estimate is the current guess at the server's update cadence.
type Estimate struct {
	DelaySeconds float64 // mean wall-clock time between snapshots
	Frames       int     // mean render frames between snapshots, rounded up, >= 1
}

// Coordinator owns every interpolation State of a connection and the timing
// estimate they share. It is driven from two places on the same goroutine:
// Tick once per render frame and OnSnapshotReceived once per snapshot batch.
type Coordinator struct {
	frameBuffer *AverageBuffer
	delayBuffer *AverageBuffer

	estimate            Estimate
	framesSinceSnapshot int
	lastSnapshot        time.Time
	now                 func() time.Time

	states  []*State
	enabled bool

	log *logrus.Entry
}

// NewCoordinator creates a coordinator with empty state and a seeded estimate.
func NewCoordinator(cfg Config) (*Coordinator, error) {
	frames, err := NewAverageBuffer(cfg.BufferSize, cfg.FrameSeed)
	if err != nil {
		return nil, fmt.Errorf("frame buffer: %w", err)
	}
	delays, err := NewAverageBuffer(cfg.BufferSize, cfg.DelaySeedMillis)
	if err != nil {
		return nil, fmt.Errorf("delay buffer: %w", err)
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Coordinator{
		frameBuffer:  frames,
		delayBuffer:  delays,
		estimate:     Estimate{DelaySeconds: 1, Frames: 1},
		lastSnapshot: now(),
		now:          now,
		enabled:      cfg.Enabled,
		log:          logrus.WithField("component", "interp"),
	}, nil
}

// Tick runs one render frame: destroyed renderables are dropped and every
// remaining state advances one frame (or snaps, when interpolation is off).
func (c *Coordinator) Tick() {
	c.framesSinceSnapshot++
	c.prune()

	for _, s := range c.states {
		if c.enabled {
			s.Advance(1)
		} else {
			s.Snap()
		}
	}
}

// OnSnapshotReceived folds the arrival of a snapshot batch into the estimate.
// It must run once per batch, before any State in that batch is recalculated.
func (c *Coordinator) OnSnapshotReceived() {
	c.OnSnapshotReceivedAt(c.now())
}

// OnSnapshotReceivedAt is OnSnapshotReceived for a batch that arrived at at,
// which may be earlier than the frame it is applied in.
func (c *Coordinator) OnSnapshotReceivedAt(at time.Time) {
	c.frameBuffer.Push(float64(c.framesSinceSnapshot))
	c.estimate.Frames = max(1, int(math.Ceil(c.frameBuffer.Mean())))
	c.framesSinceSnapshot = 0

	c.delayBuffer.Push(float64(at.Sub(c.lastSnapshot)) / float64(time.Millisecond))
	c.estimate.DelaySeconds = c.delayBuffer.Mean() / 1000
	c.lastSnapshot = at

	c.log.WithFields(logrus.Fields{
		"frames":  c.estimate.Frames,
		"delayMs": c.estimate.DelaySeconds * 1000,
	}).Trace("snapshot timing")
}

// Estimate returns the timing estimate used for recalculation.
func (c *Coordinator) Estimate() Estimate {
	return c.estimate
}

// Register starts tracking a new State for r, placed at k.
func (c *Coordinator) Register(r Renderable, k Kinematics) *State {
	s := newState(r, k)
	c.track(s)
	return s
}

// Reseed hands s a replacement renderable and restarts it at k. A state that
// was pruned because its old renderable went away is tracked again.
func (c *Coordinator) Reseed(s *State, r Renderable, k Kinematics) {
	s.reseed(r, k)
	if !s.tracked {
		c.track(s)
	}
}

// SetEnabled toggles curve interpolation. Disabled states snap on every tick.
func (c *Coordinator) SetEnabled(enabled bool) {
	if c.enabled != enabled {
		c.log.WithField("enabled", enabled).Info("interpolation toggled")
	}
	c.enabled = enabled
}

// Enabled reports whether curve interpolation is on.
func (c *Coordinator) Enabled() bool {
	return c.enabled
}

// Len returns the number of tracked states.
func (c *Coordinator) Len() int {
	return len(c.states)
}

func (c *Coordinator) track(s *State) {
	s.tracked = true
	c.states = append(c.states, s)
}

// prune drops states whose renderable was destroyed by its owner.
func (c *Coordinator) prune() {
	kept := c.states[:0]
	for _, s := range c.states {
		if s.renderable == nil || s.renderable.Destroyed() {
			s.tracked = false
			continue
		}
		kept = append(kept, s)
	}
	clear(c.states[len(kept):])
	c.states = kept
}

package network

import (
	"fmt"

	"github.com/automoto/splinesync/shared/interp"
)

// Stats describe the current connection for the diagnostics overlay.
type Stats struct {
	Connected     bool
	ServerName    string
	TickRate      int
	Entities      int
	Estimate      interp.Estimate
	Interpolating bool
}

// Header names the server, or reports that no game is joined yet.
func (s Stats) Header() string {
	if !s.Connected {
		return "Connecting..."
	}
	return fmt.Sprintf("%s @ %d Hz", s.ServerName, s.TickRate)
}

// Lines are the diagnostic rows shown under the header.
func (s Stats) Lines() []string {
	mode := "spline"
	if !s.Interpolating {
		mode = "off"
	}
	return []string{
		fmt.Sprintf("Entities: %d", s.Entities),
		fmt.Sprintf("Cadence: %d frames", s.Estimate.Frames),
		fmt.Sprintf("Delay: %.1f ms", s.Estimate.DelaySeconds*1000),
		fmt.Sprintf("Interpolation: %s", mode),
	}
}

// Stats gathers what the overlay shows. Entity and timing figures come from
// the session owning the registry and coordinator.
func (c *Client) Stats(entities int, est interp.Estimate, interpolating bool) Stats {
	if c.State() != StateJoinedGame {
		return Stats{}
	}
	return Stats{
		Connected:     true,
		ServerName:    c.ServerName(),
		TickRate:      c.TickRate(),
		Entities:      entities,
		Estimate:      est,
		Interpolating: interpolating,
	}
}

package interp

import "github.com/automoto/splinesync/shared/gamemath"

// VelocityCorrection scales the observed snapshot delay into the velocity
// multiplier used for curve control points (vc = dt * VelocityCorrection).
// Tuned by eye; treat it as a knob rather than a derived constant.
const VelocityCorrection = 0.5

// Renderable is the handle the presentation layer gives us for one drawn entity.
// States only hold it; the entity registry creates and destroys it.
type Renderable interface {
	SetPosition(x, y float64)
	SetRotation(theta float64)
	Destroy()
	Destroyed() bool
}

// Kinematics is a position/velocity pair reported by the server.
type Kinematics struct {
	Position gamemath.Vec2
	Velocity gamemath.Vec2
}

// State animates one renderable between server snapshots.
// While elapsed/expected <= 1 the position follows the fitted curve; past that
// it continues along a straight ray from the curve's end state.
type State struct {
	renderable Renderable

	curve         gamemath.Curve
	extrapolation gamemath.Curve

	elapsedFrames  float64
	expectedFrames float64

	target   Kinematics
	position gamemath.Vec2

	tracked bool
}

func newState(r Renderable, k Kinematics) *State {
	s := &State{}
	s.reseed(r, k)
	return s
}

// reseed swaps in a new renderable and restarts motion at k with no visible jump.
func (s *State) reseed(r Renderable, k Kinematics) {
	s.renderable = r
	s.curve = gamemath.IdentityCurve(k.Position)
	s.extrapolation = gamemath.LinearCurve(k.Position, gamemath.Vec2{}, 0, 1)
	s.elapsedFrames = 0
	s.expectedFrames = 1
	s.target = k
	s.moveTo(k.Position)
}

// Advance moves the state forward by frames (fractions allowed) and writes the
// resulting position to the renderable.
func (s *State) Advance(frames float64) {
	s.elapsedFrames += frames
	t := s.elapsedFrames / s.expectedFrames

	if t <= 1 {
		s.moveTo(s.curve.Eval(t))
		return
	}
	s.moveTo(s.extrapolation.Eval(t - 1))
}

// Recalculate fits a new curve from where the entity is drawn right now to the
// new server state. dt is the observed delay between snapshots in seconds and
// expectedFrames the number of render frames the curve should take.
func (s *State) Recalculate(next Kinematics, dt float64, expectedFrames int) {
	vc := dt * VelocityCorrection

	s.curve = gamemath.FitCurve(s.position, s.target.Velocity, next.Position, next.Velocity, dt, vc)
	s.extrapolation = gamemath.LinearCurve(next.Position, next.Velocity, dt, vc)

	s.target = next
	s.elapsedFrames = 0
	s.expectedFrames = float64(max(1, expectedFrames))
}

// Snap places the renderable on the latest server position, skipping the curve.
func (s *State) Snap() {
	s.moveTo(s.target.Position)
}

// Position is the last position written to the renderable.
func (s *State) Position() gamemath.Vec2 {
	return s.position
}

// Target is the latest server state this state is moving towards.
func (s *State) Target() Kinematics {
	return s.target
}

// Renderable returns the handle currently animated by this state.
func (s *State) Renderable() Renderable {
	return s.renderable
}

func (s *State) moveTo(p gamemath.Vec2) {
	s.position = p
	if s.renderable != nil && !s.renderable.Destroyed() {
		s.renderable.SetPosition(p.X, p.Y)
	}
}

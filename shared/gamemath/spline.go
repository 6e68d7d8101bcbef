package gamemath

// Curve is a cubic polynomial per axis: A*t^3 + B*t^2 + C*t + D.
// t=0 is the start of the curve and t=1 its end; Eval is not clamped.
type Curve struct {
	A, B, C, D Vec2
}

// IdentityCurve returns a curve that stays at pos for every t.
func IdentityCurve(pos Vec2) Curve {
	return Curve{D: pos}
}

// FitCurve builds a cubic from the Bezier control points
//
//	C1 = startPos
//	C2 = startPos + startVel*dt*vc
//	C3 = endPos
//	C4 = endPos + endVel*dt*vc
//
// so that Eval(0) == startPos and Eval(1) == C4.
func FitCurve(startPos, startVel, endPos, endVel Vec2, dt, vc float64) Curve {
	c1 := startPos
	c2 := startPos.Add(startVel.Scale(dt * vc))
	c3 := endPos
	c4 := endPos.Add(endVel.Scale(dt * vc))

	return Curve{
		A: Vec2{
			X: c4.X - 3*c3.X + 3*c2.X - c1.X,
			Y: c4.Y - 3*c3.Y + 3*c2.Y - c1.Y,
		},
		B: Vec2{
			X: 3*c3.X - 6*c2.X + 3*c1.X,
			Y: 3*c3.Y - 6*c2.Y + 3*c1.Y,
		},
		C: Vec2{
			X: 3*c2.X - 3*c1.X,
			Y: 3*c2.Y - 3*c1.Y,
		},
		D: c1,
	}
}

// LinearCurve is the degenerate curve used to extrapolate past the end of a
// fitted curve. Eval(0) is pos advanced by vel*dt*vc; each unit of t adds vel*vc.
func LinearCurve(pos, vel Vec2, dt, vc float64) Curve {
	return Curve{
		C: vel.Scale(vc),
		D: pos.Add(vel.Scale(dt * vc)),
	}
}

// Eval returns the position on the curve at t.
func (c Curve) Eval(t float64) Vec2 {
	t2 := t * t
	t3 := t2 * t
	return Vec2{
		X: c.A.X*t3 + c.B.X*t2 + c.C.X*t + c.D.X,
		Y: c.A.Y*t3 + c.B.Y*t2 + c.C.Y*t + c.D.Y,
	}
}

package gamemath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFitCurve_Coefficients(t *testing.T) {
	c := FitCurve(Vec2{1, 1}, Vec2{}, Vec2{3, 3}, Vec2{}, 1, 1)

	assert.Equal(t, Vec2{1, 1}, c.D)
	assert.Equal(t, Vec2{2 * (1 - 3), 2 * (1 - 3)}, c.A)
}

func TestFitCurve_Endpoints(t *testing.T) {
	tests := []struct {
		name           string
		p0, v0, p1, v1 Vec2
		dt, vc         float64
	}{
		{"at rest", Vec2{1, 2}, Vec2{}, Vec2{5, 5}, Vec2{}, 1, 1},
		{"moving", Vec2{1, 2}, Vec2{-3, 4}, Vec2{5, 5}, Vec2{2, 3}, 2, 1},
		{"half correction", Vec2{-10, 0.5}, Vec2{1, 1}, Vec2{7, -2}, Vec2{0.25, 8}, 0.05, 0.025},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := FitCurve(tt.p0, tt.v0, tt.p1, tt.v1, tt.dt, tt.vc)

			assert.Equal(t, tt.p0, c.Eval(0))

			end := c.Eval(1)
			want := tt.p1.Add(tt.v1.Scale(tt.dt * tt.vc))
			assert.InDelta(t, want.X, end.X, 1e-9)
			assert.InDelta(t, want.Y, end.Y, 1e-9)
		})
	}
}

func TestFitCurve_EndIncludesScaledVelocity(t *testing.T) {
	c := FitCurve(Vec2{1, 2}, Vec2{}, Vec2{5, 5}, Vec2{2, 3}, 2, 1)
	end := c.Eval(1)
	assert.InDelta(t, 5+2*2, end.X, 1e-9)
	assert.InDelta(t, 5+3*2, end.Y, 1e-9)
}

func TestIdentityCurve_ConstantEverywhere(t *testing.T) {
	c := Curve{D: Vec2{1, 1}}
	assert.Equal(t, c, IdentityCurve(Vec2{1, 1}))

	for _, tt := range []float64{-3, 0, 0.25, 1, 7.5} {
		assert.Equal(t, Vec2{1, 1}, c.Eval(tt))
	}
}

func TestLinearCurve(t *testing.T) {
	c := LinearCurve(Vec2{5, 5}, Vec2{1, -2}, 1, 0.5)

	assert.Equal(t, Vec2{}, c.A)
	assert.Equal(t, Vec2{}, c.B)
	assert.Equal(t, Vec2{0.5, -1}, c.C)
	assert.Equal(t, Vec2{5.5, 4}, c.D)

	assert.Equal(t, Vec2{6, 3}, c.Eval(1))
	assert.Equal(t, Vec2{6.5, 2}, c.Eval(2))
}

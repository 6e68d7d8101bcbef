package interp

import (
	"errors"
	"fmt"
)

// ErrInvalidCapacity is returned when a buffer is created with fewer than one slot.
var ErrInvalidCapacity = errors.New("buffer capacity must be at least 1")

// AverageBuffer is a fixed-size ring of samples used for rolling means.
// Every slot starts at the seed value and keeps counting towards the mean until
// it is overwritten, so early estimates ramp from the seed instead of jumping.
type AverageBuffer struct {
	samples []float64
	next    int
}

// NewAverageBuffer creates a buffer with capacity slots, each set to seed.
func NewAverageBuffer(capacity int, seed float64) (*AverageBuffer, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	samples := make([]float64, capacity)
	for i := range samples {
		samples[i] = seed
	}
	return &AverageBuffer{samples: samples}, nil
}

// Push overwrites the oldest sample.
func (b *AverageBuffer) Push(v float64) {
	b.samples[b.next] = v
	b.next = (b.next + 1) % len(b.samples)
}

// Mean returns the arithmetic mean over all slots.
func (b *AverageBuffer) Mean() float64 {
	var sum float64
	for _, v := range b.samples {
		sum += v
	}
	return sum / float64(len(b.samples))
}

// Cap returns the number of slots.
func (b *AverageBuffer) Cap() int {
	return len(b.samples)
}

package swarm

import "github.com/lao-tseu-is-alive/go-swarm-shape/pkg/geometry"

// PositionHistory is a fixed-capacity FIFO of recent positions backed by a
// ring buffer. Pushing onto a full history evicts the oldest entry.
type PositionHistory struct {
	buf   []geometry.Vector2D
	start int
	count int
}

// NewPositionHistory creates an empty history. Capacities below one are
// raised to one.
func NewPositionHistory(capacity int) *PositionHistory {
	if capacity < 1 {
		capacity = 1
	}
	return &PositionHistory{buf: make([]geometry.Vector2D, capacity)}
}

func (h *PositionHistory) Push(p geometry.Vector2D) {
	if h.count < len(h.buf) {
		h.buf[(h.start+h.count)%len(h.buf)] = p
		h.count++
		return
	}
	h.buf[h.start] = p
	h.start = (h.start + 1) % len(h.buf)
}

func (h *PositionHistory) Len() int { return h.count }

func (h *PositionHistory) Cap() int { return len(h.buf) }

func (h *PositionHistory) Full() bool { return h.count == len(h.buf) }

// At returns the i-th stored position, oldest first.
func (h *PositionHistory) At(i int) geometry.Vector2D {
	return h.buf[(h.start+i)%len(h.buf)]
}

// Reset empties the history without releasing its storage.
func (h *PositionHistory) Reset() {
	h.start, h.count = 0, 0
}

// WithinRadius reports whether every pair of stored positions is at most
// radius apart.
func (h *PositionHistory) WithinRadius(radius float64) bool {
	limit := radius * radius
	for i := 0; i < h.count; i++ {
		pi := h.At(i)
		for j := i + 1; j < h.count; j++ {
			if pi.DistanceSquaredTo(h.At(j)) > limit {
				return false
			}
		}
	}
	return true
}

// Converged implements the stop criterion: the window is full and all of it
// fits within radius.
func (h *PositionHistory) Converged(radius float64) bool {
	return h.Full() && h.WithinRadius(radius)
}

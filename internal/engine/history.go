package engine

import "github.com/hypdisk/hypdisk/internal/hyper"

// snapshot is one undo step.
type snapshot struct {
	scene   *Scene
	clicked []hyper.Point
	pivot   hyper.Shape
}

// History is a bounded stack of scene snapshots. A zero limit keeps every
// snapshot.
type History struct {
	stack []snapshot
	limit int
}

// NewHistory creates a history that keeps at most limit snapshots.
func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// Push stores s, dropping the oldest snapshot when the stack is full.
func (h *History) Push(s snapshot) {
	h.stack = append(h.stack, s)
	if h.limit > 0 && len(h.stack) > h.limit {
		h.stack = h.stack[len(h.stack)-h.limit:]
	}
}

// Pop removes and returns the newest snapshot.
func (h *History) Pop() (snapshot, bool) {
	if len(h.stack) == 0 {
		return snapshot{}, false
	}
	s := h.stack[len(h.stack)-1]
	h.stack[len(h.stack)-1] = snapshot{}
	h.stack = h.stack[:len(h.stack)-1]
	return s, true
}

// Len returns the number of stored snapshots.
func (h *History) Len() int {
	return len(h.stack)
}

// Reset drops every snapshot.
func (h *History) Reset() {
	h.stack = nil
}

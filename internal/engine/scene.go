package engine

import (
	"github.com/hypdisk/hypdisk/internal/hyper"
	"github.com/hypdisk/hypdisk/internal/typeid"
)

// Scene is the session's shape arena: shapes are stored by id in insertion
// order and replaced whole, never mutated in place.
type Scene struct {
	order []string
	byID  map[string]hyper.Shape
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{byID: make(map[string]hyper.Shape)}
}

func newShapeID(k hyper.Kind) string {
	switch k {
	case hyper.KindPoint:
		return typeid.NewPointID()
	case hyper.KindLine:
		return typeid.NewLineID()
	case hyper.KindPolygon:
		return typeid.NewPolygonID()
	default:
		return typeid.NewFreeDrawingID()
	}
}

// Add appends s and returns its new id.
func (sc *Scene) Add(s hyper.Shape) string {
	id := newShapeID(s.Kind())
	sc.order = append(sc.order, id)
	sc.byID[id] = s
	return id
}

// Get returns the shape stored under id.
func (sc *Scene) Get(id string) (hyper.Shape, bool) {
	s, ok := sc.byID[id]
	return s, ok
}

// Replace swaps in a new value for an existing id. Unknown ids are ignored.
func (sc *Scene) Replace(id string, s hyper.Shape) {
	if _, ok := sc.byID[id]; ok {
		sc.byID[id] = s
	}
}

// Remove drops the shape stored under id.
func (sc *Scene) Remove(id string) {
	if _, ok := sc.byID[id]; !ok {
		return
	}
	delete(sc.byID, id)
	for i, o := range sc.order {
		if o == id {
			sc.order = append(sc.order[:i:i], sc.order[i+1:]...)
			break
		}
	}
}

// IDs returns the ids in insertion order.
func (sc *Scene) IDs() []string {
	out := make([]string, len(sc.order))
	copy(out, sc.order)
	return out
}

// Len returns the number of shapes.
func (sc *Scene) Len() int {
	return len(sc.order)
}

// Each calls fn for every shape in insertion order.
func (sc *Scene) Each(fn func(id string, s hyper.Shape)) {
	for _, id := range sc.order {
		fn(id, sc.byID[id])
	}
}

// OfKind returns the ids of all shapes of kind k in insertion order.
func (sc *Scene) OfKind(k hyper.Kind) []string {
	var out []string
	for _, id := range sc.order {
		if sc.byID[id].Kind() == k {
			out = append(out, id)
		}
	}
	return out
}

// Clone copies the scene by rebuilding every shape with a zero move, the
// same path a real drag takes. Shapes that fail to rebuild are kept as they
// are.
func (sc *Scene) Clone() *Scene {
	out := &Scene{
		order: make([]string, len(sc.order)),
		byID:  make(map[string]hyper.Shape, len(sc.byID)),
	}
	copy(out.order, sc.order)
	for id, s := range sc.byID {
		cp, err := hyper.Move(s, 0, 0)
		if err != nil {
			Logger().Warn("snapshot kept shape as is", "id", id, "err", err)
			cp = s
		}
		out.byID[id] = cp
	}
	return out
}

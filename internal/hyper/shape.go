package hyper

import "fmt"

// Kind names a shape variant.
type Kind string

const (
	KindPoint       Kind = "point"
	KindLine        Kind = "line"
	KindPolygon     Kind = "polygon"
	KindFreeDrawing Kind = "freeDrawing"
)

// Shape is one of Point, Line, Polygon or FreeDrawing.
type Shape interface {
	Kind() Kind
	sealed()
}

func (Point) Kind() Kind       { return KindPoint }
func (Line) Kind() Kind        { return KindLine }
func (Polygon) Kind() Kind     { return KindPolygon }
func (FreeDrawing) Kind() Kind { return KindFreeDrawing }

func (Point) sealed()       {}
func (Line) sealed()        {}
func (Polygon) sealed()     {}
func (FreeDrawing) sealed() {}

// Move shifts the selected parts of s by (dx, dy). A zero shift yields an
// independent copy, which is how history snapshots are taken.
func Move(s Shape, dx, dy float64) (Shape, error) {
	switch v := s.(type) {
	case Point:
		if !v.Selected {
			return v, nil
		}
		return v.Moved(dx, dy), nil
	case Line:
		return v.Moved(dx, dy)
	case Polygon:
		return v.Moved(dx, dy)
	case FreeDrawing:
		return v.Moved(dx, dy)
	}
	return s, nil
}

// Deselect clears the selection flags of s.
func Deselect(s Shape) Shape {
	switch v := s.(type) {
	case Point:
		v.Selected = false
		return v
	case Line:
		return v.Deselected()
	case Polygon:
		return v.Deselected()
	case FreeDrawing:
		return v.Deselected()
	}
	return s
}

// IsSelected reports whether any part of s is selected.
func IsSelected(s Shape) bool {
	switch v := s.(type) {
	case Point:
		return v.Selected
	case Line:
		return v.Selected
	case Polygon:
		return v.Selected
	case FreeDrawing:
		return v.Selected
	}
	return false
}

// Rescale maps s from a disk of radius from onto a disk of radius to,
// scaling every coordinate by to/from. Drawing attributes are kept.
func Rescale(s Shape, from, to float64) (Shape, error) {
	if from <= 0 || to <= 0 {
		return nil, fmt.Errorf("%w: rescale from radius %v to %v", ErrDegenerate, from, to)
	}
	k := to / from
	switch v := s.(type) {
	case Point:
		return v.Scale(k).withStyleOf(v), nil
	case Line:
		return rescaleLine(v, k, to)
	case Polygon:
		edges := make([]Line, len(v.Edges))
		for i, e := range v.Edges {
			ne, err := rescaleLine(e, k, to)
			if err != nil {
				return nil, fmt.Errorf("edge %d: %w", i, err)
			}
			edges[i] = ne
		}
		cfg := v.config()
		cfg.Radius = to
		np, err := NewPolygon(edges, cfg)
		if err != nil {
			return nil, err
		}
		np.Selected = v.Selected
		return np, nil
	case FreeDrawing:
		fd := v.clone()
		for i, p := range fd.Points {
			fd.Points[i] = p.Scale(k).withStyleOf(p)
		}
		fd.DiskRadius = to
		return fd, nil
	}
	return nil, fmt.Errorf("hyper: cannot rescale %T", s)
}

func rescaleLine(l Line, k, radius float64) (Line, error) {
	cfg := l.config()
	cfg.Radius = radius
	nl, err := NewLine(l.Point1.Scale(k).withStyleOf(l.Point1), l.Point2.Scale(k).withStyleOf(l.Point2), cfg)
	if err != nil {
		return Line{}, err
	}
	return nl.withStyleOf(l), nil
}

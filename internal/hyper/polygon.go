package hyper

import "fmt"

// OrientedEdge is a polygon edge tagged with its traversal direction.
// Forward edges run from Anchor1 to Anchor2.
type OrientedEdge struct {
	Line    Line `json:"line"`
	Forward bool `json:"forward"`
}

// From returns the vertex the edge starts at in traversal order.
func (e OrientedEdge) From() Point {
	if e.Forward {
		return e.Line.Anchor1
	}
	return e.Line.Anchor2
}

// To returns the vertex the edge ends at in traversal order.
func (e OrientedEdge) To() Point {
	if e.Forward {
		return e.Line.Anchor2
	}
	return e.Line.Anchor1
}

// Polygon is a closed cycle of geodesic edges.
type Polygon struct {
	Edges       []Line         `json:"edges"`
	OEdges      []OrientedEdge `json:"oEdges"`
	FillStyle   string         `json:"fillStyle"`
	FillOpacity float64        `json:"fillOpacity"`
	Selected    bool           `json:"selected,omitempty"`
}

// NewPolygon builds a polygon from at least three edges given in any order.
// The edges must chain into a single closed cycle.
func NewPolygon(edges []Line, cfg Config) (Polygon, error) {
	if len(edges) < 3 {
		return Polygon{}, fmt.Errorf("%w: a polygon needs at least 3 edges, got %d", ErrDegenerate, len(edges))
	}
	own := make([]Line, len(edges))
	copy(own, edges)

	oedges, err := orient(own)
	if err != nil {
		return Polygon{}, err
	}
	return Polygon{
		Edges:       own,
		OEdges:      oedges,
		FillStyle:   cfg.FillStyle,
		FillOpacity: cfg.FillOpacity,
	}, nil
}

// orient walks the edges from the first edge's Anchor1, taking whichever
// queued edge touches the current vertex and requeueing the rest.
func orient(edges []Line) ([]OrientedEdge, error) {
	queue := make([]Line, len(edges))
	copy(queue, edges)

	start := queue[0].Anchor1
	vertex := start
	out := make([]OrientedEdge, 0, len(edges))
	misses := 0
	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]
		switch {
		case e.Anchor1.Coincides(vertex):
			out = append(out, OrientedEdge{Line: e, Forward: true})
			vertex = e.Anchor2
			misses = 0
		case e.Anchor2.Coincides(vertex):
			out = append(out, OrientedEdge{Line: e, Forward: false})
			vertex = e.Anchor1
			misses = 0
		default:
			queue = append(queue, e)
			misses++
			if misses >= len(queue) {
				return nil, fmt.Errorf("%w: no edge continues the boundary at %v", ErrDegenerate, vertex)
			}
		}
	}
	if !vertex.Coincides(start) {
		return nil, fmt.Errorf("%w: boundary ends at %v instead of %v", ErrDegenerate, vertex, start)
	}
	return out, nil
}

// Vertices returns the polygon's corners in traversal order.
func (pg Polygon) Vertices() []Point {
	vs := make([]Point, len(pg.OEdges))
	for i, e := range pg.OEdges {
		vs[i] = e.From()
	}
	return vs
}

func (pg Polygon) config() Config {
	cfg := Config{FillStyle: pg.FillStyle, FillOpacity: pg.FillOpacity}
	if len(pg.Edges) > 0 {
		cfg.Radius = pg.Edges[0].DiskRadius
	}
	return cfg
}

// Moved rebuilds the edges that carry a selected anchor and then the whole
// polygon.
func (pg Polygon) Moved(dx, dy float64) (Polygon, error) {
	edges := make([]Line, len(pg.Edges))
	for i, e := range pg.Edges {
		if !e.Selected {
			edges[i] = e
			continue
		}
		moved, err := e.Moved(dx, dy)
		if err != nil {
			return Polygon{}, fmt.Errorf("edge %d: %w", i, err)
		}
		edges[i] = moved
	}
	np, err := NewPolygon(edges, pg.config())
	if err != nil {
		return Polygon{}, err
	}
	np.Selected = pg.Selected
	return np, nil
}

// SelectAt selects the vertex under (mx, my). The polygon counts as hit once
// two of its edges have an anchor there.
func (pg Polygon) SelectAt(mx, my float64) (Polygon, bool) {
	edges := make([]Line, len(pg.Edges))
	copy(edges, pg.Edges)
	hits := 0
	for i, e := range edges {
		if sel, ok := e.SelectAt(mx, my, true); ok {
			edges[i] = sel
			hits++
		}
		if hits == 2 {
			break
		}
	}
	if hits < 2 {
		return pg, false
	}
	oedges, err := orient(edges)
	if err != nil {
		return pg, false
	}
	pg.Edges = edges
	pg.OEdges = oedges
	pg.Selected = true
	return pg, true
}

// Deselected clears the selection of the polygon and its edges.
func (pg Polygon) Deselected() Polygon {
	edges := make([]Line, len(pg.Edges))
	for i, e := range pg.Edges {
		edges[i] = e.Deselected()
	}
	oedges, err := orient(edges)
	if err == nil {
		pg.OEdges = oedges
	}
	pg.Edges = edges
	pg.Selected = false
	return pg
}

// Restyled applies fn to a copy of every edge.
func (pg Polygon) Restyled(fn func(Line) Line) Polygon {
	edges := make([]Line, len(pg.Edges))
	for i, e := range pg.Edges {
		edges[i] = fn(e)
	}
	oedges, err := orient(edges)
	if err == nil {
		pg.OEdges = oedges
	}
	pg.Edges = edges
	return pg
}

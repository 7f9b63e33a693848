package hyper

import "fmt"

// FreeDrawing is a polyline sketched inside the disk. Its first and last
// samples act as drag handles.
type FreeDrawing struct {
	Points      []Point `json:"points"`
	Closed      bool    `json:"closed"`
	StrokeStyle string  `json:"strokeStyle"`
	LineWidth   float64 `json:"lineWidth"`
	Selected    bool    `json:"selected,omitempty"`
	DiskRadius  float64 `json:"diskRadius"`
}

// NewFreeDrawing starts a drawing at start.
func NewFreeDrawing(start Point, closed bool, cfg Config) FreeDrawing {
	if cfg.AnchorRadius > 0 {
		start.AnchorRadius = cfg.AnchorRadius
	}
	return FreeDrawing{
		Points:      []Point{start},
		Closed:      closed,
		StrokeStyle: cfg.StrokeStyle,
		LineWidth:   cfg.LineWidth,
		DiskRadius:  cfg.Radius,
	}
}

// Start returns the first sample.
func (fd FreeDrawing) Start() Point { return fd.Points[0] }

// End returns the last sample.
func (fd FreeDrawing) End() Point { return fd.Points[len(fd.Points)-1] }

func (fd FreeDrawing) clone() FreeDrawing {
	pts := make([]Point, len(fd.Points))
	copy(pts, fd.Points)
	fd.Points = pts
	return fd
}

// Extend appends a sample.
func (fd FreeDrawing) Extend(p Point) FreeDrawing {
	if p.AnchorRadius == 0 {
		p.AnchorRadius = fd.Start().AnchorRadius
	}
	pts := make([]Point, len(fd.Points), len(fd.Points)+1)
	copy(pts, fd.Points)
	fd.Points = append(pts, p)
	return fd
}

// Moved drags the selected handle by (dx, dy) and carries the rest of the
// drawing along by the hyperbolic translation that takes the handle to its
// new position, so the sketch keeps its hyperbolic shape.
func (fd FreeDrawing) Moved(dx, dy float64) (FreeDrawing, error) {
	if dx == 0 && dy == 0 {
		return fd.clone(), nil
	}
	handle := fd.Start()
	if !handle.Selected {
		handle = fd.End()
	}
	axis, err := NewLine(handle, handle.Moved(dx, dy), Config{Radius: fd.DiskRadius})
	if err != nil {
		return FreeDrawing{}, fmt.Errorf("drag axis: %w", err)
	}
	dist, err := axis.HypDist()
	if err != nil {
		return FreeDrawing{}, err
	}
	m, err := Translate(axis, dist)
	if err != nil {
		return FreeDrawing{}, err
	}
	return m.ApplyFreeDrawing(fd)
}

// SelectAt selects the handle under (mx, my), preferring the start.
func (fd FreeDrawing) SelectAt(mx, my float64) (FreeDrawing, bool) {
	idx := -1
	switch {
	case fd.Start().PointClicked(mx, my):
		idx = 0
	case fd.End().PointClicked(mx, my):
		idx = len(fd.Points) - 1
	default:
		return fd, false
	}
	fd = fd.clone()
	fd.Points[idx].Selected = true
	fd.Selected = true
	return fd, true
}

// Deselected clears the handle and drawing selection.
func (fd FreeDrawing) Deselected() FreeDrawing {
	fd = fd.clone()
	fd.Points[0].Selected = false
	fd.Points[len(fd.Points)-1].Selected = false
	fd.Selected = false
	return fd
}

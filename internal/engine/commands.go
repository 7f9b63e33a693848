package engine

import (
	"encoding/json"
	"math"

	"github.com/hypdisk/hypdisk/internal/hyper"
)

// DrawCommand represents a single drawing operation for the frontend to execute.
// The frontend receives a list of these and executes them on a Canvas2D context.
//
// Geometry is in disk coordinates; Transform maps it to canvas pixels. Label
// positions are transformed as points but text is drawn upright.
type DrawCommand struct {
	Op          string        `json:"op"`                    // Operation: "clear", "path", "anchor", "label", "boundary", "mask"
	ObjectID    string        `json:"objectId,omitempty"`    // For hit correlation
	Transform   []float64     `json:"transform,omitempty"`   // [a, b, c, d, e, f] affine matrix
	Path        []PathCommand `json:"path,omitempty"`        // Path data for "path" ops
	Fill        string        `json:"fill,omitempty"`        // Fill color
	FillRule    string        `json:"fillRule,omitempty"`    // "nonzero" (default) or "evenodd"
	Stroke      string        `json:"stroke,omitempty"`      // Stroke color
	StrokeWidth float64       `json:"strokeWidth,omitempty"` // Stroke width
	Opacity     float64       `json:"opacity,omitempty"`     // Global alpha, 1 when omitted
	Text        string        `json:"text,omitempty"`        // Label text
	X           float64       `json:"x,omitempty"`           // Label position
	Y           float64       `json:"y,omitempty"`
	FontSize    float64       `json:"fontSize,omitempty"` // Label size in pixels
}

// PathCommand represents a single path segment for rendering.
// Format matches Canvas2D: ["M", x, y], ["L", x, y], ["Z"], and
// ["A", cx, cy, r, startAngle, endAngle, counterclockwise] with the angles
// and sweep direction of Canvas2D's arc().
type PathCommand []interface{}

const labelSize = 14

// Render compiles the session into draw commands in painter's order: the
// background, polygon fills, strokes and anchors of every shape, the pivot,
// the boundary circle, a white mask outside the disk and last the cursor
// label.
func (e *Engine) Render() []DrawCommand {
	r := renderer{
		transform: e.view.Matrix().ToSlice(),
		radius:    e.view.Radius(),
	}
	r.cmds = append(r.cmds, DrawCommand{
		Op:   "clear",
		Fill: "white",
		Path: []PathCommand{
			{"M", 0.0, 0.0},
			{"L", e.view.Size, 0.0},
			{"L", e.view.Size, e.view.Size},
			{"L", 0.0, e.view.Size},
			{"Z"},
		},
	})

	for _, p := range e.clicked {
		r.anchor("", p, "")
	}
	e.scene.Each(func(id string, s hyper.Shape) {
		switch v := s.(type) {
		case hyper.Line:
			r.line(id, v, "")
		case hyper.Polygon:
			r.polygon(id, v)
		case hyper.FreeDrawing:
			r.freeDrawing(id, v)
		}
	})

	override := ""
	if e.anim.Running() {
		override = playingColor
	}
	switch v := e.pivot.(type) {
	case hyper.Point:
		if v.Selected {
			override = playingColor
		}
		r.anchor("pivot", v, override)
	case hyper.Line:
		r.line("pivot", v, override)
	}

	r.boundary()
	if e.showCursor {
		r.label(e.cursor)
	}
	return r.cmds
}

// RenderJSON returns Render as JSON.
func (e *Engine) RenderJSON() string {
	result, _ := DrawCommandsToJSON(e.Render())
	return result
}

// DrawCommandsToJSON serializes draw commands to JSON.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}

type renderer struct {
	cmds      []DrawCommand
	transform []float64
	radius    float64
}

func (r *renderer) path(cmd DrawCommand) {
	cmd.Transform = r.transform
	r.cmds = append(r.cmds, cmd)
}

// anchor draws p as a filled dot with its coordinate label. A non-empty
// color overrides the point's own fill.
func (r *renderer) anchor(id string, p hyper.Point, color string) {
	fill := p.FillStyle
	switch {
	case color != "":
		fill = color
	case p.Selected:
		fill = selectColor
	}
	r.path(DrawCommand{
		Op:       "anchor",
		ObjectID: id,
		Fill:     fill,
		Path:     circlePath(p.X, p.Y, p.AnchorRadius),
	})
	r.label(p)
}

// label writes the unit-disk coordinates of p up and to the right of its
// anchor.
func (r *renderer) label(p hyper.Point) {
	r.path(DrawCommand{
		Op:       "label",
		Fill:     "black",
		Text:     p.Label(r.radius),
		X:        p.X + p.AnchorRadius,
		Y:        p.Y + p.AnchorRadius,
		FontSize: labelSize,
	})
}

func (r *renderer) line(id string, l hyper.Line, color string) {
	for _, a := range l.Anchors() {
		r.anchor(id, a, color)
	}
	stroke := l.StrokeStyle
	if color != "" {
		stroke = color
	}
	r.path(DrawCommand{
		Op:          "path",
		ObjectID:    id,
		Path:        linePath(l),
		Stroke:      stroke,
		StrokeWidth: l.LineWidth,
	})
}

func (r *renderer) polygon(id string, pg hyper.Polygon) {
	if pg.FillOpacity > 0 && len(pg.OEdges) > 0 {
		r.path(DrawCommand{
			Op:       "path",
			ObjectID: id,
			Path:     fillPath(pg),
			Fill:     pg.FillStyle,
			Opacity:  pg.FillOpacity,
		})
	}
	for _, e := range pg.Edges {
		r.line(id, e, "")
	}
}

func (r *renderer) freeDrawing(id string, fd hyper.FreeDrawing) {
	r.anchor(id, fd.Start(), "")
	if len(fd.Points) > 1 {
		r.anchor(id, fd.End(), "")
	}
	path := make([]PathCommand, 0, len(fd.Points)+1)
	for i, p := range fd.Points {
		op := "L"
		if i == 0 {
			op = "M"
		}
		path = append(path, PathCommand{op, p.X, p.Y})
	}
	if fd.Closed {
		path = append(path, PathCommand{"Z"})
	}
	r.path(DrawCommand{
		Op:          "path",
		ObjectID:    id,
		Path:        path,
		Stroke:      fd.StrokeStyle,
		StrokeWidth: fd.LineWidth,
	})
}

// boundary strokes the disk edge and masks everything outside it.
func (r *renderer) boundary() {
	r.path(DrawCommand{
		Op:          "boundary",
		Path:        circlePath(0, 0, r.radius),
		Stroke:      "black",
		StrokeWidth: 1,
	})
	far := 4 * r.radius
	mask := []PathCommand{
		{"M", -far, -far},
		{"L", far, -far},
		{"L", far, far},
		{"L", -far, far},
		{"Z"},
	}
	r.path(DrawCommand{
		Op:       "mask",
		Path:     append(mask, circlePath(0, 0, r.radius)...),
		Fill:     "white",
		FillRule: "evenodd",
	})
}

func circlePath(cx, cy, radius float64) []PathCommand {
	return []PathCommand{
		{"M", cx + radius, cy},
		{"A", cx, cy, radius, 0.0, 2 * math.Pi, false},
		{"Z"},
	}
}

// linePath traces a geodesic. Segments run between the anchors; full lines
// are drawn as the whole chord or circle and left to the boundary mask.
func linePath(l hyper.Line) []PathCommand {
	a1, a2 := l.Anchor1, l.Anchor2
	switch {
	case l.Segment && l.Diameter:
		return []PathCommand{{"M", a1.X, a1.Y}, {"L", a2.X, a2.Y}}
	case l.Segment:
		return []PathCommand{
			{"M", a1.X, a1.Y},
			{"A", l.Center.X, l.Center.Y, l.Radius, l.Anchor1Arg, l.Anchor2Arg, l.Counterclockwise},
		}
	case l.Diameter:
		return []PathCommand{{"M", l.Endpoint1.X, l.Endpoint1.Y}, {"L", l.Endpoint2.X, l.Endpoint2.Y}}
	}
	return circlePath(l.Center.X, l.Center.Y, l.Radius)[:2]
}

// fillPath traces the polygon boundary along its oriented edges.
func fillPath(pg hyper.Polygon) []PathCommand {
	start := pg.OEdges[0].From()
	path := []PathCommand{{"M", start.X, start.Y}}
	for _, oe := range pg.OEdges {
		e := oe.Line
		to := oe.To()
		switch {
		case e.Diameter:
			path = append(path, PathCommand{"L", to.X, to.Y})
		case oe.Forward:
			path = append(path, PathCommand{"A", e.Center.X, e.Center.Y, e.Radius, e.Anchor1Arg, e.Anchor2Arg, e.Counterclockwise})
		default:
			path = append(path, PathCommand{"A", e.Center.X, e.Center.Y, e.Radius, e.Anchor2Arg, e.Anchor1Arg, !e.Counterclockwise})
		}
	}
	return append(path, PathCommand{"Z"})
}

// HitTest returns the id of the topmost shape with an anchor under (x, y),
// "pivot" for the pivot, or "" when nothing is hit.
func (e *Engine) HitTest(x, y float64) string {
	if e.pivot != nil {
		for _, p := range anchorsOf(e.pivot) {
			if p.PointClicked(x, y) {
				return "pivot"
			}
		}
	}
	ids := e.scene.IDs()
	for i := len(ids) - 1; i >= 0; i-- {
		s, _ := e.scene.Get(ids[i])
		for _, p := range anchorsOf(s) {
			if p.PointClicked(x, y) {
				return ids[i]
			}
		}
	}
	return ""
}

func anchorsOf(s hyper.Shape) []hyper.Point {
	switch v := s.(type) {
	case hyper.Point:
		return []hyper.Point{v}
	case hyper.Line:
		return []hyper.Point{v.Anchor1, v.Anchor2}
	case hyper.Polygon:
		return v.Vertices()
	case hyper.FreeDrawing:
		return []hyper.Point{v.Start(), v.End()}
	}
	return nil
}

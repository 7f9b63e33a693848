package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/hypdisk/hypdisk/internal/hyper"
)

const (
	pivotColor   = "fuchsia"
	playingColor = "purple"
	selectColor  = "black"
)

// Settings configures a new session.
type Settings struct {
	CanvasSize   float64
	Padding      float64
	StrokeStyle  string
	FillStyle    string
	LineWidth    float64
	FillOpacity  float64
	AnchorRadius float64
	Speed        float64 // transform step per millisecond
	HistoryLimit int
}

// DefaultSettings returns the stock session settings.
func DefaultSettings() Settings {
	return Settings{
		CanvasSize:   800,
		Padding:      5,
		StrokeStyle:  "black",
		FillStyle:    "orange",
		LineWidth:    2,
		FillOpacity:  0.5,
		AnchorRadius: 5,
		Speed:        0.0001,
		HistoryLimit: 200,
	}
}

// Engine is one editing session. It owns the shapes, the selection, the
// undo history and the running transform, and turns user input into new
// shape values. All coordinates are disk coordinates; use Viewport to
// convert from pixels.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	view   Viewport
	tool   Tool
	target ColorTarget
	style  hyper.Config

	scene   *Scene
	clicked []hyper.Point
	pivot   hyper.Shape // rotation center (Point) or translation axis (Line)

	// Drag state
	dragging     bool
	moved        bool
	pending      bool // a snapshot was pushed for the current gesture
	lastX, lastY float64
	drawing      string // id of the free drawing being sketched

	cursor     hyper.Point
	showCursor bool

	history *History
	anim    *Animator
}

// NewEngine creates an empty session.
func NewEngine(s Settings) *Engine {
	def := DefaultSettings()
	if s.CanvasSize <= 2*s.Padding {
		s.CanvasSize, s.Padding = def.CanvasSize, def.Padding
	}
	return &Engine{
		view:   Viewport{Size: s.CanvasSize, Padding: s.Padding},
		tool:   ToolClickDrag,
		target: TargetStroke,
		style: hyper.Config{
			StrokeStyle:  s.StrokeStyle,
			FillStyle:    s.FillStyle,
			LineWidth:    s.LineWidth,
			FillOpacity:  s.FillOpacity,
			AnchorRadius: s.AnchorRadius,
		},
		scene:   NewScene(),
		history: NewHistory(s.HistoryLimit),
		anim:    NewAnimator(s.Speed),
	}
}

// config is the construction context handed to every shape constructor.
func (e *Engine) config() hyper.Config {
	cfg := e.style
	cfg.Radius = e.view.Radius()
	cfg.Segment = e.tool.segment()
	return cfg
}

func (e *Engine) newPoint(x, y float64) hyper.Point {
	p := hyper.NewPoint(x, y)
	p.AnchorRadius = e.style.AnchorRadius
	return p
}

// --- Commands (frontend → backend) ---

// SetTool switches the active tool. Any tool but clickDrag clears the
// selection and stops a running transform.
func (e *Engine) SetTool(name string) error {
	t, err := ParseTool(name)
	if err != nil {
		return err
	}
	if t != ToolClickDrag {
		e.unselectAll()
		e.stopTransform()
	}
	e.endGesture()
	e.tool = t
	Logger().Debug("tool changed", "tool", t)
	return nil
}

// SetColorTarget picks whether SetColor changes strokes or fills.
func (e *Engine) SetColorTarget(name string) error {
	t, err := ParseColorTarget(name)
	if err != nil {
		return err
	}
	e.target = t
	return nil
}

// SetColor recolors the selected shapes, or sets the default color for new
// shapes when nothing is selected.
func (e *Engine) SetColor(color string) {
	if !e.anySelected() {
		if e.target == TargetStroke {
			e.style.StrokeStyle = color
		} else {
			e.style.FillStyle = color
		}
		return
	}
	e.history.Push(e.snapshot())
	stroke := e.target == TargetStroke
	e.scene.Each(func(id string, s hyper.Shape) {
		if !hyper.IsSelected(s) {
			return
		}
		switch v := s.(type) {
		case hyper.Line:
			if stroke {
				v.StrokeStyle = color
				e.scene.Replace(id, v)
			}
		case hyper.Polygon:
			if stroke {
				v = v.Restyled(func(l hyper.Line) hyper.Line {
					l.StrokeStyle = color
					return l
				})
			} else {
				v.FillStyle = color
			}
			e.scene.Replace(id, v)
		case hyper.FreeDrawing:
			if stroke {
				v.StrokeStyle = color
				e.scene.Replace(id, v)
			}
		}
	})
}

// SetLineWidth changes the line width of the selected shapes, or the default
// for new shapes. Anchors grow and shrink with the line.
func (e *Engine) SetLineWidth(w float64) error {
	if w <= 0 || math.IsNaN(w) {
		return fmt.Errorf("engine: line width %v is not positive", w)
	}
	if !e.anySelected() {
		e.style.AnchorRadius = anchorFor(e.style.AnchorRadius, w-e.style.LineWidth)
		e.style.LineWidth = w
		return nil
	}
	e.history.Push(e.snapshot())
	widen := func(l hyper.Line, change float64) hyper.Line {
		l.LineWidth = w
		return l.WithAnchorRadius(anchorFor(l.Point1.AnchorRadius, change))
	}
	e.scene.Each(func(id string, s hyper.Shape) {
		if !hyper.IsSelected(s) {
			return
		}
		switch v := s.(type) {
		case hyper.Line:
			e.scene.Replace(id, widen(v, w-v.LineWidth))
		case hyper.Polygon:
			change := w - v.Edges[0].LineWidth
			e.scene.Replace(id, v.Restyled(func(l hyper.Line) hyper.Line {
				return widen(l, change)
			}))
		case hyper.FreeDrawing:
			change := w - v.LineWidth
			pts := make([]hyper.Point, len(v.Points))
			for i, p := range v.Points {
				p.AnchorRadius = anchorFor(p.AnchorRadius, change)
				pts[i] = p
			}
			v.Points = pts
			v.LineWidth = w
			e.scene.Replace(id, v)
		}
	})
	return nil
}

func anchorFor(r, change float64) float64 {
	return math.Max(r+change, 1)
}

// SetFillOpacity changes the fill opacity of the selected polygons, or the
// default for new polygons. The value is clamped to [0, 1].
func (e *Engine) SetFillOpacity(alpha float64) {
	alpha = math.Min(math.Max(alpha, 0), 1)
	if !e.anySelected() {
		e.style.FillOpacity = alpha
		return
	}
	e.history.Push(e.snapshot())
	for _, id := range e.scene.OfKind(hyper.KindPolygon) {
		s, _ := e.scene.Get(id)
		pg := s.(hyper.Polygon)
		if pg.Selected {
			pg.FillOpacity = alpha
			e.scene.Replace(id, pg)
		}
	}
}

// SetSpeed sets the transform speed in radians, or distance units, per
// millisecond.
func (e *Engine) SetSpeed(speed float64) {
	e.anim.SetSpeed(speed)
}

// PointerDown starts a drag with the clickDrag tool or a sketch with the
// freeDraw tool. With freeDraw, shift closes the sketch into a loop.
func (e *Engine) PointerDown(x, y float64, shift bool) error {
	switch e.tool {
	case ToolClickDrag:
		if !e.view.Inside(x, y) {
			e.unselectAll()
			return nil
		}
		e.showCursor = false
		e.unselectAll()
		snap := e.snapshot()
		e.selectAt(x, y)
		if !e.anySelected() {
			return nil
		}
		e.history.Push(snap)
		e.pending = true
		e.dragging = true
		e.moved = false
		e.lastX, e.lastY = x, y
	case ToolFreeDraw:
		if !e.view.Inside(x, y) {
			return nil
		}
		e.unselectAll()
		e.history.Push(e.snapshot())
		e.pending = true
		fd := hyper.NewFreeDrawing(e.newPoint(x, y), shift, e.config())
		e.drawing = e.scene.Add(fd)
		e.showCursor = false
	}
	return nil
}

// PointerMove drags the selection or extends the sketch in progress. It
// also moves the cursor.
func (e *Engine) PointerMove(x, y float64) error {
	e.Hover(x, y)
	switch e.tool {
	case ToolClickDrag:
		if !e.dragging {
			return nil
		}
		if !e.view.Inside(x, y) {
			e.unselectAll()
			e.dragging = false
			return nil
		}
		dx, dy := x-e.lastX, y-e.lastY
		e.lastX, e.lastY = x, y
		if dx == 0 && dy == 0 {
			return nil
		}
		e.moved = true
		return e.moveSelected(dx, dy)
	case ToolFreeDraw:
		if e.drawing == "" || !e.view.Inside(x, y) {
			return nil
		}
		s, ok := e.scene.Get(e.drawing)
		if !ok {
			return nil
		}
		fd := s.(hyper.FreeDrawing)
		p := e.newPoint(x, y)
		if fd.End().Coincides(p) {
			return nil
		}
		e.scene.Replace(e.drawing, fd.Extend(p))
	}
	return nil
}

// PointerUp ends the current gesture. A drag that moved nothing leaves no
// undo step behind, and neither does a sketch of a single sample.
func (e *Engine) PointerUp(x, y float64) error {
	switch e.tool {
	case ToolClickDrag:
		if e.pending && !e.moved {
			e.history.Pop()
		}
	case ToolFreeDraw:
		if s, ok := e.scene.Get(e.drawing); ok && len(s.(hyper.FreeDrawing).Points) < 2 {
			e.scene.Remove(e.drawing)
			if e.pending {
				e.history.Pop()
			}
		}
	}
	e.endGesture()
	e.Hover(x, y)
	return nil
}

func (e *Engine) endGesture() {
	e.dragging = false
	e.moved = false
	e.pending = false
	e.drawing = ""
}

// Hover moves the cursor. The cursor is hidden outside the disk and while
// dragging.
func (e *Engine) Hover(x, y float64) {
	e.cursor = e.newPoint(x, y)
	e.showCursor = e.view.Inside(x, y) && !e.dragging && e.drawing == ""
}

// Leave hides the cursor.
func (e *Engine) Leave() {
	e.showCursor = false
}

// Click places a point with the line, segment, polygon, rotate and
// translate tools. With the polygon tool, a shift click on the third or
// later point closes the polygon. Points outside the disk fail with
// ErrOutsideDisk.
func (e *Engine) Click(x, y float64, shift bool) error {
	if !e.tool.clicks() {
		return nil
	}
	if !e.view.Inside(x, y) {
		return fmt.Errorf("%w: (%g, %g)", ErrOutsideDisk, x, y)
	}
	e.unselectAll()
	e.history.Push(e.snapshot())
	e.setPivot(nil)

	p := e.newPoint(x, y)
	switch e.tool {
	case ToolRotate:
		p.FillStyle = pivotColor
		e.setPivot(p)
		return nil
	case ToolTranslate:
		p.FillStyle = pivotColor
	}
	e.clicked = append(e.clicked, p)

	var err error
	switch e.tool {
	case ToolLine, ToolSegment:
		if len(e.clicked) == 2 {
			err = e.addLine()
		}
	case ToolPolygon:
		if shift && len(e.clicked) >= 3 {
			err = e.addPolygon()
		}
	case ToolTranslate:
		if len(e.clicked) == 2 {
			err = e.addAxis()
		}
	}
	if err != nil {
		e.rollback()
		Logger().Warn("construction rejected", "tool", e.tool, "err", err)
		return err
	}
	return nil
}

func (e *Engine) addLine() error {
	l, err := hyper.NewLine(e.clicked[0], e.clicked[1], e.config())
	if err != nil {
		return fmt.Errorf("line: %w", err)
	}
	e.scene.Add(l)
	e.clicked = nil
	return nil
}

func (e *Engine) addPolygon() error {
	cfg := e.config()
	n := len(e.clicked)
	edges := make([]hyper.Line, n)
	for i := range e.clicked {
		l, err := hyper.NewLine(e.clicked[i], e.clicked[(i+1)%n], cfg)
		if err != nil {
			return fmt.Errorf("polygon edge %d: %w", i, err)
		}
		edges[i] = l
	}
	pg, err := hyper.NewPolygon(edges, cfg)
	if err != nil {
		return fmt.Errorf("polygon: %w", err)
	}
	e.scene.Add(pg)
	e.clicked = nil
	return nil
}

func (e *Engine) addAxis() error {
	cfg := e.config()
	cfg.StrokeStyle = pivotColor
	axis, err := hyper.NewLine(e.clicked[0], e.clicked[1], cfg)
	if err != nil {
		return fmt.Errorf("translation axis: %w", err)
	}
	e.clicked = nil
	e.setPivot(axis)
	return nil
}

// TogglePlay starts the transform about the current pivot, or stops a
// running one. With no pivot placed it fails with ErrNothingToPlay.
func (e *Engine) TogglePlay() error {
	switch {
	case e.anim.Running():
		e.stopTransform()
		e.unselectAll()
		return nil
	case e.pivot != nil:
		e.anim.Start()
		Logger().Debug("transform started", "pivot", e.pivot.Kind(), "speed", e.anim.Speed())
		return nil
	}
	return ErrNothingToPlay
}

// Tick advances a running transform to the frame timestamp ts
// (milliseconds) and returns the frame's draw commands as JSON.
func (e *Engine) Tick(ts float64) string {
	e.Advance(ts)
	return e.RenderJSON()
}

// Advance applies one frame of the running transform. It reports whether
// anything was transformed.
func (e *Engine) Advance(ts float64) bool {
	step, ok := e.anim.Tick(ts)
	if !ok || e.pivot == nil {
		return false
	}
	var m hyper.Mobius
	switch p := e.pivot.(type) {
	case hyper.Point:
		m = hyper.Rotate(p, math.Mod(step, 2*math.Pi), e.view.Radius())
	case hyper.Line:
		t, err := hyper.Translate(p, step)
		if err != nil {
			Logger().Warn("translation axis unusable", "err", err)
			e.stopTransform()
			return false
		}
		m = t
	default:
		return false
	}
	e.applyAll(m)
	return true
}

// applyAll maps every shape and placed point by m. Shapes m cannot map are
// left where they are.
func (e *Engine) applyAll(m hyper.Mobius) {
	e.scene.Each(func(id string, s hyper.Shape) {
		ns, err := m.Apply(s)
		if err != nil {
			Logger().Warn("shape left in place", "id", id, "err", err)
			return
		}
		e.scene.Replace(id, ns)
	})
	for i, p := range e.clicked {
		np, err := m.ApplyPoint(p)
		if err != nil {
			Logger().Warn("point left in place", "point", p, "err", err)
			continue
		}
		e.clicked[i] = np
	}
}

// Undo restores the state before the last change.
func (e *Engine) Undo() error {
	s, ok := e.history.Pop()
	if !ok {
		return ErrNothingToUndo
	}
	e.restore(s)
	return nil
}

// Delete removes every selected shape. Deleting the pivot stops the
// transform.
func (e *Engine) Delete() error {
	if !e.anySelected() {
		return ErrNothingSelected
	}
	e.history.Push(e.snapshot())
	for _, id := range e.scene.IDs() {
		if s, _ := e.scene.Get(id); hyper.IsSelected(s) {
			e.scene.Remove(id)
		}
	}
	kept := e.clicked[:0:0]
	for _, p := range e.clicked {
		if !p.Selected {
			kept = append(kept, p)
		}
	}
	e.clicked = kept
	if e.pivot != nil && hyper.IsSelected(e.pivot) {
		e.setPivot(nil)
	}
	e.unselectAll()
	return nil
}

// Clear removes everything, including the pivot.
func (e *Engine) Clear() {
	e.history.Push(e.snapshot())
	e.scene = NewScene()
	e.clicked = nil
	e.setPivot(nil)
	e.endGesture()
}

// Resize changes the canvas size and scales every shape to the new disk.
// On error nothing changes.
func (e *Engine) Resize(size float64) error {
	to := size/2 - e.view.Padding
	if to <= 0 || math.IsNaN(to) {
		return fmt.Errorf("%w: canvas size %v leaves no disk", hyper.ErrDegenerate, size)
	}
	from := e.view.Radius()
	cur, err := rescaleSnapshot(snapshot{scene: e.scene, clicked: e.clicked, pivot: e.pivot}, from, to)
	if err != nil {
		return err
	}
	stack := make([]snapshot, len(e.history.stack))
	for i, s := range e.history.stack {
		if stack[i], err = rescaleSnapshot(s, from, to); err != nil {
			return err
		}
	}
	e.history.stack = stack
	e.scene, e.clicked, e.pivot = cur.scene, cur.clicked, cur.pivot
	e.view.Size = size
	e.showCursor = false
	return nil
}

func rescaleSnapshot(s snapshot, from, to float64) (snapshot, error) {
	out := snapshot{scene: NewScene()}
	for _, id := range s.scene.order {
		ns, err := hyper.Rescale(s.scene.byID[id], from, to)
		if err != nil {
			return snapshot{}, fmt.Errorf("rescale %s: %w", id, err)
		}
		out.scene.order = append(out.scene.order, id)
		out.scene.byID[id] = ns
	}
	for _, p := range s.clicked {
		np, err := hyper.Rescale(p, from, to)
		if err != nil {
			return snapshot{}, err
		}
		out.clicked = append(out.clicked, np.(hyper.Point))
	}
	if s.pivot != nil {
		np, err := hyper.Rescale(s.pivot, from, to)
		if err != nil {
			return snapshot{}, fmt.Errorf("rescale pivot: %w", err)
		}
		out.pivot = np
	}
	return out, nil
}

// --- Selection ---

// selectAt selects every anchor under (x, y): placed points, line anchors,
// polygon vertices shared by two edges, sketch handles and the pivot.
func (e *Engine) selectAt(x, y float64) {
	for i, p := range e.clicked {
		if p.PointClicked(x, y) {
			e.clicked[i].Selected = true
		}
	}
	e.scene.Each(func(id string, s hyper.Shape) {
		var (
			ns hyper.Shape
			ok bool
		)
		switch v := s.(type) {
		case hyper.Line:
			ns, ok = v.SelectAt(x, y, true)
		case hyper.Polygon:
			ns, ok = v.SelectAt(x, y)
		case hyper.FreeDrawing:
			ns, ok = v.SelectAt(x, y)
		}
		if ok {
			e.scene.Replace(id, ns)
		}
	})
	switch v := e.pivot.(type) {
	case hyper.Point:
		if v.PointClicked(x, y) {
			v.Selected = true
			e.pivot = v
		}
	case hyper.Line:
		if nl, ok := v.SelectAt(x, y, true); ok {
			e.pivot = nl
		}
	}
}

func (e *Engine) anySelected() bool {
	for _, p := range e.clicked {
		if p.Selected {
			return true
		}
	}
	if e.pivot != nil && hyper.IsSelected(e.pivot) {
		return true
	}
	found := false
	e.scene.Each(func(_ string, s hyper.Shape) {
		found = found || hyper.IsSelected(s)
	})
	return found
}

func (e *Engine) unselectAll() {
	e.scene.Each(func(id string, s hyper.Shape) {
		if hyper.IsSelected(s) {
			e.scene.Replace(id, hyper.Deselect(s))
		}
	})
	for i := range e.clicked {
		e.clicked[i].Selected = false
	}
	if e.pivot != nil {
		e.pivot = hyper.Deselect(e.pivot)
	}
}

// moveSelected drags everything selected by (dx, dy). Shapes that cannot
// be rebuilt at the new position stay where they were and are reported.
func (e *Engine) moveSelected(dx, dy float64) error {
	var errs []error
	e.scene.Each(func(id string, s hyper.Shape) {
		if !hyper.IsSelected(s) {
			return
		}
		ns, err := hyper.Move(s, dx, dy)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", id, err))
			return
		}
		e.scene.Replace(id, ns)
	})
	for i, p := range e.clicked {
		if p.Selected {
			e.clicked[i] = p.Moved(dx, dy)
		}
	}
	if e.pivot != nil && hyper.IsSelected(e.pivot) {
		np, err := hyper.Move(e.pivot, dx, dy)
		if err != nil {
			errs = append(errs, fmt.Errorf("pivot: %w", err))
		} else {
			e.pivot = np
		}
	}
	if err := errors.Join(errs...); err != nil {
		Logger().Warn("drag rejected", "err", err)
		return err
	}
	return nil
}

// --- History ---

func (e *Engine) snapshot() snapshot {
	s := snapshot{scene: e.scene.Clone()}
	if len(e.clicked) > 0 {
		s.clicked = make([]hyper.Point, len(e.clicked))
		copy(s.clicked, e.clicked)
	}
	if e.pivot != nil {
		p, err := hyper.Move(e.pivot, 0, 0)
		if err != nil {
			p = e.pivot
		}
		s.pivot = p
	}
	return s
}

func (e *Engine) restore(s snapshot) {
	e.scene = s.scene
	e.clicked = s.clicked
	e.setPivot(s.pivot)
	e.endGesture()
}

// rollback undoes a change that failed halfway.
func (e *Engine) rollback() {
	if s, ok := e.history.Pop(); ok {
		e.restore(s)
	}
}

// setPivot replaces the pivot. Removing it stops the transform.
func (e *Engine) setPivot(p hyper.Shape) {
	e.pivot = p
	if p == nil {
		e.stopTransform()
	}
}

func (e *Engine) stopTransform() {
	if e.anim.Running() {
		e.anim.Stop()
		Logger().Debug("transform stopped")
	}
}

// --- Queries (frontend ← backend) ---

// Tool returns the active tool.
func (e *Engine) Tool() Tool { return e.tool }

// ColorTarget returns what SetColor changes.
func (e *Engine) ColorTarget() ColorTarget { return e.target }

// Style returns the defaults applied to new shapes.
func (e *Engine) Style() hyper.Config { return e.config() }

// Viewport returns the pixel mapping of the canvas.
func (e *Engine) Viewport() Viewport { return e.view }

// Playing reports whether a transform is running.
func (e *Engine) Playing() bool { return e.anim.Running() }

// Speed returns the transform speed.
func (e *Engine) Speed() float64 { return e.anim.Speed() }

// Mode returns the interaction state.
func (e *Engine) Mode() Mode {
	switch {
	case e.anim.Running():
		return ModeTransforming
	case e.dragging:
		return ModeDragging
	case e.drawing != "" || len(e.clicked) > 0:
		return ModeDrawing
	}
	return ModeIdle
}

// IDs returns the ids of all shapes in drawing order.
func (e *Engine) IDs() []string { return e.scene.IDs() }

// Shape returns the shape stored under id.
func (e *Engine) Shape(id string) (hyper.Shape, bool) { return e.scene.Get(id) }

// ShapesOf returns the shapes of kind k in drawing order.
func (e *Engine) ShapesOf(k hyper.Kind) []hyper.Shape {
	ids := e.scene.OfKind(k)
	out := make([]hyper.Shape, len(ids))
	for i, id := range ids {
		out[i], _ = e.scene.Get(id)
	}
	return out
}

// Clicked returns the placed points still waiting to become a shape.
func (e *Engine) Clicked() []hyper.Point {
	out := make([]hyper.Point, len(e.clicked))
	copy(out, e.clicked)
	return out
}

// Pivot returns the rotation center or translation axis, if one is placed.
func (e *Engine) Pivot() (hyper.Shape, bool) {
	return e.pivot, e.pivot != nil
}

// HistoryLen returns the number of undo steps available.
func (e *Engine) HistoryLen() int { return e.history.Len() }

type shapeState struct {
	ID    string      `json:"id"`
	Kind  hyper.Kind  `json:"kind"`
	Shape hyper.Shape `json:"shape"`
}

// StateJSON returns the session state as JSON.
func (e *Engine) StateJSON() string {
	shapes := make([]shapeState, 0, e.scene.Len())
	e.scene.Each(func(id string, s hyper.Shape) {
		shapes = append(shapes, shapeState{ID: id, Kind: s.Kind(), Shape: s})
	})
	state := map[string]interface{}{
		"tool":        e.tool,
		"colorTarget": e.target,
		"mode":        e.Mode().String(),
		"playing":     e.anim.Running(),
		"speed":       e.anim.Speed(),
		"viewport":    e.view,
		"radius":      e.view.Radius(),
		"style":       e.config(),
		"shapes":      shapes,
		"clicked":     e.clicked,
		"history":     e.history.Len(),
	}
	if e.pivot != nil {
		state["pivot"] = shapeState{Kind: e.pivot.Kind(), Shape: e.pivot}
	}
	data, err := json.Marshal(state)
	if err != nil {
		return "{}"
	}
	return string(data)
}

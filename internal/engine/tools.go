package engine

import "fmt"

// Tool selects how pointer input is read.
type Tool string

const (
	ToolClickDrag Tool = "clickDrag"
	ToolFreeDraw  Tool = "freeDraw"
	ToolLine      Tool = "line"
	ToolSegment   Tool = "segment"
	ToolPolygon   Tool = "polygon"
	ToolRotate    Tool = "rotate"
	ToolTranslate Tool = "translate"
)

var allTools = []Tool{
	ToolClickDrag, ToolFreeDraw, ToolLine, ToolSegment,
	ToolPolygon, ToolRotate, ToolTranslate,
}

// Tools returns every tool in menu order.
func Tools() []Tool {
	return append([]Tool(nil), allTools...)
}

// ParseTool maps a tool name to a Tool.
func ParseTool(s string) (Tool, error) {
	for _, t := range allTools {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTool, s)
}

// segment reports whether lines drawn with t stop at their anchors.
func (t Tool) segment() bool {
	return t == ToolSegment || t == ToolPolygon
}

// clicks reports whether t reacts to clicks rather than drags.
func (t Tool) clicks() bool {
	switch t {
	case ToolLine, ToolSegment, ToolPolygon, ToolRotate, ToolTranslate:
		return true
	}
	return false
}

// ColorTarget picks which style SetColor changes.
type ColorTarget string

const (
	TargetStroke ColorTarget = "stroke"
	TargetFill   ColorTarget = "fill"
)

// ParseColorTarget maps "stroke" or "fill" to a ColorTarget.
func ParseColorTarget(s string) (ColorTarget, error) {
	switch ColorTarget(s) {
	case TargetStroke, TargetFill:
		return ColorTarget(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTarget, s)
}

// Mode is the interaction state of a session.
type Mode int

const (
	ModeIdle Mode = iota
	ModeDragging
	ModeDrawing
	ModeTransforming
)

func (m Mode) String() string {
	switch m {
	case ModeDragging:
		return "dragging"
	case ModeDrawing:
		return "drawing"
	case ModeTransforming:
		return "transforming"
	default:
		return "idle"
	}
}

// Package script replays editing sessions from a small command language.
//
//	size 410
//	tool polygon
//	color #336699
//	click 10 10
//	click -30 20
//	click 5 -40 shift
//	tool rotate
//	click 0 0
//	play
//	frame 0
//	frame 500
//
// Coordinates are disk coordinates: origin at the center, y up.
package script

import (
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/hypdisk/hypdisk/internal/engine"
)

// Script is a parsed command list.
type Script struct {
	Commands []*Command `@@*`
}

// Command is a single script command. Exactly one field is set.
type Command struct {
	Pos lexer.Position

	Size    *float64 `  "size" @Number`
	Tool    *string  `| "tool" @Ident`
	Color   *string  `| "color" @( Ident | Hex )`
	Target  *string  `| "target" @Ident`
	Width   *float64 `| "width" @Number`
	Opacity *float64 `| "opacity" @Number`
	Speed   *float64 `| "speed" @Number`
	Click   *Click   `| "click" @@`
	Drag    *Drag    `| "drag" @@`
	Frame   *float64 `| "frame" @Number`
	Play    bool     `| @"play"`
	Pause   bool     `| @"pause"`
	Undo    bool     `| @"undo"`
	Delete  bool     `| @"delete"`
	Clear   bool     `| @"clear"`
}

// Click places a point, or presses and releases with the gesture tools.
type Click struct {
	X     float64 `@Number`
	Y     float64 `@Number`
	Shift bool    `@"shift"?`
}

// Drag presses at the first point and releases at the second.
type Drag struct {
	X1    float64 `@Number`
	Y1    float64 `@Number`
	X2    float64 `Arrow @Number`
	Y2    float64 `@Number`
	Shift bool    `@"shift"?`
}

// dragSteps is the number of pointer moves a drag is split into, so free
// drawings get intermediate samples.
const dragSteps = 8

var parser = participle.MustBuild[Script](
	participle.Lexer(Lexer),
	participle.Elide("Comment", "Whitespace"),
	participle.UseLookahead(2),
)

// Parse parses a script.
func Parse(src string) (*Script, error) {
	s, err := parser.ParseString("", src)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return s, nil
}

// ParseFile parses the script stored at path.
func ParseFile(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()

	s, err := parser.Parse(path, f)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return s, nil
}

// Run applies every command to e in order and stops at the first failure.
func (s *Script) Run(e *engine.Engine) error {
	for _, c := range s.Commands {
		if err := c.Apply(e); err != nil {
			return fmt.Errorf("%s: %s: %w", c.Pos, c.Name(), err)
		}
	}
	return nil
}

// Apply runs the command against e.
func (c *Command) Apply(e *engine.Engine) error {
	switch {
	case c.Size != nil:
		return e.Resize(*c.Size)
	case c.Tool != nil:
		return e.SetTool(*c.Tool)
	case c.Color != nil:
		e.SetColor(*c.Color)
	case c.Target != nil:
		return e.SetColorTarget(*c.Target)
	case c.Width != nil:
		return e.SetLineWidth(*c.Width)
	case c.Opacity != nil:
		e.SetFillOpacity(*c.Opacity)
	case c.Speed != nil:
		e.SetSpeed(*c.Speed)
	case c.Click != nil:
		return click(e, c.Click)
	case c.Drag != nil:
		return drag(e, c.Drag)
	case c.Frame != nil:
		e.Advance(*c.Frame)
	case c.Play:
		if !e.Playing() {
			return e.TogglePlay()
		}
	case c.Pause:
		if e.Playing() {
			return e.TogglePlay()
		}
	case c.Undo:
		return e.Undo()
	case c.Delete:
		return e.Delete()
	case c.Clear:
		e.Clear()
	}
	return nil
}

// Name returns the command keyword.
func (c *Command) Name() string {
	switch {
	case c.Size != nil:
		return "size"
	case c.Tool != nil:
		return "tool"
	case c.Color != nil:
		return "color"
	case c.Target != nil:
		return "target"
	case c.Width != nil:
		return "width"
	case c.Opacity != nil:
		return "opacity"
	case c.Speed != nil:
		return "speed"
	case c.Click != nil:
		return "click"
	case c.Drag != nil:
		return "drag"
	case c.Frame != nil:
		return "frame"
	case c.Play:
		return "play"
	case c.Pause:
		return "pause"
	case c.Undo:
		return "undo"
	case c.Delete:
		return "delete"
	case c.Clear:
		return "clear"
	}
	return "?"
}

func click(e *engine.Engine, c *Click) error {
	switch e.Tool() {
	case engine.ToolClickDrag, engine.ToolFreeDraw:
		if err := e.PointerDown(c.X, c.Y, c.Shift); err != nil {
			return err
		}
		return e.PointerUp(c.X, c.Y)
	}
	return e.Click(c.X, c.Y, c.Shift)
}

func drag(e *engine.Engine, d *Drag) error {
	if err := e.PointerDown(d.X1, d.Y1, d.Shift); err != nil {
		return err
	}
	for i := 1; i <= dragSteps; i++ {
		t := float64(i) / dragSteps
		if err := e.PointerMove(d.X1+t*(d.X2-d.X1), d.Y1+t*(d.Y2-d.Y1)); err != nil {
			return err
		}
	}
	return e.PointerUp(d.X2, d.Y2)
}

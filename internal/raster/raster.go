// Package raster draws engine draw commands into an image with gg, the same
// way the browser canvas executes them.
package raster

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/hypdisk/hypdisk/internal/engine"
)

var (
	// ErrUnknownColor is returned for a color that is neither a CSS name nor
	// a hex value.
	ErrUnknownColor = errors.New("raster: unknown color")

	// ErrBadPath is returned for a path command with missing or mistyped
	// arguments.
	ErrBadPath = errors.New("raster: malformed path command")

	// ErrNoCanvas is returned when the canvas size can be neither read from
	// Options nor from a clear command.
	ErrNoCanvas = errors.New("raster: canvas size unknown")
)

// Options controls rasterization.
type Options struct {
	// Size is the canvas width and height in pixels. Zero takes the size
	// from the frame's clear command.
	Size int

	// Labels enables coordinate labels.
	Labels bool
}

var goRegular = sync.OnceValues(func() (*text.FontSource, error) {
	return text.NewFontSource(goregular.TTF)
})

// Rasterize executes cmds on a new gg context. The caller owns the context
// and must Close it.
func Rasterize(cmds []engine.DrawCommand, opts Options) (*gg.Context, error) {
	size := opts.Size
	if size <= 0 {
		size = canvasSize(cmds)
	}
	if size <= 0 {
		return nil, ErrNoCanvas
	}

	dc := gg.NewContext(size, size)
	dc.ClearWithColor(gg.White)
	for i, cmd := range cmds {
		if err := draw(dc, cmd, opts); err != nil {
			dc.Close()
			return nil, fmt.Errorf("command %d (%s): %w", i, cmd.Op, err)
		}
	}
	return dc, nil
}

// WritePNG rasterizes cmds and encodes the result as PNG.
func WritePNG(w io.Writer, cmds []engine.DrawCommand, opts Options) error {
	dc, err := Rasterize(cmds, opts)
	if err != nil {
		return err
	}
	defer dc.Close()
	return dc.EncodePNG(w)
}

// canvasSize reads the far corner of the first clear command.
func canvasSize(cmds []engine.DrawCommand) int {
	for _, cmd := range cmds {
		if cmd.Op != "clear" {
			continue
		}
		extent := 0.0
		for _, pc := range cmd.Path {
			for _, v := range pc[1:] {
				if f, ok := v.(float64); ok {
					extent = math.Max(extent, f)
				}
			}
		}
		return int(math.Ceil(extent))
	}
	return 0
}

func draw(dc *gg.Context, cmd engine.DrawCommand, opts Options) error {
	dc.SetTransform(toGG(engine.FromSlice(cmd.Transform)))
	defer dc.Identity()

	alpha := cmd.Opacity
	if alpha == 0 {
		alpha = 1
	}

	if cmd.Op == "label" {
		if !opts.Labels || cmd.Text == "" {
			return nil
		}
		return label(dc, cmd)
	}

	if cmd.Fill != "" {
		if err := setColor(dc, cmd.Fill, alpha); err != nil {
			return err
		}
		if err := tracePath(dc, cmd.Path); err != nil {
			return err
		}
		if cmd.FillRule == "evenodd" {
			dc.SetFillRule(gg.FillRuleEvenOdd)
		} else {
			dc.SetFillRule(gg.FillRuleNonZero)
		}
		if err := dc.Fill(); err != nil {
			return err
		}
	}
	if cmd.Stroke != "" && cmd.StrokeWidth > 0 {
		if err := setColor(dc, cmd.Stroke, alpha); err != nil {
			return err
		}
		if err := tracePath(dc, cmd.Path); err != nil {
			return err
		}
		dc.SetLineWidth(cmd.StrokeWidth)
		if err := dc.Stroke(); err != nil {
			return err
		}
	}
	return nil
}

// label draws upright text at the transformed anchor position.
func label(dc *gg.Context, cmd engine.DrawCommand) error {
	src, err := goRegular()
	if err != nil {
		return fmt.Errorf("load font: %w", err)
	}
	x, y := engine.FromSlice(cmd.Transform).TransformPoint(cmd.X, cmd.Y)
	fill := cmd.Fill
	if fill == "" {
		fill = "black"
	}
	if err := setColor(dc, fill, 1); err != nil {
		return err
	}
	size := cmd.FontSize
	if size <= 0 {
		size = 12
	}
	dc.Identity()
	dc.SetFont(src.Face(size))
	dc.DrawString(cmd.Text, x, y)
	return nil
}

func toGG(m engine.Matrix2D) gg.Matrix {
	return gg.Matrix{
		A: m[0], B: m[2], C: m[4],
		D: m[1], E: m[3], F: m[5],
	}
}

// ParseColor resolves a CSS color name or a #hex value.
func ParseColor(s string) (gg.RGBA, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		switch len(s) {
		case 4, 5, 7, 9:
			return gg.Hex(s), nil
		}
		return gg.RGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}
	c, ok := colornames.Map[strings.ToLower(s)]
	if !ok {
		return gg.RGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}
	return gg.FromColor(c), nil
}

func setColor(dc *gg.Context, s string, alpha float64) error {
	c, err := ParseColor(s)
	if err != nil {
		return err
	}
	dc.SetRGBA(c.R, c.G, c.B, c.A*alpha)
	return nil
}

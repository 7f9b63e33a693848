package raster

import (
	"fmt"
	"math"

	"github.com/gogpu/gg"

	"github.com/hypdisk/hypdisk/internal/engine"
)

// tracePath replays Canvas2D path commands on dc. Arcs follow arc(): with
// ccw false the angle increases from start to end, otherwise it decreases,
// and a sweep of 2π or more draws the whole circle.
func tracePath(dc *gg.Context, path []engine.PathCommand) error {
	current := false
	for _, pc := range path {
		if len(pc) == 0 {
			return ErrBadPath
		}
		op, _ := pc[0].(string)
		switch op {
		case "M", "L":
			v, err := floats(pc, 2)
			if err != nil {
				return err
			}
			if op == "M" || !current {
				dc.MoveTo(v[0], v[1])
			} else {
				dc.LineTo(v[0], v[1])
			}
			current = true
		case "A":
			v, err := floats(pc, 5)
			if err != nil {
				return err
			}
			if len(pc) < 7 {
				return fmt.Errorf("%w: %v", ErrBadPath, pc)
			}
			ccw, ok := pc[6].(bool)
			if !ok {
				return fmt.Errorf("%w: %v", ErrBadPath, pc)
			}
			arc(dc, v[0], v[1], v[2], v[3], Sweep(v[3], v[4], ccw), current)
			current = true
		case "Z":
			dc.ClosePath()
		default:
			return fmt.Errorf("%w: unknown op %v", ErrBadPath, pc[0])
		}
	}
	return nil
}

// floats reads n numeric arguments after the op. PathCommand arguments are
// float64 when built in-process and after a JSON round trip.
func floats(pc engine.PathCommand, n int) ([]float64, error) {
	if len(pc) < n+1 {
		return nil, fmt.Errorf("%w: %v", ErrBadPath, pc)
	}
	out := make([]float64, n)
	for i := range out {
		f, ok := pc[i+1].(float64)
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrBadPath, pc)
		}
		out[i] = f
	}
	return out, nil
}

// Sweep returns the signed angle arc() travels from start to end.
func Sweep(start, end float64, ccw bool) float64 {
	const full = 2 * math.Pi
	d := end - start
	if ccw {
		d = -d
	}
	if d >= full {
		d = full
	} else {
		d = math.Mod(d, full)
		if d < 0 {
			d += full
		}
	}
	if ccw {
		return -d
	}
	return d
}

// arc appends a circular arc as cubic Béziers of at most a quarter turn
// each, joined to the current point by a straight line.
func arc(dc *gg.Context, cx, cy, r, start, sweep float64, current bool) {
	x0, y0 := cx+r*math.Cos(start), cy+r*math.Sin(start)
	if current {
		dc.LineTo(x0, y0)
	} else {
		dc.MoveTo(x0, y0)
	}
	if sweep == 0 || r <= 0 {
		return
	}

	n := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	step := sweep / float64(n)
	k := math.Sin(step) * (math.Sqrt(4+3*math.Pow(math.Tan(step/2), 2)) - 1) / 3
	a := start
	for i := 0; i < n; i++ {
		b := a + step
		cosA, sinA := math.Cos(a), math.Sin(a)
		cosB, sinB := math.Cos(b), math.Sin(b)
		dc.CubicTo(
			cx+r*(cosA-k*sinA), cy+r*(sinA+k*cosA),
			cx+r*(cosB+k*sinB), cy+r*(sinB-k*cosB),
			cx+r*cosB, cy+r*sinB,
		)
		a = b
	}
}

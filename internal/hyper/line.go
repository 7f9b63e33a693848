package hyper

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Line is a hyperbolic geodesic through two anchor points. It is either a
// diameter of the disk or an arc of a circle orthogonal to the boundary.
type Line struct {
	// Point1 and Point2 are the defining points in click order.
	Point1 Point `json:"point1"`
	Point2 Point `json:"point2"`

	// Anchor1 and Anchor2 are the same two points in drawing order: the
	// origin first or the smaller modulus first for diameters, increasing
	// argument for arcs.
	Anchor1 Point `json:"anchor1"`
	Anchor2 Point `json:"anchor2"`

	Diameter bool `json:"diameter"`

	// Diameter form. Boundary points ordered by increasing argument.
	Endpoint1 Point `json:"endpoint1"`
	Endpoint2 Point `json:"endpoint2"`

	// Arc form.
	Center           Point   `json:"center"`
	Radius           float64 `json:"radius"`
	Counterclockwise bool    `json:"counterclockwise"`
	Anchor1Arg       float64 `json:"anchor1Arg"`
	Anchor2Arg       float64 `json:"anchor2Arg"`

	Segment     bool    `json:"segment"`
	StrokeStyle string  `json:"strokeStyle"`
	LineWidth   float64 `json:"lineWidth"`
	Selected    bool    `json:"selected,omitempty"`
	DiskRadius  float64 `json:"diskRadius"`

	swapped bool // Anchor1 is Point2
}

// NewLine builds the geodesic through p1 and p2. Coincident points fail with
// ErrDegenerate.
func NewLine(p1, p2 Point, cfg Config) (Line, error) {
	if p1.Coincides(p2) {
		return Line{}, fmt.Errorf("%w: a line needs two distinct points, got %v twice", ErrDegenerate, p1)
	}
	if cfg.AnchorRadius > 0 {
		p1.AnchorRadius = cfg.AnchorRadius
		p2.AnchorRadius = cfg.AnchorRadius
	}

	l := Line{
		Point1:      p1,
		Point2:      p2,
		Segment:     cfg.Segment,
		StrokeStyle: cfg.StrokeStyle,
		LineWidth:   cfg.LineWidth,
		DiskRadius:  cfg.Radius,
	}

	if p1.IsZero() || p2.IsZero() {
		through := p1
		if p1.IsZero() {
			through = p2
		}
		ends, err := through.DiameterEndpoints(cfg.Radius)
		if err != nil {
			return Line{}, err
		}
		l.Diameter = true
		l.Endpoint1, l.Endpoint2 = ends[0], ends[1]
		l.swapped = !p1.IsZero()
		l.syncAnchors()
		return l, nil
	}

	onDiameter, err := p1.IsOnADiameterWith(p2, DiameterTolerance)
	if err != nil {
		return Line{}, err
	}
	if onDiameter {
		ends, err := p1.DiameterEndpoints(cfg.Radius)
		if err != nil {
			return Line{}, err
		}
		l.Diameter = true
		l.Endpoint1, l.Endpoint2 = ends[0], ends[1]
		l.swapped = p1.Modulus() >= p2.Modulus()
		l.syncAnchors()
		return l, nil
	}

	// Circle orthogonal to the unit circle through p and q.
	p := p1.Scale(1 / cfg.Radius)
	q := p2.Scale(1 / cfg.Radius)
	pm, qm := p.Modulus(), q.Modulus()
	num := p.Scale(1 + qm*qm).Minus(q.Scale(1 + pm*pm))
	den := p.Times(q.Conjugate()).Minus(p.Conjugate().Times(q))
	center, err := num.DividedBy(den)
	if err != nil {
		return Line{}, fmt.Errorf("geodesic center: %w", err)
	}
	l.Center = center.Scale(cfg.Radius)
	l.Radius = p.DistanceTo(center) * cfg.Radius

	arg1, _ := p1.Argument()
	arg2, _ := p2.Argument()
	l.swapped = !(arg1 < arg2)
	l.syncAnchors()

	a1, _ := l.Anchor1.Argument()
	a2, _ := l.Anchor2.Argument()
	l.Counterclockwise = !(a2 > a1+math.Pi)
	l.Anchor1Arg, _ = l.Anchor1.Minus(l.Center).Argument()
	l.Anchor2Arg, _ = l.Anchor2.Minus(l.Center).Argument()
	return l, nil
}

func (l *Line) syncAnchors() {
	if l.swapped {
		l.Anchor1, l.Anchor2 = l.Point2, l.Point1
	} else {
		l.Anchor1, l.Anchor2 = l.Point1, l.Point2
	}
}

// Anchors returns the anchors in drawing order.
func (l Line) Anchors() [2]Point {
	return [2]Point{l.Anchor1, l.Anchor2}
}

func (l Line) config() Config {
	return Config{
		Radius:      l.DiskRadius,
		Segment:     l.Segment,
		StrokeStyle: l.StrokeStyle,
		LineWidth:   l.LineWidth,
	}
}

func (l Line) withStyleOf(src Line) Line {
	l.StrokeStyle = src.StrokeStyle
	l.LineWidth = src.LineWidth
	l.Segment = src.Segment
	l.Selected = src.Selected
	return l
}

// IdealEndpoints returns the two points where the geodesic meets the
// boundary. The first lies beyond Point1 and the second beyond Point2, so
// sliding from the first toward the second carries Point1 toward Point2.
// With normalized set the result is in unit-disk coordinates.
func (l Line) IdealEndpoints(normalized bool) ([2]Point, error) {
	r := l.DiskRadius
	var e1, e2 complex128
	if l.Diameter {
		e1 = l.Endpoint1.Complex() / complex(r, 0)
		e2 = l.Endpoint2.Complex() / complex(r, 0)
	} else {
		c := l.Center.Complex() / complex(r, 0)
		rn := l.Radius / r
		cm2 := real(c)*real(c) + imag(c)*imag(c)
		beta := rn*rn - 1 - cm2
		disc := cmplx.Sqrt(complex(beta*beta-4*cm2, 0))
		den := 2 * cmplx.Conj(c)
		if den == 0 {
			return [2]Point{}, fmt.Errorf("%w: arc centered at the origin", ErrDivisionByZero)
		}
		e1 = (complex(-beta, 0) + disc) / den
		e2 = (complex(-beta, 0) - disc) / den
	}

	// |(z-e1)/(z-e2)| grows monotonically from e1 to e2 along the geodesic.
	z1 := l.Point1.Complex() / complex(r, 0)
	z2 := l.Point2.Complex() / complex(r, 0)
	w := func(z complex128) float64 { return cmplx.Abs((z - e1) / (z - e2)) }
	if w(z1) > w(z2) {
		e1, e2 = e2, e1
	}

	if !normalized {
		e1 *= complex(r, 0)
		e2 *= complex(r, 0)
	}
	return [2]Point{FromComplex(e1), FromComplex(e2)}, nil
}

// HypDist returns the hyperbolic distance between Point1 and Point2, read
// off the cross ratio with the ideal endpoints. It only holds for the two
// defining points of the line; use Distance for arbitrary pairs.
func (l Line) HypDist() (float64, error) {
	ends, err := l.IdealEndpoints(false)
	if err != nil {
		return 0, err
	}
	cr, err := ends[0].CrossRatio(l.Point2, l.Point1, ends[1])
	if err != nil {
		return 0, fmt.Errorf("cross ratio: %w", err)
	}
	return math.Abs(math.Log(cr.X)), nil
}

// Moved shifts every selected anchor by (dx, dy) and rebuilds the line. The
// click order of the defining points is kept.
func (l Line) Moved(dx, dy float64) (Line, error) {
	p1, p2 := l.Point1, l.Point2
	if p1.Selected {
		p1 = p1.Moved(dx, dy)
	}
	if p2.Selected {
		p2 = p2.Moved(dx, dy)
	}
	nl, err := NewLine(p1, p2, l.config())
	if err != nil {
		return Line{}, err
	}
	return nl.withStyleOf(l), nil
}

// SelectAt selects the anchors under (mx, my). With first set it stops at
// the first hit. ok reports whether anything was hit.
func (l Line) SelectAt(mx, my float64, first bool) (Line, bool) {
	hit := false
	if l.Point1.PointClicked(mx, my) {
		l.Point1.Selected = true
		hit = true
	}
	if !(first && hit) && l.Point2.PointClicked(mx, my) {
		l.Point2.Selected = true
		hit = true
	}
	if hit {
		l.Selected = true
		l.syncAnchors()
	}
	return l, hit
}

// Deselected clears the selection of the line and its anchors.
func (l Line) Deselected() Line {
	l.Point1.Selected = false
	l.Point2.Selected = false
	l.Selected = false
	l.syncAnchors()
	return l
}

// WithAnchorRadius returns l with both anchor circles resized.
func (l Line) WithAnchorRadius(r float64) Line {
	l.Point1.AnchorRadius = r
	l.Point2.AnchorRadius = r
	l.syncAnchors()
	return l
}

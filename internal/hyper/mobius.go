package hyper

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Mobius is the fractional linear map z -> (Az + B) / (Cz + D) acting on
// canvas coordinates.
type Mobius struct {
	A, B, C, D complex128
}

// NewMobius converts unit-disk coefficients to canvas coordinates for a disk
// of the given radius: B is scaled by the radius and C by its inverse.
func NewMobius(a, b, c, d complex128, radius float64) Mobius {
	r := complex(radius, 0)
	return Mobius{A: a, B: b * r, C: c / r, D: d}
}

// Identity returns the identity map.
func Identity() Mobius {
	return Mobius{A: 1, D: 1}
}

// Rotate returns the elliptic isometry that fixes center and turns the disk
// about it by theta radians.
func Rotate(center Point, theta, radius float64) Mobius {
	c := center.Complex() / complex(radius, 0)
	e := cmplx.Rect(1, theta)
	cm2 := complex(real(c)*real(c)+imag(c)*imag(c), 0)
	return NewMobius(
		e-cm2,
		c*(1-e),
		cmplx.Conj(c)*(e-1),
		1-e*cm2,
		radius,
	)
}

// Translate returns the hyperbolic isometry sliding the disk along axis by
// distance, from the ideal endpoint beyond the axis's first point toward the
// one beyond its second. A negative distance slides the other way.
func Translate(axis Line, distance float64) (Mobius, error) {
	ends, err := axis.IdealEndpoints(true)
	if err != nil {
		return Mobius{}, fmt.Errorf("translation axis: %w", err)
	}
	p, q := ends[0].Complex(), ends[1].Complex()
	e := complex(math.Exp(distance), 0)
	return NewMobius(
		q*e-p,
		p*q*(1-e),
		e-1,
		q-p*e,
		axis.DiskRadius,
	), nil
}

// Compose returns the map m∘n, which applies n first.
func (m Mobius) Compose(n Mobius) Mobius {
	return Mobius{
		A: m.A*n.A + m.B*n.C,
		B: m.A*n.B + m.B*n.D,
		C: m.C*n.A + m.D*n.C,
		D: m.C*n.B + m.D*n.D,
	}
}

// At evaluates the map at z. The pole fails with ErrDivisionByZero.
func (m Mobius) At(z complex128) (complex128, error) {
	den := m.C*z + m.D
	if den == 0 {
		return 0, fmt.Errorf("%w: %v is the pole of the map", ErrDivisionByZero, z)
	}
	return (m.A*z + m.B) / den, nil
}

// ApplyPoint maps p and keeps its drawing attributes.
func (m Mobius) ApplyPoint(p Point) (Point, error) {
	z, err := m.At(p.Complex())
	if err != nil {
		return Point{}, err
	}
	return FromComplex(z).withStyleOf(p), nil
}

// ApplyLine maps both defining points and rebuilds the geodesic through the
// images, which may change it between arc and diameter.
func (m Mobius) ApplyLine(l Line) (Line, error) {
	p1, err := m.ApplyPoint(l.Point1)
	if err != nil {
		return Line{}, err
	}
	p2, err := m.ApplyPoint(l.Point2)
	if err != nil {
		return Line{}, err
	}
	nl, err := NewLine(p1, p2, l.config())
	if err != nil {
		return Line{}, err
	}
	return nl.withStyleOf(l), nil
}

// ApplyPolygon maps every edge and rebuilds the polygon.
func (m Mobius) ApplyPolygon(pg Polygon) (Polygon, error) {
	edges := make([]Line, len(pg.Edges))
	for i, e := range pg.Edges {
		ne, err := m.ApplyLine(e)
		if err != nil {
			return Polygon{}, fmt.Errorf("edge %d: %w", i, err)
		}
		edges[i] = ne
	}
	np, err := NewPolygon(edges, pg.config())
	if err != nil {
		return Polygon{}, err
	}
	np.Selected = pg.Selected
	return np, nil
}

// ApplyFreeDrawing maps every sample of the drawing.
func (m Mobius) ApplyFreeDrawing(fd FreeDrawing) (FreeDrawing, error) {
	pts := make([]Point, len(fd.Points))
	for i, p := range fd.Points {
		np, err := m.ApplyPoint(p)
		if err != nil {
			return FreeDrawing{}, fmt.Errorf("sample %d: %w", i, err)
		}
		pts[i] = np
	}
	fd.Points = pts
	return fd, nil
}

// Apply maps any shape of this package.
func (m Mobius) Apply(s Shape) (Shape, error) {
	switch v := s.(type) {
	case Point:
		return m.ApplyPoint(v)
	case Line:
		return m.ApplyLine(v)
	case Polygon:
		return m.ApplyPolygon(v)
	case FreeDrawing:
		return m.ApplyFreeDrawing(v)
	default:
		return nil, fmt.Errorf("hyper: cannot transform %T", s)
	}
}

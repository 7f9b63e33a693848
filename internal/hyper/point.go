// Package hyper implements the geometry of the Poincaré disk: points as
// complex numbers, geodesic lines, polygons bounded by geodesics, and the
// Möbius maps that act on them as isometries.
//
// All values are immutable. Moving or transforming a shape returns a new
// value and leaves the receiver untouched.
package hyper

import (
	"fmt"
	"math"
	"math/cmplx"
)

const (
	// Tolerance is the distance in canvas units under which two points are
	// taken to be the same location.
	Tolerance = 1e-6

	// DiameterTolerance is the angular slack, in radians, for deciding that
	// two points lie on a common diameter.
	DiameterTolerance = 0.01

	twoPi = 2 * math.Pi
)

// Point is a location in the disk, read as the complex number X + iY.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`

	Selected     bool    `json:"selected,omitempty"`
	FillStyle    string  `json:"fillStyle,omitempty"`
	AnchorRadius float64 `json:"anchorRadius,omitempty"`
}

// NewPoint returns an unselected point with the default anchor style.
func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y, FillStyle: "gray", AnchorRadius: 5}
}

// FromComplex converts z to a point with no drawing attributes.
func FromComplex(z complex128) Point {
	return Point{X: real(z), Y: imag(z)}
}

// Complex returns p as a complex128.
func (p Point) Complex() complex128 {
	return complex(p.X, p.Y)
}

// Modulus returns |p|.
func (p Point) Modulus() float64 {
	return math.Hypot(p.X, p.Y)
}

// Argument returns the angle of p folded into [0, 2π). ok is false for the
// origin, which has no argument.
func (p Point) Argument() (arg float64, ok bool) {
	if p.IsZero() {
		return 0, false
	}
	arg = math.Atan2(p.Y, p.X)
	if arg < 0 {
		arg += twoPi
	}
	if arg >= twoPi {
		arg = 0
	}
	return arg, true
}

// IsZero reports whether p is exactly the origin.
func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// IsEqualTo reports whether p and q have identical coordinates. Anchor
// matching uses Coincides instead.
func (p Point) IsEqualTo(q Point) bool {
	return p.Minus(q).IsZero()
}

// Near reports whether p and q are within tol of each other.
func (p Point) Near(q Point, tol float64) bool {
	return p.DistanceTo(q) <= tol
}

// Coincides is Near with the package Tolerance.
func (p Point) Coincides(q Point) bool {
	return p.Near(q, Tolerance)
}

func (p Point) Plus(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Minus(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) Scale(k float64) Point {
	return Point{X: k * p.X, Y: k * p.Y}
}

// Times is complex multiplication.
func (p Point) Times(q Point) Point {
	return Point{X: p.X*q.X - p.Y*q.Y, Y: p.X*q.Y + p.Y*q.X}
}

func (p Point) Conjugate() Point {
	return Point{X: p.X, Y: -p.Y}
}

// DividedBy is complex division. Dividing by the origin fails with
// ErrDivisionByZero.
func (p Point) DividedBy(q Point) (Point, error) {
	if q.IsZero() {
		return Point{}, fmt.Errorf("%w: divide %v by zero", ErrDivisionByZero, p.Complex())
	}
	d := q.X*q.X + q.Y*q.Y
	return Point{
		X: (p.X*q.X + p.Y*q.Y) / d,
		Y: (p.Y*q.X - p.X*q.Y) / d,
	}, nil
}

// DistanceTo returns the Euclidean distance |p - q|.
func (p Point) DistanceTo(q Point) float64 {
	return p.Minus(q).Modulus()
}

// IsOnADiameterWith reports whether p and q lie on a common diameter of the
// disk, with eps as the angular slack. When exactly one of them is the origin
// the answer is always true. Two origins determine nothing and fail with
// ErrDegenerate.
func (p Point) IsOnADiameterWith(q Point, eps float64) (bool, error) {
	pz, qz := p.IsZero(), q.IsZero()
	if pz && qz {
		return false, fmt.Errorf("%w: both points are the origin", ErrDegenerate)
	}
	if pz || qz {
		return true, nil
	}
	a, _ := p.Argument()
	b, _ := q.Argument()
	diff := math.Mod(math.Abs(a-b), math.Pi)
	return diff <= eps || math.Pi-diff <= eps, nil
}

// DiameterEndpoints returns the boundary points u and -u of the diameter
// through p, scaled to radius and ordered by increasing argument.
func (p Point) DiameterEndpoints(radius float64) ([2]Point, error) {
	if p.IsZero() {
		return [2]Point{}, fmt.Errorf("%w: no unique diameter through the origin", ErrDegenerate)
	}
	u := p.Scale(radius / p.Modulus())
	v := u.Scale(-1)
	ua, _ := u.Argument()
	va, _ := v.Argument()
	if va < ua {
		u, v = v, u
	}
	return [2]Point{u, v}, nil
}

// Moved returns p shifted by (dx, dy) with its drawing attributes.
func (p Point) Moved(dx, dy float64) Point {
	q := p
	q.X += dx
	q.Y += dy
	return q
}

// withStyleOf copies the drawing attributes of src onto p.
func (p Point) withStyleOf(src Point) Point {
	p.Selected = src.Selected
	p.FillStyle = src.FillStyle
	p.AnchorRadius = src.AnchorRadius
	return p
}

// PointClicked reports whether (mx, my) falls strictly inside the anchor
// circle of p.
func (p Point) PointClicked(mx, my float64) bool {
	return p.HitBy(mx, my, p.AnchorRadius)
}

// HitBy reports whether (mx, my) lies strictly within r of p.
func (p Point) HitBy(mx, my, r float64) bool {
	dx, dy := p.X-mx, p.Y-my
	return dx*dx+dy*dy < r*r
}

// CrossRatio returns ((p-a)/(p-b)) * ((c-b)/(c-a)).
func (p Point) CrossRatio(a, b, c Point) (Point, error) {
	left, err := p.Minus(a).DividedBy(p.Minus(b))
	if err != nil {
		return Point{}, err
	}
	right, err := c.Minus(b).DividedBy(c.Minus(a))
	if err != nil {
		return Point{}, err
	}
	return left.Times(right), nil
}

// Label formats p in unit-disk coordinates with two decimals, e.g.
// "0.25 - 0.5i".
func (p Point) Label(radius float64) string {
	x := math.Round(100*p.X/radius) / 100
	y := math.Round(100*p.Y/radius) / 100
	// drop negative zero
	if x == 0 {
		x = 0
	}
	if y == 0 {
		y = 0
	}
	if y >= 0 {
		return fmt.Sprintf("%g + %gi", x, y)
	}
	return fmt.Sprintf("%g - %gi", x, -y)
}

// Distance returns the hyperbolic distance between p and q in a disk of the
// given radius, using the closed form 2·atanh(|p-q| / |1 - conj(p)q|) on the
// unit disk.
func Distance(p, q Point, radius float64) float64 {
	a := p.Complex() / complex(radius, 0)
	b := q.Complex() / complex(radius, 0)
	den := cmplx.Abs(1 - cmplx.Conj(a)*b)
	if den == 0 {
		return math.Inf(1)
	}
	return 2 * math.Atanh(cmplx.Abs(a-b)/den)
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

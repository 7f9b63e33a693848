package hyper

import (
	"errors"
	"math"
	"testing"
)

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func assertNear(t *testing.T, name string, got, want Point, tol float64) {
	t.Helper()
	if !got.Near(want, tol) {
		t.Errorf("%s: got %v, want %v", name, got, want)
	}
}

func TestArgumentNormalization(t *testing.T) {
	points := []Point{
		{X: 1, Y: 0},
		{X: 0, Y: 1},
		{X: -1, Y: 0},
		{X: 0, Y: -1},
		{X: 3, Y: -4},
		{X: -0.5, Y: -0.25},
		{X: 1, Y: -1e-300},
	}
	for _, p := range points {
		arg, ok := p.Argument()
		if !ok {
			t.Fatalf("%v: argument missing", p)
		}
		if arg < 0 || arg >= 2*math.Pi {
			t.Errorf("%v: argument %v outside [0, 2π)", p, arg)
		}
		for _, k := range []float64{0.1, 2, 37.5} {
			scaled, _ := p.Scale(k).Argument()
			if !approx(arg, scaled, 1e-12) {
				t.Errorf("%v scaled by %v: argument %v, want %v", p, k, scaled, arg)
			}
		}
	}

	if _, ok := (Point{}).Argument(); ok {
		t.Error("origin should have no argument")
	}
}

func TestIsOnADiameterWithSymmetric(t *testing.T) {
	var pts []Point
	for _, x := range []float64{-60, -10, 0.5, 25, 70} {
		for _, y := range []float64{-45, -0.2, 0, 15, 50} {
			pts = append(pts, Point{X: x, Y: y})
		}
	}
	for _, p := range pts {
		for _, q := range pts {
			pq, err1 := p.IsOnADiameterWith(q, DiameterTolerance)
			qp, err2 := q.IsOnADiameterWith(p, DiameterTolerance)
			if err1 != nil || err2 != nil {
				t.Fatalf("%v, %v: unexpected errors %v, %v", p, q, err1, err2)
			}
			if pq != qp {
				t.Errorf("%v, %v: asymmetric result %v vs %v", p, q, pq, qp)
			}
		}
	}
}

func TestIsOnADiameterWith(t *testing.T) {
	tests := []struct {
		name string
		p, q Point
		want bool
	}{
		{"same ray", Point{X: 10, Y: 10}, Point{X: 30, Y: 30}, true},
		{"opposite rays", Point{X: 10, Y: 10}, Point{X: -30, Y: -30}, true},
		{"across the seam", Point{X: 10, Y: 1e-4}, Point{X: 10, Y: -1e-4}, true},
		{"perpendicular", Point{X: 10, Y: 0}, Point{X: 0, Y: 10}, false},
		{"one origin", Point{}, Point{X: 3, Y: 7}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.p.IsOnADiameterWith(tt.q, DiameterTolerance)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := (Point{}).IsOnADiameterWith(Point{}, DiameterTolerance); !errors.Is(err, ErrDegenerate) {
		t.Errorf("two origins: got %v, want ErrDegenerate", err)
	}
}

func TestDiameterEndpoints(t *testing.T) {
	const radius = 100
	for _, p := range []Point{{X: 5, Y: 0}, {X: -3, Y: 4}, {X: 0, Y: -20}, {X: -7, Y: -7}} {
		ends, err := p.DiameterEndpoints(radius)
		if err != nil {
			t.Fatalf("%v: %v", p, err)
		}
		u, v := ends[0], ends[1]
		if !approx(u.Modulus(), radius, 1e-9) {
			t.Errorf("%v: |u| = %v, want %v", p, u.Modulus(), radius)
		}
		assertNear(t, "antipode", v, u.Scale(-1), 1e-9)
		ua, _ := u.Argument()
		va, _ := v.Argument()
		if !(ua < va) {
			t.Errorf("%v: endpoints out of order, args %v and %v", p, ua, va)
		}
	}

	if _, err := (Point{}).DiameterEndpoints(radius); !errors.Is(err, ErrDegenerate) {
		t.Errorf("origin: got %v, want ErrDegenerate", err)
	}
}

func TestDividedBy(t *testing.T) {
	got, err := Point{X: 1, Y: 2}.DividedBy(Point{X: 3, Y: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertNear(t, "quotient", got, Point{X: 11.0 / 25, Y: 2.0 / 25}, 1e-15)

	if _, err := (Point{X: 1}).DividedBy(Point{}); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("got %v, want ErrDivisionByZero", err)
	}
}

func TestComplexArithmetic(t *testing.T) {
	p := Point{X: 2, Y: -1}
	q := Point{X: -3, Y: 5}
	if got := p.Times(q); got != FromComplex(p.Complex()*q.Complex()) {
		t.Errorf("Times: got %v", got)
	}
	if got := p.Plus(q); got != (Point{X: -1, Y: 4}) {
		t.Errorf("Plus: got %v", got)
	}
	if got := p.Minus(q); got != (Point{X: 5, Y: -6}) {
		t.Errorf("Minus: got %v", got)
	}
	if got := p.Conjugate(); got != (Point{X: 2, Y: 1}) {
		t.Errorf("Conjugate: got %v", got)
	}
	if !p.IsEqualTo(Point{X: 2, Y: -1, Selected: true}) {
		t.Error("IsEqualTo should ignore drawing attributes")
	}
	if p.IsEqualTo(Point{X: 2, Y: -1 + 1e-12}) {
		t.Error("IsEqualTo should be exact")
	}
	if !p.Coincides(Point{X: 2, Y: -1 + 1e-12}) {
		t.Error("Coincides should absorb rounding noise")
	}
}

func TestMovedKeepsStyle(t *testing.T) {
	p := Point{X: 1, Y: 2, Selected: true, FillStyle: "black", AnchorRadius: 7}
	got := p.Moved(3, -4)
	want := Point{X: 4, Y: -2, Selected: true, FillStyle: "black", AnchorRadius: 7}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if p.X != 1 || p.Y != 2 {
		t.Error("receiver was modified")
	}
}

func TestPointClicked(t *testing.T) {
	p := Point{X: 10, Y: 10, AnchorRadius: 5}
	if !p.PointClicked(12, 13) {
		t.Error("expected hit inside the anchor")
	}
	if p.PointClicked(15, 10) {
		t.Error("boundary of the anchor circle should not count as a hit")
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		p    Point
		want string
	}{
		{Point{X: 25, Y: -50}, "0.25 - 0.5i"},
		{Point{X: -12.345, Y: 67.891}, "-0.12 + 0.68i"},
		{Point{X: -0.1, Y: -0.1}, "0 + 0i"},
	}
	for _, tt := range tests {
		if got := tt.p.Label(100); got != tt.want {
			t.Errorf("Label(%v) = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestDistance(t *testing.T) {
	const radius = 100
	// d(0, r) = 2 atanh(r) on the unit disk.
	got := Distance(Point{}, Point{X: 50}, radius)
	if want := 2 * math.Atanh(0.5); !approx(got, want, 1e-12) {
		t.Errorf("got %v, want %v", got, want)
	}
	a, b := Point{X: 10, Y: -20}, Point{X: -35, Y: 40}
	if !approx(Distance(a, b, radius), Distance(b, a, radius), 1e-12) {
		t.Error("distance is not symmetric")
	}
}

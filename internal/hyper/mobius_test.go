package hyper

import (
	"errors"
	"math"
	"testing"
)

var samplePoints = []Point{
	{X: 0, Y: 0},
	{X: 30, Y: 0},
	{X: -12, Y: 47},
	{X: 65, Y: -40},
	{X: -80, Y: -25},
	{X: 5, Y: 93},
}

func apply(t *testing.T, m Mobius, p Point) Point {
	t.Helper()
	got, err := m.ApplyPoint(p)
	if err != nil {
		t.Fatalf("apply to %v: %v", p, err)
	}
	return got
}

func TestRotateByZeroIsIdentity(t *testing.T) {
	for _, c := range samplePoints {
		m := Rotate(c, 0, 100)
		for _, p := range samplePoints {
			assertNear(t, "image", apply(t, m, p), p, 1e-9)
		}
	}
}

func TestRotateFixesCenter(t *testing.T) {
	for _, c := range samplePoints {
		for _, theta := range []float64{0.3, math.Pi / 2, 2, 5.9} {
			assertNear(t, "center", apply(t, Rotate(c, theta, 100), c), c, 1e-9)
		}
	}
}

func TestRotateComposes(t *testing.T) {
	c := Point{X: 20, Y: -35}
	r1, r2 := Rotate(c, 0.7, 100), Rotate(c, 1.9, 100)
	both := Rotate(c, 0.7+1.9, 100)
	for _, p := range samplePoints {
		step := apply(t, r2, apply(t, r1, p))
		assertNear(t, "composed", step, apply(t, both, p), 1e-9)
		assertNear(t, "Compose", apply(t, r2.Compose(r1), p), step, 1e-9)
	}
}

func TestHalfTurnTwiceAboutOrigin(t *testing.T) {
	m := Rotate(Point{}, math.Pi, 100)
	for _, p := range samplePoints {
		assertNear(t, "full turn", apply(t, m, apply(t, m, p)), p, 1e-9)
	}
}

func TestRotateIsCounterclockwiseAtOrigin(t *testing.T) {
	got := apply(t, Rotate(Point{}, math.Pi/2, 100), Point{X: 40})
	assertNear(t, "quarter turn", got, Point{Y: 40}, 1e-9)
}

func TestTranslateFixesIdealEndpoints(t *testing.T) {
	axes := [][2]Point{
		{NewPoint(10, 0), NewPoint(0, 10)},
		{NewPoint(-30, -30), NewPoint(20, 20)},
		{NewPoint(50, 0), NewPoint(0, 0)},
		{NewPoint(-60, 15), NewPoint(35, -45)},
	}
	for _, ax := range axes {
		axis := mustLine(t, ax[0], ax[1])
		m, err := Translate(axis, 0.8)
		if err != nil {
			t.Fatal(err)
		}
		ends, _ := axis.IdealEndpoints(false)
		for _, e := range ends {
			assertNear(t, "ideal endpoint", apply(t, m, e), e, 1e-9)
		}
	}
}

func TestTranslateCarriesPoint1ToPoint2(t *testing.T) {
	axes := [][2]Point{
		{NewPoint(10, 0), NewPoint(0, 10)},
		{NewPoint(0, 10), NewPoint(10, 0)},
		{NewPoint(-30, -30), NewPoint(20, 20)},
		{NewPoint(80, 0), NewPoint(90, 0)},
		{NewPoint(90, 0), NewPoint(80, 0)},
		{NewPoint(0, 0), NewPoint(0, -60)},
		{NewPoint(85, 20), NewPoint(90, 25)},
	}
	for _, ax := range axes {
		axis := mustLine(t, ax[0], ax[1])
		d, err := axis.HypDist()
		if err != nil {
			t.Fatal(err)
		}
		m, err := Translate(axis, d)
		if err != nil {
			t.Fatal(err)
		}
		assertNear(t, "translated point1", apply(t, m, ax[0]), ax[1], 1e-6)

		back, _ := Translate(axis, -d)
		assertNear(t, "translated back", apply(t, back, ax[1]), ax[0], 1e-6)
	}
}

func TestIsometriesPreserveDistance(t *testing.T) {
	axis := mustLine(t, NewPoint(-60, 15), NewPoint(35, -45))
	tr, err := Translate(axis, 1.3)
	if err != nil {
		t.Fatal(err)
	}
	maps := map[string]Mobius{
		"rotate":    Rotate(Point{X: 25, Y: 40}, 2.2, 100),
		"translate": tr,
	}
	for name, m := range maps {
		for i, p := range samplePoints {
			for _, q := range samplePoints[i+1:] {
				want := Distance(p, q, 100)
				got := Distance(apply(t, m, p), apply(t, m, q), 100)
				if !approx(got, want, 1e-7) {
					t.Errorf("%s: d(%v, %v) = %v after map, %v before", name, p, q, got, want)
				}
			}
		}
	}
}

func TestApplyLineAndPolygon(t *testing.T) {
	m := Rotate(Point{X: -10, Y: 5}, 1.1, 100)

	l := mustLine(t, NewPoint(10, 0), NewPoint(0, 10))
	l.StrokeStyle = "blue"
	l.LineWidth = 4
	nl, err := m.ApplyLine(l)
	if err != nil {
		t.Fatal(err)
	}
	if nl.StrokeStyle != "blue" || nl.LineWidth != 4 || !nl.Segment {
		t.Errorf("style not carried over: %+v", nl)
	}
	assertNear(t, "point1", nl.Point1, apply(t, m, l.Point1), 1e-12)

	a, b, c := NewPoint(10, 10), NewPoint(-30, 20), NewPoint(5, -40)
	pg := mustPolygon(t, mustLine(t, a, b), mustLine(t, b, c), mustLine(t, c, a))
	pg.FillStyle = "green"
	shape, err := m.Apply(pg)
	if err != nil {
		t.Fatal(err)
	}
	npg, ok := shape.(Polygon)
	if !ok {
		t.Fatalf("Apply returned %T", shape)
	}
	checkClosed(t, npg)
	if npg.FillStyle != "green" {
		t.Errorf("fill style = %q", npg.FillStyle)
	}
}

func TestApplyAtPole(t *testing.T) {
	m := Mobius{A: 1, C: 1, D: 0}
	if _, err := m.ApplyPoint(Point{}); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("got %v, want ErrDivisionByZero", err)
	}
}

func TestIdentityAndScaling(t *testing.T) {
	for _, p := range samplePoints {
		assertNear(t, "identity", apply(t, Identity(), p), p, 1e-12)
	}
	// z -> z + 0.1 on the unit disk is z -> z + 10 on a disk of radius 100.
	m := NewMobius(1, 0.1, 0, 1, 100)
	assertNear(t, "shift", apply(t, m, Point{X: 5}), Point{X: 15}, 1e-12)
}

package hyper

import (
	"errors"
	"math"
	"testing"
)

func testConfig() Config {
	cfg := DefaultConfig(100)
	cfg.Segment = true
	return cfg
}

func mustLine(t *testing.T, p1, p2 Point) Line {
	t.Helper()
	l, err := NewLine(p1, p2, testConfig())
	if err != nil {
		t.Fatalf("NewLine(%v, %v): %v", p1, p2, err)
	}
	return l
}

func TestNewLineArcBetweenAxes(t *testing.T) {
	l := mustLine(t, NewPoint(10, 0), NewPoint(0, 10))
	if l.Diameter {
		t.Fatal("expected an arc")
	}
	if !l.Segment {
		t.Error("segment flag not taken from config")
	}
	if l.Anchor1.X != 10 || l.Anchor1.Y != 0 {
		t.Errorf("anchor1 = %v, want (10, 0)", l.Anchor1)
	}
	if l.Anchor2.X != 0 || l.Anchor2.Y != 10 {
		t.Errorf("anchor2 = %v, want (0, 10)", l.Anchor2)
	}
	if !l.Counterclockwise {
		t.Error("expected counterclockwise drawing for anchors a quarter turn apart")
	}
}

func TestNewLineThroughOrigin(t *testing.T) {
	l := mustLine(t, NewPoint(50, 0), NewPoint(0, 0))
	if !l.Diameter {
		t.Fatal("expected a diameter")
	}
	assertNear(t, "endpoint1", l.Endpoint1, Point{X: 100}, 1e-9)
	assertNear(t, "endpoint2", l.Endpoint2, Point{X: -100}, 1e-9)
	if !l.Anchor1.IsZero() {
		t.Errorf("anchor1 = %v, want the origin", l.Anchor1)
	}
	if l.Point1.X != 50 {
		t.Errorf("click order lost: point1 = %v", l.Point1)
	}
}

func TestNewLineNearlyCollinear(t *testing.T) {
	l := mustLine(t, NewPoint(50, 0), NewPoint(-30, 0.1))
	if !l.Diameter {
		t.Fatal("expected a diameter within the angular tolerance")
	}
	if l.Anchor1.X != -30 {
		t.Errorf("anchor1 = %v, want the point nearer the center", l.Anchor1)
	}
}

func TestNewLineRejectsCoincidentPoints(t *testing.T) {
	_, err := NewLine(NewPoint(3, 4), NewPoint(3, 4), testConfig())
	if !errors.Is(err, ErrDegenerate) {
		t.Fatalf("got %v, want ErrDegenerate", err)
	}
}

func TestArcIsOrthogonalToBoundary(t *testing.T) {
	pairs := [][2]Point{
		{NewPoint(10, 0), NewPoint(0, 10)},
		{NewPoint(-40, 20), NewPoint(30, 60)},
		{NewPoint(80, -10), NewPoint(-5, -90)},
		{NewPoint(-70, -10), NewPoint(-20, 30)},
	}
	for _, pr := range pairs {
		l := mustLine(t, pr[0], pr[1])
		if l.Diameter {
			t.Fatalf("%v: expected an arc", pr)
		}
		c := l.Center.Modulus()
		if !approx(c*c, 100*100+l.Radius*l.Radius, 1e-6) {
			t.Errorf("%v: circle not orthogonal, |c|²=%v r²+R²=%v", pr, c*c, 100*100+l.Radius*l.Radius)
		}
		for _, a := range l.Anchors() {
			if !approx(a.DistanceTo(l.Center), l.Radius, 1e-9) {
				t.Errorf("%v: anchor %v off the circle", pr, a)
			}
		}
	}
}

func TestLineZeroMoveIsIdempotent(t *testing.T) {
	pairs := [][2]Point{
		{NewPoint(10, 0), NewPoint(0, 10)},
		{NewPoint(50, 0), NewPoint(0, 0)},
		{NewPoint(20, 20), NewPoint(-40, -40)},
		{NewPoint(-60, 15), NewPoint(35, -45)},
	}
	for _, pr := range pairs {
		l := mustLine(t, pr[0], pr[1])
		for _, sel := range []bool{false, true} {
			src := l
			if sel {
				src, _ = l.SelectAt(pr[0].X, pr[0].Y, false)
			}
			got, err := src.Moved(0, 0)
			if err != nil {
				t.Fatalf("%v: %v", pr, err)
			}
			if got.Diameter != l.Diameter {
				t.Fatalf("%v: diameter flag changed", pr)
			}
			if l.Diameter {
				assertNear(t, "endpoint1", got.Endpoint1, l.Endpoint1, 1e-9)
				assertNear(t, "endpoint2", got.Endpoint2, l.Endpoint2, 1e-9)
				continue
			}
			assertNear(t, "center", got.Center, l.Center, 1e-9)
			if !approx(got.Radius, l.Radius, 1e-9) {
				t.Errorf("%v: radius %v, want %v", pr, got.Radius, l.Radius)
			}
		}
	}
}

func TestLineMovedShiftsSelectedAnchorOnly(t *testing.T) {
	l := mustLine(t, NewPoint(-20, 30), NewPoint(40, 10))
	l, ok := l.SelectAt(-19, 31, false)
	if !ok || !l.Selected {
		t.Fatal("expected the first point to be selected")
	}
	moved, err := l.Moved(5, -5)
	if err != nil {
		t.Fatal(err)
	}
	assertNear(t, "point1", moved.Point1, Point{X: -15, Y: 25}, 1e-12)
	assertNear(t, "point2", moved.Point2, Point{X: 40, Y: 10}, 1e-12)
	if !moved.Selected || !moved.Point1.Selected {
		t.Error("selection lost while dragging")
	}
	if l.Point1.X != -20 {
		t.Error("receiver was modified")
	}
}

func TestIdealEndpoints(t *testing.T) {
	tests := []struct {
		name   string
		p1, p2 Point
	}{
		{"arc", NewPoint(10, 0), NewPoint(0, 10)},
		{"arc reversed", NewPoint(0, 10), NewPoint(10, 0)},
		{"diameter", NewPoint(20, 0), NewPoint(60, 0)},
		{"diameter near boundary", NewPoint(80, 0), NewPoint(90, 0)},
		{"arc near boundary", NewPoint(85, 20), NewPoint(90, 25)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := mustLine(t, tt.p1, tt.p2)
			ends, err := l.IdealEndpoints(true)
			if err != nil {
				t.Fatal(err)
			}
			for _, e := range ends {
				if !approx(e.Modulus(), 1, 1e-9) {
					t.Errorf("endpoint %v not on the unit circle", e)
				}
				if !l.Diameter && !approx(e.Scale(100).DistanceTo(l.Center), l.Radius, 1e-6) {
					t.Errorf("endpoint %v not on the geodesic", e)
				}
			}
			// The first endpoint lies behind Point1 along the geodesic.
			d1 := Distance(tt.p1, ends[0].Scale(0.999999*100), 100)
			d2 := Distance(tt.p2, ends[0].Scale(0.999999*100), 100)
			if !(d1 < d2) {
				t.Errorf("endpoints not in click order: %v", ends)
			}
		})
	}

	l := mustLine(t, NewPoint(80, 0), NewPoint(90, 0))
	ends, _ := l.IdealEndpoints(false)
	assertNear(t, "behind", ends[0], Point{X: -100}, 1e-9)
	assertNear(t, "ahead", ends[1], Point{X: 100}, 1e-9)
}

func TestHypDistMatchesDistance(t *testing.T) {
	pairs := [][2]Point{
		{NewPoint(10, 0), NewPoint(0, 10)},
		{NewPoint(50, 0), NewPoint(0, 0)},
		{NewPoint(80, 0), NewPoint(90, 0)},
		{NewPoint(-60, 15), NewPoint(35, -45)},
		{NewPoint(5, 5), NewPoint(6, 5)},
	}
	for _, pr := range pairs {
		l := mustLine(t, pr[0], pr[1])
		got, err := l.HypDist()
		if err != nil {
			t.Fatalf("%v: %v", pr, err)
		}
		want := Distance(pr[0], pr[1], 100)
		if !approx(got, want, 1e-9) {
			t.Errorf("%v: HypDist = %v, Distance = %v", pr, got, want)
		}
	}
}

func TestDeselected(t *testing.T) {
	l := mustLine(t, NewPoint(10, 0), NewPoint(0, 10))
	l, _ = l.SelectAt(0, 10, false)
	if !l.Anchor2.Selected {
		t.Fatal("anchor copy not synced with the selected point")
	}
	l = l.Deselected()
	if l.Selected || l.Anchor1.Selected || l.Anchor2.Selected || l.Point2.Selected {
		t.Error("selection not cleared")
	}
	if math.IsNaN(l.Radius) {
		t.Error("geometry lost")
	}
}

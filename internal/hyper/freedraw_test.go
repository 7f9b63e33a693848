package hyper

import "testing"

func sketch(t *testing.T) FreeDrawing {
	t.Helper()
	fd := NewFreeDrawing(NewPoint(-20, 10), false, testConfig())
	for _, p := range []Point{NewPoint(-10, 15), NewPoint(0, 12), NewPoint(12, 4), NewPoint(20, -8)} {
		fd = fd.Extend(p)
	}
	return fd
}

func TestFreeDrawingExtendDoesNotAlias(t *testing.T) {
	fd := sketch(t)
	a := fd.Extend(NewPoint(30, -10))
	b := fd.Extend(NewPoint(-30, 40))
	if a.End().X != 30 || b.End().X != -30 {
		t.Errorf("extensions share storage: %v, %v", a.End(), b.End())
	}
	if len(fd.Points) != 5 {
		t.Errorf("receiver grew to %d samples", len(fd.Points))
	}
}

func TestFreeDrawingZeroMoveCopies(t *testing.T) {
	fd := sketch(t)
	cp, err := fd.Moved(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	cp.Points[2].X = 99
	if fd.Points[2].X == 99 {
		t.Error("zero move shares samples with the original")
	}
}

func TestFreeDrawingDragKeepsShape(t *testing.T) {
	fd := sketch(t)
	if _, ok := fd.SelectAt(0, 12); ok {
		t.Fatal("interior samples are not handles")
	}
	sel, ok := fd.SelectAt(-19, 11)
	if !ok || !sel.Start().Selected {
		t.Fatal("expected the start handle to be selected")
	}

	moved, err := sel.Moved(6, -3)
	if err != nil {
		t.Fatal(err)
	}
	assertNear(t, "start handle", moved.Start(), fd.Start().Moved(6, -3), 1e-6)
	if !moved.Start().Selected {
		t.Error("handle selection lost")
	}
	for i := range fd.Points {
		for j := i + 1; j < len(fd.Points); j++ {
			want := Distance(fd.Points[i], fd.Points[j], 100)
			got := Distance(moved.Points[i], moved.Points[j], 100)
			if !approx(got, want, 1e-9) {
				t.Errorf("d(%d, %d) = %v, want %v", i, j, got, want)
			}
		}
	}
}

func TestFreeDrawingDragEndHandle(t *testing.T) {
	fd := sketch(t)
	sel, ok := fd.SelectAt(20, -8)
	if !ok {
		t.Fatal("expected the end handle to be selected")
	}
	moved, err := sel.Moved(-4, -4)
	if err != nil {
		t.Fatal(err)
	}
	assertNear(t, "end handle", moved.End(), Point{X: 16, Y: -12}, 1e-6)
	if moved = moved.Deselected(); moved.Selected || moved.End().Selected {
		t.Error("selection not cleared")
	}
}

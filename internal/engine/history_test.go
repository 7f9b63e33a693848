package engine

import (
	"testing"

	"github.com/hypdisk/hypdisk/internal/hyper"
)

func TestHistoryLimit(t *testing.T) {
	h := NewHistory(2)
	for i := range 3 {
		h.Push(snapshot{clicked: []hyper.Point{hyper.NewPoint(float64(i), 0)}})
	}
	if h.Len() != 2 {
		t.Fatalf("len = %d, want 2", h.Len())
	}
	s, ok := h.Pop()
	if !ok || s.clicked[0].X != 2 {
		t.Errorf("newest snapshot = %+v", s)
	}
	s, _ = h.Pop()
	if s.clicked[0].X != 1 {
		t.Errorf("oldest kept snapshot = %+v", s)
	}
	if _, ok := h.Pop(); ok {
		t.Error("pop on empty history succeeded")
	}
}

func TestSceneCloneIsIndependent(t *testing.T) {
	cfg := hyper.DefaultConfig(100)
	l, err := hyper.NewLine(hyper.NewPoint(10, 0), hyper.NewPoint(0, 10), cfg)
	if err != nil {
		t.Fatal(err)
	}
	sc := NewScene()
	lineID := sc.Add(l)
	fdID := sc.Add(hyper.NewFreeDrawing(hyper.NewPoint(1, 1), false, cfg).Extend(hyper.NewPoint(2, 2)))

	cp := sc.Clone()
	l.StrokeStyle = "red"
	sc.Replace(lineID, l)
	sc.Remove(fdID)

	got, _ := cp.Get(lineID)
	if got.(hyper.Line).StrokeStyle != "black" {
		t.Error("clone follows later replacements")
	}
	if cp.Len() != 2 || sc.Len() != 1 {
		t.Errorf("lens = %d, %d", cp.Len(), sc.Len())
	}
	if ids := cp.OfKind(hyper.KindFreeDrawing); len(ids) != 1 || ids[0] != fdID {
		t.Errorf("free drawings in clone = %v", ids)
	}
}

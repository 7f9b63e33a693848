package live

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/hypdisk/hypdisk/internal/engine"
	"github.com/hypdisk/hypdisk/internal/typeid"
)

// testSettings gives a 210 pixel canvas with a disk of radius 100, so pixel
// (105+x, 105-y) is disk point (x, y).
func testSettings() engine.Settings {
	s := engine.DefaultSettings()
	s.CanvasSize = 210
	return s
}

func msg(t *testing.T, typ string, payload any) *Message {
	t.Helper()
	m := &Message{Type: typ}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatal(err)
		}
		m.Payload = data
	}
	return m
}

func frameOf(t *testing.T, m *Message) FramePayload {
	t.Helper()
	if m.Type != TypeFrame {
		t.Fatalf("reply type = %q, want %q", m.Type, TypeFrame)
	}
	var f FramePayload
	if err := json.Unmarshal(m.Payload, &f); err != nil {
		t.Fatal(err)
	}
	return f
}

func TestSessionDrawsSegment(t *testing.T) {
	s := NewSession(testSettings())
	if err := typeid.Validate(s.ID(), typeid.PrefixSession); err != nil {
		t.Fatal(err)
	}

	steps := []*Message{
		msg(t, TypeToolSet, StringPayload{Value: "segment"}),
		msg(t, TypeClick, PointerPayload{X: 115, Y: 105}),
		msg(t, TypeClick, PointerPayload{X: 105, Y: 95}),
	}
	var last *Message
	for _, m := range steps {
		reply, err := s.Handle(m)
		if err != nil {
			t.Fatalf("%s: %v", m.Type, err)
		}
		last = reply
	}

	f := frameOf(t, last)
	if f.Tool != "segment" || f.History != 2 || f.Mode != "idle" {
		t.Errorf("frame = tool %q history %d mode %q", f.Tool, f.History, f.Mode)
	}
	paths := 0
	for _, c := range f.Commands {
		if c.Op == "path" && strings.HasPrefix(c.ObjectID, typeid.PrefixLine+"_") {
			paths++
		}
	}
	if paths != 1 {
		t.Errorf("found %d line paths, want 1", paths)
	}
	if s.Seq() != 3 {
		t.Errorf("seq = %d, want 3", s.Seq())
	}

	hit, err := s.Handle(msg(t, TypeHitTest, PointerPayload{X: 115, Y: 105}))
	if err != nil {
		t.Fatal(err)
	}
	var h HitTestPayload
	if err := json.Unmarshal(hit.Payload, &h); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(h.ObjectID, typeid.PrefixLine+"_") {
		t.Errorf("hit = %q, want a line id", h.ObjectID)
	}
}

func TestSessionState(t *testing.T) {
	s := NewSession(testSettings())
	if _, err := s.Handle(msg(t, TypeWidthSet, NumberPayload{Value: 3})); err != nil {
		t.Fatal(err)
	}
	reply, err := s.Handle(msg(t, TypeStateGet, nil))
	if err != nil {
		t.Fatal(err)
	}
	var state struct {
		Tool  string `json:"tool"`
		Style struct {
			LineWidth float64 `json:"lineWidth"`
		} `json:"style"`
	}
	if err := json.Unmarshal(reply.Payload, &state); err != nil {
		t.Fatal(err)
	}
	if reply.Type != TypeState || state.Tool != "clickDrag" || state.Style.LineWidth != 3 {
		t.Errorf("state reply %s %+v", reply.Type, state)
	}
}

func TestSessionAnimates(t *testing.T) {
	s := NewSession(testSettings())
	for _, m := range []*Message{
		msg(t, TypeToolSet, StringPayload{Value: "rotate"}),
		msg(t, TypeClick, PointerPayload{X: 105, Y: 105}),
		msg(t, TypeSpeedSet, NumberPayload{Value: 0.01}),
		msg(t, TypePlayToggle, nil),
		msg(t, TypeTick, TickPayload{Timestamp: 16}),
	} {
		if _, err := s.Handle(m); err != nil {
			t.Fatalf("%s: %v", m.Type, err)
		}
	}
	reply, err := s.Handle(msg(t, TypeTick, TickPayload{Timestamp: 32}))
	if err != nil {
		t.Fatal(err)
	}
	if f := frameOf(t, reply); !f.Playing || f.Mode != "transforming" {
		t.Errorf("frame playing=%v mode=%q", f.Playing, f.Mode)
	}
}

func TestSessionRejects(t *testing.T) {
	tests := []struct {
		name string
		m    *Message
		want error
	}{
		{"unknown type", &Message{Type: "teleport"}, ErrUnknownType},
		{"missing payload", &Message{Type: TypeClick}, ErrEmptyPayload},
		{"unknown tool", msg(t, TypeToolSet, StringPayload{Value: "lasso"}), engine.ErrUnknownTool},
		{"nothing to undo", msg(t, TypeUndo, nil), engine.ErrNothingToUndo},
		{"nothing to play", msg(t, TypePlayToggle, nil), engine.ErrNothingToPlay},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(testSettings())
			if _, err := s.Handle(tt.m); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
			if s.Seq() != 0 {
				t.Error("rejected message advanced seq")
			}
		})
	}

	s := NewSession(testSettings())
	if _, err := s.Handle(&Message{Type: TypeClick, Payload: json.RawMessage(`{"x":"left"}`)}); err == nil || errors.Is(err, ErrEmptyPayload) {
		t.Errorf("got %v, want an invalid payload error", err)
	}
}

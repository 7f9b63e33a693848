package live

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/hypdisk/hypdisk/internal/engine"
	"github.com/hypdisk/hypdisk/internal/typeid"
)

var (
	ErrUnknownType  = errors.New("live: unknown message type")
	ErrEmptyPayload = errors.New("live: message needs a payload")
)

// Session holds one editing session. The websocket client drives it; the
// frame endpoint reads it concurrently.
type Session struct {
	mu     sync.Mutex
	id     string
	engine *engine.Engine
	seq    int64
}

// NewSession creates a session with a fresh engine.
func NewSession(s engine.Settings) *Session {
	return &Session{
		id:     typeid.NewSessionID(),
		engine: engine.NewEngine(s),
	}
}

func (s *Session) ID() string { return s.id }

// Seq returns the number of messages applied so far.
func (s *Session) Seq() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq
}

// Frame returns the current draw commands.
func (s *Session) Frame() []engine.DrawCommand {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Render()
}

// Welcome describes the session to a newly connected client.
func (s *Session) Welcome(clientID string) *Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	tools := engine.Tools()
	names := make([]string, len(tools))
	for i, t := range tools {
		names[i] = string(t)
	}
	view := s.engine.Viewport()
	return newMessage(TypeWelcome, s.id, s.seq, WelcomePayload{
		SessionID: s.id,
		ClientID:  clientID,
		Size:      view.Size,
		Radius:    view.Radius(),
		Tools:     names,
	})
}

// FrameMessage returns the current frame as a message.
func (s *Session) FrameMessage() *Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frameLocked()
}

func (s *Session) frameLocked() *Message {
	return newMessage(TypeFrame, s.id, s.seq, FramePayload{
		Commands: s.engine.Render(),
		Mode:     s.engine.Mode().String(),
		Playing:  s.engine.Playing(),
		Tool:     string(s.engine.Tool()),
		History:  s.engine.HistoryLen(),
	})
}

// Handle applies msg to the engine and returns the reply: the new frame,
// or the state or hit-test result for queries.
func (s *Session) Handle(msg *Message) (*Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch msg.Type {
	case TypeStateGet:
		return &Message{
			Type:      TypeState,
			SessionID: s.id,
			Seq:       s.seq,
			Payload:   json.RawMessage(s.engine.StateJSON()),
		}, nil
	case TypeHitTest:
		var p PointerPayload
		if err := decode(msg.Payload, &p); err != nil {
			return nil, err
		}
		x, y := s.engine.Viewport().ToDisk(p.X, p.Y)
		return newMessage(TypeHitResult, s.id, s.seq, HitTestPayload{ObjectID: s.engine.HitTest(x, y)}), nil
	}

	if err := s.applyLocked(msg); err != nil {
		return nil, err
	}
	s.seq++
	return s.frameLocked(), nil
}

// applyLocked applies the message without locking (caller must hold lock)
func (s *Session) applyLocked(msg *Message) error {
	e := s.engine
	switch msg.Type {
	case TypePointerDown, TypePointerMove, TypePointerUp, TypeClick:
		var p PointerPayload
		if err := decode(msg.Payload, &p); err != nil {
			return err
		}
		x, y := e.Viewport().ToDisk(p.X, p.Y)
		switch msg.Type {
		case TypePointerDown:
			return e.PointerDown(x, y, p.Shift)
		case TypePointerMove:
			return e.PointerMove(x, y)
		case TypePointerUp:
			return e.PointerUp(x, y)
		default:
			return e.Click(x, y, p.Shift)
		}
	case TypePointerLeave:
		e.Leave()
	case TypeToolSet, TypeTargetSet, TypeColorSet:
		var p StringPayload
		if err := decode(msg.Payload, &p); err != nil {
			return err
		}
		switch msg.Type {
		case TypeToolSet:
			return e.SetTool(p.Value)
		case TypeTargetSet:
			return e.SetColorTarget(p.Value)
		default:
			e.SetColor(p.Value)
		}
	case TypeWidthSet, TypeOpacitySet, TypeSpeedSet, TypeResize:
		var p NumberPayload
		if err := decode(msg.Payload, &p); err != nil {
			return err
		}
		switch msg.Type {
		case TypeWidthSet:
			return e.SetLineWidth(p.Value)
		case TypeOpacitySet:
			e.SetFillOpacity(p.Value)
		case TypeSpeedSet:
			e.SetSpeed(p.Value)
		default:
			return e.Resize(p.Value)
		}
	case TypeTick:
		var p TickPayload
		if err := decode(msg.Payload, &p); err != nil {
			return err
		}
		e.Advance(p.Timestamp)
	case TypePlayToggle:
		return e.TogglePlay()
	case TypeUndo:
		return e.Undo()
	case TypeDelete:
		return e.Delete()
	case TypeClear:
		e.Clear()
	default:
		return fmt.Errorf("%w: %s", ErrUnknownType, msg.Type)
	}
	return nil
}

func decode(raw json.RawMessage, v any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return ErrEmptyPayload
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	return nil
}

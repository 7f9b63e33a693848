package live

import (
	"encoding/json"

	"github.com/hypdisk/hypdisk/internal/engine"
)

type Message struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId,omitempty"`
	Seq       int64           `json:"seq,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

const (
	// Connection
	TypeWelcome = "welcome"
	TypeError   = "error"

	// Session output
	TypeFrame = "frame"
	TypeState = "state"

	// Pointer input, in canvas pixels
	TypePointerDown  = "pointer.down"
	TypePointerMove  = "pointer.move"
	TypePointerUp    = "pointer.up"
	TypePointerLeave = "pointer.leave"
	TypeClick        = "click"

	// Editing
	TypeToolSet     = "tool.set"
	TypeTargetSet   = "target.set"
	TypeColorSet    = "color.set"
	TypeWidthSet    = "width.set"
	TypeOpacitySet  = "opacity.set"
	TypeSpeedSet    = "speed.set"
	TypeUndo        = "undo"
	TypeDelete      = "delete"
	TypeClear       = "clear"
	TypeResize      = "resize"
	TypePlayToggle  = "play.toggle"
	TypeTick        = "tick"
	TypeStateGet    = "state.get"
	TypeHitTest     = "hit.test"
	TypeHitResult   = "hit.result"
)

// PointerPayload carries a pointer position in canvas pixels.
type PointerPayload struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Shift bool    `json:"shift,omitempty"`
}

type StringPayload struct {
	Value string `json:"value"`
}

type NumberPayload struct {
	Value float64 `json:"value"`
}

// TickPayload carries an animation frame timestamp in milliseconds.
type TickPayload struct {
	Timestamp float64 `json:"timestamp"`
}

type WelcomePayload struct {
	SessionID string   `json:"sessionId"`
	ClientID  string   `json:"clientId"`
	Size      float64  `json:"size"`
	Radius    float64  `json:"radius"`
	Tools     []string `json:"tools"`
}

type FramePayload struct {
	Commands []engine.DrawCommand `json:"commands"`
	Mode     string               `json:"mode"`
	Playing  bool                 `json:"playing"`
	Tool     string               `json:"tool"`
	History  int                  `json:"history"`
}

type HitTestPayload struct {
	ObjectID string `json:"objectId"`
}

type ErrorPayload struct {
	Seq     int64  `json:"seq,omitempty"`
	Message string `json:"message"`
}

func newMessage(typ, sessionID string, seq int64, payload any) *Message {
	data, _ := json.Marshal(payload)
	return &Message{
		Type:      typ,
		SessionID: sessionID,
		Seq:       seq,
		Payload:   data,
	}
}

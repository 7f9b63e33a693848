package typeid

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

const (
	PrefixPoint       = "pt"
	PrefixLine        = "ln"
	PrefixPolygon     = "pg"
	PrefixFreeDrawing = "fd"
	PrefixSession     = "sess"
)

func New(prefix string) string {
	id := typeid.MustGenerate(prefix)
	return id.String()
}

func NewPointID() string       { return New(PrefixPoint) }
func NewLineID() string        { return New(PrefixLine) }
func NewPolygonID() string     { return New(PrefixPolygon) }
func NewFreeDrawingID() string { return New(PrefixFreeDrawing) }
func NewSessionID() string     { return New(PrefixSession) }

func Validate(id, expectedPrefix string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid typeid %q: %w", id, err)
	}
	if parsed.Prefix() != expectedPrefix {
		return fmt.Errorf("expected prefix %q but got %q in id %q", expectedPrefix, parsed.Prefix(), id)
	}
	return nil
}

// Prefix returns the type prefix of id.
func Prefix(id string) (string, error) {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("invalid typeid %q: %w", id, err)
	}
	return parsed.Prefix(), nil
}

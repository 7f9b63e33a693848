package engine

import "errors"

// Rejected user actions. Callers report these and carry on; the session is
// left as it was before the action.
var (
	ErrNothingToPlay   = errors.New("engine: nothing to play")
	ErrNothingToUndo   = errors.New("engine: nothing to undo")
	ErrNothingSelected = errors.New("engine: select a shape first")
	ErrUnknownTool     = errors.New("engine: unknown tool")
	ErrUnknownTarget   = errors.New("engine: unknown color target")
	ErrOutsideDisk     = errors.New("engine: point outside the disk")
)

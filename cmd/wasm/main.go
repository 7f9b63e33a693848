//go:build js && wasm

package main

import (
	"log/slog"
	"os"
	"syscall/js"

	"github.com/hypdisk/hypdisk/internal/engine"
)

var eng *engine.Engine

func main() {
	engine.SetLogger(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn})))
	eng = engine.NewEngine(engine.DefaultSettings())

	// Create the engine API object
	hypEngine := js.Global().Get("Object").New()

	// --- Commands (frontend → backend) ---
	hypEngine.Set("setTool", js.FuncOf(setTool))
	hypEngine.Set("setColorTarget", js.FuncOf(setColorTarget))
	hypEngine.Set("setColor", js.FuncOf(setColor))
	hypEngine.Set("setLineWidth", js.FuncOf(setLineWidth))
	hypEngine.Set("setFillOpacity", js.FuncOf(setFillOpacity))
	hypEngine.Set("setSpeed", js.FuncOf(setSpeed))
	hypEngine.Set("pointerDown", js.FuncOf(pointerDown))
	hypEngine.Set("pointerMove", js.FuncOf(pointerMove))
	hypEngine.Set("pointerUp", js.FuncOf(pointerUp))
	hypEngine.Set("pointerLeave", js.FuncOf(pointerLeave))
	hypEngine.Set("click", js.FuncOf(click))
	hypEngine.Set("togglePlay", js.FuncOf(togglePlay))
	hypEngine.Set("undo", js.FuncOf(undo))
	hypEngine.Set("delete", js.FuncOf(deleteSelected))
	hypEngine.Set("clear", js.FuncOf(clearAll))
	hypEngine.Set("resize", js.FuncOf(resize))
	hypEngine.Set("tick", js.FuncOf(tick))

	// --- Queries (frontend ← backend) ---
	hypEngine.Set("render", js.FuncOf(render))
	hypEngine.Set("hitTest", js.FuncOf(hitTest))
	hypEngine.Set("getState", js.FuncOf(getState))
	hypEngine.Set("getMode", js.FuncOf(getMode))
	hypEngine.Set("getTool", js.FuncOf(getTool))
	hypEngine.Set("isPlaying", js.FuncOf(isPlaying))

	// Register on global scope
	js.Global().Set("hypEngine", hypEngine)

	// Signal that WASM is ready
	js.Global().Set("hypWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func result(err error) interface{} {
	if err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func missing(what string) interface{} {
	return js.ValueOf(map[string]interface{}{"error": "missing " + what})
}

// pointer reads pixel coordinates and an optional shift flag and converts
// them to disk coordinates.
func pointer(args []js.Value) (x, y float64, shift, ok bool) {
	if len(args) < 2 {
		return 0, 0, false, false
	}
	x, y = eng.Viewport().ToDisk(args[0].Float(), args[1].Float())
	if len(args) > 2 && args[2].Type() == js.TypeBoolean {
		shift = args[2].Bool()
	}
	return x, y, shift, true
}

// --- Command Handlers ---

func setTool(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return missing("tool name")
	}
	return result(eng.SetTool(args[0].String()))
}

func setColorTarget(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return missing("color target")
	}
	return result(eng.SetColorTarget(args[0].String()))
}

func setColor(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return missing("color")
	}
	eng.SetColor(args[0].String())
	return result(nil)
}

func setLineWidth(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return missing("line width")
	}
	return result(eng.SetLineWidth(args[0].Float()))
}

func setFillOpacity(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return missing("opacity")
	}
	eng.SetFillOpacity(args[0].Float())
	return result(nil)
}

func setSpeed(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return missing("speed")
	}
	eng.SetSpeed(args[0].Float())
	return result(nil)
}

func pointerDown(this js.Value, args []js.Value) interface{} {
	x, y, shift, ok := pointer(args)
	if !ok {
		return missing("coordinates")
	}
	return result(eng.PointerDown(x, y, shift))
}

func pointerMove(this js.Value, args []js.Value) interface{} {
	x, y, _, ok := pointer(args)
	if !ok {
		return missing("coordinates")
	}
	return result(eng.PointerMove(x, y))
}

func pointerUp(this js.Value, args []js.Value) interface{} {
	x, y, _, ok := pointer(args)
	if !ok {
		return missing("coordinates")
	}
	return result(eng.PointerUp(x, y))
}

func pointerLeave(this js.Value, args []js.Value) interface{} {
	eng.Leave()
	return nil
}

func click(this js.Value, args []js.Value) interface{} {
	x, y, shift, ok := pointer(args)
	if !ok {
		return missing("coordinates")
	}
	return result(eng.Click(x, y, shift))
}

func togglePlay(this js.Value, args []js.Value) interface{} {
	return result(eng.TogglePlay())
}

func undo(this js.Value, args []js.Value) interface{} {
	return result(eng.Undo())
}

func deleteSelected(this js.Value, args []js.Value) interface{} {
	return result(eng.Delete())
}

func clearAll(this js.Value, args []js.Value) interface{} {
	eng.Clear()
	return result(nil)
}

func resize(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return missing("canvas size")
	}
	return result(eng.Resize(args[0].Float()))
}

func tick(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(eng.RenderJSON())
	}
	return js.ValueOf(eng.Tick(args[0].Float()))
}

// --- Query Handlers ---

func render(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.RenderJSON())
}

func hitTest(this js.Value, args []js.Value) interface{} {
	x, y, _, ok := pointer(args)
	if !ok {
		return js.ValueOf("")
	}
	return js.ValueOf(eng.HitTest(x, y))
}

func getState(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.StateJSON())
}

func getMode(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Mode().String())
}

func getTool(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(string(eng.Tool()))
}

func isPlaying(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Playing())
}

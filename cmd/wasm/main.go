//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/polyplot/polyplot/internal/document"
	"github.com/polyplot/polyplot/internal/engine"
)

var eng *engine.Engine

func main() {
	eng = engine.NewEngine(document.DefaultView(), document.DefaultCanvas())

	// Create the engine API object
	polyplotEngine := js.Global().Get("Object").New()

	// --- Commands (frontend → engine) ---
	polyplotEngine.Set("pointerDown", js.FuncOf(pointerHandler(eng.PointerDown)))
	polyplotEngine.Set("pointerMove", js.FuncOf(pointerHandler(eng.PointerMove)))
	polyplotEngine.Set("pointerUp", js.FuncOf(pointerHandler(eng.PointerUp)))
	polyplotEngine.Set("click", js.FuncOf(pointerHandler(eng.Click)))
	polyplotEngine.Set("contextMenu", js.FuncOf(pointerHandler(eng.ContextMenu)))
	polyplotEngine.Set("loadPreset", js.FuncOf(loadPreset))
	polyplotEngine.Set("reset", js.FuncOf(reset))

	// --- Queries (frontend ← engine) ---
	polyplotEngine.Set("render", js.FuncOf(render))
	polyplotEngine.Set("hitTest", js.FuncOf(hitTest))
	polyplotEngine.Set("evaluate", js.FuncOf(evaluate))
	polyplotEngine.Set("cursor", js.FuncOf(cursor))
	polyplotEngine.Set("getPoints", js.FuncOf(getPoints))
	polyplotEngine.Set("getState", js.FuncOf(getState))

	// Register on global scope
	js.Global().Set("polyplotEngine", polyplotEngine)

	// Signal that WASM is ready
	js.Global().Set("polyplotWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

// --- Command Handlers ---

// pointerHandler adapts an engine pointer method to a JS function taking
// (x, y) canvas pixels and returning whether a redraw is due.
func pointerHandler(fn func(sx, sy float64) bool) func(js.Value, []js.Value) interface{} {
	return func(this js.Value, args []js.Value) interface{} {
		if len(args) < 2 {
			return js.ValueOf(false)
		}
		return js.ValueOf(fn(args[0].Float(), args[1].Float()))
	}
}

func loadPreset(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing preset name"})
	}
	if err := eng.LoadPreset(args[0].String()); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func reset(this js.Value, args []js.Value) interface{} {
	eng.Reset()
	return nil
}

// --- Query Handlers ---

func render(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Render())
}

func hitTest(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf(-1)
	}
	return js.ValueOf(eng.HitTest(args[0].Float(), args[1].Float()))
}

func evaluate(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(0)
	}
	return js.ValueOf(eng.Evaluate(args[0].Float()))
}

func cursor(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("{}")
	}
	return js.ValueOf(eng.GetCursor(args[0].Float(), args[1].Float()))
}

func getPoints(this js.Value, args []js.Value) interface{} {
	data, err := json.Marshal(eng.Points())
	if err != nil {
		return js.ValueOf("[]")
	}
	return js.ValueOf(string(data))
}

func getState(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetState())
}

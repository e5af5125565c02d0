package engine

import (
	"encoding/json"
	"math"

	"github.com/polyplot/polyplot/internal/document"
)

// Draw ops understood by the Canvas2D shim and the raster painter.
const (
	OpClear  = "clear"
	OpPath   = "path"
	OpCircle = "circle"
)

// Colors are six-digit hex so every consumer parses them the same way.
const (
	BackgroundColor = "#ffffff"
	AxisColor       = "#888888"
	MarkerColor     = "#ff0000"
	CurveColor      = "#0000ff"
)

// MarkerRadius is the screen radius of a point marker in pixels.
const MarkerRadius = 5.0

// DrawCommand represents a single drawing operation for the frontend to execute.
// The frontend receives a list of these and executes them on a Canvas2D context.
type DrawCommand struct {
	Op          string        `json:"op"`                    // "clear", "path", "circle"
	Index       *int          `json:"index,omitempty"`       // Point index for circles, for hit correlation
	X           float64       `json:"x,omitempty"`           // Circle center
	Y           float64       `json:"y,omitempty"`           // Circle center
	Radius      float64       `json:"radius,omitempty"`      // Circle radius
	Width       float64       `json:"width,omitempty"`       // Clear extent
	Height      float64       `json:"height,omitempty"`      // Clear extent
	Path        []PathCommand `json:"path,omitempty"`        // Path data for "path" ops
	Fill        string        `json:"fill,omitempty"`        // Fill color
	Stroke      string        `json:"stroke,omitempty"`      // Stroke color
	StrokeWidth float64       `json:"strokeWidth,omitempty"` // Stroke width
}

// PathCommand is a single path segment in Canvas2D form: ["M", x, y] or ["L", x, y].
type PathCommand []interface{}

// CompileFrame produces the draw commands for one full redraw, in painter's
// order: clear, axes, point markers, then the interpolated curve. The curve
// is emitted whenever there is at least one point and is not clipped to the
// canvas; the drawing surface clips.
func CompileFrame(vp Viewport, points []document.Point, segments int) []DrawCommand {
	commands := []DrawCommand{{
		Op:     OpClear,
		Width:  vp.Width(),
		Height: vp.Height(),
		Fill:   BackgroundColor,
	}}

	if axes, ok := compileAxes(vp); ok {
		commands = append(commands, axes)
	}

	for i, p := range points {
		sx, sy := vp.ToScreen(p)
		idx := i
		commands = append(commands, DrawCommand{
			Op:     OpCircle,
			Index:  &idx,
			X:      clampCoord(sx),
			Y:      clampCoord(sy),
			Radius: MarkerRadius,
			Fill:   MarkerColor,
		})
	}

	if len(points) > 0 {
		commands = append(commands, compileCurve(vp, points, segments))
	}

	return commands
}

// compileAxes draws the x-axis only when 0 lies strictly inside the y-range
// and the y-axis only when 0 lies strictly inside the x-range.
func compileAxes(vp Viewport) (DrawCommand, bool) {
	view := vp.View()
	var path []PathCommand

	if view.YMin < 0 && view.YMax > 0 {
		y0 := vp.ToScreenY(0)
		path = append(path, PathCommand{"M", 0.0, y0}, PathCommand{"L", vp.Width(), y0})
	}
	if view.XMin < 0 && view.XMax > 0 {
		x0 := vp.ToScreenX(0)
		path = append(path, PathCommand{"M", x0, 0.0}, PathCommand{"L", x0, vp.Height()})
	}

	if len(path) == 0 {
		return DrawCommand{}, false
	}
	return DrawCommand{
		Op:          OpPath,
		Path:        path,
		Stroke:      AxisColor,
		StrokeWidth: 1,
	}, true
}

func compileCurve(vp Viewport, points []document.Point, segments int) DrawCommand {
	samples := Sample(points, vp.View(), segments)
	path := make([]PathCommand, 0, len(samples))
	penDown := false
	for _, s := range samples {
		// NaN cannot be drawn; lift the pen and resume at the next sample.
		if math.IsNaN(s.Y) {
			penDown = false
			continue
		}
		op := "L"
		if !penDown {
			op = "M"
			penDown = true
		}
		sx, sy := vp.ToScreen(s)
		path = append(path, PathCommand{op, clampCoord(sx), clampCoord(sy)})
	}
	return DrawCommand{
		Op:          OpPath,
		Path:        path,
		Stroke:      CurveColor,
		StrokeWidth: 1,
	}
}

// maxCoord stands in for an infinite screen coordinate, which JSON cannot carry.
const maxCoord = math.MaxFloat32

func clampCoord(v float64) float64 {
	if math.IsInf(v, 1) {
		return maxCoord
	}
	if math.IsInf(v, -1) {
		return -maxCoord
	}
	return v
}

// DrawCommandsToJSON serializes draw commands to JSON.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}

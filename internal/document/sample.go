package document

import (
	"errors"
	"fmt"
)

var ErrUnknownPreset = errors.New("unknown preset")

// Preset is a named point set that can be loaded into an empty plot.
type Preset struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Points      []Point `json:"points"`
}

var presets = []Preset{
	{
		Name:        "line",
		Description: "Two points on y = x",
		Points:      []Point{{X: 0, Y: 0}, {X: 1, Y: 1}},
	},
	{
		Name:        "parabola",
		Description: "Three points on y = x^2",
		Points:      []Point{{X: -1, Y: 1}, {X: 0, Y: 0}, {X: 1, Y: 1}},
	},
	{
		Name:        "cubic",
		Description: "Four points on y = x^3",
		Points:      []Point{{X: -2, Y: -8}, {X: -1, Y: -1}, {X: 1, Y: 1}, {X: 2, Y: 8}},
	},
	{
		Name:        "runge",
		Description: "Eleven equispaced samples of 1/(1+x^2), showing Runge's oscillation",
		Points:      rungePoints(),
	},
}

func rungePoints() []Point {
	pts := make([]Point, 0, 11)
	for x := -5; x <= 5; x++ {
		fx := float64(x)
		pts = append(pts, Point{X: fx, Y: 1 / (1 + fx*fx)})
	}
	return pts
}

// Presets returns all built-in presets. The result is a copy.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	for i, p := range presets {
		out[i] = Preset{
			Name:        p.Name,
			Description: p.Description,
			Points:      append([]Point(nil), p.Points...),
		}
	}
	return out
}

// PresetNames returns the preset names in display order.
func PresetNames() []string {
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
	}
	return names
}

// LookupPreset returns a copy of the named preset's points.
func LookupPreset(name string) ([]Point, error) {
	for _, p := range presets {
		if p.Name == name {
			return append([]Point(nil), p.Points...), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}

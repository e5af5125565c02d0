// Package desktop hosts an engine in a native window. The plot is rasterized
// with gg and blitted to an ebiten image every time it changes.
package desktop

import (
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/polyplot/polyplot/internal/document"
	"github.com/polyplot/polyplot/internal/engine"
	"github.com/polyplot/polyplot/internal/pointer"
	"github.com/polyplot/polyplot/internal/raster"
)

// Options configures the window.
type Options struct {
	View   document.View
	Canvas document.Canvas
	Scale  int    // window pixels per canvas pixel
	Preset string // loaded at startup when set
}

// RunWindow opens the plot window and blocks until it is closed.
func RunWindow(opts Options) error {
	eng := engine.NewEngine(opts.View, opts.Canvas)
	if opts.Preset != "" {
		if err := eng.LoadPreset(opts.Preset); err != nil {
			return err
		}
	}

	surface := raster.NewSurface(eng, opts.Canvas)
	defer surface.Close()

	g := &plotGame{
		eng:     eng,
		input:   pointer.NewTranslator(eng),
		surface: surface,
		canvas:  opts.Canvas,
	}

	scale := opts.Scale
	if scale < 1 {
		scale = 1
	}
	ebiten.SetWindowTitle("polyplot")
	ebiten.SetWindowSize(opts.Canvas.Width*scale, opts.Canvas.Height*scale)
	ebiten.SetTPS(60)

	slog.Info("desktop window starting", "width", opts.Canvas.Width, "height", opts.Canvas.Height, "scale", scale)
	return ebiten.RunGame(g)
}

type plotGame struct {
	eng     *engine.Engine
	input   *pointer.Translator
	surface *raster.Surface
	canvas  document.Canvas
	fbImg   *ebiten.Image
	title   string
}

func (g *plotGame) Update() error {
	x, y := ebiten.CursorPosition()
	sx, sy := float64(x), float64(y)

	g.input.Step(pointer.State{
		X:     sx,
		Y:     sy,
		Left:  ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Right: ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),
	})

	if _, err := g.surface.Refresh(); err != nil {
		return err
	}

	g.updateTitle(sx, sy)
	return nil
}

func (g *plotGame) updateTitle(sx, sy float64) {
	c := g.eng.CursorAt(sx, sy)
	title := fmt.Sprintf("polyplot  x=%.3f y=%.3f  points=%d", c.X, c.Y, len(g.eng.Points()))
	if c.Value != nil {
		title += fmt.Sprintf("  L(x)=%.4f", *c.Value)
	}
	if title != g.title {
		g.title = title
		ebiten.SetWindowTitle(title)
	}
}

func (g *plotGame) Draw(screen *ebiten.Image) {
	if g.fbImg == nil {
		g.fbImg = ebiten.NewImage(g.canvas.Width, g.canvas.Height)
	}
	g.fbImg.WritePixels(g.surface.RGBA().Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *plotGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.canvas.Width, g.canvas.Height
}

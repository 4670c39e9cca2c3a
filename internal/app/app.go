//go:build ebiten

package app

import (
	"image"

	"boilsim/internal/control"
	"boilsim/internal/core"
	"boilsim/internal/render"
	"boilsim/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Options configures a Game.
type Options struct {
	HUDWidth int
	Clock    core.Clock
	// OnFirstUpdate runs once before the first frame, e.g. to play the intro.
	OnFirstUpdate func()
}

// Game adapts the boiling controller to the ebiten.Game interface. The
// canvas takes the window minus the HUD column on the right.
type Game struct {
	ctrl    *control.Controller
	clock   core.Clock
	painter *render.Painter
	hud     *ui.HUD
	overlay *ui.Overlay

	hudWidth int
	canvasW  int
	height   int

	started bool
	onStart func()
}

// New constructs a Game for the provided controller.
func New(ctrl *control.Controller, opts Options) *Game {
	clock := opts.Clock
	if clock == nil {
		clock = core.SystemClock{}
	}
	size := ctrl.Canvas()
	return &Game{
		ctrl:     ctrl,
		clock:    clock,
		painter:  render.NewPainter(size.W, size.H),
		hud:      ui.NewHUD(ctrl, opts.HUDWidth),
		overlay:  ui.NewOverlay(),
		hudWidth: opts.HUDWidth,
		canvasW:  size.W,
		height:   size.H,
		onStart:  opts.OnFirstUpdate,
	}
}

// Update handles keys, the HUD and then advances the controller.
func (g *Game) Update() error {
	if !g.started {
		g.started = true
		if g.onStart != nil {
			g.onStart()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.ctrl.ToggleHeating()
	}
	if repeating(ebiten.KeyUp) {
		g.ctrl.SetTemperature(float64(g.ctrl.State().Slider + 1))
	}
	if repeating(ebiten.KeyDown) {
		g.ctrl.SetTemperature(float64(g.ctrl.State().Slider - 1))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.ctrl.ToggleMute()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		g.ctrl.ToggleLabels()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		g.ctrl.RequestEnergy()
	}

	if g.overlay != nil {
		g.overlay.Update()
	}
	g.hud.Update(g.canvasW)
	g.ctrl.Step(g.clock.Now())
	return nil
}

// repeating fires on press and then at a steady rate while held.
func repeating(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	return d == 1 || d > 20 && d%4 == 0
}

// Draw renders the canvas and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	s := g.ctrl.State()
	canvas := screen.SubImage(image.Rect(0, 0, g.canvasW, g.height)).(*ebiten.Image)
	g.painter.Draw(canvas, render.Frame{
		Params:      g.ctrl.Params(),
		Temperature: s.Thermal.Temperature,
		Heating:     s.Thermal.Heating,
		Levels:      s.Levels,
		Particles:   s.Particles,
	})
	if g.overlay != nil {
		g.overlay.Draw(canvas, g.painter.Scene(), s.LabelsVisible, s.Condenser)
	}
	g.hud.Draw(screen, g.canvasW, g.height)
}

// Layout follows the window: the canvas is resized to whatever the HUD
// leaves free.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w := outsideWidth - g.hudWidth
	if w < 1 {
		w = 1
	}
	h := outsideHeight
	if h < 1 {
		h = 1
	}
	if w != g.canvasW || h != g.height {
		g.canvasW, g.height = w, h
		g.painter.Resize(w, h)
		g.ctrl.SetCanvas(core.Size{W: w, H: h})
	}
	return outsideWidth, outsideHeight
}

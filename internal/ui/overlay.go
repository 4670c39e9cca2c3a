//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"boilsim/internal/remote"
	"boilsim/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Overlay draws the apparatus labels and, on request, the condenser surface
// reported by the server.
type Overlay struct {
	showCondenser bool
	pixel         *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay() *Overlay {
	o := &Overlay{}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update handles the overlay's own key bindings.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		o.showCondenser = !o.showCondenser
	}
}

var (
	labelInk    = color.RGBA{R: 40, G: 44, B: 52, A: 255}
	labelMarker = color.RGBA{R: 74, G: 144, B: 226, A: 220}
	condenserFg = color.RGBA{R: 220, G: 90, B: 60, A: 200}
)

// Draw renders the overlay. Labels appear only when labels is set.
func (o *Overlay) Draw(screen *ebiten.Image, scene render.Scene, labels bool, condenser *remote.Condenser) {
	if labels {
		face := basicfont.Face7x13
		for _, l := range scene.Labels() {
			o.drawPoint(screen, l.At.X-6, l.At.Y-4, 4, labelMarker)
			text.Draw(screen, l.Text, face, int(l.At.X), int(l.At.Y), labelInk)
		}
	}
	if o.showCondenser && condenser != nil {
		x2 := condenser.StartX + math.Cos(condenser.Angle)*condenser.Length
		y2 := condenser.StartY + math.Sin(condenser.Angle)*condenser.Length
		o.drawLine(screen, condenser.StartX, condenser.StartY, x2, y2, 2, condenserFg)
		o.drawPoint(screen, condenser.StartX, condenser.StartY, 5, condenserFg)
	}
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	if o.pixel == nil || size <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size*0.5, y-size*0.5)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if o.pixel == nil || thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

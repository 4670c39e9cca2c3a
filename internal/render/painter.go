//go:build ebiten

package render

import (
	"image"
	"image/color"

	"boilsim/internal/sims/boiling"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Frame is the model state a painter needs for one draw.
type Frame struct {
	Params      boiling.Params
	Temperature float64
	Heating     bool
	Levels      boiling.Levels
	Particles   []boiling.Particle
}

// Painter draws the apparatus onto a canvas of a fixed size. Resize rebuilds
// the layout and drops size-dependent caches.
type Painter struct {
	w, h  int
	scene Scene

	flames   FlameCache
	flameSrc *image.RGBA
	flameImg *ebiten.Image

	highlight []color.RGBA
	shadow    []color.RGBA

	pixel    *ebiten.Image
	whiteSub *ebiten.Image
}

// NewPainter allocates a painter for a w by h canvas.
func NewPainter(w, h int) *Painter {
	p := &Painter{}
	p.pixel = ebiten.NewImage(3, 3)
	p.pixel.Fill(color.White)
	p.whiteSub = p.pixel.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	p.Resize(w, h)
	return p
}

// Resize changes the canvas size. Same-size calls are free.
func (p *Painter) Resize(w, h int) {
	if w == p.w && h == p.h {
		return
	}
	p.w, p.h = w, h
	p.scene = NewScene(float64(w), float64(h))
	p.highlight = StoveHighlight(int(p.scene.Stove.H))
	p.shadow = StandShadow(int(p.scene.StandShadow.H))
}

// Scene returns the current layout.
func (p *Painter) Scene() Scene { return p.scene }

// Draw paints a full frame.
func (p *Painter) Draw(dst *ebiten.Image, f Frame) {
	dst.Fill(Background)
	s := &p.scene

	p.drawStove(dst)
	p.drawStand(dst)

	strokeRect(dst, s.Main, Outline)
	for _, seg := range s.Lid {
		strokeSegment(dst, seg, strokeWidth, Outline)
	}
	strokeRect(dst, s.Collection, Outline)

	p.drawWater(dst, s.Main, f.Levels.Left)
	p.drawWater(dst, s.Collection, f.Levels.Right)

	for _, seg := range s.Pipe {
		strokeSegment(dst, seg, strokeWidth, Outline)
	}
	for _, tri := range s.Arrows {
		p.fillPolygon(dst, tri[:], Arrow)
	}

	for _, pt := range f.Particles {
		c := f.Params.ParticleColor(pt, f.Temperature)
		vector.DrawFilledCircle(dst, float32(pt.X), float32(pt.Y), boiling.ParticleRadius, c, true)
	}

	if f.Heating {
		p.drawHeatSource(dst)
	}
}

func (p *Painter) drawStove(dst *ebiten.Image) {
	s := &p.scene
	fillRect(dst, s.Stove, StoveBody)
	for _, g := range s.StoveGrooves {
		fillRect(dst, g, StoveGroove)
	}
	p.fillPolygon(dst, Ellipse(s.RingCenter, s.RingRadii, 48), BurnerDark)
	for _, h := range s.RingHoles {
		fillCircle(dst, h, BurnerHole)
	}
	gradientRows(dst, s.Stove, p.highlight)
}

func (p *Painter) drawStand(dst *ebiten.Image) {
	s := &p.scene
	for _, leg := range s.StandLegs {
		fillRect(dst, leg, StandLeg)
	}
	fillRect(dst, s.Stand, StandTop)
	gradientRows(dst, s.StandShadow, p.shadow)
}

func (p *Painter) drawWater(dst *ebiten.Image, vessel Rect, level float64) {
	water := WaterRect(vessel, level)
	strokeSegment(dst, Segment{Point{water.X, water.Y}, Point{water.X + water.W, water.Y}}, strokeWidth, WaterLine)
	fillRect(dst, water, WaterFill)
}

func (p *Painter) drawHeatSource(dst *ebiten.Image) {
	s := &p.scene
	fillRect(dst, s.BurnerStand, StoveBody)
	fillRect(dst, s.BurnerRing, StandTop)
	for _, h := range s.BurnerHoles {
		fillCircle(dst, h, BurnerDark)
	}

	src := p.flames.Get(s.Flame)
	if src != p.flameSrc || p.flameImg == nil {
		if p.flameImg != nil {
			p.flameImg.Dispose()
		}
		p.flameSrc = src
		p.flameImg = nil
		if !src.Bounds().Empty() {
			p.flameImg = ebiten.NewImageFromImage(src)
		}
	}
	if p.flameImg == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(src.Bounds().Min.X), float64(src.Bounds().Min.Y))
	dst.DrawImage(p.flameImg, op)
}

// fillPolygon fills a convex or concave outline with a flat colour.
func (p *Painter) fillPolygon(dst *ebiten.Image, pts []Point, c color.NRGBA) {
	if len(pts) < 3 {
		return
	}
	var path vector.Path
	path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, pt := range pts[1:] {
		path.LineTo(float32(pt.X), float32(pt.Y))
	}
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	r, g, b, a := float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(c.A)/255
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = r
		vs[i].ColorG = g
		vs[i].ColorB = b
		vs[i].ColorA = a
	}
	op := &ebiten.DrawTrianglesOptions{FillRule: ebiten.EvenOdd, AntiAlias: true}
	dst.DrawTriangles(vs, is, p.whiteSub, op)
}

func fillRect(dst *ebiten.Image, r Rect, c color.Color) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, false)
}

func strokeRect(dst *ebiten.Image, r Rect, c color.Color) {
	vector.StrokeRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), strokeWidth, c, true)
}

func strokeSegment(dst *ebiten.Image, s Segment, width float32, c color.Color) {
	vector.StrokeLine(dst, float32(s.A.X), float32(s.A.Y), float32(s.B.X), float32(s.B.Y), width, c, true)
}

func fillCircle(dst *ebiten.Image, c Circle, col color.Color) {
	vector.DrawFilledCircle(dst, float32(c.Center.X), float32(c.Center.Y), float32(c.R), col, true)
}

// gradientRows paints r one pixel row at a time from rows, top first.
func gradientRows(dst *ebiten.Image, r Rect, rows []color.RGBA) {
	for i, c := range rows {
		if c.A == 0 {
			continue
		}
		vector.DrawFilledRect(dst, float32(r.X), float32(r.Y)+float32(i), float32(r.W), 1, c, false)
	}
}

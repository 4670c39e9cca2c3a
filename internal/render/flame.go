package render

import (
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// FlameGeometry is the burner flame footprint. Y is the flame base; the
// flame rises H pixels above it.
type FlameGeometry struct {
	X, Y    float64
	W, H    float64
	CenterX float64
}

// NewFlameGeometry sizes the flame for a vessel of the given width whose
// burner sits at (x, y). The flame is a fifth wider than the vessel and thin.
func NewFlameGeometry(x, y, width float64) FlameGeometry {
	fw := width * 1.2
	return FlameGeometry{
		X:       x - (fw-width)/2,
		Y:       y,
		W:       fw,
		H:       width * 0.08,
		CenterX: x + width/2,
	}
}

// Outline flattens the three cubic curves of the flame contour into a
// closed polygon with steps points per curve.
func (f FlameGeometry) Outline(steps int) []Point {
	if steps < 2 {
		steps = 2
	}
	x, y, w, h := f.X, f.Y, f.W, f.H
	curves := [][4]Point{
		{{x, y}, {x, y - h*0.2}, {x + w*0.2, y - h*0.4}, {x + w*0.4, y - h*0.7}},
		{{x + w*0.4, y - h*0.7}, {x + w*0.45, y - h}, {x + w*0.55, y - h}, {x + w*0.6, y - h*0.7}},
		{{x + w*0.6, y - h*0.7}, {x + w*0.8, y - h*0.4}, {x + w, y - h*0.2}, {x + w, y}},
	}
	pts := []Point{{x, y}}
	for _, c := range curves {
		for i := 1; i <= steps; i++ {
			pts = append(pts, cubic(c, float64(i)/float64(steps)))
		}
	}
	return pts
}

func cubic(c [4]Point, t float64) Point {
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	d := 3 * u * t * t
	e := t * t * t
	return Point{
		X: a*c[0].X + b*c[1].X + d*c[2].X + e*c[3].X,
		Y: a*c[0].Y + b*c[1].Y + d*c[2].Y + e*c[3].Y,
	}
}

// Bounds returns the pixel rectangle the flame raster covers, in canvas
// coordinates.
func (f FlameGeometry) Bounds() image.Rectangle {
	return image.Rect(
		int(math.Floor(f.X)),
		int(math.Floor(f.Y-f.H)),
		int(math.Ceil(f.X+f.W)),
		int(math.Ceil(f.Y))+1,
	)
}

type gradientStop struct {
	at    float64
	color colorful.Color
	alpha float64
}

func stop(at float64, r, g, b uint8, alpha float64) gradientStop {
	return gradientStop{
		at:    at,
		color: colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255},
		alpha: alpha,
	}
}

var (
	blueBase = []gradientStop{
		stop(0, 30, 150, 255, 0.9),
		stop(1, 30, 150, 255, 0),
	}
	flameBody = []gradientStop{
		stop(0, 255, 50, 0, 0.95),
		stop(0.3, 255, 80, 0, 0.9),
		stop(0.6, 255, 120, 0, 0.85),
		stop(0.8, 255, 160, 0, 0.8),
		stop(1, 255, 200, 0, 0.7),
	}
	innerGlow = []gradientStop{
		stop(0, 255, 200, 50, 0.3),
		stop(1, 255, 100, 0, 0),
	}
)

// sample interpolates a gradient at t, clamped to its end stops.
func sample(stops []gradientStop, t float64) (colorful.Color, float64) {
	if t <= stops[0].at {
		return stops[0].color, stops[0].alpha
	}
	for i := 1; i < len(stops); i++ {
		cur := stops[i]
		if t <= cur.at {
			prev := stops[i-1]
			local := 0.0
			if span := cur.at - prev.at; span > 0 {
				local = (t - prev.at) / span
			}
			return prev.color.BlendRgb(cur.color, local), prev.alpha + (cur.alpha-prev.alpha)*local
		}
	}
	last := stops[len(stops)-1]
	return last.color, last.alpha
}

// flameSamples is the per-axis supersampling factor for edge coverage.
const flameSamples = 4

// RasterizeFlame paints the flame into a premultiplied RGBA image whose
// bounds are f.Bounds(). Layers are composited in order: blue base in the
// bottom 30%, the red to yellow body, then a radial inner glow.
func RasterizeFlame(f FlameGeometry) *image.RGBA {
	bounds := f.Bounds()
	img := image.NewRGBA(bounds)
	if f.W <= 0 || f.H <= 0 {
		return img
	}
	poly := f.Outline(16)
	glowX := f.CenterX
	glowY := f.Y - f.H*0.4
	glowR := f.W * 0.5

	for py := bounds.Min.Y; py < bounds.Max.Y; py++ {
		for px := bounds.Min.X; px < bounds.Max.X; px++ {
			cov := coverage(poly, float64(px), float64(py))
			if cov == 0 {
				continue
			}
			cx := float64(px) + 0.5
			cy := float64(py) + 0.5
			rise := f.Y - cy

			var acc pixel
			if rise >= 0 && rise <= f.H*0.3 {
				c, a := sample(blueBase, rise/(f.H*0.3))
				acc.over(c, a)
			}
			if rise >= 0 && rise <= f.H {
				c, a := sample(flameBody, rise/f.H)
				acc.over(c, a)
			}
			if rise >= 0 && glowR > 0 {
				c, a := sample(innerGlow, math.Hypot(cx-glowX, cy-glowY)/glowR)
				acc.over(c, a)
			}
			acc.scale(cov)
			acc.store(img.Pix, img.PixOffset(px, py))
		}
	}
	return img
}

// coverage returns the fraction of the pixel at (px, py) inside poly.
func coverage(poly []Point, px, py float64) float64 {
	inside := 0
	for sy := 0; sy < flameSamples; sy++ {
		for sx := 0; sx < flameSamples; sx++ {
			x := px + (float64(sx)+0.5)/flameSamples
			y := py + (float64(sy)+0.5)/flameSamples
			if pointInPolygon(poly, x, y) {
				inside++
			}
		}
	}
	return float64(inside) / (flameSamples * flameSamples)
}

// pointInPolygon is the even-odd crossing test.
func pointInPolygon(poly []Point, x, y float64) bool {
	in := false
	j := len(poly) - 1
	for i := range poly {
		a, b := poly[i], poly[j]
		if (a.Y > y) != (b.Y > y) && x < (b.X-a.X)*(y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
		j = i
	}
	return in
}

// FlameCache keeps the last raster and rebuilds it only when the geometry
// changes.
type FlameCache struct {
	geom FlameGeometry
	img  *image.RGBA
}

// Get returns the raster for f.
func (c *FlameCache) Get(f FlameGeometry) *image.RGBA {
	if c.img == nil || c.geom != f {
		c.geom = f
		c.img = RasterizeFlame(f)
	}
	return c.img
}

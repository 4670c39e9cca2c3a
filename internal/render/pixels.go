package render

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// pixel accumulates premultiplied RGBA in [0,1].
type pixel struct {
	r, g, b, a float64
}

// over composites a straight-alpha colour on top of p.
func (p *pixel) over(c colorful.Color, alpha float64) {
	if alpha <= 0 {
		return
	}
	if alpha > 1 {
		alpha = 1
	}
	c = c.Clamped()
	keep := 1 - alpha
	p.r = c.R*alpha + p.r*keep
	p.g = c.G*alpha + p.g*keep
	p.b = c.B*alpha + p.b*keep
	p.a = alpha + p.a*keep
}

// scale multiplies every channel by k, used for edge coverage.
func (p *pixel) scale(k float64) {
	p.r *= k
	p.g *= k
	p.b *= k
	p.a *= k
}

// store writes p as premultiplied 8-bit RGBA at buf[i:i+4].
func (p pixel) store(buf []byte, i int) {
	buf[i+0] = channel(p.r)
	buf[i+1] = channel(p.g)
	buf[i+2] = channel(p.b)
	buf[i+3] = channel(p.a)
}

// color returns p as a premultiplied color.RGBA.
func (p pixel) color() color.RGBA {
	return color.RGBA{R: channel(p.r), G: channel(p.g), B: channel(p.b), A: channel(p.a)}
}

func channel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}

// verticalGradient returns n colours for a straight-alpha gradient running
// top to bottom, one per row.
func verticalGradient(stops []gradientStop, n int) []color.RGBA {
	out := make([]color.RGBA, n)
	for i := range out {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		c, a := sample(stops, t)
		var px pixel
		px.over(c, a)
		out[i] = px.color()
	}
	return out
}

var (
	stoveHighlight = []gradientStop{
		stop(0, 255, 255, 255, 0.1),
		stop(0.5, 255, 255, 255, 0.05),
		stop(1, 255, 255, 255, 0),
	}
	standShadow = []gradientStop{
		stop(0, 0, 0, 0, 0.2),
		stop(1, 0, 0, 0, 0),
	}
)

// StoveHighlight is the metallic sheen over the stove body, one colour per
// pixel row.
func StoveHighlight(rows int) []color.RGBA { return verticalGradient(stoveHighlight, rows) }

// StandShadow fades the shadow under the collection stand.
func StandShadow(rows int) []color.RGBA { return verticalGradient(standShadow, rows) }

// Package plot has the scatter plot collaborators for the calculator's plot().
package plot

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"fortio.org/log"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

const (
	DefaultWidth  = 640
	DefaultHeight = 480
	margin        = 48
	markerSize    = 2.5
)

var (
	background = color.RGBA{255, 255, 255, 255}
	axisColor  = color.RGBA{0, 0, 0, 255}
	pointColor = color.RGBA{30, 90, 200, 255}
)

// PNG writes each scatter plot to a new Dir/plot-<n>.png file.
// Errors are logged, the caller isn't told.
type PNG struct {
	Dir    string
	Width  int
	Height int

	mu   sync.Mutex
	n    int
	last string
}

func NewPNG(dir string) *PNG {
	return &PNG{Dir: dir, Width: DefaultWidth, Height: DefaultHeight}
}

func (p *PNG) DrawScatterPlot(title, xLabel, yLabel string, xs, ys []float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.n++
	name := filepath.Join(p.Dir, fmt.Sprintf("plot-%d.png", p.n))
	img := Render(title, xLabel, yLabel, xs, ys, p.Width, p.Height)
	if err := writePNG(name, img); err != nil {
		log.Errf("plot %q: %v", title, err)
		return
	}
	p.last = name
	log.Infof("Plot of %s (%d points) written to %s", title, len(xs), name)
}

// LastFile is the last file successfully written, empty if none.
func (p *PNG) LastFile() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

func writePNG(name string, img image.Image) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	err = png.Encode(f, img)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// bounds of the finite values, widened when empty or flat.
func bounds(values []float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if lo > hi {
		return 0, 1
	}
	if lo == hi {
		return lo - 1, hi + 1
	}
	return lo, hi
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}

// Render draws the points, axes and labels. Points with a non finite
// coordinate are skipped.
func Render(title, xLabel, yLabel string, xs, ys []float64, width, height int) *image.RGBA {
	if width <= 2*margin {
		width = DefaultWidth
	}
	if height <= 2*margin {
		height = DefaultHeight
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{background}, image.Point{}, draw.Src)
	n := min(len(xs), len(ys))
	minX, maxX := bounds(xs[:n])
	minY, maxY := bounds(ys[:n])
	left, right := float32(margin), float32(width-margin)
	top, bottom := float32(margin), float32(height-margin)
	toPixel := func(x, y float64) (float32, float32) {
		px := left + float32((x-minX)/(maxX-minX))*(right-left)
		py := bottom - float32((y-minY)/(maxY-minY))*(bottom-top)
		return px, py
	}

	z := vector.NewRasterizer(width, height)
	z.DrawOp = draw.Over
	rect(z, left-1, bottom, right, bottom+1) // x axis
	rect(z, left-1, top, left, bottom+1)     // y axis
	z.Draw(img, img.Bounds(), image.NewUniform(axisColor), image.Point{})

	z.Reset(width, height)
	z.DrawOp = draw.Over
	drawn := 0
	for i := range n {
		x, y := xs[i], ys[i]
		if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
			continue
		}
		px, py := toPixel(x, y)
		diamond(z, px, py, markerSize)
		drawn++
	}
	if drawn > 0 {
		z.Draw(img, img.Bounds(), image.NewUniform(pointColor), image.Point{})
	}
	log.Debugf("Render %q: %d/%d points drawn", title, drawn, n)

	d := &font.Drawer{Dst: img, Src: image.NewUniform(axisColor), Face: basicfont.Face7x13}
	text(d, title, width/2, margin/2, true)
	text(d, xLabel, width/2, height-margin/4, true)
	text(d, yLabel, margin/4, margin-8, false)
	text(d, formatTick(minX), margin, height-margin+16, true)
	text(d, formatTick(maxX), width-margin, height-margin+16, true)
	text(d, formatTick(minY), 2, height-margin, false)
	text(d, formatTick(maxY), 2, margin+4, false)
	return img
}

func rect(z *vector.Rasterizer, x0, y0, x1, y1 float32) {
	z.MoveTo(x0, y0)
	z.LineTo(x1, y0)
	z.LineTo(x1, y1)
	z.LineTo(x0, y1)
	z.ClosePath()
}

func diamond(z *vector.Rasterizer, x, y, r float32) {
	z.MoveTo(x, y-r)
	z.LineTo(x+r, y)
	z.LineTo(x, y+r)
	z.LineTo(x-r, y)
	z.ClosePath()
}

// text draws s with its baseline at y, centered on x or starting at x.
func text(d *font.Drawer, s string, x, y int, centered bool) {
	if s == "" {
		return
	}
	start := fixed.I(x)
	if centered {
		start -= d.MeasureString(s) / 2
	}
	d.Dot = fixed.Point26_6{X: start, Y: fixed.I(y)}
	d.DrawString(s)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package imagesource

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"sort"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/pdiddy/ascii-converter/internal/apperr"
	"github.com/pdiddy/ascii-converter/pkg/types"
)

// SampleKind names a synthetic placeholder image.
type SampleKind string

const (
	SampleGradient SampleKind = "gradient"
	SampleCircle   SampleKind = "circle"
	SamplePhoto    SampleKind = "photo"
	SampleLogo     SampleKind = "logo"
	SampleText     SampleKind = "text"
	SamplePattern  SampleKind = "pattern"
)

var samplePainters = map[SampleKind]func() *image.RGBA{
	SampleGradient: paintGradient,
	SampleCircle:   paintCircle,
	SamplePhoto:    paintPhoto,
	SampleLogo:     paintLogo,
	SampleText:     paintText,
	SamplePattern:  paintPattern,
}

// SampleKinds lists the available samples in name order.
func SampleKinds() []SampleKind {
	kinds := make([]SampleKind, 0, len(samplePainters))
	for k := range samplePainters {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// SamplePNG renders the named sample as PNG bytes.
func SamplePNG(kind SampleKind) ([]byte, error) {
	paint, ok := samplePainters[kind]
	if !ok {
		return nil, apperr.New(apperr.KindValidation, "sample", fmt.Sprintf("Unknown sample %q", kind))
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, paint()); err != nil {
		return nil, fmt.Errorf("encoding sample %s: %w", kind, err)
	}
	return buf.Bytes(), nil
}

// Sample synthesizes the named sample image as a payload.
func (l *Loader) Sample(kind SampleKind) (types.ImagePayload, error) {
	if !l.cfg.Features.Samples {
		return types.ImagePayload{}, apperr.New(apperr.KindValidation, "sample", "Sample images are disabled")
	}
	data, err := SamplePNG(kind)
	if err != nil {
		return types.ImagePayload{}, err
	}
	return FromBytes("Sample: "+string(kind), data, l.cfg.Limits.MaxFileSize)
}

var (
	black    = color.RGBA{0x00, 0x00, 0x00, 0xff}
	white    = color.RGBA{0xff, 0xff, 0xff, 0xff}
	midGray  = color.RGBA{0x80, 0x80, 0x80, 0xff}
	skyBlue  = color.RGBA{0x87, 0xce, 0xeb, 0xff}
	grass    = color.RGBA{0x22, 0x8b, 0x22, 0xff}
	bark     = color.RGBA{0x8b, 0x45, 0x13, 0xff}
	charcoal = color.RGBA{0x1a, 0x1a, 0x1a, 0xff}
	logoBlue = color.RGBA{0x4f, 0xc3, 0xf7, 0xff}
)

func newCanvas(w, h int, bg color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return img
}

func fillRect(img *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// lerp blends a toward b by t in [0,1].
func lerp(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), 0xff}
}

// paintGradient is a diagonal black, gray, white ramp from the top-left corner.
func paintGradient() *image.RGBA {
	const size = 200
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			t := (float64(x) + float64(y) + 1) / (2 * size)
			var c color.RGBA
			if t < 0.5 {
				c = lerp(black, midGray, t*2)
			} else {
				c = lerp(midGray, white, (t-0.5)*2)
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// paintCircle is a white disc of radius 80 on black.
func paintCircle() *image.RGBA {
	img := newCanvas(200, 200, black)
	const cx, cy, r = 100.0, 100.0, 80.0
	for y := 0; y < 200; y++ {
		for x := 0; x < 200; x++ {
			dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
			if dx*dx+dy*dy <= r*r {
				img.SetRGBA(x, y, white)
			}
		}
	}
	return img
}

// paintPhoto is a landscape: sky, ground, and a tree.
func paintPhoto() *image.RGBA {
	img := newCanvas(300, 200, grass)
	for y := 0; y < 100; y++ {
		c := lerp(skyBlue, white, (float64(y)+0.5)/100)
		fillRect(img, image.Rect(0, y, 300, y+1), c)
	}
	fillRect(img, image.Rect(130, 80, 170, 140), bark)

	a, b, c := point{150, 30}, point{100, 80}, point{200, 80}
	for y := 30; y <= 80; y++ {
		for x := 100; x <= 200; x++ {
			if inTriangle(point{float64(x) + 0.5, float64(y) + 0.5}, a, b, c) {
				img.SetRGBA(x, y, grass)
			}
		}
	}
	return img
}

// paintLogo is "OTTO" centred on a dark background.
func paintLogo() *image.RGBA {
	img := newCanvas(200, 200, charcoal)
	drawCentredText(img, "OTTO", logoBlue, 4)
	return img
}

// paintText is "Hello ASCII!" in white on black.
func paintText() *image.RGBA {
	img := newCanvas(300, 100, black)
	drawCentredText(img, "Hello ASCII!", white, 3)
	return img
}

// paintPattern is a 10x10 checkerboard of 20px squares, black at the origin.
func paintPattern() *image.RGBA {
	const cell = 20
	img := image.NewRGBA(image.Rect(0, 0, 200, 200))
	for i := 0; i < 10; i++ {
		for j := 0; j < 10; j++ {
			c := white
			if (i+j)%2 == 0 {
				c = black
			}
			fillRect(img, image.Rect(i*cell, j*cell, (i+1)*cell, (j+1)*cell), c)
		}
	}
	return img
}

// drawCentredText renders s with the 7x13 bitmap face, scales it by scale
// with nearest-neighbour sampling, and composites it at the centre of dst.
func drawCentredText(dst *image.RGBA, s string, c color.Color, scale int) {
	face := basicfont.Face7x13
	w := font.MeasureString(face, s).Ceil()
	h := face.Metrics().Height.Ceil()

	glyphs := image.NewRGBA(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  glyphs,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(0, face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)

	sw, sh := w*scale, h*scale
	b := dst.Bounds()
	x0 := (b.Dx() - sw) / 2
	y0 := (b.Dy() - sh) / 2
	draw.NearestNeighbor.Scale(dst, image.Rect(x0, y0, x0+sw, y0+sh), glyphs, glyphs.Bounds(), draw.Over, nil)
}

type point struct{ x, y float64 }

func inTriangle(p, a, b, c point) bool {
	sign := func(p1, p2, p3 point) float64 {
		return (p1.x-p3.x)*(p2.y-p3.y) - (p2.x-p3.x)*(p1.y-p3.y)
	}
	d1, d2, d3 := sign(p, a, b), sign(p, b, c), sign(p, c, a)
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

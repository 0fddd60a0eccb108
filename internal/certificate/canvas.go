package certificate

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	canvasWidth  = 640
	canvasMargin = 32
	lineHeight   = 18
	headerHeight = 72
	codeBox      = 120
)

var (
	colorBackground = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorHeader     = color.RGBA{R: 0x0f, G: 0x76, B: 0x6e, A: 0xff}
	colorText       = color.RGBA{R: 0x1f, G: 0x29, B: 0x37, A: 0xff}
	colorMuted      = color.RGBA{R: 0x6b, G: 0x72, B: 0x80, A: 0xff}
	colorAccent     = color.RGBA{R: 0xb4, G: 0x53, B: 0x09, A: 0xff}
	colorRule       = color.RGBA{R: 0xe5, G: 0xe7, B: 0xeb, A: 0xff}
)

// basicfont only carries ASCII glyphs.
var asciiFallback = strings.NewReplacer("₹", "Rs.", "•", "-", "…", "...")

type textOp struct {
	x, y int
	text string
	col  color.Color
}

// Canvas rasterizes a certificate View. It satisfies document.Rasterizer.
type Canvas struct {
	view    View
	fetcher CodeFetcher
	logger  zerolog.Logger
	face    font.Face
}

func NewCanvas(view View, fetcher CodeFetcher, logger zerolog.Logger) *Canvas {
	return &Canvas{view: view, fetcher: fetcher, logger: logger, face: basicfont.Face7x13}
}

// Rasterize draws the certificate and upscales it by scale.
func (c *Canvas) Rasterize(ctx context.Context, scale int) (image.Image, error) {
	if scale < 1 {
		return nil, fmt.Errorf("invalid raster scale %d", scale)
	}
	code := c.loadCode(ctx)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ops, codeAt, height := c.layout()
	img := image.NewRGBA(image.Rect(0, 0, canvasWidth, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(colorBackground), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(0, 0, canvasWidth, headerHeight), image.NewUniform(colorHeader), image.Point{}, draw.Src)

	for _, op := range ops {
		if op.text == "" {
			draw.Draw(img, image.Rect(canvasMargin, op.y, canvasWidth-canvasMargin, op.y+1), image.NewUniform(colorRule), image.Point{}, draw.Src)
			continue
		}
		d := font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(op.col),
			Face: c.face,
			Dot:  fixed.P(op.x, op.y),
		}
		d.DrawString(asciiFallback.Replace(op.text))
	}

	box := image.Rect(codeAt.X, codeAt.Y, codeAt.X+codeBox, codeAt.Y+codeBox)
	if code != nil {
		draw.NearestNeighbor.Scale(img, box, code, code.Bounds(), draw.Over, nil)
	} else {
		drawFrame(img, box, colorMuted)
		d := font.Drawer{Dst: img, Src: image.NewUniform(colorMuted), Face: c.face, Dot: fixed.P(box.Min.X+14, box.Min.Y+codeBox/2)}
		d.DrawString("code unavailable")
	}

	if scale == 1 {
		return img, nil
	}
	return imaging.Resize(img, canvasWidth*scale, height*scale, imaging.Lanczos), nil
}

func (c *Canvas) loadCode(ctx context.Context) image.Image {
	if c.fetcher == nil || c.view.CodeURL == "" {
		return nil
	}
	img, err := c.fetcher.Fetch(ctx, c.view.CodeURL)
	if err != nil {
		c.logger.Warn().Err(err).Msg("certificate: code image unavailable")
		return nil
	}
	return img
}

// layout positions every text line top to bottom and returns the code box
// origin and the total canvas height.
func (c *Canvas) layout() ([]textOp, image.Point, int) {
	v := c.view
	var ops []textOp
	y := 30
	add := func(text string, col color.Color) {
		ops = append(ops, textOp{x: canvasMargin, y: y, text: text, col: col})
		y += lineHeight
	}
	wrapped := func(text string, col color.Color) {
		for _, line := range wrap(text, (canvasWidth-2*canvasMargin)/7) {
			add(line, col)
		}
	}
	rule := func() {
		ops = append(ops, textOp{y: y - lineHeight/2})
		y += lineHeight / 2
	}

	add(v.Brand, colorBackground)
	add(v.Subtitle, colorBackground)
	y = headerHeight + 30

	add(v.Heading, colorText)
	wrapped(v.ThankYou, colorMuted)
	rule()
	for _, r := range v.Rows {
		add(fmt.Sprintf("%-16s %s", r.Label+":", r.Value), colorText)
	}
	rule()
	add(v.ImpactTitle, colorAccent)
	wrapped(v.Impact, colorText)
	rule()
	add(v.TaxTitle, colorText)
	wrapped(v.TaxNote, colorMuted)
	rule()

	codeAt := image.Point{X: canvasMargin, Y: y}
	textX := canvasMargin + codeBox + 20
	sideY := y + lineHeight
	for _, line := range []string{v.VerifyTitle, v.VerifyNote, v.Hash} {
		for _, part := range wrap(line, (canvasWidth-textX-canvasMargin)/7) {
			ops = append(ops, textOp{x: textX, y: sideY, text: part, col: colorText})
			sideY += lineHeight
		}
	}
	y += codeBox + lineHeight
	add(v.CodeCaption, colorMuted)
	rule()
	for _, line := range v.Footer {
		wrapped(line, colorMuted)
	}
	return ops, codeAt, y + canvasMargin
}

func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 || width <= 0 {
		return nil
	}
	var lines []string
	current := words[0]
	for _, w := range words[1:] {
		if len([]rune(current))+1+len([]rune(w)) > width {
			lines = append(lines, current)
			current = w
			continue
		}
		current += " " + w
	}
	return append(lines, current)
}

func drawFrame(img *image.RGBA, r image.Rectangle, col color.Color) {
	src := image.NewUniform(col)
	draw.Draw(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), src, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), src, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), src, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), src, image.Point{}, draw.Src)
}

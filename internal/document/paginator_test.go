package document

import (
	stdzip "archive/zip"
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/chai2010/webp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aidconnect/internal/domain"
)

type solidRaster struct {
	w, h   int
	scales []int
	err    error
}

func (s *solidRaster) Rasterize(ctx context.Context, scale int) (image.Image, error) {
	s.scales = append(s.scales, scale)
	if s.err != nil {
		return nil, s.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, s.w*scale, s.h*scale))
	for y := 0; y < img.Bounds().Dy(); y += 7 {
		img.Set(y%img.Bounds().Dx(), y, color.RGBA{R: 0x0f, G: 0x76, B: 0x6e, A: 0xff})
	}
	return img, nil
}

func TestGenerateProducesPaginatedPDF(t *testing.T) {
	p := NewPaginator(Options{Logger: zerolog.Nop()})
	region := &solidRaster{w: 100, h: 323}

	doc, err := p.Generate(context.Background(), region, "DON123")
	require.NoError(t, err)
	assert.Equal(t, []int{DefaultScale}, region.scales)
	assert.Equal(t, "donation-certificate-DON123.pdf", doc.Name)
	assert.Equal(t, 3, doc.Plan.Pages())
	assert.True(t, bytes.HasPrefix(doc.Data, []byte("%PDF")))
	assert.Equal(t, 3, bytes.Count(doc.Data, []byte("/Type /Page\n")))
}

func TestGenerateSinglePage(t *testing.T) {
	p := NewPaginator(Options{Scale: 1, Logger: zerolog.Nop()})
	doc, err := p.Generate(context.Background(), &solidRaster{w: 640, h: 480}, "DON1")
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Plan.Pages())
}

func TestGenerateReportsRenderingFailure(t *testing.T) {
	p := NewPaginator(Options{Logger: zerolog.Nop()})
	doc, err := p.Generate(context.Background(), &solidRaster{err: errors.New("boom")}, "DON1")
	require.ErrorIs(t, err, domain.ErrRendering)
	assert.Nil(t, doc)
}

func TestGenerateHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := NewPaginator(Options{Logger: zerolog.Nop()})
	_, err := p.Generate(ctx, &solidRaster{w: 10, h: 10}, "DON1")
	require.ErrorIs(t, err, domain.ErrRendering)
	require.ErrorIs(t, err, context.Canceled)
}

func TestGenerateRequiresID(t *testing.T) {
	p := NewPaginator(Options{Logger: zerolog.Nop()})
	_, err := p.Generate(context.Background(), &solidRaster{w: 10, h: 10}, " ")
	require.ErrorIs(t, err, domain.ErrRendering)
}

func TestEncodePreview(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 400, 200))

	var pngBuf bytes.Buffer
	require.NoError(t, EncodePreview(&pngBuf, img, "", 100))
	decoded, err := png.Decode(&pngBuf)
	require.NoError(t, err)
	assert.Equal(t, 100, decoded.Bounds().Dx())
	assert.Equal(t, 50, decoded.Bounds().Dy())

	var webpBuf bytes.Buffer
	require.NoError(t, EncodePreview(&webpBuf, img, "WEBP", 0))
	cfg, err := webp.DecodeConfig(&webpBuf)
	require.NoError(t, err)
	assert.Equal(t, 400, cfg.Width)

	require.Error(t, EncodePreview(&bytes.Buffer{}, img, "gif", 0))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "donation-certificate-DON9.png", FileName("DON9", ".png"))
	assert.Equal(t, "image/webp", ContentType(FormatWebP))
}

func TestPreviewAndBundle(t *testing.T) {
	p := NewPaginator(Options{Logger: zerolog.Nop()})
	region := &solidRaster{w: 300, h: 200}

	preview, err := p.Preview(context.Background(), region, FormatPNG, 150)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(preview))
	require.NoError(t, err)
	assert.Equal(t, 150, img.Bounds().Dx())

	doc, err := p.Bundle(context.Background(), region, "DON7", []byte(`{"id":"DON7"}`), 300)
	require.NoError(t, err)
	assert.Equal(t, "donation-certificate-DON7.zip", doc.Name)
	zr, err := stdzip.NewReader(bytes.NewReader(doc.Data), int64(len(doc.Data)))
	require.NoError(t, err)
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"donation-certificate-DON7.pdf", "donation-certificate-DON7.png", "verification.json"}, names)

	_, err = p.Preview(context.Background(), region, "tiff", 0)
	require.ErrorIs(t, err, domain.ErrRendering)
}

package document

import (
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

const (
	FormatPNG  = "png"
	FormatWebP = "webp"
)

// PreviewFormat normalizes a requested preview format. Empty means PNG.
func PreviewFormat(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", FormatPNG:
		return FormatPNG, nil
	case FormatWebP:
		return FormatWebP, nil
	default:
		return "", fmt.Errorf("unsupported preview format %q", raw)
	}
}

// ContentType returns the MIME type for a preview format.
func ContentType(format string) string {
	if format == FormatWebP {
		return "image/webp"
	}
	return "image/png"
}

// EncodePreview writes img in format, shrunk to fit maxWidth when it is
// wider. maxWidth <= 0 keeps the original size.
func EncodePreview(w io.Writer, img image.Image, format string, maxWidth int) error {
	format, err := PreviewFormat(format)
	if err != nil {
		return err
	}
	if maxWidth > 0 && img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}
	if format == FormatWebP {
		return webp.Encode(w, img, &webp.Options{Quality: 85})
	}
	return imaging.Encode(w, img, imaging.PNG)
}

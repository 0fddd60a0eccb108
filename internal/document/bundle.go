package document

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"aidconnect/internal/domain"
	"aidconnect/pkg/zip"
)

// Preview rasterizes region at scale 1 and encodes it as format.
func (p *Paginator) Preview(ctx context.Context, region Rasterizer, format string, maxWidth int) ([]byte, error) {
	img, err := region.Rasterize(ctx, 1)
	if err != nil {
		return nil, p.fail("", "preview", err)
	}
	var buf bytes.Buffer
	if err := EncodePreview(&buf, img, format, maxWidth); err != nil {
		return nil, fmt.Errorf("%w: preview: %v", domain.ErrRendering, err)
	}
	return buf.Bytes(), nil
}

// Bundle rasterizes region once and archives the PDF, a PNG preview and the
// verification payload JSON.
func (p *Paginator) Bundle(ctx context.Context, region Rasterizer, id string, payload []byte, previewWidth int) (*Document, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: donation id is required", domain.ErrRendering)
	}
	img, err := region.Rasterize(ctx, p.scale)
	if err != nil {
		return nil, p.fail(id, "rasterize", err)
	}
	doc, err := p.fromImage(ctx, img, id)
	if err != nil {
		return nil, err
	}
	var preview bytes.Buffer
	if err := EncodePreview(&preview, img, FormatPNG, previewWidth); err != nil {
		return nil, p.fail(id, "preview", err)
	}

	data, err := zip.ArchiveAssets([]zip.Asset{
		{Filename: doc.Name, MIME: "application/pdf", Data: doc.Data},
		{Filename: FileName(id, FormatPNG), MIME: ContentType(FormatPNG), Data: preview.Bytes()},
		{Filename: "verification.json", MIME: "application/json", Data: payload},
	}, p.now())
	if err != nil {
		return nil, p.fail(id, "bundle", err)
	}
	p.logger.Info().Str("donation_id", id).Int("pages", doc.Plan.Pages()).Int("bytes", len(data)).Msg("document: bundled")
	return &Document{Name: FileName(id, "zip"), Plan: doc.Plan, Data: data}, nil
}

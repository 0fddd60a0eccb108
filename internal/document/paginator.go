package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/go-pdf/fpdf"
	"github.com/rs/zerolog"

	"aidconnect/internal/domain"
)

const DefaultScale = 2

// Rasterizer renders a visual region to an image at an integer scale.
type Rasterizer interface {
	Rasterize(ctx context.Context, scale int) (image.Image, error)
}

// Document is a generated PDF ready for download.
type Document struct {
	Name string
	Plan PagePlan
	Data []byte
}

type Options struct {
	Scale      int
	PageWidth  float64
	PageHeight float64
	Now        func() time.Time
	Logger     zerolog.Logger
}

// Paginator slices rasters onto fixed-size PDF pages.
type Paginator struct {
	scale      int
	pageWidth  float64
	pageHeight float64
	now        func() time.Time
	logger     zerolog.Logger
}

func NewPaginator(opts Options) *Paginator {
	if opts.Scale < 1 {
		opts.Scale = DefaultScale
	}
	if opts.PageWidth <= 0 {
		opts.PageWidth = DefaultPageWidth
	}
	if opts.PageHeight <= 0 {
		opts.PageHeight = DefaultPageHeight
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Paginator{
		scale:      opts.Scale,
		pageWidth:  opts.PageWidth,
		pageHeight: opts.PageHeight,
		now:        opts.Now,
		logger:     opts.Logger,
	}
}

// FileName names a certificate artifact after its donation id.
func FileName(id, ext string) string {
	return fmt.Sprintf("donation-certificate-%s.%s", strings.TrimSpace(id), strings.TrimPrefix(ext, "."))
}

// Generate rasterizes region and lays the raster out over as many pages as
// it needs. Any failure is reported as domain.ErrRendering and no partial
// document is returned.
func (p *Paginator) Generate(ctx context.Context, region Rasterizer, id string) (*Document, error) {
	if region == nil {
		return nil, fmt.Errorf("%w: nothing to render", domain.ErrRendering)
	}
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: donation id is required", domain.ErrRendering)
	}
	start := p.now()

	img, err := region.Rasterize(ctx, p.scale)
	if err != nil {
		return nil, p.fail(id, "rasterize", err)
	}
	doc, err := p.fromImage(ctx, img, id)
	if err != nil {
		return nil, err
	}
	p.logger.Info().
		Str("donation_id", id).
		Int("pages", doc.Plan.Pages()).
		Int("bytes", len(doc.Data)).
		Dur("elapsed", p.now().Sub(start)).
		Msg("document: generated")
	return doc, nil
}

func (p *Paginator) fromImage(ctx context.Context, img image.Image, id string) (*Document, error) {
	bounds := img.Bounds()
	plan, err := PlanPages(bounds.Dx(), bounds.Dy(), p.pageWidth, p.pageHeight)
	if err != nil {
		return nil, p.fail(id, "plan", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, p.fail(id, "plan", err)
	}

	data, err := p.assemble(ctx, img, plan, id)
	if err != nil {
		return nil, p.fail(id, "assemble", err)
	}
	return &Document{Name: FileName(id, "pdf"), Plan: plan, Data: data}, nil
}

func (p *Paginator) assemble(ctx context.Context, img image.Image, plan PagePlan, id string) ([]byte, error) {
	var raster bytes.Buffer
	if err := imaging.Encode(&raster, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode raster: %w", err)
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: plan.PageWidth, Ht: plan.PageHeight},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle("Donation Certificate "+id, true)
	pdf.SetCreator("AidConnect", true)
	pdf.SetCreationDate(p.now())

	opts := fpdf.ImageOptions{ImageType: "PNG", AllowNegativePosition: true}
	pdf.RegisterImageOptionsReader("certificate", opts, &raster)
	for _, s := range plan.Slices {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pdf.AddPage()
		pdf.ImageOptions("certificate", 0, s.Offset, plan.ImageWidth, plan.ImageHeight, false, opts, 0, "")
	}
	if err := pdf.Error(); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func (p *Paginator) fail(id, stage string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		p.logger.Debug().Str("donation_id", id).Str("stage", stage).Msg("document: generation cancelled")
		return fmt.Errorf("%w: %s: %w", domain.ErrRendering, stage, err)
	}
	p.logger.Error().Err(err).Str("donation_id", id).Str("stage", stage).Msg("document: generation failed")
	return fmt.Errorf("%w: %s: %v", domain.ErrRendering, stage, err)
}

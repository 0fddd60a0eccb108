package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"aidconnect/internal/adapter/static"
	"aidconnect/internal/certificate"
	"aidconnect/internal/document"
	"aidconnect/internal/domain"
	"aidconnect/internal/donation"
	"aidconnect/internal/i18n"
	"aidconnect/internal/storage"
)

type renderFlags struct {
	seedPath   string
	ngoID      string
	donorName  string
	donorEmail string
	kind       string
	amount     int64
	id         string
	date       string
	locale     string
	format     string
	outDir     string
	offline    bool
	qrURL      string
	scale      int
	pageHeight float64
}

func newRenderCommand(opts *options) *cobra.Command {
	f := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a certificate for a donation to pdf, png, webp or zip",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), opts, f)
		},
	}
	cmd.Flags().StringVar(&f.seedPath, "directory", "", "YAML NGO directory (default: built-in)")
	cmd.Flags().StringVar(&f.ngoID, "ngo", "", "NGO id")
	cmd.Flags().StringVar(&f.donorName, "name", "", "Donor name")
	cmd.Flags().StringVar(&f.donorEmail, "email", "", "Donor email")
	cmd.Flags().StringVar(&f.kind, "type", string(domain.DonationMoney), "Donation type")
	cmd.Flags().Int64Var(&f.amount, "amount", 0, "Amount in rupees (money donations)")
	cmd.Flags().StringVar(&f.id, "id", "", "Donation id (default: generated)")
	cmd.Flags().StringVar(&f.date, "date", "", "Completion time, RFC 3339 (default: now)")
	cmd.Flags().StringVar(&f.locale, "locale", i18n.Default.String(), "Certificate locale")
	cmd.Flags().StringVar(&f.format, "format", "pdf", "Output format: pdf, png, webp or zip")
	cmd.Flags().StringVar(&f.outDir, "out", "certificates", "Output directory")
	cmd.Flags().BoolVar(&f.offline, "offline", false, "Do not fetch the scannable code image")
	cmd.Flags().StringVar(&f.qrURL, "qr-service", certificate.DefaultCodeServiceURL, "Code image service base URL")
	cmd.Flags().IntVar(&f.scale, "scale", document.DefaultScale, "Raster scale factor")
	cmd.Flags().Float64Var(&f.pageHeight, "page-height", document.DefaultPageHeight, "Page height in mm")
	_ = cmd.MarkFlagRequired("ngo")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func runRender(ctx context.Context, opts *options, f *renderFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.logger()
	directory, err := static.Load(f.seedPath)
	if err != nil {
		return err
	}
	req := domain.DonationRequest{
		DonorName:  f.donorName,
		DonorEmail: f.donorEmail,
		Type:       domain.DonationType(f.kind),
		Amount:     f.amount,
		NGOID:      f.ngoID,
	}
	req.Normalize()
	validator := donation.NewValidator()
	if err := validator.Validate(req, nil); err != nil {
		return err
	}
	ngo, err := directory.GetByID(ctx, req.NGOID)
	if err != nil {
		return fmt.Errorf("ngo %q: %w", req.NGOID, err)
	}
	if err := validator.Validate(req, ngo); err != nil {
		return err
	}

	completed := time.Now().UTC()
	if f.date != "" {
		if completed, err = time.Parse(time.RFC3339, f.date); err != nil {
			return fmt.Errorf("--date: %w", err)
		}
	}
	id := strings.TrimSpace(f.id)
	if id == "" {
		id = donation.UUIDGenerator{Prefix: donation.DefaultPrefix}.Next()
	}
	d := domain.CompletedDonation{
		ID:         id,
		Amount:     req.Amount,
		NGOID:      ngo.ID,
		NGOName:    ngo.Name,
		DonorName:  req.DonorName,
		DonorEmail: req.DonorEmail,
		Type:       req.Type,
		Date:       completed,
		Status:     domain.DonationCompleted,
	}

	var fetcher certificate.CodeFetcher
	if !f.offline {
		fetcher = certificate.NewHTTPFetcher(certificate.HTTPFetcherOptions{})
	}
	certs := certificate.NewService(certificate.ServiceOptions{
		Codes:   certificate.CodeService{BaseURL: f.qrURL},
		Fetcher: fetcher,
		Logger:  logger,
	})
	cert, err := certs.Prepare(d, i18n.Match(f.locale, i18n.Default))
	if err != nil {
		return err
	}
	pages := document.NewPaginator(document.Options{Scale: f.scale, PageHeight: f.pageHeight, Logger: logger})
	canvas := certs.Canvas(cert)

	var (
		name string
		data []byte
	)
	switch strings.ToLower(f.format) {
	case "pdf":
		doc, err := pages.Generate(ctx, canvas, d.ID)
		if err != nil {
			return err
		}
		name, data = doc.Name, doc.Data
	case document.FormatPNG, document.FormatWebP:
		format := strings.ToLower(f.format)
		if data, err = pages.Preview(ctx, canvas, format, 0); err != nil {
			return err
		}
		name = document.FileName(d.ID, format)
	case "zip":
		payload, err := cert.Payload.Encode()
		if err != nil {
			return err
		}
		doc, err := pages.Bundle(ctx, canvas, d.ID, []byte(payload), 0)
		if err != nil {
			return err
		}
		name, data = doc.Name, doc.Data
	default:
		return fmt.Errorf("unsupported format %q", f.format)
	}

	store, err := storage.NewFileStore(f.outDir)
	if err != nil {
		return err
	}
	key, err := store.Write(ctx, name, data)
	if err != nil {
		return err
	}
	path, _ := store.Path(key)
	fmt.Fprintln(opts.out, path)
	return nil
}

package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"aidconnect/internal/certificate"
	"aidconnect/internal/document"
	"aidconnect/internal/domain"
	"aidconnect/internal/i18n"
	"aidconnect/internal/session"
)

// certificate returns the session's certificate, localized by ?locale= when
// given.
func (a *App) certificate(w http.ResponseWriter, r *http.Request) (*session.Session, certificate.Certificate, bool) {
	sess, ok := a.session(w, r)
	if !ok {
		return nil, certificate.Certificate{}, false
	}
	cert, ok := sess.Certificate()
	if !ok {
		a.fail(w, r, fmt.Errorf("certificate: %w", domain.ErrNotFound))
		return nil, certificate.Certificate{}, false
	}
	if raw := r.URL.Query().Get("locale"); raw != "" {
		cert = a.Certificates.Localize(cert, i18n.Match(raw, sess.Locale))
	}
	return sess, cert, true
}

func (a *App) GetCertificate(w http.ResponseWriter, r *http.Request) {
	_, cert, ok := a.certificate(w, r)
	if !ok {
		return
	}
	a.json(w, http.StatusOK, cert)
}

// CertificatePDF renders and paginates the certificate. Closing the session
// abandons an in-flight render.
func (a *App) CertificatePDF(w http.ResponseWriter, r *http.Request) {
	sess, cert, ok := a.certificate(w, r)
	if !ok {
		return
	}
	ctx, cancel := sess.RenderContext(r.Context())
	defer cancel()

	doc, err := a.Documents.Generate(ctx, a.Certificates.Canvas(cert), cert.Donation.ID)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.attachment(w, "application/pdf", doc.Name, doc.Data)
}

func (a *App) CertificatePreview(w http.ResponseWriter, r *http.Request) {
	sess, cert, ok := a.certificate(w, r)
	if !ok {
		return
	}
	format, err := document.PreviewFormat(r.URL.Query().Get("format"))
	if err != nil {
		a.fail(w, r, &domain.ValidationError{Fields: map[string]string{"format": "must be png or webp"}})
		return
	}
	ctx, cancel := sess.RenderContext(r.Context())
	defer cancel()

	data, err := a.Documents.Preview(ctx, a.Certificates.Canvas(cert), format, a.PreviewWidth)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", document.ContentType(format))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (a *App) CertificateBundle(w http.ResponseWriter, r *http.Request) {
	sess, cert, ok := a.certificate(w, r)
	if !ok {
		return
	}
	payload, err := cert.Payload.Encode()
	if err != nil {
		a.fail(w, r, err)
		return
	}
	ctx, cancel := sess.RenderContext(r.Context())
	defer cancel()

	doc, err := a.Documents.Bundle(ctx, a.Certificates.Canvas(cert), cert.Donation.ID, []byte(payload), a.PreviewWidth)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.attachment(w, "application/zip", doc.Name, doc.Data)
}

func (a *App) attachment(w http.ResponseWriter, contentType, name string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

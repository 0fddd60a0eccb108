package certificate

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"aidconnect/internal/domain"
)

// VerificationPayload is the subset of a donation embedded in the
// scannable code. It is a pure projection of domain.CompletedDonation.
type VerificationPayload struct {
	ID     string `json:"id"`
	Amount int64  `json:"amount"`
	NGO    string `json:"ngo"`
	Date   string `json:"date"`
	Donor  string `json:"donor"`
}

// BuildPayload projects d onto its verification fields.
func BuildPayload(d domain.CompletedDonation) VerificationPayload {
	return VerificationPayload{
		ID:     d.ID,
		Amount: d.Amount,
		NGO:    d.NGOName,
		Date:   d.DateISO(),
		Donor:  d.DonorEmail,
	}
}

// Encode serializes the payload as compact JSON.
func (p VerificationPayload) Encode() (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode verification payload: %w", err)
	}
	return string(raw), nil
}

// ParsePayload reads a payload produced by Encode.
func ParsePayload(s string) (VerificationPayload, error) {
	var p VerificationPayload
	dec := json.NewDecoder(strings.NewReader(strings.TrimSpace(s)))
	if err := dec.Decode(&p); err != nil {
		return VerificationPayload{}, fmt.Errorf("parse verification payload: %w", err)
	}
	if strings.TrimSpace(p.ID) == "" {
		return VerificationPayload{}, errors.New("parse verification payload: id is required")
	}
	return p, nil
}

package domain

import (
	"strings"
	"time"
)

// ISOTimestamp mirrors the millisecond precision ISO-8601 layout used for
// donation completion timestamps.
const ISOTimestamp = "2006-01-02T15:04:05.000Z07:00"

// MealUnit is the amount that funds a single meal in impact statements.
const MealUnit int64 = 50

// DonationType enumerates what a donor can give. The accepted subset is
// NGO-specific and comes from the directory.
type DonationType string

const (
	DonationMoney        DonationType = "Money"
	DonationFood         DonationType = "Food"
	DonationClothes      DonationType = "Clothes"
	DonationVolunteering DonationType = "Volunteering"
)

// IsMoney reports whether the donation carries an amount.
func (t DonationType) IsMoney() bool {
	return strings.EqualFold(string(t), string(DonationMoney))
}

// Canonical maps case variants of the known types onto their constant.
func (t DonationType) Canonical() DonationType {
	for _, known := range []DonationType{DonationMoney, DonationFood, DonationClothes, DonationVolunteering} {
		if strings.EqualFold(string(t), string(known)) {
			return known
		}
	}
	return t
}

// DonationStatus is fixed to completed; partial states are not modelled.
type DonationStatus string

const DonationCompleted DonationStatus = "completed"

// DonationRequest is the submitted donation form.
type DonationRequest struct {
	DonorName  string       `json:"donor_name" validate:"required"`
	DonorEmail string       `json:"donor_email" validate:"required,email"`
	Type       DonationType `json:"donation_type" validate:"required"`
	Amount     int64        `json:"amount" validate:"required_if=Type Money,gte=0"`
	NGOID      string       `json:"ngo_id" validate:"required"`
}

// Normalize trims free-form fields and clears the amount for non-money
// donations.
func (r *DonationRequest) Normalize() {
	r.DonorName = strings.TrimSpace(r.DonorName)
	r.DonorEmail = strings.TrimSpace(r.DonorEmail)
	r.NGOID = strings.TrimSpace(r.NGOID)
	r.Type = DonationType(strings.TrimSpace(string(r.Type)))
	if r.Type == "" {
		r.Type = DonationMoney
	}
	r.Type = r.Type.Canonical()
	if !r.Type.IsMoney() {
		r.Amount = 0
	}
}

// CompletedDonation is the immutable record produced once processing ends.
type CompletedDonation struct {
	ID         string         `json:"id"`
	Amount     int64          `json:"amount"`
	NGOID      string         `json:"ngo_id"`
	NGOName    string         `json:"ngo_name"`
	DonorName  string         `json:"donor_name"`
	DonorEmail string         `json:"donor_email"`
	Type       DonationType   `json:"donation_type"`
	Date       time.Time      `json:"date"`
	Status     DonationStatus `json:"status"`
}

// DateISO renders the completion time the way it is embedded in payloads.
func (d CompletedDonation) DateISO() string {
	return d.Date.UTC().Format(ISOTimestamp)
}

// MealsFunded is the illustrative impact count for an amount.
func MealsFunded(amount int64) int64 {
	if amount <= 0 {
		return 0
	}
	return amount / MealUnit
}

// FlowState tracks the donation flow of one session.
type FlowState string

const (
	FlowIdle             FlowState = "idle"
	FlowProcessing       FlowState = "processing"
	FlowCompleted        FlowState = "completed"
	FlowCertificateReady FlowState = "certificate_ready"
	FlowFailed           FlowState = "failed"
)

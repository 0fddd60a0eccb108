package certificate

import (
	"fmt"
	"time"

	"golang.org/x/text/language"

	"aidconnect/internal/domain"
	"aidconnect/internal/i18n"
)

const (
	Brand    = "AidConnect"
	Subtitle = "Digital Donation Certificate"
)

// Row is one labelled detail line.
type Row struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// View is the human-readable certificate body. It is a deterministic
// projection of a completed donation for one locale.
type View struct {
	Brand       string   `json:"brand"`
	Subtitle    string   `json:"subtitle"`
	Heading     string   `json:"heading"`
	ThankYou    string   `json:"thank_you"`
	Rows        []Row    `json:"rows"`
	ImpactTitle string   `json:"impact_title"`
	Impact      string   `json:"impact"`
	TaxTitle    string   `json:"tax_title"`
	TaxNote     string   `json:"tax_note"`
	CodeURL     string   `json:"code_url"`
	CodeCaption string   `json:"code_caption"`
	VerifyTitle string   `json:"verify_title"`
	VerifyNote  string   `json:"verify_note"`
	Hash        string   `json:"hash"`
	Footer      []string `json:"footer"`
	Locale      string   `json:"locale"`
}

// NewView renders d for tag. generatedAt feeds the footer date.
func NewView(d domain.CompletedDonation, codeURL string, tag language.Tag, generatedAt time.Time) View {
	amount := i18n.Amount(tag, d.Amount)
	rows := []Row{}
	if d.Type.IsMoney() {
		rows = append(rows, Row{Label: "Donation Amount", Value: amount})
	} else {
		rows = append(rows, Row{Label: "Donation", Value: i18n.Title(tag, string(d.Type))})
	}
	rows = append(rows,
		Row{Label: "NGO", Value: d.NGOName},
		Row{Label: "Date", Value: i18n.Date(tag, d.Date)},
		Row{Label: "Transaction ID", Value: d.ID},
		Row{Label: "Donor", Value: d.DonorEmail},
	)

	return View{
		Brand:       Brand,
		Subtitle:    Subtitle,
		Heading:     "Certificate of Donation",
		ThankYou:    "Thank you for your generous contribution to making a difference!",
		Rows:        rows,
		ImpactTitle: "Your Impact",
		Impact:      ImpactStatement(d, tag),
		TaxTitle:    "80G Tax Exemption",
		TaxNote:     "This donation is eligible for tax deduction under Section 80G of the Income Tax Act",
		CodeURL:     codeURL,
		CodeCaption: "Scan to verify",
		VerifyTitle: "Blockchain Verified",
		VerifyNote:  "This donation is recorded on an immutable blockchain ledger",
		Hash:        "Hash: " + ShortHash(d.ID),
		Footer: []string{
			fmt.Sprintf("Generated on %s • %s Platform", i18n.Date(tag, generatedAt), Brand),
			"This is a digitally generated certificate with blockchain verification",
		},
		Locale: tag.String(),
	}
}

// ImpactStatement uses the same meal formula as the impact notification.
func ImpactStatement(d domain.CompletedDonation, tag language.Tag) string {
	if d.Type.IsMoney() {
		return fmt.Sprintf("Your %s donation has provided %s meals to children in need through %s.",
			i18n.Amount(tag, d.Amount), i18n.Number(tag, domain.MealsFunded(d.Amount)), d.NGOName)
	}
	return fmt.Sprintf("Your %s donation supports the work of %s.", i18n.Title(tag, string(d.Type)), d.NGOName)
}

// ShortHash abbreviates an identifier as first8...last8. The hash is
// cosmetic and carries no cryptographic meaning.
func ShortHash(id string) string {
	if len(id) <= 16 {
		return id
	}
	return id[:8] + "..." + id[len(id)-8:]
}

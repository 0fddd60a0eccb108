package donation

import (
	"errors"
	"testing"

	"aidconnect/internal/domain"
)

func TestValidator(t *testing.T) {
	v := NewValidator()
	tests := []struct {
		name      string
		mutate    func(r *domain.DonationRequest)
		wantField string
	}{
		{name: "valid money", mutate: func(r *domain.DonationRequest) {}},
		{name: "missing name", mutate: func(r *domain.DonationRequest) { r.DonorName = "" }, wantField: "donor_name"},
		{name: "missing email", mutate: func(r *domain.DonationRequest) { r.DonorEmail = "" }, wantField: "donor_email"},
		{name: "email without at", mutate: func(r *domain.DonationRequest) { r.DonorEmail = "ax.com" }, wantField: "donor_email"},
		{name: "zero money amount", mutate: func(r *domain.DonationRequest) { r.Amount = 0 }, wantField: "amount"},
		{name: "negative money amount", mutate: func(r *domain.DonationRequest) { r.Amount = -5 }, wantField: "amount"},
		{name: "food without amount", mutate: func(r *domain.DonationRequest) { r.Type = domain.DonationFood; r.Amount = 0 }},
		{name: "missing ngo", mutate: func(r *domain.DonationRequest) { r.NGOID = "" }, wantField: "ngo_id"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := moneyRequest(100)
			tc.mutate(&req)
			err := v.Validate(req, nil)
			if tc.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if _, ok := verr.Fields[tc.wantField]; !ok {
				t.Fatalf("expected field %q in %v", tc.wantField, verr.Fields)
			}
		})
	}
}

func TestNormalizeClearsAmountForGoods(t *testing.T) {
	req := domain.DonationRequest{DonorName: "  B ", Type: domain.DonationClothes, Amount: 40}
	req.Normalize()
	if req.Amount != 0 || req.DonorName != "B" {
		t.Fatalf("normalized = %+v", req)
	}
	empty := domain.DonationRequest{}
	empty.Normalize()
	if empty.Type != domain.DonationMoney {
		t.Fatalf("default type = %q", empty.Type)
	}
}

func TestUUIDGeneratorUnique(t *testing.T) {
	g := UUIDGenerator{}
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := g.Next()
		if len(id) != len(DefaultPrefix)+32 {
			t.Fatalf("unexpected id shape %q", id)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = struct{}{}
	}
}

package donation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"aidconnect/internal/domain"
)

// Validator checks donation forms before they may enter processing.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{v: v}
}

// Validate runs the field rules and, when ngo is known, checks that the NGO
// accepts the donation type. Failures are *domain.ValidationError.
func (val *Validator) Validate(req domain.DonationRequest, ngo *domain.NGO) error {
	if err := val.v.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validate donation: %w", err)
		}
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = messageFor(fe)
		}
		return &domain.ValidationError{Fields: fields}
	}
	if ngo != nil && len(ngo.AcceptedDonations) > 0 && !ngo.Accepts(req.Type) {
		return &domain.ValidationError{Fields: map[string]string{
			"donation_type": fmt.Sprintf("%s is not accepted by %s", req.Type, ngo.Name),
		}}
	}
	return nil
}

func messageFor(fe validator.FieldError) string {
	switch fe.Field() {
	case "amount":
		return "must be at least 1 for money donations"
	case "donor_email":
		if fe.Tag() == "email" {
			return "must be a valid email address"
		}
	}
	switch fe.Tag() {
	case "required":
		return "is required"
	default:
		return "failed " + fe.Tag()
	}
}

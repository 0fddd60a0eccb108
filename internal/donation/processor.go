package donation

import (
	"context"

	"aidconnect/internal/domain"
)

// PaymentProcessor settles a donation once the processing delay has passed.
// Returning an error moves the flow to Failed.
type PaymentProcessor interface {
	Charge(ctx context.Context, donation domain.CompletedDonation) error
}

// SimulatedProcessor accepts every donation.
type SimulatedProcessor struct{}

func (SimulatedProcessor) Charge(ctx context.Context, _ domain.CompletedDonation) error {
	return ctx.Err()
}

// ProcessorFunc adapts a function to PaymentProcessor.
type ProcessorFunc func(ctx context.Context, donation domain.CompletedDonation) error

func (f ProcessorFunc) Charge(ctx context.Context, donation domain.CompletedDonation) error {
	return f(ctx, donation)
}

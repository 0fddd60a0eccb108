package domain

import "context"

// NGODirectory is the read-only NGO lookup consumed by the donation flow and
// the certificate renderer. GetByID returns ErrNotFound for unknown ids.
type NGODirectory interface {
	GetByID(ctx context.Context, id string) (*NGO, error)
	List(ctx context.Context) ([]NGO, error)
}

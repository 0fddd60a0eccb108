package repo

import (
	"context"
	"fmt"
	"strings"

	"aidconnect/internal/domain"
	"aidconnect/internal/infra"
	"aidconnect/internal/sqlinline"
)

// NGORepositoryPG serves the NGO directory from PostgreSQL.
type NGORepositoryPG struct {
	db infra.SQLExecutor
}

func NewNGORepository(db infra.SQLExecutor) *NGORepositoryPG {
	return &NGORepositoryPG{db: db}
}

// EnsureSchema creates the ngos table when it is missing.
func (r *NGORepositoryPG) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, sqlinline.QEnsureNGOSchema); err != nil {
		return fmt.Errorf("ensure ngo schema: %w", err)
	}
	return nil
}

// Seed upserts ngos by id.
func (r *NGORepositoryPG) Seed(ctx context.Context, ngos []domain.NGO) error {
	for _, ngo := range ngos {
		_, err := r.db.Exec(ctx, sqlinline.QUpsertNGO,
			ngo.ID, ngo.Name, ngo.Description, ngo.Category, ngo.Address, ngo.City, ngo.Website,
			typesToStrings(ngo.AcceptedDonations))
		if err != nil {
			return fmt.Errorf("seed ngo %q: %w", ngo.ID, err)
		}
	}
	return nil
}

// Count returns the number of stored NGOs.
func (r *NGORepositoryPG) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, sqlinline.QCountNGOs).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *NGORepositoryPG) GetByID(ctx context.Context, id string) (*domain.NGO, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrNotFound
	}
	var (
		ngo      domain.NGO
		accepted []string
	)
	err := r.db.QueryRow(ctx, sqlinline.QSelectNGOByID, id).Scan(
		&ngo.ID, &ngo.Name, &ngo.Description, &ngo.Category, &ngo.Address, &ngo.City, &ngo.Website, &accepted)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	ngo.AcceptedDonations = stringsToTypes(accepted)
	return &ngo, nil
}

func (r *NGORepositoryPG) List(ctx context.Context) ([]domain.NGO, error) {
	rows, err := r.db.Query(ctx, sqlinline.QListNGOs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.NGO
	for rows.Next() {
		var (
			ngo      domain.NGO
			accepted []string
		)
		if err := rows.Scan(&ngo.ID, &ngo.Name, &ngo.Description, &ngo.Category, &ngo.Address, &ngo.City, &ngo.Website, &accepted); err != nil {
			return nil, err
		}
		ngo.AcceptedDonations = stringsToTypes(accepted)
		items = append(items, ngo)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func typesToStrings(in []domain.DonationType) []string {
	out := make([]string, 0, len(in))
	for _, t := range in {
		out = append(out, string(t))
	}
	return out
}

func stringsToTypes(in []string) []domain.DonationType {
	out := make([]domain.DonationType, 0, len(in))
	for _, s := range in {
		out = append(out, domain.DonationType(s).Canonical())
	}
	return out
}

var _ domain.NGODirectory = (*NGORepositoryPG)(nil)

package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"aidconnect/internal/domain"
	"aidconnect/internal/sqlinline"
)

type simpleRow struct {
	scan func(dest ...any) error
}

func (r simpleRow) Scan(dest ...any) error {
	if r.scan == nil {
		return pgx.ErrNoRows
	}
	return r.scan(dest...)
}

type ngoRows struct {
	items []domain.NGO
	idx   int
}

func (r *ngoRows) Close()                                       {}
func (r *ngoRows) Err() error                                   { return nil }
func (r *ngoRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *ngoRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *ngoRows) Conn() *pgx.Conn                              { return nil }
func (r *ngoRows) RawValues() [][]byte                          { return nil }
func (r *ngoRows) Values() ([]any, error) {
	return nil, fmt.Errorf("values not supported in test rows")
}

func (r *ngoRows) Next() bool {
	if r.idx >= len(r.items) {
		return false
	}
	r.idx++
	return true
}

func (r *ngoRows) Scan(dest ...any) error {
	return scanNGO(r.items[r.idx-1], dest)
}

func scanNGO(ngo domain.NGO, dest []any) error {
	if len(dest) != 8 {
		return fmt.Errorf("unexpected dest count %d", len(dest))
	}
	*dest[0].(*string) = ngo.ID
	*dest[1].(*string) = ngo.Name
	*dest[2].(*string) = ngo.Description
	*dest[3].(*string) = ngo.Category
	*dest[4].(*string) = ngo.Address
	*dest[5].(*string) = ngo.City
	*dest[6].(*string) = ngo.Website
	*dest[7].(*[]string) = typesToStrings(ngo.AcceptedDonations)
	return nil
}

type stubExecutor struct {
	ngos  map[string]domain.NGO
	order []string
	execs []string
	fail  error
}

func (s *stubExecutor) Exec(_ context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	if s.fail != nil {
		return pgconn.CommandTag{}, s.fail
	}
	s.execs = append(s.execs, query)
	if query == sqlinline.QUpsertNGO {
		ngo := domain.NGO{ID: args[0].(string), Name: args[1].(string)}
		ngo.AcceptedDonations = stringsToTypes(args[7].([]string))
		if _, ok := s.ngos[ngo.ID]; !ok {
			s.order = append(s.order, ngo.ID)
		}
		s.ngos[ngo.ID] = ngo
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (s *stubExecutor) QueryRow(_ context.Context, query string, args ...any) pgx.Row {
	switch query {
	case sqlinline.QSelectNGOByID:
		ngo, ok := s.ngos[args[0].(string)]
		if !ok {
			return simpleRow{}
		}
		return simpleRow{scan: func(dest ...any) error { return scanNGO(ngo, dest) }}
	case sqlinline.QCountNGOs:
		return simpleRow{scan: func(dest ...any) error {
			*dest[0].(*int) = len(s.ngos)
			return nil
		}}
	}
	return simpleRow{scan: func(...any) error { return errors.New("unexpected query") }}
}

func (s *stubExecutor) Query(_ context.Context, query string, _ ...any) (pgx.Rows, error) {
	if query != sqlinline.QListNGOs {
		return nil, errors.New("unexpected query")
	}
	rows := &ngoRows{}
	for _, id := range s.order {
		rows.items = append(rows.items, s.ngos[id])
	}
	return rows, nil
}

func TestNGORepositorySeedAndLookup(t *testing.T) {
	exec := &stubExecutor{ngos: map[string]domain.NGO{}}
	repo := NewNGORepository(exec)
	ctx := context.Background()

	if err := repo.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	if !strings.Contains(exec.execs[0], "create table if not exists ngos") {
		t.Fatalf("unexpected schema query: %q", exec.execs[0])
	}

	err := repo.Seed(ctx, []domain.NGO{
		{ID: "blue-cross-india", Name: "Blue Cross of India", AcceptedDonations: []domain.DonationType{domain.DonationMoney}},
		{ID: "goonj", Name: "Goonj", AcceptedDonations: []domain.DonationType{"clothes"}},
	})
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}

	n, err := repo.Count(ctx)
	if err != nil || n != 2 {
		t.Fatalf("Count = %d, %v", n, err)
	}

	ngo, err := repo.GetByID(ctx, " goonj ")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !ngo.Accepts(domain.DonationClothes) {
		t.Fatalf("expected canonical clothes type, got %#v", ngo.AcceptedDonations)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].ID != "blue-cross-india" {
		t.Fatalf("unexpected list: %#v", list)
	}
}

func TestNGORepositoryNotFound(t *testing.T) {
	repo := NewNGORepository(&stubExecutor{ngos: map[string]domain.NGO{}})
	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.GetByID(context.Background(), ""); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for blank id, got %v", err)
	}
}

func TestNGORepositorySeedError(t *testing.T) {
	repo := NewNGORepository(&stubExecutor{ngos: map[string]domain.NGO{}, fail: errors.New("down")})
	err := repo.Seed(context.Background(), []domain.NGO{{ID: "x", Name: "X"}})
	if err == nil || !strings.Contains(err.Error(), `seed ngo "x"`) {
		t.Fatalf("expected wrapped seed error, got %v", err)
	}
}

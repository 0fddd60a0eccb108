// Package static serves the NGO directory from a YAML document, either the
// embedded seed or a file supplied at startup.
package static

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"aidconnect/internal/domain"
)

//go:embed ngos.yaml
var seed []byte

type document struct {
	NGOs []domain.NGO `yaml:"ngos"`
}

// Directory is an immutable in-memory NGO directory.
type Directory struct {
	byID  map[string]domain.NGO
	order []string
}

// Default returns the directory built from the embedded seed.
func Default() (*Directory, error) {
	return Parse(seed)
}

// Load reads a YAML directory from path. An empty path yields Default.
func Load(path string) (*Directory, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ngo directory: %w", err)
	}
	return Parse(raw)
}

// Parse decodes and validates a YAML directory.
func Parse(raw []byte) (*Directory, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse ngo directory: %w", err)
	}
	d := &Directory{byID: make(map[string]domain.NGO, len(doc.NGOs))}
	for i, ngo := range doc.NGOs {
		ngo.ID = strings.TrimSpace(ngo.ID)
		if ngo.ID == "" || strings.TrimSpace(ngo.Name) == "" {
			return nil, fmt.Errorf("ngo directory entry %d: id and name are required", i)
		}
		if _, dup := d.byID[ngo.ID]; dup {
			return nil, fmt.Errorf("ngo directory: duplicate id %q", ngo.ID)
		}
		if len(ngo.AcceptedDonations) == 0 {
			return nil, fmt.Errorf("ngo directory: %q accepts no donation types", ngo.ID)
		}
		for j, t := range ngo.AcceptedDonations {
			ngo.AcceptedDonations[j] = t.Canonical()
		}
		d.byID[ngo.ID] = ngo
		d.order = append(d.order, ngo.ID)
	}
	if len(d.order) == 0 {
		return nil, errors.New("ngo directory is empty")
	}
	sort.SliceStable(d.order, func(i, j int) bool {
		return d.byID[d.order[i]].Name < d.byID[d.order[j]].Name
	})
	return d, nil
}

func (d *Directory) GetByID(_ context.Context, id string) (*domain.NGO, error) {
	ngo, ok := d.byID[strings.TrimSpace(id)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := clone(ngo)
	return &out, nil
}

func (d *Directory) List(context.Context) ([]domain.NGO, error) {
	out := make([]domain.NGO, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, clone(d.byID[id]))
	}
	return out, nil
}

func clone(n domain.NGO) domain.NGO {
	n.AcceptedDonations = append([]domain.DonationType(nil), n.AcceptedDonations...)
	return n
}

var _ domain.NGODirectory = (*Directory)(nil)

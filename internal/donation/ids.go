package donation

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// DefaultPrefix starts every donation identifier.
const DefaultPrefix = "DON"

// IDGenerator hands out donation identifiers that never repeat.
type IDGenerator interface {
	Next() string
}

// UUIDGenerator appends a random UUID in upper-case hex to the prefix.
type UUIDGenerator struct {
	Prefix string
}

func (g UUIDGenerator) Next() string {
	prefix := g.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return prefix + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}

// SequenceGenerator yields PREFIX000001, PREFIX000002, ...
type SequenceGenerator struct {
	Prefix string

	mu sync.Mutex
	n  int
}

func (g *SequenceGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	prefix := g.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return fmt.Sprintf("%s%06d", prefix, g.n)
}

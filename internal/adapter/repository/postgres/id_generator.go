package postgres

import (
	"github.com/oklog/ulid/v2"
)

// ULIDGenerator issues lexicographically sortable identifiers. Funding
// references and catalog IDs share the same generator so index locality
// follows insertion order.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate returns a fresh ULID string.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}

package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Asset is a tradable instrument. Symbols are stored upper-case and are
// unique; assets are reference data seeded once and read-only afterwards.
type Asset struct {
	ID     uuid.UUID
	Symbol string
	Name   string
}

// NormalizeSymbol trims and upper-cases a user-supplied symbol so lookups
// are case-insensitive.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Package reconciliation implements the collection-reconciliation engine.
package reconciliation

import (
	"github.com/google/uuid"

	"github.com/field-console/backend/internal/domain/valueobject"
)

// guardKey identifies one attribution of a record. The member is implicit:
// a Guard lives for exactly one member's aggregation pass.
type guardKey struct {
	date     valueobject.CalendarDate
	recordID uuid.UUID
}

// Guard is the double-counting guard: a pass-scoped set of already
// attributed records. Created empty at the start of one member's pass and
// discarded afterwards; never shared across members or goroutines.
type Guard struct {
	claimed map[guardKey]struct{}
	skips   int
}

// NewGuard creates an empty guard for one member pass.
func NewGuard() *Guard {
	return &Guard{claimed: make(map[guardKey]struct{})}
}

// Claim atomically checks and inserts the record's attribution key. It
// returns true when the record was not yet attributed; false means the
// record was already counted elsewhere in this pass and must be skipped,
// which increments the skip counter.
func (g *Guard) Claim(date valueobject.CalendarDate, recordID uuid.UUID) bool {
	key := guardKey{date: date, recordID: recordID}
	if _, exists := g.claimed[key]; exists {
		g.skips++
		return false
	}
	g.claimed[key] = struct{}{}
	return true
}

// Skips returns how many attribution attempts the guard rejected.
func (g *Guard) Skips() int {
	return g.skips
}

package attendance

import "context"

// Repository persists the full ordered collection of records as one unit.
// Implementations live in infrastructure/persistence.
type Repository interface {
	// Load returns the persisted records in their stored order.
	// An absent entry yields an empty slice and no error.
	// Undecodable data is reported with shared.ErrPersistenceRead.
	Load(ctx context.Context) ([]Record, error)

	// Save replaces the persisted collection with records.
	// Failures are reported with shared.ErrPersistenceWrite.
	Save(ctx context.Context, records []Record) error
}

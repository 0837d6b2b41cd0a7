package repository

import "skyfare/internal/domain/entity"

// FlightRecordRepository is the in-memory map behind a local flight store,
// keyed by dedup key. Implementations need not be safe for concurrent use.
type FlightRecordRepository interface {
	Get(key string) (entity.FlightRecord, bool)
	// Put inserts the record and reports false when key is already present
	Put(key string, record entity.FlightRecord) bool
	// Delete reports whether key was present
	Delete(key string) bool
	Values() []entity.FlightRecord
	Len() int
	Reset()
}

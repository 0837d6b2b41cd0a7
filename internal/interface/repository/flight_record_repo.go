package repository

import (
	"skyfare/internal/domain/entity"
	"skyfare/internal/domain/repository"
)

// MapFlightRecordRepository implements FlightRecordRepository over a hash
// map, remembering insertion order for listings
type MapFlightRecordRepository struct {
	records map[string]entity.FlightRecord
	order   []string
}

// NewMapFlightRecordRepository creates an empty record map
func NewMapFlightRecordRepository() repository.FlightRecordRepository {
	return &MapFlightRecordRepository{
		records: make(map[string]entity.FlightRecord),
	}
}

// Get returns the record stored under key
func (r *MapFlightRecordRepository) Get(key string) (entity.FlightRecord, bool) {
	record, ok := r.records[key]
	return record, ok
}

// Put inserts the record; an existing key keeps its first record
func (r *MapFlightRecordRepository) Put(key string, record entity.FlightRecord) bool {
	if _, exists := r.records[key]; exists {
		return false
	}
	r.records[key] = record
	r.order = append(r.order, key)
	return true
}

// Delete removes the record stored under key
func (r *MapFlightRecordRepository) Delete(key string) bool {
	if _, exists := r.records[key]; !exists {
		return false
	}
	delete(r.records, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Values returns the records in insertion order
func (r *MapFlightRecordRepository) Values() []entity.FlightRecord {
	values := make([]entity.FlightRecord, 0, len(r.order))
	for _, key := range r.order {
		values = append(values, r.records[key])
	}
	return values
}

func (r *MapFlightRecordRepository) Len() int {
	return len(r.records)
}

// Reset drops every record
func (r *MapFlightRecordRepository) Reset() {
	r.records = make(map[string]entity.FlightRecord)
	r.order = nil
}

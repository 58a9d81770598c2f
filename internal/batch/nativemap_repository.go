package batch

import (
	"sort"
	"sync"
)

// NativeMapRepository is an implementation of batch.Repository, supported by standard native in-memory map
type NativeMapRepository struct {
	mutex   sync.RWMutex
	batches map[string]HistoricalBatch
}

// NewNativeMapRepository returns a new instance of NativeMapRepository holding the given batches
func NewNativeMapRepository(batches []HistoricalBatch) Repository {
	r := NativeMapRepository{
		batches: make(map[string]HistoricalBatch, len(batches)),
	}
	for _, b := range batches {
		r.batches[b.ID] = b
	}

	var ifm Repository = &r
	return ifm
}

// Get returns a batch by its id
func (r *NativeMapRepository) Get(id string) (HistoricalBatch, bool, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	b, found := r.batches[id]
	return b, found, nil
}

// GetAll returns every batch ordered by start time then id
func (r *NativeMapRepository) GetAll() ([]HistoricalBatch, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	batches := make([]HistoricalBatch, 0, len(r.batches))
	for _, b := range r.batches {
		batches = append(batches, b)
	}
	sort.Slice(batches, func(i, j int) bool {
		if !batches[i].StartTime.Equal(batches[j].StartTime) {
			return batches[i].StartTime.Before(batches[j].StartTime)
		}
		return batches[i].ID < batches[j].ID
	})
	return batches, nil
}

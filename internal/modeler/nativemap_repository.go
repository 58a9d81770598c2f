package modeler

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

const idPrefix = "MOD-"

// NativeMapRepository is an implementation of modeler.Repository, supported by standard native in-memory map
type NativeMapRepository struct {
	mutex      sync.RWMutex
	modelsByID map[string]ModelPair
	nextInt    func() int64
}

func intSeq(start int64) func() int64 {
	i := start
	return func() int64 {
		i++
		return i
	}
}

// NewNativeMapRepository returns a new instance of NativeMapRepository
func NewNativeMapRepository() Repository {
	r := NativeMapRepository{
		modelsByID: make(map[string]ModelPair),
		nextInt:    intSeq(0),
	}

	var isr Repository = &r
	return isr
}

// NewSeededRepository returns an in-memory repository holding the default model library
func NewSeededRepository() Repository {
	models := DefaultModels()
	r := &NativeMapRepository{
		modelsByID: make(map[string]ModelPair, len(models)),
		nextInt:    intSeq(int64(len(models))),
	}
	for _, m := range models {
		r.modelsByID[m.ID] = m
	}
	return r
}

// Create stores a new model pair and generates its id. An empty status defaults to Pending.
func (r *NativeMapRepository) Create(model ModelPair) (string, error) {
	if model.Status == "" {
		model.Status = StatusPending
	}
	if ok, err := model.IsValid(); !ok {
		return "", err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	for {
		model.ID = fmt.Sprintf("%s%03d", idPrefix, r.nextInt())
		if _, exists := r.modelsByID[model.ID]; !exists {
			break
		}
	}
	if model.Status == StatusActive {
		r.demoteActive()
	}
	r.modelsByID[model.ID] = model
	return model.ID, nil
}

// Get search and returns a model pair from the repository by its id
func (r *NativeMapRepository) Get(id string) (ModelPair, bool, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	model, found := r.modelsByID[id]
	return model, found, nil
}

// GetAll returns all model pairs ordered by id
func (r *NativeMapRepository) GetAll() ([]ModelPair, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return r.filter(func(ModelPair) bool { return true }), nil
}

// GetAllByStatus returns the model pairs of a lifecycle stage ordered by id
func (r *NativeMapRepository) GetAllByStatus(status Status) ([]ModelPair, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return r.filter(func(m ModelPair) bool { return m.Status == status }), nil
}

// Delete deletes a model pair from the repository
func (r *NativeMapRepository) Delete(id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.modelsByID[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(r.modelsByID, id)
	return nil
}

// Active returns the model pair currently used for live predictions
func (r *NativeMapRepository) Active() (ModelPair, bool, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, m := range r.modelsByID {
		if m.Status == StatusActive {
			return m, true, nil
		}
	}
	return ModelPair{}, false, nil
}

// Transition moves a model pair to its next lifecycle stage.
// Activating a model demotes the previously active one to Validated.
func (r *NativeMapRepository) Transition(id string, next Status) (ModelPair, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	model, ok := r.modelsByID[id]
	if !ok {
		return ModelPair{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if !model.Status.CanTransitionTo(next) {
		return ModelPair{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, model.Status, next)
	}

	if next == StatusActive {
		r.demoteActive()
	}
	model.Status = next
	r.modelsByID[id] = model
	return model, nil
}

func (r *NativeMapRepository) demoteActive() {
	for id, m := range r.modelsByID {
		if m.Status == StatusActive {
			m.Status = StatusValidated
			r.modelsByID[id] = m
		}
	}
}

func (r *NativeMapRepository) filter(keep func(ModelPair) bool) []ModelPair {
	models := make([]ModelPair, 0)
	for _, m := range r.modelsByID {
		if keep(m) {
			models = append(models, m)
		}
	}
	sort.Slice(models, func(i, j int) bool {
		return idNumber(models[i].ID) < idNumber(models[j].ID)
	})
	return models
}

func idNumber(id string) int64 {
	n, err := strconv.ParseInt(strings.TrimPrefix(id, idPrefix), 10, 64)
	if err != nil {
		return -1
	}
	return n
}

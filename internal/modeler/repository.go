package modeler

import "sync"

// Repository is a storage interface which can be implemented by multiple backend
// (in-memory map, sql database, in-memory cache, file system, ...)
// It allows standard CRUD operation on model pairs and enforces the status lifecycle
type Repository interface {
	Create(model ModelPair) (string, error)
	Get(id string) (ModelPair, bool, error)
	GetAll() ([]ModelPair, error)
	GetAllByStatus(status Status) ([]ModelPair, error)
	Delete(id string) error
	Active() (ModelPair, bool, error)
	Transition(id string, next Status) (ModelPair, error)
}

var (
	_globalRepositoryMu sync.RWMutex
	_globalRepository   Repository
)

// R is used to access the global repository singleton
func R() Repository {
	_globalRepositoryMu.RLock()
	defer _globalRepositoryMu.RUnlock()

	repository := _globalRepository
	return repository
}

// ReplaceGlobals affect a new repository to the global repository singleton
func ReplaceGlobals(repository Repository) func() {
	_globalRepositoryMu.Lock()
	defer _globalRepositoryMu.Unlock()

	prev := _globalRepository
	_globalRepository = repository
	return func() { ReplaceGlobals(prev) }
}

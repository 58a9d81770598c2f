package tag

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
)

var (
	// ErrNotFound is returned when no tag exists for an id
	ErrNotFound = errors.New("tag not found")
	// ErrAlreadyExists is returned when creating a tag with an id already in use
	ErrAlreadyExists = errors.New("tag already exists")
)

// NativeMapRepository is an implementation of tag.Repository, supported by standard native in-memory map
type NativeMapRepository struct {
	mutex  sync.RWMutex
	tags   map[string]TagConfig
	nextID int64
}

// NewNativeMapRepository returns a new instance of NativeMapRepository
func NewNativeMapRepository() Repository {
	r := NativeMapRepository{
		tags: make(map[string]TagConfig),
	}

	var ifm Repository = &r
	return ifm
}

// NewSeededRepository returns an in-memory repository holding the default tag mapping
func NewSeededRepository() Repository {
	r := &NativeMapRepository{
		tags: make(map[string]TagConfig),
	}
	for _, t := range DefaultTags() {
		r.tags[t.ID] = t
		r.bumpSeq(t.ID)
	}
	return r
}

// Create stores a new tag. An empty id is generated from an internal sequence.
func (r *NativeMapRepository) Create(tag TagConfig) (string, error) {
	if ok, err := tag.IsValid(); !ok {
		return "", err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if tag.ID == "" {
		for {
			r.nextID++
			tag.ID = strconv.FormatInt(r.nextID, 10)
			if _, exists := r.tags[tag.ID]; !exists {
				break
			}
		}
	} else if _, exists := r.tags[tag.ID]; exists {
		return "", fmt.Errorf("%w: %s", ErrAlreadyExists, tag.ID)
	} else {
		r.bumpSeq(tag.ID)
	}

	r.tags[tag.ID] = tag
	return tag.ID, nil
}

// Get returns a tag by its id
func (r *NativeMapRepository) Get(id string) (TagConfig, bool, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	tag, found := r.tags[id]
	return tag, found, nil
}

// Update replaces an existing tag
func (r *NativeMapRepository) Update(tag TagConfig) error {
	if ok, err := tag.IsValid(); !ok {
		return err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.tags[tag.ID]; !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, tag.ID)
	}
	r.tags[tag.ID] = tag
	return nil
}

// Delete removes a tag
func (r *NativeMapRepository) Delete(id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.tags[id]; !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(r.tags, id)
	return nil
}

// GetAll returns every tag ordered by id
func (r *NativeMapRepository) GetAll() ([]TagConfig, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	tags := make([]TagConfig, 0, len(r.tags))
	for _, t := range r.tags {
		tags = append(tags, t)
	}
	sortByID(tags)
	return tags, nil
}

// GetAllByType returns the tags of one category ordered by id
func (r *NativeMapRepository) GetAllByType(t Type) ([]TagConfig, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	tags := make([]TagConfig, 0)
	for _, tag := range r.tags {
		if tag.Type == t {
			tags = append(tags, tag)
		}
	}
	sortByID(tags)
	return tags, nil
}

func (r *NativeMapRepository) bumpSeq(id string) {
	if n, err := strconv.ParseInt(id, 10, 64); err == nil && n > r.nextID {
		r.nextID = n
	}
}

// sortByID orders numeric ids numerically, then the other ids lexically
func sortByID(tags []TagConfig) {
	sort.Slice(tags, func(i, j int) bool {
		a, errA := strconv.ParseInt(tags[i].ID, 10, 64)
		b, errB := strconv.ParseInt(tags[j].ID, 10, 64)
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		default:
			return tags[i].ID < tags[j].ID
		}
	})
}

package batch

import (
	"fmt"
	"slices"
	"sync"
)

// Set names one of the two datasets used to train a model pair
type Set string

const (
	SetTrain      Set = "train"
	SetValidation Set = "validation"
)

// SelectionView is the content of both datasets
type SelectionView struct {
	Training   []string `json:"training"`
	Validation []string `json:"validation"`
}

// Selection holds the batches picked for training and validation.
// A batch belongs to at most one of the two sets.
type Selection struct {
	mu         sync.Mutex
	training   []string
	validation []string
}

// NewSelection returns an empty selection
func NewSelection() *Selection {
	return &Selection{
		training:   make([]string, 0),
		validation: make([]string, 0),
	}
}

// Toggle adds a batch to a set, or removes it when it is already there.
// Adding a batch to a set removes it from the other one.
func (s *Selection) Toggle(id string, set Set) (SelectionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var target, other *[]string
	switch set {
	case SetTrain:
		target, other = &s.training, &s.validation
	case SetValidation:
		target, other = &s.validation, &s.training
	default:
		return s.view(), fmt.Errorf("%w: unknown set %q", ErrInvalidArgument, set)
	}

	*other = remove(*other, id)
	if slices.Contains(*target, id) {
		*target = remove(*target, id)
	} else {
		*target = append(*target, id)
	}
	return s.view(), nil
}

// View returns a copy of both sets
func (s *Selection) View() SelectionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

// Clear empties both sets
func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.training = make([]string, 0)
	s.validation = make([]string, 0)
}

// take returns and clears both sets, unless the training set is empty
func (s *Selection) take() (SelectionView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.training) == 0 {
		return SelectionView{}, false
	}
	v := s.view()
	s.training = make([]string, 0)
	s.validation = make([]string, 0)
	return v, true
}

// restore puts back a taken selection, keeping what was selected in between
func (s *Selection) restore(v SelectionView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range v.Training {
		if !slices.Contains(s.training, id) && !slices.Contains(s.validation, id) {
			s.training = append(s.training, id)
		}
	}
	for _, id := range v.Validation {
		if !slices.Contains(s.training, id) && !slices.Contains(s.validation, id) {
			s.validation = append(s.validation, id)
		}
	}
}

func (s *Selection) view() SelectionView {
	return SelectionView{
		Training:   slices.Clone(s.training),
		Validation: slices.Clone(s.validation),
	}
}

func remove(ids []string, id string) []string {
	return slices.DeleteFunc(ids, func(x string) bool { return x == id })
}

var (
	_globalSelectionMu sync.RWMutex
	_globalSelection   *Selection
)

// S is used to access the global selection singleton
func S() *Selection {
	_globalSelectionMu.RLock()
	defer _globalSelectionMu.RUnlock()

	selection := _globalSelection
	return selection
}

// ReplaceGlobalSelection affect a new selection to the global selection singleton
func ReplaceGlobalSelection(selection *Selection) func() {
	_globalSelectionMu.Lock()
	defer _globalSelectionMu.Unlock()

	prev := _globalSelection
	_globalSelection = selection
	return func() { ReplaceGlobalSelection(prev) }
}

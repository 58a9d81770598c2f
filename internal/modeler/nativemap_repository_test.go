package modeler

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	r := NewNativeMapRepository()
	if r == nil {
		t.Error("Model Repository is nil")
	}
}

func TestReplaceGlobal(t *testing.T) {
	r := NewNativeMapRepository()
	reverse := ReplaceGlobals(r)
	if R() == nil {
		t.Error("Global model repository is nil")
	}
	reverse()
	if R() != nil {
		t.Error("Global model repository is not nil after reverse")
	}
}

func TestCreate(t *testing.T) {
	r := NewNativeMapRepository()
	id, err := r.Create(ModelPair{Name: "Polishing-V2.0", TrainedDate: "2024-06-01", Accuracy: 90})
	if err != nil {
		t.Fatal(err)
	}
	if id != "MOD-001" {
		t.Errorf("invalid generated model id: %s", id)
	}

	model, found, err := r.Get(id)
	if err != nil {
		t.Error(err)
	}
	if !found {
		t.Fatal("model not found")
	}
	if model.Status != StatusPending {
		t.Errorf("a new model should be pending, got %s", model.Status)
	}

	if _, err := r.Create(ModelPair{}); !errors.Is(err, ErrInvalidModel) {
		t.Errorf("expected ErrInvalidModel, got %v", err)
	}
	if _, err := r.Create(ModelPair{Name: "x", TrainedDate: "15/04/2024"}); !errors.Is(err, ErrInvalidModel) {
		t.Errorf("expected ErrInvalidModel, got %v", err)
	}
}

func TestGet(t *testing.T) {
	r := NewNativeMapRepository()
	_, found, err := r.Get("MOD-001")
	if err != nil {
		t.Error(err)
	}
	if found {
		t.Error("found a model from nowhere")
	}
}

func TestSeededRepository(t *testing.T) {
	r := NewSeededRepository()
	models, err := r.GetAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(models) != 3 {
		t.Fatalf("invalid model count: %d", len(models))
	}
	for i, expected := range []string{"MOD-001", "MOD-002", "MOD-003"} {
		if models[i].ID != expected {
			t.Errorf("invalid order at %d: %s", i, models[i].ID)
		}
	}

	active, found, err := r.Active()
	if err != nil || !found || active.ID != "MOD-001" {
		t.Errorf("invalid active model: %v %v %v", active, found, err)
	}

	id, _ := r.Create(ModelPair{Name: "Polishing-V2.0"})
	if id != "MOD-004" {
		t.Errorf("sequence should continue after seeded models, got %s", id)
	}
}

func TestGetAllByStatus(t *testing.T) {
	r := NewSeededRepository()
	pending, err := r.GetAllByStatus(StatusPending)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 || pending[0].ID != "MOD-003" {
		t.Errorf("invalid pending models: %v", pending)
	}
}

func TestTransitions(t *testing.T) {
	r := NewSeededRepository()

	model, err := r.Transition("MOD-003", StatusValidated)
	if err != nil {
		t.Fatal(err)
	}
	if model.Status != StatusValidated {
		t.Errorf("invalid status %s", model.Status)
	}

	// activating demotes the current active model
	if _, err := r.Transition("MOD-002", StatusActive); err != nil {
		t.Fatal(err)
	}
	old, _, _ := r.Get("MOD-001")
	if old.Status != StatusValidated {
		t.Errorf("previous active model should be validated, got %s", old.Status)
	}
	active, _ := r.GetAllByStatus(StatusActive)
	if len(active) != 1 || active[0].ID != "MOD-002" {
		t.Errorf("exactly one model should be active: %v", active)
	}

	invalid := []struct {
		id   string
		next Status
	}{
		{"MOD-002", StatusPending},
		{"MOD-002", StatusActive},
		{"MOD-001", StatusPending},
		{"MOD-003", StatusValidated},
		{"MOD-003", "Archived"},
	}
	for _, tc := range invalid {
		if _, err := r.Transition(tc.id, tc.next); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("%s -> %s: expected ErrInvalidTransition, got %v", tc.id, tc.next, err)
		}
	}

	if _, err := r.Transition("MOD-999", StatusValidated); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	r := NewSeededRepository()
	if err := r.Delete("MOD-001"); err != nil {
		t.Fatal(err)
	}
	if _, found, _ := r.Active(); found {
		t.Error("no model should be active after deleting the active one")
	}
	if err := r.Delete("MOD-001"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

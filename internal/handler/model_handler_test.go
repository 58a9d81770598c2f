package handler

import (
	"net/http"
	"testing"

	"github.com/myrteametrics/goldenbatch-api/internal/modeler"
	"github.com/myrteametrics/goldenbatch-api/internal/simulation"
	"github.com/myrteametrics/goldenbatch-api/internal/tests"
	"github.com/myrteametrics/goldenbatch-api/pkg/utils/httputil"
)

func initModels(t *testing.T) modeler.Repository {
	t.Helper()
	tests.CheckDebugLogs(t)
	r := modeler.NewSeededRepository()
	t.Cleanup(modeler.ReplaceGlobals(r))
	return r
}

func TestGetModels(t *testing.T) {
	initModels(t)

	rr := tests.BuildTestHandler(t, "GET", "/models", "", "/models", GetModels)
	tests.CheckTestHandlerStatus(t, rr, http.StatusOK)
	var models []modeler.ModelPair
	decode(t, rr.Body.Bytes(), &models)
	if len(models) != 3 || models[0].ID != "MOD-001" {
		t.Errorf("unexpected model library %+v", models)
	}

	rr = tests.BuildTestHandler(t, "GET", "/models?status=Active", "", "/models", GetModels)
	tests.CheckTestHandlerStatus(t, rr, http.StatusOK)
	decode(t, rr.Body.Bytes(), &models)
	if len(models) != 1 || models[0].ID != "MOD-001" {
		t.Errorf("unexpected active models %+v", models)
	}

	rr = tests.BuildTestHandler(t, "GET", "/models?status=Retired", "", "/models", GetModels)
	tests.CheckTestHandlerStatus(t, rr, http.StatusBadRequest)
}

func TestGetModel(t *testing.T) {
	initModels(t)

	rr := tests.BuildTestHandler(t, "GET", "/models/MOD-002", "", "/models/{id}", GetModel)
	tests.CheckTestHandlerStatus(t, rr, http.StatusOK)
	var m modeler.ModelPair
	decode(t, rr.Body.Bytes(), &m)
	if m.Name != "Polishing-V1.2-Exp" {
		t.Errorf("unexpected model pair %+v", m)
	}

	rr = tests.BuildTestHandler(t, "GET", "/models/MOD-404", "", "/models/{id}", GetModel)
	tests.CheckTestHandlerStatus(t, rr, http.StatusNotFound)
}

func TestPutModelStatus(t *testing.T) {
	r := initModels(t)
	c := initSimulation(t)
	c.SetActiveModelSource(func() (simulation.ModelRef, bool) {
		m, found, err := r.Active()
		if err != nil || !found {
			return simulation.ModelRef{}, false
		}
		return simulation.ModelRef{ID: m.ID, Name: m.Name}, true
	})

	rr := tests.BuildTestHandler(t, "PUT", "/models/MOD-003/status", `{"status":"Active"}`, "/models/{id}/status", PutModelStatus)
	tests.CheckTestHandlerStatus(t, rr, http.StatusConflict)
	var apiError httputil.APIError
	decode(t, rr.Body.Bytes(), &apiError)
	if apiError.Code != httputil.ErrAPIInvalidTransition.Code {
		t.Errorf("unexpected error %+v", apiError)
	}

	rr = tests.BuildTestHandler(t, "PUT", "/models/MOD-002/status", `{"status":"Active"}`, "/models/{id}/status", PutModelStatus)
	tests.CheckTestHandlerStatus(t, rr, http.StatusOK)

	previous, _, _ := r.Get("MOD-001")
	if previous.Status != modeler.StatusValidated {
		t.Errorf("previous active model was not demoted: %s", previous.Status)
	}
	s := c.Snapshot()
	if s.ActiveModel == nil || s.ActiveModel.ID != "MOD-002" {
		t.Errorf("prediction card does not show the new active model: %+v", s.ActiveModel)
	}

	rr = tests.BuildTestHandler(t, "PUT", "/models/MOD-002/status", `{"status":"Retired"}`, "/models/{id}/status", PutModelStatus)
	tests.CheckTestHandlerStatus(t, rr, http.StatusBadRequest)

	rr = tests.BuildTestHandler(t, "PUT", "/models/MOD-999/status", `{"status":"Validated"}`, "/models/{id}/status", PutModelStatus)
	tests.CheckTestHandlerStatus(t, rr, http.StatusNotFound)
}

func TestDeleteModel(t *testing.T) {
	r := initModels(t)

	rr := tests.BuildTestHandler(t, "DELETE", "/models/MOD-003", "", "/models/{id}", DeleteModel)
	tests.CheckTestHandler(t, rr, http.StatusOK, "")
	if _, found, _ := r.Get("MOD-003"); found {
		t.Error("model pair not deleted")
	}

	rr = tests.BuildTestHandler(t, "DELETE", "/models/MOD-003", "", "/models/{id}", DeleteModel)
	tests.CheckTestHandlerStatus(t, rr, http.StatusNotFound)
}

package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/myrteametrics/goldenbatch-api/internal/modeler"
	"github.com/myrteametrics/goldenbatch-api/internal/simulation"
	"github.com/myrteametrics/goldenbatch-api/pkg/utils/httputil"
	"go.uber.org/zap"
)

// StatusRequest carries the target status of a model pair
type StatusRequest struct {
	Status modeler.Status `json:"status"`
}

// refreshPrediction publishes a new snapshot, the active model appears in the prediction card
func refreshPrediction() {
	if c := simulation.C(); c != nil {
		c.Refresh()
	}
}

// GetModels godoc
//
//	@Id				GetModels
//
//	@Summary		Get the model library
//	@Description	Get every model pair, optionally restricted to one status
//	@Tags			Models
//	@Produce		json
//	@Param			status	query		string				false	"Pending, Validated or Active"
//	@Success		200		{array}		modeler.ModelPair	"model pairs"
//	@Failure		400		{object}	httputil.APIError	"Bad Request"
//	@Failure		500		{object}	httputil.APIError	"Internal Server Error"
//	@Router			/models [get]
func GetModels(w http.ResponseWriter, r *http.Request) {
	var models []modeler.ModelPair
	var err error

	if s := QueryParamToOptionalString(r, "status", ""); s != "" {
		status := modeler.Status(s)
		if !status.IsValid() {
			zap.L().Warn("Unknown model status", zap.String("status", s))
			httputil.Error(w, r, httputil.ErrAPIUnexpectedParamValue, fmt.Errorf("unknown status %q", s))
			return
		}
		models, err = modeler.R().GetAllByStatus(status)
	} else {
		models, err = modeler.R().GetAll()
	}
	if err != nil {
		zap.L().Error("Error getting model pairs", zap.Error(err))
		httputil.Error(w, r, httputil.ErrAPIDBSelectFailed, err)
		return
	}

	httputil.JSON(w, r, models)
}

// GetModel godoc
//
//	@Id				GetModel
//
//	@Summary		Get a model pair
//	@Tags			Models
//	@Produce		json
//	@Param			id	path		string				true	"Model ID"
//	@Success		200	{object}	modeler.ModelPair	"model pair"
//	@Failure		404	{object}	httputil.APIError	"Not Found"
//	@Router			/models/{id} [get]
func GetModel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	m, found, err := modeler.R().Get(id)
	if err != nil {
		zap.L().Error("Cannot get model pair", zap.String("modelId", id), zap.Error(err))
		httputil.Error(w, r, httputil.ErrAPIDBSelectFailed, err)
		return
	}
	if !found {
		zap.L().Warn("Model pair does not exist", zap.String("modelId", id))
		httputil.Error(w, r, httputil.ErrAPIDBResourceNotFound, fmt.Errorf("%w: %s", modeler.ErrNotFound, id))
		return
	}

	httputil.JSON(w, r, m)
}

// PutModelStatus godoc
//
//	@Id				PutModelStatus
//
//	@Summary		Move a model pair to its next status
//	@Description	Pending models can be validated and validated models activated.
//	@Description	Activating a model demotes the previously active one to Validated.
//	@Tags			Models
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Model ID"
//	@Param			status	body		handler.StatusRequest	true	"Target status (json)"
//	@Success		200		{object}	modeler.ModelPair		"model pair"
//	@Failure		400		{object}	httputil.APIError		"Bad Request"
//	@Failure		404		{object}	httputil.APIError		"Not Found"
//	@Failure		409		{object}	httputil.APIError		"Conflict"
//	@Router			/models/{id}/status [put]
func PutModelStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req StatusRequest
	if !decodeBody(w, r, "Model status", &req) {
		return
	}
	if !req.Status.IsValid() {
		zap.L().Warn("Unknown model status", zap.String("status", string(req.Status)))
		httputil.Error(w, r, httputil.ErrAPIResourceInvalid, fmt.Errorf("%w: unknown status %q", modeler.ErrInvalidModel, req.Status))
		return
	}

	m, err := modeler.R().Transition(id, req.Status)
	switch {
	case err == nil:
	case errors.Is(err, modeler.ErrNotFound):
		zap.L().Warn("Model pair does not exist", zap.String("modelId", id))
		httputil.Error(w, r, httputil.ErrAPIDBResourceNotFound, err)
		return
	case errors.Is(err, modeler.ErrInvalidTransition):
		zap.L().Warn("Model status transition rejected", zap.String("modelId", id), zap.Error(err))
		httputil.Error(w, r, httputil.ErrAPIInvalidTransition, err)
		return
	default:
		zap.L().Error("Error while updating the model pair", zap.String("modelId", id), zap.Error(err))
		httputil.Error(w, r, httputil.ErrAPIDBUpdateFailed, err)
		return
	}

	zap.L().Info("Model pair status changed", zap.String("modelId", id), zap.String("status", string(m.Status)))
	logAction(r, "model_"+string(m.Status))
	if m.Status == modeler.StatusActive {
		refreshPrediction()
	}
	httputil.JSON(w, r, m)
}

// DeleteModel godoc
//
//	@Id				DeleteModel
//
//	@Summary		Delete a model pair
//	@Tags			Models
//	@Param			id	path	string	true	"Model ID"
//	@Success		200	"Status OK"
//	@Failure		404	{object}	httputil.APIError	"Not Found"
//	@Router			/models/{id} [delete]
func DeleteModel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := modeler.R().Delete(id)
	if errors.Is(err, modeler.ErrNotFound) {
		zap.L().Warn("Model pair does not exist", zap.String("modelId", id))
		httputil.Error(w, r, httputil.ErrAPIDBResourceNotFound, err)
		return
	}
	if err != nil {
		zap.L().Error("Error while deleting the model pair", zap.String("modelId", id), zap.Error(err))
		httputil.Error(w, r, httputil.ErrAPIDBDeleteFailed, err)
		return
	}

	refreshPrediction()
	httputil.OK(w, r)
}

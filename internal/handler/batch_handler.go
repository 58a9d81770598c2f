package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/myrteametrics/goldenbatch-api/internal/batch"
	"github.com/myrteametrics/goldenbatch-api/internal/modeler"
	"github.com/myrteametrics/goldenbatch-api/pkg/utils/httputil"
	"go.uber.org/zap"
)

// ToggleRequest names the dataset a batch is toggled in
type ToggleRequest struct {
	Set batch.Set `json:"set"`
}

// GetBatches godoc
//
//	@Id				GetBatches
//
//	@Summary		Get the batch history
//	@Description	Get the completed batches ordered by start time
//	@Tags			Batches
//	@Produce		json
//	@Param			search	query		string					false	"Part of the batch id (case insensitive)"
//	@Param			quality	query		string					false	"good or bad"
//	@Success		200		{array}		batch.HistoricalBatch	"batches"
//	@Failure		400		{object}	httputil.APIError		"Bad Request"
//	@Failure		500		{object}	httputil.APIError		"Internal Server Error"
//	@Router			/batches [get]
func GetBatches(w http.ResponseWriter, r *http.Request) {
	filter := batch.Filter{
		Search:  QueryParamToOptionalString(r, "search", ""),
		Quality: batch.Quality(QueryParamToOptionalString(r, "quality", "")),
	}
	if !filter.IsValid() {
		zap.L().Warn("Unknown quality filter", zap.String("quality", string(filter.Quality)))
		httputil.Error(w, r, httputil.ErrAPIUnexpectedParamValue, fmt.Errorf("unknown quality %q", filter.Quality))
		return
	}

	batches, err := batch.R().GetAll()
	if err != nil {
		zap.L().Error("Error getting batches", zap.Error(err))
		httputil.Error(w, r, httputil.ErrAPIDBSelectFailed, err)
		return
	}

	httputil.JSON(w, r, filter.Apply(batches))
}

// GetBatch godoc
//
//	@Id				GetBatch
//
//	@Summary		Get a batch
//	@Description	Get a completed batch with its quality results
//	@Tags			Batches
//	@Produce		json
//	@Param			id	path		string					true	"Batch ID"
//	@Success		200	{object}	batch.HistoricalBatch	"batch"
//	@Failure		404	{object}	httputil.APIError		"Not Found"
//	@Router			/batches/{id} [get]
func GetBatch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	b, found, err := batch.R().Get(id)
	if err != nil {
		zap.L().Error("Cannot get batch", zap.String("batchId", id), zap.Error(err))
		httputil.Error(w, r, httputil.ErrAPIDBSelectFailed, err)
		return
	}
	if !found {
		zap.L().Warn("Batch does not exist", zap.String("batchId", id))
		httputil.Error(w, r, httputil.ErrAPIDBResourceNotFound, fmt.Errorf("%w: %s", batch.ErrNotFound, id))
		return
	}

	httputil.JSON(w, r, b)
}

// GetBatchSelection godoc
//
//	@Id				GetBatchSelection
//
//	@Summary		Get the training selection
//	@Description	Get the batches selected for training and validation
//	@Tags			Batches
//	@Produce		json
//	@Success		200	{object}	batch.SelectionView	"selection"
//	@Router			/batches/selection [get]
func GetBatchSelection(w http.ResponseWriter, r *http.Request) {
	httputil.JSON(w, r, batch.S().View())
}

// DeleteBatchSelection godoc
//
//	@Id				DeleteBatchSelection
//
//	@Summary		Clear the training selection
//	@Tags			Batches
//	@Produce		json
//	@Success		200	{object}	batch.SelectionView	"empty selection"
//	@Router			/batches/selection [delete]
func DeleteBatchSelection(w http.ResponseWriter, r *http.Request) {
	batch.S().Clear()
	httputil.JSON(w, r, batch.S().View())
}

// PostBatchToggle godoc
//
//	@Id				PostBatchToggle
//
//	@Summary		Toggle a batch in a dataset
//	@Description	Add a batch to the training or validation set, or remove it when it is already there.
//	@Description	A batch belongs to at most one set.
//	@Tags			Batches
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Batch ID"
//	@Param			toggle	body		handler.ToggleRequest	true	"Dataset (json)"
//	@Success		200		{object}	batch.SelectionView		"selection"
//	@Failure		400		{object}	httputil.APIError		"Bad Request"
//	@Failure		404		{object}	httputil.APIError		"Not Found"
//	@Router			/batches/{id}/toggle [post]
func PostBatchToggle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req ToggleRequest
	if !decodeBody(w, r, "Toggle", &req) {
		return
	}

	_, found, err := batch.R().Get(id)
	if err != nil {
		zap.L().Error("Cannot get batch", zap.String("batchId", id), zap.Error(err))
		httputil.Error(w, r, httputil.ErrAPIDBSelectFailed, err)
		return
	}
	if !found {
		zap.L().Warn("Batch does not exist", zap.String("batchId", id))
		httputil.Error(w, r, httputil.ErrAPIDBResourceNotFound, fmt.Errorf("%w: %s", batch.ErrNotFound, id))
		return
	}

	view, err := batch.S().Toggle(id, req.Set)
	if err != nil {
		zap.L().Warn("Batch toggle rejected", zap.String("batchId", id), zap.Error(err))
		httputil.Error(w, r, httputil.ErrAPIResourceInvalid, err)
		return
	}

	httputil.JSON(w, r, view)
}

// PostTrainModel godoc
//
//	@Id				PostTrainModel
//
//	@Summary		Train a model pair
//	@Description	Create a Pending model pair from the current selection and clear the selection.
//	@Description	The training set must not be empty.
//	@Tags			Batches
//	@Accept			json
//	@Produce		json
//	@Param			request	body		batch.TrainingRequest	true	"Model name and description (json)"
//	@Success		200		{object}	modeler.ModelPair		"created model pair"
//	@Failure		400		{object}	httputil.APIError		"Bad Request"
//	@Failure		404		{object}	httputil.APIError		"Not Found"
//	@Failure		500		{object}	httputil.APIError		"Internal Server Error"
//	@Router			/batches/train [post]
func PostTrainModel(w http.ResponseWriter, r *http.Request) {
	var req batch.TrainingRequest
	if !decodeBody(w, r, "Training request", &req) {
		return
	}

	model, err := batch.Train(batch.S(), batch.R(), modeler.R(), req, now())
	switch {
	case err == nil:
	case errors.Is(err, batch.ErrInvalidArgument), errors.Is(err, modeler.ErrInvalidModel):
		zap.L().Warn("Training request rejected", zap.Error(err))
		httputil.Error(w, r, httputil.ErrAPIResourceInvalid, err)
		return
	case errors.Is(err, batch.ErrNotFound):
		zap.L().Warn("Training request references an unknown batch", zap.Error(err))
		httputil.Error(w, r, httputil.ErrAPIDBResourceNotFound, err)
		return
	default:
		zap.L().Error("Error while training the model pair", zap.Error(err))
		httputil.Error(w, r, httputil.ErrAPIDBInsertFailed, err)
		return
	}

	logAction(r, "train")
	httputil.JSON(w, r, model)
}

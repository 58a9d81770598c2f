package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/myrteametrics/goldenbatch-api/internal/batchconfig"
	"github.com/myrteametrics/goldenbatch-api/pkg/utils/httputil"
	"go.uber.org/zap"
)

// now is replaced in tests
var now = time.Now

// NextIDResponse holds a formatted batch id
type NextIDResponse struct {
	ID string `json:"id"`
}

func batchConfigHolder(w http.ResponseWriter, r *http.Request) (*batchconfig.Holder, bool) {
	h := batchconfig.H()
	if h == nil {
		zap.L().Error("Batch configuration is not initialized")
		httputil.Error(w, r, httputil.ErrAPIServiceUnavailable, errors.New("batch configuration is not loaded"))
		return nil, false
	}
	return h, true
}

// GetBatchConfig godoc
//
//	@Id				GetBatchConfig
//
//	@Summary		Get the batch configuration
//	@Description	Get the batch identification format and the start and end signals
//	@Tags			BatchConfig
//	@Produce		json
//	@Success		200	{object}	batchconfig.Config	"configuration"
//	@Failure		503	{object}	httputil.APIError	"Service Unavailable"
//	@Router			/batchconfig [get]
func GetBatchConfig(w http.ResponseWriter, r *http.Request) {
	h, ok := batchConfigHolder(w, r)
	if !ok {
		return
	}
	httputil.JSON(w, r, h.Get())
}

// PutBatchConfig godoc
//
//	@Id				PutBatchConfig
//
//	@Summary		Replace the batch configuration
//	@Description	Replace the batch configuration. It is kept in memory only.
//	@Tags			BatchConfig
//	@Accept			json
//	@Produce		json
//	@Param			config	body		batchconfig.Config	true	"Batch configuration (json)"
//	@Success		200		{object}	batchconfig.Config	"configuration"
//	@Failure		400		{object}	httputil.APIError	"Bad Request"
//	@Router			/batchconfig [put]
func PutBatchConfig(w http.ResponseWriter, r *http.Request) {
	h, ok := batchConfigHolder(w, r)
	if !ok {
		return
	}

	var config batchconfig.Config
	if !decodeBody(w, r, "Batch configuration", &config) {
		return
	}

	if err := h.Set(config); err != nil {
		zap.L().Warn("Batch configuration is not valid", zap.Error(err))
		httputil.Error(w, r, httputil.ErrAPIResourceInvalid, err)
		return
	}

	zap.L().Info("Batch configuration updated", zap.String("idFormat", config.IDFormat))
	httputil.JSON(w, r, h.Get())
}

// GetNextBatchID godoc
//
//	@Id				GetNextBatchID
//
//	@Summary		Preview a batch id
//	@Description	Format a batch id with the current configuration and the current date
//	@Tags			BatchConfig
//	@Produce		json
//	@Param			seq	query		int						false	"Sequence number (default 1)"
//	@Success		200	{object}	handler.NextIDResponse	"formatted id"
//	@Failure		400	{object}	httputil.APIError		"Bad Request"
//	@Router			/batchconfig/nextid [get]
func GetNextBatchID(w http.ResponseWriter, r *http.Request) {
	h, ok := batchConfigHolder(w, r)
	if !ok {
		return
	}

	seq, err := QueryParamToOptionalInt(r, "seq", 1)
	if err != nil {
		zap.L().Warn("Error on parsing seq", zap.Error(err))
		httputil.Error(w, r, httputil.ErrAPIParsingInteger, err)
		return
	}
	if seq < 0 {
		httputil.Error(w, r, httputil.ErrAPIUnexpectedParamValue, fmt.Errorf("negative sequence %d", seq))
		return
	}

	httputil.JSON(w, r, NextIDResponse{ID: h.NextID(now(), seq)})
}

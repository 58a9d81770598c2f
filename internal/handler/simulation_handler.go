package handler

import (
	"errors"
	"net/http"

	"github.com/myrteametrics/goldenbatch-api/internal/evaluator"
	"github.com/myrteametrics/goldenbatch-api/internal/simulation"
	"github.com/myrteametrics/goldenbatch-api/pkg/utils/httputil"
	"go.uber.org/zap"
)

// HealthResponse is the content of the process health card
type HealthResponse struct {
	Health      evaluator.HealthAssessment `json:"health"`
	Level       evaluator.HealthLevel      `json:"level"`
	Alarm       evaluator.AlarmLevel       `json:"alarm"`
	SampleCount int                        `json:"sampleCount"`
}

// PredictionResponse is the content of the quality prediction card
type PredictionResponse struct {
	Prediction  evaluator.QualityPrediction `json:"prediction"`
	ActiveModel *simulation.ModelRef        `json:"activeModel,omitempty"`
}

// OffsetRequest carries a new offset value
type OffsetRequest struct {
	Value *float64 `json:"value"`
}

func controller(w http.ResponseWriter, r *http.Request) (*simulation.Controller, bool) {
	c := simulation.C()
	if c == nil {
		zap.L().Error("Simulation controller is not initialized")
		httputil.Error(w, r, httputil.ErrAPIServiceUnavailable, errors.New("simulation is not running"))
		return nil, false
	}
	return c, true
}

func simulationError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, simulation.ErrInvalidArgument):
		zap.L().Warn("Simulation event rejected", zap.Error(err))
		httputil.Error(w, r, httputil.ErrAPIResourceInvalid, err)
	case errors.Is(err, simulation.ErrClosed):
		httputil.Error(w, r, httputil.ErrAPIServiceUnavailable, err)
	default:
		zap.L().Error("Simulation event failed", zap.Error(err))
		httputil.Error(w, r, httputil.ErrAPIProcessError, err)
	}
}

// GetSimulation godoc
//
//	@Id				GetSimulation
//
//	@Summary		Get the live simulation snapshot
//	@Description	Get the full state of the live batch: lifecycle, visible window, health, alarm and prediction
//	@Tags			Simulation
//	@Produce		json
//	@Success		200	{object}	simulation.Snapshot	"snapshot"
//	@Failure		503	{object}	httputil.APIError	"Service Unavailable"
//	@Router			/simulation [get]
func GetSimulation(w http.ResponseWriter, r *http.Request) {
	c, ok := controller(w, r)
	if !ok {
		return
	}
	httputil.JSON(w, r, c.Snapshot())
}

// GetSimulationWindow godoc
//
//	@Id				GetSimulationWindow
//
//	@Summary		Get the visible trend window
//	@Description	Get the samples revealed so far, with the user offsets applied
//	@Tags			Simulation
//	@Produce		json
//	@Success		200	{array}		simulator.TrendSample	"visible samples"
//	@Failure		503	{object}	httputil.APIError		"Service Unavailable"
//	@Router			/simulation/window [get]
func GetSimulationWindow(w http.ResponseWriter, r *http.Request) {
	c, ok := controller(w, r)
	if !ok {
		return
	}
	httputil.JSON(w, r, c.CurrentVisibleWindow())
}

// GetSimulationHealth godoc
//
//	@Id				GetSimulationHealth
//
//	@Summary		Get the process health
//	@Description	Get the health score of the visible window with its level and alarm
//	@Tags			Simulation
//	@Produce		json
//	@Success		200	{object}	handler.HealthResponse	"health"
//	@Failure		503	{object}	httputil.APIError		"Service Unavailable"
//	@Router			/simulation/health [get]
func GetSimulationHealth(w http.ResponseWriter, r *http.Request) {
	c, ok := controller(w, r)
	if !ok {
		return
	}
	s := c.Snapshot()
	httputil.JSON(w, r, HealthResponse{
		Health:      s.Health,
		Level:       s.Level,
		Alarm:       s.Alarm,
		SampleCount: s.SampleCount,
	})
}

// GetSimulationPrediction godoc
//
//	@Id				GetSimulationPrediction
//
//	@Summary		Get the quality prediction
//	@Description	Get the predicted critical quality attributes and the model pair used
//	@Tags			Simulation
//	@Produce		json
//	@Success		200	{object}	handler.PredictionResponse	"prediction"
//	@Failure		503	{object}	httputil.APIError			"Service Unavailable"
//	@Router			/simulation/prediction [get]
func GetSimulationPrediction(w http.ResponseWriter, r *http.Request) {
	c, ok := controller(w, r)
	if !ok {
		return
	}
	s := c.Snapshot()
	httputil.JSON(w, r, PredictionResponse{Prediction: s.Prediction, ActiveModel: s.ActiveModel})
}

// GetSimulationBaseline godoc
//
//	@Id				GetSimulationBaseline
//
//	@Summary		Get the previous batch
//	@Description	Get the full baseline series, without any offset
//	@Tags			Simulation
//	@Produce		json
//	@Success		200	{array}		simulator.TrendSample	"baseline"
//	@Failure		503	{object}	httputil.APIError		"Service Unavailable"
//	@Router			/simulation/baseline [get]
func GetSimulationBaseline(w http.ResponseWriter, r *http.Request) {
	c, ok := controller(w, r)
	if !ok {
		return
	}
	httputil.JSON(w, r, c.Baseline())
}

// GetSimulationLimits godoc
//
//	@Id				GetSimulationLimits
//
//	@Summary		Get the offset limits
//	@Description	Get the ranges accepted for the value and bound offsets
//	@Tags			Simulation
//	@Produce		json
//	@Success		200	{object}	simulation.Limits	"limits"
//	@Failure		503	{object}	httputil.APIError	"Service Unavailable"
//	@Router			/simulation/limits [get]
func GetSimulationLimits(w http.ResponseWriter, r *http.Request) {
	c, ok := controller(w, r)
	if !ok {
		return
	}
	httputil.JSON(w, r, c.Limits())
}

func simulationEvent(action string, event func(c *simulation.Controller) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := controller(w, r)
		if !ok {
			return
		}
		logAction(r, action)
		if err := event(c); err != nil {
			simulationError(w, r, err)
			return
		}
		httputil.JSON(w, r, c.Snapshot())
	}
}

// PostSimulationPlay godoc
//
//	@Id				PostSimulationPlay
//
//	@Summary		Play the simulation
//	@Description	Start the periodic tick. Playing an already playing simulation does nothing.
//	@Tags			Simulation
//	@Produce		json
//	@Success		200	{object}	simulation.Snapshot	"snapshot"
//	@Failure		429	{object}	httputil.APIError	"Too Many Requests"
//	@Failure		500	{object}	httputil.APIError	"Internal Server Error"
//	@Router			/simulation/play [post]
func PostSimulationPlay(w http.ResponseWriter, r *http.Request) {
	simulationEvent("play", (*simulation.Controller).Play)(w, r)
}

// PostSimulationPause godoc
//
//	@Id				PostSimulationPause
//
//	@Summary		Pause the simulation
//	@Description	Stop the periodic tick, the cursor stays where it is
//	@Tags			Simulation
//	@Produce		json
//	@Success		200	{object}	simulation.Snapshot	"snapshot"
//	@Failure		429	{object}	httputil.APIError	"Too Many Requests"
//	@Router			/simulation/pause [post]
func PostSimulationPause(w http.ResponseWriter, r *http.Request) {
	simulationEvent("pause", (*simulation.Controller).Pause)(w, r)
}

// PostSimulationToggle godoc
//
//	@Id				PostSimulationToggle
//
//	@Summary		Toggle play and pause
//	@Tags			Simulation
//	@Produce		json
//	@Success		200	{object}	simulation.Snapshot	"snapshot"
//	@Failure		429	{object}	httputil.APIError	"Too Many Requests"
//	@Router			/simulation/toggle [post]
func PostSimulationToggle(w http.ResponseWriter, r *http.Request) {
	simulationEvent("toggle", (*simulation.Controller).Toggle)(w, r)
}

// PostSimulationReset godoc
//
//	@Id				PostSimulationReset
//
//	@Summary		Reset the simulation
//	@Description	Stop the simulation and restore the cursor and both offsets to zero
//	@Tags			Simulation
//	@Produce		json
//	@Success		200	{object}	simulation.Snapshot	"snapshot"
//	@Failure		429	{object}	httputil.APIError	"Too Many Requests"
//	@Router			/simulation/reset [post]
func PostSimulationReset(w http.ResponseWriter, r *http.Request) {
	simulationEvent("reset", (*simulation.Controller).Reset)(w, r)
}

func offsetEvent(w http.ResponseWriter, r *http.Request, action string, set func(c *simulation.Controller, v float64) error) {
	var req OffsetRequest
	if !decodeBody(w, r, "Offset", &req) {
		return
	}
	if req.Value == nil {
		zap.L().Warn("Offset value is missing")
		httputil.Error(w, r, httputil.ErrAPIMissingParam, errors.New("missing value"))
		return
	}
	v := *req.Value
	simulationEvent(action, func(c *simulation.Controller) error { return set(c, v) })(w, r)
}

// PutSimulationValueOffset godoc
//
//	@Id				PutSimulationValueOffset
//
//	@Summary		Set the value offset
//	@Description	Shift every visible value, simulating a process drift
//	@Tags			Simulation
//	@Accept			json
//	@Produce		json
//	@Param			offset	body		handler.OffsetRequest	true	"Offset (json)"
//	@Success		200		{object}	simulation.Snapshot		"snapshot"
//	@Failure		400		{object}	httputil.APIError		"Bad Request"
//	@Failure		429		{object}	httputil.APIError		"Too Many Requests"
//	@Router			/simulation/offsets/value [put]
func PutSimulationValueOffset(w http.ResponseWriter, r *http.Request) {
	offsetEvent(w, r, "value_offset", (*simulation.Controller).SetValueOffset)
}

// PutSimulationBoundOffset godoc
//
//	@Id				PutSimulationBoundOffset
//
//	@Summary		Set the upper bound offset
//	@Description	Shift the upper bound of every visible sample, widening or narrowing the golden tunnel
//	@Tags			Simulation
//	@Accept			json
//	@Produce		json
//	@Param			offset	body		handler.OffsetRequest	true	"Offset (json)"
//	@Success		200		{object}	simulation.Snapshot		"snapshot"
//	@Failure		400		{object}	httputil.APIError		"Bad Request"
//	@Failure		429		{object}	httputil.APIError		"Too Many Requests"
//	@Router			/simulation/offsets/bound [put]
func PutSimulationBoundOffset(w http.ResponseWriter, r *http.Request) {
	offsetEvent(w, r, "bound_offset", (*simulation.Controller).SetBoundOffset)
}

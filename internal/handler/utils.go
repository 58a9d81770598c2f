package handler

import (
	"net/http"
	"strconv"
	"strings"

	gorillacontext "github.com/gorilla/context"
	jsoniter "github.com/json-iterator/go"
	"github.com/myrteametrics/goldenbatch-api/pkg/utils/httputil"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type contextKey string

const (
	// ContextKeyLoggerR holds the request seen by the request logger
	ContextKeyLoggerR contextKey = "loggerR"
	// ActionLogKey is the gorilla context key of the simulation action logged with the request
	ActionLogKey contextKey = "action"
)

// logAction attaches an action name to the request log line
func logAction(r *http.Request, action string) {
	lr, ok := r.Context().Value(ContextKeyLoggerR).(*http.Request)
	if !ok {
		lr = r
	}
	gorillacontext.Set(lr, ActionLogKey, action)
}

// QueryParamToOptionalInt parse an int from a query param
func QueryParamToOptionalInt(r *http.Request, name string, orDefault int) (int, error) {
	param := r.URL.Query().Get(name)
	if param != "" {
		return strconv.Atoi(param)
	}
	return orDefault, nil
}

// QueryParamToOptionalString returns a trimmed query param, or a default value when missing
func QueryParamToOptionalString(r *http.Request, name string, orDefault string) string {
	param := strings.TrimSpace(r.URL.Query().Get(name))
	if param != "" {
		return param
	}
	return orDefault
}

// decodeBody parses the request JSON body and writes the error response itself on failure
func decodeBody(w http.ResponseWriter, r *http.Request, what string, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		zap.L().Warn(what+" json decoding", zap.Error(err))
		httputil.Error(w, r, httputil.ErrAPIDecodeJSONBody, err)
		return false
	}
	return true
}

// IsAlive godoc
//
//	@Id				IsAlive
//
//	@Summary		Check if alive
//	@Description	allows to check if the API is alive
//	@Tags			System
//	@Produce		json
//	@Success		200	"Status OK"
//	@Router			/isalive [get]
func IsAlive(w http.ResponseWriter, r *http.Request) {
	httputil.JSON(w, r, map[string]interface{}{"alive": true})
}

package tests

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// BuildTestHandler build and call a testing handler and returns the resulting ResponseRecorder for validation
func BuildTestHandler(t *testing.T, method string, targetRoute string, body string, handlerRoute string, handler http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewBufferString(body)
	}
	req, err := http.NewRequest(method, targetRoute, reader)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	switch method {
	case http.MethodGet:
		r.Get(handlerRoute, handler)
	case http.MethodPost:
		r.Post(handlerRoute, handler)
	case http.MethodPut:
		r.Put(handlerRoute, handler)
	case http.MethodDelete:
		r.Delete(handlerRoute, handler)
	default:
		t.Error("Unknown method", method)
		t.FailNow()
	}

	r.ServeHTTP(rr, req)

	return rr
}

// CheckTestHandler checks a ResponseRecorder HTTP status and body
func CheckTestHandler(t *testing.T, rr *httptest.ResponseRecorder, expectedStatus int, expectedBody string) {
	t.Helper()
	CheckTestHandlerStatus(t, rr, expectedStatus)
	if body := rr.Body.String(); body != expectedBody {
		t.Errorf("handler returned unexpected body: got %v want %v", body, expectedBody)
	}
}

// CheckTestHandlerStatus only checks a ResponseRecorder HTTP status
func CheckTestHandlerStatus(t *testing.T, rr *httptest.ResponseRecorder, expectedStatus int) {
	t.Helper()
	if status := rr.Code; status != expectedStatus {
		t.Errorf("handler returned wrong status code: got %v want %v (body: %s)", status, expectedStatus, rr.Body.String())
	}
}

package router

import (
	"context"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	gorillacontext "github.com/gorilla/context"
	"github.com/myrteametrics/goldenbatch-api/internal/handler"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapRequestLogger is called by the CustomZapLogger middleware to log each request.
var ZapRequestLogger = CustomZapRequestLogger(&CustomZapLogFormatter{})

// CustomZapLogger is a middleware that logs each request once it is served, with its
// status, latency, size and the simulation action it performed if any
func CustomZapLogger(next http.Handler) http.Handler {
	return ZapRequestLogger(next)
}

// CustomZapRequestLogger returns a logger handler using a custom LogFormatter.
func CustomZapRequestLogger(f chimiddleware.LogFormatter) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			entry := f.NewLogEntry(r)
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			t1 := time.Now()
			defer func() {
				action := gorillacontext.Get(r, handler.ActionLogKey)
				gorillacontext.Clear(r)

				zapEntry := entry.(*customZapLogEntry)
				if action != nil {
					zapEntry.ZapFields = append(zapEntry.ZapFields, zap.Any("action", action))
				}
				zapEntry.ZapFields = append(zapEntry.ZapFields,
					zap.Duration("lat", time.Since(t1)),
					zap.Int("http_status", ww.Status()),
					zap.Int("size", ww.BytesWritten()),
				)
				entry.Write(ww.Status(), ww.BytesWritten(), ww.Header(), time.Since(t1), nil)
			}()

			// chi copies the request on every route match, the handlers tag the original one
			ctx := context.WithValue(r.Context(), handler.ContextKeyLoggerR, r)
			next.ServeHTTP(ww, chimiddleware.WithLogEntry(r.WithContext(ctx), entry))
		}
		return http.HandlerFunc(fn)
	}
}

// CustomZapLogFormatter is a simple zap logger that implements a LogFormatter.
type CustomZapLogFormatter struct{}

// NewLogEntry creates a new LogEntry for the request.
func (l *CustomZapLogFormatter) NewLogEntry(r *http.Request) chimiddleware.LogEntry {
	entry := &customZapLogEntry{
		ZapLogger: zap.L(),
		ZapFields: make([]zapcore.Field, 0, 12),
	}

	if reqID := chimiddleware.GetReqID(r.Context()); reqID != "" {
		entry.ZapFields = append(entry.ZapFields, zap.String("requestid", reqID))
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}

	entry.ZapFields = append(entry.ZapFields,
		zap.String("method", r.Method),
		zap.String("scheme", scheme),
		zap.String("host", r.Host),
		zap.String("path", r.RequestURI),
		zap.String("proto", r.Proto),
		zap.String("remoteaddr", r.RemoteAddr),
	)

	return entry
}

type customZapLogEntry struct {
	ZapLogger *zap.Logger
	ZapFields []zap.Field
}

func (l *customZapLogEntry) Write(status, bytes int, header http.Header, elapsed time.Duration, extra interface{}) {
	switch {
	case status >= http.StatusInternalServerError:
		l.ZapLogger.Error("request served", l.ZapFields...)
	default:
		l.ZapLogger.Info("request served", l.ZapFields...)
	}
}

func (l *customZapLogEntry) Panic(v interface{}, stack []byte) {
	l.ZapLogger.Error("request panic", zap.Any("reason", v), zap.String("stack", string(stack)))
}

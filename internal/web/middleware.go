package web

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"regexp"
	"time"

	"github.com/rs/zerolog"

	"raintarget/internal/logging"
	"raintarget/internal/metrics"
	"raintarget/internal/target"
)

const requestIDHeader = "X-Request-ID"

var requestIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

type requestIDKey struct{}

// requestLogger tags each request with an ID, attaches a request-scoped
// logger to the context and records one log line and metric per request.
func requestLogger(base zerolog.Logger, recorder *metrics.Recorder, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := sanitizeRequestID(r.Header.Get(requestIDHeader))
		w.Header().Set(requestIDHeader, reqID)

		logger := base.With().
			Str(logging.FieldRequestID, reqID).
			Str(logging.FieldMethod, r.Method).
			Str(logging.FieldPath, r.URL.Path).
			Logger()

		ctx := logger.WithContext(r.Context())
		ctx = contextWithRequestID(ctx, reqID)
		r = r.WithContext(ctx)
		ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		recorder.RecordHTTPRequest(r.Method, normalizePath(r.URL.Path), ww.status, duration)
		logger.Info().
			Int(logging.FieldStatusCode, ww.status).
			Int64(logging.FieldDurationMS, duration.Milliseconds()).
			Msg("request complete")
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func sanitizeRequestID(incoming string) string {
	if incoming != "" && requestIDPattern.MatchString(incoming) {
		return incoming
	}
	return generateRequestID()
}

func generateRequestID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return hex.EncodeToString([]byte(time.Now().Format("150405.000000")))
	}
	return hex.EncodeToString(b[:])
}

// normalizePath keeps metric label cardinality bounded.
func normalizePath(path string) string {
	switch path {
	case "/", "/calc", "/api/target", "/healthz", "/metrics":
		return path
	}
	return "other"
}

func logCalculation(logger *zerolog.Logger, source string, in target.Input, res target.Result, err error) {
	if err != nil {
		ev := logger.Warn().Str(logging.FieldSource, source).
			Int(logging.FieldScore, in.FirstInningsScore).
			Int(logging.FieldScheduled, in.ScheduledOvers).
			Int(logging.FieldOversLost, in.OversLost)
		if ve, ok := target.AsValidation(err); ok {
			ev = ev.Str(logging.FieldErrorKind, string(ve.Kind))
		}
		ev.Err(err).Msg("calculation rejected")
		return
	}
	logger.Debug().Str(logging.FieldSource, source).
		Int(logging.FieldScore, in.FirstInningsScore).
		Int(logging.FieldScheduled, in.ScheduledOvers).
		Int(logging.FieldOversLost, in.OversLost).
		Int(logging.FieldParScore, res.ParScore).
		Msg("calculation complete")
}

package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	customerrors "github.com/varadpoddar/blog-services/internal/customErrors"
)

const RequestIDHeader = "X-Request-ID"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func LoggingMiddleware(next HandlerFunc) HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		start := time.Now()
		rec, entry := startRequest(w, r)

		err := next(rec, r)

		status := rec.status
		if err != nil {
			status = customerrors.GetStatus(err)
		}
		finishRequest(entry, status, start)

		return err
	}
}

// RequestLogger is LoggingMiddleware for plain http.Handlers, such as a
// gorilla/mux router.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec, entry := startRequest(w, r)

		next.ServeHTTP(rec, r)

		finishRequest(entry, rec.status, start)
	})
}

func startRequest(w http.ResponseWriter, r *http.Request) (*statusRecorder, *logrus.Entry) {
	id := r.Header.Get(RequestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	w.Header().Set(RequestIDHeader, id)

	entry := logrus.WithFields(logrus.Fields{
		"request_id": id,
		"method":     r.Method,
		"path":       r.URL.Path,
	})
	entry.Debug("Started request")

	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}, entry
}

func finishRequest(entry *logrus.Entry, status int, start time.Time) {
	entry.WithFields(logrus.Fields{
		"status":   status,
		"duration": time.Since(start).String(),
	}).Info("Completed request")
}

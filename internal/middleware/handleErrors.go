package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	customerrors "github.com/varadpoddar/blog-services/internal/customErrors"
)

type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

func ErrorHandler(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			handleHttpError(w, r, err)
		}
	}
}

func handleHttpError(w http.ResponseWriter, r *http.Request, err error) {
	status := customerrors.GetStatus(err)
	if status >= http.StatusInternalServerError {
		logrus.WithError(err).WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Error("Request failed")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	res := &customerrors.Error{
		Code:    status,
		Message: customerrors.GetMessage(err),
	}

	json.NewEncoder(w).Encode(res)
}

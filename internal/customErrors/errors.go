package customerrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

var (
	ErrUsernameAlreadyExists = &Error{Code: http.StatusConflict, Message: "username already exists"}
	ErrInvalidCredentials    = &Error{Code: http.StatusUnauthorized, Message: "invalid credentials"}
	ErrUnauthorized          = &Error{Code: http.StatusUnauthorized, Message: "unauthorized"}
	ErrPostNotFound          = &Error{Code: http.StatusNotFound, Message: "post not found"}
	ErrRouteNotFound         = &Error{Code: http.StatusNotFound, Message: "not found"}
	ErrBadRequest            = &Error{Code: http.StatusBadRequest, Message: "bad request"}
	ErrInvalidJSON           = &Error{Code: http.StatusBadRequest, Message: "invalid JSON payload"}
	ErrPasswordTooLong       = &Error{Code: http.StatusBadRequest, Message: "password is too long"}
	ErrInternalServer        = &Error{Code: http.StatusInternalServerError, Message: "internal server error"}
)

// ErrNotFound is returned by repositories when no row matches. It carries no
// HTTP status; services translate it into a domain error.
var ErrNotFound = errors.New("not found")

// Validation builds a 400 error carrying a field-level message.
func Validation(message string) *Error {
	return &Error{Code: http.StatusBadRequest, Message: message}
}

func GetStatus(err error) int {
	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Code
	}
	return http.StatusInternalServerError
}

// GetMessage never exposes the text of non-domain errors.
func GetMessage(err error) string {
	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Message
	}
	return ErrInternalServer.Message
}

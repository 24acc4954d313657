package customerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetStatusAndMessage(t *testing.T) {
	testCases := []struct {
		name            string
		err             error
		expectedStatus  int
		expectedMessage string
	}{
		{"Conflict", ErrUsernameAlreadyExists, http.StatusConflict, "username already exists"},
		{"Unauthorized", ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"Wrapped", fmt.Errorf("signup: %w", ErrInvalidCredentials), http.StatusUnauthorized, "invalid credentials"},
		{"Validation", Validation("title is required"), http.StatusBadRequest, "title is required"},
		{"Unknown", errors.New("disk on fire"), http.StatusInternalServerError, "internal server error"},
		{"NotFoundSentinel", ErrNotFound, http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expectedStatus, GetStatus(tc.err))
			assert.Equal(t, tc.expectedMessage, GetMessage(tc.err))
		})
	}
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "404: post not found", ErrPostNotFound.Error())
}

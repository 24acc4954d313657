package validation

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	customerrors "github.com/varadpoddar/blog-services/internal/customErrors"
)

type sample struct {
	Title string `json:"title" validate:"required"`
	Body  string `json:"body" validate:"required,max=5"`
}

func TestStruct(t *testing.T) {
	testCases := []struct {
		name        string
		input       sample
		expectedMsg string
	}{
		{"Valid", sample{Title: "a", Body: "b"}, ""},
		{"MissingTitle", sample{Body: "b"}, "title is required"},
		{"MissingBody", sample{Title: "a"}, "body is required"},
		{"FirstFieldWins", sample{}, "title is required"},
		{"TooLong", sample{Title: "a", Body: "123456"}, "body is too long"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Struct(&tc.input)
			if tc.expectedMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, http.StatusBadRequest, customerrors.GetStatus(err))
			assert.Equal(t, tc.expectedMsg, customerrors.GetMessage(err))
		})
	}
}

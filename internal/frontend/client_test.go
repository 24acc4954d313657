package frontend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientRejectsRelativeBase(t *testing.T) {
	_, err := NewClient("localhost:5001", time.Second)
	assert.Error(t, err)
}

func TestClientRequests(t *testing.T) {
	var gotMethod, gotPath, gotBody string
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)

		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/posts":
			io.WriteString(w, `[{"id":1,"title":"First Post","content":"a","created":"2024-01-01T00:00:00Z"}]`)
		case r.Method == http.MethodDelete:
			io.WriteString(w, `{"message":"Post \"First Post\" deleted"}`)
		default:
			w.WriteHeader(http.StatusCreated)
			io.WriteString(w, `{"id":2,"title":"New","content":"Body","created":"2024-01-01T00:00:00Z"}`)
		}
	}))
	defer api.Close()

	c, err := NewClient(api.URL+"/api/", time.Second)
	require.NoError(t, err)
	ctx := context.Background()

	posts, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "First Post", posts[0].Title)

	post, err := c.Create(ctx, "New", "Body")
	require.NoError(t, err)
	assert.Equal(t, int64(2), post.ID)
	assert.Equal(t, http.MethodPost, gotMethod)
	var sent map[string]string
	require.NoError(t, json.Unmarshal([]byte(gotBody), &sent))
	assert.Equal(t, map[string]string{"title": "New", "content": "Body"}, sent)

	_, err = c.Update(ctx, 2, "T", "C")
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/api/posts/2", gotPath)

	require.NoError(t, c.Delete(ctx, 1))
	assert.Equal(t, "/api/posts/1", gotPath)
}

func TestClientErrors(t *testing.T) {
	testCases := []struct {
		name            string
		handler         http.HandlerFunc
		expectedStatus  int
		expectedMessage string
	}{
		{
			name: "JSONMessage",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				io.WriteString(w, `{"code":400,"message":"content is required"}`)
			},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "content is required",
		},
		{
			name: "JSONErrorKey",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(http.StatusNotFound)
				io.WriteString(w, `{"error":"Post not found"}`)
			},
			expectedStatus:  http.StatusNotFound,
			expectedMessage: "Post not found",
		},
		{
			name: "PlainText",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "upstream exploded", http.StatusBadGateway)
			},
			expectedStatus:  http.StatusBadGateway,
			expectedMessage: "upstream exploded",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			api := httptest.NewServer(tc.handler)
			defer api.Close()

			c, err := NewClient(api.URL, time.Second)
			require.NoError(t, err)

			_, err = c.Get(context.Background(), 1)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tc.expectedStatus, apiErr.Status)
			assert.Equal(t, tc.expectedMessage, apiErr.Message)
			assert.Equal(t, tc.expectedStatus == http.StatusNotFound, IsNotFound(err))
		})
	}
}

func TestClientTransportFailures(t *testing.T) {
	t.Run("Timeout", func(t *testing.T) {
		api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer api.Close()

		c, err := NewClient(api.URL, 20*time.Millisecond)
		require.NoError(t, err)

		_, err = c.List(context.Background())
		require.Error(t, err)
		var apiErr *APIError
		assert.False(t, errors.As(err, &apiErr))
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, "<html>oops</html>")
		}))
		defer api.Close()

		c, err := NewClient(api.URL, time.Second)
		require.NoError(t, err)

		_, err = c.List(context.Background())
		assert.ErrorContains(t, err, "invalid JSON")
	})

	t.Run("ConnectionRefused", func(t *testing.T) {
		api := httptest.NewServer(http.NotFoundHandler())
		url := api.URL
		api.Close()

		c, err := NewClient(url, time.Second)
		require.NoError(t, err)

		_, err = c.List(context.Background())
		assert.ErrorContains(t, err, "unreachable")
	})
}

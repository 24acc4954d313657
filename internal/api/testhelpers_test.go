package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	authcontroller "github.com/varadpoddar/blog-services/internal/auth/controller"
	"github.com/varadpoddar/blog-services/internal/auth/password"
	authservice "github.com/varadpoddar/blog-services/internal/auth/service"
	"github.com/varadpoddar/blog-services/internal/auth/token"
	"github.com/varadpoddar/blog-services/internal/config"
	"github.com/varadpoddar/blog-services/internal/database"
	postcontroller "github.com/varadpoddar/blog-services/internal/posts/controller"
	postservice "github.com/varadpoddar/blog-services/internal/posts/service"
)

var testJWTConfig = config.JWTConfig{Secret: "e2e-secret", Algorithm: "HS256", TTLMinutes: 60}

func openTestDB(t *testing.T, name string) *database.DB {
	t.Helper()

	db, err := database.Open(context.Background(), config.DatabaseConfig{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), name),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newAuthTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv, _ := newAuthTestServerWithDB(t)
	return srv
}

func newAuthTestServerWithDB(t *testing.T) (*httptest.Server, *database.DB) {
	t.Helper()

	db := openTestDB(t, "auth.db")
	require.NoError(t, db.Migrate(context.Background(), database.AuthSchema))

	jwt, err := token.NewJWT(testJWTConfig)
	require.NoError(t, err)

	svc, err := authservice.NewAuthService(db.DB, password.NewBcrypt(bcrypt.MinCost), jwt)
	require.NoError(t, err)

	srv := httptest.NewServer(SetupAuthRoutes(authcontroller.NewAuthController(svc), jwt))
	t.Cleanup(srv.Close)
	return srv, db
}

func newBlogTestServer(t *testing.T) (*httptest.Server, *database.DB) {
	t.Helper()

	db := openTestDB(t, "database.db")
	schema := db.LazyTable(database.BlogSchema, "posts")

	srv := httptest.NewServer(SetupBlogRoutes(postcontroller.NewPostController(postservice.NewPostService(db.DB)), schema))
	t.Cleanup(srv.Close)
	return srv, db
}

type response struct {
	status int
	body   []byte
}

func (r response) decode(t *testing.T, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.body, v), string(r.body))
}

func doJSON(t *testing.T, method, url string, payload any, header http.Header) response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return response{status: res.StatusCode, body: raw}
}

func bearer(tok string) http.Header {
	return http.Header{"Authorization": []string{"Bearer " + tok}}
}

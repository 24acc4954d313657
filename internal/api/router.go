package api

import (
	"net/http"

	authcontroller "github.com/varadpoddar/blog-services/internal/auth/controller"
	"github.com/varadpoddar/blog-services/internal/auth/token"
	customerrors "github.com/varadpoddar/blog-services/internal/customErrors"
	"github.com/varadpoddar/blog-services/internal/middleware"
	postcontroller "github.com/varadpoddar/blog-services/internal/posts/controller"
)

func applyMiddleware(h middleware.HandlerFunc) http.HandlerFunc {
	return middleware.ErrorHandler(
		middleware.TrustProxyMiddleware(
			middleware.LoggingMiddleware(h),
		),
	)
}

func notFound(w http.ResponseWriter, r *http.Request) error {
	return customerrors.ErrRouteNotFound
}

func SetupAuthRoutes(authController *authcontroller.AuthController, tok token.Token) *http.ServeMux {
	router := http.NewServeMux()
	requireBearer := middleware.RequireBearer(tok)

	router.Handle("POST /signup", applyMiddleware(authController.Signup))
	router.Handle("POST /login", applyMiddleware(authController.Login))
	router.Handle("GET /me", applyMiddleware(requireBearer(authController.Me)))
	router.Handle("GET /health", applyMiddleware(authController.HealthCheck))
	router.Handle("/", applyMiddleware(notFound))

	return router
}

// SetupBlogRoutes mounts the posts API. Every /posts route first makes sure
// the schema exists.
func SetupBlogRoutes(postController *postcontroller.PostController, schema middleware.SchemaEnsurer) *http.ServeMux {
	router := http.NewServeMux()
	withSchema := middleware.EnsureSchema(schema)

	router.Handle("GET /posts", applyMiddleware(withSchema(postController.List)))
	router.Handle("POST /posts", applyMiddleware(withSchema(postController.Create)))
	router.Handle("GET /posts/{id}", applyMiddleware(withSchema(postController.Get)))
	router.Handle("PUT /posts/{id}", applyMiddleware(withSchema(postController.Update)))
	router.Handle("PATCH /posts/{id}", applyMiddleware(withSchema(postController.Update)))
	router.Handle("DELETE /posts/{id}", applyMiddleware(withSchema(postController.Delete)))
	router.Handle("GET /health", applyMiddleware(postController.HealthCheck))
	router.Handle("/", applyMiddleware(notFound))

	return router
}

package middleware

import (
	"context"
	"net/http"
)

type SchemaEnsurer interface {
	Ensure(ctx context.Context) error
}

// EnsureSchema makes sure the tables exist before the handler runs.
func EnsureSchema(schema SchemaEnsurer) func(HandlerFunc) HandlerFunc {
	return func(next HandlerFunc) HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) error {
			if err := schema.Ensure(r.Context()); err != nil {
				return err
			}
			return next(w, r)
		}
	}
}

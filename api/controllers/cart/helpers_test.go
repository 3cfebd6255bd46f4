package cart

import (
	"context"

	"github.com/go-chi/chi/v5"
)

func contextWithRoute(ctx context.Context, rc *chi.Context) context.Context {
	return context.WithValue(ctx, chi.RouteCtxKey, rc)
}

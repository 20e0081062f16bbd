package resourcehttp

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/restkit/internal/resource"
)

// MountRoutes registers the conventional actions under /{resource}.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/{resource}", func(r chi.Router) {
		r.Use(h.resolveResource)
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/find", h.Find)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.loadRecord)
			r.Get("/", h.Show)
			r.Patch("/", h.Update)
			r.Put("/", h.Update)
			r.Delete("/", h.Destroy)
		})
	})
}

// resolveResource memoizes the route's resource in the request context.
func (h *Handler) resolveResource(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res, err := h.registry.Resolve(chi.URLParam(r, "resource"))
		if err != nil {
			h.fail(w, r, "resolve", err)
			return
		}
		next.ServeHTTP(w, r.WithContext(resource.ContextWithResource(r.Context(), res)))
	})
}

// loadRecord loads the record addressed by {id} for show, update and destroy.
func (h *Handler) loadRecord(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		raw := chi.URLParam(r, "id")
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.fail(w, r, "load", fmt.Errorf("%w: %q", resource.ErrInvalidID, raw))
			return
		}
		rec, err := h.store.Get(ctx, resource.FromContext(ctx), id)
		if err != nil {
			h.fail(w, r, "load", err)
			return
		}
		next.ServeHTTP(w, r.WithContext(contextWithRecord(ctx, rec)))
	})
}

type recordContextKey struct{}

func contextWithRecord(ctx context.Context, rec resource.Record) context.Context {
	return context.WithValue(ctx, recordContextKey{}, rec)
}

func recordFromContext(ctx context.Context) resource.Record {
	rec, _ := ctx.Value(recordContextKey{}).(resource.Record)
	return rec
}

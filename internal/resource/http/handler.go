// Package resourcehttp serves the conventional actions of every registered resource.
package resourcehttp

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/odyssey-erp/restkit/internal/platform/httpx"
	"github.com/odyssey-erp/restkit/internal/resource"
)

// Config tunes the collection actions.
type Config struct {
	DefaultPageSize int
	// Snapshot runs the count and the page fetch of a list in one read-only transaction.
	Snapshot bool
	// Observer, when set, receives the filtered total of every list response.
	Observer ListObserver
}

// ListObserver receives list totals, typically for metrics.
type ListObserver interface {
	ObserveListTotal(resource string, total int)
}

// Handler implements list, show, find, create, update and destroy for
// whichever resource the route resolves to.
type Handler struct {
	logger     *slog.Logger
	registry   *resource.Registry
	store      *resource.Store
	serializer *resource.Serializer
	validator  *resource.Validator
	cfg        Config
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, registry *resource.Registry, store *resource.Store, validator *resource.Validator, cfg Config) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = resource.DefaultPageSize
	}
	return &Handler{
		logger:     logger,
		registry:   registry,
		store:      store,
		serializer: resource.NewSerializer(registry, store),
		validator:  validator,
		cfg:        cfg,
	}
}

var errorMappings = []httpx.ErrorMapping{
	{Err: resource.ErrNotFound, Status: http.StatusNotFound, Title: "Not Found"},
	{Err: resource.ErrMissingParameter, Status: http.StatusBadRequest, Title: "Missing Parameter"},
	{Err: resource.ErrUnknownFilter, Status: http.StatusBadRequest, Title: "Unknown Filter"},
	{Err: resource.ErrInvalidID, Status: http.StatusBadRequest, Title: "Invalid ID"},
	{Err: resource.ErrMalformedBody, Status: http.StatusBadRequest, Title: "Malformed Body"},
	{Err: resource.ErrInvalidQuery, Status: http.StatusBadRequest, Title: "Invalid Query"},
	{Err: httpx.ErrBodyTooLarge, Status: http.StatusRequestEntityTooLarge, Title: "Body Too Large"},
}

type validationBody struct {
	Errors map[string][]string `json:"errors"`
}

// List serves GET /{resource}.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	res := resource.FromContext(ctx)

	params, err := resource.ParseFilterParams(r.URL.RawQuery)
	if err != nil {
		h.fail(w, r, "list", err)
		return
	}
	query, err := resource.ApplyFilters(res.Filters, h.store.Base(res), params)
	if err != nil {
		h.fail(w, r, "list", err)
		return
	}
	pageReq := resource.ParsePageRequest(r.URL.Query(), h.cfg.DefaultPageSize)

	var (
		records []resource.Record
		page    resource.PageResult
	)
	fetch := func(store *resource.Store) error {
		bounded, result, err := resource.ApplyPagination(ctx, store, query, pageReq)
		if err != nil {
			return err
		}
		records, err = store.Select(ctx, res, bounded)
		page = result
		return err
	}
	if h.cfg.Snapshot {
		err = h.store.Snapshot(ctx, fetch)
	} else {
		err = fetch(h.store)
	}
	if err != nil {
		h.fail(w, r, "list", err)
		return
	}

	reps, err := h.serializer.RenderMany(ctx, res, records, includeOf(r))
	if err != nil {
		h.fail(w, r, "list", err)
		return
	}
	if h.cfg.Observer != nil {
		h.cfg.Observer.ObserveListTotal(res.Name, page.Total)
	}
	page.WriteHeaders(w.Header())
	httpx.JSON(w, http.StatusOK, reps)
}

// Show serves GET /{resource}/{id}.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "show", http.StatusOK, recordFromContext(r.Context()))
}

// Find serves GET /{resource}/find, answering 404 with an empty body when nothing matches.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	res := resource.FromContext(ctx)

	params, err := resource.ParseFilterParams(r.URL.RawQuery)
	if err != nil {
		h.fail(w, r, "find", err)
		return
	}
	query, err := resource.ApplyFilters(res.Filters, h.store.Base(res), params)
	if err != nil {
		h.fail(w, r, "find", err)
		return
	}
	rec, err := h.store.First(ctx, res, query)
	if errors.Is(err, resource.ErrNotFound) {
		httpx.Empty(w, http.StatusNotFound)
		return
	}
	if err != nil {
		h.fail(w, r, "find", err)
		return
	}
	h.render(w, r, "find", http.StatusOK, rec)
}

// Create serves POST /{resource}.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	res := resource.FromContext(ctx)

	params, err := h.readParams(r, res)
	if err != nil {
		h.fail(w, r, "create", err)
		return
	}
	rec := res.New()
	if err := h.prepare(ctx, res, rec, params); err != nil {
		h.fail(w, r, "create", err)
		return
	}
	id, err := h.store.Insert(ctx, res, rec)
	if err != nil {
		h.fail(w, r, "create", err)
		return
	}
	created, err := h.store.Get(ctx, res, id)
	if err != nil {
		h.fail(w, r, "create", err)
		return
	}
	h.logger.Info("resource created", slog.String("resource", res.Name), slog.Int64("id", id))
	h.render(w, r, "create", http.StatusCreated, created)
}

// Update serves PATCH and PUT /{resource}/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	res := resource.FromContext(ctx)
	rec := recordFromContext(ctx)

	params, err := h.readParams(r, res)
	if err != nil {
		h.fail(w, r, "update", err)
		return
	}
	if err := h.prepare(ctx, res, rec, params); err != nil {
		h.fail(w, r, "update", err)
		return
	}
	if err := h.store.Update(ctx, res, rec); err != nil {
		h.fail(w, r, "update", err)
		return
	}
	h.render(w, r, "update", http.StatusOK, rec)
}

// Destroy serves DELETE /{resource}/{id}.
func (h *Handler) Destroy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	res := resource.FromContext(ctx)
	rec := recordFromContext(ctx)

	if err := h.store.Delete(ctx, res, rec.PrimaryKey()); err != nil {
		h.fail(w, r, "destroy", err)
		return
	}
	h.logger.Info("resource destroyed", slog.String("resource", res.Name), slog.Int64("id", rec.PrimaryKey()))
	httpx.Empty(w, http.StatusNoContent)
}

func (h *Handler) readParams(r *http.Request, res *resource.Resource) (resource.Params, error) {
	body, err := httpx.ReadBody(r)
	if err != nil {
		return resource.Params{}, err
	}
	return resource.ExtractParams(body, res)
}

// prepare assigns params onto rec and validates the result, collecting
// type and constraint failures into one *ValidationError.
func (h *Handler) prepare(ctx context.Context, res *resource.Resource, rec resource.Record, params resource.Params) error {
	verr := resource.NewValidationError()
	if err := params.Assign(rec); err != nil {
		assignErr, ok := resource.AsValidation(err)
		if !ok {
			return err
		}
		verr.Merge(assignErr)
	}
	if err := h.validator.Validate(ctx, res, rec); err != nil {
		validateErr, ok := resource.AsValidation(err)
		if !ok {
			return err
		}
		verr.Merge(validateErr)
	}
	if !verr.Empty() {
		return verr
	}
	if saver, ok := rec.(resource.BeforeSaver); ok {
		return saver.BeforeSave(params.Fields())
	}
	return nil
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, action string, status int, rec resource.Record) {
	ctx := r.Context()
	rep, err := h.serializer.Render(ctx, resource.FromContext(ctx), rec, includeOf(r))
	if err != nil {
		h.fail(w, r, action, err)
		return
	}
	httpx.JSON(w, status, rep)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, action string, err error) {
	if verr, ok := resource.AsValidation(err); ok {
		httpx.JSON(w, http.StatusUnprocessableEntity, validationBody{Errors: verr.Fields})
		return
	}
	if isServerError(err) {
		attrs := []any{slog.String("action", action), slog.String("path", r.URL.Path), slog.Any("error", err)}
		if res := resource.FromContext(r.Context()); res != nil {
			attrs = append(attrs, slog.String("resource", res.Name))
		}
		h.logger.Error("resource action failed", attrs...)
	}
	httpx.RespondError(w, err, errorMappings...)
}

func isServerError(err error) bool {
	for _, m := range errorMappings {
		if errors.Is(err, m.Err) {
			return false
		}
	}
	return true
}

func includeOf(r *http.Request) resource.Include {
	return resource.ParseInclude(r.URL.Query().Get("include"))
}

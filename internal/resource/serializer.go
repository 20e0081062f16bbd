package resource

import (
	"context"
	"errors"
)

// Representation is the serialized form of one record.
type Representation map[string]any

// Serializer renders records with their declared attributes and relations.
type Serializer struct {
	registry *Registry
	store    *Store
}

// NewSerializer returns a serializer that loads related records from store.
func NewSerializer(registry *Registry, store *Store) *Serializer {
	return &Serializer{registry: registry, store: store}
}

// Render emits rec's attributes; each relation is inlined when named in
// include and referenced by id otherwise.
func (s *Serializer) Render(ctx context.Context, res *Resource, rec Record, include Include) (Representation, error) {
	out := make(Representation, len(res.Attributes)+len(res.Relations))
	for _, attr := range res.Attributes {
		out[attr] = rec.Value(attr)
	}
	for _, rel := range res.Relations {
		nested, inline := include.Has(rel.Name)
		var (
			value any
			err   error
		)
		switch rel.Kind {
		case BelongsTo:
			value, err = s.renderBelongsTo(ctx, rel, rec, nested, inline)
		case HasMany:
			value, err = s.renderHasMany(ctx, rel, rec, nested, inline)
		}
		if err != nil {
			return nil, err
		}
		out[rel.Name] = value
	}
	return out, nil
}

// RenderMany renders records in order. An empty input renders as an empty list.
func (s *Serializer) RenderMany(ctx context.Context, res *Resource, records []Record, include Include) ([]Representation, error) {
	out := make([]Representation, 0, len(records))
	for _, rec := range records {
		rep, err := s.Render(ctx, res, rec, include)
		if err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, nil
}

func (s *Serializer) renderBelongsTo(ctx context.Context, rel Relation, rec Record, include Include, inline bool) (any, error) {
	id, ok := ForeignKey(rec.Value(rel.ForeignKey))
	if !ok {
		return nil, nil
	}
	if !inline {
		return Representation{columnID: id}, nil
	}
	target, err := s.registry.Resolve(rel.Target)
	if err != nil {
		return nil, err
	}
	related, err := s.store.Get(ctx, target, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s.Render(ctx, target, related, include)
}

func (s *Serializer) renderHasMany(ctx context.Context, rel Relation, rec Record, include Include, inline bool) (any, error) {
	target, err := s.registry.Resolve(rel.Target)
	if err != nil {
		return nil, err
	}
	related, err := s.store.SelectWhere(ctx, target, rel.ForeignKey, rec.PrimaryKey())
	if err != nil {
		return nil, err
	}
	if inline {
		return s.RenderMany(ctx, target, related, include)
	}
	refs := make([]Representation, 0, len(related))
	for _, r := range related {
		refs = append(refs, Representation{columnID: r.PrimaryKey()})
	}
	return refs, nil
}

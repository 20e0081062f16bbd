package resource

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// FilterParam is one filter[key]=value pair of a request.
type FilterParam struct {
	Key   string
	Value string
}

// ParseFilterParams extracts filter[key]=value pairs from a raw query
// string, keeping the order in which they were sent.
func ParseFilterParams(rawQuery string) ([]FilterParam, error) {
	var params []FilterParam
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
		}
		if !strings.HasPrefix(key, "filter[") || !strings.HasSuffix(key, "]") {
			continue
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
		}
		name := strings.TrimSuffix(strings.TrimPrefix(key, "filter["), "]")
		if name == "" {
			continue
		}
		params = append(params, FilterParam{Key: name, Value: value})
	}
	return params, nil
}

// ApplyFilters folds every param's predicate over q in order. Unknown keys
// reject the whole set before any predicate runs.
func ApplyFilters(filters *Filters, q sq.SelectBuilder, params []FilterParam) (sq.SelectBuilder, error) {
	preds := make([]Predicate, len(params))
	for i, p := range params {
		pred, ok := filters.Lookup(p.Key)
		if !ok {
			return q, fmt.Errorf("%w %q", ErrUnknownFilter, p.Key)
		}
		preds[i] = pred
	}
	for i, pred := range preds {
		q = pred(q, params[i].Value)
	}
	return q, nil
}

// Counter counts the rows a filtered select would return.
type Counter interface {
	Count(ctx context.Context, q sq.SelectBuilder) (int, error)
}

// ApplyPagination counts the filtered rows, then bounds q to the requested window.
func ApplyPagination(ctx context.Context, counter Counter, q sq.SelectBuilder, req PageRequest) (sq.SelectBuilder, PageResult, error) {
	total, err := counter.Count(ctx, q)
	if err != nil {
		return q, PageResult{}, err
	}
	result := NewPageResult(req, total)
	bounded := q.Limit(uint64(req.Size)).Offset(uint64(req.Offset()))
	return bounded, result, nil
}

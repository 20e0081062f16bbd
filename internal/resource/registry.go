package resource

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Registry maps route segments to resources. It is populated once at
// startup and read concurrently afterwards without locking.
type Registry struct {
	resources map[string]*Resource
}

// NewRegistry registers every given resource.
func NewRegistry(resources ...*Resource) *Registry {
	reg := &Registry{resources: make(map[string]*Resource, len(resources))}
	for _, res := range resources {
		reg.Register(res)
	}
	return reg
}

// Register adds res under its route name. Registering a name twice replaces the earlier entry.
func (r *Registry) Register(res *Resource) {
	if res.Filters == nil {
		res.Filters = NewFilters(res.Table)
	}
	r.resources[strings.ToLower(res.Name)] = res
}

// Resolve returns the resource addressed by a route segment.
func (r *Registry) Resolve(segment string) (*Resource, error) {
	if r != nil {
		if res, ok := r.resources[strings.ToLower(strings.Trim(segment, "/"))]; ok {
			return res, nil
		}
	}
	return nil, fmt.Errorf("%w: %s (%s)", ErrUnresolvableResource, segment, TypeName(segment))
}

// Names returns every registered route name in lexical order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.resources))
	for name := range r.resources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type resourceContextKey struct{}

// ContextWithResource memoizes the resolved resource for the rest of the request.
func ContextWithResource(ctx context.Context, res *Resource) context.Context {
	return context.WithValue(ctx, resourceContextKey{}, res)
}

// FromContext returns the resource memoized by ContextWithResource.
func FromContext(ctx context.Context) *Resource {
	res, _ := ctx.Value(resourceContextKey{}).(*Resource)
	return res
}

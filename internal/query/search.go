package query

import (
	"github.com/alfredjeanlab/listings/internal/model"
)

// Searcher composes listing queries against a Backend.
type Searcher struct {
	backend Backend
}

// NewSearcher returns a Searcher that builds query objects with b.
func NewSearcher(b Backend) *Searcher {
	return &Searcher{backend: b}
}

type searchOptions struct {
	variant    Variant
	hasVariant bool
}

// Option customises a single Search call.
type Option func(*searchOptions)

// WithVariant supplies the query object to filter instead of resolving one
// from the market/type parameter. Dispatch then depends only on v's kind.
func WithVariant(v Variant) Option {
	return func(o *searchOptions) {
		o.variant = v
		o.hasVariant = true
	}
}

// Search composes a query for params on behalf of user. The returned
// Relation has not been executed. On error no filters have been applied.
func (s *Searcher) Search(user *model.User, params Params, opts ...Option) (Relation, error) {
	var o searchOptions
	for _, opt := range opts {
		opt(&o)
	}

	v := o.variant
	if !o.hasVariant {
		kind, err := ResolveKind(params)
		if err != nil {
			return nil, err
		}
		v, err = NewVariant(s.backend, kind, user)
		if err != nil {
			return nil, err
		}
	}

	return applyFilters(v, params)
}

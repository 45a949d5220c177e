package export

import (
	"context"
	"errors"

	"github.com/alfredjeanlab/listings/internal/model"
	"github.com/alfredjeanlab/listings/internal/query"
)

// stubSearcher returns a fixed relation and records what it was asked for.
type stubSearcher struct {
	listings  []*model.Listing
	searchErr error
	fetchErr  error

	user   *model.User
	params query.Params
}

func (s *stubSearcher) Search(user *model.User, params query.Params, _ ...query.Option) (query.Relation, error) {
	s.user = user
	s.params = params
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	return stubRelation{listings: s.listings, err: s.fetchErr}, nil
}

type stubRelation struct {
	listings []*model.Listing
	err      error
}

func (r stubRelation) Fetch(context.Context) ([]*model.Listing, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]*model.Listing, len(r.listings))
	copy(out, r.listings)
	return out, nil
}

func (r stubRelation) Count(context.Context) (int, error) { return len(r.listings), r.err }

var errBoom = errors.New("boom")

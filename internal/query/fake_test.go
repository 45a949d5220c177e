package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/alfredjeanlab/listings/internal/model"
)

// recordingQuery implements every query interface and records each filter
// call as "Method(arg, ...)".
type recordingQuery struct {
	kind  model.Kind
	user  *model.User
	calls []string
}

func (q *recordingQuery) record(method string, args ...any) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprintf("%v", a)
	}
	q.calls = append(q.calls, method+"("+strings.Join(parts, ", ")+")")
}

func (q *recordingQuery) Near(location, distance any) { q.record("Near", location, distance) }
func (q *recordingQuery) WithLatLon(lat, lon, distance any) {
	q.record("WithLatLon", lat, lon, distance)
}
func (q *recordingQuery) WithFavorited(ids any)           { q.record("WithFavorited", ids) }
func (q *recordingQuery) InterestedIn(options any)        { q.record("InterestedIn", options) }
func (q *recordingQuery) WithPublishedDateAfter(date any) { q.record("WithPublishedDateAfter", date) }
func (q *recordingQuery) WithListingID(id any)            { q.record("WithListingID", id) }
func (q *recordingQuery) WithDelay(days any)              { q.record("WithDelay", days) }
func (q *recordingQuery) WithWizardStatus(status any)     { q.record("WithWizardStatus", status) }
func (q *recordingQuery) WithPublished(published any)     { q.record("WithPublished", published) }
func (q *recordingQuery) WithMembership(membership any)   { q.record("WithMembership", membership) }
func (q *recordingQuery) WithUserID(id any)               { q.record("WithUserID", id) }
func (q *recordingQuery) WithoutUserID(id any)            { q.record("WithoutUserID", id) }
func (q *recordingQuery) WithLimit(limit any)             { q.record("WithLimit", limit) }

func (q *recordingQuery) WithPercentFeeEqualTo(fee string) { q.record("WithPercentFeeEqualTo", fee) }
func (q *recordingQuery) WithPercentFeeBetween(low, high string) {
	q.record("WithPercentFeeBetween", low, high)
}

func (q *recordingQuery) WithMaxAUM(v any)                    { q.record("WithMaxAUM", v) }
func (q *recordingQuery) WithMinAUM(v any)                    { q.record("WithMinAUM", v) }
func (q *recordingQuery) WithMaxGDC(v any)                    { q.record("WithMaxGDC", v) }
func (q *recordingQuery) WithMinGDC(v any)                    { q.record("WithMinGDC", v) }
func (q *recordingQuery) WithClearingFirmOptions(options any) { q.record("WithClearingFirmOptions", options) }
func (q *recordingQuery) WithBrokerDealer(v any)              { q.record("WithBrokerDealer", v) }
func (q *recordingQuery) WithAdvisorID(id any)                { q.record("WithAdvisorID", id) }

func (q *recordingQuery) WithMaxRevenue(v any)              { q.record("WithMaxRevenue", v) }
func (q *recordingQuery) WithMinRevenue(v any)              { q.record("WithMinRevenue", v) }
func (q *recordingQuery) WithServicesOptions(options any)   { q.record("WithServicesOptions", options) }
func (q *recordingQuery) WithCredentialOptions(options any) { q.record("WithCredentialOptions", options) }
func (q *recordingQuery) WithCpaID(id any)                  { q.record("WithCpaID", id) }

func (q *recordingQuery) Relation() Relation { return &recordedRelation{query: q} }

// recordedRelation hands the recording query back to tests.
type recordedRelation struct {
	query *recordingQuery
}

func (r *recordedRelation) Fetch(context.Context) ([]*model.Listing, error) { return nil, nil }
func (r *recordedRelation) Count(context.Context) (int, error)              { return 0, nil }

// fakeBackend hands out a fresh recordingQuery per call and remembers them.
type fakeBackend struct {
	built []*recordingQuery
}

func (b *fakeBackend) build(kind model.Kind, user *model.User) *recordingQuery {
	q := &recordingQuery{kind: kind, user: user}
	b.built = append(b.built, q)
	return q
}

func (b *fakeBackend) NewListingQuery(user *model.User) ListingQuery {
	return b.build(model.KindListing, user)
}

func (b *fakeBackend) NewAdvisorQuery(user *model.User) AdvisorQuery {
	return b.build(model.KindAdvisor, user)
}

func (b *fakeBackend) NewCpaQuery(user *model.User) CpaQuery {
	return b.build(model.KindCpa, user)
}

// methodsOf strips the argument lists from recorded calls.
func methodsOf(calls []string) []string {
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i], _, _ = strings.Cut(c, "(")
	}
	return out
}

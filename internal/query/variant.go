package query

import (
	"context"

	"github.com/alfredjeanlab/listings/internal/model"
)

// Relation is a composed listing query. The core only builds it; execution
// belongs to whoever implemented the Backend.
type Relation interface {
	Fetch(ctx context.Context) ([]*model.Listing, error)
	Count(ctx context.Context) (int, error)
}

// ListingQuery is the filter vocabulary shared by every listing kind.
// Each method narrows the query it was called on; values are passed through
// exactly as they appeared in the search parameters.
type ListingQuery interface {
	Near(location, distance any)
	WithLatLon(latitude, longitude, distance any)
	WithFavorited(ids any)
	InterestedIn(options any)
	WithPublishedDateAfter(date any)
	WithListingID(id any)
	WithDelay(days any)
	WithWizardStatus(status any)
	WithPublished(published any)
	WithMembership(membership any)
	WithUserID(id any)
	WithoutUserID(id any)
	WithLimit(limit any)

	// Relation returns the query composed so far.
	Relation() Relation
}

// PercentFeeQuery is implemented by kinds that carry a percent fee.
type PercentFeeQuery interface {
	WithPercentFeeEqualTo(fee string)
	WithPercentFeeBetween(low, high string)
}

// AdvisorQuery extends ListingQuery with advisor practice filters.
type AdvisorQuery interface {
	ListingQuery
	PercentFeeQuery
	WithMaxAUM(v any)
	WithMinAUM(v any)
	WithMaxGDC(v any)
	WithMinGDC(v any)
	WithClearingFirmOptions(options any)
	WithBrokerDealer(v any)
	WithAdvisorID(id any)
}

// CpaQuery extends ListingQuery with CPA practice filters.
type CpaQuery interface {
	ListingQuery
	PercentFeeQuery
	WithMaxRevenue(v any)
	WithMinRevenue(v any)
	WithServicesOptions(options any)
	WithCredentialOptions(options any)
	WithCpaID(id any)
}

// Backend builds fresh query objects bound to the acting user. A nil user
// is an anonymous visitor.
type Backend interface {
	NewListingQuery(user *model.User) ListingQuery
	NewAdvisorQuery(user *model.User) AdvisorQuery
	NewCpaQuery(user *model.User) CpaQuery
}

// Variant is a query object tagged with its kind. The zero Variant is not a
// known variant; build one with ListingVariant, AdvisorVariant or CpaVariant.
type Variant struct {
	kind    model.Kind
	listing ListingQuery
	advisor AdvisorQuery
	cpa     CpaQuery
}

// ListingVariant tags q as a generic listing query.
func ListingVariant(q ListingQuery) Variant {
	if q == nil {
		return Variant{}
	}
	return Variant{kind: model.KindListing, listing: q}
}

// AdvisorVariant tags q as an advisor query.
func AdvisorVariant(q AdvisorQuery) Variant {
	if q == nil {
		return Variant{}
	}
	return Variant{kind: model.KindAdvisor, advisor: q}
}

// CpaVariant tags q as a CPA query.
func CpaVariant(q CpaQuery) Variant {
	if q == nil {
		return Variant{}
	}
	return Variant{kind: model.KindCpa, cpa: q}
}

// Kind returns the variant's discriminant, or "" for the zero Variant.
func (v Variant) Kind() model.Kind {
	return v.kind
}

// NewVariant asks b for a fresh query object of the given kind.
func NewVariant(b Backend, kind model.Kind, user *model.User) (Variant, error) {
	switch kind {
	case model.KindListing:
		return ListingVariant(b.NewListingQuery(user)), nil
	case model.KindAdvisor:
		return AdvisorVariant(b.NewAdvisorQuery(user)), nil
	case model.KindCpa:
		return CpaVariant(b.NewCpaQuery(user)), nil
	default:
		return Variant{}, &UnrecognizedKindError{Kind: string(kind)}
	}
}

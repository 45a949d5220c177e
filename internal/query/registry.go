package query

import (
	"github.com/alfredjeanlab/listings/internal/model"
)

// filterSpec binds a filter method to the rule that decides whether it fires.
type filterSpec[Q any] struct {
	method    string
	appliesIf func(Params) bool
	apply     func(Q, Params)
}

// gated builds the common case: fire fn with params[key] when key is present.
func gated[Q any](method, key string, fn func(Q, any)) filterSpec[Q] {
	return filterSpec[Q]{
		method:    method,
		appliesIf: appliesIfPresent(key),
		apply:     func(q Q, p Params) { fn(q, p[key]) },
	}
}

func percentFeeFilter[Q PercentFeeQuery]() filterSpec[Q] {
	return filterSpec[Q]{
		method:    "WithPercentFee",
		appliesIf: appliesIfPresent("percent_fee"),
		apply:     func(q Q, p Params) { applyPercentFee(q, p["percent_fee"]) },
	}
}

// genericFilters apply to every kind, in this order.
var genericFilters = []filterSpec[ListingQuery]{
	{
		method:    "Near",
		appliesIf: appliesIfPresent("location"),
		apply:     func(q ListingQuery, p Params) { q.Near(p["location"], p["distance"]) },
	},
	{
		// Independent of Near; both fire when both sets of inputs are given.
		method:    "WithLatLon",
		appliesIf: appliesIfPresent("latitude", "longitude", "distance"),
		apply:     func(q ListingQuery, p Params) { q.WithLatLon(p["latitude"], p["longitude"], p["distance"]) },
	},
	{
		method:    "WithFavorited",
		appliesIf: appliesIfNotAbsent("favorited_ids"),
		apply:     func(q ListingQuery, p Params) { q.WithFavorited(p["favorited_ids"]) },
	},
	gated("InterestedIn", "interest_options", ListingQuery.InterestedIn),
	gated("WithPublishedDateAfter", "published_date", ListingQuery.WithPublishedDateAfter),
	gated("WithListingID", "listing_id", ListingQuery.WithListingID),
	gated("WithDelay", "days_listing_access_delayed", ListingQuery.WithDelay),
	gated("WithWizardStatus", "wizard_status", ListingQuery.WithWizardStatus),
	gated("WithPublished", "published", ListingQuery.WithPublished),
	gated("WithMembership", "membership", ListingQuery.WithMembership),
	gated("WithUserID", "user_id", ListingQuery.WithUserID),
	gated("WithoutUserID", "exclude_user_id", ListingQuery.WithoutUserID),
	gated("WithLimit", "limit", ListingQuery.WithLimit),
}

// advisorFilters apply after genericFilters for advisor searches.
var advisorFilters = []filterSpec[AdvisorQuery]{
	percentFeeFilter[AdvisorQuery](),
	gated("WithMaxAUM", "max_aum", AdvisorQuery.WithMaxAUM),
	gated("WithMinAUM", "min_aum", AdvisorQuery.WithMinAUM),
	gated("WithMaxGDC", "max_gdc", AdvisorQuery.WithMaxGDC),
	gated("WithMinGDC", "min_gdc", AdvisorQuery.WithMinGDC),
	gated("WithClearingFirmOptions", "clearing_firm_options", AdvisorQuery.WithClearingFirmOptions),
	gated("WithBrokerDealer", "broker_dealer", AdvisorQuery.WithBrokerDealer),
	gated("WithAdvisorID", "advisor_id", AdvisorQuery.WithAdvisorID),
}

// cpaFilters apply after genericFilters for CPA searches.
var cpaFilters = []filterSpec[CpaQuery]{
	percentFeeFilter[CpaQuery](),
	gated("WithMaxRevenue", "max_revenue", CpaQuery.WithMaxRevenue),
	gated("WithMinRevenue", "min_revenue", CpaQuery.WithMinRevenue),
	gated("WithServicesOptions", "service_options", CpaQuery.WithServicesOptions),
	gated("WithCredentialOptions", "credential_options", CpaQuery.WithCredentialOptions),
	gated("WithCpaID", "cpa_id", CpaQuery.WithCpaID),
}

// FilterNames returns the filter methods a search of the given kind may
// apply, in application order.
func FilterNames(kind model.Kind) ([]string, error) {
	names := methodNames(genericFilters)
	switch kind {
	case model.KindListing:
		return names, nil
	case model.KindAdvisor:
		return append(names, methodNames(advisorFilters)...), nil
	case model.KindCpa:
		return append(names, methodNames(cpaFilters)...), nil
	default:
		return nil, &UnrecognizedKindError{Kind: string(kind)}
	}
}

func methodNames[Q any](specs []filterSpec[Q]) []string {
	names := make([]string, len(specs))
	for i, f := range specs {
		names[i] = f.method
	}
	return names
}

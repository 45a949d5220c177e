package query

import (
	"github.com/alfredjeanlab/listings/internal/model"
)

func applyAll[Q any](q Q, specs []filterSpec[Q], params Params) {
	for _, f := range specs {
		if f.appliesIf(params) {
			f.apply(q, params)
		}
	}
}

// applyFilters runs the filter tables matching v's kind and returns the
// composed relation. Advisor and CPA searches run the generic table first.
func applyFilters(v Variant, params Params) (Relation, error) {
	switch v.kind {
	case model.KindListing:
		applyAll(v.listing, genericFilters, params)
		return v.listing.Relation(), nil
	case model.KindAdvisor:
		applyAll[ListingQuery](v.advisor, genericFilters, params)
		applyAll(v.advisor, advisorFilters, params)
		return v.advisor.Relation(), nil
	case model.KindCpa:
		applyAll[ListingQuery](v.cpa, genericFilters, params)
		applyAll(v.cpa, cpaFilters, params)
		return v.cpa.Relation(), nil
	default:
		return nil, &UnrecognizedVariantError{Type: string(v.kind)}
	}
}

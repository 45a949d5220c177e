package query

import (
	"fmt"
	"strings"

	"github.com/jinzhu/inflection"

	"github.com/alfredjeanlab/listings/internal/model"
)

// kindAll is accepted wherever a kind is expected and searches every listing.
const kindAll = "all"

// kindTable lists every recognised kind name. "all" is an ordinary entry
// so the full set stays enumerable.
var kindTable = map[string]model.Kind{
	"listing": model.KindListing,
	kindAll:   model.KindListing,
	"advisor": model.KindAdvisor,
	"cpa":     model.KindCpa,
}

// KindNames returns the recognised kind names in a stable order.
func KindNames() []string {
	return []string{"listing", kindAll, "advisor", "cpa"}
}

// ResolveKind derives the listing kind from params["market"], falling back
// to params["type"] and then to "all". A nil, empty or false selector is
// skipped. The value is trimmed, lower-cased and singularized, so "Advisors"
// and "advisor" are equivalent. A blank value resolves to a generic listing
// search.
func ResolveKind(params Params) (model.Kind, error) {
	raw := kindAll
	if v, ok := firstNonEmpty(params, "market", "type"); ok {
		raw = v
	}

	name := "listing"
	if trimmed := strings.TrimSpace(raw); trimmed != "" {
		name = inflection.Singular(strings.ToLower(trimmed))
	}

	kind, ok := kindTable[name]
	if !ok {
		return "", &UnrecognizedKindError{Kind: raw}
	}
	return kind, nil
}

func firstNonEmpty(params Params, keys ...string) (string, bool) {
	for _, k := range keys {
		v := params[k]
		if !isNotAbsent(v) {
			continue
		}
		// false is as good as missing; other non-strings are stringified.
		if b, ok := v.(bool); ok && !b {
			continue
		}
		var s string
		if str, ok := v.(string); ok {
			s = str
		} else {
			s = fmt.Sprint(v)
		}
		if s != "" {
			return s, true
		}
	}
	return "", false
}

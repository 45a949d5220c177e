package query

import (
	"fmt"
	"strings"
)

// SplitRange splits a dash-delimited range such as "5-10" into its first two
// fields, ignoring trailing empty fields and anything past the second:
// "5-" yields ("5", ""), "5-10-15" yields ("5", "10"). ok is false when no
// field is left, as for "-" or "--". Values are not validated.
func SplitRange(raw string) (low, high string, ok bool) {
	parts := strings.Split(raw, "-")
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	switch len(parts) {
	case 0:
		return "", "", false
	case 1:
		return parts[0], "", true
	}
	return parts[0], parts[1], true
}

// applyPercentFee narrows q by params["percent_fee"]: a single value is an
// equality match, a range is an inclusive between.
func applyPercentFee(q PercentFeeQuery, raw any) {
	if !isPresent(raw) {
		return
	}
	s, ok := raw.(string)
	if !ok {
		s = fmt.Sprint(raw)
	}

	low, high, ok := SplitRange(s)
	if !ok || (low == "" && high == "") {
		return
	}
	if high == "" {
		q.WithPercentFeeEqualTo(low)
		return
	}
	q.WithPercentFeeBetween(low, high)
}

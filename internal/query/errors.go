package query

import "fmt"

// UnrecognizedKindError is returned when the market/type parameter does not
// name a known listing kind.
type UnrecognizedKindError struct {
	Kind string // raw value as supplied
}

func (e *UnrecognizedKindError) Error() string {
	return fmt.Sprintf("listings query type %q does not exist", e.Kind)
}

// UnrecognizedVariantError is returned when a Variant carries no known
// discriminant, typically the zero Variant passed through WithVariant.
type UnrecognizedVariantError struct {
	Type string
}

func (e *UnrecognizedVariantError) Error() string {
	return fmt.Sprintf("listings query variant %q does not exist", e.Type)
}

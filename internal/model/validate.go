package model

import (
	"fmt"
	"strings"
)

// ValidationError holds a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation failure on a named field.
type FieldError struct {
	Field   string
	Message string
}

// Error formats the validation error as a semicolon-separated list of field messages.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasErrors reports whether the validation error contains any field errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// ValidateListing checks a Listing for constraint violations.
// It returns a *ValidationError if any rules fail, or nil if the listing is valid.
func ValidateListing(l *Listing) error {
	var ve ValidationError

	title := strings.TrimSpace(l.Title)
	if title == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "title", Message: "is required"})
	} else if len([]rune(title)) > 500 {
		ve.Errors = append(ve.Errors, FieldError{Field: "title", Message: "must be 500 characters or fewer"})
	}

	if !l.Kind.IsValid() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "kind",
			Message: fmt.Sprintf("invalid value %q", l.Kind),
		})
	}

	if strings.TrimSpace(l.UserID) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "user_id", Message: "is required"})
	}

	// Coordinates come in pairs and must be on the globe.
	if (l.Latitude == nil) != (l.Longitude == nil) {
		ve.Errors = append(ve.Errors, FieldError{Field: "latitude", Message: "latitude and longitude must be set together"})
	}
	if l.Latitude != nil && (*l.Latitude < -90 || *l.Latitude > 90) {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "latitude",
			Message: fmt.Sprintf("must be between -90 and 90, got %g", *l.Latitude),
		})
	}
	if l.Longitude != nil && (*l.Longitude < -180 || *l.Longitude > 180) {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "longitude",
			Message: fmt.Sprintf("must be between -180 and 180, got %g", *l.Longitude),
		})
	}

	if l.PercentFee != nil && (*l.PercentFee < 0 || *l.PercentFee > 100) {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "percent_fee",
			Message: fmt.Sprintf("must be between 0 and 100, got %g", *l.PercentFee),
		})
	}

	if l.Published && l.PublishedAt == nil {
		ve.Errors = append(ve.Errors, FieldError{Field: "published_at", Message: "must be set when published"})
	}

	// Domain columns belong to their own kind only.
	if l.Kind != KindAdvisor && (l.AUM != nil || l.GDC != nil || len(l.ClearingFirmOptions) > 0 || l.BrokerDealer != "" || l.AdvisorID != "") {
		ve.Errors = append(ve.Errors, FieldError{Field: "kind", Message: "advisor fields require kind \"advisor\""})
	}
	if l.Kind != KindCpa && (l.Revenue != nil || len(l.ServiceOptions) > 0 || len(l.CredentialOptions) > 0 || l.CpaID != "") {
		ve.Errors = append(ve.Errors, FieldError{Field: "kind", Message: "cpa fields require kind \"cpa\""})
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}

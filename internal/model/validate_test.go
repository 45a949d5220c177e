package model

import (
	"strings"
	"testing"
	"time"
)

// validListing returns a Listing that passes all validation rules.
func validListing() Listing {
	return Listing{
		Kind:   KindListing,
		Title:  "Practice for sale",
		UserID: "u1",
	}
}

// fieldErrors extracts a *ValidationError from err or fails the test.
func fieldErrors(t *testing.T, err error) []FieldError {
	t.Helper()
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	return ve.Errors
}

// hasFieldError reports whether the error list contains an error for the given field.
func hasFieldError(errs []FieldError, field string) bool {
	for _, fe := range errs {
		if fe.Field == field {
			return true
		}
	}
	return false
}

func float(v float64) *float64 { return &v }

func TestValidateListing_Valid(t *testing.T) {
	l := validListing()
	if err := ValidateListing(&l); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	now := time.Now()
	advisor := Listing{
		Kind: KindAdvisor, Title: "RIA", UserID: "u1",
		Published: true, PublishedAt: &now,
		Latitude: float(39.7), Longitude: float(-104.9),
		PercentFee: float(0), AUM: float(1e8), BrokerDealer: "LPL",
	}
	if err := ValidateListing(&advisor); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cpa := Listing{Kind: KindCpa, Title: "Tax", UserID: "u1", Revenue: float(1), ServiceOptions: []string{"tax"}}
	if err := ValidateListing(&cpa); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateListing_Invalid(t *testing.T) {
	for _, tc := range []struct {
		name   string
		modify func(*Listing)
		field  string
	}{
		{"EmptyTitle", func(l *Listing) { l.Title = "   " }, "title"},
		{"LongTitle", func(l *Listing) { l.Title = strings.Repeat("x", 501) }, "title"},
		{"EmptyKind", func(l *Listing) { l.Kind = "" }, "kind"},
		{"UnknownKind", func(l *Listing) { l.Kind = "bank" }, "kind"},
		{"MissingUser", func(l *Listing) { l.UserID = "" }, "user_id"},
		{"LatitudeOnly", func(l *Listing) { l.Latitude = float(10) }, "latitude"},
		{"LatitudeRange", func(l *Listing) { l.Latitude, l.Longitude = float(91), float(0) }, "latitude"},
		{"LongitudeRange", func(l *Listing) { l.Latitude, l.Longitude = float(0), float(-181) }, "longitude"},
		{"NegativeFee", func(l *Listing) { l.PercentFee = float(-1) }, "percent_fee"},
		{"FeeOver100", func(l *Listing) { l.PercentFee = float(100.5) }, "percent_fee"},
		{"PublishedWithoutDate", func(l *Listing) { l.Published = true }, "published_at"},
		{"AdvisorFieldOnListing", func(l *Listing) { l.AUM = float(1) }, "kind"},
		{"CpaFieldOnAdvisor", func(l *Listing) { l.Kind = KindAdvisor; l.CpaID = "c1" }, "kind"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			l := validListing()
			tc.modify(&l)
			errs := fieldErrors(t, ValidateListing(&l))
			if !hasFieldError(errs, tc.field) {
				t.Errorf("expected error on %q, got %v", tc.field, errs)
			}
		})
	}
}

func TestValidateListing_CollectsAllErrors(t *testing.T) {
	l := Listing{Kind: "bogus"}
	errs := fieldErrors(t, ValidateListing(&l))
	for _, field := range []string{"title", "kind", "user_id"} {
		if !hasFieldError(errs, field) {
			t.Errorf("missing error for %q in %v", field, errs)
		}
	}
}

func TestValidationError_Error(t *testing.T) {
	ve := &ValidationError{Errors: []FieldError{
		{Field: "title", Message: "is required"},
		{Field: "user_id", Message: "is required"},
	}}
	want := "validation failed: title: is required; user_id: is required"
	if got := ve.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !ve.HasErrors() {
		t.Error("HasErrors() = false, want true")
	}
}

// Package model defines the listing domain types shared by the store and the search core.
package model

import "time"

// Kind selects which listing sub-domain a record or a search belongs to.
type Kind string

const (
	KindListing Kind = "listing"
	KindAdvisor Kind = "advisor"
	KindCpa     Kind = "cpa"
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid checks whether the kind is a known value.
func (k Kind) IsValid() bool {
	switch k {
	case KindListing, KindAdvisor, KindCpa:
		return true
	}
	return false
}

// WizardStatus tracks how far a seller got through the listing wizard.
type WizardStatus string

const (
	WizardStarted   WizardStatus = "started"
	WizardCompleted WizardStatus = "completed"
)

// Listing is a searchable advisory or CPA practice listing.
// Advisor and CPA columns are only populated for records of that kind.
type Listing struct {
	ID              string       `json:"id"`
	Kind            Kind         `json:"kind"`
	Title           string       `json:"title"`
	Description     string       `json:"description,omitempty"`
	UserID          string       `json:"user_id"`
	Location        string       `json:"location,omitempty"`
	Latitude        *float64     `json:"latitude,omitempty"`
	Longitude       *float64     `json:"longitude,omitempty"`
	Published       bool         `json:"published"`
	PublishedAt     *time.Time   `json:"published_at,omitempty"`
	WizardStatus    WizardStatus `json:"wizard_status,omitempty"`
	Membership      string       `json:"membership,omitempty"`
	InterestOptions []string     `json:"interest_options,omitempty"`
	PercentFee      *float64     `json:"percent_fee,omitempty"`

	// Advisor practices.
	AUM                 *float64 `json:"aum,omitempty"`
	GDC                 *float64 `json:"gdc,omitempty"`
	ClearingFirmOptions []string `json:"clearing_firm_options,omitempty"`
	BrokerDealer        string   `json:"broker_dealer,omitempty"`
	AdvisorID           string   `json:"advisor_id,omitempty"`

	// CPA practices.
	Revenue           *float64 `json:"revenue,omitempty"`
	ServiceOptions    []string `json:"service_options,omitempty"`
	CredentialOptions []string `json:"credential_options,omitempty"`
	CpaID             string   `json:"cpa_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Place is a named point used to resolve location searches.
type Place struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

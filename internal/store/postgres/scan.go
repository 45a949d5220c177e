package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/alfredjeanlab/listings/internal/model"
)

// scannable is the interface satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// scanListing scans a single row into a model.Listing.
// The row must contain columns in the order defined by listingColumns.
func scanListing(row scannable) (*model.Listing, error) {
	var l model.Listing
	var (
		description  sql.NullString
		location     sql.NullString
		latitude     sql.NullFloat64
		longitude    sql.NullFloat64
		publishedAt  sql.NullTime
		wizardStatus sql.NullString
		membership   sql.NullString
		percentFee   sql.NullFloat64
		aum          sql.NullFloat64
		gdc          sql.NullFloat64
		brokerDealer sql.NullString
		advisorID    sql.NullString
		revenue      sql.NullFloat64
		cpaID        sql.NullString
	)

	err := row.Scan(
		&l.ID,
		&l.Kind,
		&l.Title,
		&description,
		&l.UserID,
		&location,
		&latitude,
		&longitude,
		&l.Published,
		&publishedAt,
		&wizardStatus,
		&membership,
		pq.Array(&l.InterestOptions),
		&percentFee,
		&aum,
		&gdc,
		pq.Array(&l.ClearingFirmOptions),
		&brokerDealer,
		&advisorID,
		&revenue,
		pq.Array(&l.ServiceOptions),
		pq.Array(&l.CredentialOptions),
		&cpaID,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	l.Description = description.String
	l.Location = location.String
	l.WizardStatus = model.WizardStatus(wizardStatus.String)
	l.Membership = membership.String
	l.BrokerDealer = brokerDealer.String
	l.AdvisorID = advisorID.String
	l.CpaID = cpaID.String

	l.Latitude = floatPtr(latitude)
	l.Longitude = floatPtr(longitude)
	l.PercentFee = floatPtr(percentFee)
	l.AUM = floatPtr(aum)
	l.GDC = floatPtr(gdc)
	l.Revenue = floatPtr(revenue)

	if publishedAt.Valid {
		t := publishedAt.Time
		l.PublishedAt = &t
	}

	return &l, nil
}

// scanListings scans multiple rows into a slice of model.Listing pointers.
func scanListings(rows *sql.Rows) ([]*model.Listing, error) {
	var listings []*model.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return listings, nil
}

// floatPtr converts a sql.NullFloat64 to a *float64; null is nil.
func floatPtr(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}

// nullFloatPtr converts a *float64 to a sql.NullFloat64.
func nullFloatPtr(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

// nullTimePtr converts a *time.Time to a sql.NullTime.
func nullTimePtr(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// nullString converts a string to sql.NullString; empty string is null.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// textArray wraps a string slice for a TEXT[] column; nil becomes '{}'.
func textArray(s []string) any {
	if s == nil {
		s = []string{}
	}
	return pq.Array(s)
}

package postgres

import (
	"context"
	"database/sql"

	"github.com/alfredjeanlab/listings/internal/model"
)

// listingColumns is the column list used for SELECT statements on the listings table.
const listingColumns = `id, kind, title, description, user_id, location, latitude, longitude,
	published, published_at, wizard_status, membership, interest_options, percent_fee,
	aum, gdc, clearing_firm_options, broker_dealer, advisor_id,
	revenue, service_options, credential_options, cpa_id, created_at, updated_at`

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func queryCreateListing(ctx context.Context, db executor, l *model.Listing) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO listings (
			id, kind, title, description, user_id, location, latitude, longitude,
			published, published_at, wizard_status, membership, interest_options, percent_fee,
			aum, gdc, clearing_firm_options, broker_dealer, advisor_id,
			revenue, service_options, credential_options, cpa_id, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8,
			$9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19,
			$20, $21, $22, $23, $24, $25
		)`,
		l.ID,
		string(l.Kind),
		l.Title,
		nullString(l.Description),
		l.UserID,
		nullString(l.Location),
		nullFloatPtr(l.Latitude),
		nullFloatPtr(l.Longitude),
		l.Published,
		nullTimePtr(l.PublishedAt),
		nullString(string(l.WizardStatus)),
		nullString(l.Membership),
		textArray(l.InterestOptions),
		nullFloatPtr(l.PercentFee),
		nullFloatPtr(l.AUM),
		nullFloatPtr(l.GDC),
		textArray(l.ClearingFirmOptions),
		nullString(l.BrokerDealer),
		nullString(l.AdvisorID),
		nullFloatPtr(l.Revenue),
		textArray(l.ServiceOptions),
		textArray(l.CredentialOptions),
		nullString(l.CpaID),
		l.CreatedAt,
		l.UpdatedAt,
	)
	return err
}

func queryGetListing(ctx context.Context, db executor, id string) (*model.Listing, error) {
	row := db.QueryRowContext(ctx, `SELECT `+listingColumns+` FROM listings WHERE id = $1`, id)
	return scanListing(row)
}

func querySetPlace(ctx context.Context, db executor, p *model.Place) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO places (name, latitude, longitude) VALUES ($1, $2, $3)
		ON CONFLICT (lower(name)) DO UPDATE SET latitude = EXCLUDED.latitude, longitude = EXCLUDED.longitude`,
		p.Name, p.Latitude, p.Longitude,
	)
	return err
}

func queryGetPlace(ctx context.Context, db executor, name string) (*model.Place, error) {
	var p model.Place
	err := db.QueryRowContext(ctx,
		`SELECT name, latitude, longitude FROM places WHERE lower(name) = lower($1)`, name,
	).Scan(&p.Name, &p.Latitude, &p.Longitude)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

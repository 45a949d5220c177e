package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/alfredjeanlab/listings/internal/model"
	"github.com/alfredjeanlab/listings/internal/query"
)

// earthRadiusMiles is the mean Earth radius used for haversine distances.
const earthRadiusMiles = 3958.8

// queryConfig is shared by every query object a store hands out.
type queryConfig struct {
	db              executor
	logger          *slog.Logger
	defaultDistance float64
	slowQuery       time.Duration
}

// listingQuery accumulates WHERE clauses for the listings table. It
// implements query.ListingQuery; advisorQuery and cpaQuery embed it.
type listingQuery struct {
	cfg   queryConfig
	kind  model.Kind
	where []string
	args  []any
	limit any
}

// Compile-time checks that the query objects satisfy the core interfaces.
var (
	_ query.ListingQuery = (*listingQuery)(nil)
	_ query.AdvisorQuery = (*advisorQuery)(nil)
	_ query.CpaQuery     = (*cpaQuery)(nil)
)

// newListingQuery starts a query scoped to what user may see. kind is empty
// for generic searches, which span every kind.
func newListingQuery(cfg queryConfig, kind model.Kind, user *model.User) *listingQuery {
	q := &listingQuery{cfg: cfg, kind: kind}
	if kind != "" {
		q.add("kind = %s", string(kind))
	}
	switch {
	case user == nil:
		q.where = append(q.where, "published = true")
	case !user.Admin:
		q.add("(published = true OR user_id = %s)", user.ID)
	}
	return q
}

// nextArg binds v to the next positional placeholder and returns it.
func (q *listingQuery) nextArg(v any) string {
	q.args = append(q.args, v)
	return fmt.Sprintf("$%d", len(q.args))
}

// add appends a clause whose %s verbs are filled with placeholders for args.
func (q *listingQuery) add(clause string, args ...any) {
	placeholders := make([]any, len(args))
	for i, a := range args {
		placeholders[i] = q.nextArg(a)
	}
	q.where = append(q.where, fmt.Sprintf(clause, placeholders...))
}

// distanceOrDefault returns v, or the configured default radius when v is blank.
func (q *listingQuery) distanceOrDefault(v any) any {
	if isBlank(v) {
		return q.cfg.defaultDistance
	}
	return scalar(v)
}

func (q *listingQuery) Near(location, distance any) {
	name := q.nextArg(scalar(location))
	d := q.nextArg(q.distanceOrDefault(distance))
	q.where = append(q.where, fmt.Sprintf(
		"listings.latitude IS NOT NULL AND EXISTS (SELECT 1 FROM places p WHERE lower(p.name) = lower(%s) AND %s <= %s::float8)",
		name, haversine("p.latitude", "p.longitude", "listings.latitude", "listings.longitude"), d,
	))
}

func (q *listingQuery) WithLatLon(latitude, longitude, distance any) {
	lat := q.nextArg(scalar(latitude))
	lon := q.nextArg(scalar(longitude))
	d := q.nextArg(q.distanceOrDefault(distance))
	q.where = append(q.where, fmt.Sprintf(
		"listings.latitude IS NOT NULL AND %s <= %s::float8",
		haversine(lat+"::float8", lon+"::float8", "listings.latitude", "listings.longitude"), d,
	))
}

// WithFavorited keeps only the given ids; an empty list matches nothing.
func (q *listingQuery) WithFavorited(ids any) {
	q.add("id = ANY(%s)", pq.Array(toStrings(ids)))
}

func (q *listingQuery) InterestedIn(options any) {
	q.add("interest_options && %s::text[]", pq.Array(toStrings(options)))
}

func (q *listingQuery) WithPublishedDateAfter(date any) {
	q.add("published_at >= %s::timestamptz", scalar(date))
}

func (q *listingQuery) WithListingID(id any) {
	q.add("id = ANY(%s)", pq.Array(toStrings(id)))
}

// WithDelay keeps listings published at least days ago.
func (q *listingQuery) WithDelay(days any) {
	q.add("published_at <= now() - make_interval(days => %s::int)", scalar(days))
}

func (q *listingQuery) WithWizardStatus(status any) {
	q.add("wizard_status = ANY(%s)", pq.Array(toStrings(status)))
}

func (q *listingQuery) WithPublished(published any) {
	q.add("published = %s::boolean", scalar(published))
}

func (q *listingQuery) WithMembership(membership any) {
	q.add("membership = ANY(%s)", pq.Array(toStrings(membership)))
}

func (q *listingQuery) WithUserID(id any) {
	q.add("user_id = ANY(%s)", pq.Array(toStrings(id)))
}

func (q *listingQuery) WithoutUserID(id any) {
	q.add("user_id <> ALL(%s)", pq.Array(toStrings(id)))
}

func (q *listingQuery) WithLimit(limit any) {
	q.limit = scalar(limit)
}

func (q *listingQuery) percentFeeEqualTo(fee string) {
	q.add("percent_fee = %s::numeric", fee)
}

func (q *listingQuery) percentFeeBetween(low, high string) {
	q.add("percent_fee BETWEEN %s::numeric AND %s::numeric", low, high)
}

// Relation snapshots the clauses added so far.
func (q *listingQuery) Relation() query.Relation {
	return &Relation{
		cfg:   q.cfg,
		where: append([]string(nil), q.where...),
		args:  append([]any(nil), q.args...),
		limit: q.limit,
	}
}

// advisorQuery adds advisor practice filters.
type advisorQuery struct {
	*listingQuery
}

func (q *advisorQuery) WithPercentFeeEqualTo(fee string)       { q.percentFeeEqualTo(fee) }
func (q *advisorQuery) WithPercentFeeBetween(low, high string) { q.percentFeeBetween(low, high) }

func (q *advisorQuery) WithMaxAUM(v any) { q.add("aum <= %s::numeric", scalar(v)) }
func (q *advisorQuery) WithMinAUM(v any) { q.add("aum >= %s::numeric", scalar(v)) }
func (q *advisorQuery) WithMaxGDC(v any) { q.add("gdc <= %s::numeric", scalar(v)) }
func (q *advisorQuery) WithMinGDC(v any) { q.add("gdc >= %s::numeric", scalar(v)) }

func (q *advisorQuery) WithClearingFirmOptions(options any) {
	q.add("clearing_firm_options && %s::text[]", pq.Array(toStrings(options)))
}

func (q *advisorQuery) WithBrokerDealer(v any) {
	q.add("broker_dealer = ANY(%s)", pq.Array(toStrings(v)))
}

func (q *advisorQuery) WithAdvisorID(id any) {
	q.add("advisor_id = ANY(%s)", pq.Array(toStrings(id)))
}

// cpaQuery adds CPA practice filters.
type cpaQuery struct {
	*listingQuery
}

func (q *cpaQuery) WithPercentFeeEqualTo(fee string)       { q.percentFeeEqualTo(fee) }
func (q *cpaQuery) WithPercentFeeBetween(low, high string) { q.percentFeeBetween(low, high) }

func (q *cpaQuery) WithMaxRevenue(v any) { q.add("revenue <= %s::numeric", scalar(v)) }
func (q *cpaQuery) WithMinRevenue(v any) { q.add("revenue >= %s::numeric", scalar(v)) }

func (q *cpaQuery) WithServicesOptions(options any) {
	q.add("service_options && %s::text[]", pq.Array(toStrings(options)))
}

func (q *cpaQuery) WithCredentialOptions(options any) {
	q.add("credential_options && %s::text[]", pq.Array(toStrings(options)))
}

func (q *cpaQuery) WithCpaID(id any) {
	q.add("cpa_id = ANY(%s)", pq.Array(toStrings(id)))
}

// Relation is a composed, unexecuted listings query.
type Relation struct {
	cfg   queryConfig
	where []string
	args  []any
	limit any
}

var _ query.Relation = (*Relation)(nil)

func (r *Relation) whereSQL() string {
	if len(r.where) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(r.where, " AND ")
}

// SQL renders the SELECT statement and its positional arguments.
func (r *Relation) SQL() (string, []any) {
	args := append([]any(nil), r.args...)
	stmt := "SELECT " + listingColumns + " FROM listings" + r.whereSQL() +
		" ORDER BY published_at DESC NULLS LAST, id ASC"
	if r.limit != nil {
		args = append(args, r.limit)
		stmt += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	return stmt, args
}

// CountSQL renders the COUNT statement. A limited relation counts at most
// limit rows.
func (r *Relation) CountSQL() (string, []any) {
	if r.limit == nil {
		return "SELECT COUNT(*) FROM listings" + r.whereSQL(), append([]any(nil), r.args...)
	}
	args := append(append([]any(nil), r.args...), r.limit)
	stmt := fmt.Sprintf("SELECT COUNT(*) FROM (SELECT 1 FROM listings%s LIMIT $%d) AS limited", r.whereSQL(), len(args))
	return stmt, args
}

// Fetch executes the relation and returns the matching listings.
func (r *Relation) Fetch(ctx context.Context) ([]*model.Listing, error) {
	stmt, args := r.SQL()
	start := time.Now()
	rows, err := r.cfg.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch listings: %w", err)
	}
	defer rows.Close()

	listings, err := scanListings(rows)
	if err != nil {
		return nil, fmt.Errorf("scan listings: %w", err)
	}
	r.observe("fetch", stmt, time.Since(start))
	return listings, nil
}

// Count executes the relation as a COUNT query.
func (r *Relation) Count(ctx context.Context) (int, error) {
	stmt, args := r.CountSQL()
	start := time.Now()
	var n int
	if err := r.cfg.db.QueryRowContext(ctx, stmt, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count listings: %w", err)
	}
	r.observe("count", stmt, time.Since(start))
	return n, nil
}

func (r *Relation) observe(op, stmt string, elapsed time.Duration) {
	if r.cfg.logger == nil {
		return
	}
	if r.cfg.slowQuery > 0 && elapsed >= r.cfg.slowQuery {
		r.cfg.logger.Warn("slow listings query", "op", op, "duration", elapsed, "sql", stmt)
		return
	}
	r.cfg.logger.Debug("listings query", "op", op, "duration", elapsed, "clauses", len(r.where))
}

// haversine renders the great-circle distance in miles between two points.
func haversine(lat1, lon1, lat2, lon2 string) string {
	return fmt.Sprintf(
		"(%g * 2 * asin(sqrt(power(sin(radians(%s - %s) / 2), 2) + cos(radians(%s)) * cos(radians(%s)) * power(sin(radians(%s - %s) / 2), 2))))",
		earthRadiusMiles, lat2, lat1, lat1, lat2, lon2, lon1,
	)
}

// isBlank reports whether v is nil, an empty or whitespace string, or an
// empty slice.
func isBlank(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map:
		return rv.Len() == 0
	case reflect.Pointer:
		return rv.IsNil()
	}
	return false
}

// scalar converts a raw parameter into a value the driver can bind. Driver
// types pass through; anything else is formatted with fmt.Sprint and left for
// Postgres to interpret.
func scalar(v any) any {
	switch t := v.(type) {
	case nil, string, bool, int, int32, int64, float32, float64, time.Time:
		return t
	case []any:
		if len(t) == 1 {
			return scalar(t[0])
		}
	case []string:
		if len(t) == 1 {
			return t[0]
		}
	}
	return fmt.Sprint(v)
}

// toStrings flattens a raw list parameter. Strings are split on commas so
// "a,b" and ["a", "b"] are equivalent. The result is never nil, so an empty
// input binds as '{}' rather than NULL.
func toStrings(v any) []string {
	out := []string{}
	switch t := v.(type) {
	case nil:
		return out
	case string:
		for _, part := range strings.Split(t, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	case []string:
		return append(out, t...)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		for i := 0; i < rv.Len(); i++ {
			out = append(out, toStrings(rv.Index(i).Interface())...)
		}
		return out
	}
	return append(out, fmt.Sprint(v))
}

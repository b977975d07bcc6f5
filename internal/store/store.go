// Package store persists the indicator catalog, the geography hierarchy
// and the raw year/value observations the analytics engine consumes. The
// production deployment fronts a graph database; this implementation keeps
// the same fixed query surface on SQLite, with the geography containment
// hierarchy walked by a recursive CTE.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	_ "github.com/mattn/go-sqlite3"

	"sedash/internal/analytics"
	"sedash/pkg/contracts/domain"
)

// ErrNotFound is returned when a requested indicator or geography does not
// exist in the catalog.
var ErrNotFound = errors.New("not found")

const schema = `
CREATE TABLE IF NOT EXISTS indicators (
	id   TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	unit TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS geographies (
	code   TEXT PRIMARY KEY,
	name   TEXT NOT NULL,
	parent TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS observations (
	indicator_id TEXT NOT NULL REFERENCES indicators(id),
	geo_code     TEXT NOT NULL REFERENCES geographies(code),
	year         INTEGER NOT NULL,
	value        REAL,
	UNIQUE (indicator_id, geo_code, year)
);

CREATE INDEX IF NOT EXISTS idx_observations_series
	ON observations (indicator_id, geo_code, year);
`

// Store is the SQLite-backed observation and catalog store.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (or creates) the store at path and applies the schema.
// Pass ":memory:" for an ephemeral store.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	logger.Info("store opened", slog.String("path", path))
	return &Store{db: db, logger: logger.With(slog.String("component", "store"))}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Series returns the observations of one indicator for one geography,
// ordered ascending by year. from/to bound the years when positive; zero
// means unbounded. Absent measurements come back as observations with a
// nil value, preserving the gap.
func (s *Store) Series(ctx context.Context, indicatorID, geoCode string, from, to int) (analytics.TimeSeries, error) {
	query := `SELECT year, value FROM observations
		WHERE indicator_id = ? AND geo_code = ?`
	args := []interface{}{indicatorID, geoCode}
	if from > 0 {
		query += ` AND year >= ?`
		args = append(args, from)
	}
	if to > 0 {
		query += ` AND year <= ?`
		args = append(args, to)
	}
	query += ` ORDER BY year ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query series %s/%s: %w", indicatorID, geoCode, err)
	}
	defer rows.Close()

	var series analytics.TimeSeries
	for rows.Next() {
		var year int
		var value sql.NullFloat64
		if err := rows.Scan(&year, &value); err != nil {
			return nil, fmt.Errorf("scan observation: %w", err)
		}
		obs := analytics.Observation{Year: year}
		if value.Valid {
			v := value.Float64
			obs.Value = &v
		}
		series = append(series, obs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate series %s/%s: %w", indicatorID, geoCode, err)
	}

	return series, nil
}

// Indicator fetches one catalog entry by ID.
func (s *Store) Indicator(ctx context.Context, id string) (domain.Indicator, error) {
	var ind domain.Indicator
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, unit FROM indicators WHERE id = ?`, id).
		Scan(&ind.ID, &ind.Name, &ind.Unit)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Indicator{}, fmt.Errorf("indicator %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return domain.Indicator{}, fmt.Errorf("query indicator %s: %w", id, err)
	}
	return ind, nil
}

// Geography fetches one geography by code.
func (s *Store) Geography(ctx context.Context, code string) (domain.Geography, error) {
	var geo domain.Geography
	err := s.db.QueryRowContext(ctx,
		`SELECT code, name, parent FROM geographies WHERE code = ?`, code).
		Scan(&geo.Code, &geo.Name, &geo.Parent)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Geography{}, fmt.Errorf("geography %s: %w", code, ErrNotFound)
	}
	if err != nil {
		return domain.Geography{}, fmt.Errorf("query geography %s: %w", code, err)
	}
	return geo, nil
}

// ListIndicators returns the indicator catalog ordered by name. A non-empty
// keyword restricts results to names or IDs containing it; this is the
// fixed lookup the indicator-selection heuristic runs against.
func (s *Store) ListIndicators(ctx context.Context, keyword string) ([]domain.Indicator, error) {
	query := `SELECT id, name, unit FROM indicators`
	args := []interface{}{}
	if keyword != "" {
		query += ` WHERE name LIKE ? OR id LIKE ?`
		pattern := "%" + keyword + "%"
		args = append(args, pattern, pattern)
	}
	query += ` ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query indicators: %w", err)
	}
	defer rows.Close()

	var out []domain.Indicator
	for rows.Next() {
		var ind domain.Indicator
		if err := rows.Scan(&ind.ID, &ind.Name, &ind.Unit); err != nil {
			return nil, fmt.Errorf("scan indicator: %w", err)
		}
		out = append(out, ind)
	}
	return out, rows.Err()
}

// ListGeographies returns geographies ordered by code. A non-empty parent
// restricts results to the containment subtree rooted at that code,
// excluding the root itself.
func (s *Store) ListGeographies(ctx context.Context, parent string) ([]domain.Geography, error) {
	var rows *sql.Rows
	var err error

	if parent == "" {
		rows, err = s.db.QueryContext(ctx,
			`SELECT code, name, parent FROM geographies ORDER BY code ASC`)
	} else {
		// Walk the strict containment hierarchy downward from the parent.
		rows, err = s.db.QueryContext(ctx, `
			WITH RECURSIVE subtree(code, name, parent) AS (
				SELECT code, name, parent FROM geographies WHERE parent = ?
				UNION ALL
				SELECT g.code, g.name, g.parent
				FROM geographies g JOIN subtree s ON g.parent = s.code
			)
			SELECT code, name, parent FROM subtree ORDER BY code ASC`, parent)
	}
	if err != nil {
		return nil, fmt.Errorf("query geographies: %w", err)
	}
	defer rows.Close()

	var out []domain.Geography
	for rows.Next() {
		var geo domain.Geography
		if err := rows.Scan(&geo.Code, &geo.Name, &geo.Parent); err != nil {
			return nil, fmt.Errorf("scan geography: %w", err)
		}
		out = append(out, geo)
	}
	return out, rows.Err()
}

// UpsertIndicator inserts or updates a catalog entry.
func (s *Store) UpsertIndicator(ctx context.Context, ind domain.Indicator) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO indicators (id, name, unit) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, unit = excluded.unit`,
		ind.ID, ind.Name, ind.Unit)
	if err != nil {
		return fmt.Errorf("upsert indicator %s: %w", ind.ID, err)
	}
	return nil
}

// UpsertGeography inserts or updates a geography.
func (s *Store) UpsertGeography(ctx context.Context, geo domain.Geography) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO geographies (code, name, parent) VALUES (?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET name = excluded.name, parent = excluded.parent`,
		geo.Code, geo.Name, geo.Parent)
	if err != nil {
		return fmt.Errorf("upsert geography %s: %w", geo.Code, err)
	}
	return nil
}

// PutObservation records one measurement; a nil value records an absent
// observation for the year. Re-recording a year overwrites it, keeping the
// unique-year invariant.
func (s *Store) PutObservation(ctx context.Context, indicatorID, geoCode string, year int, value *float64) error {
	var v sql.NullFloat64
	if value != nil {
		v = sql.NullFloat64{Float64: *value, Valid: true}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO observations (indicator_id, geo_code, year, value) VALUES (?, ?, ?, ?)
		ON CONFLICT(indicator_id, geo_code, year) DO UPDATE SET value = excluded.value`,
		indicatorID, geoCode, year, v)
	if err != nil {
		return fmt.Errorf("put observation %s/%s/%d: %w", indicatorID, geoCode, year, err)
	}
	return nil
}

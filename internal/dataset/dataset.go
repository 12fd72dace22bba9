// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package dataset loads the geometry sequence strtreed indexes, either
// from a GeoJSON FeatureCollection or from a PostgreSQL query.
//
// Tree indices reported by the service are positions in the loaded
// sequence: feature order for GeoJSON, row order for PostgreSQL. A
// feature or row with a null geometry keeps its position and is loaded
// as a nil (missing) geometry.
package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	_ "github.com/lib/pq"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"
	"github.com/paulmach/orb/geojson"
)

// ReadGeoJSON reads a GeoJSON FeatureCollection from r and returns the
// geometry of each feature in order.
func ReadGeoJSON(r io.Reader) ([]orb.Geometry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("dataset: failed to read GeoJSON: %w", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("dataset: failed to parse GeoJSON: %w", err)
	}
	geoms := make([]orb.Geometry, len(fc.Features))
	for i, f := range fc.Features {
		geoms[i] = f.Geometry
	}
	return geoms, nil
}

// LoadFile reads a GeoJSON FeatureCollection file.
func LoadFile(path string) ([]orb.Geometry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	defer f.Close()
	return ReadGeoJSON(f)
}

// OpenPostgres opens a connection pool to dsn using the lib/pq driver.
func OpenPostgres(dsn string, maxOpenConns int) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("dataset: failed to open postgres: %w", err)
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxOpenConns / 2)
	return db, nil
}

// Querier is the subset of *sql.DB LoadPostgres uses.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// LoadPostgres runs query and decodes its single column as WKB, one
// geometry per row. Use ST_AsBinary to select PostGIS geometries: the
// extended (EWKB) form is not accepted.
func LoadPostgres(ctx context.Context, db Querier, query string) ([]orb.Geometry, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("dataset: query failed: %w", err)
	}
	defer rows.Close()

	var geoms []orb.Geometry
	for rows.Next() {
		s := wkb.Scanner(nil)
		if err = rows.Scan(s); err != nil {
			return nil, fmt.Errorf("dataset: failed to scan row %d: %w", len(geoms), err)
		}
		if s.Valid {
			geoms = append(geoms, s.Geometry)
		} else {
			geoms = append(geoms, nil)
		}
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("dataset: failed to read rows: %w", err)
	}
	return geoms, nil
}

// Package dataset persists scraped land-bank plots in SQLite and turns
// them into documents for ingestion.
package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Plot is one row of the land-bank availability table.
type Plot struct {
	SrNo           string
	RegionalOffice string
	IndustrialArea string
	PlotNo         string
	AreaSqMeter    float64
	PropertyType   string
	ScrapedAt      time.Time
}

// Store persists plots in a SQLite database file.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed initializes) the plot database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open plot database %s: %w", path, err)
	}
	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	const schema = `
CREATE TABLE IF NOT EXISTS plots (
    sr_no           TEXT NOT NULL,
    regional_office TEXT NOT NULL,
    industrial_area TEXT NOT NULL,
    plot_no         TEXT NOT NULL,
    area_sq_meter   REAL NOT NULL,
    property_type   TEXT NOT NULL,
    scraped_at      INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_plots_office ON plots(regional_office);
CREATE INDEX IF NOT EXISTS idx_plots_type ON plots(property_type);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize plot schema: %w", err)
	}
	return nil
}

// Save replaces the stored dataset with the given plots in one
// transaction. A scrape is a full snapshot, so stale rows are dropped.
func (s *Store) Save(ctx context.Context, plots []Plot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM plots`); err != nil {
		return fmt.Errorf("failed to clear plots: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO plots (sr_no, regional_office, industrial_area, plot_no, area_sq_meter, property_type, scraped_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range plots {
		scrapedAt := p.ScrapedAt
		if scrapedAt.IsZero() {
			scrapedAt = time.Now()
		}
		_, err := stmt.ExecContext(ctx,
			p.SrNo, p.RegionalOffice, p.IndustrialArea, p.PlotNo,
			p.AreaSqMeter, p.PropertyType, scrapedAt.Unix(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert plot %s/%s: %w", p.IndustrialArea, p.PlotNo, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit plots: %w", err)
	}
	return nil
}

// LoadAll returns every stored plot.
func (s *Store) LoadAll(ctx context.Context) ([]Plot, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT sr_no, regional_office, industrial_area, plot_no, area_sq_meter, property_type, scraped_at
FROM plots ORDER BY regional_office, industrial_area, plot_no`)
	if err != nil {
		return nil, fmt.Errorf("failed to query plots: %w", err)
	}
	defer rows.Close()

	var plots []Plot
	for rows.Next() {
		var p Plot
		var scrapedAt int64
		if err := rows.Scan(&p.SrNo, &p.RegionalOffice, &p.IndustrialArea, &p.PlotNo, &p.AreaSqMeter, &p.PropertyType, &scrapedAt); err != nil {
			return nil, fmt.Errorf("failed to scan plot row: %w", err)
		}
		p.ScrapedAt = time.Unix(scrapedAt, 0)
		plots = append(plots, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate plots: %w", err)
	}
	return plots, nil
}

// Count returns the number of stored plots.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM plots`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count plots: %w", err)
	}
	return count, nil
}

// Stats returns plot counts per property type.
func (s *Store) Stats(ctx context.Context) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT property_type, COUNT(*) FROM plots GROUP BY property_type`)
	if err != nil {
		return nil, fmt.Errorf("failed to query plot stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]int64)
	for rows.Next() {
		var typ string
		var count int64
		if err := rows.Scan(&typ, &count); err != nil {
			return nil, fmt.Errorf("failed to scan stats row: %w", err)
		}
		stats[typ] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate stats: %w", err)
	}
	return stats, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

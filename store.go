package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// MatchArchive persists finished matches to Postgres. It is entirely
// optional: with no database URL configured every method is a no-op, the
// simulation itself never depends on storage.
type MatchArchive struct {
	db *sql.DB
}

// openArchive connects and migrates. An empty URL yields a disabled archive
// rather than an error.
func openArchive(databaseURL string) (*MatchArchive, error) {
	if databaseURL == "" {
		return &MatchArchive{}, nil
	}

	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	archive := &MatchArchive{db: db}
	if err := archive.migrate(); err != nil {
		return nil, err
	}
	return archive, nil
}

func (a *MatchArchive) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS finished_matches (
			id BIGSERIAL PRIMARY KEY,
			fixture_id INTEGER NOT NULL,
			season INTEGER NOT NULL,
			matchday INTEGER NOT NULL,
			league VARCHAR(50) NOT NULL,
			home_team VARCHAR(100) NOT NULL,
			away_team VARCHAR(100) NOT NULL,
			home_score INTEGER NOT NULL,
			away_score INTEGER NOT NULL,
			seed BIGINT NOT NULL,
			event_count INTEGER NOT NULL,
			report JSONB NOT NULL,
			finished_at TIMESTAMP NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_finished_matches_fixture ON finished_matches(fixture_id)`,
		`CREATE INDEX IF NOT EXISTS idx_finished_matches_league ON finished_matches(league, season, matchday)`,
	}
	for _, migration := range migrations {
		if _, err := a.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// Enabled reports whether an actual database sits behind the archive.
func (a *MatchArchive) Enabled() bool {
	return a != nil && a.db != nil
}

// SaveFinishedMatch archives a full-time report. Failures are returned, not
// fatal; the caller logs and moves on.
func (a *MatchArchive) SaveFinishedMatch(f *Fixture, seasonYear int, report *MatchReport) error {
	if !a.Enabled() {
		return nil
	}
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encoding report for fixture %d: %w", f.ID, err)
	}
	_, err = a.db.Exec(`
		INSERT INTO finished_matches
			(fixture_id, season, matchday, league, home_team, away_team,
			 home_score, away_score, seed, event_count, report, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		f.ID, seasonYear, f.Matchday, f.League, f.HomeName, f.AwayName,
		report.HomeScore, report.AwayScore, f.Seed, len(report.Events), payload, time.Now())
	if err != nil {
		return fmt.Errorf("archiving fixture %d: %w", f.ID, err)
	}
	return nil
}

// RecentResults reads back the latest archived scores, newest first.
func (a *MatchArchive) RecentResults(limit int) ([]*Fixture, error) {
	if !a.Enabled() {
		return nil, nil
	}
	rows, err := a.db.Query(`
		SELECT fixture_id, matchday, league, home_team, away_team, home_score, away_score
		FROM finished_matches ORDER BY finished_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent results: %w", err)
	}
	defer rows.Close()

	var out []*Fixture
	for rows.Next() {
		f := &Fixture{Played: true}
		if err := rows.Scan(&f.ID, &f.Matchday, &f.League, &f.HomeName, &f.AwayName, &f.HomeScore, &f.AwayScore); err != nil {
			return nil, fmt.Errorf("scanning result row: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// Close releases the connection pool.
func (a *MatchArchive) Close() error {
	if !a.Enabled() {
		return nil
	}
	return a.db.Close()
}

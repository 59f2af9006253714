// Package export persists finished runs to SQLite: one row per run plus
// one row per device per statistic series. Write-only output; a later
// run never reloads this state into a catalog.
package export

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	errs "github.com/openrtl/rxstats/pkg/errors"
	"github.com/openrtl/rxstats/pkg/types"
)

type Store struct {
	db *sql.DB
}

func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errs.ErrStoreFailed("open sqlite", err)
	}

	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errs.ErrStoreFailed("ping sqlite", err)
	}

	// modernc.org/sqlite requires explicit PRAGMAs (not query-string params)
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, errs.ErrStoreFailed("set WAL mode", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, errs.ErrStoreFailed("set busy_timeout", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, errs.ErrStoreFailed("migrate", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		sources TEXT NOT NULL DEFAULT '[]',
		total_packets INTEGER NOT NULL,
		deduped_transmissions INTEGER NOT NULL,
		devices INTEGER NOT NULL,
		first_time REAL NOT NULL DEFAULT 0,
		last_time REAL NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		return err
	}
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS device_stats (
		run_id TEXT NOT NULL REFERENCES runs(id),
		device TEXT NOT NULL,
		packets INTEGER NOT NULL,
		transmissions INTEGER NOT NULL,
		grade TEXT NOT NULL DEFAULT '',
		series TEXT NOT NULL,
		n INTEGER NOT NULL,
		mean REAL NOT NULL,
		stddev REAL NOT NULL,
		min REAL NOT NULL,
		max REAL NOT NULL,
		PRIMARY KEY (run_id, device, series)
	)`)
	if err != nil {
		return err
	}
	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_device_stats_device ON device_stats(device)`)
	return err
}

// SaveRun writes one finished run in a single transaction and returns the
// generated run id.
func (s *Store) SaveRun(run *types.RunStats) (string, error) {
	id := uuid.NewString()

	sources, err := json.Marshal(run.Sources)
	if err != nil {
		return "", errs.ErrStoreFailed("marshal sources", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", errs.ErrStoreFailed("begin transaction", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (id, sources, total_packets, deduped_transmissions,
			devices, first_time, last_time, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, string(sources), run.TotalPackets, run.DedupedTransmissions,
		run.Devices, run.FirstTime, run.LastTime, time.Now().UTC(),
	)
	if err != nil {
		return "", errs.ErrStoreFailed("insert run", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO device_stats (run_id, device, packets, transmissions,
			grade, series, n, mean, stddev, min, max)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", errs.ErrStoreFailed("prepare device insert", err)
	}
	defer stmt.Close()

	for _, row := range run.Rows {
		for _, series := range []struct {
			name string
			sum  *types.Summary
		}{
			{"snr", row.SNR},
			{"gap", row.Gap},
			{"freq", row.Freq},
			{"ppt", row.PPT},
		} {
			if series.sum == nil {
				continue
			}
			_, err = stmt.Exec(id, row.Device, row.Packets, row.Transmissions,
				row.Grade, series.name, series.sum.Count, series.sum.Mean,
				series.sum.StdDev, series.sum.Min, series.sum.Max)
			if err != nil {
				return "", errs.ErrStoreFailed(
					fmt.Sprintf("insert %s stats for %s", series.name, row.Device), err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", errs.ErrStoreFailed("commit run", err)
	}
	return id, nil
}

// CountDeviceRows returns the number of stored series rows for a run.
// Used by tests and the MCP inspection tool.
func (s *Store) CountDeviceRows(runID string) (int, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM device_stats WHERE run_id = ?`, runID).Scan(&n)
	if err != nil {
		return 0, errs.ErrStoreFailed("count device rows", err)
	}
	return n, nil
}

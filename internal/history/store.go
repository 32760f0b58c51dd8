package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver

	"github.com/sbcounts/aadv/internal/contract"
	"github.com/sbcounts/aadv/schema"
)

// Table names used by the history schema.
const (
	runsTable    = "aadv_runs"
	resultsTable = "aadv_site_years"
)

// StoreImpl handles durable history storage over various database
// backends.
type StoreImpl struct {
	db       *sql.DB
	backend  schema.DatabaseBackend
	location string
}

var _ contract.HistoryStore = (*StoreImpl)(nil) // Compile-time check

// NewStore opens the backend, verifies connectivity and migrates the
// schema to the latest version.
func NewStore(backend schema.DatabaseBackend, connStr string) (*StoreImpl, error) {
	db, location, err := openBackend(backend, connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s history database: %w", backend, err)
	}

	if err := migrateUp(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate history schema: %w", err)
	}

	return &StoreImpl{db: db, backend: backend, location: location}, nil
}

// openBackend opens a database handle for the configured backend.
func openBackend(backend schema.DatabaseBackend, connStr string) (*sql.DB, string, error) {
	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = DefaultDBFilePath()
		}
		db, err := sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open SQLite history at %q: %w", dbPath, err)
		}
		// Single connection avoids "database is locked" errors.
		db.SetMaxOpenConns(1)
		return db, dbPath, nil

	case schema.MySQLBackend:
		// connStr: user:password@tcp(host:port)/dbname
		db, err := sql.Open("mysql", connStr)
		if err != nil {
			return nil, "", fmt.Errorf("failed to connect to MySQL history: %w", err)
		}
		return db, connStr, nil

	case schema.PostgreSQLBackend:
		// connStr: host=... port=... user=... dbname=...
		db, err := sql.Open("pgx", connStr)
		if err != nil {
			return nil, "", fmt.Errorf("failed to connect to PostgreSQL history: %w", err)
		}
		return db, connStr, nil

	default:
		return nil, "", fmt.Errorf("unsupported history backend: %s", backend)
	}
}

// rebind converts ? placeholders to $N for PostgreSQL.
func (s *StoreImpl) rebind(query string) string {
	if s.backend != schema.PostgreSQLBackend {
		return query
	}
	out := make([]byte, 0, len(query)+8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			out = append(out, fmt.Sprintf("$%d", n)...)
			continue
		}
		out = append(out, query[i])
	}
	return string(out)
}

// BeginRun implements the HistoryStore interface.
func (s *StoreImpl) BeginRun(params map[string]any) (int64, error) {
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return 0, fmt.Errorf("failed to encode run params: %w", err)
	}
	now := time.Now().Unix()

	if s.backend == schema.PostgreSQLBackend {
		var id int64
		err := s.db.QueryRow(
			s.rebind("INSERT INTO "+runsTable+" (started_at, params_json) VALUES (?, ?) RETURNING id"),
			now, string(paramsJSON),
		).Scan(&id)
		return id, err
	}

	res, err := s.db.Exec(
		"INSERT INTO "+runsTable+" (started_at, params_json) VALUES (?, ?)",
		now, string(paramsJSON),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// RecordResult implements the HistoryStore interface.
func (s *StoreImpl) RecordResult(runID int64, result schema.AADVCalculationResult) error {
	_, err := s.db.Exec(
		s.rebind("INSERT INTO "+resultsTable+
			" (run_id, site_id, year, aadv, method, warning_count, hourly_factors, daily_factors, monthly_factors, created_at)"+
			" VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"),
		runID,
		result.SiteYear.SiteID,
		result.SiteYear.Year,
		result.SiteYear.AADV,
		string(result.Method),
		len(result.Warnings),
		result.Factors.HourlyApplied,
		result.Factors.DailyApplied,
		result.Factors.MonthlyApplied,
		time.Now().Unix(),
	)
	return err
}

// EndRun implements the HistoryStore interface.
func (s *StoreImpl) EndRun(runID int64, resultCount int) error {
	_, err := s.db.Exec(
		s.rebind("UPDATE "+runsTable+" SET ended_at = ?, result_count = ? WHERE id = ?"),
		time.Now().Unix(), resultCount, runID,
	)
	return err
}

// GetStatus implements the HistoryStore interface.
func (s *StoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(s.backend),
		Location:   s.location,
		TableSizes: make(map[string]int64),
	}

	if err := s.db.QueryRow("SELECT COUNT(*) FROM " + runsTable).Scan(&status.TotalRuns); err != nil {
		return status, err
	}
	status.TableSizes[runsTable] = status.TotalRuns

	var resultCount int64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM " + resultsTable).Scan(&resultCount); err != nil {
		return status, err
	}
	status.TableSizes[resultsTable] = resultCount

	return status, nil
}

// GetAllRuns implements the HistoryStore interface.
func (s *StoreImpl) GetAllRuns() ([]schema.RunRecord, error) {
	rows, err := s.db.Query(
		"SELECT id, started_at, COALESCE(ended_at, 0), COALESCE(result_count, 0), params_json FROM " +
			runsTable + " ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var runs []schema.RunRecord
	for rows.Next() {
		var run schema.RunRecord
		var started, ended int64
		var paramsJSON string
		if err := rows.Scan(&run.ID, &started, &ended, &run.ResultCount, &paramsJSON); err != nil {
			return nil, err
		}
		run.StartedAt = time.Unix(started, 0)
		if ended > 0 {
			run.EndedAt = time.Unix(ended, 0)
		}
		if err := json.Unmarshal([]byte(paramsJSON), &run.Params); err != nil {
			run.Params = nil
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetAllResults implements the HistoryStore interface.
func (s *StoreImpl) GetAllResults() ([]schema.SiteYearRecord, error) {
	rows, err := s.db.Query(
		"SELECT id, run_id, site_id, year, aadv, method, warning_count, hourly_factors, daily_factors, monthly_factors, created_at FROM " +
			resultsTable + " ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []schema.SiteYearRecord
	for rows.Next() {
		var rec schema.SiteYearRecord
		var created int64
		if err := rows.Scan(&rec.ID, &rec.RunID, &rec.SiteID, &rec.Year, &rec.AADV, &rec.Method,
			&rec.WarningCount, &rec.HourlyFactors, &rec.DailyFactors, &rec.MonthlyFactors, &created); err != nil {
			return nil, err
		}
		rec.CreatedAt = time.Unix(created, 0)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close implements the HistoryStore interface.
func (s *StoreImpl) Close() error {
	return s.db.Close()
}

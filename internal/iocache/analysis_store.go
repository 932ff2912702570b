package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/spendwrap/internal/contract"
	"github.com/huangsam/spendwrap/schema"
)

// Table names for analysis tracking.
const (
	analysisRunsTable   = "spendwrap_analysis_runs"
	monthlyTotalsTable  = "spendwrap_monthly_totals"
	categoryTotalsTable = "spendwrap_category_totals"
	migrationsTable     = "schema_migrations"
)

// analysisTables lists the tracking tables in creation order.
var analysisTables = []string{analysisRunsTable, monthlyTotalsTable, categoryTotalsTable}

// AnalysisStoreImpl implements the AnalysisStore interface.
type AnalysisStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.AnalysisStore = &AnalysisStoreImpl{} // Compile-time check

// NewAnalysisStore creates a new AnalysisStore with the specified backend.
func NewAnalysisStore(backend schema.DatabaseBackend, connStr string) (contract.AnalysisStore, error) {
	if backend == schema.NoneBackend {
		// No-op store for disabled tracking
		return &AnalysisStoreImpl{backend: backend}, nil
	}

	db, err := openDB(backend, connStr, GetAnalysisDBFilePath())
	if err != nil {
		return nil, fmt.Errorf("analysis store: %w", err)
	}

	if err := createAnalysisTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create analysis tables: %w", err)
	}

	return &AnalysisStoreImpl{db: db, backend: backend}, nil
}

// createAnalysisTables creates the analysis tracking tables. The layout matches
// the first embedded migration.
func createAnalysisTables(db *sql.DB, backend schema.DatabaseBackend) error {
	queries := map[string]string{
		analysisRunsTable:   getCreateAnalysisRunsQuery(backend),
		monthlyTotalsTable:  getCreateMonthlyTotalsQuery(backend),
		categoryTotalsTable: getCreateCategoryTotalsQuery(backend),
	}
	for _, table := range analysisTables {
		if _, err := db.Exec(queries[table]); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table, err)
		}
	}
	return nil
}

// getCreateAnalysisRunsQuery returns the CREATE TABLE query for spendwrap_analysis_runs.
func getCreateAnalysisRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(analysisRunsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				run_uuid CHAR(36) NOT NULL,
				target_year INT NOT NULL,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				run_duration_ms INT,
				total_records INT NOT NULL DEFAULT 0,
				accepted_lines INT NOT NULL DEFAULT 0,
				total_orders INT NOT NULL DEFAULT 0,
				total_spend DOUBLE NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id BIGSERIAL PRIMARY KEY,
				run_uuid TEXT NOT NULL,
				target_year INT NOT NULL,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				run_duration_ms INT,
				total_records INT NOT NULL DEFAULT 0,
				accepted_lines INT NOT NULL DEFAULT 0,
				total_orders INT NOT NULL DEFAULT 0,
				total_spend DOUBLE PRECISION NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id INTEGER PRIMARY KEY AUTOINCREMENT,
				run_uuid TEXT NOT NULL,
				target_year INTEGER NOT NULL,
				start_time TEXT NOT NULL,
				end_time TEXT,
				run_duration_ms INTEGER,
				total_records INTEGER NOT NULL DEFAULT 0,
				accepted_lines INTEGER NOT NULL DEFAULT 0,
				total_orders INTEGER NOT NULL DEFAULT 0,
				total_spend REAL NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)
	}
}

// getCreateMonthlyTotalsQuery returns the CREATE TABLE query for spendwrap_monthly_totals.
func getCreateMonthlyTotalsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(monthlyTotalsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id BIGINT NOT NULL,
				month_key CHAR(7) NOT NULL,
				amount DOUBLE NOT NULL,
				is_peak BOOLEAN NOT NULL DEFAULT FALSE,
				PRIMARY KEY (analysis_id, month_key)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id BIGINT NOT NULL,
				month_key TEXT NOT NULL,
				amount DOUBLE PRECISION NOT NULL,
				is_peak BOOLEAN NOT NULL DEFAULT FALSE,
				PRIMARY KEY (analysis_id, month_key)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id INTEGER NOT NULL,
				month_key TEXT NOT NULL,
				amount REAL NOT NULL,
				is_peak INTEGER NOT NULL DEFAULT 0,
				PRIMARY KEY (analysis_id, month_key)
			);
		`, quotedTableName)
	}
}

// getCreateCategoryTotalsQuery returns the CREATE TABLE query for spendwrap_category_totals.
func getCreateCategoryTotalsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(categoryTotalsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id BIGINT NOT NULL,
				category_name VARCHAR(255) NOT NULL,
				category_rank INT NOT NULL,
				amount DOUBLE NOT NULL,
				PRIMARY KEY (analysis_id, category_name)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id BIGINT NOT NULL,
				category_name TEXT NOT NULL,
				category_rank INT NOT NULL,
				amount DOUBLE PRECISION NOT NULL,
				PRIMARY KEY (analysis_id, category_name)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id INTEGER NOT NULL,
				category_name TEXT NOT NULL,
				category_rank INTEGER NOT NULL,
				amount REAL NOT NULL,
				PRIMARY KEY (analysis_id, category_name)
			);
		`, quotedTableName)
	}
}

// disabled reports whether the store is a no-op.
func (as *AnalysisStoreImpl) disabled() bool {
	return as.backend == schema.NoneBackend || as.db == nil
}

// BeginAnalysis creates a new analysis run and returns its unique ID.
func (as *AnalysisStoreImpl) BeginAnalysis(runUUID string, targetYear int, startTime time.Time, configParams map[string]any) (int64, error) {
	if as.disabled() {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(analysisRunsTable, as.backend)
	args := []any{runUUID, targetYear, formatTime(startTime, as.backend), string(configJSON)}

	var analysisID int64
	switch as.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (run_uuid, target_year, start_time, config_params) VALUES ($1, $2, $3, $4) RETURNING analysis_id`, quotedTableName)
		err = as.db.QueryRow(query, args...).Scan(&analysisID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (run_uuid, target_year, start_time, config_params) VALUES (?, ?, ?, ?)`, quotedTableName)
		var result sql.Result
		result, err = as.db.Exec(query, args...)
		if err == nil {
			analysisID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert analysis run: %w", err)
	}

	return analysisID, nil
}

// EndAnalysis updates the analysis run with completion data.
func (as *AnalysisStoreImpl) EndAnalysis(analysisID int64, endTime time.Time, totals schema.RunTotals) error {
	if as.disabled() {
		return nil
	}

	quotedTableName := quoteTableName(analysisRunsTable, as.backend)
	query := fmt.Sprintf(`SELECT start_time FROM %s WHERE analysis_id = %s`, quotedTableName, placeholder(as.backend, 1))
	startTime, err := as.scanTime(as.db.QueryRow(query, analysisID))
	if err != nil {
		return fmt.Errorf("failed to get start_time for analysis %d: %w", analysisID, err)
	}

	durationMs := endTime.Sub(startTime).Milliseconds()

	var updateQuery string
	switch as.backend {
	case schema.PostgreSQLBackend:
		updateQuery = fmt.Sprintf(`UPDATE %s SET end_time = $1, run_duration_ms = $2, total_records = $3, accepted_lines = $4,
			total_orders = $5, total_spend = $6 WHERE analysis_id = $7`, quotedTableName)
	default: // SQLite and MySQL
		updateQuery = fmt.Sprintf(`UPDATE %s SET end_time = ?, run_duration_ms = ?, total_records = ?, accepted_lines = ?,
			total_orders = ?, total_spend = ? WHERE analysis_id = ?`, quotedTableName)
	}

	_, err = as.db.Exec(updateQuery,
		formatTime(endTime, as.backend), durationMs,
		totals.TotalRecords, totals.AcceptedLines, totals.TotalOrders, totals.TotalSpend,
		analysisID,
	)
	if err != nil {
		return fmt.Errorf("failed to update analysis run: %w", err)
	}
	return nil
}

// RecordMonthlyTotal stores the spend of one month of a run.
func (as *AnalysisStoreImpl) RecordMonthlyTotal(analysisID int64, monthKey string, amount float64, isPeak bool) error {
	if as.disabled() {
		return nil
	}
	query := fmt.Sprintf(`INSERT INTO %s (analysis_id, month_key, amount, is_peak) VALUES (%s)`,
		quoteTableName(monthlyTotalsTable, as.backend), placeholders(as.backend, 4))
	if _, err := as.db.Exec(query, analysisID, monthKey, amount, isPeak); err != nil {
		return fmt.Errorf("failed to insert monthly total %s: %w", monthKey, err)
	}
	return nil
}

// RecordCategoryTotal stores the spend and rank of one top category of a run.
func (as *AnalysisStoreImpl) RecordCategoryTotal(analysisID int64, category string, rank int, amount float64) error {
	if as.disabled() {
		return nil
	}
	query := fmt.Sprintf(`INSERT INTO %s (analysis_id, category_name, category_rank, amount) VALUES (%s)`,
		quoteTableName(categoryTotalsTable, as.backend), placeholders(as.backend, 4))
	if _, err := as.db.Exec(query, analysisID, category, rank, amount); err != nil {
		return fmt.Errorf("failed to insert category total %s: %w", category, err)
	}
	return nil
}

// Close closes the underlying connection.
func (as *AnalysisStoreImpl) Close() error {
	if as.db != nil {
		return as.db.Close()
	}
	return nil
}

// scanTime reads a single timestamp column, which SQLite stores as text.
func (as *AnalysisStoreImpl) scanTime(row *sql.Row) (time.Time, error) {
	if as.backend != schema.SQLiteBackend {
		var t time.Time
		err := row.Scan(&t)
		return t, err
	}
	var s string
	if err := row.Scan(&s); err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339Nano, s)
}

// GetStatus returns status information about the analysis store.
func (as *AnalysisStoreImpl) GetStatus() (schema.AnalysisStatus, error) {
	status := schema.AnalysisStatus{
		Backend:    string(as.backend),
		Connected:  as.db != nil,
		TableSizes: make(map[string]int64),
	}
	if as.disabled() {
		return status, nil
	}

	runs := quoteTableName(analysisRunsTable, as.backend)
	if err := as.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", runs)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		if err := as.db.QueryRow(fmt.Sprintf("SELECT MAX(analysis_id) FROM %s", runs)).Scan(&status.LastRunID); err != nil {
			return status, fmt.Errorf("failed to get last run id: %w", err)
		}

		var err error
		status.LastRunTime, err = as.scanTime(as.db.QueryRow(fmt.Sprintf("SELECT start_time FROM %s ORDER BY analysis_id DESC LIMIT 1", runs)))
		if err != nil {
			return status, fmt.Errorf("failed to get last run time: %w", err)
		}
		status.OldestRunTime, err = as.scanTime(as.db.QueryRow(fmt.Sprintf("SELECT start_time FROM %s ORDER BY analysis_id ASC LIMIT 1", runs)))
		if err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}

		linesQuery := fmt.Sprintf("SELECT COALESCE(SUM(accepted_lines), 0) FROM %s", runs)
		if err := as.db.QueryRow(linesQuery).Scan(&status.TotalLinesTracked); err != nil {
			return status, fmt.Errorf("failed to get total lines tracked: %w", err)
		}
	}

	for _, table := range analysisTables {
		var count int64
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, as.backend))
		if err := as.db.QueryRow(countQuery).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	// Only present once the migrate command has run
	versionQuery := fmt.Sprintf("SELECT version FROM %s LIMIT 1", quoteTableName(migrationsTable, as.backend))
	var version int64
	if err := as.db.QueryRow(versionQuery).Scan(&version); err == nil && version > 0 {
		status.SchemaVersion = uint(version)
	}

	return status, nil
}

// GetAllAnalysisRuns retrieves all analysis runs from the store.
func (as *AnalysisStoreImpl) GetAllAnalysisRuns() ([]schema.AnalysisRunRecord, error) {
	if as.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT analysis_id, run_uuid, target_year, start_time, end_time, run_duration_ms,
		total_records, accepted_lines, total_orders, total_spend, config_params
		FROM %s ORDER BY analysis_id`, quoteTableName(analysisRunsTable, as.backend))

	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.AnalysisRunRecord
	for rows.Next() {
		var r schema.AnalysisRunRecord
		switch as.backend {
		case schema.SQLiteBackend:
			var startStr string
			var endStr *string
			if err := rows.Scan(&r.AnalysisID, &r.RunUUID, &r.TargetYear, &startStr, &endStr, &r.RunDurationMs,
				&r.TotalRecords, &r.AcceptedLines, &r.TotalOrders, &r.TotalSpend, &r.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan analysis run: %w", err)
			}
			if r.StartTime, err = time.Parse(time.RFC3339Nano, startStr); err != nil {
				return nil, fmt.Errorf("failed to parse start_time: %w", err)
			}
			if endStr != nil {
				end, err := time.Parse(time.RFC3339Nano, *endStr)
				if err != nil {
					return nil, fmt.Errorf("failed to parse end_time: %w", err)
				}
				r.EndTime = &end
			}
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&r.AnalysisID, &r.RunUUID, &r.TargetYear, &r.StartTime, &r.EndTime, &r.RunDurationMs,
				&r.TotalRecords, &r.AcceptedLines, &r.TotalOrders, &r.TotalSpend, &r.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan analysis run: %w", err)
			}
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analysis runs: %w", err)
	}
	return results, nil
}

// GetAllMonthlyTotals retrieves every recorded month of every run.
func (as *AnalysisStoreImpl) GetAllMonthlyTotals() ([]schema.MonthlyTotalRecord, error) {
	if as.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT analysis_id, month_key, amount, is_peak FROM %s ORDER BY analysis_id, month_key`,
		quoteTableName(monthlyTotalsTable, as.backend))
	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly totals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.MonthlyTotalRecord
	for rows.Next() {
		var r schema.MonthlyTotalRecord
		if err := rows.Scan(&r.AnalysisID, &r.MonthKey, &r.Amount, &r.IsPeak); err != nil {
			return nil, fmt.Errorf("failed to scan monthly total: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly totals: %w", err)
	}
	return results, nil
}

// GetAllCategoryTotals retrieves every recorded category of every run.
func (as *AnalysisStoreImpl) GetAllCategoryTotals() ([]schema.CategoryTotalRecord, error) {
	if as.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT analysis_id, category_name, category_rank, amount FROM %s ORDER BY analysis_id, category_rank`,
		quoteTableName(categoryTotalsTable, as.backend))
	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query category totals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.CategoryTotalRecord
	for rows.Next() {
		var r schema.CategoryTotalRecord
		if err := rows.Scan(&r.AnalysisID, &r.CategoryName, &r.Rank, &r.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan category total: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category totals: %w", err)
	}
	return results, nil
}

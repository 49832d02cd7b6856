// Package classify persists and investigates executables that the
// project registry does not recognize.
package classify

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fragmede/fundcli/internal/contract"
	"github.com/fragmede/fundcli/schema"
	"github.com/go-sql-driver/mysql"    // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// Table names for classification tracking.
const (
	unknownsTable   = "fundcli_unknowns"
	exceptionsTable = "fundcli_exceptions"
)

// timeLayout is how timestamps are stored across all backends.
const timeLayout = time.RFC3339

// StoreImpl handles durable classification storage using various
// database backends.
type StoreImpl struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
	connStr    string
}

var _ contract.ClassifyStore = &StoreImpl{} // Compile-time check

// NewStore initializes and returns a new ClassifyStore based on the backend type.
func NewStore(backend schema.DatabaseBackend, connStr string) (contract.ClassifyStore, error) {
	var db *sql.DB
	var err error
	var driverName string

	switch backend {
	case schema.SQLiteBackend:
		driverName = "sqlite"
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetClassifyDBFilePath()
		}
		connStr = dbPath
		db, err = sql.Open(driverName, dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		driverName = "mysql"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		driverName = "pgx"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for disabled classification
		return &StoreImpl{
			db:         nil,
			backend:    backend,
			driverName: "",
			connStr:    connStr,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported classify backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}

	// Ping to verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}

	// Create the table schemas
	if err := createClassifyTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create classify tables: %w", err)
	}

	return &StoreImpl{
		db:         db,
		backend:    backend,
		driverName: driverName,
		connStr:    connStr,
	}, nil
}

// createClassifyTables creates the classification tables.
func createClassifyTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{unknownsTable, getCreateUnknownsQuery(backend)},
		{exceptionsTable, getCreateExceptionsQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}

	return nil
}

// getCreateUnknownsQuery returns the CREATE TABLE query for the given backend.
func getCreateUnknownsQuery(backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				executable VARCHAR(255) PRIMARY KEY,
				path TEXT NOT NULL,
				file_type VARCHAR(32) NOT NULL,
				classification VARCHAR(32) NOT NULL,
				copyright_found TEXT NOT NULL,
				help_text TEXT NOT NULL,
				suggested_project VARCHAR(255) NOT NULL,
				user_notes TEXT NOT NULL,
				created_at VARCHAR(64) NOT NULL,
				updated_at VARCHAR(64) NOT NULL
			);
		`, unknownsTable)

	default: // SQLite and PostgreSQL
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				executable TEXT PRIMARY KEY,
				path TEXT NOT NULL,
				file_type TEXT NOT NULL,
				classification TEXT NOT NULL,
				copyright_found TEXT NOT NULL,
				help_text TEXT NOT NULL,
				suggested_project TEXT NOT NULL,
				user_notes TEXT NOT NULL,
				created_at TEXT NOT NULL,
				updated_at TEXT NOT NULL
			);
		`, unknownsTable)
	}
}

// getCreateExceptionsQuery returns the CREATE TABLE query for the given backend.
func getCreateExceptionsQuery(backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				executable VARCHAR(255) PRIMARY KEY,
				reason VARCHAR(255) NOT NULL,
				created_at VARCHAR(64) NOT NULL
			);
		`, exceptionsTable)

	default: // SQLite and PostgreSQL
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				executable TEXT PRIMARY KEY,
				reason TEXT NOT NULL,
				created_at TEXT NOT NULL
			);
		`, exceptionsTable)
	}
}

// Upsert inserts or refreshes the record for one executable. The
// original created_at survives refreshes.
func (s *StoreImpl) Upsert(rec *schema.UnknownRecord) error {
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil
	}

	now := time.Now().UTC().Format(timeLayout)
	_, err := s.db.Exec(s.getUpsertQuery(),
		rec.Executable,
		rec.Path,
		rec.FileType,
		string(rec.Classification),
		rec.CopyrightFound,
		rec.HelpText,
		rec.SuggestedProject,
		rec.UserNotes,
		now,
		now,
	)
	return err
}

// getUpsertQuery returns the UPSERT query for the backend.
func (s *StoreImpl) getUpsertQuery() string {
	switch s.backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (executable, path, file_type, classification, copyright_found, help_text, suggested_project, user_notes, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE path = new.path, file_type = new.file_type, classification = new.classification,
				copyright_found = new.copyright_found, help_text = new.help_text, suggested_project = new.suggested_project,
				user_notes = new.user_notes, updated_at = new.updated_at`, unknownsTable)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (executable, path, file_type, classification, copyright_found, help_text, suggested_project, user_notes, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (executable) DO UPDATE SET path = EXCLUDED.path, file_type = EXCLUDED.file_type, classification = EXCLUDED.classification,
				copyright_found = EXCLUDED.copyright_found, help_text = EXCLUDED.help_text, suggested_project = EXCLUDED.suggested_project,
				user_notes = EXCLUDED.user_notes, updated_at = EXCLUDED.updated_at`, unknownsTable)

	default: // SQLite
		return fmt.Sprintf(`INSERT INTO %s (executable, path, file_type, classification, copyright_found, help_text, suggested_project, user_notes, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (executable) DO UPDATE SET path = excluded.path, file_type = excluded.file_type, classification = excluded.classification,
				copyright_found = excluded.copyright_found, help_text = excluded.help_text, suggested_project = excluded.suggested_project,
				user_notes = excluded.user_notes, updated_at = excluded.updated_at`, unknownsTable)
	}
}

// Get returns the record for an executable, or nil when absent.
func (s *StoreImpl) Get(executable string) (*schema.UnknownRecord, error) {
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT executable, path, file_type, classification, copyright_found, help_text,
		suggested_project, user_notes, created_at, updated_at FROM %s WHERE executable = %s`,
		unknownsTable, s.getPlaceholder())

	rec, err := scanUnknown(s.db.QueryRow(query, executable))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// List returns records ordered by executable name. The empty
// classification matches all records.
func (s *StoreImpl) List(class schema.Classification) ([]schema.UnknownRecord, error) {
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT executable, path, file_type, classification, copyright_found, help_text,
		suggested_project, user_notes, created_at, updated_at FROM %s`, unknownsTable)

	var rows *sql.Rows
	var err error
	if class == "" {
		rows, err = s.db.Query(query + " ORDER BY executable")
	} else {
		rows, err = s.db.Query(query+fmt.Sprintf(" WHERE classification = %s ORDER BY executable", s.getPlaceholder()), string(class))
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []schema.UnknownRecord
	for rows.Next() {
		rec, err := scanUnknown(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// SetClassification records a user judgment for an executable. A
// record is created on the fly when the executable was never
// investigated. Settled judgments also land on the exception list so
// the executable stops surfacing as unknown.
func (s *StoreImpl) SetClassification(executable string, class schema.Classification, notes string) error {
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil
	}

	rec, err := s.Get(executable)
	if err != nil {
		return err
	}
	if rec == nil {
		rec = &schema.UnknownRecord{Executable: executable}
	}
	rec.Classification = class
	if notes != "" {
		rec.UserNotes = notes
	}
	if err := s.Upsert(rec); err != nil {
		return err
	}

	switch class {
	case schema.SystemClass, schema.UserClass, schema.IgnoredClass:
		return s.addException(executable, string(class))
	}
	return nil
}

// addException puts an executable on the exception list.
func (s *StoreImpl) addException(executable, reason string) error {
	now := time.Now().UTC().Format(timeLayout)

	var query string
	switch s.backend {
	case schema.MySQLBackend:
		query = fmt.Sprintf(`INSERT INTO %s (executable, reason, created_at) VALUES (?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE reason = new.reason, created_at = new.created_at`, exceptionsTable)
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`INSERT INTO %s (executable, reason, created_at) VALUES ($1, $2, $3)
			ON CONFLICT (executable) DO UPDATE SET reason = EXCLUDED.reason, created_at = EXCLUDED.created_at`, exceptionsTable)
	default: // SQLite
		query = fmt.Sprintf(`INSERT OR REPLACE INTO %s (executable, reason, created_at) VALUES (?, ?, ?)`, exceptionsTable)
	}

	_, err := s.db.Exec(query, executable, reason, now)
	return err
}

// Exceptions returns the executables on the exception list.
func (s *StoreImpl) Exceptions() ([]string, error) {
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil, nil
	}

	rows, err := s.db.Query(fmt.Sprintf("SELECT executable FROM %s ORDER BY executable", exceptionsTable))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Clear removes every record and the exception list.
func (s *StoreImpl) Clear() error {
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil
	}

	for _, table := range []string{unknownsTable, exceptionsTable} {
		if _, err := s.db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}
	return nil
}

// GetStatus returns status information about the classify store.
func (s *StoreImpl) GetStatus() (schema.ClassifyStatus, error) {
	status := schema.ClassifyStatus{
		Backend:  s.backend,
		Location: s.location(),
	}

	if s.backend == schema.NoneBackend || s.db == nil {
		return status, nil
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", unknownsTable)
	if err := s.db.QueryRow(countQuery).Scan(&status.TotalRecords); err != nil {
		return status, fmt.Errorf("failed to get total records: %w", err)
	}

	unclassifiedQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE classification IN ('', '%s')",
		unknownsTable, schema.UnknownClass)
	if err := s.db.QueryRow(unclassifiedQuery).Scan(&status.Unclassified); err != nil {
		return status, fmt.Errorf("failed to get unclassified records: %w", err)
	}

	return status, nil
}

// location reports where the store lives without leaking credentials.
func (s *StoreImpl) location() string {
	switch s.backend {
	case schema.SQLiteBackend:
		return s.connStr
	case schema.MySQLBackend:
		cfg, err := mysql.ParseDSN(s.connStr)
		if err != nil {
			return ""
		}
		return cfg.Addr + "/" + cfg.DBName
	case schema.PostgreSQLBackend:
		return s.connStr
	default:
		return ""
	}
}

// Close closes the underlying DB connection.
func (s *StoreImpl) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// getPlaceholder returns the parameter placeholder for the backend.
func (s *StoreImpl) getPlaceholder() string {
	switch s.backend {
	case schema.PostgreSQLBackend:
		return "$1"
	default: // SQLite and MySQL
		return "?"
	}
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanUnknown reads one unknowns row into a record.
func scanUnknown(row rowScanner) (*schema.UnknownRecord, error) {
	var rec schema.UnknownRecord
	var class, createdAt, updatedAt string

	if err := row.Scan(
		&rec.Executable,
		&rec.Path,
		&rec.FileType,
		&class,
		&rec.CopyrightFound,
		&rec.HelpText,
		&rec.SuggestedProject,
		&rec.UserNotes,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	rec.Classification = schema.Classification(class)
	rec.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	rec.UpdatedAt, _ = time.Parse(timeLayout, updatedAt)
	return &rec, nil
}

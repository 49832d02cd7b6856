package classify

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/fragmede/fundcli/internal/contract"
	"github.com/fragmede/fundcli/schema"
)

// Global Manager instance for main logic.
var (
	Manager   = &StoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// StoreManager hands out the configured classify store.
type StoreManager struct {
	sync.Mutex
	store contract.ClassifyStore
}

var _ contract.StoreManager = &StoreManager{} // Compile-time check

// GetClassifyStore implements the StoreManager interface.
func (m *StoreManager) GetClassifyStore() contract.ClassifyStore {
	m.Lock()
	defer m.Unlock()
	return m.store
}

// GetDBFilePath returns the path to the SQLite DB file for classification storage.
func GetDBFilePath() string {
	return contract.GetClassifyDBFilePath()
}

// InitStore initializes the global classify store manager.
func InitStore(backend schema.DatabaseBackend, connStr string) error {
	var initErr error

	initOnce.Do(func() {
		// This function body runs exactly once, even with concurrent calls.
		store, err := NewStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize classification store: %w", err)
			return
		}

		Manager.Lock()
		Manager.store = store
		Manager.Unlock()
	})

	return initErr
}

// CloseStore should be called on application shutdown.
func CloseStore() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.store != nil {
			_ = Manager.store.Close()
		}
	})
}

// ClearStore wipes the classification data for the specified backend.
// For SQLite, it deletes the database file. For MySQL/PostgreSQL, it
// drops the tables. For NoneBackend, it does nothing.
func ClearStore(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend:
		return dropSQLTables("mysql", connStr, unknownsTable, exceptionsTable)

	case schema.PostgreSQLBackend:
		return dropSQLTables("pgx", connStr, unknownsTable, exceptionsTable)

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported classify backend for clearing: %s", backend)
	}
}

// dropSQLTables connects to the SQL database and drops the tables if they exist.
func dropSQLTables(driverName, connStr string, tableNames ...string) error {
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	for _, tableName := range tableNames {
		query := fmt.Sprintf("DROP TABLE IF EXISTS %s", tableName)
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", tableName, err)
		}
	}

	return nil
}

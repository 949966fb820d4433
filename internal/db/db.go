package db

import (
	"database/sql"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// DB wraps the SQLite database with semaphore-based exclusive access.
// The whole application shares a single connection; SQLite handles one
// writer at a time anyway, so the mutex keeps the access pattern honest.
type DB struct {
	db     *sql.DB
	mutex  sync.Mutex
	logger *zap.Logger
}

// NewDB creates a new database connection with exclusive access control
func NewDB(dbPath string, logger *zap.Logger) (*DB, error) {
	// Enable WAL mode and foreign keys via connection string
	dsn := dbPath + "?_journal_mode=WAL&_foreign_keys=on"

	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	// Verify connection works
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, err
	}

	// Set connection pool to 1 to ensure single connection
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	return &DB{db: sqlDB, logger: logger}, nil
}

// WithLock executes a function with exclusive database access
func (d *DB) WithLock(fn func() error) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return fn()
}

// WithLockResult executes a function with exclusive database access and returns a result
func WithLockResult[T any](d *DB, fn func() (T, error)) (T, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return fn()
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.db.Close()
}

// tableExists checks if a table exists in the database
func (d *DB) tableExists(tableName string) (bool, error) {
	return WithLockResult(d, func() (bool, error) {
		var count int
		err := d.db.QueryRow(
			"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?",
			tableName,
		).Scan(&count)
		if err != nil {
			return false, err
		}
		return count > 0, nil
	})
}

// Package state persists the listening history in SQLite.
package state

import (
	"database/sql"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName    = "zeedle"
	dbFileName = "zeedle.db"
)

// Manager owns the database connection. Each Manager is one listening
// session.
type Manager struct {
	db      *sql.DB
	session string
	keep    int
}

// Open opens the store in the XDG data directory.
func Open() (*Manager, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, err
	}
	return OpenPath(dbPath)
}

// OpenPath opens the store at path. ":memory:" gives a private in-memory
// store.
func OpenPath(path string) (*Manager, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// The player writes from one goroutine; a single connection also keeps
	// an in-memory database alive.
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Manager{db: db, session: uuid.NewString(), keep: MaxHistoryRows}, nil
}

// Session returns this run's session id.
func (m *Manager) Session() string {
	return m.session
}

func (m *Manager) Close() error {
	return m.db.Close()
}

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}

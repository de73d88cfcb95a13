// Package storage persists address books as whole snapshots in JSONL or SQLite files.
package storage

import (
	"fmt"

	"github.com/matsen/abook/internal/addressbook"
)

// Backend names accepted by Open.
const (
	BackendJSONL  = "jsonl"
	BackendSQLite = "sqlite"
)

// Store loads and saves an entire address book.
//
// Load returns an empty book when the file does not exist. Save replaces the
// whole file contents; there is no partial-write recovery and no locking.
type Store interface {
	Load() (*addressbook.AddressBook, error)
	Save(book *addressbook.AddressBook) error
	Path() string
}

// Open returns the store for backend at path.
func Open(backend, path string) (Store, error) {
	switch backend {
	case BackendJSONL, "":
		return &JSONLStore{path: path}, nil
	case BackendSQLite:
		return &SQLiteStore{path: path}, nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", backend)
	}
}

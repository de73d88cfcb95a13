package storage

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/matsen/abook/internal/addressbook"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		-- One row per contact; position keeps book order
		CREATE TABLE IF NOT EXISTS contacts (
			name TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			birthday TEXT
		);

		-- Phones in insertion order; duplicates allowed
		CREATE TABLE IF NOT EXISTS phones (
			contact_name TEXT NOT NULL REFERENCES contacts(name),
			position INTEGER NOT NULL,
			number TEXT NOT NULL,
			PRIMARY KEY (contact_name, position)
		);
	`

	_, err := db.Exec(schema)
	return err
}

// ReplaceAll clears both tables and writes records in one transaction.
func (d *DB) ReplaceAll(records []addressbook.RecordData) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM phones"); err != nil {
		return fmt.Errorf("clearing phones table: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM contacts"); err != nil {
		return fmt.Errorf("clearing contacts table: %w", err)
	}

	contactStmt, err := tx.Prepare(`INSERT INTO contacts (name, position, birthday) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing contacts insert: %w", err)
	}
	defer contactStmt.Close()

	phoneStmt, err := tx.Prepare(`INSERT INTO phones (contact_name, position, number) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing phones insert: %w", err)
	}
	defer phoneStmt.Close()

	for i, rec := range records {
		if _, err := contactStmt.Exec(rec.Name, i, nullableString(rec.Birthday)); err != nil {
			return fmt.Errorf("inserting contact %s: %w", rec.Name, err)
		}
		for j, number := range rec.Phones {
			if _, err := phoneStmt.Exec(rec.Name, j, number); err != nil {
				return fmt.Errorf("inserting phone for %s: %w", rec.Name, err)
			}
		}
	}

	return tx.Commit()
}

// AllRecords returns every contact with its phones, in book order.
func (d *DB) AllRecords() ([]addressbook.RecordData, error) {
	rows, err := d.db.Query(`SELECT name, birthday FROM contacts ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying contacts: %w", err)
	}
	defer rows.Close()

	var records []addressbook.RecordData
	index := make(map[string]int)
	for rows.Next() {
		var rec addressbook.RecordData
		var birthday sql.NullString
		if err := rows.Scan(&rec.Name, &birthday); err != nil {
			return nil, err
		}
		rec.Birthday = birthday.String
		rec.Phones = []string{}
		index[rec.Name] = len(records)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	phoneRows, err := d.db.Query(`SELECT contact_name, number FROM phones ORDER BY contact_name, position`)
	if err != nil {
		return nil, fmt.Errorf("querying phones: %w", err)
	}
	defer phoneRows.Close()

	for phoneRows.Next() {
		var name, number string
		if err := phoneRows.Scan(&name, &number); err != nil {
			return nil, err
		}
		i, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("phone %s references unknown contact %s", number, name)
		}
		records[i].Phones = append(records[i].Phones, number)
	}

	return records, phoneRows.Err()
}

// CountContacts returns the number of stored contacts.
func (d *DB) CountContacts() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM contacts").Scan(&count)
	return count, err
}

// nullableString converts an empty string to NULL.
func nullableString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// SQLiteStore keeps the book in a SQLite database file.
type SQLiteStore struct {
	path string
}

// NewSQLiteStore returns a SQLite store at path.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Load reads the book. A missing file yields an empty book and is not created.
func (s *SQLiteStore) Load() (*addressbook.AddressBook, error) {
	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			return addressbook.New(), nil
		}
		return nil, fmt.Errorf("checking database: %w", err)
	}

	db, err := OpenDB(s.path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	records, err := db.AllRecords()
	if err != nil {
		return nil, err
	}
	book, err := addressbook.FromSnapshot(records)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", s.path, err)
	}
	return book, nil
}

// Save replaces the stored book with book.
func (s *SQLiteStore) Save(book *addressbook.AddressBook) error {
	db, err := OpenDB(s.path)
	if err != nil {
		return err
	}
	defer db.Close()

	return db.ReplaceAll(book.Snapshot())
}

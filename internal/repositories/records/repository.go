// Package records is the durable key-value store behind the EduTalk stores.
//
// Each record is an opaque byte document addressed by key; the stores own the
// encoding (see internal/codec). The SQLite implementation runs over
// dbx.DBTX, so it works both on *sql.DB and inside dbx.WithTx.
package records

import (
	"context"

	"github.com/dmitrijs2005/edutalk/internal/dbx"
)

// Record keys used by the stores.
const (
	KeyCurrentSession   = "current-session"
	KeyAccountDirectory = "account-directory"
	KeyCommunityFeed    = "community-feed"
)

// Repository is a durable key-value store.
type Repository interface {
	// Get returns the value stored under key, or (nil, nil) when absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set inserts or replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// Factory binds a Repository to a database handle, which may be a
// transaction.
type Factory func(db dbx.DBTX) Repository

// SQLite is the Factory for SQLiteRepository.
func SQLite(db dbx.DBTX) Repository {
	return NewSQLiteRepository(db)
}

// Package source loads the portfolio document from a file, a URL or
// PostgreSQL, and keeps the last good copy in a local SQLite snapshot.
package source

import (
	"context"
	"errors"
)

var (
	// ErrInvalidDocument wraps every validation failure.
	ErrInvalidDocument = errors.New("invalid document")
	// ErrNoSnapshot is returned when the snapshot store is empty.
	ErrNoSnapshot = errors.New("no snapshot stored")
	// ErrNotLoaded is returned by Loader.Current before the first successful load.
	ErrNotLoaded = errors.New("document not loaded")
)

// Source produces a portfolio document.
type Source interface {
	Load(ctx context.Context) (*Document, error)
	Name() string
}

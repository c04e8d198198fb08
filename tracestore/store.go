// Package tracestore persists trace snapshots as immutable named blobs.
//
// Snapshots are small (kilobytes of JSON), so the store contract is
// whole-blob Put/Get rather than ranged reads. Backends: in-memory, local
// filesystem, S3, MinIO; a DynamoDB registry tracks the latest snapshot of a
// run series.
package tracestore

import (
	"context"
	"os"
)

// ErrNotFound is returned when a snapshot does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Store is the snapshot persistence abstraction.
type Store interface {
	// Put writes a snapshot blob, replacing any previous content under name.
	Put(ctx context.Context, name string, data []byte) error
	// Get reads a snapshot blob.
	Get(ctx context.Context, name string) ([]byte, error)
	// Delete removes a snapshot blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error
	// List returns all blob names with the given prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}

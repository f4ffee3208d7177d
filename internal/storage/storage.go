// Package storage stores uploaded payment proof assets.
package storage

import (
	"context"
	"io"
)

// Store persists uploaded assets. Uploads land at a provisional reference
// that stays valid indefinitely; Finalize moves an asset to a
// human-meaningful name after the owning record is committed, and callers
// tolerate its failure.
type Store interface {
	// StoreProvisional writes the asset and returns its provisional
	// reference. contentTypeHint picks the file extension.
	StoreProvisional(ctx context.Context, r io.Reader, contentTypeHint string) (string, error)

	// Finalize renames a provisionally stored asset using nameHint and
	// returns the permanent reference. The provisional reference becomes
	// invalid only on success.
	Finalize(ctx context.Context, ref, nameHint string) (string, error)

	// Open reads a stored asset by reference.
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
}

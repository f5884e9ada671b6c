package storage

import (
	"context"
	"io"
)

// Store persists binary blobs and returns a stable relative reference path.
// Size and content-type policy is the caller's job, not the store's.
type Store interface {
	Save(ctx context.Context, originalName string, body io.Reader) (string, error)
}

package catalog

import "context"

// Store provides read access to published standard versions. Versions are
// immutable once registered; there is deliberately no update operation.
type Store interface {
	FindVersion(ctx context.Context, versionID string) (*StandardVersion, error)
}

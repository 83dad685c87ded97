package interfaces

import (
	"context"

	domaintypes "asyncpfs/internal/domain/types"
)

// DirectoryClient publishes and fetches responder bundles.
type DirectoryClient interface {
	Register(ctx context.Context, bundle domaintypes.ResponderBundle) error
	// FetchBundle returns a bundle carrying at most one one-time key. The
	// directory retires the key it hands out.
	FetchBundle(ctx context.Context, username domaintypes.Username) (domaintypes.PublishedBundle, error)
}

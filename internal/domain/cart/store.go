package cart

import "context"

// Store persists the cart line-item sequence across restarts of one
// profile. Load returns (nil, nil) when no snapshot exists; a decode
// error is returned so the caller can log it and start empty. The open
// flag is never persisted.
type Store interface {
	Load(ctx context.Context) ([]LineItem, error)
	Save(ctx context.Context, items []LineItem) error
}

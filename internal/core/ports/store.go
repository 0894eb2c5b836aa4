package ports

import "context"

// KeyValueStore is the durable medium every collection is persisted into.
// Values are opaque bytes; an absent key is reported with found=false, not
// an error.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

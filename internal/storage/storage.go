package storage

import "context"

// Collection keys. One serialized JSON array (or object, for settings) lives
// under each key.
const (
	KeyBookings  = "backoffice:bookings"
	KeyUsers     = "backoffice:users"
	KeyInventory = "backoffice:ticket_inventory"
	KeySettings  = "backoffice:app_settings"
)

// Storage persists one serialized collection per key. Load returns nil with
// no error for an absent key; an error means the backend itself failed, the
// only fatal condition in this design.
type Storage interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

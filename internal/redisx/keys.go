package redisx

import "time"

const (
	// Cache detail buku: book:{book_id} -> JSON buku
	KeyBookCache = "book:%s"

	// Cache riwayat order per user: order_history:{user_id} -> JSON array
	KeyOrderHistory = "order_history:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLBookCache    = 5 * time.Minute
	TTLOrderHistory = 1 * time.Minute
	TTLDedup        = 48 * time.Hour
)

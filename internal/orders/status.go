package orders

type Status string

// Engine ini hanya pernah menghasilkan completed; pending/cancelled ada di
// enum skema untuk alur pembayaran/pembatalan di luar scope core ini.
const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

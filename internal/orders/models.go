package orders

import "time"

// ItemInput adalah item keranjang mentah dari request.
type ItemInput struct {
	BookID   string `json:"book_id"`
	Quantity int    `json:"quantity"`
}

// OrderItem immutable setelah order dibuat; PriceAtPurchase dibekukan
// pada saat reservasi sukses dan tidak pernah dihitung ulang.
type OrderItem struct {
	BookID          string `json:"book_id"`
	Quantity        int    `json:"quantity"`
	PriceAtPurchase int    `json:"price_at_purchase"`

	// metadata display, diisi Query dari katalog (bisa kosong di hasil engine)
	Title string `json:"title,omitempty"`
	Genre string `json:"genre,omitempty"`
}

// Order adalah entri ledger append-only; tidak pernah dimutasi setelah dibuat.
type Order struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	Items       []OrderItem `json:"items"`
	TotalAmount int         `json:"total_amount"`
	Status      Status      `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
}

package orders

import "context"

// History adalah sumber baca riwayat order (dipenuhi *Repo).
type History interface {
	ListByUser(ctx context.Context, userID string) ([]Order, error)
}

// Query: layanan read-only di atas output engine; tidak pernah memutasi
// apa pun.
type Query struct {
	Source History
}

// ListOrders: order milik caller, terbaru dulu. Tidak punya order bukan
// error -- hasilnya slice kosong.
func (q *Query) ListOrders(ctx context.Context, userID string) ([]Order, error) {
	out, err := q.Source.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []Order{}
	}
	return out, nil
}

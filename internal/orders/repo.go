package orders

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

// CreateOrder: orders + order_items dalam satu tx. Kolom position
// menjaga urutan item sesuai input.
func (r *Repo) CreateOrder(ctx context.Context, o *Order) error {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO orders(id, user_id, total_amount, status, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`, o.ID, o.UserID, o.TotalAmount, o.Status, o.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i, it := range o.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items(order_id, book_id, quantity, price_at_purchase, position)
			VALUES ($1,$2,$3,$4,$5)`,
			o.ID, it.BookID, it.Quantity, it.PriceAtPurchase, i,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// ListByUser: riwayat order milik satu user, terbaru dulu, item sudah
// membawa title+genre dari katalog (padanan populate di versi aslinya).
func (r *Repo) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT o.id, o.user_id, o.total_amount, o.status, o.created_at,
		       oi.book_id, oi.quantity, oi.price_at_purchase,
		       COALESCE(b.title, ''), COALESCE(b.genre, '')
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		LEFT JOIN books b ON b.id = oi.book_id
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC, o.id, oi.position`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		var (
			o  Order
			it OrderItem
		)
		if err := rows.Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.Status, &o.CreatedAt,
			&it.BookID, &it.Quantity, &it.PriceAtPurchase, &it.Title, &it.Genre); err != nil {
			return nil, err
		}
		if n := len(out); n > 0 && out[n-1].ID == o.ID {
			out[n-1].Items = append(out[n-1].Items, it)
			continue
		}
		o.Items = []OrderItem{it}
		out = append(out, o)
	}
	return out, rows.Err()
}

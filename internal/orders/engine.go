package orders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Ishangupta-cyber/BookStoreManagement/internal/books"
	"github.com/Ishangupta-cyber/BookStoreManagement/internal/users"
)

// Catalog adalah kolaborator katalog + stok. Reserve wajib atomik
// (cek-dan-kurangi satu langkah); Release cuma dipakai jalur rollback.
type Catalog interface {
	Lookup(ctx context.Context, bookID string) (books.Info, error)
	Reserve(ctx context.Context, bookID string, qty int) error
	Release(ctx context.Context, bookID string, qty int) error
}

// Store menulis order jadi; append-only.
type Store interface {
	CreateOrder(ctx context.Context, o *Order) error
}

// Engine mengubah keranjang jadi satu Order committed, atau gagal total
// tanpa efek samping: setiap reservasi dalam panggilan yang gagal
// dikembalikan sebelum error dipulangkan.
type Engine struct {
	Catalog Catalog
	Store   Store
}

type reserved struct {
	bookID string
	qty    int
}

// PlaceOrder memproses item sesuai urutan input. Urutan state:
// Validating -> Reserving(i) -> Committed | RollingBack -> Failed.
// Tidak ada state "in-progress" yang kelihatan dari luar panggilan ini.
func (e *Engine) PlaceOrder(ctx context.Context, userID string, role users.Role, items []ItemInput) (*Order, error) {
	// validasi dulu, belum ada efek samping sama sekali
	if role != users.RoleCustomer {
		return nil, ErrForbidden
	}
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}
	for i, it := range items {
		if it.BookID == "" || it.Quantity < 1 {
			return nil, fmt.Errorf("%w (item %d)", ErrInvalidItem, i)
		}
	}

	var (
		held  []reserved
		final = make([]OrderItem, 0, len(items))
		total = 0
	)

	for _, it := range items {
		info, err := e.Catalog.Lookup(ctx, it.BookID)
		if err != nil {
			e.rollback(ctx, held)
			if errors.Is(err, books.ErrNotFound) {
				return nil, &BookNotFoundError{BookID: it.BookID}
			}
			return nil, err
		}

		if err := e.Catalog.Reserve(ctx, it.BookID, it.Quantity); err != nil {
			e.rollback(ctx, held)
			if errors.Is(err, books.ErrNotFound) {
				return nil, &BookNotFoundError{BookID: it.BookID}
			}
			return nil, err
		}
		held = append(held, reserved{bookID: it.BookID, qty: it.Quantity})

		// price freeze: harga saat reservasi sukses, bukan dibaca ulang nanti
		final = append(final, OrderItem{
			BookID:          it.BookID,
			Quantity:        it.Quantity,
			PriceAtPurchase: info.Price,
		})
		total += info.Price * it.Quantity
	}

	order := &Order{
		ID:          uuid.NewString(),
		UserID:      userID,
		Items:       final,
		TotalAmount: total,
		Status:      StatusCompleted,
		CreatedAt:   time.Now().UTC(),
	}

	if err := e.Store.CreateOrder(ctx, order); err != nil {
		// reservasi dan record order tidak boleh diverge
		e.rollback(ctx, held)
		return nil, &PersistenceError{Err: err}
	}
	return order, nil
}

// rollback mengembalikan reservasi urut mundur. Pakai WithoutCancel:
// client disconnect atau timeout tidak boleh melewatkan kompensasi,
// kalau tidak invariant stok bocor permanen.
func (e *Engine) rollback(ctx context.Context, held []reserved) {
	rctx := context.WithoutCancel(ctx)
	for i := len(held) - 1; i >= 0; i-- {
		h := held[i]
		if err := e.Catalog.Release(rctx, h.bookID, h.qty); err != nil {
			log.Printf("CRITICAL release failed: book=%s qty=%d: %v", h.bookID, h.qty, err)
		}
	}
}

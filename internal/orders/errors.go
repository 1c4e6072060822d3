package orders

import (
	"errors"
	"fmt"
)

var (
	// ErrForbidden: hanya akun customer yang boleh place order.
	ErrForbidden = errors.New("only customer accounts can place an order")

	// ErrEmptyOrder: order minimal satu item.
	ErrEmptyOrder = errors.New("order must contain at least one item")

	// ErrInvalidItem: bentuk item salah (book id kosong / qty < 1).
	ErrInvalidItem = errors.New("invalid item or quantity")
)

// BookNotFoundError dikembalikan setelah semua reservasi sebelumnya
// dalam panggilan yang sama sudah di-release.
type BookNotFoundError struct {
	BookID string
}

func (e *BookNotFoundError) Error() string {
	return fmt.Sprintf("book %s not found", e.BookID)
}

// PersistenceError: tulis order gagal setelah reservasi sukses; stok sudah
// dikembalikan, caller boleh retry.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("order could not be persisted (stock released, retry is safe): %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

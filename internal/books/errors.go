package books

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("book not found")
	ErrTitleTaken = errors.New("a book with this title already exists")
)

// InsufficientStockError dikembalikan reserve saat stok kurang;
// Available = stok pada saat pengecekan gagal.
type InsufficientStockError struct {
	BookID    string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for book %s: requested %d, available %d",
		e.BookID, e.Requested, e.Available)
}

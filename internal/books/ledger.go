package books

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Ledger memegang kontrak mutasi stok: cek-dan-kurangi harus atomik
// terhadap semua reserve lain pada buku yang sama. Satu-satunya jalur
// yang boleh mengubah kolom stock.
type Ledger struct{ DB *pgxpool.Pool }

// Reserve: decrement bersyarat dalam satu statement. Pola baca-dulu
// lalu tulis dilarang di sini -- dua caller bisa sama-sama lolos cek
// dan stok jadi minus (oversell).
func (l *Ledger) Reserve(ctx context.Context, bookID string, qty int) error {
	if qty < 1 {
		return fmt.Errorf("reserve qty must be >= 1, got %d", qty)
	}

	ct, err := l.DB.Exec(ctx,
		`UPDATE books SET stock = stock - $2, updated_at = now()
		 WHERE id = $1 AND stock >= $2`, bookID, qty)
	if err != nil {
		return fmt.Errorf("reserve %s: %w", bookID, err)
	}
	if ct.RowsAffected() == 1 {
		return nil
	}

	// Gagal: bedakan buku hilang vs stok kurang.
	var available int
	err = l.DB.QueryRow(ctx, `SELECT stock FROM books WHERE id = $1`, bookID).Scan(&available)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("reserve %s: %w", bookID, err)
	}
	return &InsufficientStockError{BookID: bookID, Requested: qty, Available: available}
}

// Release: kompensasi rollback dari engine order. Hanya gagal kalau
// bukunya sudah tidak ada.
func (l *Ledger) Release(ctx context.Context, bookID string, qty int) error {
	ct, err := l.DB.Exec(ctx,
		`UPDATE books SET stock = stock + $2, updated_at = now()
		 WHERE id = $1`, bookID, qty)
	if err != nil {
		return fmt.Errorf("release %s: %w", bookID, err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Lookup mengambil snapshot harga/judul/stok untuk price freeze.
// Nilai stok hanya indikatif; kebenaran ada di Reserve.
func (l *Ledger) Lookup(ctx context.Context, bookID string) (Info, error) {
	var info Info
	err := l.DB.QueryRow(ctx,
		`SELECT title, genre, price, stock FROM books WHERE id = $1`, bookID).
		Scan(&info.Title, &info.Genre, &info.Price, &info.Stock)
	if errors.Is(err, pgx.ErrNoRows) {
		return Info{}, ErrNotFound
	}
	if err != nil {
		return Info{}, fmt.Errorf("lookup %s: %w", bookID, err)
	}
	return info, nil
}

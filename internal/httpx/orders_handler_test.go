package httpx

import (
	"errors"
	"net/http"
	"testing"

	"github.com/Ishangupta-cyber/BookStoreManagement/internal/books"
	"github.com/Ishangupta-cyber/BookStoreManagement/internal/orders"
	"github.com/Ishangupta-cyber/BookStoreManagement/internal/users"
)

func TestPlaceOrderReq_Normalized(t *testing.T) {
	// shortcut satu buku dilipat jadi list satu elemen
	got := PlaceOrderReq{BookID: "b1", Quantity: 2}.normalized()
	if len(got) != 1 || got[0].BookID != "b1" || got[0].Quantity != 2 {
		t.Errorf("shortcut not folded: %+v", got)
	}

	// shortcut menang atas items kalau dua-duanya terisi, seperti versi aslinya
	got = PlaceOrderReq{
		BookID:   "b1",
		Quantity: 1,
		Items:    []orders.ItemInput{{BookID: "b2", Quantity: 3}},
	}.normalized()
	if len(got) != 1 || got[0].BookID != "b1" {
		t.Errorf("shortcut should take precedence: %+v", got)
	}

	// tanpa shortcut, items lewat apa adanya
	items := []orders.ItemInput{{BookID: "b2", Quantity: 3}, {BookID: "b3", Quantity: 1}}
	got = PlaceOrderReq{Items: items}.normalized()
	if len(got) != 2 || got[0].BookID != "b2" {
		t.Errorf("items passthrough broken: %+v", got)
	}

	if got := (PlaceOrderReq{}).normalized(); len(got) != 0 {
		t.Errorf("empty request should normalize to empty items, got %+v", got)
	}
}

func TestErrStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{orders.ErrForbidden, http.StatusForbidden},
		{orders.ErrEmptyOrder, http.StatusBadRequest},
		{orders.ErrInvalidItem, http.StatusBadRequest},
		{&orders.BookNotFoundError{BookID: "b"}, http.StatusNotFound},
		{books.ErrNotFound, http.StatusNotFound},
		{users.ErrNotFound, http.StatusNotFound},
		{&books.InsufficientStockError{BookID: "b", Requested: 2, Available: 1}, http.StatusConflict},
		{books.ErrTitleTaken, http.StatusConflict},
		{users.ErrEmailTaken, http.StatusConflict},
		{users.ErrBadCredentials, http.StatusUnauthorized},
		{users.ErrInvalidInput, http.StatusBadRequest},
		{&orders.PersistenceError{Err: errors.New("db down")}, http.StatusServiceUnavailable},
		{errors.New("anything else"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := errStatus(c.err); got != c.want {
			t.Errorf("errStatus(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

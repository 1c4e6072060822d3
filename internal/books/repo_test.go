package books

import (
	"strings"
	"testing"
)

func TestCeilPrice(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{-3, 0},
		{10, 10},
		{9.01, 10},
		{9.99, 10},
		{100.5, 101},
	}
	for _, c := range cases {
		if got := CeilPrice(c.in); got != c.want {
			t.Errorf("CeilPrice(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestListFilter_Where(t *testing.T) {
	min, max := 10, 50

	where, args := ListFilter{}.where()
	if where != "" || args != nil {
		t.Errorf("empty filter should build no WHERE, got %q %v", where, args)
	}

	where, args = ListFilter{Genre: GenreFantasy, MinPrice: &min, MaxPrice: &max}.where()
	if !strings.Contains(where, "genre = $1") ||
		!strings.Contains(where, "price >= $2") ||
		!strings.Contains(where, "price <= $3") {
		t.Errorf("unexpected where clause: %q", where)
	}
	if len(args) != 3 || args[0] != GenreFantasy || args[1] != min || args[2] != max {
		t.Errorf("unexpected args: %v", args)
	}

	where, args = ListFilter{MaxPrice: &max}.where()
	if !strings.Contains(where, "price <= $1") || len(args) != 1 {
		t.Errorf("placeholder numbering must follow args, got %q %v", where, args)
	}
}

func TestListFilter_OrderBy(t *testing.T) {
	cases := []struct {
		f    ListFilter
		want string
	}{
		{ListFilter{}, " ORDER BY created_at DESC"},
		{ListFilter{SortBy: "price", Order: "asc"}, " ORDER BY price ASC"},
		{ListFilter{SortBy: "rating"}, " ORDER BY rating DESC"},
		// kolom di luar whitelist jatuh ke default, bukan ke SQL mentah
		{ListFilter{SortBy: "password; DROP TABLE books"}, " ORDER BY created_at DESC"},
	}
	for _, c := range cases {
		if got := c.f.orderBy(); got != c.want {
			t.Errorf("orderBy(%+v) = %q, want %q", c.f, got, c.want)
		}
	}
}

func TestListFilter_Limits(t *testing.T) {
	page, limit, offset := ListFilter{}.limits()
	if page != 1 || limit != 10 || offset != 0 {
		t.Errorf("defaults: got page=%d limit=%d offset=%d", page, limit, offset)
	}

	page, limit, offset = ListFilter{Page: 3, Limit: 20}.limits()
	if page != 3 || limit != 20 || offset != 40 {
		t.Errorf("got page=%d limit=%d offset=%d", page, limit, offset)
	}
}

func TestValidGenre(t *testing.T) {
	if !ValidGenre(GenreSciFi) {
		t.Error("Sci-Fi should be valid")
	}
	if ValidGenre("Cooking") {
		t.Error("unknown genre should be invalid")
	}
}

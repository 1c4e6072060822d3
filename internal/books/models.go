package books

import (
	"math"
	"time"
)

type Genre string

const (
	GenreFiction    Genre = "Fiction"
	GenreNonFiction Genre = "Non-fiction"
	GenreSciFi      Genre = "Sci-Fi"
	GenreFantasy    Genre = "Fantasy"
	GenreRomance    Genre = "Romance"
	GenreThriller   Genre = "Thriller"
	GenreOther      Genre = "Other"
)

var validGenres = map[Genre]bool{
	GenreFiction: true, GenreNonFiction: true, GenreSciFi: true,
	GenreFantasy: true, GenreRomance: true, GenreThriller: true,
	GenreOther: true,
}

func ValidGenre(g Genre) bool { return validGenres[g] }

type Book struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Genre         Genre     `json:"genre"`
	Price         int       `json:"price"`
	PublishedYear int       `json:"published_year,omitempty"`
	Rating        float64   `json:"rating"`
	IsArchived    bool      `json:"is_archived"`
	CreatedBy     string    `json:"created_by"`
	Stock         int       `json:"stock"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Info adalah snapshot ringan untuk kebutuhan order (price freeze).
type Info struct {
	Title string
	Genre Genre
	Price int
	Stock int
}

// CeilPrice: harga disimpan sebagai integer, dibulatkan ke atas saat tulis.
func CeilPrice(p float64) int {
	if p <= 0 {
		return 0
	}
	return int(math.Ceil(p))
}

package books

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

type CreateInput struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Genre         Genre   `json:"genre"`
	Price         float64 `json:"price"`
	PublishedYear int     `json:"published_year"`
	Rating        float64 `json:"rating"`
	IsArchived    bool    `json:"is_archived"`
	Stock         int     `json:"stock"`
}

func (r *Repo) Create(ctx context.Context, createdBy string, in CreateInput) (*Book, error) {
	title := strings.TrimSpace(in.Title)

	// cek duplikasi judul dulu (judul unik, seperti skema aslinya)
	var existing string
	err := r.DB.QueryRow(ctx, `SELECT id FROM books WHERE title = $1`, title).Scan(&existing)
	if err == nil {
		return nil, ErrTitleTaken
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	genre := in.Genre
	if genre == "" {
		genre = GenreOther
	}

	b := &Book{
		ID:            uuid.NewString(),
		Title:         title,
		Description:   strings.TrimSpace(in.Description),
		Genre:         genre,
		Price:         CeilPrice(in.Price),
		PublishedYear: in.PublishedYear,
		Rating:        in.Rating,
		IsArchived:    in.IsArchived,
		CreatedBy:     createdBy,
		Stock:         in.Stock,
	}

	err = r.DB.QueryRow(ctx, `
		INSERT INTO books(id, title, description, genre, price, published_year, rating, is_archived, created_by, stock)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING created_at, updated_at
	`, b.ID, b.Title, b.Description, b.Genre, b.Price, b.PublishedYear, b.Rating, b.IsArchived, b.CreatedBy, b.Stock).
		Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *Repo) GetByID(ctx context.Context, id string) (*Book, error) {
	var b Book
	err := r.DB.QueryRow(ctx, `
		SELECT id, title, description, genre, price, published_year, rating, is_archived, created_by, stock, created_at, updated_at
		FROM books WHERE id = $1`, id).
		Scan(&b.ID, &b.Title, &b.Description, &b.Genre, &b.Price, &b.PublishedYear,
			&b.Rating, &b.IsArchived, &b.CreatedBy, &b.Stock, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ListFilter: filter + sort + pagination ala query param aslinya.
type ListFilter struct {
	Genre    Genre
	MinPrice *int
	MaxPrice *int
	SortBy   string // price | rating | createdAt
	Order    string // asc | desc
	Page     int
	Limit    int
}

// where membangun klausa WHERE plus argumennya; dipisah supaya bisa diuji
// tanpa database.
func (f ListFilter) where() (string, []any) {
	var conds []string
	var args []any
	if f.Genre != "" {
		args = append(args, f.Genre)
		conds = append(conds, fmt.Sprintf("genre = $%d", len(args)))
	}
	if f.MinPrice != nil {
		args = append(args, *f.MinPrice)
		conds = append(conds, fmt.Sprintf("price >= $%d", len(args)))
	}
	if f.MaxPrice != nil {
		args = append(args, *f.MaxPrice)
		conds = append(conds, fmt.Sprintf("price <= $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// orderBy: whitelist kolom sort, default createdAt desc (terbaru dulu).
func (f ListFilter) orderBy() string {
	col := "created_at"
	switch f.SortBy {
	case "price":
		col = "price"
	case "rating":
		col = "rating"
	}
	dir := "DESC"
	if f.Order == "asc" {
		dir = "ASC"
	}
	return " ORDER BY " + col + " " + dir
}

func (f ListFilter) limits() (page, limit, offset int) {
	page = f.Page
	if page < 1 {
		page = 1
	}
	limit = f.Limit
	if limit < 1 {
		limit = 10
	}
	return page, limit, (page - 1) * limit
}

func (r *Repo) List(ctx context.Context, f ListFilter) (books []Book, total int, err error) {
	where, args := f.where()

	if err = r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM books`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	_, limit, offset := f.limits()
	q := `SELECT id, title, description, genre, price, published_year, rating, is_archived, created_by, stock, created_at, updated_at
	      FROM books` + where + f.orderBy() +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	rows, err := r.DB.Query(ctx, q, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Description, &b.Genre, &b.Price, &b.PublishedYear,
			&b.Rating, &b.IsArchived, &b.CreatedBy, &b.Stock, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, 0, err
		}
		books = append(books, b)
	}
	return books, total, rows.Err()
}

// UpdateInput: field nil berarti tidak diubah. CreatedBy dan Stock sengaja
// tidak ada di sini; stok hanya lewat Ledger.
type UpdateInput struct {
	Title         *string  `json:"title"`
	Description   *string  `json:"description"`
	Genre         *Genre   `json:"genre"`
	Price         *float64 `json:"price"`
	PublishedYear *int     `json:"published_year"`
	Rating        *float64 `json:"rating"`
	IsArchived    *bool    `json:"is_archived"`
}

func (r *Repo) Update(ctx context.Context, id string, in UpdateInput) (*Book, error) {
	var sets []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if in.Title != nil {
		add("title", strings.TrimSpace(*in.Title))
	}
	if in.Description != nil {
		add("description", strings.TrimSpace(*in.Description))
	}
	if in.Genre != nil {
		add("genre", *in.Genre)
	}
	if in.Price != nil {
		add("price", CeilPrice(*in.Price))
	}
	if in.PublishedYear != nil {
		add("published_year", *in.PublishedYear)
	}
	if in.Rating != nil {
		add("rating", *in.Rating)
	}
	if in.IsArchived != nil {
		add("is_archived", *in.IsArchived)
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}
	sets = append(sets, "updated_at = now()")

	args = append(args, id)
	ct, err := r.DB.Exec(ctx,
		fmt.Sprintf("UPDATE books SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args)),
		args...)
	if err != nil {
		return nil, err
	}
	if ct.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

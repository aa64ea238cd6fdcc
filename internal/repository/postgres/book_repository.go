package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bookswipe/bookswipe-server/internal/domain"
	"github.com/bookswipe/bookswipe-server/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type bookRepository struct {
	db *sqlx.DB
}

func NewBookRepository(db *sqlx.DB) repository.BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) List(ctx context.Context, limit int) ([]domain.Book, error) {
	var books []domain.Book
	query := `SELECT * FROM books ORDER BY id LIMIT $1`
	err := r.db.SelectContext(ctx, &books, query, limit)
	return books, err
}

func (r *bookRepository) GetByID(ctx context.Context, id int64) (*domain.Book, error) {
	var book domain.Book
	query := `SELECT * FROM books WHERE id = $1`
	err := r.db.GetContext(ctx, &book, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBookNotFound
		}
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) GetByISBNs(ctx context.Context, isbns []string) ([]domain.Book, error) {
	if len(isbns) == 0 {
		return nil, nil
	}
	var books []domain.Book
	query := `SELECT * FROM books WHERE isbn = ANY($1)`
	err := r.db.SelectContext(ctx, &books, query, pq.Array(isbns))
	return books, err
}

func (r *bookRepository) Create(ctx context.Context, book *domain.Book) error {
	query := `
		INSERT INTO books (
			isbn, title, author, publisher, publication_year,
			image_url_small, image_url_medium, image_url_large,
			summary, author_bio
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		book.ISBN, book.Title, book.Author, book.Publisher, book.Year,
		book.ImageURLSmall, book.ImageURLMed, book.ImageURLLarge,
		book.Summary, book.AuthorBio,
	).Scan(&book.ID, &book.CreatedAt)
}

package repository

import (
	"context"

	"github.com/bookswipe/bookswipe-server/internal/domain"
)

type BookRepository interface {
	List(ctx context.Context, limit int) ([]domain.Book, error)
	GetByID(ctx context.Context, id int64) (*domain.Book, error)
	GetByISBNs(ctx context.Context, isbns []string) ([]domain.Book, error)
	Create(ctx context.Context, book *domain.Book) error
}

package catalog

import (
	"context"
	"fmt"

	"github.com/bookswipe/bookswipe-server/internal/pkg/logger"
	"github.com/bookswipe/bookswipe-server/internal/repository"
)

// Sync inserts curated books missing from the store, keyed by ISBN.
// Existing rows are left untouched; book ids must stay stable once
// decisions reference them. Returns how many books were inserted.
func Sync(ctx context.Context, books repository.BookRepository, log *logger.Logger) (int, error) {
	curated := CuratedBooks()
	isbns := make([]string, 0, len(curated))
	for _, b := range curated {
		isbns = append(isbns, b.ISBN)
	}

	existing, err := books.GetByISBNs(ctx, isbns)
	if err != nil {
		return 0, fmt.Errorf("failed to query existing books: %w", err)
	}
	have := make(map[string]struct{}, len(existing))
	for _, b := range existing {
		have[b.ISBN] = struct{}{}
	}

	inserted := 0
	for i := range curated {
		if _, ok := have[curated[i].ISBN]; ok {
			continue
		}
		if err := books.Create(ctx, &curated[i]); err != nil {
			// Keep going; a partial catalog still makes a deck.
			log.Warn("failed to insert curated book", "isbn", curated[i].ISBN, "error", err)
			continue
		}
		inserted++
	}
	return inserted, nil
}

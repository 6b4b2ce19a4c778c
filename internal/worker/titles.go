package worker

import (
	"context"
	"fmt"

	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store"
)

// titleItems enumerates the non-reserved titles in ascending order.
func titleItems(ctx context.Context, s store.Store, description string) ([]Item, error) {
	titles, err := s.Corpus().ListTitles(ctx, store.NewTitleQueryFilter().WithoutReserved())
	if err != nil {
		return nil, err
	}
	items := make([]Item, 0, len(titles))
	for _, t := range titles {
		items = append(items, Item{
			TitleNumber: t.Number,
			TitleName:   t.Name,
			Description: fmt.Sprintf("%s for Title %d", description, t.Number),
		})
	}
	return items, nil
}

func titleCursor(item Item) Cursor {
	return TitleCursor{LastTitleNumber: item.TitleNumber}
}

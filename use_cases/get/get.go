package get

import (
	"context"

	"github.com/giovaniif/items/domain/item"
	"github.com/google/uuid"
)

type Get struct {
	itemRepository item.Repository
}

func NewGet(itemRepository item.Repository) *Get {
	return &Get{
		itemRepository: itemRepository,
	}
}

func (g *Get) Get(ctx context.Context, itemId uuid.UUID) (item.Item, error) {
	return g.itemRepository.GetItem(ctx, itemId)
}

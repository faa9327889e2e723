package list

import (
	"context"

	"github.com/giovaniif/items/domain/item"
)

const (
	DefaultSkip  = 0
	DefaultLimit = 10
)

type List struct {
	itemRepository item.Repository
}

func NewList(itemRepository item.Repository) *List {
	return &List{
		itemRepository: itemRepository,
	}
}

func (l *List) List(ctx context.Context, input Input) ([]item.Item, error) {
	if input.Skip < 0 || input.Limit <= 0 {
		return []item.Item{}, nil
	}
	return l.itemRepository.List(ctx, input.Skip, input.Limit)
}

type Input struct {
	Skip  int
	Limit int
}

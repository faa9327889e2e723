package repositories

import (
	"context"
	"slices"
	"sync"

	"github.com/giovaniif/items/domain/item"
	"github.com/google/uuid"
)

// ItemRepositoryMemory keeps items in process memory for the lifetime of the server.
// order tracks insertion so List pages are stable.
type ItemRepositoryMemory struct {
	mutex sync.RWMutex
	items map[uuid.UUID]item.Item
	order []uuid.UUID
}

func NewItemRepositoryMemory() *ItemRepositoryMemory {
	return &ItemRepositoryMemory{
		items: make(map[uuid.UUID]item.Item),
	}
}

func (r *ItemRepositoryMemory) Insert(ctx context.Context, it item.Item) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if _, exists := r.items[it.Id]; exists {
		return item.ErrDuplicateId
	}
	r.items[it.Id] = it
	r.order = append(r.order, it.Id)
	return nil
}

func (r *ItemRepositoryMemory) GetItem(ctx context.Context, itemId uuid.UUID) (item.Item, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	it, ok := r.items[itemId]
	if !ok {
		return item.Item{}, item.NotFound(itemId)
	}
	return it, nil
}

func (r *ItemRepositoryMemory) List(ctx context.Context, skip int, limit int) ([]item.Item, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	result := make([]item.Item, 0)
	if skip < 0 || limit <= 0 || skip >= len(r.order) {
		return result, nil
	}
	end := len(r.order)
	if limit < end-skip {
		end = skip + limit
	}
	for _, id := range r.order[skip:end] {
		result = append(result, r.items[id])
	}
	return result, nil
}

func (r *ItemRepositoryMemory) Replace(ctx context.Context, itemId uuid.UUID, draft item.Draft) (item.Item, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	it, ok := r.items[itemId]
	if !ok {
		return item.Item{}, item.NotFound(itemId)
	}
	it.Apply(draft)
	r.items[itemId] = it
	return it, nil
}

func (r *ItemRepositoryMemory) Delete(ctx context.Context, itemId uuid.UUID) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if _, ok := r.items[itemId]; !ok {
		return item.NotFound(itemId)
	}
	delete(r.items, itemId)
	if idx := slices.Index(r.order, itemId); idx >= 0 {
		r.order = slices.Delete(r.order, idx, idx+1)
	}
	return nil
}

func (r *ItemRepositoryMemory) Count(ctx context.Context) (int, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.items), nil
}

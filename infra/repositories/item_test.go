package repositories

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/giovaniif/items/domain/item"
	"github.com/google/uuid"
)

func seed(t *testing.T, repo *ItemRepositoryMemory, n int) []item.Item {
	t.Helper()
	created := make([]item.Item, 0, n)
	for i := 0; i < n; i++ {
		draft, err := item.NewDraft(fmt.Sprintf("item %d", i), i%2 == 0)
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		it := item.New(uuid.New(), draft)
		if err := repo.Insert(context.Background(), it); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		created = append(created, it)
	}
	return created
}

func TestInsertAndGetItem(t *testing.T) {
	repo := NewItemRepositoryMemory()
	created := seed(t, repo, 1)[0]

	got, err := repo.GetItem(context.Background(), created.Id)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got != created {
		t.Fatalf("expected %+v, got %+v", created, got)
	}
}

func TestInsertDuplicateId(t *testing.T) {
	repo := NewItemRepositoryMemory()
	created := seed(t, repo, 1)[0]

	err := repo.Insert(context.Background(), created)
	if !errors.Is(err, item.ErrDuplicateId) {
		t.Fatalf("expected ErrDuplicateId, got %v", err)
	}
	count, _ := repo.Count(context.Background())
	if count != 1 {
		t.Fatalf("expected count 1, got %d", count)
	}
}

func TestGetItemNotFound(t *testing.T) {
	repo := NewItemRepositoryMemory()

	_, err := repo.GetItem(context.Background(), uuid.New())
	if !errors.Is(err, item.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListPaginatesInInsertionOrder(t *testing.T) {
	repo := NewItemRepositoryMemory()
	created := seed(t, repo, 15)

	first, _ := repo.List(context.Background(), 0, 10)
	if len(first) != 10 {
		t.Fatalf("expected 10 items, got %d", len(first))
	}
	for i, it := range first {
		if it.Id != created[i].Id {
			t.Fatalf("expected item %d to be %s, got %s", i, created[i].Id, it.Id)
		}
	}

	rest, _ := repo.List(context.Background(), 10, 10)
	if len(rest) != 5 {
		t.Fatalf("expected 5 items, got %d", len(rest))
	}
	for i, it := range rest {
		if it.Id != created[10+i].Id {
			t.Fatalf("expected item %d to be %s, got %s", 10+i, created[10+i].Id, it.Id)
		}
	}
}

func TestListEdges(t *testing.T) {
	repo := NewItemRepositoryMemory()
	seed(t, repo, 3)

	testCases := []struct {
		name     string
		skip     int
		limit    int
		expected int
	}{
		{"skip past end", 5, 10, 0},
		{"skip equals count", 3, 10, 0},
		{"zero limit", 0, 0, 0},
		{"limit larger than count", 1, 100, 2},
		{"max int limit after skip", 1, math.MaxInt, 2},
		{"max int limit", 0, math.MaxInt, 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			items, err := repo.List(context.Background(), tc.skip, tc.limit)
			if err != nil {
				t.Fatalf("expected nil error, got %v", err)
			}
			if items == nil {
				t.Fatalf("expected empty slice, got nil")
			}
			if len(items) != tc.expected {
				t.Fatalf("expected %d items, got %d", tc.expected, len(items))
			}
		})
	}
}

func TestReplaceKeepsIdAndPosition(t *testing.T) {
	repo := NewItemRepositoryMemory()
	created := seed(t, repo, 3)
	draft, _ := item.NewDraft("changed", true)

	updated, err := repo.Replace(context.Background(), created[1].Id, draft)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if updated.Id != created[1].Id || updated.Text != "changed" || !updated.IsDone {
		t.Fatalf("unexpected updated item: %+v", updated)
	}

	items, _ := repo.List(context.Background(), 0, 10)
	if items[1] != updated {
		t.Fatalf("expected updated item to keep its position, got %+v", items)
	}
}

func TestReplaceNotFound(t *testing.T) {
	repo := NewItemRepositoryMemory()
	draft, _ := item.NewDraft("changed", true)

	_, err := repo.Replace(context.Background(), uuid.New(), draft)
	if !errors.Is(err, item.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteRemovesExactlyOne(t *testing.T) {
	repo := NewItemRepositoryMemory()
	created := seed(t, repo, 3)

	if err := repo.Delete(context.Background(), created[0].Id); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	count, _ := repo.Count(context.Background())
	if count != 2 {
		t.Fatalf("expected count 2, got %d", count)
	}
	if _, err := repo.GetItem(context.Background(), created[0].Id); !errors.Is(err, item.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	items, _ := repo.List(context.Background(), 0, 10)
	if len(items) != 2 || items[0].Id != created[1].Id || items[1].Id != created[2].Id {
		t.Fatalf("expected remaining items in order, got %+v", items)
	}
}

func TestDeleteNotFound(t *testing.T) {
	repo := NewItemRepositoryMemory()

	err := repo.Delete(context.Background(), uuid.New())
	if !errors.Is(err, item.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestConcurrentInsert(t *testing.T) {
	repo := NewItemRepositoryMemory()
	draft, _ := item.NewDraft("parallel", false)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repo.Insert(context.Background(), item.New(uuid.New(), draft))
			_, _ = repo.List(context.Background(), 0, 10)
		}()
	}
	wg.Wait()

	count, _ := repo.Count(context.Background())
	if count != 50 {
		t.Fatalf("expected count 50, got %d", count)
	}
}

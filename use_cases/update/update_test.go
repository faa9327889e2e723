package update

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/giovaniif/items/domain/item"
	"github.com/giovaniif/items/protocols"
	"github.com/google/uuid"
)

type mockRepository struct {
	replaceErr    error
	replaceCalled bool

	replaceCalledWithId    uuid.UUID
	replaceCalledWithDraft item.Draft
}

func (m *mockRepository) Insert(ctx context.Context, it item.Item) error { return nil }
func (m *mockRepository) GetItem(ctx context.Context, itemId uuid.UUID) (item.Item, error) {
	return item.Item{}, nil
}
func (m *mockRepository) List(ctx context.Context, skip int, limit int) ([]item.Item, error) {
	return nil, nil
}
func (m *mockRepository) Replace(ctx context.Context, itemId uuid.UUID, draft item.Draft) (item.Item, error) {
	m.replaceCalled = true
	m.replaceCalledWithId = itemId
	m.replaceCalledWithDraft = draft
	if m.replaceErr != nil {
		return item.Item{}, m.replaceErr
	}
	return item.New(itemId, draft), nil
}
func (m *mockRepository) Delete(ctx context.Context, itemId uuid.UUID) error { return nil }
func (m *mockRepository) Count(ctx context.Context) (int, error)          { return 0, nil }

type mockPublisher struct {
	published  []protocols.Event
	publishErr error
}

func (m *mockPublisher) Publish(ctx context.Context, event protocols.Event) error {
	m.published = append(m.published, event)
	return m.publishErr
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestUpdate_Success(t *testing.T) {
	id := uuid.New()
	draft, _ := item.NewDraft("buy milk", true)
	repo := &mockRepository{}
	publisher := &mockPublisher{}
	uc := NewUpdate(repo, publisher, discardLogger())

	updated, err := uc.Update(context.Background(), Input{ItemId: id, Draft: draft})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if updated.Id != id || updated.Text != "buy milk" || !updated.IsDone {
		t.Fatalf("unexpected updated item: %+v", updated)
	}
	if repo.replaceCalledWithId != id || repo.replaceCalledWithDraft != draft {
		t.Fatalf("expected Replace called with (%s, %+v)", id, draft)
	}
	if len(publisher.published) != 1 || publisher.published[0].Type != protocols.EventItemUpdated {
		t.Fatalf("expected item.updated event, got %v", publisher.published)
	}
}

func TestUpdate_ValidationBeforeLookup(t *testing.T) {
	repo := &mockRepository{replaceErr: item.NotFound(uuid.New())}
	uc := NewUpdate(repo, &mockPublisher{}, discardLogger())

	_, err := uc.Update(context.Background(), Input{ItemId: uuid.New()})
	if !errors.Is(err, item.ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
	if repo.replaceCalled {
		t.Fatalf("expected Replace not to be called")
	}
}

func TestUpdate_NotFound(t *testing.T) {
	id := uuid.New()
	draft, _ := item.NewDraft("buy milk", true)
	publisher := &mockPublisher{}
	uc := NewUpdate(&mockRepository{replaceErr: item.NotFound(id)}, publisher, discardLogger())

	_, err := uc.Update(context.Background(), Input{ItemId: id, Draft: draft})
	if !errors.Is(err, item.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(publisher.published) != 0 {
		t.Fatalf("expected no event, got %v", publisher.published)
	}
}

func TestUpdate_IgnoresPublishError(t *testing.T) {
	draft, _ := item.NewDraft("buy milk", true)
	uc := NewUpdate(&mockRepository{}, &mockPublisher{publishErr: errors.New("broker down")}, discardLogger())

	_, err := uc.Update(context.Background(), Input{ItemId: uuid.New(), Draft: draft})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

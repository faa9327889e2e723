package item

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
)

func TestNewDraftRejectsEmptyText(t *testing.T) {
	draft, err := NewDraft("", true)
	if !errors.Is(err, ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
	if draft.Valid() {
		t.Fatalf("expected zero draft on error")
	}
}

func TestNewDraftKeepsWhitespaceText(t *testing.T) {
	draft, err := NewDraft("  ", false)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if draft.Text() != "  " {
		t.Errorf("Expected text to be kept as is, got %q", draft.Text())
	}
}

func TestNewItemFromDraft(t *testing.T) {
	id := uuid.New()
	draft, _ := NewDraft("buy milk", true)
	it := New(id, draft)
	if it.Id != id || it.Text != "buy milk" || !it.IsDone {
		t.Errorf("Expected item to echo draft, got %+v", it)
	}
}

func TestItemApplyKeepsId(t *testing.T) {
	id := uuid.New()
	first, _ := NewDraft("buy milk", false)
	second, _ := NewDraft("buy bread", true)
	it := New(id, first)
	it.Apply(second)
	if it.Id != id {
		t.Errorf("Expected id to stay %s, got %s", id, it.Id)
	}
	if it.Text != "buy bread" || !it.IsDone {
		t.Errorf("Expected text and flag to be replaced, got %+v", it)
	}
}

func TestNotFoundWrapsSentinel(t *testing.T) {
	id := uuid.New()
	err := NotFound(id)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err.Error() != "item not found: "+id.String() {
		t.Errorf("Expected message to name the id, got %q", err.Error())
	}
	var notFound *NotFoundError
	if !errors.As(fmt.Errorf("replay: %w", err), &notFound) || notFound.Id != id {
		t.Fatalf("expected NotFoundError for %s, got %v", id, err)
	}
}

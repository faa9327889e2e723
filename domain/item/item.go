package item

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrEmptyText   = errors.New("text must not be empty")
	ErrNotFound    = errors.New("item not found")
	ErrDuplicateId = errors.New("item id already in use")
)

type Item struct {
	Id     uuid.UUID `json:"id"`
	Text   string    `json:"text"`
	IsDone bool      `json:"is_done"`
}

// Draft is a text/flag pair that already passed validation.
// The only way to get a non-zero Draft is NewDraft.
type Draft struct {
	text   string
	isDone bool
}

func NewDraft(text string, isDone bool) (Draft, error) {
	if text == "" {
		return Draft{}, ErrEmptyText
	}
	return Draft{text: text, isDone: isDone}, nil
}

func (d Draft) Text() string {
	return d.text
}

func (d Draft) IsDone() bool {
	return d.isDone
}

func (d Draft) Valid() bool {
	return d.text != ""
}

func New(id uuid.UUID, draft Draft) Item {
	return Item{Id: id, Text: draft.text, IsDone: draft.isDone}
}

// Apply replaces text and completion flag. The id never changes.
func (i *Item) Apply(draft Draft) {
	i.Text = draft.text
	i.IsDone = draft.isDone
}

// NotFoundError names the missing item and matches ErrNotFound under errors.Is.
type NotFoundError struct {
	Id uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", ErrNotFound, e.Id)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

func NotFound(id uuid.UUID) error {
	return &NotFoundError{Id: id}
}

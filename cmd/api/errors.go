package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/giovaniif/items/domain/item"
	"github.com/giovaniif/items/protocols"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ValidationDetail points at the offending input. Loc starts with body, query or path.
type ValidationDetail struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

type validationError struct {
	details []ValidationDetail
}

func (e *validationError) Error() string {
	msgs := make([]string, len(e.details))
	for i, d := range e.details {
		msgs[i] = strings.Join(d.Loc, ".") + ": " + d.Msg
	}
	return strings.Join(msgs, "; ")
}

func newValidationError(details ...ValidationDetail) error {
	return &validationError{details: details}
}

func missingField(loc ...string) error {
	return newValidationError(ValidationDetail{Loc: loc, Msg: "Field required", Type: "missing"})
}

func nullField(field, kind, name string) error {
	return newValidationError(ValidationDetail{
		Loc:  []string{"body", field},
		Msg:  "Input should be a valid " + name,
		Type: kind + "_type",
	})
}

func invalidItemId(raw string) error {
	return newValidationError(ValidationDetail{
		Loc:  []string{"path", "item_id"},
		Msg:  fmt.Sprintf("Input should be a valid UUID, got %q", raw),
		Type: "uuid_parsing",
	})
}

// bodyError turns a JSON decoding failure into field-level detail where possible.
func bodyError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return newValidationError(ValidationDetail{
			Loc:  []string{"body", typeErr.Field},
			Msg:  fmt.Sprintf("Input should be a valid %s", typeErr.Type.String()),
			Type: typeErr.Type.Kind().String() + "_type",
		})
	}
	return newValidationError(ValidationDetail{
		Loc:  []string{"body"},
		Msg:  "JSON decode error: " + err.Error(),
		Type: "json_invalid",
	})
}

// queryError maps gin query binding failures, both parse and validator errors.
func queryError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		details := make([]ValidationDetail, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			details = append(details, ValidationDetail{
				Loc:  []string{"query", strings.ToLower(fe.Field())},
				Msg:  fmt.Sprintf("Input should be greater than or equal to %s", fe.Param()),
				Type: "greater_than_equal",
			})
		}
		return newValidationError(details...)
	}
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return newValidationError(ValidationDetail{
			Loc:  []string{"query"},
			Msg:  fmt.Sprintf("Input should be a valid integer, unable to parse %q", numErr.Num),
			Type: "int_parsing",
		})
	}
	return newValidationError(ValidationDetail{Loc: []string{"query"}, Msg: err.Error(), Type: "value_error"})
}

// writeError is the single place where errors become HTTP responses.
// A not-found error carrying its own id wins over itemId.
func writeError(c *gin.Context, logger *slog.Logger, err error, itemId uuid.UUID) {
	var vErr *validationError
	var notFound *item.NotFoundError
	if errors.As(err, &notFound) {
		itemId = notFound.Id
	}
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": vErr.details})
	case errors.Is(err, item.ErrEmptyText):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": []ValidationDetail{{
			Loc:  []string{"body", "text"},
			Msg:  "String should have at least 1 character",
			Type: "string_too_short",
		}}})
	case errors.Is(err, item.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": fmt.Sprintf("Item with ID %s not found", itemId)})
	case errors.Is(err, protocols.ErrIdempotencyKeyInProgress):
		c.JSON(http.StatusConflict, gin.H{"detail": err.Error()})
	default:
		logger.ErrorContext(c.Request.Context(), "request failed",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Any("error", err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
	}
}

package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/giovaniif/items/domain/item"
	"github.com/giovaniif/items/use_cases/create"
	"github.com/giovaniif/items/use_cases/get"
	"github.com/giovaniif/items/use_cases/list"
	"github.com/giovaniif/items/use_cases/remove"
	"github.com/giovaniif/items/use_cases/update"
	"github.com/google/uuid"
)

const idempotencyKeyHeader = "Idempotency-Key"

// ItemRequest is the body of both create and update. Pointers tell a missing field from a zero one.
type ItemRequest struct {
	Text   *string `json:"text"`
	IsDone *bool   `json:"is_done"`
}

type ListQuery struct {
	Skip  int `form:"skip,default=0" binding:"min=0"`
	Limit int `form:"limit,default=10" binding:"min=0"`
}

type itemsHandler struct {
	createUseCase *create.Create
	listUseCase   *list.List
	getUseCase    *get.Get
	updateUseCase *update.Update
	removeUseCase *remove.Remove
	logger        *slog.Logger
}

func bindDraft(c *gin.Context) (item.Draft, error) {
	var request ItemRequest
	if err := c.ShouldBindBodyWith(&request, binding.JSON); err != nil {
		return item.Draft{}, bodyError(err)
	}
	if request.Text == nil || request.IsDone == nil {
		nulls := explicitNulls(c)
		if nulls["text"] {
			return item.Draft{}, nullField("text", "string", "string")
		}
		if nulls["is_done"] {
			return item.Draft{}, nullField("is_done", "bool", "boolean")
		}
	}
	if request.Text == nil {
		return item.Draft{}, missingField("body", "text")
	}
	isDone := false
	if request.IsDone != nil {
		isDone = *request.IsDone
	}
	return item.NewDraft(*request.Text, isDone)
}

// explicitNulls reports the top-level body fields sent as JSON null.
// It reads the body cached by ShouldBindBodyWith.
func explicitNulls(c *gin.Context) map[string]bool {
	nulls := map[string]bool{}
	cached, ok := c.Get(gin.BodyBytesKey)
	if !ok {
		return nulls
	}
	body, ok := cached.([]byte)
	if !ok {
		return nulls
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nulls
	}
	for name, raw := range fields {
		if string(bytes.TrimSpace(raw)) == "null" {
			nulls[name] = true
		}
	}
	return nulls
}

func bindItemId(c *gin.Context) (uuid.UUID, error) {
	raw := c.Param("id")
	itemId, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, invalidItemId(raw)
	}
	return itemId, nil
}

func (h *itemsHandler) create(c *gin.Context) {
	draft, err := bindDraft(c)
	if err != nil {
		writeError(c, h.logger, err, uuid.Nil)
		return
	}
	out, err := h.createUseCase.Create(c.Request.Context(), create.Input{
		Draft:          draft,
		IdempotencyKey: c.GetHeader(idempotencyKeyHeader),
	})
	if err != nil {
		writeError(c, h.logger, err, uuid.Nil)
		return
	}
	if out.Replayed {
		c.Header("Idempotent-Replayed", "true")
	}
	c.JSON(http.StatusCreated, out.Item)
}

func (h *itemsHandler) list(c *gin.Context) {
	var query ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		writeError(c, h.logger, queryError(err), uuid.Nil)
		return
	}
	items, err := h.listUseCase.List(c.Request.Context(), list.Input{Skip: query.Skip, Limit: query.Limit})
	if err != nil {
		writeError(c, h.logger, err, uuid.Nil)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *itemsHandler) get(c *gin.Context) {
	itemId, err := bindItemId(c)
	if err != nil {
		writeError(c, h.logger, err, uuid.Nil)
		return
	}
	found, err := h.getUseCase.Get(c.Request.Context(), itemId)
	if err != nil {
		writeError(c, h.logger, err, itemId)
		return
	}
	c.JSON(http.StatusOK, found)
}

func (h *itemsHandler) update(c *gin.Context) {
	itemId, err := bindItemId(c)
	if err != nil {
		writeError(c, h.logger, err, uuid.Nil)
		return
	}
	draft, err := bindDraft(c)
	if err != nil {
		writeError(c, h.logger, err, itemId)
		return
	}
	updated, err := h.updateUseCase.Update(c.Request.Context(), update.Input{ItemId: itemId, Draft: draft})
	if err != nil {
		writeError(c, h.logger, err, itemId)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *itemsHandler) remove(c *gin.Context) {
	itemId, err := bindItemId(c)
	if err != nil {
		writeError(c, h.logger, err, uuid.Nil)
		return
	}
	if err := h.removeUseCase.Remove(c.Request.Context(), itemId); err != nil {
		writeError(c, h.logger, err, itemId)
		return
	}
	c.Status(http.StatusNoContent)
}

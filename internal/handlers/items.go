package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mzhuravlev/shopcourse/internal/observability"
	"github.com/mzhuravlev/shopcourse/internal/platform/apierr"
	"github.com/mzhuravlev/shopcourse/internal/store"
)

type ItemHandler struct {
	items   *store.CatalogStore
	metrics *observability.Metrics
}

func NewItemHandler(items *store.CatalogStore, metrics *observability.Metrics) *ItemHandler {
	return &ItemHandler{items: items, metrics: metrics}
}

type itemBody struct {
	Name  *string  `json:"name"`
	Price *float64 `json:"price"`
}

func decodeItemBody(r io.Reader) (itemBody, error) {
	var body itemBody
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		return itemBody{}, apierr.Validation("invalid item payload")
	}
	if body.Name == nil || body.Price == nil {
		return itemBody{}, apierr.Validation("name and price are required")
	}
	if *body.Price < 0 {
		return itemBody{}, apierr.Validation("price must be non-negative")
	}
	return body, nil
}

func (h *ItemHandler) Create(c *gin.Context) {
	body, err := decodeItemBody(c.Request.Body)
	if err != nil {
		RespondError(c, err)
		return
	}
	item := h.items.Create(*body.Name, *body.Price)
	h.metrics.ItemCreated()
	c.Header("Location", fmt.Sprintf("/item/%d", item.ID))
	c.JSON(http.StatusCreated, item)
}

func (h *ItemHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	item, ok := h.items.Get(id)
	if !ok || item.Deleted {
		RespondError(c, apierr.NotFound("Item not found or has been deleted"))
		return
	}
	RespondOK(c, item)
}

func (h *ItemHandler) List(c *gin.Context) {
	var f store.ItemFilter
	var err error
	if f.Offset, err = queryOffset(c); err != nil {
		RespondError(c, err)
		return
	}
	if f.Limit, err = queryLimit(c); err != nil {
		RespondError(c, err)
		return
	}
	if f.MinPrice, err = queryFloat(c, "min_price"); err != nil {
		RespondError(c, err)
		return
	}
	if f.MaxPrice, err = queryFloat(c, "max_price"); err != nil {
		RespondError(c, err)
		return
	}
	if f.ShowDeleted, err = queryBool(c, "show_deleted"); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, h.items.List(f))
}

func (h *ItemHandler) Replace(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	body, err := decodeItemBody(c.Request.Body)
	if err != nil {
		RespondError(c, err)
		return
	}
	item, err := h.items.Replace(id, *body.Name, *body.Price)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, item)
}

// Patch applies only the fields present in the body. An empty body is a
// valid no-op update. The deleted flag is not writable through here, and
// unknown fields are rejected outright.
func (h *ItemHandler) Patch(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	name, price, err := decodeItemPatch(c.Request.Body)
	if err != nil {
		RespondError(c, err)
		return
	}
	item, err := h.items.Patch(id, name, price)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, item)
}

func decodeItemPatch(r io.Reader) (name *string, price *float64, err error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, apierr.Validation("invalid item payload")
	}
	if len(raw) == 0 {
		return nil, nil, nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, nil, apierr.Validation("invalid item payload")
	}
	for key, value := range fields {
		switch key {
		case "name":
			var s string
			if err := json.Unmarshal(value, &s); err != nil {
				return nil, nil, apierr.Validation("name must be a string")
			}
			name = &s
		case "price":
			var f float64
			if err := json.Unmarshal(value, &f); err != nil || f < 0 {
				return nil, nil, apierr.Validation("price must be a non-negative number")
			}
			price = &f
		case "deleted":
			return nil, nil, apierr.Validation("Field 'deleted' cannot be modified")
		default:
			return nil, nil, apierr.Validation("unknown field '" + key + "'")
		}
	}
	return name, price, nil
}

// Delete always answers 200; the message says whether this call actually
// flipped the flag.
func (h *ItemHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	msg, deletedNow := h.items.SoftDelete(id)
	if deletedNow {
		h.metrics.ItemDeleted()
	}
	RespondOK(c, gin.H{"message": msg})
}

package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mzhuravlev/shopcourse/internal/observability"
	"github.com/mzhuravlev/shopcourse/internal/platform/apierr"
	"github.com/mzhuravlev/shopcourse/internal/store"
)

type CartHandler struct {
	carts   *store.CartStore
	metrics *observability.Metrics
}

func NewCartHandler(carts *store.CartStore, metrics *observability.Metrics) *CartHandler {
	return &CartHandler{carts: carts, metrics: metrics}
}

func (h *CartHandler) Create(c *gin.Context) {
	cart := h.carts.Create()
	c.Header("Location", fmt.Sprintf("/cart/%d", cart.ID))
	c.JSON(http.StatusCreated, gin.H{"id": cart.ID})
}

func (h *CartHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	cart, ok := h.carts.Get(id)
	if !ok {
		RespondError(c, apierr.NotFound("Cart not found"))
		return
	}
	RespondOK(c, cart)
}

func (h *CartHandler) List(c *gin.Context) {
	var f store.CartFilter
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
	if f.MinQuantity, err = queryQuantity(c, "min_quantity"); err != nil {
		RespondError(c, err)
		return
	}
	if f.MaxQuantity, err = queryQuantity(c, "max_quantity"); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, h.carts.List(f))
}

func (h *CartHandler) AddItem(c *gin.Context) {
	cartID, err := pathID(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	itemID, err := pathID(c, "item_id")
	if err != nil {
		RespondError(c, err)
		return
	}
	if err := h.carts.AddItem(cartID, itemID); err != nil {
		RespondError(c, err)
		return
	}
	h.metrics.CartOperation("add")
	RespondOK(c, gin.H{"message": "Item successfully added to the cart"})
}

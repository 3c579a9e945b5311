package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	cartapp "github.com/sheikhstore/storefront/internal/application/cart"
	catalogapp "github.com/sheikhstore/storefront/internal/application/catalog"
	cartdomain "github.com/sheikhstore/storefront/internal/domain/cart"
	"github.com/sheikhstore/storefront/internal/infrastructure/i18n"
	"github.com/sheikhstore/storefront/internal/interfaces/http/dto"
)

// CartHandler exposes the shop context's cart to the UI.
type CartHandler struct {
	BaseHandler
	carts   *cartapp.Service
	catalog *catalogapp.Service
	i18n    *i18n.Manager
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(carts *cartapp.Service, catalog *catalogapp.Service, langs *i18n.Manager) *CartHandler {
	return &CartHandler{carts: carts, catalog: catalog, i18n: langs}
}

// RegisterRoutes registers cart routes
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cart := rg.Group("/cart")
	{
		cart.GET("", h.View)
		cart.DELETE("", h.Clear)
		cart.POST("/items", h.AddItem)
		cart.PATCH("/items/:id", h.UpdateQuantity)
		cart.DELETE("/items/:id", h.RemoveItem)
		cart.POST("/open", h.SetOpen)
		cart.POST("/toggle", h.Toggle)
	}
}

// cartView is the full cart state the panel renders.
type cartView struct {
	Items     []cartdomain.LineItem `json:"items"`
	Total     string                `json:"total"`
	ItemCount int                   `json:"item_count"`
	IsOpen    bool                  `json:"is_open"`
}

func (h *CartHandler) view() cartView {
	return cartView{
		Items:     h.carts.Items(),
		Total:     h.carts.Total().String(),
		ItemCount: h.carts.ItemCount(),
		IsOpen:    h.carts.IsOpen(),
	}
}

// View returns the current cart contents, total, badge count and panel flag.
func (h *CartHandler) View(c *gin.Context) {
	h.Success(c, h.view())
}

// addItemRequest adds one product to the cart. A missing quantity means
// the contract default of one.
type addItemRequest struct {
	ProductID int64  `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
	Color     string `json:"color"`
}

// AddItem adds a product to the cart. Out-of-stock products are rejected
// here; the cart itself never checks stock.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "invalid add-to-cart payload")
		return
	}

	product, err := h.catalog.ProductByID(c.Request.Context(), req.ProductID)
	if err != nil {
		h.NotFound(c, "product not found")
		return
	}
	if !product.InStock() {
		h.UnprocessableEntity(c, dto.ErrCodeOutOfStock, h.i18n.T("out-of-stock"))
		return
	}

	item := h.carts.Add(c.Request.Context(), product, req.Quantity, req.Color)

	h.Success(c, gin.H{
		"item":    item,
		"message": h.i18n.T("product-added"),
		"cart":    h.view(),
	})
}

// updateQuantityRequest sets the quantity for a product's rows.
type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateQuantity sets the quantity for the product; zero or less removes it.
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.BadRequest(c, "product id must be an integer")
		return
	}

	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "invalid quantity payload")
		return
	}

	h.carts.UpdateQuantity(c.Request.Context(), id, req.Quantity)
	h.Success(c, h.view())
}

// RemoveItem removes every variant of the product from the cart.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.BadRequest(c, "product id must be an integer")
		return
	}

	h.carts.Remove(c.Request.Context(), id)
	h.Success(c, h.view())
}

// Clear empties the cart.
func (h *CartHandler) Clear(c *gin.Context) {
	h.carts.Clear(c.Request.Context())
	h.Success(c, h.view())
}

// setOpenRequest sets the cart-panel visibility flag.
type setOpenRequest struct {
	Open bool `json:"open"`
}

// SetOpen sets the cart-panel visibility flag. Opening the panel is also
// the signal for the UI to fall back from the checkout form to the cart
// view; that sub-state lives entirely in the presentation layer.
func (h *CartHandler) SetOpen(c *gin.Context) {
	var req setOpenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "invalid payload")
		return
	}
	h.carts.SetOpen(req.Open)
	h.Success(c, h.view())
}

// Toggle flips the cart-panel visibility flag.
func (h *CartHandler) Toggle(c *gin.Context) {
	h.carts.ToggleOpen()
	h.Success(c, h.view())
}

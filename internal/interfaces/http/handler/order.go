package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/sheikhstore/storefront/internal/application/catalog"
	orderapp "github.com/sheikhstore/storefront/internal/application/order"
	cartdomain "github.com/sheikhstore/storefront/internal/domain/cart"
	orderdomain "github.com/sheikhstore/storefront/internal/domain/order"
	"github.com/sheikhstore/storefront/internal/domain/shared"
	"github.com/sheikhstore/storefront/internal/infrastructure/i18n"
	"github.com/sheikhstore/storefront/internal/interfaces/http/dto"
)

// OrderHandler runs the checkout flow.
type OrderHandler struct {
	BaseHandler
	orders  *orderapp.Service
	catalog *catalogapp.Service
	i18n    *i18n.Manager
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders *orderapp.Service, catalog *catalogapp.Service, langs *i18n.Manager) *OrderHandler {
	return &OrderHandler{orders: orders, catalog: catalog, i18n: langs}
}

// RegisterRoutes registers checkout routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/checkout", h.Checkout)
}

// adhocItem is one "buy now" row: the checkout orders these instead of
// the cart when present.
type adhocItem struct {
	ProductID int64  `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
	Color     string `json:"color"`
}

// checkoutRequest is the checkout payload.
type checkoutRequest struct {
	Customer       orderdomain.CustomerForm `json:"customer"`
	ShippingMethod string                   `json:"shipping_method"`
	Items          []adhocItem              `json:"items"`
}

// Checkout validates the form and submits the order exactly once. The UI
// disables the submit control while the request is pending; that is the
// only double-submit protection besides the per-attempt idempotency key.
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "invalid checkout payload")
		return
	}

	appReq := orderapp.CheckoutRequest{
		Customer:       req.Customer,
		ShippingMethod: orderdomain.ShippingMethod(req.ShippingMethod),
	}

	if req.Items != nil {
		items, err := h.resolveItems(c, req.Items)
		if err != nil {
			return // response already written
		}
		appReq.Items = items
	}

	result, err := h.orders.Checkout(c.Request.Context(), appReq)
	if err != nil {
		h.checkoutError(c, err)
		return
	}

	h.Created(c, gin.H{
		"message":         h.i18n.T("order-confirmed"),
		"confirmation":    result.Confirmation,
		"total":           result.Total.String(),
		"idempotency_key": result.IdempotencyKey,
		"cleared_cart":    result.ClearedCart,
	})
}

// resolveItems turns buy-now rows into line items with catalog snapshots.
func (h *OrderHandler) resolveItems(c *gin.Context, rows []adhocItem) ([]cartdomain.LineItem, error) {
	items := make([]cartdomain.LineItem, 0, len(rows))
	for _, row := range rows {
		product, err := h.catalog.ProductByID(c.Request.Context(), row.ProductID)
		if err != nil {
			h.NotFound(c, "product not found")
			return nil, err
		}
		if !product.InStock() {
			h.UnprocessableEntity(c, dto.ErrCodeOutOfStock, h.i18n.T("out-of-stock"))
			return nil, shared.ErrOutOfStock
		}
		quantity := row.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		items = append(items, cartdomain.LineItem{Product: product, Quantity: quantity, Color: row.Color})
	}
	return items, nil
}

func (h *OrderHandler) checkoutError(c *gin.Context, err error) {
	var verr *orderapp.ValidationError
	if errors.As(err, &verr) {
		h.ValidationFailed(c, "checkout form is incomplete", verr.Fields)
		return
	}
	if errors.Is(err, orderdomain.ErrEmptyOrder) {
		h.UnprocessableEntity(c, dto.ErrCodeEmptyCart, h.i18n.T("cart-empty"))
		return
	}
	// Every other failure collapses into one dismissible message; the
	// cart was left untouched so the user can retry.
	h.BadGateway(c, dto.ErrCodeSubmissionFailed, h.i18n.T("order-failed"))
}

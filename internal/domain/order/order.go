package order

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sheikhstore/storefront/internal/domain/cart"
	"github.com/sheikhstore/storefront/internal/domain/shared"
)

// ShippingMethod selects how the order is delivered.
type ShippingMethod string

const (
	ShippingStandard ShippingMethod = "standard"
	ShippingExpress  ShippingMethod = "express"
)

// PaymentMethod is fixed to cash on delivery; the field exists so the
// wire contract can grow without changing shape.
type PaymentMethod string

const PaymentCash PaymentMethod = "cash"

// ErrEmptyOrder is returned when an order is built from no items.
var ErrEmptyOrder = shared.ErrEmptyCart

// CustomerForm carries the raw checkout form fields. It lives only for
// the duration of one submission attempt and is never persisted.
type CustomerForm struct {
	Name         string `json:"name" validate:"required"`
	Phone        string `json:"phone" validate:"required"`
	StreetNumber string `json:"street_number" validate:"required"`
	AreaNumber   string `json:"area_number" validate:"required"`
	VillaNumber  string `json:"villa_number" validate:"required"`
	Notes        string `json:"notes"`
}

// ComposeAddress concatenates the three address components into the
// single human-readable string the backend stores. The embedded Arabic
// and English labels are a display affordance; the backend does not
// parse them.
func (f *CustomerForm) ComposeAddress() string {
	return fmt.Sprintf(
		"رقم الشارع (Street No.): %s، رقم المنطقة (Area No.): %s، رقم الفيلا (Villa No.): %s",
		f.StreetNumber, f.AreaNumber, f.VillaNumber,
	)
}

// Info builds the CustomerInfo submitted with the order.
func (f *CustomerForm) Info() CustomerInfo {
	return CustomerInfo{
		Name:    f.Name,
		Phone:   f.Phone,
		Address: f.ComposeAddress(),
		Notes:   f.Notes,
	}
}

// CustomerInfo is the shipping contact as sent to the backend.
type CustomerInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes,omitempty"`
}

// Line is one order row on the wire: product display name and quantity.
// Prices travel once at top level, never per line.
type Line struct {
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
}

// Request is the transient order payload for POST /orders. It is built at
// submission time from captured cart prices and discarded once the call
// resolves.
type Request struct {
	Items          []Line          `json:"items"`
	Total          decimal.Decimal `json:"total"`
	CustomerInfo   CustomerInfo    `json:"customerInfo"`
	ShippingMethod ShippingMethod  `json:"shippingMethod,omitempty"`
	PaymentMethod  PaymentMethod   `json:"paymentMethod,omitempty"`
}

// Confirmation is the backend's echo of a created order.
type Confirmation struct {
	ID           int64           `json:"id,omitempty"`
	Items        []Line          `json:"items,omitempty"`
	Total        decimal.Decimal `json:"total"`
	CustomerInfo CustomerInfo    `json:"customerInfo"`
}

// NewRequest builds the order request from the items being ordered. The
// total uses each item's captured unit price, never a re-fetched catalog
// price.
func NewRequest(items []cart.LineItem, info CustomerInfo, shipping ShippingMethod) (Request, error) {
	if len(items) == 0 {
		return Request{}, ErrEmptyOrder
	}
	if shipping == "" {
		shipping = ShippingStandard
	}

	lines := make([]Line, 0, len(items))
	total := decimal.Zero
	for i := range items {
		lines = append(lines, Line{
			ProductName: items[i].Product.Name,
			Quantity:    items[i].Quantity,
		})
		total = total.Add(items[i].Subtotal())
	}

	return Request{
		Items:          lines,
		Total:          total,
		CustomerInfo:   info,
		ShippingMethod: shipping,
		PaymentMethod:  PaymentCash,
	}, nil
}

package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikhstore/storefront/internal/domain/cart"
	"github.com/sheikhstore/storefront/internal/domain/catalog"
)

func lineItem(name string, price int64, quantity int) cart.LineItem {
	return cart.LineItem{
		Product:  catalog.Product{ID: 1, Name: name, Price: decimal.NewFromInt(price)},
		Quantity: quantity,
	}
}

func TestComposeAddress(t *testing.T) {
	form := CustomerForm{StreetNumber: "12", AreaNumber: "53", VillaNumber: "7"}
	assert.Equal(t,
		"رقم الشارع (Street No.): 12، رقم المنطقة (Area No.): 53، رقم الفيلا (Villa No.): 7",
		form.ComposeAddress())
}

func TestFormInfo(t *testing.T) {
	form := CustomerForm{
		Name:         "Ahmed",
		Phone:        "55512345",
		StreetNumber: "12",
		AreaNumber:   "53",
		VillaNumber:  "7",
		Notes:        "call before delivery",
	}

	info := form.Info()
	assert.Equal(t, "Ahmed", info.Name)
	assert.Equal(t, "55512345", info.Phone)
	assert.Equal(t, form.ComposeAddress(), info.Address)
	assert.Equal(t, "call before delivery", info.Notes)
}

func TestNewRequest(t *testing.T) {
	info := CustomerInfo{Name: "Ahmed", Phone: "55512345", Address: "somewhere"}

	t.Run("totals the captured unit prices", func(t *testing.T) {
		items := []cart.LineItem{
			lineItem("ProductA", 100, 2),
			lineItem("ProductB", 50, 1),
		}

		req, err := NewRequest(items, info, ShippingStandard)
		require.NoError(t, err)

		assert.True(t, req.Total.Equal(decimal.NewFromInt(250)))
		require.Len(t, req.Items, 2)
		assert.Equal(t, Line{ProductName: "ProductA", Quantity: 2}, req.Items[0])
		assert.Equal(t, Line{ProductName: "ProductB", Quantity: 1}, req.Items[1])
		assert.Equal(t, info, req.CustomerInfo)
		assert.Equal(t, PaymentCash, req.PaymentMethod)
	})

	t.Run("rejects an empty item list", func(t *testing.T) {
		_, err := NewRequest(nil, info, ShippingStandard)
		assert.ErrorIs(t, err, ErrEmptyOrder)
	})

	t.Run("defaults shipping to standard", func(t *testing.T) {
		req, err := NewRequest([]cart.LineItem{lineItem("ProductA", 100, 1)}, info, "")
		require.NoError(t, err)
		assert.Equal(t, ShippingStandard, req.ShippingMethod)
	})

	t.Run("keeps an explicit shipping method", func(t *testing.T) {
		req, err := NewRequest([]cart.LineItem{lineItem("ProductA", 100, 1)}, info, ShippingExpress)
		require.NoError(t, err)
		assert.Equal(t, ShippingExpress, req.ShippingMethod)
	})

	t.Run("lines carry names and quantities only", func(t *testing.T) {
		req, err := NewRequest([]cart.LineItem{lineItem("ProductA", 100, 3)}, info, ShippingStandard)
		require.NoError(t, err)
		// Prices travel once at top level.
		assert.True(t, req.Total.Equal(decimal.NewFromInt(300)))
		assert.Equal(t, "ProductA", req.Items[0].ProductName)
		assert.Equal(t, 3, req.Items[0].Quantity)
	})
}

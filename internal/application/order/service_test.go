package order

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikhstore/storefront/internal/domain/cart"
	"github.com/sheikhstore/storefront/internal/domain/catalog"
	"github.com/sheikhstore/storefront/internal/domain/order"
)

// fakePoster records the submitted requests and keys.
type fakePoster struct {
	err      error
	requests []order.Request
	keys     []string
}

func (p *fakePoster) CreateOrder(ctx context.Context, key string, req order.Request) (*order.Confirmation, error) {
	p.requests = append(p.requests, req)
	p.keys = append(p.keys, key)
	if p.err != nil {
		return nil, p.err
	}
	return &order.Confirmation{ID: 1001, Total: req.Total, CustomerInfo: req.CustomerInfo}, nil
}

// fakeCart is a CartSource with a fixed snapshot.
type fakeCart struct {
	items   []cart.LineItem
	cleared bool
}

func (c *fakeCart) Snapshot() []cart.LineItem { return c.items }
func (c *fakeCart) Clear(ctx context.Context) { c.cleared = true }

func cartItems() []cart.LineItem {
	return []cart.LineItem{
		{Product: catalog.Product{ID: 1, Name: "ProductA", Price: decimal.NewFromInt(100)}, Quantity: 2},
		{Product: catalog.Product{ID: 2, Name: "ProductB", Price: decimal.NewFromInt(50)}, Quantity: 1},
	}
}

func validForm() order.CustomerForm {
	return order.CustomerForm{
		Name:         "Ahmed",
		Phone:        "55512345",
		StreetNumber: "12",
		AreaNumber:   "53",
		VillaNumber:  "7",
	}
}

func TestCheckoutFromCart(t *testing.T) {
	ctx := context.Background()

	t.Run("success submits the snapshot and clears the cart", func(t *testing.T) {
		poster := &fakePoster{}
		carts := &fakeCart{items: cartItems()}
		svc := NewService(poster, carts, nil)

		result, err := svc.Checkout(ctx, CheckoutRequest{Customer: validForm()})
		require.NoError(t, err)

		require.Len(t, poster.requests, 1)
		assert.True(t, result.Total.Equal(decimal.NewFromInt(250)))
		assert.True(t, result.ClearedCart)
		assert.True(t, carts.cleared)
		assert.NotEmpty(t, result.IdempotencyKey)
		assert.Equal(t, int64(1001), result.Confirmation.ID)
	})

	t.Run("failure keeps the cart untouched", func(t *testing.T) {
		poster := &fakePoster{err: errors.New("backend unavailable")}
		carts := &fakeCart{items: cartItems()}
		svc := NewService(poster, carts, nil)

		_, err := svc.Checkout(ctx, CheckoutRequest{Customer: validForm()})

		require.Error(t, err)
		assert.False(t, carts.cleared)
		assert.Len(t, poster.requests, 1)
	})

	t.Run("empty cart never reaches the backend", func(t *testing.T) {
		poster := &fakePoster{}
		svc := NewService(poster, &fakeCart{}, nil)

		_, err := svc.Checkout(ctx, CheckoutRequest{Customer: validForm()})

		assert.ErrorIs(t, err, order.ErrEmptyOrder)
		assert.Empty(t, poster.requests)
	})
}

func TestCheckoutBuyNow(t *testing.T) {
	ctx := context.Background()

	t.Run("explicit items bypass and preserve the cart", func(t *testing.T) {
		poster := &fakePoster{}
		carts := &fakeCart{items: cartItems()}
		svc := NewService(poster, carts, nil)

		adhoc := []cart.LineItem{
			{Product: catalog.Product{ID: 3, Name: "Gift", Price: decimal.NewFromInt(75)}, Quantity: 1},
		}
		result, err := svc.Checkout(ctx, CheckoutRequest{Items: adhoc, Customer: validForm()})
		require.NoError(t, err)

		assert.False(t, result.ClearedCart)
		assert.False(t, carts.cleared)
		require.Len(t, poster.requests, 1)
		assert.Equal(t, "Gift", poster.requests[0].Items[0].ProductName)
		assert.True(t, result.Total.Equal(decimal.NewFromInt(75)))
	})
}

func TestCheckoutValidation(t *testing.T) {
	ctx := context.Background()

	t.Run("reports each missing field by its JSON name", func(t *testing.T) {
		poster := &fakePoster{}
		svc := NewService(poster, &fakeCart{items: cartItems()}, nil)

		_, err := svc.Checkout(ctx, CheckoutRequest{Customer: order.CustomerForm{Name: "Ahmed"}})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "phone")
		assert.Contains(t, verr.Fields, "street_number")
		assert.Contains(t, verr.Fields, "area_number")
		assert.Contains(t, verr.Fields, "villa_number")
		assert.NotContains(t, verr.Fields, "name")
		assert.NotContains(t, verr.Fields, "notes")
		assert.Empty(t, poster.requests)
	})

	t.Run("notes are optional", func(t *testing.T) {
		poster := &fakePoster{}
		svc := NewService(poster, &fakeCart{items: cartItems()}, nil)

		_, err := svc.Checkout(ctx, CheckoutRequest{Customer: validForm()})
		assert.NoError(t, err)
	})
}

func TestCheckoutIdempotencyKeys(t *testing.T) {
	ctx := context.Background()
	poster := &fakePoster{err: errors.New("backend unavailable")}
	carts := &fakeCart{items: cartItems()}
	svc := NewService(poster, carts, nil)

	_, _ = svc.Checkout(ctx, CheckoutRequest{Customer: validForm()})
	_, _ = svc.Checkout(ctx, CheckoutRequest{Customer: validForm()})

	require.Len(t, poster.keys, 2)
	assert.NotEqual(t, poster.keys[0], poster.keys[1])
}

func TestCheckoutComposedPayload(t *testing.T) {
	poster := &fakePoster{}
	svc := NewService(poster, &fakeCart{items: cartItems()}, nil)

	_, err := svc.Checkout(context.Background(), CheckoutRequest{
		Customer:       validForm(),
		ShippingMethod: order.ShippingExpress,
	})
	require.NoError(t, err)

	req := poster.requests[0]
	assert.Equal(t, order.ShippingExpress, req.ShippingMethod)
	assert.Equal(t, order.PaymentCash, req.PaymentMethod)
	assert.Equal(t, "Ahmed", req.CustomerInfo.Name)
	assert.Contains(t, req.CustomerInfo.Address, "Street No.")
	require.Len(t, req.Items, 2)
	assert.Equal(t, order.Line{ProductName: "ProductA", Quantity: 2}, req.Items[0])
}

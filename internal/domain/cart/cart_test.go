package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikhstore/storefront/internal/domain/catalog"
)

func testProduct(id int64, name string, price int64, stock int) catalog.Product {
	return catalog.Product{
		ID:            id,
		Name:          name,
		Price:         decimal.NewFromInt(price),
		OriginalPrice: decimal.NewFromInt(price),
		Stock:         stock,
	}
}

func TestAddItem(t *testing.T) {
	t.Run("appends a new row at the end", func(t *testing.T) {
		c := New()
		c.AddItem(testProduct(1, "Serum", 50, 10), 1, "")
		c.AddItem(testProduct(2, "iPhone 15", 100, 5), 1, "")

		items := c.Items()
		require.Len(t, items, 2)
		assert.Equal(t, int64(1), items[0].Product.ID)
		assert.Equal(t, int64(2), items[1].Product.ID)
	})

	t.Run("merges quantities for the same product and color", func(t *testing.T) {
		c := New()
		p := testProduct(1, "Serum", 50, 10)
		c.AddItem(p, 2, "")
		c.AddItem(p, 3, "")
		c.AddItem(p, 1, "")

		items := c.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 6, items[0].Quantity)
	})

	t.Run("creates distinct rows per color variant", func(t *testing.T) {
		c := New()
		p := testProduct(1, "Abaya", 200, 10)
		c.AddItem(p, 1, "black")
		c.AddItem(p, 1, "beige")
		c.AddItem(p, 2, "black")

		items := c.Items()
		require.Len(t, items, 2)
		assert.Equal(t, "black", items[0].Color)
		assert.Equal(t, 3, items[0].Quantity)
		assert.Equal(t, "beige", items[1].Color)
		assert.Equal(t, 1, items[1].Quantity)
	})

	t.Run("treats a non-positive quantity as one", func(t *testing.T) {
		c := New()
		c.AddItem(testProduct(1, "Serum", 50, 10), 0, "")
		c.AddItem(testProduct(2, "Cream", 30, 10), -4, "")

		items := c.Items()
		require.Len(t, items, 2)
		assert.Equal(t, 1, items[0].Quantity)
		assert.Equal(t, 1, items[1].Quantity)
	})

	t.Run("returns the resulting row", func(t *testing.T) {
		c := New()
		p := testProduct(1, "Serum", 50, 10)
		c.AddItem(p, 2, "")
		item := c.AddItem(p, 3, "")
		assert.Equal(t, 5, item.Quantity)
	})
}

func TestRemoveItem(t *testing.T) {
	t.Run("removes all color variants of the product", func(t *testing.T) {
		c := New()
		p := testProduct(1, "Abaya", 200, 10)
		c.AddItem(p, 1, "black")
		c.AddItem(p, 1, "beige")
		c.AddItem(testProduct(2, "Serum", 50, 10), 1, "")

		c.RemoveItem(1)

		items := c.Items()
		require.Len(t, items, 1)
		assert.Equal(t, int64(2), items[0].Product.ID)
	})

	t.Run("is a no-op for an unknown product", func(t *testing.T) {
		c := New()
		c.AddItem(testProduct(1, "Serum", 50, 10), 1, "")
		c.RemoveItem(99)
		assert.Equal(t, 1, c.Len())
	})
}

func TestUpdateQuantity(t *testing.T) {
	t.Run("sets the quantity for the product", func(t *testing.T) {
		c := New()
		c.AddItem(testProduct(1, "Serum", 50, 10), 1, "")
		c.UpdateQuantity(1, 7)

		items := c.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 7, items[0].Quantity)
	})

	t.Run("removes the row entirely at zero", func(t *testing.T) {
		c := New()
		c.AddItem(testProduct(1, "Serum", 50, 10), 3, "")
		c.UpdateQuantity(1, 0)
		assert.Equal(t, 0, c.Len())
	})

	t.Run("removes the row for a negative quantity", func(t *testing.T) {
		c := New()
		c.AddItem(testProduct(1, "Serum", 50, 10), 3, "")
		c.UpdateQuantity(1, -2)
		assert.Equal(t, 0, c.Len())
		assert.Equal(t, 0, c.ItemCount())
	})

	t.Run("does not disturb other rows or their order", func(t *testing.T) {
		c := New()
		c.AddItem(testProduct(1, "A", 10, 10), 1, "")
		c.AddItem(testProduct(2, "B", 20, 10), 1, "")
		c.AddItem(testProduct(3, "C", 30, 10), 1, "")

		c.UpdateQuantity(2, 0)

		items := c.Items()
		require.Len(t, items, 2)
		assert.Equal(t, int64(1), items[0].Product.ID)
		assert.Equal(t, int64(3), items[1].Product.ID)
	})
}

func TestTotals(t *testing.T) {
	t.Run("total is the sum of unit price times quantity", func(t *testing.T) {
		c := New()
		c.AddItem(testProduct(1, "ProductA", 100, 10), 2, "")
		c.AddItem(testProduct(2, "ProductB", 50, 10), 1, "")

		assert.True(t, c.Total().Equal(decimal.NewFromInt(250)))
		assert.Equal(t, 3, c.ItemCount())
	})

	t.Run("changing one row leaves other contributions intact", func(t *testing.T) {
		c := New()
		c.AddItem(testProduct(1, "ProductA", 100, 10), 2, "")
		c.AddItem(testProduct(2, "ProductB", 50, 10), 1, "")

		c.UpdateQuantity(2, 4)

		assert.True(t, c.Total().Equal(decimal.NewFromInt(400)))
	})

	t.Run("total is recomputed after every mutation", func(t *testing.T) {
		c := New()
		c.AddItem(testProduct(1, "ProductA", 100, 10), 2, "")
		require.True(t, c.Total().Equal(decimal.NewFromInt(200)))

		c.Clear()
		assert.True(t, c.Total().IsZero())
		assert.Equal(t, 0, c.ItemCount())
	})
}

func TestClear(t *testing.T) {
	t.Run("empties the sequence but keeps the open flag", func(t *testing.T) {
		c := New()
		c.AddItem(testProduct(1, "Serum", 50, 10), 2, "")
		c.SetOpen(true)

		c.Clear()

		assert.True(t, c.IsEmpty())
		assert.True(t, c.IsOpen())
	})
}

func TestOpenFlag(t *testing.T) {
	t.Run("starts closed", func(t *testing.T) {
		assert.False(t, New().IsOpen())
	})

	t.Run("toggle flips and reports the new value", func(t *testing.T) {
		c := New()
		assert.True(t, c.ToggleOpen())
		assert.True(t, c.IsOpen())
		assert.False(t, c.ToggleOpen())
		assert.False(t, c.IsOpen())
	})

	t.Run("flag mutations never touch the items", func(t *testing.T) {
		c := New()
		c.AddItem(testProduct(1, "Serum", 50, 10), 2, "")
		c.SetOpen(true)
		c.ToggleOpen()
		assert.Equal(t, 2, c.ItemCount())
	})
}

func TestReplace(t *testing.T) {
	t.Run("swaps in a persisted sequence", func(t *testing.T) {
		c := New()
		c.AddItem(testProduct(9, "Old", 10, 10), 1, "")

		c.Replace([]LineItem{
			{Product: testProduct(1, "A", 100, 10), Quantity: 2},
			{Product: testProduct(2, "B", 50, 10), Quantity: 1, Color: "red"},
		})

		items := c.Items()
		require.Len(t, items, 2)
		assert.Equal(t, int64(1), items[0].Product.ID)
		assert.Equal(t, "red", items[1].Color)
	})

	t.Run("drops rows with non-positive quantities", func(t *testing.T) {
		c := New()
		c.Replace([]LineItem{
			{Product: testProduct(1, "A", 100, 10), Quantity: 0},
			{Product: testProduct(2, "B", 50, 10), Quantity: 2},
		})
		assert.Equal(t, 1, c.Len())
	})
}

func TestItemsIsACopy(t *testing.T) {
	c := New()
	c.AddItem(testProduct(1, "Serum", 50, 10), 1, "")

	items := c.Items()
	items[0].Quantity = 99

	assert.Equal(t, 1, c.ItemCount())
}

func TestSubtotal(t *testing.T) {
	item := LineItem{Product: testProduct(1, "Serum", 50, 10), Quantity: 3}
	assert.True(t, item.Subtotal().Equal(decimal.NewFromInt(150)))
}

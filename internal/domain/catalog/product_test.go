package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestInStock(t *testing.T) {
	p := Product{Stock: 3}
	assert.True(t, p.InStock())

	p.Stock = 0
	assert.False(t, p.InStock())

	p.Stock = -1
	assert.False(t, p.InStock())
}

func TestHasDiscount(t *testing.T) {
	p := Product{
		Price:         decimal.NewFromInt(80),
		OriginalPrice: decimal.NewFromInt(100),
	}
	assert.True(t, p.HasDiscount())

	p.Price = decimal.NewFromInt(100)
	assert.False(t, p.HasDiscount())
}

func TestProductValidate(t *testing.T) {
	valid := Product{
		Name:          "Serum",
		Price:         decimal.NewFromInt(50),
		OriginalPrice: decimal.NewFromInt(60),
		Stock:         4,
	}
	assert.NoError(t, valid.Validate())

	t.Run("empty name", func(t *testing.T) {
		p := valid
		p.Name = ""
		assert.Error(t, p.Validate())
	})

	t.Run("negative stock", func(t *testing.T) {
		p := valid
		p.Stock = -1
		assert.Error(t, p.Validate())
	})

	t.Run("negative price", func(t *testing.T) {
		p := valid
		p.Price = decimal.NewFromInt(-1)
		assert.Error(t, p.Validate())
	})

	t.Run("price above original", func(t *testing.T) {
		p := valid
		p.Price = decimal.NewFromInt(70)
		assert.Error(t, p.Validate())
	})
}

func TestCategoryHasProducts(t *testing.T) {
	c := Category{ID: 1, Name: "Electronics"}
	assert.False(t, c.HasProducts())

	c.Products = []Product{{ID: 1, Name: "Phone"}}
	assert.True(t, c.HasProducts())
}

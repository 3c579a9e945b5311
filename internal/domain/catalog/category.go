package catalog

// Category groups the products the backend serves under one heading.
// The backend nests full product records inside each category, so one
// fetch yields the whole catalog tree.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Products    []Product `json:"products"`
}

// HasProducts returns true if the category holds at least one product.
func (c *Category) HasProducts() bool {
	return len(c.Products) > 0
}

package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	catalogapp "github.com/sheikhstore/storefront/internal/application/catalog"
	"github.com/sheikhstore/storefront/internal/infrastructure/i18n"
	"github.com/sheikhstore/storefront/internal/interfaces/http/dto"
)

// CatalogHandler serves the category/product views the storefront renders.
type CatalogHandler struct {
	BaseHandler
	catalog *catalogapp.Service
	i18n    *i18n.Manager
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalog *catalogapp.Service, langs *i18n.Manager) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, i18n: langs}
}

// RegisterRoutes registers catalog routes
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/catalog", h.Browse)
	rg.GET("/categories", h.Categories)
	rg.GET("/products/:id", h.Product)
}

// Browse applies the search/price/sort pipeline and returns the
// per-category sections that remain.
func (h *CatalogHandler) Browse(c *gin.Context) {
	q := catalogapp.Query{
		Search:   c.Query("search"),
		Sort:     catalogapp.ParseSortMode(c.Query("sort")),
		Language: h.i18n.Language(),
	}

	if raw := c.Query("min_price"); raw != "" {
		min, err := decimal.NewFromString(raw)
		if err != nil {
			h.BadRequest(c, "min_price must be a number")
			return
		}
		q.MinPrice = &min
	}
	if raw := c.Query("max_price"); raw != "" {
		max, err := decimal.NewFromString(raw)
		if err != nil {
			h.BadRequest(c, "max_price must be a number")
			return
		}
		q.MaxPrice = &max
	}

	sections, err := h.catalog.Browse(c.Request.Context(), q)
	if err != nil {
		h.BadGateway(c, dto.ErrCodeCatalogUnavailable, "catalog is currently unavailable")
		return
	}
	h.Success(c, sections)
}

// Categories returns the raw category tree.
func (h *CatalogHandler) Categories(c *gin.Context) {
	categories, err := h.catalog.Categories(c.Request.Context())
	if err != nil {
		h.BadGateway(c, dto.ErrCodeCatalogUnavailable, "catalog is currently unavailable")
		return
	}
	h.Success(c, categories)
}

// Product returns a single product by id.
func (h *CatalogHandler) Product(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.BadRequest(c, "product id must be an integer")
		return
	}

	product, err := h.catalog.ProductByID(c.Request.Context(), id)
	if err != nil {
		h.NotFound(c, "product not found")
		return
	}
	h.Success(c, product)
}

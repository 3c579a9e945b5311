package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sheikhstore/storefront/internal/infrastructure/i18n"
)

// LanguageHandler reads and switches the shop's language preference.
type LanguageHandler struct {
	BaseHandler
	i18n *i18n.Manager
}

// NewLanguageHandler creates a new LanguageHandler
func NewLanguageHandler(langs *i18n.Manager) *LanguageHandler {
	return &LanguageHandler{i18n: langs}
}

// RegisterRoutes registers language routes
func (h *LanguageHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/language", h.Get)
	rg.PUT("/language", h.Set)
}

// Get returns the active language.
func (h *LanguageHandler) Get(c *gin.Context) {
	h.Success(c, gin.H{"language": h.i18n.Language()})
}

type setLanguageRequest struct {
	Language string `json:"language" binding:"required"`
}

// Set switches the active language. Unsupported preferences resolve to
// the closest supported language rather than failing.
func (h *LanguageHandler) Set(c *gin.Context) {
	var req setLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "language is required")
		return
	}
	applied := h.i18n.SetLanguage(c.Request.Context(), req.Language)
	h.Success(c, gin.H{"language": applied})
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"addressbook-backend/internal/domains/menu"
)

type MenuHandler struct{}

func NewMenuHandler() *MenuHandler {
	return &MenuHandler{}
}

// GetMenu handles GET /menu. The menu is public and returned as a bare
// array, not wrapped in the success envelope.
func (h *MenuHandler) GetMenu(c *gin.Context) {
	c.JSON(http.StatusOK, menu.Items())
}

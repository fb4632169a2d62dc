package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"edustore-service/internal/services"
	"edustore-service/pkg/common"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
}

func NewCatalogHandler(catalog *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{Catalog: catalog}
}

func (h *CatalogHandler) ListCourses(c *gin.Context) {
	courses, err := h.Catalog.ListCourses()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(courses, "Courses fetched successfully"))
}

func (h *CatalogHandler) ListEbooks(c *gin.Context) {
	ebooks, err := h.Catalog.ListEbooks()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(ebooks, "Ebooks fetched successfully"))
}

func (h *CatalogHandler) GetItem(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid item id", nil, http.StatusBadRequest))
		return
	}

	item, err := h.Catalog.GetItem(itemID, c.Param("type"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(item, "Item fetched successfully"))
}

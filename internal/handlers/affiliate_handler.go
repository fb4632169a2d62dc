package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"edustore-service/internal/services"
	"edustore-service/pkg/common"
)

type AffiliateHandler struct {
	Affiliates *services.AffiliateService
	Dashboards *services.DashboardService
}

func NewAffiliateHandler(affiliates *services.AffiliateService, dashboards *services.DashboardService) *AffiliateHandler {
	return &AffiliateHandler{Affiliates: affiliates, Dashboards: dashboards}
}

type createLinkRequest struct {
	ItemID   int    `json:"item_id" binding:"required"`
	ItemType string `json:"item_type" binding:"required"`
}

func (h *AffiliateHandler) CreateLink(c *gin.Context) {
	var req createLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	link, err := h.Affiliates.CreateLink(c.GetInt("user_id"), req.ItemID, req.ItemType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(link, "Affiliate link ready"))
}

// RecordClick is the public tracking endpoint affiliate URLs land on.
func (h *AffiliateHandler) RecordClick(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid item id", nil, http.StatusBadRequest))
		return
	}

	if _, err := h.Affiliates.RecordClick(c.Param("refCode"), itemID, c.Param("type")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(nil, "Click recorded"))
}

func (h *AffiliateHandler) Dashboard(c *gin.Context) {
	dash, err := h.Dashboards.GetAffiliateDashboard(c.GetInt("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(dash, "Dashboard fetched successfully"))
}

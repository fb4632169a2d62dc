package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"edustore-service/internal/services"
	"edustore-service/pkg/common"
)

type AdminHandler struct {
	Users      *services.UserService
	Dashboards *services.DashboardService
	Settlement *services.SettlementService
}

func NewAdminHandler(users *services.UserService, dashboards *services.DashboardService, settlement *services.SettlementService) *AdminHandler {
	return &AdminHandler{Users: users, Dashboards: dashboards, Settlement: settlement}
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	dash, err := h.Dashboards.GetAdminDashboard()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(dash, "Dashboard fetched successfully"))
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	res, err := h.Users.ListUsers(page, limit, c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type createPurchaseRequest struct {
	BuyerUserID     *int   `json:"buyer_user_id"`
	ItemID          int    `json:"item_id" binding:"required"`
	ItemType        string `json:"item_type" binding:"required"`
	ReferrerRefCode string `json:"referrer_ref_code"`
}

// CreatePurchase settles a sale that happened outside the gateway, for
// example a payment collected manually.
func (h *AdminHandler) CreatePurchase(c *gin.Context) {
	var req createPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	purchase, err := h.Settlement.AdminCreatePurchase(services.AdminPurchaseDTO{
		BuyerUserID:     req.BuyerUserID,
		ItemID:          req.ItemID,
		ItemType:        req.ItemType,
		ReferrerRefCode: req.ReferrerRefCode,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, common.NewSuccessResponse(purchase, "Purchase created"))
}

type attachBuyerRequest struct {
	BuyerUserID int `json:"buyer_user_id" binding:"required"`
}

func (h *AdminHandler) AttachBuyer(c *gin.Context) {
	purchaseID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid purchase id", nil, http.StatusBadRequest))
		return
	}

	var req attachBuyerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	purchase, err := h.Settlement.AttachBuyer(purchaseID, req.BuyerUserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(purchase, "Buyer attached"))
}

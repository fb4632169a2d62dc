package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"edustore-service/internal/services"
	"edustore-service/pkg/common"
)

type CheckoutHandler struct {
	CheckoutSvc *services.CheckoutService
	Settlement *services.SettlementService
}

func NewCheckoutHandler(checkout *services.CheckoutService, settlement *services.SettlementService) *CheckoutHandler {
	return &CheckoutHandler{CheckoutSvc: checkout, Settlement: settlement}
}

func (h *CheckoutHandler) GetCheckoutPage(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid item id", nil, http.StatusBadRequest))
		return
	}

	page, err := h.CheckoutSvc.GetCheckoutPage(itemID, c.Param("type"), c.Query("buyer"), c.Query("ref"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(page, "Checkout page fetched successfully"))
}

type checkoutRequest struct {
	ItemID          int    `json:"item_id" binding:"required"`
	ItemType        string `json:"item_type" binding:"required"`
	ReferrerRefCode string `json:"referrer_ref_code"`
	CouponCode      string `json:"coupon_code"`

	BuyerRefCode string `json:"buyer_ref_code"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Password     string `json:"password"`
}

func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}
	if req.BuyerRefCode == "" && (req.Email == "" || req.Password == "") {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Either buyer_ref_code or registration details are required", nil, http.StatusBadRequest))
		return
	}

	order, err := h.CheckoutSvc.Checkout(services.CheckoutDTO{
		ItemID:          req.ItemID,
		ItemType:        req.ItemType,
		ReferrerRefCode: req.ReferrerRefCode,
		CouponCode:      req.CouponCode,
		BuyerRefCode:    req.BuyerRefCode,
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Password:        req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(order, "Order created successfully"))
}

func (h *CheckoutHandler) PaymentStatus(c *gin.Context) {
	status := h.CheckoutSvc.PaymentStatus(c.Param("orderId"))
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"status": status}, "Payment status fetched successfully"))
}

// Webhook receives gateway deliveries. The raw body is read before any JSON
// binding because the signature covers the exact bytes on the wire.
func (h *CheckoutHandler) Webhook(c *gin.Context) {
	rawBody, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Unreadable body", nil, http.StatusBadRequest))
		return
	}

	result, err := h.Settlement.HandleWebhook(rawBody, c.GetHeader("X-Razorpay-Signature"))
	if err == services.ErrSignatureInvalid {
		c.JSON(http.StatusUnauthorized, common.NewErrorResponse("Invalid signature", result, http.StatusUnauthorized))
		return
	}
	if err != nil {
		// The gateway retries on non-2xx; settlement rolled back, so a retry
		// is exactly what we want.
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Settlement failed", result, http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(result, "Webhook processed"))
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"edustore-service/internal/services"
	"edustore-service/pkg/common"
)

type WithdrawalHandler struct {
	Withdrawals *services.WithdrawalService
	Users       *services.UserService
}

func NewWithdrawalHandler(withdrawals *services.WithdrawalService, users *services.UserService) *WithdrawalHandler {
	return &WithdrawalHandler{Withdrawals: withdrawals, Users: users}
}

type withdrawRequest struct {
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Destination string  `json:"destination" binding:"required,oneof=bank upi"`

	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	IFSCCode      string `json:"ifsc_code"`
	AccountName   string `json:"account_name"`

	UPIID string `json:"upi_id"`
}

func (h *WithdrawalHandler) Request(c *gin.Context) {
	var req withdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}
	if req.Destination == "bank" && req.AccountNumber == "" {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Bank account details required", nil, http.StatusBadRequest))
		return
	}
	if req.Destination == "upi" && req.UPIID == "" {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("UPI id required", nil, http.StatusBadRequest))
		return
	}

	withdrawal, err := h.Withdrawals.RequestWithdrawal(services.WithdrawRequestDTO{
		UserID:        c.GetInt("user_id"),
		Amount:        req.Amount,
		Destination:   req.Destination,
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		IFSCCode:      req.IFSCCode,
		AccountName:   req.AccountName,
		UPIID:         req.UPIID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, common.NewSuccessResponse(withdrawal, "Withdrawal requested"))
}

func (h *WithdrawalHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	res, err := h.Withdrawals.ListWithdrawals(services.ListWithdrawalsDTO{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type resolveRequest struct {
	Status      string `json:"status" binding:"required,oneof=success failed"`
	Explanation string `json:"explanation"`
}

func (h *WithdrawalHandler) Resolve(c *gin.Context) {
	withdrawalID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid withdrawal id", nil, http.StatusBadRequest))
		return
	}

	var req resolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	updatedBy := ""
	if admin, err := h.Users.GetByID(c.GetInt("user_id")); err == nil {
		updatedBy = admin.Email
	}

	withdrawal, err := h.Withdrawals.ResolveWithdrawal(services.ResolveWithdrawalDTO{
		WithdrawalID: withdrawalID,
		Status:       req.Status,
		Explanation:  req.Explanation,
		UpdatedBy:    updatedBy,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(withdrawal, "Withdrawal resolved"))
}

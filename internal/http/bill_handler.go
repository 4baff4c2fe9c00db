package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"footfall-service/internal/http/middleware"
	"footfall-service/internal/service"
)

func (h *Handler) recordBill(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		BranchID  string  `json:"branch_id"`
		Period    string  `json:"period" binding:"required,period"`
		Slot      string  `json:"slot" binding:"required"`
		BillCount *int    `json:"bill_count" binding:"required,min=0"`
		Note      *string `json:"note"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	bill, err := h.billService.Record(c.Request.Context(), principal, service.RecordBillInput{
		BranchID:  req.BranchID,
		Period:    req.Period,
		Slot:      req.Slot,
		BillCount: *req.BillCount,
		Note:      req.Note,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(bill))
}

func (h *Handler) undoLastBill(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	bill, err := h.billService.UndoLast(c.Request.Context(), principal, c.Query("branch_id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(bill))
}

func (h *Handler) todayBills(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	today, err := h.billService.Today(c.Request.Context(), principal, c.Query("branch_id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(today))
}

package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"footfall-service/internal/http/middleware"
	"footfall-service/internal/model"
	"footfall-service/internal/service"
)

func (h *Handler) recordEvent(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		BranchID  string  `json:"branch_id"`
		Group     string  `json:"group" binding:"required,event_group"`
		Type      string  `json:"type" binding:"required"`
		Direction *string `json:"direction" binding:"omitempty,oneof=left right"`
		Cups      int     `json:"cups" binding:"min=0"`
		Age       string  `json:"age" binding:"max=32"`
		Career    string  `json:"career" binding:"max=100"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	event, err := h.trackerService.Record(c.Request.Context(), principal, service.RecordEventInput{
		BranchID:  req.BranchID,
		Group:     model.EventGroup(req.Group),
		Type:      strings.TrimSpace(req.Type),
		Direction: req.Direction,
		Cups:      req.Cups,
		Age:       req.Age,
		Career:    req.Career,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(event))
}

func (h *Handler) undoLastEvent(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	event, err := h.trackerService.UndoLast(c.Request.Context(), principal, c.Query("branch_id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(event))
}

func (h *Handler) liveTally(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	live, err := h.trackerService.Live(c.Request.Context(), principal, c.Query("branch_id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(live))
}

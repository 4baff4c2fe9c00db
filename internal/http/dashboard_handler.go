package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"footfall-service/internal/http/middleware"
	"footfall-service/internal/service"
)

func (h *Handler) dashboardSummary(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	// branches may be repeated or comma separated
	var branches []string
	for _, raw := range c.QueryArray("branches") {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				branches = append(branches, id)
			}
		}
	}

	summary, err := h.dashboardService.Summary(c.Request.Context(), principal, service.DashboardQuery{
		Branches: branches,
		Date:     c.Query("date"),
		Period:   c.Query("period"),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(summary))
}

func (h *Handler) getFigures(c *gin.Context) {
	figures, err := h.dashboardService.Figures(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(figures))
}

func (h *Handler) updateFigures(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		AsOf      *string `json:"as_of"`
		AvgStores *int    `json:"avg_stores" binding:"omitempty,min=0"`
		CompareTo *string `json:"compare_to"`
		TC7       *int    `json:"tc7"`
		TC7Delta  *int    `json:"tc7_delta"`
		TCCJ      *int    `json:"tccj"`
		TCCJDelta *int    `json:"tccj_delta"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	figures, err := h.dashboardService.UpdateFigures(c.Request.Context(), principal, service.FiguresPatch{
		AsOf:      req.AsOf,
		AvgStores: req.AvgStores,
		CompareTo: req.CompareTo,
		TC7:       req.TC7,
		TC7Delta:  req.TC7Delta,
		TCCJ:      req.TCCJ,
		TCCJDelta: req.TCCJDelta,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(figures))
}

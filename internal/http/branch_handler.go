package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"footfall-service/internal/http/middleware"
	"footfall-service/internal/service"
)

type branchRequest struct {
	ID           string `json:"id" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Province     string `json:"province"`
	District     string `json:"district"`
	Competitor   string `json:"competitor"`
	CompetitorID string `json:"competitor_id"`
	Staff        string `json:"staff"`
}

func (r branchRequest) input() service.BranchInput {
	return service.BranchInput{
		ID:           r.ID,
		Name:         r.Name,
		Province:     r.Province,
		District:     r.District,
		Competitor:   r.Competitor,
		CompetitorID: r.CompetitorID,
		Staff:        r.Staff,
	}
}

func (h *Handler) listBranches(c *gin.Context) {
	branches, err := h.branchService.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(branches))
}

func (h *Handler) getBranch(c *gin.Context) {
	branch, err := h.branchService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(branch))
}

func (h *Handler) createBranch(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req branchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	branch, err := h.branchService.Create(c.Request.Context(), principal, req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(branch))
}

func (h *Handler) updateBranch(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid branch id"))
		return
	}

	var req branchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	branch, err := h.branchService.Update(c.Request.Context(), principal, id, req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(branch))
}

func (h *Handler) deleteBranch(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	if err := h.branchService.Delete(c.Request.Context(), principal, c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

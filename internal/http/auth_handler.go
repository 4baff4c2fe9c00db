package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"footfall-service/internal/http/middleware"
	"footfall-service/internal/service"
	"footfall-service/internal/timeslot"
)

func (h *Handler) login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	result, err := h.authService.Login(c.Request.Context(), service.LoginInput{
		Username:  req.Username,
		Password:  req.Password,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.log.Info().Str("username", result.User.Username).Str("role", string(result.User.Role)).Msg("user logged in")
	c.JSON(http.StatusOK, successResponse(result))
}

func (h *Handler) logout(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	if err := h.authService.Logout(c.Request.Context(), principal); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) changePassword(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		NewPassword     string `json:"new_password" binding:"required"`
		ConfirmPassword string `json:"confirm_password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	err := h.authService.ChangePassword(c.Request.Context(), principal, service.ChangePasswordInput{
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"message": "password changed"}))
}

func (h *Handler) me(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{
		"username": principal.Username,
		"role":     principal.Role,
		"branch":   principal.Branch,
	}))
}

func (h *Handler) listPeriods(c *gin.Context) {
	type slot struct {
		Start string `json:"start"`
		End   string `json:"end"`
		Label string `json:"label"`
	}
	type period struct {
		Name  string `json:"name"`
		Slots []slot `json:"slots"`
	}

	table := timeslot.Periods()
	if c.Query("kind") == "bill" {
		table = timeslot.BillPeriods()
	}
	result := make([]period, 0, len(table))
	for _, p := range table {
		item := period{Name: p.Name, Slots: make([]slot, 0, len(p.Slots))}
		for _, r := range p.Slots {
			item.Slots = append(item.Slots, slot{Start: r.Start, End: r.End, Label: r.Label()})
		}
		result = append(result, item)
	}

	c.JSON(http.StatusOK, successResponse(result))
}

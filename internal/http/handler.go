package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"footfall-service/internal/service"
)

type Handler struct {
	authService      *service.AuthService
	userService      *service.UserService
	branchService    *service.BranchService
	trackerService   *service.TrackerService
	billService      *service.BillService
	dashboardService *service.DashboardService
	log              zerolog.Logger
}

func NewHandler(
	authService *service.AuthService,
	userService *service.UserService,
	branchService *service.BranchService,
	trackerService *service.TrackerService,
	billService *service.BillService,
	dashboardService *service.DashboardService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		authService:      authService,
		userService:      userService,
		branchService:    branchService,
		trackerService:   trackerService,
		billService:      billService,
		dashboardService: dashboardService,
		log:              log,
	}
}

func (h *Handler) Register(r *gin.Engine, authMiddleware gin.HandlerFunc) {
	r.POST("/auth/login", h.login)

	protected := r.Group("/")
	protected.Use(authMiddleware)

	protected.GET("/me", h.me)
	protected.GET("/periods", h.listPeriods)

	authGroup := protected.Group("/auth")
	{
		authGroup.POST("/logout", h.logout)
		authGroup.POST("/change-password", h.changePassword)
	}

	users := protected.Group("/users")
	{
		users.GET("", h.listUsers)
		users.POST("", h.createUser)
		users.DELETE("/:username", h.deleteUser)
	}

	branches := protected.Group("/branches")
	{
		branches.GET("", h.listBranches)
		branches.GET("/:id", h.getBranch)
		branches.POST("", h.createBranch)
		branches.PUT("/:id", h.updateBranch)
		branches.DELETE("/:id", h.deleteBranch)
	}

	traffic := protected.Group("/traffic")
	{
		traffic.POST("", h.recordEvent)
		traffic.DELETE("/last", h.undoLastEvent)
		traffic.GET("/live", h.liveTally)
	}

	bills := protected.Group("/bills")
	{
		bills.POST("", h.recordBill)
		bills.DELETE("/last", h.undoLastBill)
		bills.GET("/today", h.todayBills)
	}

	dashboard := protected.Group("/dashboard")
	{
		dashboard.GET("", h.dashboardSummary)
		dashboard.GET("/figures", h.getFigures)
		dashboard.PATCH("/figures", h.updateFigures)
	}
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, errorResponse(err.Error()))
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, errorResponse(err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func successResponse(data interface{}) gin.H {
	return gin.H{
		"data": data,
	}
}

func errorResponse(message string) gin.H {
	return gin.H{
		"error": message,
	}
}

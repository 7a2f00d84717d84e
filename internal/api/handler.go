package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wanderplan/server/internal/models"
	"github.com/wanderplan/server/internal/service"
)

// Handler holds the service and exposes HTTP handlers
type Handler struct {
	svc service.Service
}

// NewHandler creates a new API handler
func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

// SetupRoutes registers all API routes on the router
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.GET("/health", h.Health)

	auth := router.Group("/api/auth")
	{
		auth.POST("/signup", h.SignUp)
		auth.POST("/login", h.Login)
	}

	api := router.Group("/api")
	api.Use(AuthMiddleware())
	{
		api.POST("/trips", h.CreateTrip)
		api.GET("/trips", h.GetUserTrips)
		api.GET("/trips/:tripId", h.GetTrip)
		api.DELETE("/trips/:tripId", h.DeleteTrip)

		api.POST("/trips/:tripId/members", h.AddMember)
		api.GET("/trips/:tripId/members", h.GetMembers)
		api.PUT("/trips/:tripId/members/:userId/budget", h.SaveBudget)
		api.POST("/trips/:tripId/members/:userId/budget/increase", h.IncreaseBudget)

		api.POST("/trips/:tripId/events", h.CreateEvent)
		api.GET("/trips/:tripId/events", h.GetEvents)
		api.DELETE("/trips/:tripId/events/:eventId", h.DeleteEvent)

		api.GET("/trips/:tripId/budget", h.GetBudget)
		api.POST("/trips/:tripId/budget/expenses", h.AddExpense)
		api.PUT("/trips/:tripId/budget/expenses/:expenseId", h.UpdateExpense)
		api.DELETE("/trips/:tripId/budget/expenses/:expenseId", h.DeleteExpense)

		api.POST("/trips/:tripId/budget/settlements", h.RecordSettlement)
		api.POST("/trips/:tripId/budget/settlements/:settlementId/confirm", h.ConfirmSettlement)
		api.POST("/trips/:tripId/budget/settlements/:settlementId/decline", h.DeclineSettlement)
	}
}

// Health is a liveness endpoint
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, models.MessageResponse{Status: "success", Message: "ok"})
}

// Authentication handlers

func (h *Handler) SignUp(c *gin.Context) {
	var req models.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.svc.SignUp(c.Request.Context(), req)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Trip handlers

func (h *Handler) CreateTrip(c *gin.Context) {
	var req models.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	trip, err := h.svc.CreateTrip(c.Request.Context(), userID(c), req)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.TripResponse{Status: "success", Trip: trip})
}

func (h *Handler) GetUserTrips(c *gin.Context) {
	trips, err := h.svc.GetUserTrips(c.Request.Context(), userID(c))
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.TripListResponse{Status: "success", Trips: trips})
}

func (h *Handler) GetTrip(c *gin.Context) {
	trip, err := h.svc.GetTrip(c.Request.Context(), userID(c), c.Param("tripId"))
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.TripResponse{Status: "success", Trip: trip})
}

func (h *Handler) DeleteTrip(c *gin.Context) {
	if err := h.svc.DeleteTrip(c.Request.Context(), userID(c), c.Param("tripId")); err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Status: "success", Message: "Trip deleted"})
}

// Membership handlers

func (h *Handler) AddMember(c *gin.Context) {
	var req models.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	member, err := h.svc.AddMember(c.Request.Context(), userID(c), c.Param("tripId"), req)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "member": member})
}

func (h *Handler) GetMembers(c *gin.Context) {
	members, err := h.svc.GetMembers(c.Request.Context(), userID(c), c.Param("tripId"))
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MemberListResponse{Status: "success", Members: members})
}

func (h *Handler) SaveBudget(c *gin.Context) {
	var req models.UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	targetID := c.Param("userId")
	if err := h.svc.SaveBudget(c.Request.Context(), userID(c), c.Param("tripId"), targetID, *req.Budget); err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.BudgetGoalResponse{
		Status: "success",
		UserID: targetID,
		Budget: *req.Budget,
	})
}

func (h *Handler) IncreaseBudget(c *gin.Context) {
	targetID := c.Param("userId")
	budget, err := h.svc.IncreaseBudget(c.Request.Context(), userID(c), c.Param("tripId"), targetID)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.BudgetGoalResponse{
		Status: "success",
		UserID: targetID,
		Budget: budget,
	})
}

// Itinerary event handlers

func (h *Handler) CreateEvent(c *gin.Context) {
	var req models.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	event, err := h.svc.CreateEvent(c.Request.Context(), userID(c), c.Param("tripId"), req)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.EventResponse{Status: "success", Event: event})
}

func (h *Handler) GetEvents(c *gin.Context) {
	events, err := h.svc.GetEvents(c.Request.Context(), userID(c), c.Param("tripId"))
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.EventListResponse{Status: "success", Events: events})
}

func (h *Handler) DeleteEvent(c *gin.Context) {
	if err := h.svc.DeleteEvent(c.Request.Context(), userID(c), c.Param("tripId"), c.Param("eventId")); err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Status: "success", Message: "Event deleted"})
}

// Budget handlers

func (h *Handler) GetBudget(c *gin.Context) {
	resp, err := h.svc.GetBudget(c.Request.Context(), userID(c), c.Param("tripId"))
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) AddExpense(c *gin.Context) {
	var req models.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	expense, err := h.svc.AddExpense(c.Request.Context(), userID(c), c.Param("tripId"), req)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.ExpenseResponse{Status: "success", Expense: expense})
}

func (h *Handler) UpdateExpense(c *gin.Context) {
	var req models.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	expense, err := h.svc.UpdateExpense(c.Request.Context(), userID(c), c.Param("tripId"), c.Param("expenseId"), req)
	if err != nil {
		serviceError(c, err)
		return
	}

	// A nil expense means the id was unknown; the update is a tolerated no-op.
	c.JSON(http.StatusOK, models.ExpenseResponse{Status: "success", Expense: expense})
}

func (h *Handler) DeleteExpense(c *gin.Context) {
	if err := h.svc.DeleteExpense(c.Request.Context(), userID(c), c.Param("tripId"), c.Param("expenseId")); err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Status: "success", Message: "Expense deleted"})
}

// Settlement handlers

func (h *Handler) RecordSettlement(c *gin.Context) {
	var req models.SettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	settlement, err := h.svc.RecordSettlement(c.Request.Context(), userID(c), c.Param("tripId"), req)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.SettlementResponse{Status: "success", Settlement: settlement})
}

func (h *Handler) ConfirmSettlement(c *gin.Context) {
	err := h.svc.ConfirmSettlement(c.Request.Context(), userID(c), c.Param("tripId"), c.Param("settlementId"))
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Status: "success", Message: "Settlement confirmed"})
}

func (h *Handler) DeclineSettlement(c *gin.Context) {
	err := h.svc.DeclineSettlement(c.Request.Context(), userID(c), c.Param("tripId"), c.Param("settlementId"))
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Status: "success", Message: "Settlement declined"})
}

// Helpers

func userID(c *gin.Context) string {
	return c.MustGet("userId").(string)
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Status:  "error",
		Code:    "BAD_REQUEST",
		Message: err.Error(),
	})
}

// serviceError maps service sentinel errors to HTTP status codes
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalid):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Status: "error", Code: "BAD_REQUEST", Message: err.Error(),
		})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Status: "error", Code: "UNAUTHORIZED", Message: err.Error(),
		})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, models.ErrorResponse{
			Status: "error", Code: "FORBIDDEN", Message: err.Error(),
		})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Status: "error", Code: "NOT_FOUND", Message: err.Error(),
		})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Status: "error", Code: "CONFLICT", Message: err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Status: "error", Code: "INTERNAL_ERROR", Message: "An unexpected error occurred",
		})
	}
}

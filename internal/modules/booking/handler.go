package booking

import (
	"net/http"

	"carrental/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the public booking routes. Mount them behind
// OptionalAuth so back-office callers get the unredacted booking.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.CreateBooking)
	rg.GET("/bookings/:id", h.GetBooking)
	rg.GET("/vehicles/:id/availability", h.CheckAvailability)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	summary, err := h.service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, summary)
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}

	summary, err := h.service.GetBooking(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if c.GetString("role") == "" {
		response.Success(c, http.StatusOK, summary.Public())
		return
	}
	response.Success(c, http.StatusOK, summary)
}

func (h *Handler) CheckAvailability(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}

	var req AvailabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "startDate and endDate are required")
		return
	}

	availability, err := h.service.CheckAvailability(c.Request.Context(), id, req.StartDate, req.EndDate)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, availability)
}

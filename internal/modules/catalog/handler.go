package catalog

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

// RegisterRoutes mounts the public catalog.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/vehicles", h.ListVehicles)
	rg.GET("/vehicles/:id", h.GetVehicle)
}

// RegisterAdminRoutes mounts fleet management; the caller applies the admin guard.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/vehicles", h.ListFleet)
	rg.POST("/vehicles", h.CreateVehicle)
	rg.PATCH("/vehicles/:id", h.UpdateVehicle)
	rg.DELETE("/vehicles/:id", h.DecommissionVehicle)
}

func (h *Handler) ListVehicles(c *gin.Context) {
	h.list(c, false)
}

func (h *Handler) ListFleet(c *gin.Context) {
	h.list(c, true)
}

func (h *Handler) list(c *gin.Context, includeRetired bool) {
	var req ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	vehicles, total, err := h.service.ListVehicles(c.Request.Context(), req, includeRetired)
	if err != nil {
		response.FromError(c, err)
		return
	}
	p := req.Normalize()
	response.Paged(c, vehicles, total, p.Page, p.Limit)
}

func (h *Handler) GetVehicle(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}

	vehicle, err := h.service.GetVehicle(c.Request.Context(), id, false)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, vehicle)
}

func (h *Handler) CreateVehicle(c *gin.Context) {
	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	vehicle, err := h.service.CreateVehicle(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, vehicle)
}

func (h *Handler) UpdateVehicle(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}

	var req UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	vehicle, err := h.service.UpdateVehicle(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, vehicle)
}

func (h *Handler) DecommissionVehicle(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}

	vehicle, err := h.service.DecommissionVehicle(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, vehicle)
}

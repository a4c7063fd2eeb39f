package rental

import (
	"net/http"

	"carrental/internal/middleware"
	"carrental/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the staff back-office routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/rentals", h.List)
	rg.GET("/rentals/:id", h.Get)
	rg.PATCH("/rentals/:id", h.Update)
	rg.POST("/rentals/:id/transition", h.Transition)
	rg.GET("/rentals/:id/audit", h.Audit)
}

// RegisterAdminRoutes mounts the admin-only audit feed.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/audit", h.AuditFeed)
}

func (h *Handler) List(c *gin.Context) {
	var req ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	views, total, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	p := req.Normalize()
	response.Paged(c, views, total, p.Page, p.Limit)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}

	view, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	r, err := h.service.Update(c.Request.Context(), id, req, middleware.ActorID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, r)
}

func (h *Handler) Transition(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	r, err := h.service.Transition(c.Request.Context(), id, req.Status, middleware.ActorID(c), req.Note)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, r)
}

func (h *Handler) Audit(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}

	rows, err := h.service.Audit(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rows)
}

func (h *Handler) AuditFeed(c *gin.Context) {
	var req ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	rows, total, err := h.service.AuditFeed(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	p := req.Normalize()
	response.Paged(c, rows, total, p.Page, p.Limit)
}

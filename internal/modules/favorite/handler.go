package favorite

import (
	"errors"
	"net/http"
	"strconv"

	"staybook/internal/middleware"
	"staybook/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/favorites", h.List)
	rg.POST("/favorites/:propertyId", h.Add)
	rg.DELETE("/favorites/:propertyId", h.Remove)
}

func (h *Handler) Add(c *gin.Context) {
	propertyID, ok := paramPropertyID(c)
	if !ok {
		return
	}

	actor := middleware.ActorFrom(c)
	f, err := h.service.Add(c.Request.Context(), actor.ID, propertyID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"favorite": f})
}

func (h *Handler) Remove(c *gin.Context) {
	propertyID, ok := paramPropertyID(c)
	if !ok {
		return
	}

	actor := middleware.ActorFrom(c)
	if err := h.service.Remove(c.Request.Context(), actor.ID, propertyID); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"removed": true})
}

func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	actor := middleware.ActorFrom(c)
	items, total, err := h.service.List(c.Request.Context(), actor.ID, limit, offset)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"items": items,
		"total": total,
	})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrPropertyNotFound):
		response.Error(c, http.StatusNotFound, "PROPERTY_NOT_FOUND", "Property not found")
	case errors.Is(err, ErrAlreadySaved):
		response.Error(c, http.StatusConflict, "ALREADY_FAVORITE", "Property already in favorites")
	case errors.Is(err, ErrNotSaved):
		response.Error(c, http.StatusNotFound, "FAVORITE_NOT_FOUND", "Property not in favorites")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process favorites request")
	}
}

func paramPropertyID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("propertyId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid property ID")
		return 0, false
	}
	return id, true
}

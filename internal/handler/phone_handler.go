package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/phone_price_api/internal/models"
	"github.com/GTDGit/phone_price_api/internal/service"
	"github.com/GTDGit/phone_price_api/internal/utils"
)

type phoneService interface {
	List(ctx context.Context, skip, limit int) ([]models.Phone, error)
	Get(ctx context.Context, id int) (*models.Phone, error)
	Create(ctx context.Context, req *service.CreatePhoneRequest) (*models.Phone, error)
	Update(ctx context.Context, id int, req *service.UpdatePhoneRequest) (*models.Phone, error)
	Delete(ctx context.Context, id int) error
}

// PhoneHandler handles phone CRUD endpoints.
type PhoneHandler struct {
	phoneService phoneService
}

// NewPhoneHandler constructs a PhoneHandler.
func NewPhoneHandler(phoneService phoneService) *PhoneHandler {
	return &PhoneHandler{phoneService: phoneService}
}

// ListPhones handles GET /v1/phones
func (h *PhoneHandler) ListPhones(c *gin.Context) {
	skip, limit, ok := parsePage(c)
	if !ok {
		return
	}
	phones, err := h.phoneService.List(c.Request.Context(), skip, limit)
	if err != nil {
		respondError(c, err, "Failed to retrieve phones")
		return
	}
	utils.SuccessWithPagination(c, 200, "Phones retrieved", phones, skip, limit, len(phones))
}

// GetPhone handles GET /v1/phones/:id
func (h *PhoneHandler) GetPhone(c *gin.Context) {
	id, ok := parseID(c, "id", "phone")
	if !ok {
		return
	}
	phone, err := h.phoneService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to retrieve phone")
		return
	}
	utils.Success(c, 200, "Phone retrieved", phone)
}

// CreatePhone handles POST /v1/admin/phones
func (h *PhoneHandler) CreatePhone(c *gin.Context) {
	var req service.CreatePhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}
	phone, err := h.phoneService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create phone")
		return
	}
	utils.Success(c, 201, "Phone created successfully", phone)
}

// UpdatePhone handles PUT /v1/admin/phones/:id
func (h *PhoneHandler) UpdatePhone(c *gin.Context) {
	id, ok := parseID(c, "id", "phone")
	if !ok {
		return
	}
	var req service.UpdatePhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}
	phone, err := h.phoneService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "Failed to update phone")
		return
	}
	utils.Success(c, 200, "Phone updated successfully", phone)
}

// DeletePhone handles DELETE /v1/admin/phones/:id
func (h *PhoneHandler) DeletePhone(c *gin.Context) {
	id, ok := parseID(c, "id", "phone")
	if !ok {
		return
	}
	if err := h.phoneService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete phone")
		return
	}
	utils.Success(c, 200, "Phone deleted successfully", nil)
}

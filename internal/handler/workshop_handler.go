package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ailyedu2030/cet4-gateway/internal/models"
	"github.com/ailyedu2030/cet4-gateway/internal/service"
	appErrors "github.com/ailyedu2030/cet4-gateway/pkg/errors"
	"github.com/ailyedu2030/cet4-gateway/pkg/response"
)

// WorkshopHandler exposes the training-workshop configuration endpoints.
type WorkshopHandler struct {
	workshops *service.WorkshopService
}

// NewWorkshopHandler constructs WorkshopHandler.
func NewWorkshopHandler(workshops *service.WorkshopService) *WorkshopHandler {
	return &WorkshopHandler{workshops: workshops}
}

// GetConfig godoc
// @Summary Get workshop stage configuration
// @Tags Workshops
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /workshops/config [get]
func (h *WorkshopHandler) GetConfig(c *gin.Context) {
	cfg, err := h.workshops.GetConfig(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cfg, nil)
}

// UpdateConfig godoc
// @Summary Replace workshop stage configuration
// @Tags Workshops
// @Accept json
// @Produce json
// @Param payload body models.WorkshopConfig true "Stage configuration"
// @Success 200 {object} response.Envelope
// @Router /workshops/config [put]
func (h *WorkshopHandler) UpdateConfig(c *gin.Context) {
	var cfg models.WorkshopConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	if err := h.workshops.UpdateConfig(c.Request.Context(), cfg); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cfg, nil)
}

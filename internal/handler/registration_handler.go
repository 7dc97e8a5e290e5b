package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ailyedu2030/cet4-gateway/internal/models"
	"github.com/ailyedu2030/cet4-gateway/internal/service"
	appErrors "github.com/ailyedu2030/cet4-gateway/pkg/errors"
	"github.com/ailyedu2030/cet4-gateway/pkg/response"
)

// RegistrationHandler exposes the student registration review queue.
type RegistrationHandler struct {
	registrations *service.RegistrationService
}

// NewRegistrationHandler constructs RegistrationHandler.
func NewRegistrationHandler(registrations *service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrations: registrations}
}

// List godoc
// @Summary List registration applications
// @Tags Registrations
// @Produce json
// @Param status query string false "Filter by review state"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /registrations [get]
func (h *RegistrationHandler) List(c *gin.Context) {
	var filter models.ApplicationFilter
	filter.Status = c.Query("status")
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.Size = size
	}

	items, pagination, err := h.registrations.ListApplications(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Review godoc
// @Summary Review a single application
// @Tags Registrations
// @Accept json
// @Produce json
// @Param id path int true "Application ID"
// @Param payload body models.ReviewRequest true "Review decision"
// @Success 200 {object} response.Envelope
// @Router /registrations/{id}/review [post]
func (h *RegistrationHandler) Review(c *gin.Context) {
	applicationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid application id"))
		return
	}

	var req models.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	if err := h.registrations.Review(c.Request.Context(), applicationID, req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"reviewed": true}, nil)
}

// BatchReview godoc
// @Summary Review up to 20 applications at once
// @Tags Registrations
// @Accept json
// @Produce json
// @Param payload body models.BatchReviewRequest true "Batch decision"
// @Success 200 {object} response.Envelope
// @Router /registrations/batch-review [post]
func (h *RegistrationHandler) BatchReview(c *gin.Context) {
	var req models.BatchReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	result, err := h.registrations.BatchReview(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

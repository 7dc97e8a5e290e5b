package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ailyedu2030/cet4-gateway/internal/middleware"
	"github.com/ailyedu2030/cet4-gateway/internal/models"
	"github.com/ailyedu2030/cet4-gateway/internal/service"
	appErrors "github.com/ailyedu2030/cet4-gateway/pkg/errors"
	"github.com/ailyedu2030/cet4-gateway/pkg/response"
)

// ClassroomHandler exposes classroom listing, conflict checking and booking
// endpoints.
type ClassroomHandler struct {
	classrooms *service.ClassroomService
	conflicts  *service.ConflictService
	reports    *service.ReportService
}

// NewClassroomHandler constructs ClassroomHandler. reports may be nil when
// exports are disabled.
func NewClassroomHandler(classrooms *service.ClassroomService, conflicts *service.ConflictService, reports *service.ReportService) *ClassroomHandler {
	return &ClassroomHandler{classrooms: classrooms, conflicts: conflicts, reports: reports}
}

// List godoc
// @Summary List classrooms
// @Tags Classrooms
// @Produce json
// @Param buildingId query int false "Filter by building"
// @Param available query bool false "Filter by availability"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /classrooms [get]
func (h *ClassroomHandler) List(c *gin.Context) {
	var filter models.ClassroomFilter
	if raw := c.Query("buildingId"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.BuildingID = &id
		}
	}
	if raw := c.Query("available"); raw == "true" || raw == "false" {
		v := raw == "true"
		filter.IsAvailable = &v
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.Size = size
	}

	items, pagination, cacheHit, err := h.classrooms.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, items, pagination, middleware.ExtractMeta(c))
}

// Presets godoc
// @Summary List booking time presets
// @Tags Classrooms
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /classrooms/time-presets [get]
func (h *ClassroomHandler) Presets(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.classrooms.Presets(), nil)
}

// CheckConflict godoc
// @Summary One-shot conflict check for a time range
// @Tags Classrooms
// @Accept json
// @Produce json
// @Param payload body models.ConflictCheckRequest true "Conflict check payload"
// @Success 200 {object} response.Envelope
// @Router /classrooms/check-conflict [post]
func (h *ClassroomHandler) CheckConflict(c *gin.Context) {
	var req models.ConflictCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	result, err := h.classrooms.CheckConflict(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// CreateSchedule godoc
// @Summary Book a classroom slot directly
// @Tags Classrooms
// @Accept json
// @Produce json
// @Param payload body models.CreateScheduleRequest true "Schedule payload"
// @Success 201 {object} response.Envelope
// @Router /classrooms/schedules [post]
func (h *ClassroomHandler) CreateSchedule(c *gin.Context) {
	var req models.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	booked, err := h.classrooms.ConfirmSchedule(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, booked)
}

// ExportUsage godoc
// @Summary Export classroom usage report
// @Tags Classrooms
// @Produce text/csv,application/pdf
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Router /classrooms/usage-report [get]
func (h *ClassroomHandler) ExportUsage(c *gin.Context) {
	if h.reports == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "report export is disabled"))
		return
	}

	report, err := h.reports.ExportClassroomUsage(c.Request.Context(), c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+report.FileName+`"`)
	c.Data(http.StatusOK, report.ContentType, report.Content)
}

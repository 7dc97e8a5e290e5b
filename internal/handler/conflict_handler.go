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

// ConflictHandler drives the booking-dialog workflow: open a session,
// adjust the form, probe for conflicts, confirm when clear.
type ConflictHandler struct {
	conflicts *service.ConflictService
}

// NewConflictHandler constructs ConflictHandler.
func NewConflictHandler(conflicts *service.ConflictService) *ConflictHandler {
	return &ConflictHandler{conflicts: conflicts}
}

type openSessionResponse struct {
	SessionID string                      `json:"session_id"`
	Form      models.ConflictCheckRequest `json:"form"`
}

// Open godoc
// @Summary Open a conflict-check session for a classroom
// @Tags Conflicts
// @Produce json
// @Param id path int true "Classroom ID"
// @Success 201 {object} response.Envelope
// @Router /classrooms/{id}/conflict-sessions [post]
func (h *ConflictHandler) Open(c *gin.Context) {
	classroomID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid classroom id"))
		return
	}

	id, form := h.conflicts.Open(classroomID)
	response.Created(c, openSessionResponse{SessionID: id, Form: form})
}

// UpdateForm godoc
// @Summary Update the session form (preset, times, recurrence)
// @Tags Conflicts
// @Accept json
// @Produce json
// @Param sid path string true "Session ID"
// @Param payload body models.ConflictFormUpdate true "Form update"
// @Success 200 {object} response.Envelope
// @Router /conflict-sessions/{sid} [put]
func (h *ConflictHandler) UpdateForm(c *gin.Context) {
	var update models.ConflictFormUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	form, err := h.conflicts.UpdateForm(c.Param("sid"), update)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, form, nil)
}

// Check godoc
// @Summary Run the conflict probe for a session
// @Tags Conflicts
// @Produce json
// @Param sid path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /conflict-sessions/{sid}/check [post]
func (h *ConflictHandler) Check(c *gin.Context) {
	alert, err := h.conflicts.Check(c.Request.Context(), c.Param("sid"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, alert, nil)
}

// State godoc
// @Summary Report whether a session can confirm
// @Tags Conflicts
// @Produce json
// @Param sid path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /conflict-sessions/{sid} [get]
func (h *ConflictHandler) State(c *gin.Context) {
	state, err := h.conflicts.State(c.Param("sid"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, state, nil)
}

type confirmRequest struct {
	Title       string `json:"title" binding:"required"`
	TeacherName string `json:"teacher_name"`
}

// Confirm godoc
// @Summary Confirm the booking held by a clean session
// @Tags Conflicts
// @Accept json
// @Produce json
// @Param sid path string true "Session ID"
// @Param payload body confirmRequest true "Booking details"
// @Success 201 {object} response.Envelope
// @Router /conflict-sessions/{sid}/confirm [post]
func (h *ConflictHandler) Confirm(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	booked, err := h.conflicts.Confirm(c.Request.Context(), c.Param("sid"), req.Title, req.TeacherName)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, booked)
}

// Close godoc
// @Summary Discard a conflict-check session
// @Tags Conflicts
// @Param sid path string true "Session ID"
// @Success 204
// @Router /conflict-sessions/{sid} [delete]
func (h *ConflictHandler) Close(c *gin.Context) {
	h.conflicts.Close(c.Param("sid"))
	response.NoContent(c)
}

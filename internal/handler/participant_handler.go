package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academic-records-api/internal/models"
	"github.com/noah-isme/academic-records-api/internal/service"
	appErrors "github.com/noah-isme/academic-records-api/pkg/errors"
	"github.com/noah-isme/academic-records-api/pkg/response"
)

// ParticipantHandler exposes participant-record endpoints.
type ParticipantHandler struct {
	participants *service.ParticipantService
	dashboard    *service.DashboardService
}

// NewParticipantHandler constructs ParticipantHandler.
func NewParticipantHandler(participants *service.ParticipantService, dashboard *service.DashboardService) *ParticipantHandler {
	return &ParticipantHandler{participants: participants, dashboard: dashboard}
}

// List godoc
// @Summary List participants
// @Tags Students
// @Produce json
// @Param search query string false "Search by id, name or email"
// @Param program query string false "Filter by program"
// @Param deanery query string false "Filter by deanery"
// @Param parish query string false "Filter by parish"
// @Success 200 {object} response.Envelope
// @Router /students [get]
func (h *ParticipantHandler) List(c *gin.Context) {
	filter := models.ParticipantFilter{
		Search:  strings.TrimSpace(c.Query("search")),
		Program: c.Query("program"),
		Deanery: c.Query("deanery"),
		Parish:  c.Query("parish"),
	}
	response.JSON(c, http.StatusOK, h.participants.List(filter), nil)
}

// Get godoc
// @Summary Get participant detail
// @Tags Students
// @Produce json
// @Param id path string true "Participant ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id} [get]
func (h *ParticipantHandler) Get(c *gin.Context) {
	participant, err := h.participants.Get(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, participant, nil)
}

// Create godoc
// @Summary Register a participant
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body service.CreateParticipantRequest true "Participant"
// @Success 201 {object} response.Envelope
// @Router /students [post]
func (h *ParticipantHandler) Create(c *gin.Context) {
	var req service.CreateParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid participant payload"))
		return
	}
	participant, err := h.participants.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.dashboard.Invalidate(c.Request.Context())
	response.Created(c, participant)
}

// Update godoc
// @Summary Update a participant's profile fields
// @Tags Students
// @Accept json
// @Produce json
// @Param id path string true "Participant ID"
// @Param payload body models.ParticipantUpdate true "Fields to update"
// @Success 200 {object} response.Envelope
// @Router /students/{id} [put]
func (h *ParticipantHandler) Update(c *gin.Context) {
	var update models.ParticipantUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid update payload"))
		return
	}
	participant, err := h.participants.Update(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.dashboard.Invalidate(c.Request.Context())
	response.JSON(c, http.StatusOK, participant, nil)
}

// Delete godoc
// @Summary Delete a participant and its embedded enrollments
// @Tags Students
// @Produce json
// @Param id path string true "Participant ID"
// @Success 204
// @Router /students/{id} [delete]
func (h *ParticipantHandler) Delete(c *gin.Context) {
	if err := h.participants.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	h.dashboard.Invalidate(c.Request.Context())
	response.NoContent(c)
}

// GradeHistory godoc
// @Summary Get a participant's semester GPA history
// @Tags Students
// @Produce json
// @Param id path string true "Participant ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/grade-history [get]
func (h *ParticipantHandler) GradeHistory(c *gin.Context) {
	history, err := h.participants.GradeHistory(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, history, nil)
}

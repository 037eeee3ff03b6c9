package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academic-records-api/internal/models"
	"github.com/noah-isme/academic-records-api/internal/service"
	appErrors "github.com/noah-isme/academic-records-api/pkg/errors"
	"github.com/noah-isme/academic-records-api/pkg/response"
)

// ProgramHandler exposes study-program endpoints.
type ProgramHandler struct {
	programs  *service.ProgramService
	dashboard *service.DashboardService
}

// NewProgramHandler constructs ProgramHandler.
func NewProgramHandler(programs *service.ProgramService, dashboard *service.DashboardService) *ProgramHandler {
	return &ProgramHandler{programs: programs, dashboard: dashboard}
}

// List godoc
// @Summary List study programs
// @Tags Programs
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /programs [get]
func (h *ProgramHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.programs.List(), nil)
}

// Get godoc
// @Summary Get one study program
// @Tags Programs
// @Produce json
// @Param name path string true "Program name"
// @Success 200 {object} response.Envelope
// @Router /programs/{name} [get]
func (h *ProgramHandler) Get(c *gin.Context) {
	program, err := h.programs.Get(c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, program, nil)
}

// Create godoc
// @Summary Add a study program
// @Tags Programs
// @Accept json
// @Produce json
// @Param payload body service.CreateProgramRequest true "Program"
// @Success 201 {object} response.Envelope
// @Router /programs [post]
func (h *ProgramHandler) Create(c *gin.Context) {
	var req service.CreateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid program payload"))
		return
	}
	program, err := h.programs.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.dashboard.Invalidate(c.Request.Context())
	response.Created(c, program)
}

// Update godoc
// @Summary Edit a study program
// @Tags Programs
// @Accept json
// @Produce json
// @Param name path string true "Program name"
// @Param payload body models.ProgramUpdate true "Fields to update"
// @Success 200 {object} response.Envelope
// @Router /programs/{name} [put]
func (h *ProgramHandler) Update(c *gin.Context) {
	var update models.ProgramUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid update payload"))
		return
	}
	program, err := h.programs.Update(c.Request.Context(), c.Param("name"), update)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, program, nil)
}

// Delete godoc
// @Summary Delete a study program (blocked while participants reference it)
// @Tags Programs
// @Produce json
// @Param name path string true "Program name"
// @Success 204
// @Failure 409 {object} response.Envelope
// @Router /programs/{name} [delete]
func (h *ProgramHandler) Delete(c *gin.Context) {
	if err := h.programs.Delete(c.Request.Context(), c.Param("name")); err != nil {
		response.Error(c, err)
		return
	}
	h.dashboard.Invalidate(c.Request.Context())
	response.NoContent(c)
}

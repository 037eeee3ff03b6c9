package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academic-records-api/internal/models"
	"github.com/noah-isme/academic-records-api/internal/service"
	appErrors "github.com/noah-isme/academic-records-api/pkg/errors"
	"github.com/noah-isme/academic-records-api/pkg/response"
)

// EnrollmentHandler exposes enrollment endpoints nested under a participant.
type EnrollmentHandler struct {
	enrollments *service.EnrollmentService
	dashboard   *service.DashboardService
}

// NewEnrollmentHandler constructs EnrollmentHandler.
func NewEnrollmentHandler(enrollments *service.EnrollmentService, dashboard *service.DashboardService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments, dashboard: dashboard}
}

type enrollBody struct {
	CourseID string `json:"courseId" validate:"required"`
	Mode     string `json:"mode"`
	Semester string `json:"semester"`
	Status   string `json:"status"`
	Grade    string `json:"grade"`
}

type gradeBody struct {
	Grade string `json:"grade" validate:"required"`
}

// List godoc
// @Summary List a participant's enrollments
// @Tags Enrollments
// @Produce json
// @Param id path string true "Participant ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/courses [get]
func (h *EnrollmentHandler) List(c *gin.Context) {
	enrollments, err := h.enrollments.List(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enrollments, nil)
}

// Enroll godoc
// @Summary Enroll a participant in a catalog course
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param id path string true "Participant ID"
// @Param payload body enrollBody true "Enrollment"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /students/{id}/courses [post]
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	var body enrollBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enrollment payload"))
		return
	}
	enrollment, err := h.enrollments.Enroll(c.Request.Context(), service.EnrollRequest{
		ParticipantID: c.Param("id"),
		CourseID:      body.CourseID,
		Mode:          models.StudyMode(body.Mode),
		Semester:      body.Semester,
		Status:        models.EnrollmentStatus(body.Status),
		Grade:         body.Grade,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	h.dashboard.Invalidate(c.Request.Context())
	response.Created(c, enrollment)
}

// UpdateGrade godoc
// @Summary Record a grade for an enrollment
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param id path string true "Participant ID"
// @Param courseId path string true "Course ID"
// @Param payload body gradeBody true "Grade"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/courses/{courseId}/grade [put]
func (h *EnrollmentHandler) UpdateGrade(c *gin.Context) {
	var body gradeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grade payload"))
		return
	}
	enrollment, err := h.enrollments.UpdateGrade(c.Request.Context(), c.Param("id"), c.Param("courseId"), body.Grade)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.dashboard.Invalidate(c.Request.Context())
	response.JSON(c, http.StatusOK, enrollment, nil)
}

// Unenroll godoc
// @Summary Remove a participant from a course
// @Tags Enrollments
// @Produce json
// @Param id path string true "Participant ID"
// @Param courseId path string true "Course ID"
// @Success 204
// @Router /students/{id}/courses/{courseId} [delete]
func (h *EnrollmentHandler) Unenroll(c *gin.Context) {
	if err := h.enrollments.Unenroll(c.Request.Context(), c.Param("id"), c.Param("courseId")); err != nil {
		response.Error(c, err)
		return
	}
	h.dashboard.Invalidate(c.Request.Context())
	response.NoContent(c)
}

// GPA godoc
// @Summary Compute a participant's cumulative GPA
// @Tags Enrollments
// @Produce json
// @Param id path string true "Participant ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/gpa [get]
func (h *EnrollmentHandler) GPA(c *gin.Context) {
	gpa, err := h.enrollments.GPA(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"gpa": gpa}, nil)
}

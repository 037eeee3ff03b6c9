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

// CatalogHandler exposes course-catalog endpoints.
type CatalogHandler struct {
	catalog   *service.CatalogService
	dashboard *service.DashboardService
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(catalog *service.CatalogService, dashboard *service.DashboardService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, dashboard: dashboard}
}

// List godoc
// @Summary List catalog courses
// @Tags Courses
// @Produce json
// @Param search query string false "Search by id or name"
// @Param department query string false "Filter by department"
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *CatalogHandler) List(c *gin.Context) {
	filter := models.CourseFilter{
		Search:     strings.TrimSpace(c.Query("search")),
		Department: c.Query("department"),
	}
	response.JSON(c, http.StatusOK, h.catalog.List(filter), nil)
}

// Get godoc
// @Summary Get one catalog course
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{id} [get]
func (h *CatalogHandler) Get(c *gin.Context) {
	course, err := h.catalog.Get(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}

// Create godoc
// @Summary Add a course to the catalog
// @Tags Courses
// @Accept json
// @Produce json
// @Param payload body service.CreateCourseRequest true "Course"
// @Success 201 {object} response.Envelope
// @Router /courses [post]
func (h *CatalogHandler) Create(c *gin.Context) {
	var req service.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload"))
		return
	}
	course, err := h.catalog.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.dashboard.Invalidate(c.Request.Context())
	response.Created(c, course)
}

// Update godoc
// @Summary Edit a catalog course
// @Tags Courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body models.CourseUpdate true "Fields to update"
// @Success 200 {object} response.Envelope
// @Router /courses/{id} [put]
func (h *CatalogHandler) Update(c *gin.Context) {
	var update models.CourseUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid update payload"))
		return
	}
	course, err := h.catalog.Update(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}

// Delete godoc
// @Summary Delete a catalog course (blocked while enrollments reference it)
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 204
// @Failure 409 {object} response.Envelope
// @Router /courses/{id} [delete]
func (h *CatalogHandler) Delete(c *gin.Context) {
	if err := h.catalog.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	h.dashboard.Invalidate(c.Request.Context())
	response.NoContent(c)
}

package handler

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academic-records-api/internal/models"
	"github.com/noah-isme/academic-records-api/internal/service"
	appErrors "github.com/noah-isme/academic-records-api/pkg/errors"
	"github.com/noah-isme/academic-records-api/pkg/response"
)

// ImportHandler accepts CSV uploads for bulk imports.
type ImportHandler struct {
	importer  *service.ImportService
	dashboard *service.DashboardService
}

// NewImportHandler constructs ImportHandler.
func NewImportHandler(importer *service.ImportService, dashboard *service.DashboardService) *ImportHandler {
	return &ImportHandler{importer: importer, dashboard: dashboard}
}

var importKinds = map[string]models.ImportKind{
	"students":    models.ImportParticipants,
	"courses":     models.ImportCourses,
	"programs":    models.ImportPrograms,
	"enrollments": models.ImportEnrollments,
	"grades":      models.ImportGrades,
}

// Import godoc
// @Summary Bulk import records from CSV
// @Description Accepts a multipart "file" field or a raw CSV body. Row errors
// @Description are collected, never aborting the batch.
// @Tags Import
// @Accept mpfd
// @Produce json
// @Param kind path string true "students|courses|programs|enrollments|grades"
// @Success 200 {object} response.Envelope
// @Router /import/{kind} [post]
func (h *ImportHandler) Import(c *gin.Context) {
	kind, ok := importKinds[strings.ToLower(c.Param("kind"))]
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown import kind %q", c.Param("kind"))))
		return
	}

	reader, err := h.body(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer reader.Close()

	summary, err := h.importer.Import(c.Request.Context(), kind, reader)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.dashboard.Invalidate(c.Request.Context())
	response.JSON(c, http.StatusOK, summary, nil)
}

func (h *ImportHandler) body(c *gin.Context) (io.ReadCloser, error) {
	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "cannot open uploaded file")
		}
		return f, nil
	}
	if c.Request.Body == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "empty request body")
	}
	return c.Request.Body, nil
}

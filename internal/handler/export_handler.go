package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academic-records-api/internal/models"
	"github.com/noah-isme/academic-records-api/internal/service"
	appErrors "github.com/noah-isme/academic-records-api/pkg/errors"
	"github.com/noah-isme/academic-records-api/pkg/response"
)

// ExportHandler streams CSV exports, blank import templates and transcript PDFs.
type ExportHandler struct {
	exporter *service.ExportService
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(exporter *service.ExportService) *ExportHandler {
	return &ExportHandler{exporter: exporter}
}

var exportKinds = map[string]models.ImportKind{
	"students":    models.ImportParticipants,
	"courses":     models.ImportCourses,
	"programs":    models.ImportPrograms,
	"enrollments": models.ImportEnrollments,
}

// Export godoc
// @Summary Export records as CSV
// @Description Column layout matches what the import endpoints accept, so an
// @Description exported file can be re-imported unchanged.
// @Tags Export
// @Produce text/csv
// @Param kind path string true "students|courses|programs|enrollments"
// @Success 200 {string} string "CSV document"
// @Router /export/{kind} [get]
func (h *ExportHandler) Export(c *gin.Context) {
	kind, ok := exportKinds[strings.ToLower(c.Param("kind"))]
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown export kind %q", c.Param("kind"))))
		return
	}
	body, err := h.exporter.RenderCSV(kind)
	if err != nil {
		response.Error(c, err)
		return
	}
	filename := fmt.Sprintf("%s-%s.csv", kind, time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", body)
}

// Template godoc
// @Summary Download a blank CSV import template
// @Tags Export
// @Produce text/csv
// @Param kind path string true "students|courses|programs|enrollments|grades"
// @Success 200 {string} string "CSV template"
// @Router /templates/{kind} [get]
func (h *ExportHandler) Template(c *gin.Context) {
	kind, ok := importKinds[strings.ToLower(c.Param("kind"))]
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown template kind %q", c.Param("kind"))))
		return
	}
	body, err := h.exporter.TemplateCSV(kind)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("%s-template.csv", kind)))
	c.Data(http.StatusOK, "text/csv", body)
}

// Transcript godoc
// @Summary Download a participant transcript as PDF
// @Tags Export
// @Produce application/pdf
// @Param id path string true "Participant ID"
// @Success 200 {string} string "PDF document"
// @Router /students/{id}/transcript [get]
func (h *ExportHandler) Transcript(c *gin.Context) {
	body, err := h.exporter.TranscriptPDF(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	filename := fmt.Sprintf("transcript-%s.pdf", c.Param("id"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", body)
}

package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academic-records-api/internal/service"
	"github.com/noah-isme/academic-records-api/internal/store"
)

func newImportHandler(t *testing.T) (*ImportHandler, *store.CatalogStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	participants := store.NewParticipantStore(nil, nil, nil)
	catalog := store.NewCatalogStore(nil, nil, nil)
	programs := store.NewProgramStore(nil, nil, nil)
	validate := validator.New()
	enrollments := service.NewEnrollmentService(participants, catalog, validate, nil)
	dashboard := service.NewDashboardService(participants, catalog, programs, service.NewCacheService(nil, nil, 0, nil), nil)
	importer := service.NewImportService(participants, catalog, programs, enrollments, nil, nil)

	return NewImportHandler(importer, dashboard), catalog
}

func TestImportHandlerMultipartUpload(t *testing.T) {
	handler, catalog := newImportHandler(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "courses.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("id,name,credits,department\nCS900,Compilers,4,Computer Science"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/import/courses", &buf)
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())
	c.Params = gin.Params{{Key: "kind", Value: "courses"}}

	handler.Import(c)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"imported":1`)

	course, ok := catalog.Get("CS900")
	require.True(t, ok)
	assert.Equal(t, 4, course.Credits)
}

func TestImportHandlerRawBody(t *testing.T) {
	handler, catalog := newImportHandler(t)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/import/courses", strings.NewReader("id,name,credits,department\nCS901,Databases,3,Computer Science"))
	c.Request.Header.Set("Content-Type", "text/csv")
	c.Params = gin.Params{{Key: "kind", Value: "courses"}}

	handler.Import(c)

	require.Equal(t, http.StatusOK, rec.Code)
	_, ok := catalog.Get("CS901")
	assert.True(t, ok)
}

func TestImportHandlerUnknownKind(t *testing.T) {
	handler, _ := newImportHandler(t)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/import/rooms", strings.NewReader("a,b\n1,2"))
	c.Params = gin.Params{{Key: "kind", Value: "rooms"}}

	handler.Import(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown import kind")
}

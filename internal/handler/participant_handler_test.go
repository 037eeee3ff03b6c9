package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academic-records-api/internal/service"
	"github.com/noah-isme/academic-records-api/internal/store"
)

func newParticipantHandler(t *testing.T) (*ParticipantHandler, *store.ParticipantStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	participants := store.NewParticipantStore(nil, nil, nil)
	catalog := store.NewCatalogStore(nil, nil, nil)
	programs := store.NewProgramStore(nil, nil, nil)
	dashboard := service.NewDashboardService(participants, catalog, programs, service.NewCacheService(nil, nil, 0, nil), nil)

	return NewParticipantHandler(service.NewParticipantService(participants, validator.New(), nil), dashboard), participants
}

func testContext(method, target string, body []byte, params ...gin.Param) (*gin.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(method, target, bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = params
	return c, rec
}

func TestParticipantHandlerCreateInvalidJSON(t *testing.T) {
	handler, _ := newParticipantHandler(t)

	c, rec := testContext(http.MethodPost, "/students", []byte("{not json"))
	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"VALIDATION_ERROR"`)
}

func TestParticipantHandlerCreateAppliesDefaults(t *testing.T) {
	handler, participants := newParticipantHandler(t)

	c, rec := testContext(http.MethodPost, "/students", []byte(`{"id":"PT300","name":"Mara Holt","program":"Liturgy","year":"2026"}`))
	handler.Create(c)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"pt300@university.edu"`)

	stored, ok := participants.Get("PT300")
	require.True(t, ok)
	assert.Equal(t, "mara300", stored.Password)
}

func TestParticipantHandlerCreateDuplicate(t *testing.T) {
	handler, _ := newParticipantHandler(t)

	payload := []byte(`{"id":"PT301","name":"Mara Holt","program":"Liturgy","year":"2026"}`)
	c, rec := testContext(http.MethodPost, "/students", payload)
	handler.Create(c)
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = testContext(http.MethodPost, "/students", payload)
	handler.Create(c)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), `"DUPLICATE_KEY"`)
}

func TestParticipantHandlerGetNotFound(t *testing.T) {
	handler, _ := newParticipantHandler(t)

	c, rec := testContext(http.MethodGet, "/students/ghost", nil, gin.Param{Key: "id", Value: "ghost"})
	handler.Get(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"NOT_FOUND"`)
}

func TestParticipantHandlerUpdate(t *testing.T) {
	handler, _ := newParticipantHandler(t)

	c, rec := testContext(http.MethodPost, "/students", []byte(`{"id":"PT302","name":"Mara Holt","program":"Liturgy","year":"2026"}`))
	handler.Create(c)
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = testContext(http.MethodPut, "/students/PT302", []byte(`{"parish":"St. Jude"}`), gin.Param{Key: "id", Value: "PT302"})
	handler.Update(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"parish":"St. Jude"`)
	assert.Contains(t, rec.Body.String(), `"name":"Mara Holt"`)
}

func TestParticipantHandlerGradeHistory(t *testing.T) {
	handler, _ := newParticipantHandler(t)

	c, rec := testContext(http.MethodPost, "/students", []byte(`{"id":"PT303","name":"Mara Holt","program":"Liturgy","year":"2026"}`))
	handler.Create(c)
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = testContext(http.MethodGet, "/students/PT303/grade-history", nil, gin.Param{Key: "id", Value: "PT303"})
	handler.GradeHistory(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"semester":"1Qtr"`)
}

func TestParticipantHandlerDelete(t *testing.T) {
	handler, participants := newParticipantHandler(t)

	c, rec := testContext(http.MethodPost, "/students", []byte(`{"id":"PT304","name":"Mara Holt","program":"Liturgy","year":"2026"}`))
	handler.Create(c)
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = testContext(http.MethodDelete, "/students/PT304", nil, gin.Param{Key: "id", Value: "PT304"})
	handler.Delete(c)
	// c.Status alone does not flush outside a full engine run
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, rec.Code)
	_, ok := participants.Get("PT304")
	assert.False(t, ok)
}

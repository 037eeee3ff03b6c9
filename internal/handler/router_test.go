package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/academic-records-api/internal/models"
	"github.com/noah-isme/academic-records-api/internal/service"
	"github.com/noah-isme/academic-records-api/internal/store"
	"github.com/noah-isme/academic-records-api/pkg/config"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Env:       config.EnvDevelopment,
		APIPrefix: "/api/v1",
		JWT: config.JWTConfig{
			Secret:     "router-test-secret",
			Expiration: time.Hour,
			Issuer:     "academic-records-api",
		},
		Admin:     config.AdminConfig{Username: "admin", Password: "admin123"},
		CORS:      config.CORSConfig{AllowedOrigins: []string{"*"}},
		Dashboard: config.DashboardConfig{Enabled: true},
	}

	participants := store.NewParticipantStore(nil, nil, nil)
	catalog := store.NewCatalogStore(nil, nil, nil)
	programs := store.NewProgramStore(nil, nil, nil)

	validate := validator.New()
	enrollments := service.NewEnrollmentService(participants, catalog, validate, nil)
	cache := service.NewCacheService(nil, nil, 0, nil)
	dashboard := service.NewDashboardService(participants, catalog, programs, cache, nil)
	auth := service.NewAuthService(participants, validate, nil, service.AuthConfig{
		Secret:        cfg.JWT.Secret,
		Expiry:        cfg.JWT.Expiration,
		Issuer:        cfg.JWT.Issuer,
		AdminUsername: cfg.Admin.Username,
		AdminPassword: cfg.Admin.Password,
	})

	h := Handlers{
		Auth:         NewAuthHandler(auth),
		Participants: NewParticipantHandler(service.NewParticipantService(participants, validate, nil), dashboard),
		Catalog:      NewCatalogHandler(service.NewCatalogService(catalog, enrollments, validate, nil), dashboard),
		Programs:     NewProgramHandler(service.NewProgramService(programs, enrollments, validate, nil), dashboard),
		Enrollments:  NewEnrollmentHandler(enrollments, dashboard),
		Imports:      NewImportHandler(service.NewImportService(participants, catalog, programs, enrollments, nil, nil), dashboard),
		Exports:      NewExportHandler(service.NewExportService(participants, catalog, programs, nil, nil, nil)),
		Dashboard:    NewDashboardHandler(dashboard),
	}

	return NewRouter(cfg, zap.NewNop(), auth, service.NewMetricsService(), h)
}

func performRequest(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func jsonRequest(t *testing.T, method, target, token string, payload any) *http.Request {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func loginToken(t *testing.T, router *gin.Engine, username, password string) string {
	t.Helper()
	req := jsonRequest(t, http.MethodPost, "/api/v1/auth/login", "", models.LoginRequest{
		Username: username,
		Password: password,
	})
	rec := performRequest(router, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var envelope struct {
		Data models.LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data.AccessToken)
	return envelope.Data.AccessToken
}

func TestRouterAuthBoundaries(t *testing.T) {
	router := newTestRouter(t)

	t.Run("health is public", func(t *testing.T) {
		rec := performRequest(router, httptest.NewRequest(http.MethodGet, "/health", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("reads require a token", func(t *testing.T) {
		rec := performRequest(router, httptest.NewRequest(http.MethodGet, "/api/v1/students", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), `"UNAUTHORIZED"`)
		require.Contains(t, rec.Body.String(), `"request_id"`)
	})

	t.Run("malformed bearer header rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/students", nil)
		req.Header.Set("Authorization", "Token abc")
		rec := performRequest(router, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("bad credentials rejected", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/api/v1/auth/login", "", models.LoginRequest{
			Username: "admin",
			Password: "nope",
		})
		rec := performRequest(router, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), `"INVALID_CREDENTIALS"`)
	})

	t.Run("participant cannot mutate", func(t *testing.T) {
		admin := loginToken(t, router, "admin", "admin123")
		rec := performRequest(router, jsonRequest(t, http.MethodPost, "/api/v1/students", admin, service.CreateParticipantRequest{
			ID:      "RT100",
			Name:    "Rita Park",
			Program: "Theology",
			Year:    "2026",
		}))
		require.Equal(t, http.StatusCreated, rec.Code)

		// default password is first name lowercased plus the ID's last three characters
		participant := loginToken(t, router, "RT100", "rita100")
		rec = performRequest(router, jsonRequest(t, http.MethodPost, "/api/v1/students", participant, service.CreateParticipantRequest{
			ID:      "RT101",
			Name:    "Sam Ode",
			Program: "Theology",
			Year:    "2026",
		}))
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Contains(t, rec.Body.String(), `"FORBIDDEN"`)

		rec = performRequest(router, jsonRequest(t, http.MethodGet, "/api/v1/students/RT100", participant, nil))
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRouterRecordLifecycle(t *testing.T) {
	router := newTestRouter(t)
	admin := loginToken(t, router, "admin", "admin123")

	t.Run("create course", func(t *testing.T) {
		rec := performRequest(router, jsonRequest(t, http.MethodPost, "/api/v1/courses", admin, service.CreateCourseRequest{
			ID:         "TH101",
			Name:       "Intro to Theology",
			Credits:    3,
			Department: "Theology",
		}))
		require.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("duplicate course conflicts", func(t *testing.T) {
		rec := performRequest(router, jsonRequest(t, http.MethodPost, "/api/v1/courses", admin, service.CreateCourseRequest{
			ID:         "TH101",
			Name:       "Intro to Theology",
			Credits:    3,
			Department: "Theology",
		}))
		require.Equal(t, http.StatusConflict, rec.Code)
		require.Contains(t, rec.Body.String(), `"DUPLICATE_KEY"`)
	})

	t.Run("create program", func(t *testing.T) {
		rec := performRequest(router, jsonRequest(t, http.MethodPost, "/api/v1/programs", admin, service.CreateProgramRequest{
			Name:          "Theology",
			Department:    "Theology",
			DurationYears: 4,
		}))
		require.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("create and enroll participant", func(t *testing.T) {
		rec := performRequest(router, jsonRequest(t, http.MethodPost, "/api/v1/students", admin, service.CreateParticipantRequest{
			ID:      "RT200",
			Name:    "Noel Kim",
			Program: "Theology",
			Year:    "2026",
		}))
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = performRequest(router, jsonRequest(t, http.MethodPost, "/api/v1/students/RT200/courses", admin, gin.H{
			"courseId": "TH101",
		}))
		require.Equal(t, http.StatusCreated, rec.Code)
		require.Contains(t, rec.Body.String(), `"status":"Registered"`)

		rec = performRequest(router, jsonRequest(t, http.MethodPut, "/api/v1/students/RT200/courses/TH101/grade", admin, gin.H{
			"grade": "A-",
		}))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"status":"Completed"`)
		require.Contains(t, rec.Body.String(), `"gpa":3.7`)

		rec = performRequest(router, jsonRequest(t, http.MethodGet, "/api/v1/students/RT200/gpa", admin, nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"gpa":3.7`)
	})

	t.Run("enroll with explicit mode and status", func(t *testing.T) {
		rec := performRequest(router, jsonRequest(t, http.MethodPost, "/api/v1/students", admin, service.CreateParticipantRequest{
			ID:      "RT201",
			Name:    "Faye Ruiz",
			Program: "Theology",
			Year:    "2026",
		}))
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = performRequest(router, jsonRequest(t, http.MethodPost, "/api/v1/students/RT201/courses", admin, gin.H{
			"courseId": "TH101",
			"mode":     "Online",
			"status":   "In Progress",
		}))
		require.Equal(t, http.StatusCreated, rec.Code)
		require.Contains(t, rec.Body.String(), `"mode":"Online"`)
		require.Contains(t, rec.Body.String(), `"status":"In Progress"`)
		require.Contains(t, rec.Body.String(), `"progress":50`)

		rec = performRequest(router, jsonRequest(t, http.MethodDelete, "/api/v1/students/RT201/courses/TH101", admin, nil))
		require.Equal(t, http.StatusNoContent, rec.Code)
		rec = performRequest(router, jsonRequest(t, http.MethodDelete, "/api/v1/students/RT201", admin, nil))
		require.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("course delete blocked while enrolled", func(t *testing.T) {
		rec := performRequest(router, jsonRequest(t, http.MethodDelete, "/api/v1/courses/TH101", admin, nil))
		require.Equal(t, http.StatusConflict, rec.Code)
		require.Contains(t, rec.Body.String(), `"IN_USE"`)
	})

	t.Run("unenroll then delete", func(t *testing.T) {
		rec := performRequest(router, jsonRequest(t, http.MethodDelete, "/api/v1/students/RT200/courses/TH101", admin, nil))
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = performRequest(router, jsonRequest(t, http.MethodDelete, "/api/v1/students/RT200", admin, nil))
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = performRequest(router, jsonRequest(t, http.MethodGet, "/api/v1/students/RT200", admin, nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRouterImportExport(t *testing.T) {
	router := newTestRouter(t)
	admin := loginToken(t, router, "admin", "admin123")

	t.Run("import students from raw csv body", func(t *testing.T) {
		doc := strings.Join([]string{
			"id,name,email,password,program,year,semester,parish,deanery,phone",
			"IM001,Ivy Moss,,,Philosophy,2025,,,,",
		}, "\n")
		req := httptest.NewRequest(http.MethodPost, "/api/v1/import/students", strings.NewReader(doc))
		req.Header.Set("Content-Type", "text/csv")
		req.Header.Set("Authorization", "Bearer "+admin)
		rec := performRequest(router, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"imported":1`)
		require.Contains(t, rec.Body.String(), `"errors":0`)
	})

	t.Run("unknown import kind", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/import/rooms", strings.NewReader("a,b\n1,2"))
		req.Header.Set("Authorization", "Bearer "+admin)
		rec := performRequest(router, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("export students csv", func(t *testing.T) {
		rec := performRequest(router, jsonRequest(t, http.MethodGet, "/api/v1/export/students", admin, nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
		require.Contains(t, rec.Header().Get("Content-Disposition"), ".csv")
		require.True(t, strings.HasPrefix(rec.Body.String(), "id,name,email,password,program"))
		require.Contains(t, rec.Body.String(), "IM001")
	})

	t.Run("grades are import only", func(t *testing.T) {
		rec := performRequest(router, jsonRequest(t, http.MethodGet, "/api/v1/export/grades", admin, nil))
		require.Equal(t, http.StatusBadRequest, rec.Code)

		rec = performRequest(router, jsonRequest(t, http.MethodGet, "/api/v1/templates/grades", admin, nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.True(t, strings.HasPrefix(rec.Body.String(), "studentId,courseId,grade"))
	})

	t.Run("transcript pdf", func(t *testing.T) {
		rec := performRequest(router, jsonRequest(t, http.MethodGet, "/api/v1/students/IM001/transcript", admin, nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
		require.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
	})

	t.Run("dashboard summary", func(t *testing.T) {
		rec := performRequest(router, jsonRequest(t, http.MethodGet, "/api/v1/dashboard", admin, nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"participants":1`)
	})
}

package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/contabilisync/backend/controllers"
	"github.com/contabilisync/backend/db"
	"github.com/contabilisync/backend/models"
	"github.com/contabilisync/backend/routes"
	"github.com/contabilisync/backend/services"
	"github.com/contabilisync/backend/storage"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Migrate(gdb))

	files, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)

	passwords := services.NewPasswordService()
	users := services.NewUserService(gdb, passwords)
	appointments := services.NewAppointmentService(gdb, users)
	documents := services.NewDocumentService(gdb, users, files)

	app := fiber.New()
	routes.SetupAuthRoutes(app, controllers.NewAuthController(users))
	routes.SetupUserRoutes(app, controllers.NewUserController(users, nil))
	routes.SetupAppointmentRoutes(app, controllers.NewAppointmentController(appointments))
	routes.SetupDocumentRoutes(app, controllers.NewDocumentController(documents))
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, into any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(into))
}

func registerUser(t *testing.T, app *fiber.App, name, email string, role models.UserRole) models.User {
	t.Helper()
	resp := doJSON(t, app, fiber.MethodPost, "/usuarios", services.CreateInput{
		Name:     name,
		Email:    email,
		Password: "secret123",
		Role:     role,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var user models.User
	decode(t, resp, &user)
	return user
}

func TestBookingFlow(t *testing.T) {
	app := newTestApp(t)
	taxpayer := registerUser(t, app, "T", "t@x.com", models.RoleTaxpayer)
	accountant := registerUser(t, app, "A", "a@x.com", models.RoleAccountant)

	booking := map[string]any{
		"accountant_id": accountant.ID,
		"taxpayer_id":   taxpayer.ID,
		"date":          "2024-07-01T00:00:00Z",
		"time":          "14:00",
	}

	resp := doJSON(t, app, fiber.MethodPost, "/citas", booking)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var created models.Appointment
	decode(t, resp, &created)
	assert.Equal(t, models.StatusPending, created.Status)

	// Same accountant, same date, same time: the slot is taken.
	resp = doJSON(t, app, fiber.MethodPost, "/citas", booking)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet,
		fmt.Sprintf("/citas/disponibilidad?date=2024-07-01&time=14:00&contador=%d", accountant.ID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var probe map[string]bool
	decode(t, resp, &probe)
	assert.False(t, probe["available"])

	resp = doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/citas/contador/%d", accountant.ID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var assigned []models.Appointment
	decode(t, resp, &assigned)
	require.Len(t, assigned, 1)
	require.NotNil(t, assigned[0].Taxpayer)
	assert.Equal(t, "t@x.com", assigned[0].Taxpayer.Email)
}

func TestCheckAvailabilityRejectsBadParams(t *testing.T) {
	app := newTestApp(t)
	registerUser(t, app, "T", "t@x.com", models.RoleTaxpayer)
	accountant := registerUser(t, app, "A", "a@x.com", models.RoleAccountant)

	resp := doJSON(t, app, fiber.MethodGet,
		fmt.Sprintf("/citas/disponibilidad?date=2024-07-01&time=garbage&contador=%d", accountant.ID), nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet,
		fmt.Sprintf("/citas/disponibilidad?date=July&time=14:00&contador=%d", accountant.ID), nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet,
		"/citas/disponibilidad?date=2024-07-01&time=14:00&contador=0", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreateAppointmentUnknownParties(t *testing.T) {
	app := newTestApp(t)
	taxpayer := registerUser(t, app, "T", "t@x.com", models.RoleTaxpayer)

	resp := doJSON(t, app, fiber.MethodPost, "/citas", map[string]any{
		"accountant_id": 999,
		"taxpayer_id":   taxpayer.ID,
		"date":          "2024-07-01T00:00:00Z",
		"time":          "14:00",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app := newTestApp(t)
	registerUser(t, app, "T", "t@x.com", models.RoleTaxpayer)

	resp := doJSON(t, app, fiber.MethodPost, "/usuarios", services.CreateInput{
		Name:     "T2",
		Email:    "t@x.com",
		Password: "secret123",
		Role:     models.RoleTaxpayer,
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/usuarios", map[string]any{
		"name":     "X",
		"email":    "x@x.com",
		"password": "secret123",
		"role":     "superadmin",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	app := newTestApp(t)
	registerUser(t, app, "T", "t@x.com", models.RoleTaxpayer)

	resp := doJSON(t, app, fiber.MethodPost, "/auth/login", map[string]string{
		"email":    "t@x.com",
		"password": "secret123",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var body map[string]any
	decode(t, resp, &body)
	assert.Equal(t, "t@x.com", body["email"])
	assert.NotContains(t, body, "password_hash")

	// Wrong password and unknown email get the same rejection.
	resp = doJSON(t, app, fiber.MethodPost, "/auth/login", map[string]string{
		"email":    "t@x.com",
		"password": "wrong",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPost, "/auth/login", map[string]string{
		"email":    "nobody@x.com",
		"password": "secret123",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestChangePasswordEndpoint(t *testing.T) {
	app := newTestApp(t)
	user := registerUser(t, app, "T", "t@x.com", models.RoleTaxpayer)

	resp := doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/auth/change-password/%d", user.ID),
		map[string]string{"current_password": "wrong", "new_password": "another456"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/auth/change-password/%d", user.ID),
		map[string]string{"current_password": "secret123", "new_password": "another456"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPost, "/auth/login",
		map[string]string{"email": "t@x.com", "password": "another456"})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestUserResponsesHidePasswordHash(t *testing.T) {
	app := newTestApp(t)
	user := registerUser(t, app, "T", "t@x.com", models.RoleTaxpayer)

	resp := doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/usuarios/%d", user.ID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.NotContains(t, string(raw), "password")
}

func TestDocumentUploadDownloadDelete(t *testing.T) {
	app := newTestApp(t)
	taxpayer := registerUser(t, app, "T", "t@x.com", models.RoleTaxpayer)

	var form bytes.Buffer
	writer := multipart.NewWriter(&form)
	part, err := writer.CreateFormFile("file", "declaracion.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.7 contents"))
	require.NoError(t, err)
	require.NoError(t, writer.WriteField("taxpayer_id", fmt.Sprint(taxpayer.ID)))
	require.NoError(t, writer.WriteField("type", string(models.DocPriorDeclaration)))
	require.NoError(t, writer.WriteField("description", "declaracion 2023"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(fiber.MethodPost, "/documentos", &form)
	req.Header.Set(fiber.HeaderContentType, writer.FormDataContentType())
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var created models.Document
	decode(t, resp, &created)
	assert.Equal(t, "declaracion.pdf", created.Name)
	assert.Equal(t, models.DocPriorDeclaration, created.Type)

	resp = doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/documentos/%d/download", created.ID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "declaracion.pdf")
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, []byte("%PDF-1.7 contents"), data)

	resp = doJSON(t, app, fiber.MethodDelete, fmt.Sprintf("/documentos/%d", created.ID), nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/documentos/%d", created.ID), nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDocumentUploadWithoutFile(t *testing.T) {
	app := newTestApp(t)

	var form bytes.Buffer
	writer := multipart.NewWriter(&form)
	require.NoError(t, writer.WriteField("taxpayer_id", "1"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(fiber.MethodPost, "/documentos", &form)
	req.Header.Set(fiber.HeaderContentType, writer.FormDataContentType())
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestDeleteReferencedUser(t *testing.T) {
	app := newTestApp(t)
	taxpayer := registerUser(t, app, "T", "t@x.com", models.RoleTaxpayer)
	accountant := registerUser(t, app, "A", "a@x.com", models.RoleAccountant)

	resp := doJSON(t, app, fiber.MethodPost, "/citas", map[string]any{
		"accountant_id": accountant.ID,
		"taxpayer_id":   taxpayer.ID,
		"date":          "2024-07-01T00:00:00Z",
		"time":          "14:00",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodDelete, fmt.Sprintf("/usuarios/%d", accountant.ID), nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

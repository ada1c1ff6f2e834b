package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/hostelsphere/internal/app/models/dto"
	"github.com/yigit/hostelsphere/internal/app/repositories"
	"github.com/yigit/hostelsphere/internal/app/services"
	"github.com/yigit/hostelsphere/internal/domain"
	"github.com/yigit/hostelsphere/internal/middleware"
	"github.com/yigit/hostelsphere/internal/pkg/auth"
	"github.com/yigit/hostelsphere/internal/pkg/filestorage"
	"github.com/yigit/hostelsphere/internal/pkg/validation"
	"github.com/yigit/hostelsphere/internal/pkg/websocket"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := validation.RegisterGinValidators(); err != nil {
		panic(err)
	}
}

type envelope struct {
	Data  json.RawMessage  `json:"data"`
	Error *dto.ErrorDetail `json:"error"`
}

type api struct {
	t      *testing.T
	router *gin.Engine
}

func newAPI(t *testing.T) *api {
	t.Helper()
	ctx := context.Background()
	state, err := services.NewStateManager(ctx, repositories.NewMemoryStateRepository(),
		domain.NewEngine(domain.MaintenanceSticky), nil, zerolog.Nop())
	require.NoError(t, err)

	storage, err := filestorage.NewLocalStorage(t.TempDir(), "/uploads", 1<<20)
	require.NoError(t, err)
	hash, err := auth.HashPassword("warden-pass")
	require.NoError(t, err)

	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour, TokenIssuer: "test"})
	svc := services.New(services.Dependencies{
		State:   state,
		JWT:     jwtService,
		Storage: storage,
		Admin:   services.AdminCredentials{Username: "admin", PasswordHash: hash},
		Fees:    services.FeeConfig{AnnualAmount: 50000, Currency: "INR"},
		Clock:   func() time.Time { return time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC) },
		Logger:  zerolog.Nop(),
	})

	router := gin.New()
	hub := websocket.NewHub(zerolog.Nop())
	SetupRouter(router, NewControllers(svc), middleware.NewAuthMiddleware(jwtService),
		websocket.NewHandler(hub, nil, zerolog.Nop()))
	return &api{t: t, router: router}
}

func (a *api) do(method, path, token string, body interface{}) (int, envelope) {
	a.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	return a.send(req, token)
}

func (a *api) send(req *http.Request, token string) (int, envelope) {
	a.t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	var env envelope
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func (a *api) login(path string, body interface{}) string {
	a.t.Helper()
	status, env := a.do(http.MethodPost, path, "", body)
	require.Equal(a.t, http.StatusOK, status, env.Error)
	var resp dto.AuthResponse
	require.NoError(a.t, json.Unmarshal(env.Data, &resp))
	return resp.Token.AccessToken
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func TestAuthGuards(t *testing.T) {
	a := newAPI(t)

	status, env := a.do(http.MethodGet, "/api/v1/students", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, dto.ErrorCodeUnauthorized, env.Error.Code)

	status, env = a.do(http.MethodPost, "/api/v1/auth/admin/login", "", dto.AdminLoginRequest{Username: "admin", Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, dto.ErrorCodeInvalidCredentials, env.Error.Code)

	admin := a.login("/api/v1/auth/admin/login", dto.AdminLoginRequest{Username: "admin", Password: "warden-pass"})
	status, _ = a.do(http.MethodGet, "/api/v1/portal/me", admin, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, env = a.do(http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"status":"ok"`)
}

func TestAssignmentOverHTTP(t *testing.T) {
	a := newAPI(t)
	admin := a.login("/api/v1/auth/admin/login", dto.AdminLoginRequest{Username: "admin", Password: "warden-pass"})

	status, env := a.do(http.MethodPost, "/api/v1/rooms", admin, dto.CreateRoomRequest{ID: "101", RoomNumber: "101", Floor: 1, Type: domain.RoomDouble})
	require.Equal(t, http.StatusCreated, status, env.Error)
	assert.Equal(t, 2, decode[dto.RoomResponse](t, env).Capacity)

	status, env = a.do(http.MethodPost, "/api/v1/rooms", admin, dto.CreateRoomRequest{ID: "102", RoomNumber: "102", Capacity: -1})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, dto.ErrorCodeInvalidCapacity, env.Error.Code)

	for _, id := range []string{"s1", "s2", "s3"} {
		status, env = a.do(http.MethodPost, "/api/v1/students", admin, dto.CreateStudentRequest{
			ID: id, FirstName: "Student", LastName: id, Email: id + "@example.edu",
		})
		require.Equal(t, http.StatusCreated, status, env.Error)
	}

	status, env = a.do(http.MethodPost, "/api/v1/students", admin, map[string]string{"lastName": "x"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, dto.ErrorCodeValidationFailed, env.Error.Code)

	for _, id := range []string{"s1", "s2"} {
		status, env = a.do(http.MethodPost, "/api/v1/rooms/101/students", admin, dto.AssignStudentRequest{StudentID: id})
		require.Equal(t, http.StatusOK, status, env.Error)
	}
	room := decode[dto.RoomResponse](t, env)
	assert.Equal(t, domain.StatusFull, room.Status)
	assert.Equal(t, 2, room.OccupiedBeds)

	status, env = a.do(http.MethodPost, "/api/v1/rooms/101/students", admin, dto.AssignStudentRequest{StudentID: "s3"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, dto.ErrorCodeRoomFull, env.Error.Code)

	status, env = a.do(http.MethodPost, "/api/v1/rooms/999/students", admin, dto.AssignStudentRequest{StudentID: "s3"})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, env.Error.Code)

	status, env = a.do(http.MethodDelete, "/api/v1/students/s1/room", admin, nil)
	require.Equal(t, http.StatusOK, status, env.Error)
	assert.Empty(t, decode[dto.StudentResponse](t, env).RoomID)

	status, env = a.do(http.MethodPut, "/api/v1/rooms/101/maintenance", admin, map[string]bool{"enabled": true})
	require.Equal(t, http.StatusOK, status, env.Error)
	status, env = a.do(http.MethodPost, "/api/v1/rooms/101/students", admin, dto.AssignStudentRequest{StudentID: "s3"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, dto.ErrorCodeRoomMaintenance, env.Error.Code)

	status, env = a.do(http.MethodGet, "/api/v1/students/unassigned", admin, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]dto.StudentSummary](t, env), 2)

	status, env = a.do(http.MethodGet, "/api/v1/rooms?floor=abc", admin, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = a.do(http.MethodGet, "/api/v1/dashboard", admin, nil)
	require.Equal(t, http.StatusOK, status)
	stats := decode[dto.DashboardStats](t, env)
	assert.Equal(t, 3, stats.TotalStudents)
	assert.Equal(t, 1, stats.AssignedStudents)
}

func TestIDCardsOverHTTP(t *testing.T) {
	a := newAPI(t)
	admin := a.login("/api/v1/auth/admin/login", dto.AdminLoginRequest{Username: "admin", Password: "warden-pass"})

	status, env := a.do(http.MethodPost, "/api/v1/rooms", admin, dto.CreateRoomRequest{ID: "101", Capacity: 2})
	require.Equal(t, http.StatusCreated, status, env.Error)
	status, env = a.do(http.MethodPost, "/api/v1/students", admin, dto.CreateStudentRequest{
		ID: "s1", SID: "HS-101", FirstName: "Meera", LastName: "Iyer", Email: "meera@example.edu", AdmissionDate: "2022-08-01",
	})
	require.Equal(t, http.StatusCreated, status, env.Error)
	status, env = a.do(http.MethodPost, "/api/v1/students", admin, dto.CreateStudentRequest{
		ID: "s2", FirstName: "Kabir", LastName: "Shah", Email: "kabir@example.edu",
	})
	require.Equal(t, http.StatusCreated, status, env.Error)
	status, env = a.do(http.MethodPost, "/api/v1/rooms/101/students", admin, dto.AssignStudentRequest{StudentID: "s1"})
	require.Equal(t, http.StatusOK, status, env.Error)

	status, env = a.do(http.MethodGet, "/api/v1/students/id-cards?q=hs-101", admin, nil)
	require.Equal(t, http.StatusOK, status, env.Error)
	cards := decode[[]dto.IDCardResponse](t, env)
	require.Len(t, cards, 1)
	assert.Equal(t, "Meera Iyer", cards[0].FullName)
	assert.Equal(t, "101", cards[0].RoomNumber)
	assert.Equal(t, "2026-08-01", cards[0].ValidUntil)

	status, env = a.do(http.MethodGet, "/api/v1/students/id-cards", admin, nil)
	require.Equal(t, http.StatusOK, status, env.Error)
	assert.Len(t, decode[[]dto.IDCardResponse](t, env), 2)

	status, _ = a.do(http.MethodGet, "/api/v1/students/id-cards", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestPortalOverHTTP(t *testing.T) {
	a := newAPI(t)
	admin := a.login("/api/v1/auth/admin/login", dto.AdminLoginRequest{Username: "admin", Password: "warden-pass"})

	status, env := a.do(http.MethodPost, "/api/v1/students", admin, dto.CreateStudentRequest{
		ID: "s1", FirstName: "Asha", LastName: "Rao", Email: "asha@example.edu",
	})
	require.Equal(t, http.StatusCreated, status, env.Error)
	status, env = a.do(http.MethodPut, "/api/v1/students/s1/credentials", admin, dto.SetCredentialsRequest{SID: "HS-001", Password: "secret1"})
	require.Equal(t, http.StatusOK, status, env.Error)

	student := a.login("/api/v1/auth/student/login", dto.StudentLoginRequest{SID: "HS-001", Password: "secret1"})

	status, env = a.do(http.MethodGet, "/api/v1/portal/me", student, nil)
	require.Equal(t, http.StatusOK, status, env.Error)
	assert.Equal(t, "s1", decode[dto.PortalProfile](t, env).Student.ID)

	status, env = a.do(http.MethodPost, "/api/v1/portal/complaints", student, dto.CreateComplaintRequest{
		Subject: "Fan <b>broken</b>", Description: "The fan in my room does not turn on",
	})
	require.Equal(t, http.StatusCreated, status, env.Error)
	assert.Equal(t, "Fan broken", decode[dto.ComplaintResponse](t, env).Subject)

	status, env = a.do(http.MethodPost, "/api/v1/portal/gate-passes", student, dto.CreateGatePassRequest{
		Type: "Leave", Reason: "Family visit", StartDate: "2024-06-10", EndDate: "2024-06-05",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = a.do(http.MethodPost, "/api/v1/portal/gate-passes", student, dto.CreateGatePassRequest{
		Type: "Leave", Reason: "Family visit", StartDate: "2024-06-10", EndDate: "2024-06-12",
	})
	require.Equal(t, http.StatusCreated, status, env.Error)
	pass := decode[dto.GatePassResponse](t, env)

	status, env = a.do(http.MethodPatch, "/api/v1/gate-passes/"+pass.ID, admin, dto.DecideGatePassRequest{Status: "Approved"})
	require.Equal(t, http.StatusOK, status, env.Error)
	status, env = a.do(http.MethodPatch, "/api/v1/gate-passes/"+pass.ID, admin, dto.DecideGatePassRequest{Status: "Rejected"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, dto.ErrorCodeConflict, env.Error.Code)

	status, env = a.do(http.MethodPost, "/api/v1/portal/attendance/toggle", student, nil)
	require.Equal(t, http.StatusOK, status, env.Error)
	assert.Equal(t, "Present", string(decode[dto.AttendanceRow](t, env).Status))

	status, env = a.do(http.MethodGet, "/api/v1/attendance?filter=present", admin, nil)
	require.Equal(t, http.StatusOK, status, env.Error)
	assert.Equal(t, 1, decode[dto.AttendanceReport](t, env).Present)

	status, env = a.do(http.MethodPost, "/api/v1/fees/s1/payments", admin, dto.RecordPaymentRequest{Amount: 20000})
	require.Equal(t, http.StatusCreated, status, env.Error)
	status, env = a.do(http.MethodGet, "/api/v1/portal/fees", student, nil)
	require.Equal(t, http.StatusOK, status, env.Error)
	assert.Equal(t, int64(30000), decode[dto.FeeSummary](t, env).Due)
}

func TestPhotoUpload(t *testing.T) {
	a := newAPI(t)
	admin := a.login("/api/v1/auth/admin/login", dto.AdminLoginRequest{Username: "admin", Password: "warden-pass"})
	status, env := a.do(http.MethodPost, "/api/v1/students", admin, dto.CreateStudentRequest{
		ID: "s1", FirstName: "Asha", LastName: "Rao", Email: "asha@example.edu",
	})
	require.Equal(t, http.StatusCreated, status, env.Error)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("photo", "me.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG\r\n\x1a\nfake"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/students/s1/photo", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	status, env = a.send(req, admin)
	require.Equal(t, http.StatusOK, status, env.Error)
	assert.True(t, strings.HasPrefix(decode[dto.StudentResponse](t, env).PhotoURL, "/uploads/photos/"))

	req = httptest.NewRequest(http.MethodPost, "/api/v1/students/s1/photo", strings.NewReader(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	status, _ = a.send(req, admin)
	assert.Equal(t, http.StatusBadRequest, status)
}

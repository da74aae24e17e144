package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"cccd-intake/internal/assets"
	"cccd-intake/internal/intake/handler/mocks"
	"cccd-intake/internal/intake/models"
	"cccd-intake/internal/platform/middleware"
	"cccd-intake/internal/qr"
	"cccd-intake/internal/sessiontoken"
	dErrors "cccd-intake/pkg/domain-errors"
)

//go:generate mockgen -source=handler.go -destination=mocks/intake-mocks.go -package=mocks Service
type IntakeHandlerSuite struct {
	suite.Suite
}

func (s *IntakeHandlerSuite) newHandler(t *testing.T) (*mocks.MockService, *assets.Store, chi.Router) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockService(ctrl)

	store, err := assets.New(t.TempDir())
	require.NoError(t, err)

	tokens := sessiontoken.New("test-signing-key", time.Hour)
	h := New(mockService, store, tokens, slog.New(slog.NewTextHandler(io.Discard, nil)))

	router := chi.NewRouter()
	h.Register(router)
	// Protected routes are tested without the session middleware; the
	// username is injected directly into the context where needed.
	h.RegisterProtected(router)
	return mockService, store, router
}

func (s *IntakeHandlerSuite) decodeBody(t *testing.T, res *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	return body
}

func (s *IntakeHandlerSuite) TestHandler_Login() {
	s.T().Run("creates session and returns user payload", func(t *testing.T) {
		mockService, _, router := s.newHandler(t)
		mockService.EXPECT().Login(gomock.Any(), "agent1").Return(&models.User{
			ID: 7, Username: "agent1", Fullname: "agent1", Role: models.DefaultRole,
		}, nil)

		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"agent1"}`))
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)

		require.Equal(t, http.StatusOK, res.Code)
		body := s.decodeBody(t, res)
		assert.Equal(t, true, body["ok"])
		user := body["user"].(map[string]any)
		assert.Equal(t, "agent1", user["username"])

		cookies := res.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, sessiontoken.CookieName, cookies[0].Name)
		assert.NotEmpty(t, cookies[0].Value)
	})

	s.T().Run("empty username - 400", func(t *testing.T) {
		mockService, _, router := s.newHandler(t)
		mockService.EXPECT().Login(gomock.Any(), "").
			Return(nil, dErrors.New(dErrors.CodeValidation, "Username is required"))

		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":""}`))
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)

		assert.Equal(t, http.StatusBadRequest, res.Code)
		body := s.decodeBody(t, res)
		assert.Equal(t, false, body["ok"])
	})

	s.T().Run("malformed JSON - 400 without touching the service", func(t *testing.T) {
		_, _, router := s.newHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{nope`))
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)

		assert.Equal(t, http.StatusBadRequest, res.Code)
	})
}

func (s *IntakeHandlerSuite) TestHandler_Scan() {
	s.T().Run("returns parsed fields and duplicate flag", func(t *testing.T) {
		mockService, _, router := s.newHandler(t)
		mockService.EXPECT().Scan(gomock.Any(), &models.ScanRequest{QRText: "raw-qr-text"}).
			Return(&models.ScanResult{
				Fields:    mustParseFields(t),
				Duplicate: true,
			}, nil)

		req := httptest.NewRequest(http.MethodPost, "/scan_qr_image", strings.NewReader(`{"qr_text":"raw-qr-text"}`))
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)

		require.Equal(t, http.StatusOK, res.Code)
		body := s.decodeBody(t, res)
		assert.Equal(t, true, body["ok"])
		assert.Equal(t, true, body["duplicate"])
		data := body["data"].(map[string]any)
		assert.Equal(t, "079201012345", data["cccd_moi"])
		assert.Equal(t, "1990-01-01", data["dob"])
	})

	s.T().Run("unreadable QR - 400", func(t *testing.T) {
		mockService, _, router := s.newHandler(t)
		mockService.EXPECT().Scan(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeBadRequest, "QR code is unreadable or malformed"))

		req := httptest.NewRequest(http.MethodPost, "/scan_qr_image", strings.NewReader(`{"qr_text":"junk"}`))
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)

		assert.Equal(t, http.StatusBadRequest, res.Code)
	})
}

func (s *IntakeHandlerSuite) TestHandler_SaveImages() {
	s.T().Run("front upload reports face outcome", func(t *testing.T) {
		mockService, _, router := s.newHandler(t)
		mockService.EXPECT().SaveFrontImage(gomock.Any(), "079", "aW1n").
			Return(&models.FrontUploadResult{
				FrontImage: "cccd_front_079.jpg",
				FaceImage:  "cccd_face_079.jpg",
			}, nil)

		res := s.postForm(t, router, "/save_front_image", url.Values{"cccd": {"079"}, "image": {"aW1n"}})

		require.Equal(t, http.StatusOK, res.Code)
		body := s.decodeBody(t, res)
		assert.Equal(t, "cccd_front_079.jpg", body["front"])
		assert.Equal(t, "cccd_face_079.jpg", body["face"])
	})

	s.T().Run("front upload with no face yields null face", func(t *testing.T) {
		mockService, _, router := s.newHandler(t)
		mockService.EXPECT().SaveFrontImage(gomock.Any(), "079", "aW1n").
			Return(&models.FrontUploadResult{FrontImage: "cccd_front_079.jpg"}, nil)

		res := s.postForm(t, router, "/save_front_image", url.Values{"cccd": {"079"}, "image": {"aW1n"}})

		require.Equal(t, http.StatusOK, res.Code)
		body := s.decodeBody(t, res)
		assert.Nil(t, body["face"])
	})

	s.T().Run("back upload", func(t *testing.T) {
		mockService, _, router := s.newHandler(t)
		mockService.EXPECT().SaveBackImage(gomock.Any(), "079", "aW1n").
			Return("cccd_back_079.jpg", nil)

		res := s.postForm(t, router, "/save_back_image", url.Values{"cccd": {"079"}, "image": {"aW1n"}})

		require.Equal(t, http.StatusOK, res.Code)
		body := s.decodeBody(t, res)
		assert.Equal(t, "cccd_back_079.jpg", body["back"])
	})

	s.T().Run("missing payload - 400", func(t *testing.T) {
		mockService, _, router := s.newHandler(t)
		mockService.EXPECT().SaveBackImage(gomock.Any(), "079", "").
			Return("", dErrors.New(dErrors.CodeValidation, "Image payload is required"))

		res := s.postForm(t, router, "/save_back_image", url.Values{"cccd": {"079"}})
		assert.Equal(t, http.StatusBadRequest, res.Code)
	})
}

func (s *IntakeHandlerSuite) TestHandler_SaveRecord() {
	s.T().Run("threads the session username into the service", func(t *testing.T) {
		mockService, _, router := s.newHandler(t)
		mockService.EXPECT().SaveRecord(gomock.Any(), "agent1", &models.SaveRecordRequest{
			IDNumber: "079201012345",
			Name:     "NGUYEN VAN A",
		}).Return(nil)

		req := httptest.NewRequest(http.MethodPost, "/save_cccd_record",
			strings.NewReader(`{"cccd_moi":"079201012345","name":"NGUYEN VAN A","user":"spoofed"}`))
		req = req.WithContext(middleware.WithUsername(req.Context(), "agent1"))
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)

		require.Equal(t, http.StatusOK, res.Code)
		body := s.decodeBody(t, res)
		assert.Equal(t, true, body["ok"])
	})

	s.T().Run("duplicate identity number - 409", func(t *testing.T) {
		mockService, _, router := s.newHandler(t)
		mockService.EXPECT().SaveRecord(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(dErrors.New(dErrors.CodeConflict, "Identity number already exists"))

		req := httptest.NewRequest(http.MethodPost, "/save_cccd_record", strings.NewReader(`{"cccd_moi":"079"}`))
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)

		assert.Equal(t, http.StatusConflict, res.Code)
		body := s.decodeBody(t, res)
		assert.Equal(t, "conflict", body["error"])
	})

	s.T().Run("missing assets - 400", func(t *testing.T) {
		mockService, _, router := s.newHandler(t)
		mockService.EXPECT().SaveRecord(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(dErrors.New(dErrors.CodeValidation, "Card images have not been uploaded"))

		req := httptest.NewRequest(http.MethodPost, "/save_cccd_record", strings.NewReader(`{"cccd_moi":"079"}`))
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)

		assert.Equal(t, http.StatusBadRequest, res.Code)
	})
}

func (s *IntakeHandlerSuite) TestHandler_ListRecords() {
	s.T().Run("serializes dates as ISO-8601", func(t *testing.T) {
		mockService, _, router := s.newHandler(t)
		dob := time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)
		front := "cccd_front_079.jpg"
		mockService.EXPECT().ListRecords(gomock.Any(), "agent1").
			Return([]*models.IdentityRecord{{
				IDNumber:    "079201012345",
				Name:        "NGUYEN VAN A",
				DateOfBirth: &dob,
				FrontImage:  &front,
				CreatedAt:   time.Date(2026, time.August, 30, 10, 0, 0, 0, time.UTC),
			}}, nil)

		req := httptest.NewRequest(http.MethodGet, "/records/agent1", nil)
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)

		require.Equal(t, http.StatusOK, res.Code)
		body := s.decodeBody(t, res)
		assert.Equal(t, float64(1), body["count"])
		records := body["records"].([]any)
		first := records[0].(map[string]any)
		assert.Equal(t, "1990-01-01", first["dob"])
		assert.Equal(t, "2026-08-30T10:00:00", first["created_at"])
	})
}

func (s *IntakeHandlerSuite) TestHandler_Images() {
	s.T().Run("serves a stored asset", func(t *testing.T) {
		_, store, router := s.newHandler(t)
		require.NoError(t, store.Save("cccd_front_079.jpg", []byte("jpeg bytes")))

		req := httptest.NewRequest(http.MethodGet, "/images/cccd_front_079.jpg", nil)
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)

		require.Equal(t, http.StatusOK, res.Code)
		assert.Equal(t, "jpeg bytes", res.Body.String())
	})

	s.T().Run("absent asset - 404", func(t *testing.T) {
		_, _, router := s.newHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/images/cccd_front_000.jpg", nil)
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)

		assert.Equal(t, http.StatusNotFound, res.Code)
	})
}

func (s *IntakeHandlerSuite) TestHandler_Index() {
	s.T().Run("redirects to login without a session", func(t *testing.T) {
		_, _, router := s.newHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)

		assert.Equal(t, http.StatusFound, res.Code)
		assert.Equal(t, "/login", res.Header().Get("Location"))
	})
}

func (s *IntakeHandlerSuite) postForm(t *testing.T, router chi.Router, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

func mustParseFields(t *testing.T) *qr.Fields {
	t.Helper()
	return &qr.Fields{
		IDNumber:    "079201012345",
		OldIDNumber: "012345678",
		Name:        "NGUYEN VAN A",
		DateOfBirth: "1990-01-01",
		Gender:      "Male",
		Address:     "Hanoi",
		IssueDate:   "2020-01-01",
	}
}

func TestIntakeHandlerSuite(t *testing.T) {
	suite.Run(t, new(IntakeHandlerSuite))
}

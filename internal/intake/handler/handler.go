// Package handler is the thin HTTP layer over the intake service. It decodes
// requests, threads the authenticated username from the context, and keeps
// the wire contract the capture clients already speak.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"cccd-intake/internal/assets"
	"cccd-intake/internal/intake/models"
	"cccd-intake/internal/platform/middleware"
	"cccd-intake/internal/sessiontoken"
	jsonResponse "cccd-intake/internal/transport/http/json"
	"cccd-intake/internal/transport/http/shared"
	dErrors "cccd-intake/pkg/domain-errors"
)

// Service defines the interface for intake operations.
type Service interface {
	Login(ctx context.Context, username string) (*models.User, error)
	Scan(ctx context.Context, req *models.ScanRequest) (*models.ScanResult, error)
	SaveFrontImage(ctx context.Context, idNumber, imageB64 string) (*models.FrontUploadResult, error)
	SaveBackImage(ctx context.Context, idNumber, imageB64 string) (string, error)
	SaveRecord(ctx context.Context, username string, req *models.SaveRecordRequest) error
	ListRecords(ctx context.Context, username string) ([]*models.IdentityRecord, error)
}

// Handler handles the capture flow endpoints.
type Handler struct {
	intake Service
	assets *assets.Store
	tokens *sessiontoken.Service
	logger *slog.Logger
}

// New creates an intake Handler.
func New(intake Service, assetStore *assets.Store, tokens *sessiontoken.Service, logger *slog.Logger) *Handler {
	return &Handler{
		intake: intake,
		assets: assetStore,
		tokens: tokens,
		logger: logger,
	}
}

// Register registers the public routes: session bootstrap and image serving.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.HandleIndex)
	r.Get("/login", h.HandleLoginPage)
	r.Post("/login", h.HandleLogin)
	r.Get("/logout", h.HandleLogout)
	r.Get("/images/{filename}", h.HandleImage)
}

// RegisterProtected registers the intake routes; the parent router wraps them
// with the session middleware.
func (h *Handler) RegisterProtected(r chi.Router) {
	r.Post("/scan_qr_image", h.HandleScan)
	r.Post("/save_front_image", h.HandleSaveFrontImage)
	r.Post("/save_back_image", h.HandleSaveBackImage)
	r.Post("/save_cccd_record", h.HandleSaveRecord)
	r.Get("/records/{username}", h.HandleListRecords)
}

// HandleIndex is the entry point: with an established session it identifies
// the agent, otherwise it redirects to login.
func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessiontoken.CookieName)
	if err != nil || cookie.Value == "" {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	username, err := h.tokens.Validate(cookie.Value)
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	jsonResponse.WriteJSON(w, http.StatusOK, map[string]any{
		"ok":       true,
		"username": username,
	})
}

// HandleLoginPage responds to GET /login. The capture UI is out of scope;
// API clients get a hint instead of a rendered page.
func (h *Handler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	jsonResponse.WriteJSON(w, http.StatusOK, map[string]any{
		"ok":  true,
		"msg": "POST {\"username\"} to establish a session",
	})
}

// HandleLogin implements POST /login: lazy user creation plus session cookie.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Invalid JSON in request body"))
		return
	}

	user, err := h.intake.Login(ctx, req.Username)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	token, err := h.tokens.Generate(user.Username)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue session token",
			"error", err,
			"request_id", middleware.GetRequestID(ctx),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "Failed to establish session"))
		return
	}

	client := middleware.GetClientInfo(ctx)
	h.logger.InfoContext(ctx, "login",
		"username", user.Username,
		"browser", client.Browser,
		"os", client.OS,
		"request_id", middleware.GetRequestID(ctx),
	)

	http.SetCookie(w, &http.Cookie{
		Name:     sessiontoken.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokens.TTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	jsonResponse.WriteJSON(w, http.StatusOK, map[string]any{
		"ok":  true,
		"msg": "Login successful",
		"user": models.UserInfo{
			ID:       user.ID,
			Username: user.Username,
			Fullname: user.Fullname,
		},
	})
}

// HandleLogout clears the session cookie.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessiontoken.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/login", http.StatusFound)
}

// HandleScan implements POST /scan_qr_image.
func (h *Handler) HandleScan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Invalid JSON in request body"))
		return
	}

	result, err := h.intake.Scan(ctx, &req)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	jsonResponse.WriteJSON(w, http.StatusOK, map[string]any{
		"ok":        true,
		"data":      result.Fields,
		"duplicate": result.Duplicate,
		"msg":       "QR decoded successfully",
	})
}

// HandleSaveFrontImage implements POST /save_front_image (form fields cccd,
// image).
func (h *Handler) HandleSaveFrontImage(w http.ResponseWriter, r *http.Request) {
	result, err := h.intake.SaveFrontImage(r.Context(), r.PostFormValue("cccd"), r.PostFormValue("image"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	var face *string
	if result.FaceImage != "" {
		face = &result.FaceImage
	}
	jsonResponse.WriteJSON(w, http.StatusOK, map[string]any{
		"ok":    true,
		"front": result.FrontImage,
		"face":  face,
		"msg":   "Front image saved",
	})
}

// HandleSaveBackImage implements POST /save_back_image (form fields cccd,
// image).
func (h *Handler) HandleSaveBackImage(w http.ResponseWriter, r *http.Request) {
	backName, err := h.intake.SaveBackImage(r.Context(), r.PostFormValue("cccd"), r.PostFormValue("image"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	jsonResponse.WriteJSON(w, http.StatusOK, map[string]any{
		"ok":   true,
		"back": backName,
		"msg":  "Back image saved",
	})
}

// HandleSaveRecord implements POST /save_cccd_record. The owning user comes
// from the authenticated session, never from the payload.
func (h *Handler) HandleSaveRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.SaveRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Invalid JSON in request body"))
		return
	}

	if err := h.intake.SaveRecord(ctx, middleware.GetUsername(ctx), &req); err != nil {
		shared.WriteError(w, err)
		return
	}

	jsonResponse.WriteJSON(w, http.StatusOK, map[string]any{
		"ok":  true,
		"msg": "Record saved",
	})
}

// HandleListRecords implements GET /records/{username}.
func (h *Handler) HandleListRecords(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	records, err := h.intake.ListRecords(r.Context(), username)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	views := make([]models.RecordView, 0, len(records))
	for _, record := range records {
		views = append(views, models.NewRecordView(record))
	}

	jsonResponse.WriteJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"records": views,
		"count":   len(views),
		"msg":     "Records fetched",
	})
}

// HandleImage serves a stored asset by its exact derived filename.
func (h *Handler) HandleImage(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	path, err := h.assets.Path(filename)
	if err != nil || !h.assets.Exists(filename) {
		shared.WriteError(w, dErrors.New(dErrors.CodeNotFound, "Image not found"))
		return
	}
	http.ServeFile(w, r, path)
}

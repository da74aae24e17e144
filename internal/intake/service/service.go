// Package service implements the intake orchestrator: it coordinates the
// scan, upload and save steps of the capture flow and enforces the
// cross-step invariants between them.
package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"cccd-intake/internal/assets"
	"cccd-intake/internal/intake/models"
	"cccd-intake/internal/platform/metrics"
	"cccd-intake/internal/qr"
	"cccd-intake/internal/sentinel"
	dErrors "cccd-intake/pkg/domain-errors"
)

// recordListLimit caps how many records a listing returns.
const recordListLimit = 50

// UserStore defines the persistence interface for users.
// Error Contract: Find methods return sentinel.ErrNotFound (wrapped) when the
// entity doesn't exist.
type UserStore interface {
	FindOrCreateByUsername(ctx context.Context, username string) (*models.User, bool, error)
}

// RecordStore defines the persistence interface for identity records.
// Error Contract: Insert returns sentinel.ErrAlreadyUsed (wrapped) on an
// identity number collision; Find methods return sentinel.ErrNotFound.
type RecordStore interface {
	Insert(ctx context.Context, record *models.IdentityRecord) error
	FindByIDNumber(ctx context.Context, idNumber string) (*models.IdentityRecord, error)
	ListByUser(ctx context.Context, username string, limit int) ([]*models.IdentityRecord, error)
}

// AssetStore is the filesystem boundary for card images and face crops.
type AssetStore interface {
	Save(name string, data []byte) error
	Exists(name string) bool
	Path(name string) (string, error)
}

// FaceExtractor is the best-effort face crop capability. CropFace never
// fails the caller; it reports whether a crop was produced.
type FaceExtractor interface {
	Enabled() bool
	CropFace(ctx context.Context, srcPath, dstPath string) bool
}

// Service orchestrates the intake flow. It holds no locks: uniqueness of the
// identity number is enforced solely by the record store's constraint, and
// concurrent uploads for the same number are last-writer-wins.
type Service struct {
	users   UserStore
	records RecordStore
	assets  AssetStore
	faces   FaceExtractor
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// Option configures optional service dependencies.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New constructs the intake service.
func New(users UserStore, records RecordStore, assetStore AssetStore, faces FaceExtractor, opts ...Option) *Service {
	s := &Service{
		users:   users,
		records: records,
		assets:  assetStore,
		faces:   faces,
		logger:  slog.Default(),
		tracer:  otel.Tracer("cccd-intake/intake"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login finds or lazily creates the user for a username.
func (s *Service) Login(ctx context.Context, username string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "Username is required")
	}

	user, created, err := s.users.FindOrCreateByUsername(ctx, username)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Failed to look up user")
	}
	if created {
		s.logger.InfoContext(ctx, "user created at first login", "username", username)
		if s.metrics != nil {
			s.metrics.UsersCreated.Inc()
		}
	}
	if s.metrics != nil {
		s.metrics.Logins.Inc()
	}
	return user, nil
}

// Scan extracts identity fields from raw QR text, or from an image when no
// text is supplied. The duplicate flag is advisory only; final enforcement
// happens at save time through the store constraint.
func (s *Service) Scan(ctx context.Context, req *models.ScanRequest) (*models.ScanResult, error) {
	ctx, span := s.tracer.Start(ctx, "intake.Scan")
	defer span.End()

	fields, ok := s.parseQR(ctx, req)
	if !ok {
		if s.metrics != nil {
			s.metrics.QRScans.WithLabelValues("unreadable").Inc()
		}
		return nil, dErrors.New(dErrors.CodeBadRequest, "QR code is unreadable or malformed")
	}
	span.SetAttributes(attribute.String("cccd.id_number", fields.IDNumber))

	duplicate := false
	if _, err := s.records.FindByIDNumber(ctx, fields.IDNumber); err == nil {
		duplicate = true
		if s.metrics != nil {
			s.metrics.DuplicateScans.Inc()
		}
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Failed to check for duplicates")
	}

	if s.metrics != nil {
		s.metrics.QRScans.WithLabelValues("ok").Inc()
	}
	return &models.ScanResult{Fields: fields, Duplicate: duplicate}, nil
}

// parseQR prefers raw text over the image; the image path decodes a QR code
// from the pixels first. Either path ending in an unparseable payload yields
// ok=false, not an error.
func (s *Service) parseQR(ctx context.Context, req *models.ScanRequest) (*qr.Fields, bool) {
	if req.QRText != "" {
		if fields, ok := qr.ParseText(req.QRText); ok {
			return fields, true
		}
	}
	if req.Image == "" {
		return nil, false
	}

	raw, err := decodeBase64Image(req.Image)
	if err != nil {
		s.logger.WarnContext(ctx, "scan image is not valid base64", "error", err)
		return nil, false
	}
	text, err := qr.DecodeImage(raw)
	if err != nil {
		s.logger.WarnContext(ctx, "no qr code decoded from image", "error", err)
		return nil, false
	}
	return qr.ParseText(text)
}

// SaveFrontImage stores the front card image under its derived name and then
// attempts a best-effort face crop from it.
func (s *Service) SaveFrontImage(ctx context.Context, idNumber, imageB64 string) (*models.FrontUploadResult, error) {
	ctx, span := s.tracer.Start(ctx, "intake.SaveFrontImage")
	defer span.End()

	frontName, err := s.saveCardImage(ctx, idNumber, imageB64, assets.FrontName)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ImagesSaved.WithLabelValues("front").Inc()
	}

	result := &models.FrontUploadResult{FrontImage: frontName}
	result.FaceImage = s.extractFace(ctx, idNumber, frontName)
	return result, nil
}

// SaveBackImage stores the back card image under its derived name. No face
// extraction runs for the back side.
func (s *Service) SaveBackImage(ctx context.Context, idNumber, imageB64 string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "intake.SaveBackImage")
	defer span.End()

	backName, err := s.saveCardImage(ctx, idNumber, imageB64, assets.BackName)
	if err != nil {
		return "", err
	}
	if s.metrics != nil {
		s.metrics.ImagesSaved.WithLabelValues("back").Inc()
	}
	return backName, nil
}

func (s *Service) saveCardImage(ctx context.Context, idNumber, imageB64 string, deriveName func(string) string) (string, error) {
	idNumber = strings.TrimSpace(idNumber)
	if err := assets.ValidateIDNumber(idNumber); err != nil {
		return "", dErrors.New(dErrors.CodeValidation, "A valid identity number is required")
	}
	if imageB64 == "" {
		return "", dErrors.New(dErrors.CodeValidation, "Image payload is required")
	}

	raw, err := decodeBase64Image(imageB64)
	if err != nil {
		return "", dErrors.New(dErrors.CodeValidation, "Image payload is not valid base64")
	}

	name := deriveName(idNumber)
	if err := s.assets.Save(name, raw); err != nil {
		s.logger.ErrorContext(ctx, "failed to save card image", "asset", name, "error", err)
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "Failed to store image")
	}
	return name, nil
}

// extractFace runs the best-effort face crop. Failure silently downgrades to
// "no face"; it is never surfaced to the caller as an error.
func (s *Service) extractFace(ctx context.Context, idNumber, frontName string) string {
	if !s.faces.Enabled() {
		return ""
	}

	ctx, span := s.tracer.Start(ctx, "intake.ExtractFace")
	defer span.End()

	faceName := assets.FaceName(idNumber)
	srcPath, err := s.assets.Path(frontName)
	if err != nil {
		return ""
	}
	dstPath, err := s.assets.Path(faceName)
	if err != nil {
		return ""
	}

	if !s.faces.CropFace(ctx, srcPath, dstPath) {
		if s.metrics != nil {
			s.metrics.FaceCrops.WithLabelValues("none").Inc()
		}
		return ""
	}
	if s.metrics != nil {
		s.metrics.FaceCrops.WithLabelValues("produced").Inc()
	}
	return faceName
}

// SaveRecord persists the identity record for the authenticated username.
// It re-derives the expected asset names from the identity number and checks
// them on disk directly; client-supplied paths are never trusted. Front and
// back must exist, the face crop is optional.
func (s *Service) SaveRecord(ctx context.Context, username string, req *models.SaveRecordRequest) error {
	ctx, span := s.tracer.Start(ctx, "intake.SaveRecord")
	defer span.End()

	idNumber := strings.TrimSpace(req.IDNumber)
	if err := assets.ValidateIDNumber(idNumber); err != nil {
		return dErrors.New(dErrors.CodeValidation, "A valid identity number is required")
	}
	span.SetAttributes(attribute.String("cccd.id_number", idNumber))

	frontName := assets.FrontName(idNumber)
	backName := assets.BackName(idNumber)
	faceName := assets.FaceName(idNumber)

	if !s.assets.Exists(frontName) || !s.assets.Exists(backName) {
		return dErrors.New(dErrors.CodeValidation, "Card images have not been uploaded")
	}

	record := &models.IdentityRecord{
		IDNumber:    idNumber,
		OldIDNumber: strings.TrimSpace(req.OldIDNumber),
		Name:        strings.TrimSpace(req.Name),
		DateOfBirth: normalizeDate(req.DateOfBirth),
		Gender:      strings.TrimSpace(req.Gender),
		Address:     strings.TrimSpace(req.Address),
		IssueDate:   normalizeDate(req.IssueDate),
		Phone:       strings.TrimSpace(req.Phone),
		Username:    username,
		FrontImage:  &frontName,
		BackImage:   &backName,
	}
	if s.assets.Exists(faceName) {
		record.FaceImage = &faceName
	}

	if err := s.records.Insert(ctx, record); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			if s.metrics != nil {
				s.metrics.RecordDuplicates.Inc()
			}
			return dErrors.New(dErrors.CodeConflict, "Identity number already exists")
		}
		s.logger.ErrorContext(ctx, "failed to insert record", "id_number", idNumber, "error", err)
		return dErrors.Wrap(err, dErrors.CodeInternal, "Failed to save record")
	}

	s.logger.InfoContext(ctx, "identity record saved",
		"id_number", idNumber,
		"username", username,
		"face_cropped", record.FaceImage != nil,
	)
	if s.metrics != nil {
		s.metrics.RecordsSaved.Inc()
	}
	return nil
}

// ListRecords returns the newest records owned by username.
func (s *Service) ListRecords(ctx context.Context, username string) ([]*models.IdentityRecord, error) {
	if strings.TrimSpace(username) == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "Username is required")
	}
	records, err := s.records.ListByUser(ctx, username, recordListLimit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Failed to list records")
	}
	return records, nil
}

// decodeBase64Image strips an optional data-URI prefix and decodes the
// payload.
func decodeBase64Image(payload string) ([]byte, error) {
	if idx := strings.Index(payload, ","); idx >= 0 {
		payload = payload[idx+1:]
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode base64 image: %w", err)
	}
	return raw, nil
}

func normalizeDate(s string) *time.Time {
	d, ok := qr.NormalizeDate(strings.TrimSpace(s))
	if !ok {
		return nil
	}
	return &d
}

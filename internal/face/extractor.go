// Package face wraps a pure-Go face detection capability behind a best-effort
// adapter: it either produces a cropped face asset or reports "no face", and
// it never fails the upload that invoked it.
package face

import (
	"context"
	"image"
	"log/slog"
	"os"

	"github.com/disintegration/imaging"
	pigo "github.com/esimov/pigo/core"
	"golang.org/x/sync/semaphore"
)

// Extractor runs face detection over stored card images. It is constructed
// once at startup; if the cascade file cannot be loaded the extractor is
// permanently disabled for the process lifetime and every call reports
// "no face produced".
type Extractor struct {
	classifier *pigo.Pigo
	sem        *semaphore.Weighted
	logger     *slog.Logger
}

// New loads the detection cascade from cascadePath. Loading failures are
// logged and leave the extractor disabled rather than failing startup.
// maxConcurrent bounds how many detections may run at once so a slow
// inference cannot starve unrelated requests.
func New(cascadePath string, maxConcurrent int64, logger *slog.Logger) *Extractor {
	e := &Extractor{
		sem:    semaphore.NewWeighted(maxConcurrent),
		logger: logger,
	}

	cascade, err := os.ReadFile(cascadePath)
	if err != nil {
		logger.Warn("face cascade not available, face crop disabled",
			"path", cascadePath,
			"error", err,
		)
		return e
	}

	classifier, err := pigo.NewPigo().Unpack(cascade)
	if err != nil {
		logger.Warn("face cascade failed to unpack, face crop disabled",
			"path", cascadePath,
			"error", err,
		)
		return e
	}

	e.classifier = classifier
	logger.Info("face cascade loaded", "path", cascadePath)
	return e
}

// Enabled reports whether the detection capability initialized.
func (e *Extractor) Enabled() bool {
	return e.classifier != nil
}

// CropFace detects a face in the image at srcPath and writes the crop of the
// first clustered detection to dstPath. It returns false when the extractor
// is disabled, no face is found, or anything goes wrong; failures here are
// logged but never escalate to the caller.
func (e *Extractor) CropFace(ctx context.Context, srcPath, dstPath string) bool {
	if !e.Enabled() {
		return false
	}

	if err := e.sem.Acquire(ctx, 1); err != nil {
		e.logger.Warn("face detection skipped", "error", err)
		return false
	}
	defer e.sem.Release(1)

	src, err := pigo.GetImage(srcPath)
	if err != nil {
		e.logger.Error("face crop failed to read image", "path", srcPath, "error", err)
		return false
	}

	rect := e.detect(src)
	if rect == nil {
		return false
	}

	crop := imaging.Crop(src, *rect)
	if err := imaging.Save(crop, dstPath); err != nil {
		e.logger.Error("face crop failed to save", "path", dstPath, "error", err)
		return false
	}
	return true
}

// detect runs the cascade and returns the bounding rectangle of the first
// clustered detection, or nil when no face is found.
func (e *Extractor) detect(src *image.NRGBA) *image.Rectangle {
	bounds := src.Bounds()
	cols, rows := bounds.Dx(), bounds.Dy()
	if cols == 0 || rows == 0 {
		return nil
	}

	maxSize := cols
	if rows > maxSize {
		maxSize = rows
	}

	params := pigo.CascadeParams{
		MinSize:     20,
		MaxSize:     maxSize,
		ShiftFactor: 0.1,
		ScaleFactor: 1.1,
		ImageParams: pigo.ImageParams{
			Pixels: pigo.RgbToGrayscale(src),
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}

	detections := e.classifier.RunCascade(params, 0.0)
	detections = e.classifier.ClusterDetections(detections, 0.2)
	if len(detections) == 0 {
		return nil
	}

	det := detections[0]
	half := det.Scale / 2
	rect := image.Rect(det.Col-half, det.Row-half, det.Col+half, det.Row+half).
		Intersect(bounds)
	if rect.Empty() {
		return nil
	}
	return &rect
}

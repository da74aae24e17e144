package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures process level configuration.
type Server struct {
	Addr              string
	DatabaseURL       string
	ImagesDir         string
	CascadePath       string
	SessionSigningKey string
	SessionTTL        time.Duration
	FaceMaxConcurrent int64
}

var defaultSessionTTL = 24 * time.Hour

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("CCCD_INTAKE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	imagesDir := os.Getenv("IMAGES_DIR")
	if imagesDir == "" {
		imagesDir = "images"
	}

	cascadePath := os.Getenv("CASCADE_PATH")
	if cascadePath == "" {
		cascadePath = "models/facefinder"
	}

	sessionTTL := defaultSessionTTL
	if raw := os.Getenv("SESSION_TTL"); raw != "" {
		if duration, err := time.ParseDuration(raw); err == nil {
			sessionTTL = duration
		}
	}

	signingKey := os.Getenv("SESSION_SIGNING_KEY")
	if signingKey == "" {
		// Use a default for development - should be overridden in production
		signingKey = "dev-secret-key-change-in-production"
	}

	faceMaxConcurrent := int64(2)
	if raw := os.Getenv("FACE_MAX_CONCURRENT"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n > 0 {
			faceMaxConcurrent = n
		}
	}

	return Server{
		Addr:              addr,
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		ImagesDir:         imagesDir,
		CascadePath:       cascadePath,
		SessionSigningKey: signingKey,
		SessionTTL:        sessionTTL,
		FaceMaxConcurrent: faceMaxConcurrent,
	}
}

package models

import (
	"cccd-intake/internal/qr"
)

// UserInfo is the user payload returned by login.
type UserInfo struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Fullname string `json:"fullname"`
}

// ScanResult is the outcome of a successful scan step. Duplicate is advisory
// only: it flags an already persisted identity number without blocking the
// flow.
type ScanResult struct {
	Fields    *qr.Fields
	Duplicate bool
}

// FrontUploadResult reports the stored front asset and the optional face crop.
type FrontUploadResult struct {
	FrontImage string
	FaceImage  string // empty when no face was produced
}

// RecordView is the wire shape of a persisted record, with date fields
// serialized as ISO-8601 calendar dates.
type RecordView struct {
	IDNumber    string  `json:"cccd_moi"`
	Name        string  `json:"name"`
	DateOfBirth string  `json:"dob"`
	Phone       string  `json:"phone"`
	FrontImage  *string `json:"front_image"`
	BackImage   *string `json:"back_image"`
	FaceImage   *string `json:"face_cropped"`
	CreatedAt   string  `json:"created_at"`
}

// NewRecordView converts a persisted record to its wire shape.
func NewRecordView(record *IdentityRecord) RecordView {
	view := RecordView{
		IDNumber:   record.IDNumber,
		Name:       record.Name,
		Phone:      record.Phone,
		FrontImage: record.FrontImage,
		BackImage:  record.BackImage,
		FaceImage:  record.FaceImage,
		CreatedAt:  record.CreatedAt.Format("2006-01-02T15:04:05"),
	}
	if record.DateOfBirth != nil {
		view.DateOfBirth = record.DateOfBirth.Format(qr.ISODate)
	}
	return view
}

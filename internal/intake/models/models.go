package models

import "time"

// DefaultRole is assigned to users created lazily at login.
const DefaultRole = "user"

// User is an intake agent. Users are created the first time a username shows
// up at login and never explicitly updated afterward.
type User struct {
	ID        int64
	Username  string
	Fullname  string
	Role      string
	CreatedAt time.Time
}

// IdentityRecord is the canonical extracted and persisted identity entity.
// The identity number (IDNumber) is the primary business key and is unique
// across all records.
type IdentityRecord struct {
	ID          int64
	IDNumber    string
	OldIDNumber string
	Name        string
	DateOfBirth *time.Time
	Gender      string
	Address     string
	IssueDate   *time.Time
	Phone       string
	Username    string
	FrontImage  *string
	BackImage   *string
	FaceImage   *string
	CreatedAt   time.Time
}

package models

// LoginRequest establishes a session for an intake agent.
type LoginRequest struct {
	Username string `json:"username"`
}

// ScanRequest carries either the raw decoded QR text or a base64 image that
// still contains the QR code. Text takes precedence when both are present.
type ScanRequest struct {
	Image  string `json:"image"`
	QRText string `json:"qr_text"`
}

// SaveRecordRequest is the JSON body of the save step. Date fields are the
// canonical ISO strings produced by the scan step; the service re-normalizes
// them before persisting. Asset paths are never taken from this payload.
type SaveRecordRequest struct {
	IDNumber    string `json:"cccd_moi"`
	OldIDNumber string `json:"cmnd_cu"`
	Name        string `json:"name"`
	DateOfBirth string `json:"dob"`
	Gender      string `json:"gender"`
	Address     string `json:"address"`
	IssueDate   string `json:"issue_date"`
	Phone       string `json:"phone"`
}

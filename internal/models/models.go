package models

import (
	"time"
)

// Extraction job statuses.
const (
	StatusUploaded   = "uploaded"
	StatusProcessing = "processing"
	StatusReady      = "ready"
	StatusFailed     = "failed"
)

// Extraction represents an uploaded document and the result of reading it.
type Extraction struct {
	ID          string `db:"id" json:"id"`
	UserID      string `db:"user_id" json:"user_id"`
	FileName    string `db:"file_name" json:"file_name"`
	ContentType string `db:"content_type" json:"content_type"`
	StorageURL  string `db:"storage_url" json:"storage_url"` // S3 URL
	Status      string `db:"status" json:"status"`           // uploaded | processing | ready | failed
	Kind        string `db:"kind" json:"kind,omitempty"`     // resolved format, e.g. "pdf"

	// Object location in storage, set at upload.
	Bucket    string `db:"bucket" json:"-"`
	ObjectKey string `db:"object_key" json:"-"`

	Text       string `db:"text" json:"text,omitempty"`
	Words      int    `db:"words" json:"words"`
	Characters int    `db:"characters" json:"characters"`
	Pages      int    `db:"pages" json:"pages,omitempty"`
	FileSize   int64  `db:"file_size" json:"file_size"`

	ErrorCode    string `db:"error_code" json:"error_code,omitempty"`
	ErrorMessage string `db:"error_message" json:"error_message,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ExtractionResult is what a finished job writes back.
type ExtractionResult struct {
	Text       string
	Words      int
	Characters int
	Pages      int
	FileSize   int64
}

package core

import (
	"context"

	"github.com/markdave123-py/docreader/internal/models"
)

// DbClient defines the persistence operations for extraction records.
// It abstracts Postgres so higher layers never depend on a specific DB.
type DbClient interface {
	CreateExtraction(ctx context.Context, rec *models.Extraction) error
	GetExtractionByID(ctx context.Context, id string) (*models.Extraction, error)
	ListExtractionsByUser(ctx context.Context, userID string) ([]models.Extraction, error)
	UpdateExtractionStatus(ctx context.Context, id string, status string) error

	SaveExtractionResult(ctx context.Context, id string, res models.ExtractionResult) error
	MarkExtractionFailed(ctx context.Context, id, code, message string) error

	Close() error
}

// ObjectClient defines interactions with S3 or any object storage.
type ObjectClient interface {
	UploadFile(ctx context.Context, bucket, key string, data []byte, contentType string) (url string, err error)
	DeleteFile(ctx context.Context, bucket, key string) error
	GetFile(ctx context.Context, bucket, key string) ([]byte, error)
}

package services

import (
	"context"
	"errors"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/markdave123-py/docreader/internal/core"
	"github.com/markdave123-py/docreader/internal/core/reader"
	"github.com/markdave123-py/docreader/internal/models"
)

// ErrNotFound is returned when an extraction does not exist or belongs to
// another user.
var ErrNotFound = errors.New("extraction not found")

type DocumentService struct {
	db      core.DbClient
	storage core.ObjectClient
	bucket  string
}

func NewDocumentService(db core.DbClient, storage core.ObjectClient, bucket string) *DocumentService {
	return &DocumentService{db: db, storage: storage, bucket: bucket}
}

// UploadAndCreate stores the file and records an extraction in status
// "uploaded". Files the reader cannot handle are rejected before upload.
func (s *DocumentService) UploadAndCreate(ctx context.Context, userID, filename, contentType string, data []byte) (*models.Extraction, error) {
	kind, ok := reader.ResolveKind(filename, contentType)
	if !ok {
		return nil, &reader.Error{
			Code:    reader.CodeUnsupportedBufferFormat,
			Message: "Unsupported buffer format for " + filename,
		}
	}

	id := uuid.NewString()
	key := s.objectKey(userID, id, filename)

	url, err := s.storage.UploadFile(ctx, s.bucket, key, data, contentType)
	if err != nil {
		return nil, err
	}

	rec := &models.Extraction{
		ID:          id,
		UserID:      userID,
		FileName:    filename,
		ContentType: contentType,
		StorageURL:  url,
		Bucket:      s.bucket,
		ObjectKey:   key,
		Status:      models.StatusUploaded,
		Kind:        string(kind),
		FileSize:    int64(len(data)),
	}
	if err := s.db.CreateExtraction(ctx, rec); err != nil {
		_ = s.storage.DeleteFile(ctx, s.bucket, key)
		return nil, err
	}
	return rec, nil
}

// Get returns the caller's extraction id.
func (s *DocumentService) Get(ctx context.Context, userID, id string) (*models.Extraction, error) {
	rec, err := s.db.GetExtractionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil || rec.UserID != userID {
		return nil, ErrNotFound
	}
	return rec, nil
}

func (s *DocumentService) ListByUser(ctx context.Context, userID string) ([]models.Extraction, error) {
	return s.db.ListExtractionsByUser(ctx, userID)
}

// objectKey creates a consistent S3 key layout.
func (s *DocumentService) objectKey(userID, id, filename string) string {
	filename = path.Base(strings.ReplaceAll(strings.TrimSpace(filename), "\\", "/"))
	filename = strings.ReplaceAll(filename, " ", "_")
	return path.Join("users", userID, "extractions", id, filename)
}

package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/markdave123-py/docreader/internal/core/reader"
	"github.com/markdave123-py/docreader/internal/models"
)

type fakeDB struct {
	recs      map[string]*models.Extraction
	createErr error
}

func (f *fakeDB) CreateExtraction(_ context.Context, rec *models.Extraction) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.recs[rec.ID] = rec
	return nil
}

func (f *fakeDB) GetExtractionByID(_ context.Context, id string) (*models.Extraction, error) {
	return f.recs[id], nil
}

func (f *fakeDB) ListExtractionsByUser(_ context.Context, userID string) ([]models.Extraction, error) {
	var out []models.Extraction
	for _, r := range f.recs {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeDB) UpdateExtractionStatus(context.Context, string, string) error { return nil }

func (f *fakeDB) SaveExtractionResult(context.Context, string, models.ExtractionResult) error {
	return nil
}

func (f *fakeDB) MarkExtractionFailed(context.Context, string, string, string) error { return nil }

func (f *fakeDB) Close() error { return nil }

type fakeStorage struct {
	keys    map[string][]byte
	deleted []string
}

func (f *fakeStorage) UploadFile(_ context.Context, bucket, key string, data []byte, _ string) (string, error) {
	f.keys[key] = data
	return "https://" + bucket + ".s3.us-east-2.amazonaws.com/" + key, nil
}

func (f *fakeStorage) DeleteFile(_ context.Context, _, key string) error {
	f.deleted = append(f.deleted, key)
	delete(f.keys, key)
	return nil
}

func (f *fakeStorage) GetFile(_ context.Context, _, key string) ([]byte, error) {
	return f.keys[key], nil
}

func TestUploadAndCreate(t *testing.T) {
	db := &fakeDB{recs: map[string]*models.Extraction{}}
	st := &fakeStorage{keys: map[string][]byte{}}
	svc := NewDocumentService(db, st, "docs")

	rec, err := svc.UploadAndCreate(context.Background(), "u1", "My Report.PDF", "application/pdf", []byte("%PDF"))
	if err != nil {
		t.Fatal(err)
	}
	if rec.Status != models.StatusUploaded || rec.Kind != "pdf" || rec.FileSize != 4 {
		t.Errorf("record = %+v", rec)
	}
	wantKey := "users/u1/extractions/" + rec.ID + "/My_Report.PDF"
	if _, ok := st.keys[wantKey]; !ok {
		t.Errorf("object not stored under %s: %v", wantKey, st.keys)
	}
	if !strings.HasSuffix(rec.StorageURL, wantKey) {
		t.Errorf("StorageURL = %s", rec.StorageURL)
	}
	if rec.Bucket != "docs" || rec.ObjectKey != wantKey {
		t.Errorf("location = %q, %q", rec.Bucket, rec.ObjectKey)
	}
}

func TestUploadAndCreate_Unsupported(t *testing.T) {
	st := &fakeStorage{keys: map[string][]byte{}}
	svc := NewDocumentService(&fakeDB{recs: map[string]*models.Extraction{}}, st, "docs")

	_, err := svc.UploadAndCreate(context.Background(), "u1", "photo.png", "image/png", []byte("x"))
	if !reader.IsCode(err, reader.CodeUnsupportedBufferFormat) {
		t.Fatalf("err = %v", err)
	}
	if len(st.keys) != 0 {
		t.Error("unsupported file must not be uploaded")
	}
}

func TestUploadAndCreate_DBFailureRemovesObject(t *testing.T) {
	st := &fakeStorage{keys: map[string][]byte{}}
	svc := NewDocumentService(&fakeDB{recs: map[string]*models.Extraction{}, createErr: errors.New("db down")}, st, "docs")

	if _, err := svc.UploadAndCreate(context.Background(), "u1", "a.txt", "text/plain", []byte("x")); err == nil {
		t.Fatal("expected error")
	}
	if len(st.deleted) != 1 || len(st.keys) != 0 {
		t.Errorf("object should be removed, deleted=%v keys=%v", st.deleted, st.keys)
	}
}

func TestGet_OwnerOnly(t *testing.T) {
	db := &fakeDB{recs: map[string]*models.Extraction{
		"x": {ID: "x", UserID: "owner"},
	}}
	svc := NewDocumentService(db, &fakeStorage{}, "docs")

	if _, err := svc.Get(context.Background(), "owner", "x"); err != nil {
		t.Errorf("owner lookup failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), "intruder", "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("other user should get ErrNotFound, got %v", err)
	}
	if _, err := svc.Get(context.Background(), "owner", "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing should be ErrNotFound, got %v", err)
	}
}

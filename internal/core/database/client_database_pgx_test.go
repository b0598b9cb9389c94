package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/markdave123-py/docreader/internal/config"
	"github.com/markdave123-py/docreader/internal/models"
)

func TestBuildDSN(t *testing.T) {
	if _, err := buildDSN(&config.Config{}); err == nil {
		t.Error("expected error for empty DATABASE_URL")
	}

	plain := "postgres://u:p@localhost:5432/docs"
	got, err := buildDSN(&config.Config{DatabaseURL: plain})
	if err != nil || got != plain {
		t.Errorf("buildDSN = %q, %v", got, err)
	}

	if _, err := buildDSN(&config.Config{DatabaseURL: plain, SslCertPath: "/nope/ca.pem"}); err == nil {
		t.Error("expected error for missing cert")
	}

	cert := filepath.Join(t.TempDir(), "ca.pem")
	if err := os.WriteFile(cert, []byte("cert"), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err = buildDSN(&config.Config{DatabaseURL: plain, SslCertPath: cert})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "sslmode=verify-ca") || !strings.Contains(got, "sslrootcert=") {
		t.Errorf("dsn = %q", got)
	}
}

func TestInitSQLEmbedded(t *testing.T) {
	b, err := bootstrapFS.ReadFile("scripts/initdb.sql")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"CREATE TABLE IF NOT EXISTS extractions",
		"docreader_meta",
		"ADD COLUMN IF NOT EXISTS object_key",
		fmt.Sprintf("VALUES (%d)", schemaVersion),
	} {
		if !strings.Contains(string(b), want) {
			t.Errorf("initdb.sql missing %q", want)
		}
	}
}

// TestDatabaseClient_Lifecycle runs against a real Postgres when
// TEST_DATABASE_URL is set.
func TestDatabaseClient_Lifecycle(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	c, err := NewDatabaseClient(ctx, &config.Config{DatabaseURL: dsn})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	user := "test-" + uuid.NewString()
	rec := &models.Extraction{
		ID:        uuid.NewString(),
		UserID:    user,
		FileName:  "a.txt",
		Bucket:    "my.docs.bucket",
		ObjectKey: "users/u/a.txt",
		Status:    models.StatusUploaded,
		Kind:      "txt",
		FileSize:  5,
	}
	if err := c.CreateExtraction(ctx, rec); err != nil {
		t.Fatal(err)
	}
	if err := c.UpdateExtractionStatus(ctx, rec.ID, models.StatusProcessing); err != nil {
		t.Fatal(err)
	}
	if err := c.SaveExtractionResult(ctx, rec.ID, models.ExtractionResult{Text: "hello", Words: 1, Characters: 5, FileSize: 5}); err != nil {
		t.Fatal(err)
	}

	got, err := c.GetExtractionByID(ctx, rec.ID)
	if err != nil || got == nil {
		t.Fatalf("GetExtractionByID = %v, %v", got, err)
	}
	if got.Status != models.StatusReady || got.Text != "hello" || got.Bucket != "my.docs.bucket" || got.ObjectKey != "users/u/a.txt" {
		t.Errorf("record = %+v", got)
	}

	list, err := c.ListExtractionsByUser(ctx, user)
	if err != nil || len(list) != 1 {
		t.Fatalf("ListExtractionsByUser = %v, %v", list, err)
	}

	if err := c.MarkExtractionFailed(ctx, uuid.NewString(), "X", "y"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if missing, err := c.GetExtractionByID(ctx, uuid.NewString()); missing != nil || err != nil {
		t.Errorf("missing record = %v, %v", missing, err)
	}
}

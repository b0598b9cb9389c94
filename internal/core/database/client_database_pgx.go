package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/markdave123-py/docreader/internal/config"
	"github.com/markdave123-py/docreader/internal/core"
	"github.com/markdave123-py/docreader/internal/models"
)

var _ core.DbClient = (*DatabaseClient)(nil)

// ErrNotFound is returned by updates that match no extraction.
var ErrNotFound = errors.New("extraction not found")

type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(ctx context.Context, cfg *config.Config) (*DatabaseClient, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database client configuration is nil")
	}
	dsn, err := buildDSN(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(10 * time.Minute)

	ctxPing, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := db.PingContext(ctxPing); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := EnsureBootstrapped(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

// buildDSN appends certificate verification to DATABASE_URL when
// SSL_CERT_PATH is configured.
func buildDSN(cfg *config.Config) (string, error) {
	if cfg.DatabaseURL == "" {
		return "", fmt.Errorf("DATABASE_URL is empty")
	}
	if cfg.SslCertPath == "" {
		return cfg.DatabaseURL, nil
	}
	if _, err := os.Stat(cfg.SslCertPath); err != nil {
		return "", fmt.Errorf("ssl cert not accessible at %q: %w", cfg.SslCertPath, err)
	}

	u, err := url.Parse(cfg.DatabaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid DATABASE_URL: %w", err)
	}
	q := u.Query()
	q.Set("sslmode", "verify-ca")
	q.Set("sslrootcert", cfg.SslCertPath)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *DatabaseClient) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

const extractionColumns = `id, user_id, file_name, content_type, storage_url, bucket, object_key, status, kind,
	text, words, characters, pages, file_size, error_code, error_message, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanExtraction(s scanner) (*models.Extraction, error) {
	var e models.Extraction
	err := s.Scan(
		&e.ID, &e.UserID, &e.FileName, &e.ContentType, &e.StorageURL, &e.Bucket, &e.ObjectKey, &e.Status, &e.Kind,
		&e.Text, &e.Words, &e.Characters, &e.Pages, &e.FileSize, &e.ErrorCode, &e.ErrorMessage,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *DatabaseClient) CreateExtraction(ctx context.Context, rec *models.Extraction) error {
	if rec == nil {
		return errors.New("nil extraction")
	}
	const q = `
		INSERT INTO extractions
			(id, user_id, file_name, content_type, storage_url, bucket, object_key, status, kind, file_size, created_at, updated_at)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())
		RETURNING created_at, updated_at
	`
	return c.db.QueryRowContext(ctx, q,
		rec.ID, rec.UserID, rec.FileName, rec.ContentType, rec.StorageURL, rec.Bucket, rec.ObjectKey, rec.Status, rec.Kind, rec.FileSize,
	).Scan(&rec.CreatedAt, &rec.UpdatedAt)
}

// GetExtractionByID returns nil, nil when no record matches.
func (c *DatabaseClient) GetExtractionByID(ctx context.Context, id string) (*models.Extraction, error) {
	q := `SELECT ` + extractionColumns + ` FROM extractions WHERE id = $1`
	e, err := scanExtraction(c.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (c *DatabaseClient) ListExtractionsByUser(ctx context.Context, userID string) ([]models.Extraction, error) {
	q := `SELECT ` + extractionColumns + ` FROM extractions WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := c.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Extraction{}
	for rows.Next() {
		e, err := scanExtraction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (c *DatabaseClient) UpdateExtractionStatus(ctx context.Context, id string, status string) error {
	const q = `
		UPDATE extractions
		SET status = $2, updated_at = now()
		WHERE id = $1
	`
	return c.execOne(ctx, id, q, id, status)
}

func (c *DatabaseClient) SaveExtractionResult(ctx context.Context, id string, res models.ExtractionResult) error {
	const q = `
		UPDATE extractions
		SET status = $2, text = $3, words = $4, characters = $5, pages = $6, file_size = $7,
			error_code = '', error_message = '', updated_at = now()
		WHERE id = $1
	`
	return c.execOne(ctx, id, q, id, models.StatusReady, res.Text, res.Words, res.Characters, res.Pages, res.FileSize)
}

func (c *DatabaseClient) MarkExtractionFailed(ctx context.Context, id, code, message string) error {
	const q = `
		UPDATE extractions
		SET status = $2, error_code = $3, error_message = $4, updated_at = now()
		WHERE id = $1
	`
	return c.execOne(ctx, id, q, id, models.StatusFailed, code, message)
}

func (c *DatabaseClient) execOne(ctx context.Context, id, q string, args ...any) error {
	res, err := c.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

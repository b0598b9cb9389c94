package ingestion_engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/markdave123-py/docreader/internal/core"
	"github.com/markdave123-py/docreader/internal/core/reader"
	"github.com/markdave123-py/docreader/internal/models"
)

// CodeInternal marks failures that happen outside the reader, such as a
// missing object.
const CodeInternal = "INTERNAL_ERROR"

var _ Ingestor = (*DocumentIngestor)(nil)

// NewDocumentIngestor constructs the ingestor with a bounded job queue.
func NewDocumentIngestor(db core.DbClient, obj core.ObjectClient, r DocumentReader, cfg IngestConfig) *DocumentIngestor {
	cfg.defaults()
	return &DocumentIngestor{
		db: db, obj: obj, reader: r, cfg: cfg,
		jobs: make(chan string, cfg.QueueSize),
	}
}

// Start runs numWorkers goroutines reading from the jobs channel until
// ctx is done.
func (i *DocumentIngestor) Start(ctx context.Context, numWorkers int) {
	for w := 1; w <= numWorkers; w++ {
		i.wg.Add(1)
		go func(w int) {
			defer i.wg.Done()
			for {
				select {
				case <-ctx.Done():
					slog.Debug("ingestor worker shutting down", "worker", w)
					return
				case id := <-i.jobs:
					slog.Info("processing extraction", "id", id, "worker", w)

					if err := i.ProcessOne(ctx, id); err != nil {
						slog.Error("extraction failed", "id", id, "worker", w, "error", err)
					}
				}
			}
		}(w)
	}
}

// Wait blocks until every worker has returned.
func (i *DocumentIngestor) Wait() {
	i.wg.Wait()
}

// Enqueue schedules an extraction ID.
// If the queue is full, this call will block until space frees up.
func (i *DocumentIngestor) Enqueue(id string) {
	i.jobs <- id
}

// ProcessOne fetches the stored document, reads it and records either the
// result or the classified failure.
func (i *DocumentIngestor) ProcessOne(ctx context.Context, id string) error {
	rec, err := i.db.GetExtractionByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load extraction %s: %w", id, err)
	}
	if rec == nil {
		return fmt.Errorf("extraction not found: %s", id)
	}

	if err := i.db.UpdateExtractionStatus(ctx, id, models.StatusProcessing); err != nil {
		return fmt.Errorf("mark processing: %w", err)
	}

	proctx, cancel := context.WithTimeout(ctx, i.cfg.Timeout)
	defer cancel()

	bucket, key := rec.Bucket, rec.ObjectKey
	if bucket == "" || key == "" {
		bucket, key = parseS3URL(rec.StorageURL)
	}
	data, err := i.obj.GetFile(proctx, bucket, key)
	if err != nil {
		return i.fail(ctx, id, fmt.Errorf("get object: %w", err))
	}

	doc, err := i.reader.ReadDocumentFromBuffer(proctx, data, rec.FileName, rec.ContentType)
	if err != nil {
		return i.fail(ctx, id, err)
	}

	res := models.ExtractionResult{
		Text:       doc.Text,
		Words:      doc.Metadata.Words,
		Characters: doc.Metadata.Characters,
		Pages:      doc.Metadata.Pages,
		FileSize:   doc.Metadata.FileSize,
	}
	if err := i.db.SaveExtractionResult(ctx, id, res); err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	slog.Info("extraction ready", "id", id, "words", res.Words, "characters", res.Characters)
	return nil
}

// fail records err on the extraction and returns it.
func (i *DocumentIngestor) fail(ctx context.Context, id string, err error) error {
	code := string(reader.CodeOf(err))
	if code == "" {
		code = CodeInternal
	}
	if uerr := i.db.MarkExtractionFailed(ctx, id, code, err.Error()); uerr != nil {
		slog.Error("could not record failure", "id", id, "error", uerr)
	}
	return err
}

// parseS3URL extracts the bucket and key from an S3 object URL. It is
// only used for records written before the object location was stored.
// Both virtual-hosted and path-style URLs are accepted, and dotted bucket
// names are kept whole.
//
//	https://my.bucket.s3.us-east-2.amazonaws.com/path/to/file.pdf
//	https://s3.us-east-2.amazonaws.com/my.bucket/path/to/file.pdf
func parseS3URL(u string) (bucket, key string) {
	hostPath := strings.SplitN(strings.TrimPrefix(u, "https://"), "/", 2)
	host := hostPath[0]
	if len(hostPath) == 2 {
		key = hostPath[1]
	}

	if strings.HasPrefix(host, "s3.") || strings.HasPrefix(host, "s3-") {
		bucket, key, _ = strings.Cut(key, "/")
		return bucket, key
	}
	for _, marker := range []string{".s3.", ".s3-"} {
		if i := strings.LastIndex(host, marker); i > 0 {
			return host[:i], key
		}
	}
	bucket, _, _ = strings.Cut(host, ".")
	return bucket, key
}

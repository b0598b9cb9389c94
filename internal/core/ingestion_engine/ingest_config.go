package ingestion_engine

import (
	"context"
	"sync"
	"time"

	"github.com/markdave123-py/docreader/internal/core"
	"github.com/markdave123-py/docreader/internal/core/reader"
)

// IngestConfig tunes the extraction workers.
//
// QueueSize: capacity of the in-memory job queue (default 64).
// Timeout:   upper bound for fetching and reading one document (default 5m).
type IngestConfig struct {
	QueueSize int
	Timeout   time.Duration
}

func (c *IngestConfig) defaults() {
	if c.QueueSize <= 0 {
		c.QueueSize = 64
	}
	if c.Timeout <= 0 {
		c.Timeout = 5 * time.Minute
	}
}

// DocumentReader is the part of *reader.Reader the workers need.
type DocumentReader interface {
	ReadDocumentFromBuffer(ctx context.Context, data []byte, name, mimeType string) (*reader.DocumentContent, error)
}

// DocumentIngestor runs uploaded documents through the reader in the
// background:
//
// db:     persistence for extraction records.
// obj:    object storage holding the uploaded bytes.
// reader: the document reader.
// jobs:   in-memory queue of extraction IDs.
type DocumentIngestor struct {
	db     core.DbClient
	obj    core.ObjectClient
	reader DocumentReader
	cfg    IngestConfig
	jobs   chan string
	wg     sync.WaitGroup
}

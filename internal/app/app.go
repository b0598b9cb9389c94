package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/markdave123-py/docreader/internal/api/handlers"
	"github.com/markdave123-py/docreader/internal/config"
	"github.com/markdave123-py/docreader/internal/core"
	db "github.com/markdave123-py/docreader/internal/core/database"
	"github.com/markdave123-py/docreader/internal/core/extractors"
	"github.com/markdave123-py/docreader/internal/core/ingestion_engine"
	objectclient "github.com/markdave123-py/docreader/internal/core/object-client"
	"github.com/markdave123-py/docreader/internal/core/reader"
	"github.com/markdave123-py/docreader/internal/services"
)

type App struct {
	Reader       *reader.Reader
	DBClient     core.DbClient
	ObjectClient core.ObjectClient
	DocProcessor *ingestion_engine.DocumentIngestor
	Server       *Server
}

// NewReader builds the document reader from configuration.
func NewReader(cfg *config.Config, logger *slog.Logger) *reader.Reader {
	return reader.New(reader.Config{
		Debug:          cfg.Debug,
		StagingDir:     cfg.StagingDir,
		MaxConcurrency: cfg.MaxConcurrency,
		RenderMarkdown: cfg.RenderMarkdown,
		Logger:         logger,
		Legacy:         extractors.NewDocconvExtractor(extractors.LegacyConfig{Catppt: cfg.CatpptPath}, logger),
	})
}

// NewApp wires the reader and, when configured, Postgres, S3 and the
// extraction workers. Workers run until ctx is done.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{Reader: NewReader(cfg, logger)}

	var docs *services.DocumentService
	if cfg.StorageEnabled() {
		appCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
		defer cancel()

		dbClient, err := db.NewDatabaseClient(appCtx, cfg)
		if err != nil {
			return nil, err
		}
		a.DBClient = dbClient
		logger.Info("database initialized and ready")

		objClient, err := objectclient.NewS3Client(appCtx, cfg)
		if err != nil {
			_ = dbClient.Close()
			return nil, err
		}
		a.ObjectClient = objClient
		logger.Info("object client initialized and ready")

		docs = services.NewDocumentService(dbClient, objClient, cfg.BucketName)
		a.DocProcessor = ingestion_engine.NewDocumentIngestor(dbClient, objClient, a.Reader, ingestion_engine.IngestConfig{})
		a.DocProcessor.Start(ctx, cfg.IngestWorkers)
	} else {
		logger.Info("storage not configured; upload routes disabled")
	}

	var ing ingestion_engine.Ingestor
	if a.DocProcessor != nil {
		ing = a.DocProcessor
	}
	a.Server = NewServer(cfg, handlers.NewDocumentHandler(a.Reader, docs, ing, cfg))
	return a, nil
}

func (a *App) Close() {
	if a.DocProcessor != nil {
		a.DocProcessor.Wait()
	}
	if a.DBClient != nil {
		_ = a.DBClient.Close()
	}
}

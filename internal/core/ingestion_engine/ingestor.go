package ingestion_engine

import "context"

type Ingestor interface {
	Start(ctx context.Context, numWorkers int)
	Enqueue(id string)
	ProcessOne(ctx context.Context, id string) error
}

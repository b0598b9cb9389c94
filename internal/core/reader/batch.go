package reader

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ReadMultipleDocuments reads every path concurrently. All reads settle
// before returning; if any failed, the first failure in input order is
// returned as a MULTI_READ_ERROR and no results are returned.
func (r *Reader) ReadMultipleDocuments(ctx context.Context, paths []string) ([]*DocumentContent, error) {
	docs, errs := r.fanOut(len(paths), func(i int) (*DocumentContent, error) {
		return r.ReadDocument(ctx, paths[i])
	})
	for i, err := range errs {
		if err != nil {
			return nil, r.fail(&Error{
				Code:    CodeMultiRead,
				Message: "Failed to read multiple documents: " + paths[i] + ": " + err.Error(),
				Err:     err,
			})
		}
	}
	return docs, nil
}

// ReadMultipleFromBuffers is ReadMultipleDocuments for in-memory
// documents; failures are reported as MULTI_BUFFER_READ_ERROR naming the
// item's display name.
func (r *Reader) ReadMultipleFromBuffers(ctx context.Context, items []BufferInput) ([]*DocumentContent, error) {
	docs, errs := r.fanOut(len(items), func(i int) (*DocumentContent, error) {
		it := items[i]
		return r.ReadDocumentFromBuffer(ctx, it.Data, it.Name, it.MimeType)
	})
	for i, err := range errs {
		if err != nil {
			return nil, r.fail(&Error{
				Code:    CodeMultiBufferRead,
				Message: "Failed to read multiple buffers: " + items[i].Name + ": " + err.Error(),
				Err:     err,
			})
		}
	}
	return docs, nil
}

// fanOut runs fn for every index, at most MaxConcurrency at a time, and
// waits for all of them. Items never cancel each other.
func (r *Reader) fanOut(n int, fn func(i int) (*DocumentContent, error)) ([]*DocumentContent, []error) {
	docs := make([]*DocumentContent, n)
	errs := make([]error, n)

	var g errgroup.Group
	if r.cfg.MaxConcurrency > 0 {
		g.SetLimit(r.cfg.MaxConcurrency)
	}
	for i := 0; i < n; i++ {
		g.Go(func() error {
			docs[i], errs[i] = fn(i)
			return nil
		})
	}
	_ = g.Wait()
	return docs, errs
}

package reader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// ReadPdf extracts text, page count and document info from the PDF at path.
func (r *Reader) ReadPdf(ctx context.Context, path string) (*DocumentContent, error) {
	doc, err := r.readPdfFile(ctx, path, 0)
	return doc, r.fail(err)
}

// ReadPdfFromBuffer is ReadPdf for an in-memory document.
func (r *Reader) ReadPdfFromBuffer(ctx context.Context, data []byte, name string) (*DocumentContent, error) {
	doc, err := r.readPdfBuffer(ctx, data, name, 0)
	return doc, r.fail(err)
}

func (r *Reader) readPdfFile(ctx context.Context, path string, size int64) (*DocumentContent, error) {
	prefix := fmt.Sprintf("Failed to read PDF file %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, classify(err, CodePDFRead, prefix)
	}
	doc, err := r.pdfContent(ctx, data, filepath.Base(path), size)
	return doc, classify(err, CodePDFRead, prefix)
}

func (r *Reader) readPdfBuffer(ctx context.Context, data []byte, name string, size int64) (*DocumentContent, error) {
	doc, err := r.pdfContent(ctx, data, name, size)
	return doc, classify(err, CodePDFBufferRead, fmt.Sprintf("Failed to read PDF from buffer %s", name))
}

func (r *Reader) pdfContent(ctx context.Context, data []byte, name string, size int64) (*DocumentContent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res, err := r.cfg.PDF.ExtractPDF(ctx, data)
	if err != nil {
		return nil, err
	}

	meta := newMetadata(res.Text, name, sizeOr(size, data))
	meta.Pages = res.Pages
	return &DocumentContent{
		Text:     res.Text,
		Metadata: meta,
		Info:     res.Info,
	}, nil
}

func sizeOr(size int64, data []byte) int64 {
	if size > 0 {
		return size
	}
	return int64(len(data))
}

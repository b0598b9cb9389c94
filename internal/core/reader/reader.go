// Package reader extracts plain text and basic statistics from pdf, docx,
// doc, pptx, ppt and txt documents given a file path or an in-memory
// buffer.
//
// Parsing is delegated (see the core delegate interfaces); the Reader
// resolves the format, dispatches, normalizes the result into a
// DocumentContent and classifies failures as *Error.
//
// Usage:
//
//	r := reader.New(reader.Config{StagingDir: "/var/tmp/docreader"})
//	doc, err := r.ReadDocument(ctx, "/path/to/report.pdf")
//	if err != nil {
//		log.Println(reader.CodeOf(err), err)
//	}
//	fmt.Println(doc.Metadata.Words, "words")
package reader

import (
	"context"
	"fmt"
	"log/slog"
)

// Reader is the document extraction façade. It is safe for concurrent use.
type Reader struct {
	cfg    Config
	logger *slog.Logger
	stager *Stager
}

// New creates a Reader with the given configuration.
func New(cfg Config) *Reader {
	cfg.defaults()
	return &Reader{
		cfg:    cfg,
		logger: cfg.Logger,
		stager: NewStager(cfg.StagingDir, cfg.Logger, cfg.Debug),
	}
}

// StagingDir returns the directory used for staged legacy-format buffers.
func (r *Reader) StagingDir() string { return r.stager.Dir() }

// ReadDocument validates the file at path and extracts it according to
// its extension.
func (r *Reader) ReadDocument(ctx context.Context, path string) (*DocumentContent, error) {
	info, err := r.validate(path)
	if err != nil {
		return nil, r.fail(err)
	}

	kind := Format(ExtensionOf(path))
	size := info.Size()
	if r.cfg.Debug {
		r.logger.Debug("reading document", "path", path, "format", kind, "size", size)
	}

	var doc *DocumentContent
	switch kind {
	case FormatPDF:
		doc, err = r.readPdfFile(ctx, path, size)
	case FormatDocx:
		doc, err = r.readDocxFile(ctx, path, size)
	case FormatTXT:
		doc, err = r.readTextFile(ctx, path, size)
	case FormatDoc, FormatPpt, FormatPptx:
		doc, err = r.readLegacyFile(ctx, path, size)
	default:
		err = newError(CodeUnsupportedFormat, "Unsupported file format: %q", kind)
	}
	if err != nil {
		return nil, r.fail(classify(err, CodeRead, fmt.Sprintf("Failed to read document %s", path)))
	}
	return doc, nil
}

// ReadDocumentFromBuffer extracts an in-memory document. The format is
// resolved from name, then from mimeType when name has no usable extension.
func (r *Reader) ReadDocumentFromBuffer(ctx context.Context, data []byte, name, mimeType string) (*DocumentContent, error) {
	kind, ok := ResolveKind(name, mimeType)
	if !ok {
		return nil, r.fail(newError(CodeUnsupportedBufferFormat,
			"Unsupported buffer format for %s (extension %q, mime type %q)", name, ExtensionOf(name), mimeType))
	}
	if r.cfg.Debug {
		r.logger.Debug("reading buffer", "name", name, "format", kind, "size", len(data))
	}

	var (
		doc *DocumentContent
		err error
	)
	switch kind {
	case FormatPDF:
		doc, err = r.readPdfBuffer(ctx, data, name, 0)
	case FormatDocx:
		doc, err = r.readDocxBuffer(ctx, data, name, 0)
	case FormatTXT:
		doc, err = r.readTextBuffer(ctx, data, name, 0)
	case FormatDoc, FormatPpt, FormatPptx:
		doc, err = r.readLegacyBuffer(ctx, data, name, kind, 0)
	}
	if err != nil {
		return nil, r.fail(classify(err, CodeBufferRead, fmt.Sprintf("Failed to read document from buffer %s", name)))
	}
	return doc, nil
}

// fail logs err when debugging is enabled and returns it unchanged.
func (r *Reader) fail(err error) error {
	if err != nil && r.cfg.Debug {
		r.logger.Error("document read failed", "code", CodeOf(err), "error", err)
	}
	return err
}

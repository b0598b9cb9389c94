package reader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// errNoText marks an empty result from the legacy delegate in buffer mode.
var errNoText = errors.New("No text content could be extracted")

// ReadPowerPoint extracts text from a ppt, pptx or doc file at path
// through the legacy-format delegate.
func (r *Reader) ReadPowerPoint(ctx context.Context, path string) (*DocumentContent, error) {
	doc, err := r.readLegacyFile(ctx, path, 0)
	return doc, r.fail(err)
}

// ReadPowerPointFromBuffer is ReadPowerPoint for an in-memory document.
// The buffer is staged to a temporary file because the delegate only
// reads from disk; the staged file is removed before returning.
func (r *Reader) ReadPowerPointFromBuffer(ctx context.Context, data []byte, name string) (*DocumentContent, error) {
	kind := Format(ExtensionOf(name))
	if !isLegacy(kind) {
		return nil, r.fail(newError(CodeTextractBufferRead, "Failed to read document from buffer %s: unsupported legacy format %q", name, kind))
	}
	doc, err := r.readLegacyBuffer(ctx, data, name, kind, 0)
	return doc, r.fail(err)
}

func (r *Reader) readLegacyFile(ctx context.Context, path string, size int64) (*DocumentContent, error) {
	prefix := fmt.Sprintf("Failed to read document %s", path)
	if err := ctx.Err(); err != nil {
		return nil, classify(err, CodeTextractRead, prefix)
	}
	if size <= 0 {
		info, err := os.Stat(path)
		if err != nil {
			return nil, classify(err, CodeTextractRead, prefix)
		}
		size = info.Size()
	}

	text, err := r.cfg.Legacy.ExtractFile(ctx, path, *r.cfg.LegacyOptions)
	if err != nil {
		return nil, classify(err, CodeTextractRead, prefix)
	}
	return &DocumentContent{
		Text:     text,
		Metadata: newMetadata(text, filepath.Base(path), size),
	}, nil
}

func (r *Reader) readLegacyBuffer(ctx context.Context, data []byte, name string, kind Format, size int64) (*DocumentContent, error) {
	doc, err := r.legacyBufferContent(ctx, data, name, kind, size)
	return doc, classify(err, CodeTextractBufferRead, fmt.Sprintf("Failed to read document from buffer %s", name))
}

func (r *Reader) legacyBufferContent(ctx context.Context, data []byte, name string, kind Format, size int64) (*DocumentContent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, cleanup, err := r.stager.Stage(data, name, kind)
	defer cleanup()
	if err != nil {
		return nil, err
	}

	text, err := r.cfg.Legacy.ExtractFile(ctx, path, *r.cfg.LegacyOptions)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, errNoText
	}
	return &DocumentContent{
		Text:     text,
		Metadata: newMetadata(text, name, sizeOr(size, data)),
	}, nil
}

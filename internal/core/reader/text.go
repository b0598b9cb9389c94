package reader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding/unicode"
)

// ReadText reads the plain-text file at path verbatim.
func (r *Reader) ReadText(ctx context.Context, path string) (*DocumentContent, error) {
	doc, err := r.readTextFile(ctx, path, 0)
	return doc, r.fail(err)
}

// ReadTextFromBuffer is ReadText for an in-memory document.
func (r *Reader) ReadTextFromBuffer(ctx context.Context, data []byte, name string) (*DocumentContent, error) {
	doc, err := r.readTextBuffer(ctx, data, name, 0)
	return doc, r.fail(err)
}

func (r *Reader) readTextFile(ctx context.Context, path string, size int64) (*DocumentContent, error) {
	prefix := fmt.Sprintf("Failed to read text file %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, classify(err, CodeTextRead, prefix)
	}
	doc, err := r.textContent(ctx, data, filepath.Base(path), size)
	return doc, classify(err, CodeTextRead, prefix)
}

func (r *Reader) readTextBuffer(ctx context.Context, data []byte, name string, size int64) (*DocumentContent, error) {
	doc, err := r.textContent(ctx, data, name, size)
	return doc, classify(err, CodeTextBufferRead, fmt.Sprintf("Failed to read text from buffer %s", name))
}

func (r *Reader) textContent(ctx context.Context, data []byte, name string, size int64) (*DocumentContent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	text, err := decodeUTF8(data)
	if err != nil {
		return nil, err
	}
	return &DocumentContent{
		Text:     text,
		Metadata: newMetadata(text, name, sizeOr(size, data)),
	}, nil
}

// decodeUTF8 decodes data as UTF-8. Invalid sequences become U+FFFD and a
// leading byte order mark is kept as text.
func decodeUTF8(data []byte) (string, error) {
	out, err := unicode.UTF8.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

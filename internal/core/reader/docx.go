package reader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// ReadDocx extracts raw text and an HTML rendering from the docx at path.
func (r *Reader) ReadDocx(ctx context.Context, path string) (*DocumentContent, error) {
	doc, err := r.readDocxFile(ctx, path, 0)
	return doc, r.fail(err)
}

// ReadDocxFromBuffer is ReadDocx for an in-memory document.
func (r *Reader) ReadDocxFromBuffer(ctx context.Context, data []byte, name string) (*DocumentContent, error) {
	doc, err := r.readDocxBuffer(ctx, data, name, 0)
	return doc, r.fail(err)
}

func (r *Reader) readDocxFile(ctx context.Context, path string, size int64) (*DocumentContent, error) {
	prefix := fmt.Sprintf("Failed to read DOCX file %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, classify(err, CodeDocxRead, prefix)
	}
	doc, err := r.docxContent(ctx, data, filepath.Base(path), size)
	return doc, classify(err, CodeDocxRead, prefix)
}

func (r *Reader) readDocxBuffer(ctx context.Context, data []byte, name string, size int64) (*DocumentContent, error) {
	doc, err := r.docxContent(ctx, data, name, size)
	return doc, classify(err, CodeDocxBufferRead, fmt.Sprintf("Failed to read DOCX from buffer %s", name))
}

// docxContent runs the delegate twice on the same bytes: once for raw
// text and once for HTML. Diagnostics of both runs are concatenated.
func (r *Reader) docxContent(ctx context.Context, data []byte, name string, size int64) (*DocumentContent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := r.cfg.Docx.ExtractRawText(ctx, data)
	if err != nil {
		return nil, err
	}
	html, err := r.cfg.Docx.ConvertToHTML(ctx, data)
	if err != nil {
		return nil, err
	}

	messages := make([]Message, 0, len(raw.Messages)+len(html.Messages))
	messages = append(messages, raw.Messages...)
	messages = append(messages, html.Messages...)

	doc := &DocumentContent{
		Text:     raw.Value,
		Metadata: newMetadata(raw.Value, name, sizeOr(size, data)),
		HTML:     html.Value,
		Messages: messages,
	}

	if r.cfg.RenderMarkdown && html.Value != "" {
		md, err := r.cfg.Markdown.RenderMarkdown(html.Value)
		if err != nil {
			// Markdown is a convenience rendering; the extraction still succeeds.
			doc.Messages = append(doc.Messages, Message{Type: "warning", Message: "markdown rendering failed: " + err.Error()})
		} else {
			doc.Markdown = md
		}
	}
	return doc, nil
}

package reader

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/markdave123-py/docreader/internal/core/extractors"
)

func TestReadMultipleDocuments(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "a.txt", "one"),
		writeFile(t, dir, "b.txt", "one two"),
		writeFile(t, dir, "c.txt", "one two three"),
	}

	for _, limit := range []int{0, 1, 2} {
		r := newTestReader(t, Config{MaxConcurrency: limit})
		docs, err := r.ReadMultipleDocuments(context.Background(), paths)
		if err != nil {
			t.Fatal(err)
		}
		if len(docs) != 3 {
			t.Fatalf("len = %d, want 3", len(docs))
		}
		for i, d := range docs {
			if d.Metadata.Words != i+1 {
				t.Errorf("limit %d: docs[%d].Words = %d, want %d (order must follow input)", limit, i, d.Metadata.Words, i+1)
			}
		}
	}
}

func TestReadMultipleDocuments_Failure(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "gone.txt")
	paths := []string{
		writeFile(t, dir, "a.txt", "x"),
		writeFile(t, dir, "b.txt", "y"),
		writeFile(t, dir, "c.txt", "z"),
		missing,
	}
	r := newTestReader(t, Config{})

	docs, err := r.ReadMultipleDocuments(context.Background(), paths)
	if docs != nil {
		t.Errorf("partial results returned: %v", docs)
	}
	if !IsCode(err, CodeMultiRead) {
		t.Fatalf("code = %q, want %q", CodeOf(err), CodeMultiRead)
	}
	if !strings.Contains(err.Error(), missing) {
		t.Errorf("message %q should name %s", err.Error(), missing)
	}
	var inner *Error
	if !errors.As(errors.Unwrap(err), &inner) || inner.Code != CodeValidation {
		t.Errorf("inner error should be VALIDATION_ERROR, got %v", errors.Unwrap(err))
	}
}

func TestReadMultipleDocuments_Empty(t *testing.T) {
	r := newTestReader(t, Config{})
	docs, err := r.ReadMultipleDocuments(context.Background(), nil)
	if err != nil || len(docs) != 0 {
		t.Fatalf("got %v, %v", docs, err)
	}
}

func TestReadMultipleFromBuffers_Failure(t *testing.T) {
	r := newTestReader(t, Config{})
	items := []BufferInput{
		{Data: []byte("fine"), Name: "ok.txt"},
		{Data: []byte("bad"), Name: "photo.jpg", MimeType: "image/jpeg"},
		{Data: []byte("worse"), Name: "clip.mp4"},
	}
	_, err := r.ReadMultipleFromBuffers(context.Background(), items)
	if !IsCode(err, CodeMultiBufferRead) {
		t.Fatalf("code = %q, want %q", CodeOf(err), CodeMultiBufferRead)
	}
	if !strings.Contains(err.Error(), "photo.jpg") {
		t.Errorf("first failure in input order should be reported, got %q", err.Error())
	}
}

// A docx without [Content_Types].xml makes docconv panic; inside a batch
// goroutine that must surface as a classified failure.
func TestReadMultipleFromBuffers_MalformedDocx(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body/></w:document>`)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	r := newTestReader(t, Config{Docx: extractors.NewDocxExtractor()})
	items := []BufferInput{
		{Data: []byte("fine"), Name: "ok.txt"},
		{Data: buf.Bytes(), Name: "broken.docx"},
	}
	docs, err := r.ReadMultipleFromBuffers(context.Background(), items)
	if docs != nil {
		t.Errorf("partial results returned: %v", docs)
	}
	if !IsCode(err, CodeMultiBufferRead) {
		t.Fatalf("code = %q, want %q", CodeOf(err), CodeMultiBufferRead)
	}
	var inner *Error
	if !errors.As(errors.Unwrap(err), &inner) || inner.Code != CodeDocxBufferRead {
		t.Errorf("inner error should be DOCX_BUFFER_READ_ERROR, got %v", errors.Unwrap(err))
	}
}

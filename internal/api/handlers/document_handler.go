package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	middleware "github.com/markdave123-py/docreader/internal/api/middlewares"
	"github.com/markdave123-py/docreader/internal/config"
	"github.com/markdave123-py/docreader/internal/core/ingestion_engine"
	"github.com/markdave123-py/docreader/internal/core/reader"
	"github.com/markdave123-py/docreader/internal/services"
)

// DocumentReader is the part of *reader.Reader the handlers use.
type DocumentReader interface {
	ReadDocumentFromBuffer(ctx context.Context, data []byte, name, mimeType string) (*reader.DocumentContent, error)
	ReadMultipleFromBuffers(ctx context.Context, items []reader.BufferInput) ([]*reader.DocumentContent, error)
}

type DocumentHandler struct {
	reader   DocumentReader
	docs     *services.DocumentService
	ingestor ingestion_engine.Ingestor
	cfg      *config.Config
}

// NewDocumentHandler wires the handler. docs and ing may be nil when
// storage is not configured; the upload and listing routes are then not
// mounted.
func NewDocumentHandler(r DocumentReader, docs *services.DocumentService, ing ingestion_engine.Ingestor, cfg *config.Config) *DocumentHandler {
	return &DocumentHandler{reader: r, docs: docs, ingestor: ing, cfg: cfg}
}

// StorageEnabled reports whether upload and listing routes can be served.
func (h *DocumentHandler) StorageEnabled() bool {
	return h.docs != nil && h.ingestor != nil
}

func (h *DocumentHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *DocumentHandler) Formats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"formats": reader.SupportedFormats()})
}

// Extract reads the multipart "file" field and returns its content.
func (h *DocumentHandler) Extract(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	in, err := formFile(r, "file")
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	doc, err := h.reader.ReadDocumentFromBuffer(r.Context(), in.Data, in.Name, in.MimeType)
	if err != nil {
		writeReaderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// ExtractBatch reads every multipart "files" part; one failure fails the
// whole request.
func (h *DocumentHandler) ExtractBatch(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		writeError(w, http.StatusBadRequest, CodeBadRequest, `no "files" parts in request`)
		return
	}

	items := make([]reader.BufferInput, 0, len(headers))
	for _, fh := range headers {
		in, err := readPart(fh)
		if err != nil {
			writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
			return
		}
		items = append(items, in)
	}

	docs, err := h.reader.ReadMultipleFromBuffers(r.Context(), items)
	if err != nil {
		writeReaderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

// UploadDocument stores the file, records it and queues the extraction.
// The route's timeout bounds the upload.
func (h *DocumentHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, CodeUnauthorized, "user_id not found in context")
		return
	}
	if !h.parseForm(w, r) {
		return
	}
	in, err := formFile(r, "file")
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	rec, err := h.docs.UploadAndCreate(r.Context(), userID, in.Name, in.MimeType, in.Data)
	if err != nil {
		if reader.CodeOf(err) != "" {
			writeReaderError(w, err)
			return
		}
		slog.Error("upload failed", "user_id", userID, "file", in.Name, "error", err)
		writeError(w, http.StatusInternalServerError, CodeInternalError, "failed to store document")
		return
	}

	h.ingestor.Enqueue(rec.ID)
	writeJSON(w, http.StatusAccepted, rec)
}

func (h *DocumentHandler) GetDocuments(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, CodeUnauthorized, "user_id not found in context")
		return
	}

	recs, err := h.docs.ListByUser(r.Context(), userID)
	if err != nil {
		slog.Error("list extractions", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, CodeInternalError, "failed to list documents")
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, CodeUnauthorized, "user_id not found in context")
		return
	}

	id := chi.URLParam(r, "id")
	rec, err := h.docs.Get(r.Context(), userID, id)
	if errors.Is(err, services.ErrNotFound) {
		writeError(w, http.StatusNotFound, CodeNotFound, "document not found: "+id)
		return
	}
	if err != nil {
		slog.Error("get extraction", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, CodeInternalError, "failed to load document")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// parseForm bounds the request body and parses it as multipart. It writes
// the error response itself and reports whether the handler may go on.
func (h *DocumentHandler) parseForm(w http.ResponseWriter, r *http.Request) bool {
	limit := h.cfg.MaxUploadBytes
	if limit <= 0 {
		limit = 32 << 20
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(limit); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, CodeTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", limit))
			return false
		}
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid multipart form: "+err.Error())
		return false
	}
	return true
}

func formFile(r *http.Request, field string) (reader.BufferInput, error) {
	if r.MultipartForm == nil || len(r.MultipartForm.File[field]) == 0 {
		return reader.BufferInput{}, fmt.Errorf("missing %q file part", field)
	}
	return readPart(r.MultipartForm.File[field][0])
}

func readPart(fh *multipart.FileHeader) (reader.BufferInput, error) {
	f, err := fh.Open()
	if err != nil {
		return reader.BufferInput{}, fmt.Errorf("open part %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return reader.BufferInput{}, fmt.Errorf("read part %s: %w", fh.Filename, err)
	}
	return reader.BufferInput{
		Data:     data,
		Name:     filepath.Base(fh.Filename),
		MimeType: fh.Header.Get("Content-Type"),
	}, nil
}

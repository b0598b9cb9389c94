package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/markdave123-py/docreader/internal/core/reader"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&reader.Error{Code: reader.CodeUnsupportedFormat}, http.StatusUnsupportedMediaType},
		{&reader.Error{Code: reader.CodeUnsupportedBufferFormat}, http.StatusUnsupportedMediaType},
		{&reader.Error{Code: reader.CodeInvalidFilePath}, http.StatusBadRequest},
		{&reader.Error{Code: reader.CodeValidation}, http.StatusBadRequest},
		{&reader.Error{Code: reader.CodePDFBufferRead}, http.StatusUnprocessableEntity},
		{&reader.Error{Code: reader.CodeMultiBufferRead}, http.StatusUnprocessableEntity},
		{fmt.Errorf("wrapped: %w", &reader.Error{Code: reader.CodeDocxRead}), http.StatusUnprocessableEntity},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := StatusFor(tt.err); got != tt.want {
			t.Errorf("StatusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

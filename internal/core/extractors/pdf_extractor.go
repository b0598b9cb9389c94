package extractors

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/markdave123-py/docreader/internal/core"
)

var _ core.PdfDelegate = (*PDFExtractor)(nil)

// PDFExtractor implements core.PdfDelegate. Text and page count come from
// ledongthuc/pdf; the document information dictionary is read with pdfcpu.
type PDFExtractor struct {
	logger *slog.Logger
}

func NewPDFExtractor(logger *slog.Logger) *PDFExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFExtractor{logger: logger}
}

// ExtractPDF parses data and returns text (pages separated by a blank
// line), page count and document info.
func (e *PDFExtractor) ExtractPDF(ctx context.Context, data []byte) (res *core.PdfResult, err error) {
	if len(data) == 0 {
		return nil, errors.New("empty PDF content")
	}

	// ledongthuc/pdf panics on some malformed inputs.
	defer func() {
		if p := recover(); p != nil {
			res, err = nil, fmt.Errorf("parse pdf: %v", p)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	pages := r.NumPage()
	var sb strings.Builder
	for i := 1; i <= pages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			e.logger.Debug("pdf page text extraction failed", "page", i, "error", err)
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(text)
	}

	info, err := documentInfo(data)
	if err != nil {
		e.logger.Debug("pdfcpu info read failed, using trailer", "error", err)
		info = trailerInfo(r)
	}

	return &core.PdfResult{
		Text:  sb.String(),
		Pages: pages,
		Info:  info,
	}, nil
}

// documentInfo reads the information dictionary with pdfcpu in relaxed
// validation mode.
func documentInfo(data []byte) (map[string]any, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}

	info := map[string]any{
		"IsEncrypted": ctx.Encrypt != nil,
	}
	if ctx.HeaderVersion != nil {
		info["PDFFormatVersion"] = ctx.HeaderVersion.String()
	}
	for k, v := range map[string]string{
		"Title":        ctx.Title,
		"Author":       ctx.Author,
		"Subject":      ctx.Subject,
		"Keywords":     ctx.Keywords,
		"Creator":      ctx.Creator,
		"Producer":     ctx.Producer,
		"CreationDate": ctx.XRefTable.CreationDate,
		"ModDate":      ctx.XRefTable.ModDate,
	} {
		if v != "" {
			info[k] = v
		}
	}
	return info, nil
}

// trailerInfo is the fallback when pdfcpu rejects a file ledongthuc/pdf
// could open.
func trailerInfo(r *pdf.Reader) map[string]any {
	info := map[string]any{}
	dict := r.Trailer().Key("Info")
	if dict.Kind() != pdf.Dict {
		return info
	}
	for _, k := range dict.Keys() {
		if v := dict.Key(k); v.Kind() == pdf.String {
			info[k] = v.Text()
		}
	}
	return info
}

package core

import (
	"context"
)

// Message is a diagnostic reported by a conversion delegate (e.g. an
// unrecognised docx paragraph style). Type is "warning" or "error".
type Message struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// PdfResult is what a PDF delegate reports for one document.
type PdfResult struct {
	Text  string
	Pages int
	Info  map[string]any
}

// ConversionResult is the output of one docx delegate run.
// Value holds raw text or HTML depending on the call.
type ConversionResult struct {
	Value    string
	Messages []Message
}

// LegacyOptions tunes the legacy-format delegate.
//
// PreserveLineBreaks:             keep line breaks from the tool output.
// PreserveOnlyMultipleLineBreaks: fold single breaks into spaces, keep paragraph breaks.
// PDFToTextLayout:                layout mode handed to pdftotext for embedded pdf conversion ("raw", "layout" or "").
type LegacyOptions struct {
	PreserveLineBreaks             bool
	PreserveOnlyMultipleLineBreaks bool
	PDFToTextLayout                string
}

// PdfDelegate parses a PDF byte stream.
type PdfDelegate interface {
	ExtractPDF(ctx context.Context, data []byte) (*PdfResult, error)
}

// DocxDelegate converts a docx byte stream, once to raw text and once to HTML.
type DocxDelegate interface {
	ExtractRawText(ctx context.Context, data []byte) (*ConversionResult, error)
	ConvertToHTML(ctx context.Context, data []byte) (*ConversionResult, error)
}

// LegacyDelegate extracts text from doc, ppt and pptx files.
// It only accepts a filesystem path.
type LegacyDelegate interface {
	ExtractFile(ctx context.Context, path string, opts LegacyOptions) (string, error)
}

// MarkdownRenderer turns sanitized HTML into Markdown.
type MarkdownRenderer interface {
	RenderMarkdown(html string) (string, error)
}

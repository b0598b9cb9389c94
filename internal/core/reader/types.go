package reader

import "github.com/markdave123-py/docreader/internal/core"

// Format identifies a supported document kind.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDocx Format = "docx"
	FormatDoc  Format = "doc"
	FormatPptx Format = "pptx"
	FormatPpt  Format = "ppt"
	FormatTXT  Format = "txt"
)

// Metadata holds the statistics stamped on every extraction.
type Metadata struct {
	Pages      int    `json:"pages,omitempty"` // pdf only
	Words      int    `json:"words"`
	Characters int    `json:"characters"`
	FileSize   int64  `json:"fileSize"`
	FileName   string `json:"fileName"`
}

// Message is an opaque conversion diagnostic reported by the docx delegate.
type Message = core.Message

// DocumentContent is the normalized result of one extraction.
//
// Info is only set for pdf documents. HTML and Messages are only set for
// docx documents; Markdown too when the Reader renders it.
type DocumentContent struct {
	Text     string         `json:"text"`
	Metadata *Metadata      `json:"metadata,omitempty"`
	Info     map[string]any `json:"info,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Markdown string         `json:"markdown,omitempty"`
	Messages []Message      `json:"messages,omitempty"`
}

// BufferInput is one item of a buffer batch.
type BufferInput struct {
	Data     []byte
	Name     string
	MimeType string
}

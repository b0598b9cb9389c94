package reader

import (
	"log/slog"

	"github.com/markdave123-py/docreader/internal/core"
	"github.com/markdave123-py/docreader/internal/core/extractors"
)

// DefaultStagingDir is where buffers are staged for the legacy delegate
// when Config.StagingDir is empty. It is relative to the working directory.
const DefaultStagingDir = "temp"

// Config configures a Reader.
//
// Debug:          log internal failures; no behavioural effect.
// StagingDir:     directory for staged legacy-format buffers.
// MaxConcurrency: upper bound of concurrent items in a batch (0 = unbounded).
// RenderMarkdown: also render docx documents as Markdown.
// PDF/Docx/Legacy: delegates; nil selects the extractors package defaults.
type Config struct {
	Debug          bool
	StagingDir     string
	MaxConcurrency int
	RenderMarkdown bool

	LegacyOptions *core.LegacyOptions

	Logger *slog.Logger

	PDF      core.PdfDelegate
	Docx     core.DocxDelegate
	Legacy   core.LegacyDelegate
	Markdown core.MarkdownRenderer
}

func (c *Config) defaults() {
	if c.StagingDir == "" {
		c.StagingDir = DefaultStagingDir
	}
	if c.MaxConcurrency < 0 {
		c.MaxConcurrency = 0
	}
	if c.LegacyOptions == nil {
		c.LegacyOptions = &core.LegacyOptions{
			PreserveLineBreaks:             true,
			PreserveOnlyMultipleLineBreaks: true,
			PDFToTextLayout:                "raw",
		}
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.PDF == nil {
		c.PDF = extractors.NewPDFExtractor(c.Logger)
	}
	if c.Docx == nil {
		c.Docx = extractors.NewDocxExtractor()
	}
	if c.Legacy == nil {
		c.Legacy = extractors.NewDocconvExtractor(extractors.LegacyConfig{}, c.Logger)
	}
	if c.Markdown == nil {
		c.Markdown = extractors.NewMarkdownRenderer()
	}
}

package extractors

import (
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"

	"github.com/markdave123-py/docreader/internal/core"
)

var _ core.MarkdownRenderer = (*MarkdownRenderer)(nil)

// MarkdownRenderer converts docx HTML renderings to CommonMark with tables.
type MarkdownRenderer struct {
	conv *converter.Converter
}

func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

func (m *MarkdownRenderer) RenderMarkdown(html string) (string, error) {
	return m.conv.ConvertString(html)
}

package extractors

import (
	"strings"
	"testing"
)

func TestRenderMarkdown(t *testing.T) {
	md, err := NewMarkdownRenderer().RenderMarkdown(
		"<h1>Title</h1><p>Some <strong>bold</strong> text.</p><ul><li>one</li><li>two</li></ul>")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"# Title", "**bold**", "- one", "- two"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q\ngot:\n%s", want, md)
		}
	}
}

package extractors

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"strings"

	"code.sajari.com/docconv"
	"github.com/microcosm-cc/bluemonday"

	"github.com/markdave123-py/docreader/internal/core"
)

var _ core.DocxDelegate = (*DocxExtractor)(nil)

// DocxExtractor implements core.DocxDelegate: raw text through docconv,
// HTML from word/document.xml sanitized with bluemonday.
type DocxExtractor struct {
	policy *bluemonday.Policy
}

func NewDocxExtractor() *DocxExtractor {
	return &DocxExtractor{policy: bluemonday.UGCPolicy()}
}

// ExtractRawText returns the document's plain text.
func (e *DocxExtractor) ExtractRawText(ctx context.Context, data []byte) (res *core.ConversionResult, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// docconv dereferences a missing [Content_Types].xml part.
	defer recoverDocx(&res, &err)

	text, _, err := docconv.ConvertDocx(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("docconv: %w", err)
	}
	return &core.ConversionResult{Value: text}, nil
}

// ConvertToHTML renders headings, paragraphs, lists, tables and bold or
// italic runs. Paragraph styles it cannot map are reported as warnings.
func (e *DocxExtractor) ConvertToHTML(ctx context.Context, data []byte) (res *core.ConversionResult, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer recoverDocx(&res, &err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}

	var docFile *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return nil, errors.New("word/document.xml not found in archive")
	}

	rc, err := docFile.Open()
	if err != nil {
		return nil, fmt.Errorf("open document.xml: %w", err)
	}
	defer rc.Close()

	body, messages, err := renderDocxHTML(rc)
	if err != nil {
		return nil, err
	}
	return &core.ConversionResult{
		Value:    e.policy.Sanitize(body),
		Messages: messages,
	}, nil
}

// htmlWriter accumulates the rendering of a document.xml token stream.
func recoverDocx(res **core.ConversionResult, err *error) {
	if p := recover(); p != nil {
		*res, *err = nil, fmt.Errorf("parse docx: %v", p)
	}
}

type htmlWriter struct {
	out strings.Builder

	para    strings.Builder
	run     strings.Builder
	inPara  bool
	inText  bool
	style   string
	isList  bool
	bold    bool
	italic  bool
	inList  bool
	inTable int

	warned   map[string]bool
	messages []core.Message
}

func renderDocxHTML(r io.Reader) (string, []core.Message, error) {
	w := &htmlWriter{warned: map[string]bool{}}
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", nil, fmt.Errorf("parse document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			w.start(t)
		case xml.EndElement:
			w.end(t)
		case xml.CharData:
			if w.inText {
				w.run.WriteString(html.EscapeString(string(t)))
			}
		}
	}
	w.closeList()
	return w.out.String(), w.messages, nil
}

func (w *htmlWriter) start(t xml.StartElement) {
	switch t.Name.Local {
	case "p":
		w.inPara = true
		w.para.Reset()
		w.style = ""
		w.isList = false
	case "pStyle":
		w.style = attr(t, "val")
	case "numPr":
		w.isList = true
	case "r":
		w.run.Reset()
		w.bold, w.italic = false, false
	case "b":
		w.bold = toggleOn(t)
	case "i":
		w.italic = toggleOn(t)
	case "t":
		w.inText = true
	case "tab":
		if w.inPara {
			w.run.WriteString("\t")
		}
	case "br":
		if w.inPara {
			w.run.WriteString("<br />")
		}
	case "tbl":
		w.closeList()
		w.out.WriteString("<table>")
		w.inTable++
	case "tr":
		w.out.WriteString("<tr>")
	case "tc":
		w.out.WriteString("<td>")
	}
}

func (w *htmlWriter) end(t xml.EndElement) {
	switch t.Name.Local {
	case "t":
		w.inText = false
	case "r":
		w.flushRun()
	case "p":
		w.flushParagraph()
	case "tc":
		w.out.WriteString("</td>")
	case "tr":
		w.out.WriteString("</tr>")
	case "tbl":
		w.out.WriteString("</table>")
		w.inTable--
	}
}

func (w *htmlWriter) flushRun() {
	text := w.run.String()
	w.run.Reset()
	if text == "" {
		return
	}
	if w.italic {
		text = "<em>" + text + "</em>"
	}
	if w.bold {
		text = "<strong>" + text + "</strong>"
	}
	w.para.WriteString(text)
}

func (w *htmlWriter) flushParagraph() {
	if !w.inPara {
		return
	}
	w.inPara = false
	text := w.para.String()
	if strings.TrimSpace(text) == "" {
		return
	}

	level := headingLevel(w.style)
	if level == 0 && w.style != "" && !knownBodyStyle(w.style) {
		w.warnStyle(w.style)
	}

	switch {
	case w.isList && level == 0 && w.inTable == 0:
		if !w.inList {
			w.out.WriteString("<ul>")
			w.inList = true
		}
		w.out.WriteString("<li>" + text + "</li>")
		return
	case level > 0:
		w.closeList()
		fmt.Fprintf(&w.out, "<h%d>%s</h%d>", level, text, level)
	default:
		w.closeList()
		w.out.WriteString("<p>" + text + "</p>")
	}
}

func (w *htmlWriter) closeList() {
	if w.inList {
		w.out.WriteString("</ul>")
		w.inList = false
	}
}

func (w *htmlWriter) warnStyle(style string) {
	if w.warned[style] {
		return
	}
	w.warned[style] = true
	w.messages = append(w.messages, core.Message{
		Type:    "warning",
		Message: fmt.Sprintf("Unrecognised paragraph style: '%s' (Style ID: %s)", style, style),
	})
}

func attr(t xml.StartElement, local string) string {
	for _, a := range t.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// toggleOn reads an OOXML on/off property such as <w:b w:val="0"/>.
func toggleOn(t xml.StartElement) bool {
	switch strings.ToLower(attr(t, "val")) {
	case "0", "false", "off":
		return false
	}
	return true
}

// headingLevel maps "Heading1".."Heading6", "Title" and "Subtitle" (and
// their localized prefixes) to a heading level.
func headingLevel(style string) int {
	lower := strings.ToLower(style)
	switch lower {
	case "title":
		return 1
	case "subtitle":
		return 2
	}
	for _, prefix := range []string{"heading", "titre", "überschrift"} {
		if strings.HasPrefix(lower, prefix) {
			rest := lower[len(prefix):]
			if len(rest) == 1 && rest[0] >= '1' && rest[0] <= '6' {
				return int(rest[0] - '0')
			}
		}
	}
	return 0
}

func knownBodyStyle(style string) bool {
	switch strings.ToLower(style) {
	case "normal", "listparagraph", "bodytext", "nospacing", "default":
		return true
	}
	return false
}

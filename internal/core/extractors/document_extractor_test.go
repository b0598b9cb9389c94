package extractors

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/markdave123-py/docreader/internal/core"
)

type fakeRunner struct {
	out, errb []byte
	err       error

	name string
	args []string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.name = name
	f.args = args
	return f.out, f.errb, f.err
}

func newTestDocconv(r Runner) *DocconvExtractor {
	e := NewDocconvExtractor(LegacyConfig{}, slog.Default())
	e.runner = r
	return e
}

var defaultOpts = core.LegacyOptions{
	PreserveLineBreaks:             true,
	PreserveOnlyMultipleLineBreaks: true,
	PDFToTextLayout:                "raw",
}

func TestDocconvExtractor_PPTUsesCatppt(t *testing.T) {
	fr := &fakeRunner{out: []byte("Slide one\r\ntitle\r\n\r\n\r\nSlide two\n")}
	e := newTestDocconv(fr)

	got, err := e.ExtractFile(context.Background(), "/tmp/deck.PPT", defaultOpts)
	if err != nil {
		t.Fatal(err)
	}
	if fr.name != "catppt" {
		t.Errorf("ran %q, want catppt", fr.name)
	}
	if want := []string{"-d", "utf-8", "/tmp/deck.PPT"}; strings.Join(fr.args, " ") != strings.Join(want, " ") {
		t.Errorf("args = %v, want %v", fr.args, want)
	}
	if got != "Slide one title\n\nSlide two" {
		t.Errorf("text = %q", got)
	}
}

func TestDocconvExtractor_PDFLayoutOption(t *testing.T) {
	fr := &fakeRunner{out: []byte("hello")}
	e := newTestDocconv(fr)

	if _, err := e.ExtractFile(context.Background(), "a.pdf", defaultOpts); err != nil {
		t.Fatal(err)
	}
	args := strings.Join(fr.args, " ")
	if fr.name != "pdftotext" || !strings.Contains(args, "-raw") || !strings.HasSuffix(args, "a.pdf -") {
		t.Errorf("ran %s %s", fr.name, args)
	}

	opts := defaultOpts
	opts.PDFToTextLayout = ""
	if _, err := e.ExtractFile(context.Background(), "a.pdf", opts); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(strings.Join(fr.args, " "), "-raw") {
		t.Errorf("layout flag passed without option: %v", fr.args)
	}
}

func TestDocconvExtractor_ToolFailure(t *testing.T) {
	fr := &fakeRunner{errb: []byte("Error: not a PowerPoint file\n"), err: errors.New("exit status 1")}
	e := newTestDocconv(fr)

	_, err := e.ExtractFile(context.Background(), "bad.ppt", defaultOpts)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "catppt") || !strings.Contains(err.Error(), "not a PowerPoint file") {
		t.Errorf("error %q should name the tool and its stderr", err)
	}
}

func TestDocconvExtractor_CustomBinaries(t *testing.T) {
	fr := &fakeRunner{out: []byte("x")}
	e := NewDocconvExtractor(LegacyConfig{Catppt: "/opt/catdoc/bin/catppt"}, nil)
	e.runner = fr

	if _, err := e.ExtractFile(context.Background(), "a.ppt", defaultOpts); err != nil {
		t.Fatal(err)
	}
	if fr.name != "/opt/catdoc/bin/catppt" {
		t.Errorf("ran %q", fr.name)
	}
}

func TestNormalizeLineBreaks(t *testing.T) {
	tests := []struct {
		name string
		in   string
		opts core.LegacyOptions
		want string
	}{
		{
			name: "paragraphs kept, single breaks joined",
			in:   "line one\nline two\n\nnext para\n\n\n\nlast",
			opts: defaultOpts,
			want: "line one line two\n\nnext para\n\nlast",
		},
		{
			name: "whitespace-only lines count as breaks",
			in:   "a \n \t \nb",
			opts: defaultOpts,
			want: "a\n\nb",
		},
		{
			name: "form feed separates pages",
			in:   "page1\fpage2",
			opts: defaultOpts,
			want: "page1\n\npage2",
		},
		{
			name: "all breaks preserved",
			in:   "a\r\nb\n\nc\n",
			opts: core.LegacyOptions{PreserveLineBreaks: true},
			want: "a\nb\n\nc",
		},
		{
			name: "no breaks preserved",
			in:   "  a\nb\n\n c  ",
			opts: core.LegacyOptions{},
			want: "a b c",
		},
		{
			name: "empty",
			in:   " \n\n ",
			opts: defaultOpts,
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeLineBreaks(tt.in, tt.opts); got != tt.want {
				t.Errorf("normalizeLineBreaks(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abc", 5); got != "abc" {
		t.Errorf("got %q", got)
	}
	if got := truncate("abcdef", 3); got != "abc...(truncated)" {
		t.Errorf("got %q", got)
	}
}

package extractors

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"code.sajari.com/docconv"

	"github.com/markdave123-py/docreader/internal/core"
)

var _ core.LegacyDelegate = (*DocconvExtractor)(nil)

// LegacyConfig names the external tools used for formats docconv cannot
// read natively.
//
// Catppt:    binary name or absolute path; if empty -> "catppt".
// Pdftotext: binary name or absolute path; if empty -> "pdftotext".
type LegacyConfig struct {
	Catppt    string
	Pdftotext string
}

// DocconvExtractor implements core.LegacyDelegate using sajari/docconv for
// doc and pptx and external tools for ppt (catppt) and pdf (pdftotext).
type DocconvExtractor struct {
	cfg    LegacyConfig
	runner Runner
	logger *slog.Logger
}

func NewDocconvExtractor(cfg LegacyConfig, logger *slog.Logger) *DocconvExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Catppt == "" {
		cfg.Catppt = "catppt"
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	return &DocconvExtractor{cfg: cfg, runner: execRunner{logger: logger}, logger: logger}
}

// ExtractFile extracts text from the file at path, choosing the tool by
// extension, and normalizes line breaks according to opts.
func (e *DocconvExtractor) ExtractFile(ctx context.Context, path string, opts core.LegacyOptions) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))

	var (
		text string
		err  error
	)
	switch ext {
	case ".ppt":
		text, err = e.runTool(ctx, e.cfg.Catppt, "-d", "utf-8", path)
	case ".pdf":
		args := []string{"-enc", "UTF-8", "-eol", "unix"}
		if opts.PDFToTextLayout != "" {
			args = append(args, "-"+opts.PDFToTextLayout)
		}
		text, err = e.runTool(ctx, e.cfg.Pdftotext, append(args, path, "-")...)
	case ".doc", ".pptx":
		text, err = e.convertFile(path, ext)
	default:
		var res *docconv.Response
		res, err = docconv.ConvertPath(path)
		if err == nil {
			text = res.Body
		}
	}
	if err != nil {
		e.logger.Debug("docconv: extraction failed", "path", path, "ext", ext, "error", err)
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	return normalizeLineBreaks(text, opts), nil
}

func (e *DocconvExtractor) convertFile(path, ext string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var text string
	switch ext {
	case ".doc":
		text, _, err = docconv.ConvertDoc(f)
	case ".pptx":
		text, _, err = docconv.ConvertPptx(f)
	}
	if err != nil {
		return "", fmt.Errorf("docconv %s: %w", ext, err)
	}
	return text, nil
}

func (e *DocconvExtractor) runTool(ctx context.Context, name string, args ...string) (string, error) {
	out, errb, err := e.runner.Run(ctx, name, args...)
	if err != nil {
		if msg := strings.TrimSpace(string(errb)); msg != "" {
			return "", fmt.Errorf("%s: %w: %s", name, err, truncate(msg, 512))
		}
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return string(out), nil
}

var (
	multiBreakRe  = regexp.MustCompile(`\n[ \t]*\n[\s]*`)
	singleBreakRe = regexp.MustCompile(`[ \t]*\n[ \t]*`)
	spaceRunRe    = regexp.MustCompile(`[ \t]+`)
	anySpaceRe    = regexp.MustCompile(`\s+`)
)

const paragraphMark = "\x00"

// normalizeLineBreaks applies the line-break options to tool output.
// Without PreserveLineBreaks everything folds onto one line. With
// PreserveOnlyMultipleLineBreaks single breaks become spaces and runs of
// two or more collapse to one blank line.
func normalizeLineBreaks(text string, opts core.LegacyOptions) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "\f", "\n\n")

	if !opts.PreserveLineBreaks {
		return strings.TrimSpace(anySpaceRe.ReplaceAllString(text, " "))
	}
	if opts.PreserveOnlyMultipleLineBreaks {
		text = multiBreakRe.ReplaceAllString(text, paragraphMark)
		text = singleBreakRe.ReplaceAllString(text, " ")
		text = spaceRunRe.ReplaceAllString(text, " ")
		text = strings.ReplaceAll(text, " "+paragraphMark, paragraphMark)
		text = strings.ReplaceAll(text, paragraphMark, "\n\n")
	}
	return strings.TrimSpace(text)
}

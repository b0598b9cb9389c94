package reader

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Stager writes buffers to short-lived files for delegates that only
// accept filesystem paths.
type Stager struct {
	dir    string
	logger *slog.Logger
	debug  bool
}

// NewStager returns a Stager writing into dir.
func NewStager(dir string, logger *slog.Logger, debug bool) *Stager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Stager{dir: dir, logger: logger, debug: debug}
}

// Dir returns the staging directory.
func (s *Stager) Dir() string { return s.dir }

// Stage writes data to a uniquely named file derived from name and
// returns its path with a cleanup func. Cleanup never fails; removal
// errors are only logged.
func (s *Stager) Stage(data []byte, name string, kind Format) (string, func(), error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", func() {}, fmt.Errorf("create staging dir: %w", err)
	}

	path := filepath.Join(s.dir, stagedName(name, kind))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		_ = os.Remove(path)
		return "", func() {}, fmt.Errorf("write staged file: %w", err)
	}

	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) && s.debug {
			s.logger.Warn("failed to remove staged file", "path", path, "error", err)
		}
	}
	return path, cleanup, nil
}

// stagedName keeps the caller's base name for readability but prefixes a
// uuid so concurrent callers sharing a display name never collide. The
// kind's extension is appended when the name does not carry it, since the
// delegate dispatches on it.
func stagedName(name string, kind Format) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "document"
	}
	base = strings.Map(func(r rune) rune {
		switch {
		case r == ' ':
			return '_'
		case r < 0x20 || r == 0x7f:
			return -1
		}
		return r
	}, base)

	if Format(ExtensionOf(base)) != kind {
		base += "." + string(kind)
	}
	return uuid.NewString() + "-" + base
}

package reader

import (
	"mime"
	"path/filepath"
	"strings"
)

var supportedFormats = []Format{FormatPDF, FormatDocx, FormatDoc, FormatPptx, FormatPpt, FormatTXT}

const (
	mimePDF  = "application/pdf"
	mimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeDoc  = "application/msword"
	mimePptx = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	mimePpt  = "application/vnd.ms-powerpoint"
	mimeTXT  = "text/plain"
)

var mimeTypes = map[string]Format{
	mimePDF:  FormatPDF,
	mimeDocx: FormatDocx,
	mimeDoc:  FormatDoc,
	mimePptx: FormatPptx,
	mimePpt:  FormatPpt,
	mimeTXT:  FormatTXT,
}

// ExtensionOf returns the lower-cased text after the last dot of the base
// name, or "" when there is none.
func ExtensionOf(name string) string {
	name = filepath.Base(name)
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}

// KindFromMimeType maps a media type to a Format. Parameters such as
// "; charset=utf-8" and letter case are ignored.
func KindFromMimeType(mimeType string) (Format, bool) {
	mimeType = strings.TrimSpace(mimeType)
	if mimeType == "" {
		return "", false
	}
	if mt, _, err := mime.ParseMediaType(mimeType); err == nil {
		mimeType = mt
	}
	f, ok := mimeTypes[strings.ToLower(mimeType)]
	return f, ok
}

// ResolveKind determines the Format of a document from its name, falling
// back to the media type when the extension is missing or unknown.
func ResolveKind(name, mimeType string) (Format, bool) {
	if f := Format(ExtensionOf(name)); IsSupported(f) {
		return f, true
	}
	return KindFromMimeType(mimeType)
}

// IsSupported reports whether f is one of the supported formats.
func IsSupported(f Format) bool {
	for _, s := range supportedFormats {
		if s == f {
			return true
		}
	}
	return false
}

// IsFormatSupported reports whether the file at path has a supported extension.
// It does not touch the filesystem.
func IsFormatSupported(path string) bool {
	return IsSupported(Format(ExtensionOf(path)))
}

// IsFormatSupportedByName is IsFormatSupported for display names.
func IsFormatSupportedByName(name string) bool {
	return IsFormatSupported(name)
}

// SupportedFormats returns all supported formats.
func SupportedFormats() []Format {
	out := make([]Format, len(supportedFormats))
	copy(out, supportedFormats)
	return out
}

func isLegacy(f Format) bool {
	return f == FormatDoc || f == FormatPpt || f == FormatPptx
}

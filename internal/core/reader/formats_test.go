package reader

import "testing"

func TestResolveKind(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		mimeType string
		want     Format
		ok       bool
	}{
		{"lower extension", "a.pdf", "", FormatPDF, true},
		{"upper extension", "REPORT.DOCX", "", FormatDocx, true},
		{"mixed extension", "Deck.PpTx", "", FormatPptx, true},
		{"extension wins over mime", "notes.txt", "application/pdf", FormatTXT, true},
		{"mime fallback", "upload", "application/msword", FormatDoc, true},
		{"mime with params", "upload", "text/plain; charset=utf-8", FormatTXT, true},
		{"mime upper case", "upload", "APPLICATION/VND.MS-POWERPOINT", FormatPpt, true},
		{"unknown extension falls back to mime", "blob.bin", "application/pdf", FormatPDF, true},
		{"nothing usable", "image.png", "image/png", "", false},
		{"empty", "", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveKind(tt.fileName, tt.mimeType)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ResolveKind(%q, %q) = %q, %v; want %q, %v", tt.fileName, tt.mimeType, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestIsFormatSupported(t *testing.T) {
	for _, p := range []string{"a.pdf", "a.docx", "a.doc", "a.pptx", "a.ppt", "a.txt", "/x/y/Z.PDF"} {
		if !IsFormatSupported(p) {
			t.Errorf("IsFormatSupported(%q) = false", p)
		}
	}
	for _, p := range []string{"README", "a.xlsx", "a.pdf.bak", "dir.pdf/file", ""} {
		if IsFormatSupported(p) {
			t.Errorf("IsFormatSupported(%q) = true", p)
		}
	}
}

func TestSupportedFormats(t *testing.T) {
	got := SupportedFormats()
	want := []Format{FormatPDF, FormatDocx, FormatDoc, FormatPptx, FormatPpt, FormatTXT}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	got[0] = "xyz"
	if SupportedFormats()[0] != FormatPDF {
		t.Error("SupportedFormats must return a copy")
	}
}

package emitter

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
)

func readArchive(t *testing.T, blob []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(blob), int64(len(blob)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	out := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open entry %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read entry %s: %v", f.Name, err)
		}
		out[f.Name] = string(data)
	}
	return out
}

func TestArchive_SingleEntry(t *testing.T) {
	blob, err := Archive(map[string]string{"a.txt": "hello"})
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}

	got := readArchive(t, blob)
	if len(got) != 1 {
		t.Fatalf("entry count = %d, want 1", len(got))
	}
	if got["a.txt"] != "hello" {
		t.Errorf("a.txt = %q, want %q", got["a.txt"], "hello")
	}
}

func TestArchive_RoundTrip(t *testing.T) {
	bundle, err := Bundle(testRequest())
	if err != nil {
		t.Fatalf("Bundle: %v", err)
	}

	blob, err := Archive(bundle)
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}

	got := readArchive(t, blob)
	if len(got) != len(bundle) {
		t.Fatalf("entry count = %d, want %d", len(got), len(bundle))
	}
	for name, content := range bundle {
		if got[name] != content {
			t.Errorf("entry %s does not round-trip byte-for-byte", name)
		}
	}
}

func TestArchive_UsesDeflate(t *testing.T) {
	blob, err := Archive(map[string]string{"a.txt": "hello hello hello hello"})
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(blob), int64(len(blob)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	if zr.File[0].Method != zip.Deflate {
		t.Errorf("compression method = %d, want deflate (%d)", zr.File[0].Method, zip.Deflate)
	}
}

func TestArchive_Empty(t *testing.T) {
	blob, err := Archive(nil)
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}
	got := readArchive(t, blob)
	if len(got) != 0 {
		t.Errorf("empty input should produce an empty archive, got %d entries", len(got))
	}
}

func TestArchiveName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Todo API", "Todo_API_cradle.zip"},
		{"Custom API", "Custom_API_cradle.zip"},
		{"nospace", "nospace_cradle.zip"},
		{"", "api_cradle.zip"},
	}
	for _, test := range tests {
		if got := ArchiveName(test.input); got != test.expected {
			t.Errorf("ArchiveName(%q) = %q, expected %q", test.input, got, test.expected)
		}
	}
}

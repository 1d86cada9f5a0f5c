package emitter

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"
)

// ArchiveName derives the download-style archive filename for an API name,
// e.g. "Todo API" becomes "Todo_API_cradle.zip".
func ArchiveName(apiName string) string {
	name := strings.TrimSpace(apiName)
	if name == "" {
		name = "api"
	}
	return strings.ReplaceAll(name, " ", "_") + "_cradle.zip"
}

// Archive packs the file map into a deflate-compressed zip blob. Directory
// structure comes from path prefixes in the keys; contents are stored
// verbatim. Entries are written in sorted path order so the blob is
// deterministic for a given map.
func Archive(files map[string]string) ([]byte, error) {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("archive: create entry %s: %w", name, err)
		}
		if _, err := io.WriteString(w, files[name]); err != nil {
			return nil, fmt.Errorf("archive: write entry %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("archive: finalize: %w", err)
	}
	return buf.Bytes(), nil
}

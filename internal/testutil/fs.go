package testutil

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// CreateTestEPUB is a helper function that creates a minimal EPUB file
// with the given Dublin Core fields. Empty fields are omitted from the
// OPF. It's useful for testing metadata extraction and directory scans.
func CreateTestEPUB(t *testing.T, dir, name, title, author, date string) string {
	t.Helper()
	filePath := filepath.Join(dir, name)
	file, err := os.Create(filePath)
	if err != nil {
		t.Fatalf("Failed to create temp epub file: %v", err)
	}
	defer file.Close()

	zipWriter := zip.NewWriter(file)

	container := `<?xml version="1.0"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`

	opf := `<?xml version="1.0"?>
<package xmlns="http://www.idpf.org/2007/opf" version="3.0">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
`
	if title != "" {
		opf += fmt.Sprintf("    <dc:title>%s</dc:title>\n", title)
	}
	if author != "" {
		opf += fmt.Sprintf("    <dc:creator>%s</dc:creator>\n", author)
	}
	if date != "" {
		opf += fmt.Sprintf("    <dc:date>%s</dc:date>\n", date)
	}
	opf += `  </metadata>
</package>`

	for member, content := range map[string]string{
		"META-INF/container.xml": container,
		"content.opf":            opf,
	} {
		w, err := zipWriter.Create(member)
		if err != nil {
			t.Fatalf("Failed to create entry '%s' in zip: %v", member, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write entry '%s': %v", member, err)
		}
	}
	if err := zipWriter.Close(); err != nil {
		t.Fatalf("Failed to finalize epub: %v", err)
	}
	return filePath
}

// This file dispatches metadata extraction by file extension. Extraction
// never aborts a scan: any error is logged and degrades to an empty
// BookMeta, leaving the resolvers to work from the filename alone.

package extract

import (
	"log"
	"path/filepath"
	"strings"

	"github.com/tmalloy/bindery/internal/models"
)

// SupportedExt reports whether ext (without dot, any case) is a file
// type we can extract metadata from.
func SupportedExt(ext string) bool {
	switch strings.ToLower(ext) {
	case "epub", "pdf":
		return true
	}
	return false
}

// FromFile extracts whatever metadata the file's container provides.
func FromFile(path string) models.BookMeta {
	var (
		meta models.BookMeta
		err  error
	)
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "epub":
		meta, err = EPUB(path)
	case "pdf":
		meta, err = PDF(path)
	default:
		return models.BookMeta{}
	}
	if err != nil {
		log.Printf("Warning: could not extract metadata from %s: %v", filepath.Base(path), err)
		return models.BookMeta{}
	}
	return meta
}

// optional returns a pointer to the trimmed value, or nil when the value
// is blank. Resolver logic distinguishes absent fields from present ones.
func optional(value string) *string {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil
	}
	return &v
}

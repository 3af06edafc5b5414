// This file reads PDF document-info metadata via MuPDF and, when the
// info dictionary is missing fields, probes the first page's text for
// title and author candidates.

package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gen2brain/go-fitz"

	"github.com/tmalloy/bindery/internal/models"
)

// pdfDateRe pulls the year out of a PDF date string ("D:20160316..." or
// a plain "2016-03-16").
var pdfDateRe = regexp.MustCompile(`(?:^D:|^)(\d{4})`)

// PDF returns the document-info metadata of a PDF. Fields absent from
// the info dictionary are filled from a first-page text probe where
// possible, and the raw first-page text rides along for the year
// resolver's arXiv heuristic.
func PDF(path string) (models.BookMeta, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return models.BookMeta{}, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer doc.Close()

	info := doc.Metadata()
	meta := models.BookMeta{
		Title:    optional(info["title"]),
		Authors:  optional(info["author"]),
		Date:     optional(pdfDateYear(info["creationDate"])),
		Modified: optional(pdfDateYear(info["modDate"])),
	}

	if meta.Title != nil && meta.Authors != nil && meta.Date != nil {
		return meta, nil
	}

	text, err := doc.Text(0)
	if err != nil || strings.TrimSpace(text) == "" {
		// A scanned or image-only PDF. Info metadata is all we have.
		return meta, nil
	}
	meta.FirstPageText = &text

	title, author := probeFirstPage(text)
	if meta.Title == nil {
		meta.Title = optional(title)
	}
	if meta.Authors == nil {
		meta.Authors = optional(author)
	}
	return meta, nil
}

// pdfDateYear reduces a PDF date string to its year component. Full
// date parsing is unnecessary: only the year survives into filenames.
func pdfDateYear(raw string) string {
	m := pdfDateRe.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return ""
	}
	return m[1]
}

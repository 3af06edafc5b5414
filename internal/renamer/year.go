// This file extracts a publication year from a prioritized list of
// candidate date sources.

package renamer

import (
	"regexp"

	"github.com/tmalloy/bindery/internal/models"
)

// yearRe matches a 4-digit year between 1000 and 2999 that is not part
// of a longer digit run (so "20190301" yields nothing but "2019-03-01"
// yields 2019).
var yearRe = regexp.MustCompile(`(?:^|[^0-9])([12]\d{3})(?:[^0-9]|$)`)

// arxivLineRe finds an arXiv identifier line in PDF first-page text; the
// identifier embeds the submission year ("arXiv:1603.04467v2 ...").
var arxivLineRe = regexp.MustCompile(`(?im)^arxiv:.*$`)

// ExtractYear returns the first plausible 4-digit year in text, or ""
// when none is found.
func ExtractYear(text string) string {
	m := yearRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

// ResolveYear runs the year fallback chain in priority order: container
// date, container modified date, PDF first-page text (arXiv line), and
// finally the filename stem. Returns the UnknownYear sentinel when every
// tier fails.
func ResolveYear(date, modified *string, stem string, firstPageText *string) string {
	if date != nil {
		if y := ExtractYear(*date); y != "" {
			return y
		}
	}
	if modified != nil {
		if y := ExtractYear(*modified); y != "" {
			return y
		}
	}
	if firstPageText != nil {
		if y := yearFromFirstPage(*firstPageText); y != "" {
			return y
		}
	}
	if y := ExtractYear(stem); y != "" {
		return y
	}
	return models.UnknownYear
}

// yearFromFirstPage looks for an arXiv identifier line in probe text;
// its identifier carries the submission date. Arbitrary years elsewhere
// on the page (chapter numbers, addresses) are deliberately not trusted.
func yearFromFirstPage(text string) string {
	line := arxivLineRe.FindString(text)
	if line == "" {
		return ""
	}
	return yearFromArxivLine(line)
}

var arxivIDRe = regexp.MustCompile(`(?i)arxiv:\s*(\d{2})(\d{2})\.`)

// yearFromArxivLine decodes the YYMM prefix of a modern arXiv identifier.
// Identifiers before 2007 use a different scheme and fall through to the
// plain year scan.
func yearFromArxivLine(line string) string {
	m := arxivIDRe.FindStringSubmatch(line)
	if m == nil {
		return ExtractYear(line)
	}
	yy := m[1]
	// arXiv's new-style identifiers started in 2007.
	if yy >= "07" && yy <= "99" {
		return "20" + yy
	}
	return ""
}

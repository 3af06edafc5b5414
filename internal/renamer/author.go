// This file isolates the primary author from a raw multi-author metadata
// field, or from the filename when metadata carries no author at all.

package renamer

import (
	"regexp"
	"strings"

	"github.com/tmalloy/bindery/internal/models"
)

var (
	honorificRe    = regexp.MustCompile(`(?i)\b(PhD|M\.D\.|MD)\b`)
	authorSplitRe  = regexp.MustCompile(`\s*(?:,|;| and | & )\s*`)
	parenGroupRe   = regexp.MustCompile(`\(([^)]{2,})\)`)
	authorPartRe   = regexp.MustCompile(`\s*(?:,|;)\s*`)
	hyphenSplitRe  = regexp.MustCompile(`-+`)
	yearSegmentRe  = regexp.MustCompile(`(?i)^(?:[12]\d{3}|UnknownYear)$`)
	nameTokenRe    = regexp.MustCompile(`^[A-Za-z][A-Za-z.'-]*$`)
	underscoreWsRe = regexp.MustCompile(`[_\s]+`)
)

// FirstAuthor extracts the first author from a raw metadata field. It
// drops honorifics and splits multi-author lists on commas, semicolons,
// "and" or "&". Returns "" when nothing usable remains.
func FirstAuthor(authors *string) string {
	if authors == nil {
		return ""
	}
	value := strings.Trim(strings.TrimSpace(*authors), ";")
	value = strings.Trim(honorificRe.ReplaceAllString(value, ""), " ,;")
	if value == "" {
		return ""
	}

	first := value
	if parts := authorSplitRe.Split(value, -1); len(parts) > 0 {
		first = strings.TrimSpace(parts[0])
	}

	return strings.TrimSpace(spacesRe.ReplaceAllString(first, " "))
}

// AuthorFromFilename scans a filename stem for an author name. The main
// source is a parenthesized group ("Title (Jane Doe) 2020"); failing
// that, the last hyphen-separated segment is accepted when it looks like
// a capitalized personal name.
func AuthorFromFilename(stem string) string {
	for _, m := range parenGroupRe.FindAllStringSubmatch(stem, -1) {
		raw := strings.TrimSpace(m[1])
		if raw == "" || containsNoise(raw) {
			continue
		}
		if strings.ContainsAny(raw, ",;") {
			if candidate := strings.TrimSpace(authorPartRe.Split(raw, -1)[0]); candidate != "" {
				return candidate
			}
		}
		tokens := strings.Fields(raw)
		if len(tokens) >= 2 {
			return tokens[0] + " " + tokens[1]
		}
		return raw
	}

	// Fallback: the segment before a trailing year in hyphen-split names
	// like "Clean_Code-Robert_Martin-2008".
	var parts []string
	for _, p := range hyphenSplitRe.Split(stem, -1) {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	idx := len(parts) - 1
	if yearSegmentRe.MatchString(parts[idx]) {
		idx--
	}
	if idx < 0 {
		return ""
	}
	candidate := strings.TrimSpace(underscoreWsRe.ReplaceAllString(parts[idx], " "))
	tokens := strings.Fields(candidate)
	if len(tokens) < 1 || len(tokens) > 3 {
		return ""
	}
	for _, t := range tokens {
		if !nameTokenRe.MatchString(t) {
			return ""
		}
	}
	if len(tokens) >= 2 && allTitleCased(tokens) {
		return strings.Join(tokens, " ")
	}
	if len(tokens) == 1 && len(tokens[0]) >= 4 && isUpperInitial(tokens[0]) {
		return tokens[0]
	}
	return ""
}

// ResolveAuthor runs the author fallback chain: metadata first, then the
// filename, then the sentinel. The result is a filesystem-safe token.
func ResolveAuthor(authors *string, stem string) string {
	raw := RawAuthor(authors, stem)
	if raw == "" {
		return models.UnknownAuthor
	}
	return FileToken(raw)
}

// RawAuthor is ResolveAuthor without the final token normalization. The
// un-normalized name is needed by StripAuthorFromTitle.
func RawAuthor(authors *string, stem string) string {
	if first := FirstAuthor(authors); first != "" {
		return first
	}
	return AuthorFromFilename(stem)
}

func allTitleCased(tokens []string) bool {
	for _, t := range tokens {
		if !isUpperInitial(t) {
			return false
		}
	}
	return true
}

func isUpperInitial(token string) bool {
	return token != "" && token[0] >= 'A' && token[0] <= 'Z'
}

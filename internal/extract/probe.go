// This file recovers title and author candidates from the text of a
// PDF's first page. Heuristics only: the goal is a plausible guess for
// files whose info dictionary is empty, not a citation parser.

package extract

import (
	"regexp"
	"strings"
)

const (
	// How far into the page each scan looks.
	titleScanLines  = 60
	authorScanLines = 18

	titleMinWords = 3
	titleMaxWords = 24
	titleMinChars = 12
)

var (
	probeWordRe    = regexp.MustCompile(`[A-Za-z][A-Za-z.\-']*`)
	romanNumeralRe = regexp.MustCompile(`^[ivxlcdm]+$`)
	probeSpaceRe   = regexp.MustCompile(`\s+`)
)

// skipPrefixes start lines that are never titles: identifiers and
// front-matter headings.
var skipPrefixes = []string{"arxiv:", "contents", "preface", "abstract"}

// probeFirstPage scans page text for a title line and an author byline.
// The title is the first line of prose-like length that is not a
// heading, an email line, or an author line; a plausible continuation
// line is appended as a subtitle. The author is the first byline-shaped
// line after the title. Either result may be empty.
func probeFirstPage(text string) (title, author string) {
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(probeSpaceRe.ReplaceAllString(raw, " "))
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return "", ""
	}

	titleIdx := -1
	for idx, line := range lines {
		if idx >= titleScanLines {
			break
		}
		lowered := strings.ToLower(line)
		if hasAnyPrefix(lowered, skipPrefixes...) {
			continue
		}
		if strings.Contains(line, "@") {
			continue
		}
		// Page numbers in front matter.
		if romanNumeralRe.MatchString(lowered) {
			continue
		}
		words := strings.Fields(line)
		if len(words) < titleMinWords || len(words) > titleMaxWords {
			continue
		}
		if len(line) < titleMinChars {
			continue
		}
		if likelyAuthorLine(line) {
			continue
		}
		title = line
		titleIdx = idx
		if idx+1 < len(lines) {
			title = joinSubtitle(title, lines[idx+1])
		}
		break
	}

	start := 0
	if titleIdx >= 0 {
		start = titleIdx + 1
	}
	for i := start; i < len(lines) && i < start+authorScanLines; i++ {
		if likelyAuthorLine(lines[i]) {
			author = lines[i]
			break
		}
	}
	return title, author
}

// joinSubtitle appends the line after the title when it reads like a
// subtitle rather than a byline or a new section.
func joinSubtitle(title, next string) string {
	lowered := strings.ToLower(next)
	if len(strings.Fields(next)) < 3 || len(next) > 140 {
		return title
	}
	if likelyAuthorLine(next) {
		return title
	}
	if hasAnyPrefix(lowered, append(skipPrefixes, "based on ")...) {
		return title
	}
	joiner := ": "
	if strings.HasSuffix(title, ".") || strings.HasSuffix(title, ":") ||
		strings.HasSuffix(title, "-") || strings.HasSuffix(title, "?") ||
		strings.HasSuffix(title, "!") {
		joiner = " "
	}
	return title + joiner + next
}

// likelyAuthorLine reports whether a line reads like an author byline:
// a short run of mostly capitalized words, usually comma- or
// "and"-separated. Email lines and credit boilerplate are excluded.
func likelyAuthorLine(line string) bool {
	lowered := strings.ToLower(line)
	if strings.Contains(line, "@") {
		return false
	}
	if strings.Contains(lowered, "based on research") || strings.Contains(lowered, "collaboration") {
		return false
	}
	words := probeWordRe.FindAllString(line, -1)
	if len(words) < 2 || len(words) > 12 {
		return false
	}
	upper := 0
	for _, w := range words {
		if w[0] >= 'A' && w[0] <= 'Z' {
			upper++
		}
	}
	if upper < 2 {
		return false
	}
	return strings.Contains(line, ",") || strings.Contains(lowered, " and ") || len(words) <= 4
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

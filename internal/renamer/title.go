// This file chooses the best title for a book from its container metadata
// and its current filename. Metadata wins whenever it is plausible; the
// filename wins when metadata is missing, opaque, or a truncated prefix of
// a richer filename-derived title.

package renamer

import (
	"regexp"
	"strings"
)

// Thresholds for the suspicious-title and prefix-preference heuristics.
// Exposed as constants so tests can target the boundaries.
const (
	// minTitleLength is the shortest metadata title accepted as-is.
	minTitleLength = 3
	// shortTitleWords is the largest word count still considered a
	// possibly truncated title.
	shortTitleWords = 2
	// richTitleWords is the smallest word count a filename-derived title
	// needs before it may override a short metadata title.
	richTitleWords = 4
)

var (
	// opaqueIDRe matches ASIN-style product codes sometimes stored in the
	// title field, e.g. "B01M0DROJI" or "B07XVQB91M (ebook)".
	opaqueIDRe = regexp.MustCompile(`^B[0-9A-Z]{9}(?:\s*\(.*\))?$`)

	novelAboutRe = regexp.MustCompile(`(?i)\s+A\s+Novel\s+about\s+.*$`)
	wordRe       = regexp.MustCompile(`[A-Za-z0-9]+`)

	// Edition markers appear in both space- and underscore-separated
	// titles; \b is useless next to _ (a word character in RE2), so
	// these patterns use the same explicit boundaries as the
	// abbreviation rules. The marker itself is capture group 1.
	ordinalEditionRe = regexp.MustCompile(`(?i)` + boundaryL + `(\d+(?:st|nd|rd|th)[\s_]+edition)` + boundaryR)
	editionMarkerRe  = regexp.MustCompile(`(?i)` + boundaryL + `(?:\d+e|\d+(?:st|nd|rd|th)[\s_]+edition|first[\s_]+edition|second[\s_]+edition|third[\s_]+edition)` + boundaryR)

	separatorRunRe = regexp.MustCompile(`[_\-]+`)
)

// subtitleSeparators are tried in order; the first one present splits the
// title. The double-dash form must come before the single dash.
var subtitleSeparators = []string{" -- ", " - ", ": "}

// looksSuspicious reports whether a metadata title is too unreliable to
// use: absent, shorter than minTitleLength, or an opaque product code.
func looksSuspicious(title *string) bool {
	if title == nil {
		return true
	}
	t := strings.TrimSpace(*title)
	if len(t) < minTitleLength {
		return true
	}
	return opaqueIDRe.MatchString(t)
}

// wordCount counts alphanumeric word runs in text.
func wordCount(text string) int {
	return len(wordRe.FindAllString(text, -1))
}

// normalizeForCompare lowercases and flattens separator characters so
// metadata and filename titles can be compared as phrases.
func normalizeForCompare(text string) string {
	value := strings.ToLower(text)
	value = separatorRunRe.ReplaceAllString(value, " ")
	return strings.TrimSpace(spacesRe.ReplaceAllString(value, " "))
}

// hasEditionMarker reports whether text carries a recognized edition
// phrase, abbreviated or spelled out.
func hasEditionMarker(text string) bool {
	return editionMarkerRe.MatchString(text)
}

// MainTitle truncates a title at the first subtitle separator, keeping an
// ordinal edition marker from the discarded tail when one is present
// (e.g. "Database Systems: 3rd Edition" keeps "3rd Edition").
func MainTitle(title string) string {
	t := CleanText(title)
	t = novelAboutRe.ReplaceAllString(t, "")
	for _, sep := range subtitleSeparators {
		idx := strings.Index(t, sep)
		if idx < 0 {
			continue
		}
		head, tail := t[:idx], t[idx+len(sep):]
		if m := ordinalEditionRe.FindStringSubmatch(tail); m != nil {
			t = head + " " + m[1]
		} else {
			t = head
		}
		break
	}
	return strings.TrimSpace(t)
}

// TitleFromFilename derives a title candidate from a filename stem.
func TitleFromFilename(stem string) string {
	return MainTitle(CleanText(stem))
}

// ChooseBestTitle picks between the metadata title and a filename-derived
// candidate. The filename wins only when the metadata title is suspicious,
// or when it is a short prefix of a richer filename title (recovering
// multi-part titles truncated by the metadata source).
func ChooseBestTitle(metaTitle *string, stem string) string {
	fallback := TitleFromFilename(stem)
	if looksSuspicious(metaTitle) {
		return fallback
	}

	metaMain := MainTitle(*metaTitle)
	fallbackMain := MainTitle(fallback)
	metaNorm := normalizeForCompare(metaMain)
	fallbackNorm := normalizeForCompare(fallbackMain)

	// A filename that spells out an edition the metadata omits is the
	// richer source, as long as it starts with the metadata title.
	if hasEditionMarker(fallbackMain) && !hasEditionMarker(metaMain) {
		if strings.HasPrefix(fallbackNorm, metaNorm) {
			return fallbackMain
		}
	}

	if wordCount(metaMain) <= shortTitleWords &&
		wordCount(fallbackMain) >= richTitleWords &&
		strings.HasPrefix(fallbackNorm, metaNorm) {
		return stripAcronymPrefix(fallbackMain, metaMain)
	}

	return metaMain
}

// stripAcronymPrefix drops a leading word that merely abbreviates the
// words after it ("SRE Site Reliability Engineering ..." becomes
// "Site Reliability Engineering ..."). The prefix is dropped only when
// the metadata title is that single word and its letters match the
// initials of the following words.
func stripAcronymPrefix(title, metaTitle string) string {
	meta := strings.ToLower(strings.TrimSpace(metaTitle))
	if meta == "" || strings.ContainsAny(meta, " _-") {
		return title
	}
	words := wordRe.FindAllString(title, -1)
	if len(words) < len(meta)+1 || !strings.EqualFold(words[0], meta) {
		return title
	}
	for i, r := range meta {
		if !strings.EqualFold(string(words[i+1][0]), string(r)) {
			return title
		}
	}
	return strings.Join(words[1:], " ")
}

// StripAuthorFromTitle removes an author name and a resolved year
// duplicated into the title, a common artifact of titles recovered from
// download filenames. Both fields already have their own slot in the
// composed name. The title is returned unchanged if stripping would
// leave nothing.
func StripAuthorFromTitle(title, author, year string) string {
	if title == "" {
		return title
	}

	const sep = `[\s_\-–—,:|/]*`
	yearPat := `[12]\d{3}`
	yearKnown := year != "" && year != "UnknownYear"
	if yearKnown {
		yearPat = regexp.QuoteMeta(year)
	}

	var patterns []string
	if token := FileToken(author); author != "" && token != "Unknown" {
		authorPat := strings.ReplaceAll(regexp.QuoteMeta(token), `_`, `[ _-]+`)
		patterns = append(patterns,
			`(?i)`+sep+authorPat+`(?:`+sep+yearPat+`)?\s*$`,
			`(?i)`+sep+yearPat+sep+authorPat+`\s*$`,
			`(?i)^\s*`+authorPat+sep,
		)
	}
	if yearKnown {
		patterns = append(patterns, `(?i)`+sep+yearPat+`\s*$`)
	}

	cleaned := title
	for _, pat := range patterns {
		re, err := regexp.Compile(pat)
		if err != nil {
			continue
		}
		cleaned = strings.Trim(re.ReplaceAllString(cleaned, ""), " _-–—,|:/")
	}
	if cleaned == "" {
		return title
	}
	return cleaned
}

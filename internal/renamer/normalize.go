// This file contains the generic string cleanup used by every resolver:
// stripping source-site noise tokens and turning free text into tokens
// that are safe to use in filenames on all supported platforms.

package renamer

import (
	"regexp"
	"strings"
)

// noisePatterns match marketplace/library-sharing tags that leak into
// titles and filenames. Matched case-insensitively, anywhere.
var noisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)z-library`),
	regexp.MustCompile(`(?i)1lib`),
	regexp.MustCompile(`(?i)z-lib`),
	regexp.MustCompile(`(?i)lib\.sk`),
}

var (
	legacySentinelRe = regexp.MustCompile(`(?i)\bUnknown(?:Year|Author)\b`)
	parentheticalRe  = regexp.MustCompile(`\([^)]*\)`)
	spacesRe         = regexp.MustCompile(`\s+`)
	illegalCharsRe   = regexp.MustCompile(`[\\/:*?"<>|]`)
	punctCharsRe     = regexp.MustCompile(`[.,;()\[\]{}]`)
	underscoreRunRe  = regexp.MustCompile(`_+`)
)

// CleanText removes noise tokens, leftover sentinel tokens from earlier
// runs, and parenthesized groups, then collapses whitespace. It keeps the
// text human readable; FileToken makes it filesystem safe.
func CleanText(text string) string {
	value := text
	for _, re := range noisePatterns {
		value = re.ReplaceAllString(value, "")
	}
	value = legacySentinelRe.ReplaceAllString(value, "")
	value = parentheticalRe.ReplaceAllString(value, "")
	value = spacesRe.ReplaceAllString(value, " ")
	return strings.Trim(value, " ._-")
}

// FileToken converts free text into a filesystem-safe token: characters
// illegal on Windows or POSIX become spaces, punctuation is dropped,
// whitespace runs collapse to a single underscore. Empty input yields
// "Unknown" so composed names never have an empty segment.
func FileToken(text string) string {
	value := strings.TrimSpace(text)
	value = illegalCharsRe.ReplaceAllString(value, " ")
	value = punctCharsRe.ReplaceAllString(value, " ")
	value = spacesRe.ReplaceAllString(value, "_")
	value = underscoreRunRe.ReplaceAllString(value, "_")
	value = strings.Trim(value, "_ .")
	if value == "" {
		return "Unknown"
	}
	return value
}

// containsNoise reports whether text carries a known source-site tag.
// Used to skip parenthetical groups that hold tags instead of authors.
func containsNoise(text string) bool {
	for _, re := range noisePatterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// This file shortens edition/volume/release vocabulary in titles using an
// ordered rewrite table. Rules run most-specific first so "2nd Edition"
// becomes "2e" before the generic "Edition" rule could turn it into
// "2nd Ed". The whole pass is idempotent.

package renamer

import (
	"regexp"
	"strings"
)

// Titles reach this pass in two shapes: space-separated (metadata) and
// underscore-separated (filename stems). \b cannot delimit phrases in
// the second shape because RE2 counts _ as a word character, so every
// rule carries an explicit boundary instead: start/end of string or any
// non-alphanumeric character. The boundary is matched but never
// replaced; only the captured phrase is rewritten.
const (
	boundaryL = `(?:^|[^0-9A-Za-z])`
	boundaryR = `(?:$|[^0-9A-Za-z])`
)

// abbrevRule is one phrase rewrite. Rules apply case-insensitively and
// replace only the first match.
type abbrevRule struct {
	pattern *regexp.Regexp
	repl    string
}

// phraseRule compiles phrase with explicit boundaries on both sides.
// The phrase itself is capture group 1.
func phraseRule(phrase, repl string) abbrevRule {
	return abbrevRule{
		pattern: regexp.MustCompile(`(?i)` + boundaryL + `(` + phrase + `)` + boundaryR),
		repl:    repl,
	}
}

// typoEditionRe fixes the common "Edtion" misspelling before any edition
// rule runs, so the rewrite table only needs the correct spelling.
var typoEditionRe = regexp.MustCompile(`(?i)` + boundaryL + `(Edtion)` + boundaryR)

// numericOrdinalRe collapses "2nd Edition", "10th Edition" and similar to
// the compact "Ne" form, keeping the number.
var numericOrdinalRe = regexp.MustCompile(`(?i)` + boundaryL + `(\d+)[\s_]*(?:st|nd|rd|th)[\s_]+(Edition)` + boundaryR)

// abbrevRules is the ordered rewrite table. Word ordinals first, then the
// named edition variants, then the generic catch-alls.
var abbrevRules = []abbrevRule{
	phraseRule(`First[\s_]+Edition`, "1e"),
	phraseRule(`Second[\s_]+Edition`, "2e"),
	phraseRule(`Third[\s_]+Edition`, "3e"),
	phraseRule(`Fourth[\s_]+Edition`, "4e"),
	phraseRule(`Fifth[\s_]+Edition`, "5e"),
	phraseRule(`Sixth[\s_]+Edition`, "6e"),
	phraseRule(`Seventh[\s_]+Edition`, "7e"),
	phraseRule(`Eighth[\s_]+Edition`, "8e"),
	phraseRule(`Ninth[\s_]+Edition`, "9e"),
	phraseRule(`Tenth[\s_]+Edition`, "10e"),
	phraseRule(`Revised[\s_]+Edition`, "RevEd"),
	phraseRule(`Updated[\s_]+Edition`, "UpdEd"),
	phraseRule(`International[\s_]+Edition`, "IntlEd"),
	phraseRule(`Collector'?s[\s_]+Edition`, "CollEd"),
	phraseRule(`Special[\s_]+Edition`, "SpecEd"),
	phraseRule(`Student[\s_]+Edition`, "StuEd"),
	phraseRule(`Edition`, "Ed"),
	phraseRule(`Release`, "Rel"),
	phraseRule(`Volume`, "Vol"),
	phraseRule(`Vol\.`, "Vol"),
	phraseRule(`Part`, "Pt"),
	phraseRule(`Number`, "No"),
}

// Abbreviate applies the rewrite table to a title. Each rule replaces at
// most its first match; re-running the pass over already-abbreviated text
// is a no-op.
func Abbreviate(title string) string {
	value := title
	for {
		m := typoEditionRe.FindStringSubmatchIndex(value)
		if m == nil {
			break
		}
		value = value[:m[2]] + "Edition" + value[m[3]:]
	}

	if m := numericOrdinalRe.FindStringSubmatchIndex(value); m != nil {
		// Replace from the number through the end of "Edition".
		num := value[m[2]:m[3]]
		value = value[:m[2]] + num + "e" + value[m[5]:]
	}

	for _, rule := range abbrevRules {
		if m := rule.pattern.FindStringSubmatchIndex(value); m != nil {
			value = value[:m[2]] + rule.repl + value[m[3]:]
		}
	}

	return strings.TrimSpace(spacesRe.ReplaceAllString(value, " "))
}

// This file assembles resolved fields into the final filename and checks
// it against filesystem name-length limits, plus the validation applied
// to user-edited target names before a rename is allowed.

package renamer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tmalloy/bindery/internal/models"
)

// Name-length thresholds for preview warnings. 255 is the hard limit on
// most filesystems; 200 leaves headroom for copies and sync suffixes.
const (
	WindowsFilenameLimit = 255
	SafeFilenameLimit    = 200
)

var windowsIllegalRe = regexp.MustCompile(`[:*?"<>|]`)

// Composed is the result of joining resolved fields into a filename.
type Composed struct {
	Name     string
	TitleLen int
	NameLen  int
	Warning  models.WarningLevel
}

// Compose joins title, author and year into "Title-Author-Year.ext" and
// computes the length annotations. Pure function of its inputs.
func Compose(title, author, year, ext string) Composed {
	name := fmt.Sprintf("%s-%s-%s.%s", title, author, year, strings.ToLower(ext))
	return Composed{
		Name:     name,
		TitleLen: len([]rune(title)),
		NameLen:  len([]rune(name)),
		Warning:  warningFor(len([]rune(name))),
	}
}

// warningFor maps a total name length to its warning level. The 255
// check takes priority over the 200 one.
func warningFor(nameLen int) models.WarningLevel {
	switch {
	case nameLen > WindowsFilenameLimit:
		return models.Warn255
	case nameLen > SafeFilenameLimit:
		return models.Warn200
	default:
		return models.WarnNone
	}
}

// TitleLenOf recomputes the title length for an edited target name: the
// segment of the stem before the first dash.
func TitleLenOf(name string) int {
	stem := name
	if idx := strings.LastIndex(name, "."); idx > 0 {
		stem = name[:idx]
	}
	if idx := strings.Index(stem, "-"); idx >= 0 {
		stem = stem[:idx]
	}
	return len([]rune(stem))
}

// Annotate refreshes a plan's length fields and warning level from its
// current proposed name. Front-ends call this after the user edits the
// target.
func Annotate(plan *models.RenamePlan) {
	plan.NameLen = len([]rune(plan.ProposedName))
	plan.TitleLen = TitleLenOf(plan.ProposedName)
	plan.Warning = warningFor(plan.NameLen)
}

// ValidateTargetName rejects edited target filenames that could not be
// created: empty names, path separators, Windows-illegal characters, and
// the dot entries.
func ValidateTargetName(name string) error {
	value := strings.TrimSpace(name)
	if value == "" {
		return fmt.Errorf("target name is empty")
	}
	if strings.ContainsAny(value, `/\`) {
		return fmt.Errorf("target name contains path separators")
	}
	if windowsIllegalRe.MatchString(value) {
		return fmt.Errorf("target name contains characters illegal on Windows")
	}
	if value == "." || value == ".." {
		return fmt.Errorf("target name is a reserved dot entry")
	}
	return nil
}

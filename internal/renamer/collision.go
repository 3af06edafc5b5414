// This file guarantees that every proposed name in a batch is unique,
// both within the batch and against files already in the directory.

package renamer

import (
	"fmt"
	"strings"

	"github.com/tmalloy/bindery/internal/models"
)

// ResolveCollisions walks the batch in discovery order, suffixing "-2",
// "-3", ... before the extension until each proposed name is unique
// against the names claimed so far and the existing directory entries.
// A plan keeping its own current name is left alone: renaming a file to
// itself is not a collision. The claim set compares case-insensitively,
// matching case-preserving filesystems.
func ResolveCollisions(batch models.Batch, existingNames map[string]struct{}) {
	claimed := make(map[string]struct{}, len(existingNames)+len(batch))
	for name := range existingNames {
		claimed[strings.ToLower(name)] = struct{}{}
	}

	for _, plan := range batch {
		if !plan.Same() {
			plan.ProposedName = uniqueName(plan.ProposedName, claimed)
			Annotate(plan)
		}
		claimed[strings.ToLower(plan.ProposedName)] = struct{}{}
	}
}

// uniqueName appends the lowest free -N suffix (starting at 2) to the
// name's stem until it no longer clashes with a claimed name.
func uniqueName(desired string, claimed map[string]struct{}) string {
	if _, taken := claimed[strings.ToLower(desired)]; !taken {
		return desired
	}
	stem, ext := splitExt(desired)
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d%s", stem, n, ext)
		if _, taken := claimed[strings.ToLower(candidate)]; !taken {
			return candidate
		}
	}
}

// splitExt splits a filename into stem and extension (with dot). Names
// without an extension come back with an empty ext.
func splitExt(name string) (stem, ext string) {
	idx := strings.LastIndex(name, ".")
	if idx <= 0 {
		return name, ""
	}
	return name[:idx], name[idx:]
}

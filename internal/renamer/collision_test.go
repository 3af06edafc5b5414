package renamer

import (
	"testing"

	"github.com/tmalloy/bindery/internal/models"
)

func planFor(stem, ext, proposed string) *models.RenamePlan {
	return &models.RenamePlan{
		Source:       models.SourceFile{Path: "/lib/" + stem + "." + ext, Stem: stem, Ext: ext},
		ProposedName: proposed,
	}
}

func TestResolveCollisions(t *testing.T) {
	t.Run("duplicate targets get numeric suffixes", func(t *testing.T) {
		batch := models.Batch{
			planFor("copy_a", "epub", "Dune-Frank_Herbert-1965.epub"),
			planFor("copy_b", "epub", "Dune-Frank_Herbert-1965.epub"),
			planFor("copy_c", "epub", "Dune-Frank_Herbert-1965.epub"),
		}
		ResolveCollisions(batch, nil)

		want := []string{
			"Dune-Frank_Herbert-1965.epub",
			"Dune-Frank_Herbert-1965-2.epub",
			"Dune-Frank_Herbert-1965-3.epub",
		}
		for i, w := range want {
			if batch[i].ProposedName != w {
				t.Errorf("plan %d: ProposedName = %q, want %q", i, batch[i].ProposedName, w)
			}
		}
	})

	t.Run("existing directory entries are claimed", func(t *testing.T) {
		batch := models.Batch{planFor("src", "pdf", "Report-Jane_Doe-2020.pdf")}
		existing := map[string]struct{}{"Report-Jane_Doe-2020.pdf": {}}
		ResolveCollisions(batch, existing)

		if got := batch[0].ProposedName; got != "Report-Jane_Doe-2020-2.pdf" {
			t.Errorf("ProposedName = %q", got)
		}
	})

	t.Run("claim set is case-insensitive", func(t *testing.T) {
		batch := models.Batch{planFor("src", "pdf", "Report-Jane_Doe-2020.pdf")}
		existing := map[string]struct{}{"REPORT-JANE_DOE-2020.PDF": {}}
		ResolveCollisions(batch, existing)

		if got := batch[0].ProposedName; got != "Report-Jane_Doe-2020-2.pdf" {
			t.Errorf("ProposedName = %q", got)
		}
	})

	t.Run("plan keeping its own name is not suffixed", func(t *testing.T) {
		batch := models.Batch{
			planFor("Dune-Frank_Herbert-1965", "epub", "Dune-Frank_Herbert-1965.epub"),
			planFor("dune_copy", "epub", "Dune-Frank_Herbert-1965.epub"),
		}
		// The directory listing naturally contains the first file.
		existing := map[string]struct{}{"Dune-Frank_Herbert-1965.epub": {}}
		ResolveCollisions(batch, existing)

		if got := batch[0].ProposedName; got != "Dune-Frank_Herbert-1965.epub" {
			t.Errorf("unchanged plan was suffixed: %q", got)
		}
		if got := batch[1].ProposedName; got != "Dune-Frank_Herbert-1965-2.epub" {
			t.Errorf("second plan: ProposedName = %q", got)
		}
	})

	t.Run("annotations refreshed after suffixing", func(t *testing.T) {
		batch := models.Batch{
			planFor("a", "pdf", "X-Y-2000.pdf"),
			planFor("b", "pdf", "X-Y-2000.pdf"),
		}
		ResolveCollisions(batch, nil)

		if got, want := batch[1].NameLen, len("X-Y-2000-2.pdf"); got != want {
			t.Errorf("NameLen = %d, want %d", got, want)
		}
	})
}

func TestSplitExt(t *testing.T) {
	tests := []struct {
		input, stem, ext string
	}{
		{"a.pdf", "a", ".pdf"},
		{"archive.tar.gz", "archive.tar", ".gz"},
		{"noext", "noext", ""},
		{".hidden", ".hidden", ""},
	}
	for _, tt := range tests {
		stem, ext := splitExt(tt.input)
		if stem != tt.stem || ext != tt.ext {
			t.Errorf("splitExt(%q) = (%q, %q), want (%q, %q)", tt.input, stem, ext, tt.stem, tt.ext)
		}
	}
}

// This file orchestrates the per-file resolution chain and the batch-wide
// collision pass. Per-file resolution is pure and never fails: every
// resolver degrades to its documented fallback, so even a file with no
// metadata and an uninformative filename yields a usable plan.

package renamer

import "github.com/tmalloy/bindery/internal/models"

// SourceFileMeta bundles a source file with whatever metadata extraction
// found for it. An all-nil BookMeta is valid input.
type SourceFileMeta struct {
	File models.SourceFile
	Meta models.BookMeta
}

// Resolve produces the rename plan for a single file. Stages run in
// fixed order: author, year, title choice, author dedup, abbreviation,
// token normalization, composition.
func Resolve(src models.SourceFile, meta models.BookMeta) *models.RenamePlan {
	authorRaw := RawAuthor(meta.Authors, src.Stem)
	author := models.UnknownAuthor
	if authorRaw != "" {
		author = FileToken(authorRaw)
	}

	year := ResolveYear(meta.Date, meta.Modified, src.Stem, meta.FirstPageText)

	title := ChooseBestTitle(meta.Title, src.Stem)
	title = StripAuthorFromTitle(title, authorRaw, year)
	title = Abbreviate(title)
	titleToken := FileToken(title)

	composed := Compose(titleToken, author, year, src.Ext)

	return &models.RenamePlan{
		Source: src,
		Resolved: models.ResolvedFields{
			Title:  titleToken,
			Author: author,
			Year:   year,
		},
		ProposedName: composed.Name,
		TitleLen:     composed.TitleLen,
		NameLen:      composed.NameLen,
		Warning:      composed.Warning,
	}
}

// ResolveBatch resolves every input in order and then runs the collision
// pass against the supplied directory listing. The returned batch is in
// discovery order.
func ResolveBatch(inputs []SourceFileMeta, existingNames map[string]struct{}) models.Batch {
	batch := make(models.Batch, 0, len(inputs))
	for _, in := range inputs {
		batch = append(batch, Resolve(in.File, in.Meta))
	}
	ResolveCollisions(batch, existingNames)
	return batch
}

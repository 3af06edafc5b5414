// This file defines the core data structures (models) for the application.
// These structs represent scanned ebook files, their extracted metadata,
// and the rename proposals the resolver produces for them.

package models

import "time"

// Sentinel values used when a field cannot be resolved from any source.
const (
	UnknownAuthor = "UnknownAuthor"
	UnknownYear   = "UnknownYear"
)

// BookMeta holds raw metadata extracted from an ebook container. Every
// field is optional: a nil pointer means the source did not carry the
// field at all, while a pointer to an empty string means it was present
// but blank. The resolver treats those cases differently.
type BookMeta struct {
	Title    *string `json:"title,omitempty"`
	Authors  *string `json:"authors,omitempty"`  // raw, possibly multi-author
	Date     *string `json:"date,omitempty"`     // publication/creation date text
	Modified *string `json:"modified,omitempty"` // EPUB dcterms:modified only
	// FirstPageText carries the text of the first PDF page when the
	// container metadata was incomplete. Never set for EPUB files.
	FirstPageText *string `json:"-"`
}

// SourceFile identifies one scanned file. It is immutable once created.
type SourceFile struct {
	Path string `json:"path"` // absolute path
	Stem string `json:"stem"` // base filename without extension
	Ext  string `json:"ext"`  // extension without the dot, case as found on disk
}

// Name returns the current filename including the extension.
func (s SourceFile) Name() string {
	return s.Stem + "." + s.Ext
}

// ResolvedFields is the output of the three field resolvers. All fields
// are non-empty, filesystem-safe tokens (spaces become underscores).
type ResolvedFields struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   string `json:"year"` // 4-digit year or UnknownYear
}

// WarningLevel flags proposed names that approach or exceed common
// filesystem name-length limits.
type WarningLevel int

const (
	WarnNone WarningLevel = iota
	Warn200               // name longer than 200 characters
	Warn255               // name longer than 255 characters
)

// String returns the note text shown in previews for this level.
func (w WarningLevel) String() string {
	switch w {
	case Warn255:
		return ">255"
	case Warn200:
		return ">200"
	default:
		return ""
	}
}

// RenamePlan is one rename proposal: a scanned source file together with
// the name the resolver picked for it. ProposedName may be edited by a
// front-end, in which case TitleLen, NameLen and Warning must be
// recomputed and the batch revalidated before applying.
type RenamePlan struct {
	Source       SourceFile     `json:"source"`
	Resolved     ResolvedFields `json:"resolved"`
	ProposedName string         `json:"proposed_name"`
	TitleLen     int            `json:"title_len"`
	NameLen      int            `json:"name_len"`
	Warning      WarningLevel   `json:"warning"`
}

// Same reports whether the plan would keep the file's current name.
func (p *RenamePlan) Same() bool {
	return p.ProposedName == p.Source.Name()
}

// Batch is the ordered set of rename proposals for one directory scan.
// Order is discovery order; collision resolution depends on it.
type Batch []*RenamePlan

// RenameRecord is one applied rename, persisted so a batch can be undone.
type RenameRecord struct {
	ID        int64     `json:"id"`
	BatchID   string    `json:"batch_id"`
	Dir       string    `json:"dir"`
	OldName   string    `json:"old_name"`
	NewName   string    `json:"new_name"`
	AppliedAt time.Time `json:"applied_at"`
}

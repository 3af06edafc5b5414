package renamer

import "testing"

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text untouched", "Clean Code", "Clean Code"},
		{"strips z-library tag", "Clean Code z-library", "Clean Code"},
		{"strips tag case-insensitively", "Clean Code Z-Library", "Clean Code"},
		{"strips 1lib tag", "Some Title 1lib", "Some Title"},
		{"strips lib.sk tag", "Some Title lib.sk", "Some Title"},
		{"strips legacy sentinels", "Old Book UnknownAuthor UnknownYear", "Old Book"},
		{"removes parentheticals", "Title (Jane Doe) 2020", "Title 2020"},
		{"collapses whitespace", "Too   many    spaces", "Too many spaces"},
		{"trims noise punctuation", " ._-Title-_. ", "Title"},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.input); got != tt.want {
				t.Errorf("CleanText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFileToken(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"spaces become underscores", "Jane Doe", "Jane_Doe"},
		{"illegal chars removed", `What: Is/This?`, "What_Is_This"},
		{"punctuation removed", "Smith, J. (ed.)", "Smith_J_ed"},
		{"underscore runs collapse", "a___b", "a_b"},
		{"trimmed edges", "_ Title _", "Title"},
		{"empty yields Unknown", "", "Unknown"},
		{"only punctuation yields Unknown", "...", "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FileToken(tt.input); got != tt.want {
				t.Errorf("FileToken(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

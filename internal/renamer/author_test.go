package renamer

import "testing"

func TestFirstAuthor(t *testing.T) {
	tests := []struct {
		name    string
		authors *string
		want    string
	}{
		{"nil field", nil, ""},
		{"empty field", strPtr(""), ""},
		{"single author", strPtr("Jane Doe"), "Jane Doe"},
		{"comma separated list", strPtr("Jane Doe, John Smith"), "Jane Doe"},
		{"semicolon separated list", strPtr("Jane Doe; John Smith"), "Jane Doe"},
		{"and separated list", strPtr("Jane Doe and John Smith"), "Jane Doe"},
		{"ampersand separated list", strPtr("Jane Doe & John Smith"), "Jane Doe"},
		{"honorific stripped", strPtr("Jane Doe PhD"), "Jane Doe"},
		{"md honorific stripped", strPtr("John Smith MD, Jane Doe"), "John Smith"},
		{"trailing semicolon trimmed", strPtr("Jane Doe;"), "Jane Doe"},
		{"inner whitespace collapsed", strPtr("Jane   Doe"), "Jane Doe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FirstAuthor(tt.authors); got != tt.want {
				t.Errorf("FirstAuthor(%v) = %q, want %q", tt.authors, got, tt.want)
			}
		})
	}
}

func TestAuthorFromFilename(t *testing.T) {
	tests := []struct {
		name string
		stem string
		want string
	}{
		{"parenthetical author", "Some_Title_(Jane Doe)_2020", "Jane Doe"},
		{"parenthetical underscore author", "SRE_Book_(Betsy_Beyer)_2016", "Betsy_Beyer"},
		{"parenthetical list takes first", "Title_(Doe, Jane; Smith, John)", "Doe"},
		{"noise group skipped", "Title_(z-library)_(Jane Doe)", "Jane Doe"},
		{"two word group truncated to two tokens", "Title_(Jane Mary Doe)", "Jane Mary"},
		{"hyphen segment before year", "Clean_Code-Robert_Martin-2008", "Robert Martin"},
		{"hyphen segment before unknown year token", "Old_Book-Jane_Doe-UnknownYear", "Jane Doe"},
		{"single capitalized segment", "Something-Knuth", "Knuth"},
		{"numeric segment rejected", "random_scan_042", ""},
		{"no candidates", "justonelowercaseword", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AuthorFromFilename(tt.stem); got != tt.want {
				t.Errorf("AuthorFromFilename(%q) = %q, want %q", tt.stem, got, tt.want)
			}
		})
	}
}

func TestResolveAuthor(t *testing.T) {
	tests := []struct {
		name    string
		authors *string
		stem    string
		want    string
	}{
		{"metadata wins over filename", strPtr("Jane Doe, John Smith"), "Title_(Other Person)", "Jane_Doe"},
		{"filename fallback", nil, "Title_(Jane Doe)", "Jane_Doe"},
		{"sentinel when nothing found", nil, "random_scan_042", "UnknownAuthor"},
		{"result is a file token", strPtr("Jane  Doe"), "", "Jane_Doe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveAuthor(tt.authors, tt.stem); got != tt.want {
				t.Errorf("ResolveAuthor(%v, %q) = %q, want %q", tt.authors, tt.stem, got, tt.want)
			}
		})
	}
}

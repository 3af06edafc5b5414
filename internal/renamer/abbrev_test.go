package renamer

import "testing"

func TestAbbreviate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"word ordinal", "Operating Systems Second Edition", "Operating Systems 2e"},
		{"numeric ordinal", "C Programming 2nd Edition", "C Programming 2e"},
		{"numeric ordinal with underscores", "Database_Systems_3rd_Edition", "Database_Systems_3e"},
		{"word ordinal with underscores", "Go_in_Action_Second_Edition", "Go_in_Action_2e"},
		{"volume with underscores", "Collected_Papers_Volume_2", "Collected_Papers_Vol_2"},
		{"abbreviated volume with period", "The Art of Computer Programming Vol. 1", "The Art of Computer Programming Vol 1"},
		{"tenth edition", "Economics Tenth Edition", "Economics 10e"},
		{"revised edition", "The C Book Revised Edition", "The C Book RevEd"},
		{"international edition", "Physics International Edition", "Physics IntlEd"},
		{"collectors edition", "Dune Collector's Edition", "Dune CollEd"},
		{"generic edition", "Anniversary Edition", "Anniversary Ed"},
		{"misspelled edition", "Algorithms 4th Edtion", "Algorithms 4e"},
		{"volume", "The Art of Computer Programming Volume 1", "The Art of Computer Programming Vol 1"},
		{"part and number", "Part 3 Number 12", "Pt 3 No 12"},
		{"first match only", "Part 1 Part 2", "Pt 1 Part 2"},
		{"whitespace collapsed", "Deep  Learning   Second Edition", "Deep Learning 2e"},
		{"nothing to do", "Clean Code", "Clean Code"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Abbreviate(tt.input); got != tt.want {
				t.Errorf("Abbreviate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestAbbreviateIdempotent(t *testing.T) {
	inputs := []string{
		"Operating Systems Second Edition",
		"C Programming 2nd Edition",
		"Database_Systems_3rd_Edition",
		"Go_in_Action_Second_Edition",
		"The Art of Computer Programming Vol. 1",
		"The C Book Revised Edition",
		"The Art of Computer Programming Volume 1",
		"Part 3 Number 12",
		"Clean Code",
	}

	for _, in := range inputs {
		once := Abbreviate(in)
		twice := Abbreviate(once)
		if once != twice {
			t.Errorf("Abbreviate not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

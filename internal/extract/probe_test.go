package extract

import "testing"

func TestProbeFirstPage(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantTitle  string
		wantAuthor string
	}{
		{
			name: "title with byline",
			text: "Operating Systems: Three Easy Pieces\n" +
				"Remzi Arpaci-Dusseau and Andrea Arpaci-Dusseau\n",
			wantTitle:  "Operating Systems: Three Easy Pieces",
			wantAuthor: "Remzi Arpaci-Dusseau and Andrea Arpaci-Dusseau",
		},
		{
			name: "subtitle line joined",
			text: "The Art of Unix Programming\n" +
				"With Contributions from Thirteen Unix Pioneers\n" +
				"Eric Steven Raymond\n",
			wantTitle:  "The Art of Unix Programming: With Contributions from Thirteen Unix Pioneers",
			wantAuthor: "Eric Steven Raymond",
		},
		{
			name: "email line skipped",
			text: "alice@example.com\n" +
				"Distributed Consensus Algorithms in Modern Networks\n" +
				"Alice Walker, Bob Jones\n",
			wantTitle:  "Distributed Consensus Algorithms in Modern Networks",
			wantAuthor: "Alice Walker, Bob Jones",
		},
		{
			name: "front matter skipped",
			text: "xii\n" +
				"Intro\n" +
				"A Comprehensive Guide to Compiler Construction Techniques\n",
			wantTitle:  "A Comprehensive Guide to Compiler Construction Techniques",
			wantAuthor: "",
		},
		{
			name:       "empty text",
			text:       "\n   \n",
			wantTitle:  "",
			wantAuthor: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, author := probeFirstPage(tt.text)
			if title != tt.wantTitle {
				t.Errorf("title = %q, want %q", title, tt.wantTitle)
			}
			if author != tt.wantAuthor {
				t.Errorf("author = %q, want %q", author, tt.wantAuthor)
			}
		})
	}
}

func TestLikelyAuthorLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"Jane Doe, John Smith", true},
		{"Alice and Bob", true},
		{"Betsy Beyer, Chris Jones, Jennifer Petoff and Niall Murphy", true},
		{"jane@example.com and friends", false},
		{"Based on research by the ATLAS collaboration", false},
		{"a quiet meadow far away from any town or city there", false},
		{"John", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := likelyAuthorLine(tt.line); got != tt.want {
			t.Errorf("likelyAuthorLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestPDFDateYear(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"D:20160316120000Z", "2016"},
		{"2017-09-10", "2017"},
		{"D:19991231", "1999"},
		{"March 2016", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := pdfDateYear(tt.raw); got != tt.want {
			t.Errorf("pdfDateYear(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

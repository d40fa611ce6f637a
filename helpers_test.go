package ofcrse

import "testing"

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Hello World":     "hello-world",
		"  Go & Rust!  ":  "go-rust",
		"already-slugged": "already-slugged",
		"2023 in review":  "2023-in-review",
		"---":             "",
	}
	for in, want := range tests {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base string
		segs []string
		want string
	}{
		{"https://ofcr.se", nil, "https://ofcr.se/"},
		{"https://ofcr.se", []string{"hello-world"}, "https://ofcr.se/hello-world"},
		{"https://ofcr.se/blog", []string{"notes", "go"}, "https://ofcr.se/blog/notes/go"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segs...); got != tt.want {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segs, got, tt.want)
		}
	}
	if got := CoverURL("https://ofcr.se", "notes/go"); got != "https://ofcr.se/images/cover/notes/go.png" {
		t.Errorf("CoverURL = %q", got)
	}
}

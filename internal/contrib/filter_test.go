package contrib

import "testing"

func TestFilterExcludesPaths(t *testing.T) {
	f := newFilter(nil, []string{"vendor", "docs/old"}, nil)

	cases := []struct {
		path string
		keep bool
	}{
		{"main.go", true},
		{"vendor", false},
		{"vendor/lib/a.go", false},
		{"pkg/vendor/b.go", false}, // excluded directory anywhere in the path
		{"vendored/c.go", true},    // prefix of a segment is not a match
		{"docs/old/readme.md", false},
		{"docs/new/readme.md", true},
	}
	for _, tc := range cases {
		if got := f.keep(tc.path); got != tc.keep {
			t.Errorf("keep(%q) = %v, want %v", tc.path, got, tc.keep)
		}
	}
}

func TestFilterExcludesPatterns(t *testing.T) {
	f := newFilter(nil, nil, []string{"*.min.js", "*.generated.*"})

	cases := []struct {
		path string
		keep bool
	}{
		{"app.js", true},
		{"app.min.js", false},
		{"static/vendor/app.min.js", false}, // * crosses directories
		{"api.generated.go", false},
		{"api.go", true},
	}
	for _, tc := range cases {
		if got := f.keep(tc.path); got != tc.keep {
			t.Errorf("keep(%q) = %v, want %v", tc.path, got, tc.keep)
		}
	}
}

func TestFilterExtensions(t *testing.T) {
	f := newFilter([]string{".go", ".proto"}, nil, nil)

	cases := []struct {
		path string
		keep bool
	}{
		{"main.go", true},
		{"api.proto", true},
		{"README.md", false},
		{"Makefile", false},
	}
	for _, tc := range cases {
		if got := f.keep(tc.path); got != tc.keep {
			t.Errorf("keep(%q) = %v, want %v", tc.path, got, tc.keep)
		}
	}
}

func TestFilterKeepsEverythingByDefault(t *testing.T) {
	f := newFilter(nil, nil, nil)
	for _, path := range []string{"main.go", "README.md", "a/b/c.txt"} {
		if !f.keep(path) {
			t.Errorf("keep(%q) = false, want true", path)
		}
	}
}

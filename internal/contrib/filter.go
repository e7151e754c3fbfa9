package contrib

import (
	"regexp"
	"strings"
)

// filter decides which tracked files take part in an analysis.
type filter struct {
	extensions []string
	paths      []string
	patterns   []*regexp.Regexp
}

func newFilter(extensions, paths, patterns []string) *filter {
	f := &filter{extensions: extensions, paths: paths}
	for _, p := range patterns {
		f.patterns = append(f.patterns, regexp.MustCompile(patternToRegex(p)))
	}
	return f
}

func (f *filter) keep(path string) bool {
	normalized := strings.Trim(path, "/")

	for _, ex := range f.paths {
		if normalized == ex ||
			strings.HasPrefix(normalized, ex+"/") ||
			strings.Contains("/"+normalized+"/", "/"+ex+"/") {
			return false
		}
	}

	for _, re := range f.patterns {
		if re.MatchString(normalized) {
			return false
		}
	}

	if len(f.extensions) == 0 {
		return true
	}
	for _, ext := range f.extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// patternToRegex converts a glob pattern to an anchored regex.
// * matches any run of characters, directory separators included.
func patternToRegex(pattern string) string {
	escaped := regexp.QuoteMeta(pattern)
	escaped = strings.ReplaceAll(escaped, `\*`, ".*")
	escaped = strings.ReplaceAll(escaped, `\?`, ".")
	return "^" + escaped + "$"
}

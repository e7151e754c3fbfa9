// Package contrib analyzes line ownership in a git repository. For every
// contributor it reports the lines still present in the tree (attributed
// by blame) and the lines ever added (summed from log), per file and in
// total. Files are processed by a bounded worker pool; a file that fails
// is logged and skipped rather than aborting the run.
package contrib

import (
	"bytes"
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Options configures a repository analysis.
type Options struct {
	RepoPath string

	// Extensions limits analysis to files with one of these suffixes,
	// e.g. ".go". Empty means every tracked file.
	Extensions []string

	// ExcludeCommits removes commits (and their ancestors) from the
	// analyzed revision range.
	ExcludeCommits []string

	// ExcludePaths drops exact paths and whole directories.
	ExcludePaths []string

	// ExcludePatterns drops paths matching these glob patterns.
	ExcludePatterns []string

	// Workers bounds the pool; 0 means one per CPU.
	Workers int

	// Logf, when set, receives progress and skip messages.
	Logf func(format string, args ...any)
}

// LineInfo is one line still present in the tree, attributed to its author.
type LineInfo struct {
	Number   int    // 1-based position among attributed lines
	Content  string
	Modified string // commit date of the line, YYYY-MM-DD
}

// FileStat is one author's share of a single file.
type FileStat struct {
	Path       string
	Current    []LineInfo
	Historical int    // lines ever added to this file by the author
	Modified   string // date of the author's most recent surviving line
}

// AuthorStat aggregates one contributor across every analyzed file.
type AuthorStat struct {
	Name   string
	Files  map[string]*FileStat
	emails map[string]bool
}

func (a *AuthorStat) addEmail(e string) {
	if e == "" {
		return
	}
	if a.emails == nil {
		a.emails = make(map[string]bool)
	}
	a.emails[e] = true
}

// Emails returns the author's known addresses, sorted.
func (a *AuthorStat) Emails() []string {
	out := make([]string, 0, len(a.emails))
	for e := range a.emails {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}

// Companies returns the domains of the author's addresses, sorted.
func (a *AuthorStat) Companies() []string {
	set := make(map[string]bool)
	for e := range a.emails {
		if _, domain, ok := strings.Cut(e, "@"); ok && domain != "" {
			set[domain] = true
		}
	}
	out := make([]string, 0, len(set))
	for d := range set {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// CurrentTotal returns the author's lines still present across all files.
func (a *AuthorStat) CurrentTotal() int {
	total := 0
	for _, f := range a.Files {
		total += len(f.Current)
	}
	return total
}

// HistoricalTotal returns the author's lines ever added across all files.
func (a *AuthorStat) HistoricalTotal() int {
	total := 0
	for _, f := range a.Files {
		total += f.Historical
	}
	return total
}

// Exclusions records what an analysis was told to ignore.
type Exclusions struct {
	Commits  []string
	Paths    []string
	Patterns []string
}

// Result is the aggregated outcome of one analysis run.
type Result struct {
	Authors    map[string]*AuthorStat
	Exclusions Exclusions
}

// ByCurrentLines returns authors sorted by surviving line count, descending.
// Ties break alphabetically so report order is stable.
func (r *Result) ByCurrentLines() []*AuthorStat {
	out := make([]*AuthorStat, 0, len(r.Authors))
	for _, a := range r.Authors {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		ci, cj := out[i].CurrentTotal(), out[j].CurrentTotal()
		if ci != cj {
			return ci > cj
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Names returns author names sorted alphabetically.
func (r *Result) Names() []string {
	out := make([]string, 0, len(r.Authors))
	for name := range r.Authors {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (r *Result) merge(path string, stats map[string]*fileContribution) {
	for author, c := range stats {
		as, ok := r.Authors[author]
		if !ok {
			as = &AuthorStat{Name: author, Files: make(map[string]*FileStat)}
			r.Authors[author] = as
		}
		as.Files[path] = &FileStat{
			Path:       path,
			Current:    c.lines,
			Historical: c.historical,
			Modified:   c.modified,
		}
		as.addEmail(c.email)
	}
}

// Analyzer runs contributor analysis against one repository.
type Analyzer struct {
	opts   Options
	filter *filter
	git    runGit
}

// New returns an Analyzer for opts.
func New(opts Options) *Analyzer {
	opts.ExcludeCommits = cleanList(opts.ExcludeCommits, func(s string) string {
		return strings.TrimSpace(s)
	})
	opts.ExcludePaths = cleanList(opts.ExcludePaths, func(s string) string {
		return strings.Trim(strings.TrimSpace(s), "/")
	})
	opts.ExcludePatterns = cleanList(opts.ExcludePatterns, strings.TrimSpace)
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	return &Analyzer{
		opts:   opts,
		filter: newFilter(opts.Extensions, opts.ExcludePaths, opts.ExcludePatterns),
		git:    execGit,
	}
}

func cleanList(in []string, clean func(string) string) []string {
	var out []string
	for _, s := range in {
		if s = clean(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (a *Analyzer) logf(format string, args ...any) {
	if a.opts.Logf != nil {
		a.opts.Logf(format, args...)
	}
}

// revisionRange returns the rev arguments bounding the analysis:
// HEAD minus every excluded commit and its ancestors.
func (a *Analyzer) revisionRange() []string {
	rng := []string{"HEAD"}
	for _, c := range a.opts.ExcludeCommits {
		rng = append(rng, "^"+c)
	}
	return rng
}

// Run analyzes every tracked file that passes the filters.
func (a *Analyzer) Run(ctx context.Context) (*Result, error) {
	files, err := a.listFiles(ctx)
	if err != nil {
		return nil, err
	}
	a.logf("processing %d files using %d workers", len(files), a.opts.Workers)

	result := &Result{
		Authors: make(map[string]*AuthorStat),
		Exclusions: Exclusions{
			Commits:  a.opts.ExcludeCommits,
			Paths:    a.opts.ExcludePaths,
			Patterns: a.opts.ExcludePatterns,
		},
	}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.opts.Workers)
	for _, file := range files {
		file := file // per-iteration copy; required while go.mod < 1.22
		g.Go(func() error {
			stats, err := a.analyzeFile(ctx, file)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				a.logf("skipping %s: %v", file, err)
				return nil
			}
			mu.Lock()
			result.merge(file, stats)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

func (a *Analyzer) listFiles(ctx context.Context) ([]string, error) {
	out, err := a.git(ctx, a.opts.RepoPath, "ls-files")
	if err != nil {
		return nil, fmt.Errorf("list repository files: %w", err)
	}
	var files []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !a.filter.keep(line) {
			continue
		}
		files = append(files, line)
	}
	return files, nil
}

// analyzeFile blames and logs a single file within the revision range.
// A file absent from the range yields an empty contribution, not an error.
func (a *Analyzer) analyzeFile(ctx context.Context, path string) (map[string]*fileContribution, error) {
	rng := a.revisionRange()

	revArgs := append([]string{"rev-list", "-1"}, rng...)
	revArgs = append(revArgs, "--", path)
	revOut, err := a.git(ctx, a.opts.RepoPath, revArgs...)
	if err != nil || len(bytes.TrimSpace(revOut)) == 0 {
		return nil, nil
	}

	blameArgs := append([]string{
		"blame", "--encoding=utf-8-strict", "--line-porcelain", "-w", "-M", "-C",
	}, rng...)
	blameArgs = append(blameArgs, "--", path)
	blameOut, err := a.git(ctx, a.opts.RepoPath, blameArgs...)
	if err != nil {
		return nil, nil
	}

	stats := parseBlame(blameOut)

	logArgs := append([]string{"log", "--format=format:%aN%x00%aE", "--numstat"}, rng...)
	logArgs = append(logArgs, "--", path)
	logOut, err := a.git(ctx, a.opts.RepoPath, logArgs...)
	if err != nil {
		return nil, fmt.Errorf("log: %w", err)
	}
	parseLog(logOut, stats)

	return stats, nil
}

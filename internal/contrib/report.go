package contrib

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Report formats.
const (
	FormatText = "txt"
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// OutputPath appends the format's extension when name carries none.
func OutputPath(name, format string) string {
	if strings.Contains(filepath.Base(name), ".") {
		return name
	}
	return name + "." + format
}

// WriteReport renders r in the requested format.
func WriteReport(w io.Writer, r *Result, format string, sampleCode bool) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, r)
	case FormatCSV:
		return WriteCSV(w, r)
	case FormatText, "":
		return WriteText(w, r, sampleCode)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

type jsonFile struct {
	CurrentLines    int    `json:"current_lines"`
	HistoricalLines int    `json:"historical_lines"`
	LastModified    string `json:"last_modified,omitempty"`
}

type jsonContributor struct {
	Emails               []string            `json:"emails"`
	Companies            []string            `json:"companies"`
	TotalCurrentLines    int                 `json:"total_current_lines"`
	TotalHistoricalLines int                 `json:"total_historical_lines"`
	Files                map[string]jsonFile `json:"files"`
}

type jsonReport struct {
	GeneratedAt      string                     `json:"generated_at"`
	ExcludedCommits  []string                   `json:"excluded_commits"`
	ExcludedPaths    []string                   `json:"excluded_paths"`
	ExcludedPatterns []string                   `json:"excluded_patterns"`
	Contributors     map[string]jsonContributor `json:"contributors"`
}

// WriteJSON renders the full report as indented JSON.
func WriteJSON(w io.Writer, r *Result) error {
	report := jsonReport{
		GeneratedAt:      time.Now().Format(time.RFC3339),
		ExcludedCommits:  r.Exclusions.Commits,
		ExcludedPaths:    r.Exclusions.Paths,
		ExcludedPatterns: r.Exclusions.Patterns,
		Contributors:     make(map[string]jsonContributor, len(r.Authors)),
	}

	for name, a := range r.Authors {
		c := jsonContributor{
			Emails:               a.Emails(),
			Companies:            a.Companies(),
			TotalCurrentLines:    a.CurrentTotal(),
			TotalHistoricalLines: a.HistoricalTotal(),
			Files:                make(map[string]jsonFile, len(a.Files)),
		}
		for path, f := range a.Files {
			c.Files[path] = jsonFile{
				CurrentLines:    len(f.Current),
				HistoricalLines: f.Historical,
				LastModified:    f.Modified,
			}
		}
		report.Contributors[name] = c
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// WriteCSV renders one row per contributor, sorted by name.
func WriteCSV(w io.Writer, r *Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"Contributor Name", "Email Addresses", "Total Lines Contributed", "Current Lines",
	}); err != nil {
		return err
	}

	for _, name := range r.Names() {
		a := r.Authors[name]
		row := []string{
			name,
			strings.Join(a.Emails(), ";"),
			fmt.Sprintf("%d", a.HistoricalTotal()),
			fmt.Sprintf("%d", a.CurrentTotal()),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteText renders the human-readable report. With sampleCode, each
// contributor's files are listed with up to three surviving lines each.
func WriteText(w io.Writer, r *Result, sampleCode bool) error {
	var b strings.Builder

	b.WriteString("Git Repository Contributor Analysis\n")
	b.WriteString("Generated on: " + time.Now().Format("2006-01-02 15:04:05") + "\n")
	if len(r.Exclusions.Commits) > 0 {
		b.WriteString("Excluded commits: " + strings.Join(r.Exclusions.Commits, ", ") + "\n")
	}
	if len(r.Exclusions.Paths) > 0 {
		b.WriteString("Excluded paths: " + strings.Join(r.Exclusions.Paths, ", ") + "\n")
	}
	if len(r.Exclusions.Patterns) > 0 {
		b.WriteString("Excluded patterns: " + strings.Join(r.Exclusions.Patterns, ", ") + "\n")
	}
	b.WriteString(strings.Repeat("=", 80) + "\n\n")

	for _, a := range r.ByCurrentLines() {
		writeContributor(&b, a, sampleCode)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeContributor(b *strings.Builder, a *AuthorStat, sampleCode bool) {
	fmt.Fprintf(b, "\nContributor: %s\n", a.Name)
	b.WriteString(strings.Repeat("-", 40) + "\n")

	if emails := a.Emails(); len(emails) > 0 {
		b.WriteString("Contact Information:\n")
		for _, e := range emails {
			fmt.Fprintf(b, "  Email: %s\n", e)
		}
	}
	if companies := a.Companies(); len(companies) > 0 {
		b.WriteString("Associated Companies/Organizations:\n")
		for _, c := range companies {
			fmt.Fprintf(b, "  %s\n", c)
		}
	}

	fmt.Fprintf(b, "\nTotal lines currently in codebase: %s\n", humanize.Comma(int64(a.CurrentTotal())))
	fmt.Fprintf(b, "Total lines added historically: %s\n\n", humanize.Comma(int64(a.HistoricalTotal())))

	if !sampleCode {
		return
	}

	b.WriteString("Currently present lines by file:\n")
	for _, f := range filesByCurrent(a) {
		if len(f.Current) == 0 {
			continue
		}
		fmt.Fprintf(b, "  %s: %s lines", f.Path, humanize.Comma(int64(len(f.Current))))
		if f.Modified != "" {
			fmt.Fprintf(b, " (last modified: %s)\n", f.Modified)
		} else {
			b.WriteString("\n")
		}
		for _, line := range sampleLines(f, 3) {
			content := line.Content
			truncated := len(content) > 100
			if truncated {
				content = content[:100]
			}
			fmt.Fprintf(b, "    L%d (%s): %s", line.Number, line.Modified, content)
			if truncated {
				b.WriteString("...")
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\nHistorical line contributions by file:\n")
	for _, f := range filesByHistorical(a) {
		if f.Historical > 0 {
			fmt.Fprintf(b, "  %s: %s lines\n", f.Path, humanize.Comma(int64(f.Historical)))
		}
	}

	b.WriteString("\n" + strings.Repeat("=", 80) + "\n")
}

func filesByCurrent(a *AuthorStat) []*FileStat {
	out := sortedFiles(a)
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].Current) > len(out[j].Current)
	})
	return out
}

func filesByHistorical(a *AuthorStat) []*FileStat {
	out := sortedFiles(a)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Historical > out[j].Historical
	})
	return out
}

func sortedFiles(a *AuthorStat) []*FileStat {
	out := make([]*FileStat, 0, len(a.Files))
	for _, f := range a.Files {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func sampleLines(f *FileStat, n int) []LineInfo {
	lines := make([]LineInfo, len(f.Current))
	copy(lines, f.Current)
	sort.Slice(lines, func(i, j int) bool { return lines[i].Number < lines[j].Number })
	if len(lines) > n {
		lines = lines[:n]
	}
	return lines
}

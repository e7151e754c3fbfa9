package journal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Tail returns the last n entries of the journal in file order.
// n <= 0 returns every entry. Malformed lines are skipped.
func Tail(path string, n int) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e Entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}

	if n > 0 && len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	return entries, nil
}

// Format renders entries as a fixed-width text table.
func Format(entries []Entry) string {
	if len(entries) == 0 {
		return "No entries.\n"
	}
	var b strings.Builder
	for _, e := range entries {
		ts := formatTimeOnly(e.Timestamp)
		detail := e.Detail
		if e.Previous != "" {
			detail = strings.TrimSpace(fmt.Sprintf("from %s %s", e.Previous, detail))
		}
		b.WriteString(fmt.Sprintf("%-10s %-8s %-36s %-18s %s\n",
			ts, e.Op, e.Requested, e.Outcome, truncate(detail, 60)))
	}
	return b.String()
}

func formatTimeOnly(ts string) string {
	t, err := time.Parse(TimestampFormat, ts)
	if err != nil {
		return ts
	}
	return t.Format("15:04:05")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

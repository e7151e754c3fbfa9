package contrib

import (
	"regexp"
	"testing"
)

const blameFixture = `4b825dc642cb6eb9a060e54bf8d69288fbee4904 1 1 1
author Alice
author-mail <alice@example.com>
author-time 1699959600
author-tz +0000
committer Alice
committer-mail <alice@example.com>
committer-time 1699959600
committer-tz +0000
summary first commit
filename main.go
	package main
4b825dc642cb6eb9a060e54bf8d69288fbee4904 2 2
author Alice
author-mail <alice@example.com>
author-time 1699959600
author-tz +0000
committer Alice
committer-mail <alice@example.com>
committer-time 1699959600
committer-tz +0000
summary first commit
filename main.go

9c1185a5c5e9fc54612808977ee8f548b2258d31 3 3 1
author Bob
author-mail <bob@corp.example>
author-time 1700305200
author-tz +0000
committer Bob
committer-mail <bob@corp.example>
committer-time 1700305200
committer-tz +0000
summary add main
filename main.go
	func main() {}
`

func TestParseBlameAttributesLines(t *testing.T) {
	stats := parseBlame([]byte(blameFixture))

	alice, ok := stats["Alice"]
	if !ok {
		t.Fatal("expected Alice in blame output")
	}
	if len(alice.lines) != 1 {
		t.Fatalf("expected 1 surviving line for Alice, got %d", len(alice.lines))
	}
	if alice.lines[0].Content != "package main" {
		t.Errorf("line content = %q", alice.lines[0].Content)
	}
	if alice.email != "alice@example.com" {
		t.Errorf("email = %q", alice.email)
	}

	bob, ok := stats["Bob"]
	if !ok {
		t.Fatal("expected Bob in blame output")
	}
	if len(bob.lines) != 1 {
		t.Fatalf("expected 1 line for Bob, got %d", len(bob.lines))
	}
	if bob.lines[0].Content != "func main() {}" {
		t.Errorf("line content = %q", bob.lines[0].Content)
	}

	// The blank second line carries no attribution, so numbering is
	// contiguous across the two authors.
	if alice.lines[0].Number != 1 || bob.lines[0].Number != 2 {
		t.Errorf("line numbers = %d and %d, want 1 and 2",
			alice.lines[0].Number, bob.lines[0].Number)
	}

	datePattern := regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	if !datePattern.MatchString(alice.lines[0].Modified) {
		t.Errorf("line date = %q, want YYYY-MM-DD", alice.lines[0].Modified)
	}
	if !datePattern.MatchString(bob.modified) {
		t.Errorf("file date = %q, want YYYY-MM-DD", bob.modified)
	}
}

func TestParseLogAccumulatesHistoricalLines(t *testing.T) {
	out := "Alice\x00alice@example.com\n" +
		"10\t2\tmain.go\n" +
		"\n" +
		"Bob\x00bob@corp.example\n" +
		"-\t-\tlogo.png\n" +
		"3\t1\tmain.go\n" +
		"\n" +
		"Alice\x00alice@example.com\n" +
		"5\t0\tmain.go\n"

	stats := make(map[string]*fileContribution)
	parseLog([]byte(out), stats)

	if got := stats["Alice"].historical; got != 15 {
		t.Errorf("Alice historical = %d, want 15", got)
	}
	if got := stats["Bob"].historical; got != 3 {
		t.Errorf("Bob historical = %d, want 3", got)
	}
	if stats["Bob"].email != "bob@corp.example" {
		t.Errorf("Bob email = %q", stats["Bob"].email)
	}
}

func TestParseLogMergesIntoBlameStats(t *testing.T) {
	stats := parseBlame([]byte(blameFixture))
	parseLog([]byte("Alice\x00alice@work.example\n12\t4\tmain.go\n"), stats)

	alice := stats["Alice"]
	if alice.historical != 12 {
		t.Errorf("historical = %d, want 12", alice.historical)
	}
	if len(alice.lines) != 1 {
		t.Errorf("surviving lines = %d, want 1", len(alice.lines))
	}
	// The log author email takes precedence when present.
	if alice.email != "alice@work.example" {
		t.Errorf("email = %q", alice.email)
	}
}

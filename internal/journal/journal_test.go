package journal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"toolbelt/internal/thermal"
)

func newTestLog(t *testing.T) (*Log, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test-journal.jsonl")
	l, err := Open(path)
	if err != nil {
		t.Fatalf("failed to open journal: %v", err)
	}
	return l, path
}

func testEntry(outcome string) Entry {
	return Entry{
		Op:        OpSelect,
		Requested: thermal.DefaultUUID,
		Previous:  "42A441D6-AE6A-462B-A84B-4A8CE79027D3",
		Zone:      "/sys/class/thermal/thermal_zone1",
		Outcome:   outcome,
	}
}

func TestSequentialWritesProduceValidChain(t *testing.T) {
	l, path := newTestLog(t)

	for i := 0; i < 5; i++ {
		if err := l.Record(testEntry(OutcomeOK)); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}
	l.Close()

	result := Verify(path)
	if !result.Valid {
		t.Fatalf("expected valid chain, got error at line %d: %s", result.ErrorLine, result.Error)
	}
	if result.Lines != 5 {
		t.Fatalf("expected 5 lines, got %d", result.Lines)
	}
}

func TestRecordFillsTimestampAndID(t *testing.T) {
	l, path := newTestLog(t)
	if err := l.Record(testEntry(OutcomeOK)); err != nil {
		t.Fatalf("record: %v", err)
	}
	l.Close()

	entries, err := Tail(path, 0)
	if err != nil {
		t.Fatalf("tail: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Timestamp == "" {
		t.Error("expected timestamp to be filled in")
	}
	if entries[0].ID == "" {
		t.Error("expected id to be filled in")
	}
	if entries[0].PrevHash != GenesisHash {
		t.Errorf("expected genesis prev_hash, got %s", entries[0].PrevHash)
	}
}

func TestVerifyDetectsTamperedEntry(t *testing.T) {
	l, path := newTestLog(t)

	for i := 0; i < 3; i++ {
		if err := l.Record(testEntry(OutcomeOK)); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}
	l.Close()

	// Tamper: change the outcome in line 2
	data, _ := os.ReadFile(path)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	lines[1] = strings.Replace(lines[1], `"ok"`, `"verify_failed"`, 1)
	os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644)

	result := Verify(path)
	if result.Valid {
		t.Fatal("expected tampered chain to be invalid")
	}
	if result.ErrorLine != 3 {
		t.Fatalf("expected error at line 3, got line %d", result.ErrorLine)
	}
}

func TestVerifyDetectsDeletedEntry(t *testing.T) {
	l, path := newTestLog(t)

	for i := 0; i < 3; i++ {
		if err := l.Record(testEntry(OutcomeOK)); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}
	l.Close()

	// Delete line 2 (middle entry)
	data, _ := os.ReadFile(path)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	remaining := []string{lines[0], lines[2]}
	os.WriteFile(path, []byte(strings.Join(remaining, "\n")+"\n"), 0644)

	result := Verify(path)
	if result.Valid {
		t.Fatal("expected chain with deleted entry to be invalid")
	}
	if result.ErrorLine != 2 {
		t.Fatalf("expected error at line 2, got line %d", result.ErrorLine)
	}
}

func TestEmptyJournalPassesVerification(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.jsonl")
	os.WriteFile(path, []byte{}, 0644)

	result := Verify(path)
	if !result.Valid {
		t.Fatalf("expected empty journal to be valid, got: %s", result.Error)
	}
	if result.Lines != 0 {
		t.Fatalf("expected 0 lines, got %d", result.Lines)
	}
}

func TestConcurrentWritesSerializeCorrectly(t *testing.T) {
	l, path := newTestLog(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Record(testEntry(OutcomeOK))
		}()
	}
	wg.Wait()
	l.Close()

	result := Verify(path)
	if !result.Valid {
		t.Fatalf("expected valid chain after concurrent writes, got error at line %d: %s", result.ErrorLine, result.Error)
	}
	if result.Lines != 50 {
		t.Fatalf("expected 50 lines, got %d", result.Lines)
	}
}

func TestOpenExistingJournalContinuesChain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.jsonl")

	l1, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		l1.Record(testEntry(OutcomeOK))
	}
	l1.Close()

	l2, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		l2.Record(testEntry(OutcomeNotSupported))
	}
	l2.Close()

	result := Verify(path)
	if !result.Valid {
		t.Fatalf("expected valid chain after reopen, got error at line %d: %s", result.ErrorLine, result.Error)
	}
	if result.Lines != 5 {
		t.Fatalf("expected 5 lines, got %d", result.Lines)
	}
}

func TestHashLineIsDeterministic(t *testing.T) {
	line := []byte(`{"ts":"2025-01-15T10:30:00.000Z","id":"x","op":"select","requested":"A","outcome":"ok","prev_hash":"sha256:def"}`)
	h1 := HashLine(line)
	h2 := HashLine(line)
	if h1 != h2 {
		t.Fatalf("expected same hash, got %s and %s", h1, h2)
	}
	if !strings.HasPrefix(h1, "sha256:") {
		t.Fatalf("expected sha256: prefix, got %s", h1)
	}
	if len(h1) != 7+64 { // "sha256:" + 64 hex chars
		t.Fatalf("expected 71 char hash string, got %d", len(h1))
	}
}

func TestOutcomeForMapsSentinels(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, OutcomeOK},
		{thermal.ErrDeviceNotFound, OutcomeDeviceNotFound},
		{thermal.ErrZoneNotFound, OutcomeZoneNotFound},
		{thermal.ErrCapabilityMissing, OutcomeCapabilityMissing},
		{fmt.Errorf("%w: X", thermal.ErrNotSupported), OutcomeNotSupported},
		{fmt.Errorf("%w: wrote A, read back B", thermal.ErrVerifyFailed), OutcomeVerifyFailed},
		{errors.New("write current_uuid: permission denied"), OutcomeError},
	}
	for _, tc := range cases {
		if got := OutcomeFor(tc.err); got != tc.want {
			t.Errorf("OutcomeFor(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestTailReturnsLastEntries(t *testing.T) {
	l, path := newTestLog(t)
	for i := 0; i < 5; i++ {
		e := testEntry(OutcomeOK)
		e.Detail = fmt.Sprintf("run %d", i)
		if err := l.Record(e); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}
	l.Close()

	entries, err := Tail(path, 2)
	if err != nil {
		t.Fatalf("tail: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Detail != "run 3" || entries[1].Detail != "run 4" {
		t.Errorf("expected last two runs, got %q and %q", entries[0].Detail, entries[1].Detail)
	}
}

func TestTailSkipsMalformedLines(t *testing.T) {
	l, path := newTestLog(t)
	l.Record(testEntry(OutcomeOK))
	l.Close()

	f, _ := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0600)
	f.WriteString("not json\n")
	f.Close()

	entries, err := Tail(path, 0)
	if err != nil {
		t.Fatalf("tail: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
}

func TestFormatEmpty(t *testing.T) {
	if got := Format(nil); got != "No entries.\n" {
		t.Errorf("unexpected empty rendering: %q", got)
	}
}

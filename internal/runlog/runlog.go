package runlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Entry is one row in the processing log: the outcome of a single note run.
type Entry struct {
	Timestamp    time.Time
	Source       string // note file name, or "stdin"
	Recognized   int
	Unrecognized int
	Added        int
	Duplicates   int
	CommitHash   string
}

// Header is the CSV header for process-log.csv.
const Header = "timestamp,source,recognized,unrecognized,added,duplicates,commit_hash"

const (
	numFields       = 7
	logDir          = "logs"
	logFile         = "logs/process-log.csv"
	colTimestamp    = 0
	colSource       = 1
	colRecognized   = 2
	colUnrecognized = 3
	colAdded        = 4
	colDuplicates   = 5
	colCommitHash   = 6
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colSource] = e.Source
	row[colRecognized] = strconv.Itoa(e.Recognized)
	row[colUnrecognized] = strconv.Itoa(e.Unrecognized)
	row[colAdded] = strconv.Itoa(e.Added)
	row[colDuplicates] = strconv.Itoa(e.Duplicates)
	row[colCommitHash] = e.CommitHash
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(row []string) (Entry, error) {
	if len(row) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(row))
	}

	ts, err := time.Parse(time.RFC3339, row[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", row[colTimestamp], err)
	}

	counts := make([]int, 4)
	for i, col := range []int{colRecognized, colUnrecognized, colAdded, colDuplicates} {
		n, err := strconv.Atoi(row[col])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing count %q: %w", row[col], err)
		}
		counts[i] = n
	}

	return Entry{
		Timestamp:    ts,
		Source:       row[colSource],
		Recognized:   counts[0],
		Unrecognized: counts[1],
		Added:        counts[2],
		Duplicates:   counts[3],
		CommitHash:   row[colCommitHash],
	}, nil
}

// Append writes entries to <repoRoot>/logs/process-log.csv, creating the file
// and header if needed.
func Append(repoRoot string, entries []Entry) error {
	dir := filepath.Join(repoRoot, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(repoRoot, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening process log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	return cw.Error()
}

// Read returns all entries from <repoRoot>/logs/process-log.csv.
// Returns nil if the file does not exist.
func Read(repoRoot string) ([]Entry, error) {
	path := filepath.Join(repoRoot, logFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening process log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading process log CSV: %w", err)
	}

	if len(rows) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, row := range rows[1:] {
		e, err := UnmarshalEntry(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

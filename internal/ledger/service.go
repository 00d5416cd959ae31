// Package ledger persists recognized transaction records in monthly
// plain-text snapshots under <repoRoot>/notes/YYYY/MM/transactions.csv.
// Records are keyed by line fingerprint, so saving overlapping notes is
// idempotent.
package ledger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/flow-dev/flow/internal/model"
)

// notesDir is the subdirectory holding monthly snapshots.
const notesDir = "notes"

// Service provides business logic for the monthly snapshot files.
type Service struct {
	repoRoot   string
	categories CategoryChecker
}

// NewService creates a ledger Service.
func NewService(repoRoot string, categories CategoryChecker) *Service {
	return &Service{repoRoot: repoRoot, categories: categories}
}

// AppendResult reports what a save did.
type AppendResult struct {
	Added      int
	Duplicates int
}

// Append saves recognized records into the month of recordedAt. Records whose
// fingerprint already exists in that month (or earlier in the same batch) are
// skipped, matching the upsert-by-fingerprint behavior callers rely on when
// they paste overlapping notes. The combined file is validated before
// anything is written.
func (s *Service) Append(records []model.TransactionRecord, recordedAt time.Time) (AppendResult, error) {
	var res AppendResult

	year := recordedAt.Year()
	month := int(recordedAt.Month())

	existing, err := s.ReadMonth(year, month)
	if err != nil {
		return res, err
	}

	known := make(map[string]bool, len(existing))
	for _, rec := range existing {
		known[rec.Fingerprint] = true
	}

	var fresh []StoredRecord
	for _, rec := range records {
		if known[rec.Fingerprint] {
			res.Duplicates++
			continue
		}
		known[rec.Fingerprint] = true
		fresh = append(fresh, StoredRecord{TransactionRecord: rec, RecordedAt: recordedAt})
	}
	if len(fresh) == 0 {
		return res, nil
	}

	if verrs := ValidateRecords(append(existing, fresh...), s.categories); len(verrs) > 0 {
		msgs := make([]string, len(verrs))
		for i, ve := range verrs {
			msgs[i] = ve.Error()
		}
		return res, fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
	}

	path := s.monthPath(year, month)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return res, fmt.Errorf("creating notes dir: %w", err)
	}

	isNew := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return res, fmt.Errorf("opening snapshot: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return res, fmt.Errorf("writing header: %w", err)
		}
	}

	if err := AppendRecords(f, fresh); err != nil {
		return res, fmt.Errorf("appending records: %w", err)
	}

	res.Added = len(fresh)
	return res, nil
}

// ReadMonth reads all stored records for a given year/month. A missing month
// is empty, not an error.
func (s *Service) ReadMonth(year, month int) ([]StoredRecord, error) {
	path := s.monthPath(year, month)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening snapshot %s: %w", path, err)
	}
	defer f.Close()

	records, err := ReadRecords(f)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot %s: %w", path, err)
	}
	return records, nil
}

// ReadAll reads every stored record across all months, oldest month first.
func (s *Service) ReadAll() ([]StoredRecord, error) {
	root := filepath.Join(s.repoRoot, notesDir)

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == "transactions.csv" {
			paths = append(paths, path)
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning notes dir: %w", err)
	}
	sort.Strings(paths)

	var all []StoredRecord
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening snapshot %s: %w", path, err)
		}
		records, err := ReadRecords(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("reading snapshot %s: %w", path, err)
		}
		all = append(all, records...)
	}
	return all, nil
}

// Transactions strips the storage envelope, returning the plain records the
// aggregation and reconciliation engines consume.
func Transactions(stored []StoredRecord) []model.TransactionRecord {
	records := make([]model.TransactionRecord, len(stored))
	for i, rec := range stored {
		records[i] = rec.TransactionRecord
	}
	return records
}

func (s *Service) monthPath(year, month int) string {
	return filepath.Join(s.repoRoot, notesDir, fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month), "transactions.csv")
}

package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/flow-dev/flow/internal/model"
)

// StoredRecord is a transaction record as persisted in a monthly snapshot,
// stamped with the time it was saved.
type StoredRecord struct {
	model.TransactionRecord
	RecordedAt time.Time
}

// Header is the CSV header for transactions.csv.
const Header = "fingerprint,recorded_at,date,category,direction,amount,counterparty,detail,source_line"

const (
	numFields       = 9
	colFingerprint  = 0
	colRecordedAt   = 1
	colDate         = 2
	colCategory     = 3
	colDirection    = 4
	colAmount       = 5
	colCounterparty = 6
	colDetail       = 7
	colSourceLine   = 8
)

// ReadRecords reads all records from a transactions.csv reader.
func ReadRecords(r io.Reader) ([]StoredRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading transactions CSV: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil
	}

	// Skip header row.
	var records []StoredRecord
	for i, row := range rows[1:] {
		rec, err := UnmarshalRecord(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// WriteRecords writes records to a transactions.csv writer, header included.
func WriteRecords(w io.Writer, records []StoredRecord) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, rec := range records {
		if err := cw.Write(MarshalRecord(rec)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// AppendRecords appends records to an existing transactions.csv writer
// (no header).
func AppendRecords(w io.Writer, records []StoredRecord) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	for i, rec := range records {
		if err := cw.Write(MarshalRecord(rec)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	return cw.Error()
}

// MarshalRecord converts a StoredRecord to a CSV row.
func MarshalRecord(rec StoredRecord) []string {
	row := make([]string, numFields)
	row[colFingerprint] = rec.Fingerprint
	row[colRecordedAt] = rec.RecordedAt.UTC().Format(time.RFC3339)
	row[colDate] = rec.Date
	row[colCategory] = string(rec.Category)
	row[colDirection] = string(rec.Direction())
	row[colAmount] = rec.Amount.StringFixed(0)
	row[colCounterparty] = rec.Counterparty
	row[colDetail] = rec.Detail
	row[colSourceLine] = rec.SourceLine
	return row
}

// UnmarshalRecord converts a CSV row to a StoredRecord. The direction column
// exists for external readers; it must agree with the category.
func UnmarshalRecord(row []string) (StoredRecord, error) {
	if len(row) != numFields {
		return StoredRecord{}, fmt.Errorf("expected %d fields, got %d", numFields, len(row))
	}

	recordedAt, err := time.Parse(time.RFC3339, row[colRecordedAt])
	if err != nil {
		return StoredRecord{}, fmt.Errorf("parsing recorded_at %q: %w", row[colRecordedAt], err)
	}

	amount, err := decimal.NewFromString(row[colAmount])
	if err != nil {
		return StoredRecord{}, fmt.Errorf("parsing amount %q: %w", row[colAmount], err)
	}

	category := model.Category(row[colCategory])
	if got := model.Direction(row[colDirection]); got != model.DirectionFor(category) {
		return StoredRecord{}, fmt.Errorf("direction %q does not match category %q", got, category)
	}

	return StoredRecord{
		TransactionRecord: model.TransactionRecord{
			Amount:       amount,
			Category:     category,
			Date:         row[colDate],
			Counterparty: row[colCounterparty],
			Detail:       row[colDetail],
			SourceLine:   row[colSourceLine],
			Fingerprint:  row[colFingerprint],
		},
		RecordedAt: recordedAt,
	}, nil
}

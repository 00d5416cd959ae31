package ledger

import (
	"fmt"
	"strings"

	"github.com/flow-dev/flow/internal/fingerprint"
	"github.com/flow-dev/flow/internal/model"
)

// ValidationError describes a single invariant violation.
type ValidationError struct {
	Invariant   int
	Fingerprint string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invariant %d [%s]: %s", e.Invariant, e.Fingerprint, e.Description)
}

// CategoryChecker tests whether a category belongs to the known vocabulary.
type CategoryChecker interface {
	Exists(c model.Category) bool
}

// ValidateRecords enforces 5 invariants on a set of stored records.
func ValidateRecords(records []StoredRecord, categories CategoryChecker) []ValidationError {
	var errs []ValidationError

	seen := make(map[string]bool)
	for _, rec := range records {
		// Invariant 1: amount is a non-negative whole number of units.
		if rec.Amount.IsNegative() || !rec.Amount.IsInteger() {
			errs = append(errs, ValidationError{
				Invariant:   1,
				Fingerprint: rec.Fingerprint,
				Description: fmt.Sprintf("amount %s is not a non-negative whole number", rec.Amount),
			})
		}

		// Invariant 2: category is part of the vocabulary.
		if rec.Category == "" || !categories.Exists(rec.Category) {
			errs = append(errs, ValidationError{
				Invariant:   2,
				Fingerprint: rec.Fingerprint,
				Description: fmt.Sprintf("unknown category %q", rec.Category),
			})
		}

		// Invariant 3: fingerprint matches the source line it claims.
		if rec.SourceLine == "" || rec.Fingerprint != fingerprint.Line(rec.SourceLine) {
			errs = append(errs, ValidationError{
				Invariant:   3,
				Fingerprint: rec.Fingerprint,
				Description: fmt.Sprintf("fingerprint does not match source line %q", rec.SourceLine),
			})
		}

		// Invariant 4: fingerprints are unique within the set.
		if seen[rec.Fingerprint] {
			errs = append(errs, ValidationError{
				Invariant:   4,
				Fingerprint: rec.Fingerprint,
				Description: "duplicate fingerprint",
			})
		}
		seen[rec.Fingerprint] = true

		// Invariant 5: a present counterparty is never blank or padded.
		if rec.Counterparty != strings.TrimSpace(rec.Counterparty) {
			errs = append(errs, ValidationError{
				Invariant:   5,
				Fingerprint: rec.Fingerprint,
				Description: fmt.Sprintf("counterparty %q has surrounding whitespace", rec.Counterparty),
			})
		}
	}

	return errs
}

// Package parser turns pasted hand-written financial notes into transaction
// records. Classification is deterministic: an ordered rule table, first
// match wins, no state between calls.
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/flow-dev/flow/internal/config"
	"github.com/flow-dev/flow/internal/fingerprint"
	"github.com/flow-dev/flow/internal/model"
)

// separator marks a divider line in a note. Divider lines are dropped
// silently even when they carry the currency marker.
const separator = "-------"

// Result pairs the records recognized from a note with the lines that could
// not be understood. Both keep input order.
type Result struct {
	Recognized   []model.TransactionRecord
	Unrecognized []string
}

// Parser classifies note lines using a currency marker, a month vocabulary,
// and an ordered rule table. A Parser is immutable and safe for concurrent
// use.
type Parser struct {
	marker    string
	amountRe  *regexp.Regexp
	dateRe    *regexp.Regexp
	lentRe    *regexp.Regexp
	othersRe  *regexp.Regexp
	moneyInRe *regexp.Regexp
	rules     []rule
}

// New builds a Parser from configuration. The keyword rules keep their
// configured order; the structural lent/others/money-in rules always run
// first because they carry name extraction that plain keywords would lose.
func New(cfg *config.Config) (*Parser, error) {
	marker := cfg.Currency.Marker
	if marker == "" {
		return nil, fmt.Errorf("currency marker is not configured")
	}
	if len(cfg.Dates.Months) == 0 {
		return nil, fmt.Errorf("no month abbreviations configured")
	}

	quoted := regexp.QuoteMeta(marker)
	p := &Parser{
		marker:    marker,
		amountRe:  regexp.MustCompile(quoted + `\s?(\d+)`),
		dateRe:    regexp.MustCompile(`(?i)(\d{1,2}\s+(?:` + strings.Join(cfg.Dates.Months, "|") + `))`),
		lentRe:    regexp.MustCompile(`(?i)lent to\s+([^-` + quoted + `\d]+)`),
		othersRe:  regexp.MustCompile(`(?i)(?:others|-\s?[o0]\s?-)\s*:?\s*([^-]+)`),
		moneyInRe: regexp.MustCompile(`(?i)money in\s*:?\s*([^-` + quoted + `\d]+)`),
	}
	p.rules = buildRules(p, cfg.Rules)
	return p, nil
}

// Default returns a Parser over the built-in configuration.
func Default() *Parser {
	p, err := New(config.Default(""))
	if err != nil {
		panic("building default parser: " + err.Error())
	}
	return p
}

// Normalize canonicalizes raw note text: em/en dashes become plain hyphens,
// the text splits on line breaks, and each line is trimmed. Blank lines are
// kept; filtering is the classifier's job.
func Normalize(text string) []string {
	replaced := strings.NewReplacer("—", "-", "–", "-").Replace(text)
	raw := strings.Split(replaced, "\n")
	lines := make([]string, len(raw))
	for i, l := range raw {
		lines[i] = strings.TrimSpace(l)
	}
	return lines
}

// Parse classifies every line of a note. Lines without the currency marker
// and divider lines are skipped outright; a candidate line that fails an
// extraction step lands in Unrecognized with its original text. Parse never
// fails the batch.
func (p *Parser) Parse(text string) Result {
	var res Result
	for _, line := range Normalize(text) {
		if !strings.Contains(line, p.marker) || strings.Contains(line, separator) {
			continue
		}
		rec, err := p.classifyLine(line)
		if err != nil {
			res.Unrecognized = append(res.Unrecognized, line)
			continue
		}
		res.Recognized = append(res.Recognized, rec)
	}
	return res
}

func (p *Parser) classifyLine(line string) (model.TransactionRecord, error) {
	amount, err := p.extractAmount(line)
	if err != nil {
		return model.TransactionRecord{}, err
	}

	date := p.extractDate(line)

	// Keyword matching is case-folded; extraction uses the original line.
	category := model.CategoryGeneral
	var detail, counterparty string
	lower := strings.ToLower(line)
	for _, r := range p.rules {
		if !strings.Contains(lower, r.keyword) {
			continue
		}
		category = r.category
		if r.extract != nil {
			detail, counterparty = r.extract(line)
		}
		break
	}

	return assemble(amount, category, date, counterparty, detail, line), nil
}

// extractAmount returns the first integer following the currency marker.
// A marker with no trailing digits yields zero, not an error; amounts too
// large for int64 are the one genuine failure.
func (p *Parser) extractAmount(line string) (decimal.Decimal, error) {
	m := p.amountRe.FindStringSubmatch(line)
	if m == nil {
		return decimal.Zero, nil
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", m[1], err)
	}
	return decimal.NewFromInt(n), nil
}

func (p *Parser) extractDate(line string) string {
	m := p.dateRe.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	return m[1]
}

// assemble packages classifier output into the canonical record. Optional
// fields are trimmed so a present value is never blank.
func assemble(amount decimal.Decimal, category model.Category, date, counterparty, detail, line string) model.TransactionRecord {
	return model.TransactionRecord{
		Amount:       amount,
		Category:     category,
		Date:         strings.TrimSpace(date),
		Counterparty: strings.TrimSpace(counterparty),
		Detail:       strings.TrimSpace(detail),
		SourceLine:   line,
		Fingerprint:  fingerprint.Line(line),
	}
}

package parser

import (
	"strings"

	"github.com/flow-dev/flow/internal/config"
	"github.com/flow-dev/flow/internal/model"
)

// rule is one row of the classification table. Rules are checked in order
// and the first keyword contained in the line decides the category; the
// order is the tie-break for lines holding several keyword-like fragments.
type rule struct {
	keyword  string
	category model.Category
	extract  func(line string) (detail, counterparty string)
}

// buildRules assembles the ordered rule table: the three structural rules,
// then the configured plain keywords.
func buildRules(p *Parser, keywords []config.KeywordRule) []rule {
	rules := []rule{
		{keyword: "lent", category: model.CategoryLent, extract: p.extractLentTo},
		{keyword: "others", category: model.CategoryOthers, extract: p.extractOthersDetail},
		{keyword: "money in", category: model.CategoryMoneyIn, extract: p.extractSender},
	}
	for _, kw := range keywords {
		rules = append(rules, rule{
			keyword:  strings.ToLower(kw.Keyword),
			category: model.Category(kw.Category),
		})
	}
	return rules
}

// extractLentTo pulls the borrower's name: the text after "lent to" up to
// the next hyphen, currency marker, or digit. The name doubles as detail.
func (p *Parser) extractLentTo(line string) (detail, counterparty string) {
	if m := p.lentRe.FindStringSubmatch(line); m != nil {
		counterparty = strings.TrimSpace(m[1])
	}
	return counterparty, counterparty
}

// extractOthersDetail pulls what the money went on: the text after "others"
// (or the "- o -" / "-0-" shorthand) up to the next hyphen.
func (p *Parser) extractOthersDetail(line string) (detail, counterparty string) {
	if m := p.othersRe.FindStringSubmatch(line); m != nil {
		detail = strings.TrimSpace(m[1])
	}
	return detail, ""
}

// extractSender pulls who the money came from: the text after "money in"
// with an optional colon, up to the next hyphen, marker, or digit.
func (p *Parser) extractSender(line string) (detail, counterparty string) {
	if m := p.moneyInRe.FindStringSubmatch(line); m != nil {
		counterparty = strings.TrimSpace(m[1])
	}
	return counterparty, counterparty
}

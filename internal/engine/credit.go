// Package engine implements the derivation and projection core: the entry
// ledger, totals classification, bounded history, planning metrics, and the
// payday projection builder. All functions here are total over user input;
// malformed text normalizes to safe defaults instead of failing.
package engine

import (
	"strings"

	"github.com/kerem6790/financeX/internal/model"
	"github.com/kerem6790/financeX/internal/money"
)

// knownIssuer is a card issuer with a hardcoded facility limit, matched by
// case-insensitive substring against the entry name.
type knownIssuer struct {
	display string
	match   string
	limit   float64
}

var issuerRegistry = []knownIssuer{
	{display: "QNB Finansbank", match: "qnb", limit: 282000},
	{display: "Enpara", match: "enpara", limit: 105000},
	{display: "Garanti BBVA", match: "garanti", limit: 64000},
	{display: "Yapı Kredi", match: "yapı kredi", limit: 45000},
	{display: "Ziraat Bankası", match: "ziraat", limit: 30000},
}

const genericIssuer = "Credit Card"

// ResolveCredit infers card-issuer metadata for an entry whose available
// balance has already been converted to the base currency. Resolution is
// two-tier: an explicit positive credit limit on a card entry wins, then a
// registry match on the entry name. Returns nil when neither applies, in
// which case the raw amount is used as-is.
func ResolveCredit(e model.Entry, available float64) *model.CreditFacility {
	if e.Type == model.TypeCreditCard {
		if limit := money.Parse(e.CreditLimit); limit > 0 {
			issuer := strings.TrimSpace(e.Name)
			if issuer == "" {
				issuer = genericIssuer
			}
			return &model.CreditFacility{
				Issuer: issuer,
				Limit:  limit,
				Owed:   owedOn(limit, available),
			}
		}
	}

	name := strings.ToLower(e.Name)
	for _, ki := range issuerRegistry {
		if strings.Contains(name, ki.match) {
			return &model.CreditFacility{
				Issuer: ki.display,
				Limit:  ki.limit,
				Owed:   owedOn(ki.limit, available),
			}
		}
	}

	return nil
}

// owedOn computes the owed balance against a facility limit, clamped to
// non-negative so overpaid cards never count as assets.
func owedOn(limit, available float64) float64 {
	owed := limit - available
	if owed < 0 {
		return 0
	}
	return owed
}

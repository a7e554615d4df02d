package engine

import (
	"github.com/kerem6790/financeX/internal/model"
	"github.com/kerem6790/financeX/internal/money"
)

// convertAmount parses an entry amount and converts it to the base
// currency. Foreign amounts without a positive rate contribute 0.
func convertAmount(e model.Entry, usdRate float64) float64 {
	v := money.Parse(e.Amount)
	if e.Unit == model.UnitForeign {
		if usdRate <= 0 {
			return 0
		}
		return v * usdRate
	}
	return v
}

// CalculateTotals folds the ledger into aggregate totals and the four-way
// category breakdown. The result fully replaces any previous totals; this
// is a pure fold, never incremental.
func CalculateTotals(entries []model.Entry, usdRate float64) (model.Totals, model.CategoryTotals) {
	var cat model.CategoryTotals

	for _, e := range entries {
		available := convertAmount(e, usdRate)

		switch e.Type {
		case model.TypeCreditCard:
			if fac := ResolveCredit(e, available); fac != nil {
				cat.Cards += fac.Owed
			}
		case model.TypeDebt:
			if fac := ResolveCredit(e, available); fac != nil {
				cat.Debts += fac.Owed
			} else {
				cat.Debts += available
			}
		case model.TypeCrypto:
			cat.Crypto += available
		case model.TypeReceivable, model.TypeCash:
			cat.Assets += available
		}
	}

	totals := model.Totals{
		Debt:   cat.Cards + cat.Debts,
		Assets: cat.Crypto + cat.Assets,
	}
	totals.NetWorth = totals.Assets - totals.Debt

	return totals, cat
}

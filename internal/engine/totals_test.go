package engine

import (
	"math"
	"testing"

	"github.com/kerem6790/financeX/internal/model"
)

func entry(name string, t model.EntryType, amount string) model.Entry {
	unit, _ := model.UnitFor(t)
	return model.Entry{ID: name, Name: name, Type: t, Unit: unit, Amount: amount}
}

func TestCalculateTotals_Classification(t *testing.T) {
	entries := []model.Entry{
		entry("salary account", model.TypeCash, "15000"),
		entry("loan to a friend", model.TypeReceivable, "5000"),
		entry("bank loan", model.TypeDebt, "8000"),
		entry("btc", model.TypeCrypto, "100"),
	}

	totals, cat := CalculateTotals(entries, 40)

	if cat.Assets != 20000 {
		t.Errorf("Assets bucket = %v, want 20000", cat.Assets)
	}
	if cat.Debts != 8000 {
		t.Errorf("Debts bucket = %v, want 8000", cat.Debts)
	}
	if cat.Crypto != 4000 {
		t.Errorf("Crypto bucket = %v, want 4000 (100 x rate 40)", cat.Crypto)
	}
	if cat.Cards != 0 {
		t.Errorf("Cards bucket = %v, want 0", cat.Cards)
	}

	if totals.Assets != cat.Crypto+cat.Assets {
		t.Errorf("Assets = %v, want crypto+assets = %v", totals.Assets, cat.Crypto+cat.Assets)
	}
	if totals.Debt != cat.Cards+cat.Debts {
		t.Errorf("Debt = %v, want cards+debts = %v", totals.Debt, cat.Cards+cat.Debts)
	}
	if totals.NetWorth != totals.Assets-totals.Debt {
		t.Errorf("NetWorth = %v, want assets-debt = %v", totals.NetWorth, totals.Assets-totals.Debt)
	}
}

func TestCalculateTotals_CreditCardOwed(t *testing.T) {
	card := entry("visa", model.TypeCreditCard, "3000")
	card.CreditLimit = "10000"

	totals, cat := CalculateTotals([]model.Entry{card}, 0)

	if cat.Cards != 7000 {
		t.Errorf("Cards = %v, want owed 7000", cat.Cards)
	}
	if totals.NetWorth != -7000 {
		t.Errorf("NetWorth = %v, want -7000", totals.NetWorth)
	}
}

func TestCalculateTotals_UnresolvedCardIgnored(t *testing.T) {
	// A card with no limit and no registry match contributes nothing; its
	// available balance is not an asset.
	card := entry("mystery card", model.TypeCreditCard, "3000")

	totals, cat := CalculateTotals([]model.Entry{card}, 0)

	if cat.Cards != 0 {
		t.Errorf("Cards = %v, want 0 for unresolved card", cat.Cards)
	}
	if totals.NetWorth != 0 {
		t.Errorf("NetWorth = %v, want 0", totals.NetWorth)
	}
}

func TestCalculateTotals_DebtWithIssuerMatch(t *testing.T) {
	debt := entry("Ziraat loan", model.TypeDebt, "10000")

	_, cat := CalculateTotals([]model.Entry{debt}, 0)

	// Registry limit 30000 minus available 10000.
	if cat.Debts != 20000 {
		t.Errorf("Debts = %v, want 20000 via issuer resolution", cat.Debts)
	}
}

func TestCalculateTotals_ForeignWithoutRate(t *testing.T) {
	entries := []model.Entry{entry("eth", model.TypeCrypto, "2")}

	for _, rate := range []float64{0, -3} {
		_, cat := CalculateTotals(entries, rate)
		if cat.Crypto != 0 {
			t.Errorf("Crypto with rate %v = %v, want 0", rate, cat.Crypto)
		}
	}
}

func TestCalculateTotals_MalformedAmounts(t *testing.T) {
	entries := []model.Entry{
		entry("typing", model.TypeCash, "12x"),
		entry("blank", model.TypeDebt, ""),
	}

	totals, _ := CalculateTotals(entries, 0)
	if totals.NetWorth != 0 {
		t.Errorf("NetWorth = %v, want 0 for malformed amounts", totals.NetWorth)
	}
}

func TestCalculateTotals_EmptyLedger(t *testing.T) {
	totals, cat := CalculateTotals(nil, 40)
	if totals != (model.Totals{}) {
		t.Errorf("totals = %+v, want zero", totals)
	}
	if cat != (model.CategoryTotals{}) {
		t.Errorf("categories = %+v, want zero", cat)
	}
}

func TestCalculateTotals_IsPureFold(t *testing.T) {
	entries := []model.Entry{
		entry("cash", model.TypeCash, "1000"),
		entry("loan", model.TypeDebt, "250,5"),
	}

	a, _ := CalculateTotals(entries, 40)
	b, _ := CalculateTotals(entries, 40)
	if math.Abs(a.NetWorth-b.NetWorth) != 0 {
		t.Errorf("repeated fold differs: %v vs %v", a.NetWorth, b.NetWorth)
	}
	if a.NetWorth != 749.5 {
		t.Errorf("NetWorth = %v, want 749.5", a.NetWorth)
	}
}

package model

// Totals is the top-level aggregate over the entry ledger.
// NetWorth is always Assets - Debt, never stored independently.
type Totals struct {
	Debt     float64 `json:"debt"`
	Assets   float64 `json:"assets"`
	NetWorth float64 `json:"netWorth"`
}

// CategoryTotals decomposes Totals into four buckets.
// Cards+Debts equals Totals.Debt and Crypto+Assets equals Totals.Assets.
type CategoryTotals struct {
	Cards  float64 `json:"cards"`
	Debts  float64 `json:"debts"`
	Crypto float64 `json:"crypto"`
	Assets float64 `json:"assets"`
}

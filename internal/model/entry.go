// Package model defines the domain types for the financeX ledger.
package model

// EntryType classifies a ledger line item.
type EntryType string

const (
	TypeDebt       EntryType = "debt"
	TypeCreditCard EntryType = "creditCard"
	TypeReceivable EntryType = "receivable"
	TypeCash       EntryType = "cash"
	TypeCrypto     EntryType = "crypto"
)

// IsDebt reports whether the type contributes to the debt side.
func (t EntryType) IsDebt() bool {
	return t == TypeDebt || t == TypeCreditCard
}

// Valid reports whether the type is one of the known entry types.
func (t EntryType) Valid() bool {
	switch t {
	case TypeDebt, TypeCreditCard, TypeReceivable, TypeCash, TypeCrypto:
		return true
	}
	return false
}

// Unit is the currency a raw amount is denominated in.
type Unit string

const (
	UnitLocal   Unit = "try"
	UnitForeign Unit = "usd"
)

// UnitFor returns the unit an entry of the given type must carry, and
// whether that unit is forced. Crypto is always foreign, credit cards are
// always local; other types follow user choice.
func UnitFor(t EntryType) (Unit, bool) {
	switch t {
	case TypeCrypto:
		return UnitForeign, true
	case TypeCreditCard:
		return UnitLocal, true
	}
	return UnitLocal, false
}

// Entry is a single line item in the finance ledger. Amount and CreditLimit
// are raw user text so partially typed values survive round trips.
type Entry struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Amount      string    `json:"amount"`
	Type        EntryType `json:"type"`
	Unit        Unit      `json:"unit"`
	CreditLimit string    `json:"creditLimit,omitempty"`
}

// CreditFacility is resolved card-issuer metadata for an entry.
type CreditFacility struct {
	Issuer string
	Limit  float64
	Owed   float64
}

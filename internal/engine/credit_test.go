package engine

import (
	"testing"

	"github.com/kerem6790/financeX/internal/model"
)

func TestResolveCredit_ExplicitLimit(t *testing.T) {
	e := model.Entry{
		Name:        "My Card",
		Type:        model.TypeCreditCard,
		Amount:      "3000",
		CreditLimit: "10000",
	}

	fac := ResolveCredit(e, 3000)
	if fac == nil {
		t.Fatal("ResolveCredit returned nil, want facility")
	}
	if fac.Issuer != "My Card" {
		t.Errorf("Issuer = %q, want My Card", fac.Issuer)
	}
	if fac.Limit != 10000 {
		t.Errorf("Limit = %v, want 10000", fac.Limit)
	}
	if fac.Owed != 7000 {
		t.Errorf("Owed = %v, want 7000", fac.Owed)
	}
}

func TestResolveCredit_ExplicitLimitUnnamed(t *testing.T) {
	e := model.Entry{Type: model.TypeCreditCard, CreditLimit: "5000"}

	fac := ResolveCredit(e, 1000)
	if fac == nil {
		t.Fatal("ResolveCredit returned nil, want facility")
	}
	if fac.Issuer != "Credit Card" {
		t.Errorf("Issuer = %q, want the generic issuer", fac.Issuer)
	}
}

func TestResolveCredit_IssuerRegistry(t *testing.T) {
	e := model.Entry{Name: "QNB Kredi", Type: model.TypeCreditCard}

	fac := ResolveCredit(e, 50000)
	if fac == nil {
		t.Fatal("ResolveCredit returned nil, want registry match")
	}
	if fac.Issuer != "QNB Finansbank" {
		t.Errorf("Issuer = %q, want QNB Finansbank", fac.Issuer)
	}
	if fac.Limit != 282000 {
		t.Errorf("Limit = %v, want 282000", fac.Limit)
	}
	if fac.Owed != 232000 {
		t.Errorf("Owed = %v, want 232000", fac.Owed)
	}
}

func TestResolveCredit_RegistryCaseInsensitive(t *testing.T) {
	e := model.Entry{Name: "GARANTI bonus", Type: model.TypeDebt}

	fac := ResolveCredit(e, 64000)
	if fac == nil {
		t.Fatal("ResolveCredit returned nil, want registry match")
	}
	if fac.Issuer != "Garanti BBVA" {
		t.Errorf("Issuer = %q, want Garanti BBVA", fac.Issuer)
	}
	if fac.Owed != 0 {
		t.Errorf("Owed = %v, want 0 when available covers the limit", fac.Owed)
	}
}

func TestResolveCredit_ExplicitLimitWinsOverRegistry(t *testing.T) {
	e := model.Entry{
		Name:        "Enpara Card",
		Type:        model.TypeCreditCard,
		CreditLimit: "40000",
	}

	fac := ResolveCredit(e, 10000)
	if fac == nil {
		t.Fatal("ResolveCredit returned nil")
	}
	if fac.Limit != 40000 {
		t.Errorf("Limit = %v, want the explicit 40000 over the registry value", fac.Limit)
	}
}

func TestResolveCredit_NoMatch(t *testing.T) {
	e := model.Entry{Name: "Unknown Bank", Type: model.TypeCreditCard}

	if fac := ResolveCredit(e, 1000); fac != nil {
		t.Errorf("ResolveCredit = %+v, want nil for unknown issuer", fac)
	}
}

func TestResolveCredit_OwedNeverNegative(t *testing.T) {
	e := model.Entry{Type: model.TypeCreditCard, CreditLimit: "10000"}

	fac := ResolveCredit(e, 15000)
	if fac == nil {
		t.Fatal("ResolveCredit returned nil")
	}
	if fac.Owed != 0 {
		t.Errorf("Owed = %v, want 0 for an overpaid card", fac.Owed)
	}
}

func TestResolveCredit_ZeroLimitIgnored(t *testing.T) {
	// A zero or malformed limit must not create a facility by itself.
	e := model.Entry{Name: "Some Card", Type: model.TypeCreditCard, CreditLimit: "0"}
	if fac := ResolveCredit(e, 100); fac != nil {
		t.Errorf("ResolveCredit = %+v, want nil for zero limit", fac)
	}

	e.CreditLimit = "not a number"
	if fac := ResolveCredit(e, 100); fac != nil {
		t.Errorf("ResolveCredit = %+v, want nil for malformed limit", fac)
	}
}

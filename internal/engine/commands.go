package engine

import "github.com/kerem6790/financeX/internal/model"

// EntryUpdate is a tagged command applied to a single ledger entry. Using a
// closed set of variants keeps field updates type safe; the dispatch lives
// in Context.UpdateEntry.
type EntryUpdate interface {
	isEntryUpdate()
}

// SetName renames an entry.
type SetName struct{ Name string }

// SetAmount replaces the raw amount text.
type SetAmount struct{ Amount string }

// SetType changes the entry type and re-derives the unit when the new type
// forces one.
type SetType struct{ Type model.EntryType }

// SetUnit changes the currency unit. Ignored for types whose unit is
// derived (crypto, credit cards).
type SetUnit struct{ Unit model.Unit }

// SetCreditLimit replaces the raw credit limit text.
type SetCreditLimit struct{ Limit string }

func (SetName) isEntryUpdate()        {}
func (SetAmount) isEntryUpdate()      {}
func (SetType) isEntryUpdate()        {}
func (SetUnit) isEntryUpdate()        {}
func (SetCreditLimit) isEntryUpdate() {}

// Package cbm resolves the effective volume of a record. Source sheets
// inconsistently populate a pre-computed total column versus a per-unit
// value plus a count, so the two paths meet here.
package cbm

import "github.com/shopspring/decimal"

// Resolve returns the effective CBM for one record. A present total is
// authoritative even when it is zero; a recorded zero is a legitimate
// value, not a gap. Only when the total is absent does unit x quantity
// apply, and when neither path is available the record contributes zero
// volume.
func Resolve(totalCBM, unitCBM *decimal.Decimal, quantity *int64) decimal.Decimal {
	if totalCBM != nil {
		return *totalCBM
	}
	if unitCBM != nil && quantity != nil {
		return unitCBM.Mul(decimal.NewFromInt(*quantity))
	}
	return decimal.Zero
}

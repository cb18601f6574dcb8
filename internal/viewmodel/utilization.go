package viewmodel

import (
	"github.com/shopspring/decimal"

	"github.com/simonvc/ledgerdash/internal/ledger"
)

// utilizationFloor keeps the bar scale sane when every balance is small or zero.
var utilizationFloor = decimal.NewFromInt(1000)

var hundred = decimal.NewFromInt(100)

type UtilizationRow struct {
	AccountID int64
	Name      string
	Type      ledger.AccountType
	Balance   decimal.Decimal
	// WidthPct is the bar width in percent, 0 to 100.
	WidthPct float64
}

func (r UtilizationRow) DisplayBalance() string {
	return ledger.FormatUSD(r.Balance)
}

// ComputeAccountUtilization returns one bar per Asset account followed by
// one per Liability account, scaled against the largest absolute balance of
// any account (floored at 1000).
func ComputeAccountUtilization(snap ledger.Snapshot) []UtilizationRow {
	maxAbs := utilizationFloor
	for _, a := range snap.Accounts {
		if abs := a.Balance.Abs(); abs.GreaterThan(maxAbs) {
			maxAbs = abs
		}
	}

	var rows []UtilizationRow
	for _, t := range []ledger.AccountType{ledger.AccountTypeAsset, ledger.AccountTypeLiability} {
		for _, a := range snap.Accounts {
			if a.Type != t {
				continue
			}
			width := decimal.Min(hundred, a.Balance.Abs().Div(maxAbs).Mul(hundred))
			rows = append(rows, UtilizationRow{
				AccountID: a.ID,
				Name:      a.Name,
				Type:      a.Type,
				Balance:   a.Balance,
				WidthPct:  width.InexactFloat64(),
			})
		}
	}
	return rows
}

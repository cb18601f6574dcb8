package ledger

import "time"

// Snapshot is the most recently fetched copy of the ledger. It is replaced
// as a whole after every successful fetch and never patched in place.
type Snapshot struct {
	Accounts     []Account
	Transactions []Transaction
	Invoices     []Invoice
	FetchedAt    time.Time
}

// Empty reports whether no data has been fetched yet.
func (s Snapshot) Empty() bool {
	return s.FetchedAt.IsZero()
}

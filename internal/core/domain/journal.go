package domain

// JournalEntry is the immutable record of a debit and/or credit against one
// account, the atomic unit of the ledger. Entries are append-only: once the
// authorizing transaction is terminal they are never updated or deleted.
//
// By convention debit increases the account balance and credit decreases it
// (asset-account view). Exactly one entry is produced per authorized
// transaction: debit=amount for deposits, credit=amount for withdrawals.
type JournalEntry struct {
	EntryID     string `json:"entryID"`
	AccountID   string `json:"accountID"`
	Debit       int64  `json:"debit"`  // minor currency units, >= 0
	Credit      int64  `json:"credit"` // minor currency units, >= 0
	Description string `json:"description"`
	AuditFields
}

// SignedAmount returns the entry's contribution to the account balance.
func (e JournalEntry) SignedAmount() int64 {
	return e.Debit - e.Credit
}

// ReconciliationResult compares an account's cached balance against the
// balance recomputed from its full journal history.
type ReconciliationResult struct {
	AccountID       string `json:"accountID"`
	CachedBalance   int64  `json:"cachedBalance"`
	ComputedBalance int64  `json:"computedBalance"`
	Drift           int64  `json:"drift"`
	Consistent      bool   `json:"consistent"`
}

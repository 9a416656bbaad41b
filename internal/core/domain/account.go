package domain

// AccountType identifies the product category of a customer account.
type AccountType string

const (
	Checking    AccountType = "CHECKING"
	Savings     AccountType = "SAVINGS"
	MoneyMarket AccountType = "MONEY_MARKET"
)

// AccountStatus is the lifecycle state of an account. Accounts are never
// deleted; CLOSED is terminal.
type AccountStatus string

const (
	AccountActive AccountStatus = "ACTIVE"
	AccountFrozen AccountStatus = "FROZEN"
	AccountClosed AccountStatus = "CLOSED"
)

// Account represents a customer account within the core domain.
//
// Balance is held in minor currency units (cents) and is a cached projection:
// at any quiescent point it equals the signed sum of debit minus credit over
// the account's journal entries. It is mutated only by the transaction
// authorization unit of work.
type Account struct {
	AccountID   string        `json:"accountID"`
	AccountType AccountType   `json:"accountType"`
	Status      AccountStatus `json:"status"`
	Balance     int64         `json:"balance"` // minor currency units
	AuditFields
}

// IsOpen reports whether the account may still accrue transactions.
func (a Account) IsOpen() bool {
	return a.Status != AccountClosed
}

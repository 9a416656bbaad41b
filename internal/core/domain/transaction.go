package domain

// TransactionType indicates the direction of a monetary transaction.
type TransactionType string

const (
	Deposit    TransactionType = "DEPOSIT"
	Withdrawal TransactionType = "WITHDRAWAL"
)

// TransactionStatus is the state-machine position of a transaction.
// PENDING is the only non-terminal state; once AUTHORIZED or REJECTED, the
// status never changes again.
type TransactionStatus string

const (
	Pending    TransactionStatus = "PENDING"
	Authorized TransactionStatus = "AUTHORIZED"
	Rejected   TransactionStatus = "REJECTED"
)

// Transaction represents a pending or settled monetary movement against one
// account. Amount is always positive; direction comes from the type.
type Transaction struct {
	TransactionID string            `json:"transactionID"`
	AccountID     string            `json:"accountID"`
	Type          TransactionType   `json:"type"`
	Status        TransactionStatus `json:"status"`
	Amount        int64             `json:"amount"` // minor currency units, > 0
	AuditFields
}

// IsTerminal reports whether the transaction has left the pending state.
func (t Transaction) IsTerminal() bool {
	return t.Status == Authorized || t.Status == Rejected
}

// BalanceDelta returns the signed effect authorizing this transaction has on
// the account balance: +Amount for deposits, -Amount for withdrawals.
func (t Transaction) BalanceDelta() int64 {
	if t.Type == Withdrawal {
		return -t.Amount
	}
	return t.Amount
}

// Stats summarizes the authorized activity of one account.
// TotalTransactions counts every transaction regardless of status.
type Stats struct {
	TotalDeposits     int64 `json:"totalDeposits"`
	TotalWithdrawals  int64 `json:"totalWithdrawals"`
	NetAmount         int64 `json:"netAmount"`
	TotalTransactions int   `json:"totalTransactions"`
}

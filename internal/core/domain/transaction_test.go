package domain_test

import (
	"testing"

	"github.com/corebank/ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestTransactionIsTerminal(t *testing.T) {
	assert.False(t, domain.Transaction{Status: domain.Pending}.IsTerminal())
	assert.True(t, domain.Transaction{Status: domain.Authorized}.IsTerminal())
	assert.True(t, domain.Transaction{Status: domain.Rejected}.IsTerminal())
}

func TestTransactionBalanceDelta(t *testing.T) {
	deposit := domain.Transaction{Type: domain.Deposit, Amount: 1500}
	withdrawal := domain.Transaction{Type: domain.Withdrawal, Amount: 1500}

	assert.Equal(t, int64(1500), deposit.BalanceDelta())
	assert.Equal(t, int64(-1500), withdrawal.BalanceDelta())
}

func TestJournalEntrySignedAmount(t *testing.T) {
	assert.Equal(t, int64(1000), domain.JournalEntry{Debit: 1000}.SignedAmount())
	assert.Equal(t, int64(-250), domain.JournalEntry{Credit: 250}.SignedAmount())
	assert.Equal(t, int64(750), domain.JournalEntry{Debit: 1000, Credit: 250}.SignedAmount())
}

func TestAccountIsOpen(t *testing.T) {
	assert.True(t, domain.Account{Status: domain.AccountActive}.IsOpen())
	assert.True(t, domain.Account{Status: domain.AccountFrozen}.IsOpen())
	assert.False(t, domain.Account{Status: domain.AccountClosed}.IsOpen())
}

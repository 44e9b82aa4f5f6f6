package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/flashmentor-network/flashmentor/internal/domain"
)

func TestGetAccount_MissingReturnsNil(t *testing.T) {
	s := New()

	acct, err := s.GetAccount(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("GetAccount() error: %v", err)
	}
	if acct != nil {
		t.Errorf("acct = %+v, want nil", acct)
	}
}

func TestCreateAccount_DoesNotClobberExisting(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.CreateAccount(ctx, domain.Account{ID: "a", Balance: 10}); err != nil {
		t.Fatalf("CreateAccount() error: %v", err)
	}
	tx := domain.Transaction{ID: "t1", Kind: domain.TxSpend, Amount: 3, Timestamp: time.Now()}
	if err := s.UpdateBalance(ctx, "a", 7, tx); err != nil {
		t.Fatalf("UpdateBalance() error: %v", err)
	}

	// A duplicate create must not reset the balance or history.
	if err := s.CreateAccount(ctx, domain.Account{ID: "a", Balance: 10}); err != nil {
		t.Fatalf("duplicate CreateAccount() error: %v", err)
	}
	acct, _ := s.GetAccount(ctx, "a")
	if acct.Balance != 7 {
		t.Errorf("Balance = %d, want 7", acct.Balance)
	}
	if len(acct.History) != 1 {
		t.Errorf("History has %d entries, want 1", len(acct.History))
	}
}

func TestGetAccount_SnapshotIsIsolated(t *testing.T) {
	s := New()
	ctx := context.Background()

	_ = s.CreateAccount(ctx, domain.Account{ID: "a", Balance: 10})
	_ = s.UpdateBalance(ctx, "a", 7, domain.Transaction{ID: "t1", Kind: domain.TxSpend, Amount: 3})

	snap, _ := s.GetAccount(ctx, "a")
	snap.Balance = 999
	snap.History[0].Amount = 999

	fresh, _ := s.GetAccount(ctx, "a")
	if fresh.Balance != 7 {
		t.Errorf("Balance = %d, want 7 (snapshot mutation leaked)", fresh.Balance)
	}
	if fresh.History[0].Amount != 3 {
		t.Errorf("Amount = %d, want 3 (snapshot mutation leaked)", fresh.History[0].Amount)
	}
}

func TestTransactions_InsertionOrder(t *testing.T) {
	s := New()
	ctx := context.Background()

	_ = s.CreateAccount(ctx, domain.Account{ID: "a", Balance: 10})
	_ = s.UpdateBalance(ctx, "a", 7, domain.Transaction{ID: "t1", Kind: domain.TxSpend, Amount: 3})
	_ = s.UpdateBalance(ctx, "a", 10, domain.Transaction{ID: "t2", Kind: domain.TxEarn, Amount: 3})
	_ = s.UpdateBalance(ctx, "a", 7, domain.Transaction{ID: "t3", Kind: domain.TxSpend, Amount: 3})

	txs, err := s.Transactions(ctx, "a")
	if err != nil {
		t.Fatalf("Transactions() error: %v", err)
	}
	want := []string{"t1", "t2", "t3"}
	if len(txs) != len(want) {
		t.Fatalf("got %d transactions, want %d", len(txs), len(want))
	}
	for i, id := range want {
		if txs[i].ID != id {
			t.Errorf("txs[%d].ID = %s, want %s", i, txs[i].ID, id)
		}
	}
}

package handlers

import (
	"errors"
	"strings"
	"testing"

	"gorm.io/gorm"
)

func TestCheckWalletDebit(t *testing.T) {
	if err := checkWalletDebit(&gorm.DB{RowsAffected: 1}, 4_000_000); err != nil {
		t.Fatalf("debit with one affected row should settle, got %v", err)
	}

	// A conditional update that matched no row means the balance was spent
	// concurrently; the payment must fail instead of settling for free.
	err := checkWalletDebit(&gorm.DB{RowsAffected: 0}, 4_000_000)
	if err == nil {
		t.Fatal("debit with zero affected rows must be rejected")
	}
	if !strings.Contains(err.Error(), "insufficient balance") {
		t.Errorf("unexpected error message: %v", err)
	}

	dbErr := errors.New("connection reset")
	if err := checkWalletDebit(&gorm.DB{Error: dbErr}, 4_000_000); !errors.Is(err, dbErr) {
		t.Errorf("database error should pass through, got %v", err)
	}
}

func TestClaimedRows(t *testing.T) {
	claimed, err := claimedRows(&gorm.DB{RowsAffected: 1})
	if err != nil || !claimed {
		t.Fatalf("one affected row should claim the transaction, got claimed=%v err=%v", claimed, err)
	}

	// The second of two concurrent callbacks matches zero rows and must not
	// settle the transaction again.
	claimed, err = claimedRows(&gorm.DB{RowsAffected: 0})
	if err != nil {
		t.Fatalf("zero affected rows is not an error, got %v", err)
	}
	if claimed {
		t.Fatal("zero affected rows must not claim the transaction")
	}

	dbErr := errors.New("connection reset")
	if _, err := claimedRows(&gorm.DB{Error: dbErr}); !errors.Is(err, dbErr) {
		t.Errorf("database error should pass through, got %v", err)
	}
}

package repository

import (
	"strings"
	"testing"
)

func TestGeneratePaymentReference(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		ref := GeneratePaymentReference()
		if !strings.HasPrefix(ref, "PAY-") {
			t.Fatalf("reference %q missing PAY- prefix", ref)
		}
		if len(ref) != len("PAY-")+8 {
			t.Fatalf("reference %q has wrong length", ref)
		}
		if ref != strings.ToUpper(ref) {
			t.Errorf("reference %q is not uppercase", ref)
		}
		if seen[ref] {
			t.Fatalf("duplicate reference %q", ref)
		}
		seen[ref] = true
	}
}

func TestGenerateTransactionCode(t *testing.T) {
	code := GenerateTransactionCode("PAY-9F2A1C7B")
	if code != "PAY9F2A1C7B" {
		t.Errorf("GenerateTransactionCode = %q, want PAY9F2A1C7B", code)
	}
	if strings.Contains(code, "-") {
		t.Errorf("transaction code %q still contains a dash", code)
	}
}

package password

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	SetCost(bcrypt.MinCost) // keep the test fast
	defer SetCost(DefaultCost)

	hash, err := Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("hash equals the plaintext")
	}

	if !Verify("correct horse battery staple", hash) {
		t.Fatal("correct password did not verify")
	}
	if Verify("wrong password", hash) {
		t.Fatal("wrong password verified")
	}
}

func TestSetCostClamps(t *testing.T) {
	defer SetCost(DefaultCost)

	SetCost(99)
	if got := int(cost.Load()); got != bcrypt.MaxCost {
		t.Fatalf("expected clamp to %d, got %d", bcrypt.MaxCost, got)
	}

	SetCost(-1)
	if got := int(cost.Load()); got != bcrypt.MinCost {
		t.Fatalf("expected clamp to %d, got %d", bcrypt.MinCost, got)
	}
}

func TestVerifyAcrossCostChange(t *testing.T) {
	SetCost(bcrypt.MinCost)
	defer SetCost(DefaultCost)

	hash, err := Hash("s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Raising the cost must not invalidate hashes made at the old cost.
	SetCost(bcrypt.MinCost + 1)
	if !Verify("s3cret", hash) {
		t.Fatal("hash stopped verifying after cost change")
	}
}

package security

import (
	"testing"
)

func TestHasher_HashAndVerify(t *testing.T) {
	h := NewHasher(4)
	digest, err := h.Hash("secret123")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if digest == "" {
		t.Fatal("Hash returned empty")
	}
	if !h.Verify("secret123", digest) {
		t.Fatal("Verify should accept the original password")
	}
}

func TestHasher_VerifyWrongPassword(t *testing.T) {
	h := NewHasher(4)
	digest, _ := h.Hash("secret123")
	if h.Verify("wrong", digest) {
		t.Fatal("Verify with wrong password should fail")
	}
}

func TestHasher_VerifyMalformedDigest(t *testing.T) {
	h := NewHasher(4)
	if h.Verify("secret123", "not-a-bcrypt-digest") {
		t.Fatal("Verify with malformed digest should fail")
	}
	if h.Verify("secret123", "") {
		t.Fatal("Verify with empty digest should fail")
	}
}

func TestHasher_Cost(t *testing.T) {
	h := NewHasher(12)
	if h.Cost != 12 {
		t.Errorf("Cost want 12, got %d", h.Cost)
	}
	h0 := NewHasher(0)
	if h0.Cost < 4 {
		t.Errorf("zero cost should be clamped to at least MinCost, got %d", h0.Cost)
	}
}

package security

import (
	"testing"
)

func TestParsePrivateKey_Inline(t *testing.T) {
	signer, err := ParsePrivateKey(testPrivateKeyPEM)
	if err != nil {
		t.Fatalf("ParsePrivateKey: %v", err)
	}
	if signer == nil {
		t.Fatal("ParsePrivateKey returned nil signer")
	}
}

func TestParsePublicKey_Inline(t *testing.T) {
	pub, err := ParsePublicKey(testPublicKeyPEM)
	if err != nil {
		t.Fatalf("ParsePublicKey: %v", err)
	}
	if got := KeyAlg(pub); got != "RS256" {
		t.Errorf("KeyAlg = %q, want RS256", got)
	}
}

func TestParsePrivateKey_Invalid(t *testing.T) {
	if _, err := ParsePrivateKey("not-pem"); err == nil {
		t.Fatal("ParsePrivateKey should reject non-PEM input")
	}
	if _, err := ParsePrivateKey(""); err != ErrInvalidKey {
		t.Errorf("empty input: want ErrInvalidKey, got %v", err)
	}
}

func TestKeyAlg_Unknown(t *testing.T) {
	if got := KeyAlg("not a key"); got != "" {
		t.Errorf("KeyAlg = %q, want empty", got)
	}
}

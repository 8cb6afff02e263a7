package crypto

import (
	"bytes"
	"encoding/hex"
	"errors"
	"strings"
	"testing"
)

var testKey = strings.Repeat("ab", 32)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	svc, err := New(testKey)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if !svc.Configured() {
		t.Fatalf("expected configured service")
	}
	plain := []byte(`{"curp":"GOMJ850101HDFXYZ08"}`)
	sealed, err := svc.Encrypt(plain)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if bytes.Contains(sealed, []byte("GOMJ")) {
		t.Fatalf("ciphertext contains plaintext")
	}
	again, _ := svc.Encrypt(plain)
	if bytes.Equal(sealed, again) {
		t.Fatalf("expected random nonce to change ciphertext")
	}
	opened, err := svc.Decrypt(sealed)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if !bytes.Equal(opened, plain) {
		t.Fatalf("round trip mismatch: %s", opened)
	}
}

func TestDecryptRejectsTampering(t *testing.T) {
	svc, _ := New(testKey)
	sealed, _ := svc.Encrypt([]byte("secret"))
	sealed[len(sealed)-1] ^= 0xff
	if _, err := svc.Decrypt(sealed); err == nil {
		t.Fatalf("expected authentication failure")
	}
	if _, err := svc.Decrypt([]byte("short")); !errors.Is(err, ErrCiphertextTooShort) {
		t.Fatalf("expected ErrCiphertextTooShort, got %v", err)
	}
}

func TestUnconfiguredPassesThrough(t *testing.T) {
	svc, err := New("")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if svc.Configured() {
		t.Fatalf("expected unconfigured service")
	}
	out, _ := svc.Encrypt([]byte("plain"))
	if string(out) != "plain" {
		t.Fatalf("expected passthrough, got %q", out)
	}
}

func TestNewRejectsWrongKeySize(t *testing.T) {
	if _, err := New("too-short"); err == nil {
		t.Fatalf("expected key size error")
	}
}

func TestBlindIndex(t *testing.T) {
	idx, err := NewBlindIndex(hex.EncodeToString(bytes.Repeat([]byte{7}, 32)))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	a := idx.Index("GOMJ850101HDFXYZ08")
	b := idx.Index(" gomj850101hdfxyz08 ")
	if a == "" || a != b {
		t.Fatalf("expected normalized values to share an index: %q %q", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("expected 32-byte hex digest, got %d chars", len(a))
	}
	if a == idx.Index("PEGJ900215MJCRRN08") {
		t.Fatalf("expected different values to differ")
	}

	other, _ := NewBlindIndex(hex.EncodeToString(bytes.Repeat([]byte{8}, 32)))
	if other.Index("GOMJ850101HDFXYZ08") == a {
		t.Fatalf("expected key to change the index")
	}
}

func TestBlindIndexUnconfigured(t *testing.T) {
	idx, err := NewBlindIndex("")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if idx.Configured() || idx.Index("x") != "" {
		t.Fatalf("expected unconfigured index to be inert")
	}
	if _, err := NewBlindIndex("short"); err == nil {
		t.Fatalf("expected short key to be rejected")
	}
}

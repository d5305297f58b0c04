package security

import (
	"errors"
	"testing"
)

func TestSealRoundTrip(t *testing.T) {
	s, err := NewSealer("test-secret")
	if err != nil {
		t.Fatalf("new sealer: %v", err)
	}

	token, err := s.Seal("classified content")
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if token == "classified content" {
		t.Fatal("token should not equal plaintext")
	}

	out, err := s.Open(token)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if out != "classified content" {
		t.Errorf("round-trip mismatch: %q", out)
	}
}

func TestSealNoncesDiffer(t *testing.T) {
	s, _ := NewSealer("test-secret")
	a, _ := s.Seal("same content")
	b, _ := s.Seal("same content")
	if a == b {
		t.Error("two seals of the same content should differ")
	}
}

func TestOpenWrongKey(t *testing.T) {
	s1, _ := NewSealer("secret-one")
	s2, _ := NewSealer("secret-two")

	token, _ := s1.Seal("content")
	if _, err := s2.Open(token); !errors.Is(err, ErrSealCorrupt) {
		t.Errorf("expected ErrSealCorrupt, got %v", err)
	}
}

func TestOpenGarbage(t *testing.T) {
	s, _ := NewSealer("test-secret")

	if _, err := s.Open("!!not base64!!"); err == nil {
		t.Error("expected error for invalid base64")
	}
	if _, err := s.Open("c2hvcnQ="); !errors.Is(err, ErrSealCorrupt) {
		t.Errorf("expected ErrSealCorrupt for short token, got %v", err)
	}
}

func TestNewSealerRequiresSecret(t *testing.T) {
	if _, err := NewSealer(""); !errors.Is(err, ErrNoSealKey) {
		t.Errorf("expected ErrNoSealKey, got %v", err)
	}
}

func TestSameSecretSameKey(t *testing.T) {
	s1, _ := NewSealer("shared")
	s2, _ := NewSealer("shared")

	token, _ := s1.Seal("cross-process content")
	out, err := s2.Open(token)
	if err != nil {
		t.Fatalf("open with sibling sealer: %v", err)
	}
	if out != "cross-process content" {
		t.Errorf("mismatch: %q", out)
	}
}

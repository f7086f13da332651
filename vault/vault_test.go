// ABOUTME: Tests for the vault persistence layer
// ABOUTME: Covers save/load round-trips and empty-vault behavior
package vault

import (
	"testing"
)

func openTestVault(t *testing.T) *Vault {
	t.Helper()
	v, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = v.Close() })
	return v
}

func TestLoadEmptyVault(t *testing.T) {
	v := openTestVault(t)

	raw, err := v.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if raw != nil {
		t.Errorf("Expected nil document from empty vault, got %q", raw)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	v := openTestVault(t)

	doc := []byte(`{"notifications":[{"id":"a","type":"system","title":"t","message":"m","timestamp":"2026-08-01T00:00:00Z","isRead":false,"priority":"low"}]}`)
	if err := v.Save(doc); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := v.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(got) != string(doc) {
		t.Errorf("Round-trip mismatch:\n got %s\nwant %s", got, doc)
	}
}

func TestSaveReplacesDocument(t *testing.T) {
	v := openTestVault(t)

	if err := v.Save([]byte(`{"notifications":[]}`)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := v.Save([]byte(`{"notifications":[{"id":"b"}]}`)); err != nil {
		t.Fatalf("Second save failed: %v", err)
	}

	got, err := v.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(got) != `{"notifications":[{"id":"b"}]}` {
		t.Errorf("Expected latest document, got %s", got)
	}
}

func TestReset(t *testing.T) {
	v := openTestVault(t)

	if err := v.Save([]byte(`{"notifications":[]}`)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := v.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	raw, err := v.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if raw != nil {
		t.Errorf("Expected empty vault after reset, got %q", raw)
	}
}

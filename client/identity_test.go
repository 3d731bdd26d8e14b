package client

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIdentityOnboarding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")

	store, err := NewIdentityStore(path)
	if err != nil {
		t.Fatal(err)
	}

	if !store.NeedsOnboarding() {
		t.Error("fresh store should need onboarding")
	}
	if got := store.DisplayName(); got != "Anonymous" {
		t.Errorf("DisplayName() = %q before onboarding, want Anonymous", got)
	}
}

func TestIdentitySetValidation(t *testing.T) {
	store, err := NewIdentityStore(filepath.Join(t.TempDir(), "profile.json"))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty", "", true},
		{"single char", "P", true},
		{"whitespace only", "   ", true},
		{"whitespace padding one char", " P ", true},
		{"two chars", "Pr", false},
		{"normal name", "Priya", false},
		{"trimmed", "  Priya  ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.Set(tt.input)
			if tt.wantErr && err != ErrNameTooShort {
				t.Errorf("Set(%q) = %v, want ErrNameTooShort", tt.input, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Set(%q) error: %v", tt.input, err)
			}
		})
	}

	if got := store.Name(); got != "Priya" {
		t.Errorf("Name() = %q, want trimmed Priya", got)
	}
}

func TestIdentityPersistsAcrossRestarts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")

	store, err := NewIdentityStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Set("Arjun"); err != nil {
		t.Fatal(err)
	}

	reopened, err := NewIdentityStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := reopened.Name(); got != "Arjun" {
		t.Errorf("reopened Name() = %q, want Arjun", got)
	}
	if reopened.NeedsOnboarding() {
		t.Error("persisted profile should not need onboarding")
	}
}

func TestIdentityCorruptFileTreatedAsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	store, err := NewIdentityStore(path)
	if err != nil {
		t.Fatalf("corrupt profile should not fail startup: %v", err)
	}
	if !store.NeedsOnboarding() {
		t.Error("corrupt profile should read as absent")
	}

	// And the store recovers on the next Set
	if err := store.Set("Priya"); err != nil {
		t.Fatal(err)
	}
	if store.Name() != "Priya" {
		t.Error("store did not recover from corrupt file")
	}
}

func TestIdentityCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "profile.json")

	store, err := NewIdentityStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Set("Priya"); err != nil {
		t.Fatalf("Set with missing parent dirs: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("profile file not written: %v", err)
	}
}

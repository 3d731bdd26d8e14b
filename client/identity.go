package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"
)

// ErrNameTooShort rejects display names under two characters.
var ErrNameTooShort = errors.New("name must be at least 2 characters")

const minNameLength = 2

// Profile is the locally persisted user identity. There is no account
// system; the name just travels with feedback and alerts.
type Profile struct {
	Name string `json:"name"`
}

// IdentityStore persists the profile as a JSON file. Clearing app data
// on the server never touches this store.
type IdentityStore struct {
	path string

	mu      sync.Mutex
	profile *Profile
}

// NewIdentityStore opens the store at path, or at the default location
// under the user config dir when path is empty. A missing file is not an
// error; it means onboarding is needed.
func NewIdentityStore(path string) (*IdentityStore, error) {
	if path == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolving config dir: %v", err)
		}
		path = filepath.Join(configDir, "saferoute", "profile.json")
	}

	store := &IdentityStore{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return store, nil
		}
		return nil, fmt.Errorf("reading profile: %v", err)
	}

	var profile Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		// Corrupt profile file: treat as absent rather than bricking startup
		return store, nil
	}
	store.profile = &profile
	return store, nil
}

// Set validates and persists the display name.
func (s *IdentityStore) Set(name string) error {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < minNameLength {
		return ErrNameTooShort
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	profile := &Profile{Name: name}
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encoding profile: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating profile dir: %v", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing profile: %v", err)
	}

	s.profile = profile
	return nil
}

// Name returns the stored name, empty when onboarding has not happened.
func (s *IdentityStore) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return ""
	}
	return s.profile.Name
}

// DisplayName never returns empty; absent profiles read as Anonymous.
func (s *IdentityStore) DisplayName() string {
	if name := s.Name(); name != "" {
		return name
	}
	return "Anonymous"
}

// NeedsOnboarding reports whether the name prompt must be shown.
func (s *IdentityStore) NeedsOnboarding() bool {
	return s.Name() == ""
}

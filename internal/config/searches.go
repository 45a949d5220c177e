package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/alfredjeanlab/listings/internal/query"
)

// SavedSearch is a named parameter set kept on disk. Params are stored as
// TOML values, so nil entries are dropped on save.
type SavedSearch struct {
	Description string       `toml:"description,omitempty"`
	Params      query.Params `toml:"params"`
}

// Searches is the contents of the saved-search file.
type Searches struct {
	Searches map[string]SavedSearch `toml:"searches"`
}

// LoadSearches reads the saved-search file at path. A missing file yields an
// empty set.
func LoadSearches(path string) (*Searches, error) {
	var s Searches
	if _, err := toml.DecodeFile(path, &s); err != nil {
		if os.IsNotExist(err) {
			return &Searches{Searches: map[string]SavedSearch{}}, nil
		}
		return nil, fmt.Errorf("load saved searches: %w", err)
	}
	if s.Searches == nil {
		s.Searches = map[string]SavedSearch{}
	}
	return &s, nil
}

// Save writes the set to path, creating its directory if needed.
func (s *Searches) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("save saved searches: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("save saved searches: %w", err)
	}
	defer f.Close()

	out := Searches{Searches: make(map[string]SavedSearch, len(s.Searches))}
	for name, saved := range s.Searches {
		params := make(query.Params, len(saved.Params))
		for k, v := range saved.Params {
			if v != nil {
				params[k] = v
			}
		}
		out.Searches[name] = SavedSearch{Description: saved.Description, Params: params}
	}
	if err := toml.NewEncoder(f).Encode(out); err != nil {
		return fmt.Errorf("encode saved searches: %w", err)
	}
	return nil
}

// Get returns the named search.
func (s *Searches) Get(name string) (SavedSearch, bool) {
	saved, ok := s.Searches[name]
	return saved, ok
}

// Set adds or replaces the named search.
func (s *Searches) Set(name string, saved SavedSearch) {
	if s.Searches == nil {
		s.Searches = map[string]SavedSearch{}
	}
	s.Searches[name] = saved
}

// Delete removes the named search and reports whether it existed.
func (s *Searches) Delete(name string) bool {
	if _, ok := s.Searches[name]; !ok {
		return false
	}
	delete(s.Searches, name)
	return true
}

// Names returns the saved search names in sorted order.
func (s *Searches) Names() []string {
	names := make([]string, 0, len(s.Searches))
	for name := range s.Searches {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Package profile stores lightweight per-user personalization: a style
// label and word-frequency interest counts derived from past queries.
package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dgraph-io/ristretto"

	"github.com/DevSars24/ai-mentor/memory"
)

// DefaultUserID is used when a request carries no user identity.
const DefaultUserID = "default_user"

// DefaultStyle is the style label for users without an explicit preference.
const DefaultStyle = "friendly"

// Profile is a user's stored personalization data.
type Profile struct {
	Style  string         `json:"style"`
	Topics map[string]int `json:"topics"`

	// TopicOrder records first-seen order so topic ranking ties resolve
	// deterministically.
	TopicOrder []string `json:"topic_order"`
}

// View converts to the read-only shape the retrieval core consumes.
func (p Profile) View() memory.Profile {
	topics := make([]memory.TopicCount, 0, len(p.TopicOrder))
	for _, name := range p.TopicOrder {
		topics = append(topics, memory.TopicCount{Name: name, Count: p.Topics[name]})
	}
	return memory.Profile{Style: p.Style, Topics: topics}
}

// Store is a JSON-file profile store with a ristretto read cache in front.
// Profiles are read on every chat turn; the cache keeps the hot path off
// disk while updates write through and invalidate.
type Store struct {
	path  string
	mu    sync.Mutex
	cache *ristretto.Cache
}

// NewStore opens or creates the profile file at path.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure profile dir: %w", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
			return nil, fmt.Errorf("init profile file: %w", err)
		}
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10_000,
		MaxCost:     1_000,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create profile cache: %w", err)
	}
	return &Store{path: path, cache: cache}, nil
}

// Get returns the user's profile, defaulting to a fresh friendly profile
// for unknown users. Never returns an error: a broken profile file
// degrades to the default.
func (s *Store) Get(userID string) Profile {
	if userID == "" {
		userID = DefaultUserID
	}
	if v, ok := s.cache.Get(userID); ok {
		if p, ok := v.(Profile); ok {
			return p
		}
	}

	s.mu.Lock()
	profiles, err := s.load()
	s.mu.Unlock()
	if err != nil {
		return defaultProfile()
	}

	p, ok := profiles[userID]
	if !ok {
		return defaultProfile()
	}
	s.cache.Set(userID, p, 1)
	return p
}

// Update increments the topic count for every word of query and persists.
func (s *Store) Update(userID, query string) error {
	if userID == "" {
		userID = DefaultUserID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	profiles, err := s.load()
	if err != nil {
		return err
	}
	p, ok := profiles[userID]
	if !ok {
		p = defaultProfile()
	}
	for _, word := range strings.Fields(query) {
		if _, seen := p.Topics[word]; !seen {
			p.TopicOrder = append(p.TopicOrder, word)
		}
		p.Topics[word]++
	}
	profiles[userID] = p

	if err := s.save(profiles); err != nil {
		return err
	}
	s.cache.Del(userID)
	return nil
}

func (s *Store) load() (map[string]Profile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read profiles: %w", err)
	}
	profiles := make(map[string]Profile)
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("parse profiles: %w", err)
	}
	return profiles, nil
}

func (s *Store) save(profiles map[string]Profile) error {
	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal profiles: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write profiles: %w", err)
	}
	return nil
}

func defaultProfile() Profile {
	return Profile{Style: DefaultStyle, Topics: make(map[string]int)}
}

package config

import "sync"

// Store is the read side of the settings shared with the window core.
// The core only reads from it; writes happen through Reload or Set.
type Store struct {
	mu   sync.RWMutex
	cfg  *Config
	path string
}

// NewStore wraps an already loaded config. path is used by Reload.
func NewStore(cfg *Config, path string) *Store {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Store{cfg: cfg, path: path}
}

// GridSnapping reports whether drag and resize commits snap to the grid.
func (s *Store) GridSnapping() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.System.GridSnapping
}

// Config returns a copy of the current settings.
func (s *Store) Config() *Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Clone()
}

// Set replaces the current settings.
func (s *Store) Set(cfg *Config) {
	s.mu.Lock()
	s.cfg = cfg.Clone()
	s.mu.Unlock()
}

// Reload re-reads the backing file. The current settings are kept on error.
func (s *Store) Reload() error {
	res, err := LoadFromPath(s.path)
	if err != nil {
		return err
	}
	s.Set(res.Config)
	return nil
}

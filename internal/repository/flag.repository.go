package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// FlagRepository is the key-value persistence port behind every piece of
// durable presentation state: insight suppression, notification
// read/archive flags, dismissed categories, recent searches. Values are
// opaque strings; callers decide the encoding. Last write wins - this is
// single-user, single-device state and needs no transactional guarantees.
type FlagRepository interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// ReadStringSlice decodes a JSON string-array flag. A missing or
// unparsable value is treated as empty rather than an error, so corrupted
// stored state can never take down the subsystems built on it.
func ReadStringSlice(repo FlagRepository, key string) []string {
	raw, ok := repo.Get(key)
	if !ok {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	return out
}

func WriteStringSlice(repo FlagRepository, key string, values []string) error {
	if values == nil {
		values = []string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to encode flag %s: %w", key, err)
	}
	return repo.Set(key, string(raw))
}

// InMemoryFlagRepository backs tests and the CLI, where nothing should
// outlive the process.
type InMemoryFlagRepository struct {
	mu    sync.Mutex
	flags map[string]string
}

func NewInMemoryFlagRepository() *InMemoryFlagRepository {
	return &InMemoryFlagRepository{flags: map[string]string{}}
}

func (h *InMemoryFlagRepository) Get(key string) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	v, ok := h.flags[key]
	return v, ok
}

func (h *InMemoryFlagRepository) Set(key, value string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.flags[key] = value
	return nil
}

// FileFlagRepositoryHandler persists flags as one JSON object in a local
// file. State is loaded once at construction and written through on every
// mutation.
type FileFlagRepositoryHandler struct {
	mu    sync.Mutex
	path  string
	flags map[string]string
}

func NewFileFlagRepository(path string) (*FileFlagRepositoryHandler, error) {
	h := &FileFlagRepositoryHandler{
		path:  path,
		flags: map[string]string{},
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return h, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read flag store %s: %w", path, err)
	}
	// unparsable store starts empty, same as the per-key policy
	if err := json.Unmarshal(raw, &h.flags); err != nil {
		h.flags = map[string]string{}
	}

	return h, nil
}

func (h *FileFlagRepositoryHandler) Get(key string) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	v, ok := h.flags[key]
	return v, ok
}

func (h *FileFlagRepositoryHandler) Set(key, value string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.flags[key] = value

	raw, err := json.MarshalIndent(h.flags, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode flag store: %w", err)
	}
	if err := os.WriteFile(h.path, raw, 0644); err != nil {
		return fmt.Errorf("failed to write flag store %s: %w", h.path, err)
	}
	return nil
}

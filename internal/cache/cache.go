package cache

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrCorrupt is wrapped by Load when the cache file exists but cannot be
// parsed as a seen-set.
var ErrCorrupt = errors.New("corrupt seen-set file")

// Store persists a SeenSet as a single JSON file. It is not safe for
// concurrent writers.
type Store struct {
	path string
}

func Open(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Load reads the seen-set. A missing file yields an empty set. Both the
// object schema (id -> item) and the legacy array of bare ids are accepted.
func (s *Store) Load() (SeenSet, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return SeenSet{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}
	return decode(data)
}

func decode(data []byte) (SeenSet, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrCorrupt)
	}

	switch trimmed[0] {
	case '{':
		var set SeenSet
		if err := json.Unmarshal(trimmed, &set); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		for id, item := range set {
			if item.DocumentNumber == "" {
				item.DocumentNumber = id
				set[id] = item
			}
		}
		return set, nil
	case '[':
		var ids []string
		if err := json.Unmarshal(trimmed, &ids); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		set := make(SeenSet, len(ids))
		for _, id := range ids {
			if id != "" {
				set[id] = Item{DocumentNumber: id}
			}
		}
		return set, nil
	default:
		return nil, fmt.Errorf("%w: expected object or array", ErrCorrupt)
	}
}

// Save overwrites the file with the full set. Output is indented with keys
// in sorted order, so saving an unchanged set is byte-for-byte stable.
func (s *Store) Save(set SeenSet) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}
	if set == nil {
		set = SeenSet{}
	}
	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding seen-set: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	return nil
}

// Stats returns the number of recorded items and the file size in bytes.
func (s *Store) Stats() (int, int64, error) {
	set, err := s.Load()
	if err != nil {
		return 0, 0, err
	}
	info, err := os.Stat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return len(set), 0, nil
		}
		return 0, 0, err
	}
	return len(set), info.Size(), nil
}

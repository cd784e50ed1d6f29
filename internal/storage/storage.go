package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"ambilight-agent/internal/model"
)

// Store holds the controller status published to the HTTP surface. When a
// path is configured every update also rewrites a JSON snapshot there. The
// snapshot is never read back: strip state always starts dark.
type Store struct {
	path  string
	mu    sync.RWMutex
	state model.Status
}

func NewStore(path string) (*Store, error) {
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}
	s := &Store{path: path, state: defaultState()}
	if err := s.Save(); err != nil {
		return nil, err
	}
	return s, nil
}

func defaultState() model.Status {
	return model.Status{
		StartedAt: time.Now().UTC(),
		Failures:  map[model.ErrorKind]int64{},
	}
}

func (s *Store) saveLocked() error {
	s.state.LastUpdatedUnixMS = time.Now().UnixMilli()
	if s.path == "" {
		return nil
	}
	b, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

func (s *Store) Snapshot() model.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, _ := json.Marshal(s.state)
	var cloned model.Status
	_ = json.Unmarshal(b, &cloned)
	return cloned
}

func (s *Store) BeginCycle(cycleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Cycles++
	s.state.LastCycleID = cycleID
	return s.saveLocked()
}

func (s *Store) SetLatestFrame(frame model.StripFrame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Rendered++
	s.state.LatestFrame = &frame
	return s.saveLocked()
}

func (s *Store) GetLatestFrame() *model.StripFrame {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.LatestFrame == nil {
		return nil
	}
	f := *s.state.LatestFrame
	f.Pixels = append([]model.RGB(nil), f.Pixels...)
	return &f
}

func (s *Store) RecordFailure(kind model.ErrorKind, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Failures[kind]++
	s.state.LastErrorKind = kind
	s.state.LastError = err.Error()
	s.state.LastErrorUnixMS = time.Now().UnixMilli()
	return s.saveLocked()
}

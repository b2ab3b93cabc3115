package manifest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/user/snap-site/internal/entity"
	"github.com/user/snap-site/internal/repository"
	"gopkg.in/yaml.v3"
)

// Manifest is the YAML document written for a run.
type Manifest struct {
	Run      entity.Run             `yaml:"run"`
	Captures []entity.CaptureResult `yaml:"captures"`
}

// ResultStoreImpl collects capture records in memory and writes them as a
// YAML manifest when closed.
type ResultStoreImpl struct {
	path string

	mu       sync.Mutex
	manifest Manifest
	index    map[string]int
}

// NewResultStore creates a manifest store writing to path.
func NewResultStore(path string) *ResultStoreImpl {
	return &ResultStoreImpl{path: path, index: make(map[string]int)}
}

// Save records one capture. A later capture of the same suffix replaces the earlier one.
func (s *ResultStoreImpl) Save(_ context.Context, run entity.Run, record *entity.CaptureRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.manifest.Run = run
	suffix := record.Result.Input.Suffix
	if i, ok := s.index[suffix]; ok {
		s.manifest.Captures[i] = record.Result
		return nil
	}
	s.index[suffix] = len(s.manifest.Captures)
	s.manifest.Captures = append(s.manifest.Captures, record.Result)
	return nil
}

// Close writes the manifest file, creating its parent directory.
func (s *ResultStoreImpl) Close(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := yaml.Marshal(&s.manifest)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("%w: %w", repository.ErrFilesystem, err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("%w: writing manifest: %w", repository.ErrFilesystem, err)
	}
	return nil
}

// Package pkg provides utilities shared by latte packages.
package pkg

import (
	"encoding/gob"
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// Spill is an append-only sequence of items that is read back in order.
type Spill[T any] interface {
	Len() uint64
	Append(item T) error
	Range(f func(index uint64, item T) error) error
	Close() error
}

type memorySpill[T any] struct {
	mu    sync.Mutex
	items []T
}

// NewMemorySpill creates a Spill that keeps its items in memory.
func NewMemorySpill[T any]() Spill[T] {
	return &memorySpill[T]{}
}

func (s *memorySpill[T]) Len() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return uint64(len(s.items))
}

func (s *memorySpill[T]) Append(item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append(s.items, item)

	return nil
}

func (s *memorySpill[T]) Range(fn func(index uint64, item T) error) error {
	s.mu.Lock()
	items := append([]T(nil), s.items...)
	s.mu.Unlock()

	for i, item := range items {
		if err := fn(uint64(i), item); err != nil {
			return err
		}
	}

	return nil
}

func (s *memorySpill[T]) Close() error {
	return nil
}

// FileSpill is a Spill backed by a gob stream in a temporary file.
type FileSpill[T any] struct {
	path    string
	file    *os.File
	encoder *gob.Encoder
	mu      sync.Mutex
	length  uint64
}

// NewFileSpill creates a FileSpill in dir. An empty dir means os.TempDir().
func NewFileSpill[T any](dir string) (*FileSpill[T], error) {
	if dir == "" {
		dir = os.TempDir()
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		slog.Error("failed to create spill directory", "path", dir, "error", err)
		return nil, fmt.Errorf("failed to create spill directory: %w", err)
	}

	file, err := os.CreateTemp(dir, "latte-spill-*.gob")
	if err != nil {
		slog.Error("failed to create spill file", "path", dir, "error", err)
		return nil, fmt.Errorf("failed to create spill file: %w", err)
	}

	slog.Debug("created spill", "path", file.Name())

	return &FileSpill[T]{
		path:    file.Name(),
		file:    file,
		encoder: gob.NewEncoder(file),
	}, nil
}

// Path returns the backing file.
func (f *FileSpill[T]) Path() string {
	return f.path
}

// Len implements Spill.
func (f *FileSpill[T]) Len() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.length
}

// Append implements Spill.
func (f *FileSpill[T]) Append(item T) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.file == nil {
		return fmt.Errorf("spill %s is closed", f.path)
	}

	if err := f.encoder.Encode(item); err != nil {
		slog.Error("failed to encode item", "path", f.path, "index", f.length, "error", err)
		return fmt.Errorf("failed to encode item: %w", err)
	}

	f.length++

	return nil
}

// Range implements Spill.
func (f *FileSpill[T]) Range(fn func(index uint64, item T) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	file, err := os.Open(f.path)
	if err != nil {
		slog.Error("failed to open spill for range", "path", f.path, "error", err)
		return fmt.Errorf("failed to open file: %w", err)
	}

	defer func() {
		if err := file.Close(); err != nil {
			slog.Error("failed to close file", "path", f.path, "error", err)
		}
	}()

	decoder := gob.NewDecoder(file)

	for i := range f.length {
		var item T
		if err := decoder.Decode(&item); err != nil {
			slog.Error("failed to decode item during range", "path", f.path, "index", i, "error", err)
			return fmt.Errorf("failed to decode item at index %d: %w", i, err)
		}

		if err := fn(i, item); err != nil {
			return err
		}
	}

	return nil
}

// Close closes and removes the backing file.
func (f *FileSpill[T]) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.file == nil {
		return nil
	}

	if err := f.file.Close(); err != nil {
		slog.Error("failed to close spill", "path", f.path, "error", err)
		return err
	}

	f.file = nil

	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove spill: %w", err)
	}

	slog.Debug("closed spill", "path", f.path, "length", f.length)

	return nil
}

// Package storage persists store snapshots into named durable slots.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/google/renameio/v2"
)

const (
	ProductsSlot = "products"
	CartSlot     = "cart"
)

var (
	ErrSlotNotFound    = errors.New("slot not found")
	ErrInvalidSlotName = errors.New("invalid slot name")
)

var slotName = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Slots is a named key-value storage of serialized collections
type Slots interface {
	Get(ctx context.Context, name string) ([]byte, error)
	Put(ctx context.Context, name string, data []byte) error
}

// FileSlots keeps each slot in <dir>/<name>.json
type FileSlots struct {
	dir string
}

// NewFileSlots creates the directory if needed
func NewFileSlots(dir string) (*FileSlots, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileSlots{dir: dir}, nil
}

func (f *FileSlots) path(name string) (string, error) {
	if !slotName.MatchString(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSlotName, name)
	}
	return filepath.Join(f.dir, name+".json"), nil
}

// Get reads the slot contents
func (f *FileSlots) Get(ctx context.Context, name string) ([]byte, error) {
	p, err := f.path(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot %s: %w", name, err)
	}
	return data, nil
}

// Put atomically replaces the slot; readers see either the old or the new
// contents, never a partial write
func (f *FileSlots) Put(ctx context.Context, name string, data []byte) error {
	p, err := f.path(name)
	if err != nil {
		return err
	}

	if err := renameio.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("failed to write slot %s: %w", name, err)
	}
	return nil
}

// MemorySlots is a map-backed Slots
type MemorySlots struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

func NewMemorySlots() *MemorySlots {
	return &MemorySlots{slots: make(map[string][]byte)}
}

func (m *MemorySlots) Get(ctx context.Context, name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.slots[name]
	if !ok {
		return nil, ErrSlotNotFound
	}
	return append([]byte(nil), data...), nil
}

func (m *MemorySlots) Put(ctx context.Context, name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.slots[name] = append([]byte(nil), data...)
	return nil
}

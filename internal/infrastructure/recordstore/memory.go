package recordstore

import (
	"context"
	"sync"
)

// MemoryStore guarda las tablas en memoria. Se usa en pruebas y en modo demo.
type MemoryStore struct {
	mu     sync.RWMutex
	tables map[string][]Row
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tables: make(map[string][]Row)}
}

func (s *MemoryStore) GetAll(_ context.Context, t Table) ([]Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRows(s.tables[t.Key]), nil
}

func (s *MemoryStore) ReplaceAll(_ context.Context, t Table, rows []Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[t.Key] = cloneRows(rows)
	return nil
}

func (s *MemoryStore) Append(_ context.Context, t Table, rows []Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[t.Key] = append(s.tables[t.Key], cloneRows(rows)...)
	return nil
}

func (s *MemoryStore) AppendBatch(_ context.Context, batches []Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range batches {
		s.tables[b.Table.Key] = append(s.tables[b.Table.Key], cloneRows(b.Rows)...)
	}
	return nil
}

func (s *MemoryStore) Name() string { return "memory" }

func (s *MemoryStore) Close() error { return nil }

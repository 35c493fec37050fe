// Package memory is an in-memory export sink used as the default backend
// and in tests.
package memory

import (
	"context"
	"strconv"
	"sync"

	"grana/internal/core"
	"grana/internal/export"
)

type Store struct {
	mu   sync.Mutex
	rows []core.Transaction
}

var (
	_ export.TransactionAppender = (*Store)(nil)
	_ export.TransactionDeleter  = (*Store)(nil)
)

func New() *Store {
	return &Store{}
}

// Append stores the transaction and returns its 1-based row index.
func (s *Store) Append(ctx context.Context, t core.Transaction) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, t)
	return strconv.Itoa(len(s.rows)), nil
}

// Delete removes the first row matching the transaction's ID.
func (s *Store) Delete(ctx context.Context, t core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, row := range s.rows {
		if row.ID == t.ID {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

// Rows returns a copy of everything appended so far.
func (s *Store) Rows() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, len(s.rows))
	copy(out, s.rows)
	return out
}

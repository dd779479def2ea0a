package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/jconover/k8s-microservices-platform/internal/history"
)

// HistoryRepository is an in-memory recent-history ledger with the same
// append-and-truncate semantics as the redis list, used by tests.
type HistoryRepository struct {
	mu      sync.RWMutex
	entries [][]byte
}

func NewHistoryRepository() *HistoryRepository {
	return &HistoryRepository{}
}

func (r *HistoryRepository) Append(ctx context.Context, message []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := make([]byte, len(message))
	copy(entry, message)

	r.entries = append([][]byte{entry}, r.entries...)
	if len(r.entries) > history.Cap {
		r.entries = r.entries[:history.Cap]
	}

	return nil
}

func (r *HistoryRepository) Recent(ctx context.Context, limit int) ([]json.RawMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit > len(r.entries) {
		limit = len(r.entries)
	}

	messages := make([]json.RawMessage, 0, limit)
	for _, entry := range r.entries[:limit] {
		messages = append(messages, json.RawMessage(entry))
	}

	return messages, nil
}

func (r *HistoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}

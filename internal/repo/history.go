package repo

import (
	"context"
	"encoding/json"
)

// HistoryRepository is the bounded most-recent-N ledger of processed
// notifications. Append trims the ledger to its cap; Recent returns up to
// limit entries, newest first.
type HistoryRepository interface {
	Append(ctx context.Context, message []byte) error
	Recent(ctx context.Context, limit int) ([]json.RawMessage, error)
}

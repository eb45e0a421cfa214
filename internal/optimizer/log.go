// internal/optimizer/log.go
package optimizer

import (
	"context"
	"sync"

	"adpulse/internal/interfaces"
	"adpulse/internal/models"
)

// RecommendationLog is the append-only per-campaign audit trail of batch
// recommendations. Entries are never deleted; MarkApplied is the only
// mutation and flips an entry's Applied flag exactly once.
type RecommendationLog interface {
	Append(ctx context.Context, campaignID string, recs []models.Recommendation) error
	List(ctx context.Context, campaignID string) ([]models.Recommendation, error)
	// MarkApplied flips entry index to applied. It returns a ValidationError
	// for an out-of-range index and ErrAlreadyApplied if the entry was
	// already acted on.
	MarkApplied(ctx context.Context, campaignID string, index int) error
}

// ErrAlreadyApplied reports a second apply of the same log entry.
var ErrAlreadyApplied = &interfaces.ValidationError{
	Field:   "index",
	Message: "recommendation already applied",
}

// MemoryLog is the default in-process RecommendationLog.
type MemoryLog struct {
	mu   sync.RWMutex
	recs map[string][]models.Recommendation
}

func NewMemoryLog() *MemoryLog {
	return &MemoryLog{recs: make(map[string][]models.Recommendation)}
}

func (l *MemoryLog) Append(ctx context.Context, campaignID string, recs []models.Recommendation) error {
	if len(recs) == 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.recs[campaignID] = append(l.recs[campaignID], recs...)
	return nil
}

func (l *MemoryLog) List(ctx context.Context, campaignID string) ([]models.Recommendation, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.Recommendation, len(l.recs[campaignID]))
	copy(out, l.recs[campaignID])
	return out, nil
}

func (l *MemoryLog) MarkApplied(ctx context.Context, campaignID string, index int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	entries := l.recs[campaignID]
	if index < 0 || index >= len(entries) {
		return &interfaces.ValidationError{Field: "index", Message: "recommendation index out of range"}
	}
	if entries[index].Applied {
		return ErrAlreadyApplied
	}
	entries[index].Applied = true
	return nil
}

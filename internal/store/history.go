package store

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// History is the evaluation history: canonical "expression = result"
// records, most recent first. Dedup is exact string match on the full
// record.
type History struct {
	*Store
}

// NewHistory creates the history store persisted under key.
func NewHistory(key string, capacity int, loader Loader, saver Saver, logger *zap.Logger) *History {
	return &History{Store: New(Config{
		Key:      key,
		Capacity: capacity,
		Loader:   loader,
		Saver:    saver,
		Logger:   logger,
	})}
}

// Record adds the canonical record for a successful evaluation.
// An empty expression records nothing.
func (h *History) Record(expression, result string) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return
	}
	h.Add(fmt.Sprintf("%s = %s", expression, result))
}

package store

import (
	"strings"

	"go.uber.org/zap"
)

// Formulas holds saved raw expressions, independent of evaluation.
// Items are stored whitespace-trimmed and deduplicated on the trimmed
// text.
type Formulas struct {
	*Store
}

// NewFormulas creates the saved-formula store persisted under key.
func NewFormulas(key string, capacity int, loader Loader, saver Saver, logger *zap.Logger) *Formulas {
	return &Formulas{Store: New(Config{
		Key:      key,
		Capacity: capacity,
		Canon:    strings.TrimSpace,
		Loader:   loader,
		Saver:    saver,
		Logger:   logger,
	})}
}

// Save adds the trimmed expression. Blank input is a no-op.
func (f *Formulas) Save(raw string) {
	f.Add(strings.TrimSpace(raw))
}

package persist

import "context"

// Keys under which the calculator's record lists are persisted.
const (
	HistoryKey  = "history"
	FormulasKey = "saved_formulas"
)

// Gateway is the key to string-list persistence boundary. Load returns
// an empty list for an absent key. Save replaces the list for a key.
type Gateway interface {
	Load(ctx context.Context, key string) ([]string, error)
	Save(ctx context.Context, key string, values []string) error
}

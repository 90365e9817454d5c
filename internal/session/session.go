// Package session ties the calculator core into the single surface the
// presentation layer talks to.
//
// A Session owns the expression buffer, the displayed result, and the
// two persisted record lists. Every mutating operation commits under
// the session lock and then fires the event topic it changed, so the
// UI can re-read the observable state it renders. Evaluation is atomic
// from the caller's perspective. The session is designed for one
// logical caller; the lock exists so the persistence watcher's reload
// callback cannot race the UI goroutine.
package session

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/dshills/tally/internal/event"
	"github.com/dshills/tally/internal/eval"
	"github.com/dshills/tally/internal/expr"
	"github.com/dshills/tally/internal/persist"
	"github.com/dshills/tally/internal/store"
)

// ErrorResult is the display value for a failed evaluation. The typed
// failure stays available through EvalErr.
const ErrorResult = "Error"

// Options configures a Session.
type Options struct {
	// HistoryCapacity caps the evaluation history; store default if 0.
	HistoryCapacity int

	// FormulaCapacity caps the saved formulas; store default if 0.
	FormulaCapacity int

	// Loader populates the stores at session start. Optional.
	Loader store.Loader

	// Saver receives store snapshots after mutations. Optional.
	Saver store.Saver

	// Logger records swallowed persistence failures. Optional.
	Logger *zap.Logger
}

// Session is the non-visual calculator: buffer, evaluator, history,
// and saved formulas behind one operation set.
type Session struct {
	mu       sync.Mutex
	state    expr.State
	result   string
	evalErr  error
	history  *store.History
	formulas *store.Formulas
	notifier *event.Notifier
	logger   *zap.Logger
}

// New creates a session. Call Start once to load the persisted lists.
func New(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		history:  store.NewHistory(persist.HistoryKey, opts.HistoryCapacity, opts.Loader, opts.Saver, logger),
		formulas: store.NewFormulas(persist.FormulasKey, opts.FormulaCapacity, opts.Loader, opts.Saver, logger),
		notifier: event.NewNotifier(),
		logger:   logger,
	}
}

// Start populates both stores from persistence. Load failures are
// logged and leave the lists empty; they never fail the session.
func (s *Session) Start(ctx context.Context) {
	s.history.Load(ctx)
	s.formulas.Load(ctx)
	s.notifier.Notify(event.TopicHistory)
	s.notifier.Notify(event.TopicFormulas)
}

// Reload re-pulls both stores, typically after the persistence file
// changed externally.
func (s *Session) Reload(ctx context.Context) {
	s.Start(ctx)
}

// Notifier exposes the session's change notifications.
func (s *Session) Notifier() *event.Notifier {
	return s.notifier
}

// State returns the current expression buffer snapshot.
func (s *Session) State() expr.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Result returns the displayed result: a formatted number, ErrorResult,
// or "" when nothing has been evaluated.
func (s *Session) Result() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// EvalErr returns the typed failure behind an ErrorResult display, nil
// otherwise. Distinguish kinds with errors.Is against eval.ErrSyntax
// and eval.ErrDivideByZero.
func (s *Session) EvalErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evalErr
}

// History returns the evaluation history, most recent first.
func (s *Session) History() []string {
	return s.history.Items()
}

// Formulas returns the saved formulas, most recent first.
func (s *Session) Formulas() []string {
	return s.formulas.Items()
}

// InsertText splices fragment in at the cursor.
func (s *Session) InsertText(fragment string) {
	s.mu.Lock()
	s.state = s.state.Insert(fragment)
	s.mu.Unlock()

	s.notifier.Notify(event.TopicExpression)
}

// DeleteBefore removes the rune before the cursor.
func (s *Session) DeleteBefore() {
	s.mu.Lock()
	s.state = s.state.DeleteBefore()
	s.mu.Unlock()

	s.notifier.Notify(event.TopicExpression)
}

// MoveCursorLeft moves the cursor one rune left.
func (s *Session) MoveCursorLeft() {
	s.mu.Lock()
	s.state = s.state.MoveLeft()
	s.mu.Unlock()

	s.notifier.Notify(event.TopicExpression)
}

// MoveCursorRight moves the cursor one rune right.
func (s *Session) MoveCursorRight() {
	s.mu.Lock()
	s.state = s.state.MoveRight()
	s.mu.Unlock()

	s.notifier.Notify(event.TopicExpression)
}

// ClearExpression empties the buffer and the displayed result.
func (s *Session) ClearExpression() {
	s.mu.Lock()
	s.state = expr.Clear()
	s.result = ""
	s.evalErr = nil
	s.mu.Unlock()

	s.notifier.Notify(event.TopicExpression)
	s.notifier.Notify(event.TopicResult)
}

// LoadFormula replaces the buffer with text, places the cursor at the
// end, and clears the result.
func (s *Session) LoadFormula(text string) {
	s.mu.Lock()
	s.state = expr.State{Text: text}.MoveEnd()
	s.result = ""
	s.evalErr = nil
	s.mu.Unlock()

	s.notifier.Notify(event.TopicExpression)
	s.notifier.Notify(event.TopicResult)
}

// Evaluate runs the evaluator on the buffer text. On success the result
// becomes the formatted value and exactly one history record is added
// (repeats deduplicate to none). On failure the result is ErrorResult,
// the typed error is retained, and nothing is recorded.
func (s *Session) Evaluate() {
	s.mu.Lock()
	raw := s.state.Text

	v, err := eval.Evaluate(raw)
	if err != nil {
		s.result = ErrorResult
		s.evalErr = err
		s.mu.Unlock()

		s.notifier.Notify(event.TopicResult)
		return
	}

	formatted := eval.Format(v)
	s.result = formatted
	s.evalErr = nil
	s.history.Record(raw, formatted)
	s.mu.Unlock()

	s.notifier.Notify(event.TopicResult)
	s.notifier.Notify(event.TopicHistory)
}

// SaveCurrentFormula saves the buffer text as a formula. Blank text
// performs no mutation and issues no persistence write.
func (s *Session) SaveCurrentFormula() {
	s.mu.Lock()
	raw := s.state.Text
	s.mu.Unlock()

	if strings.TrimSpace(raw) == "" {
		return
	}
	s.formulas.Save(raw)
	s.notifier.Notify(event.TopicFormulas)
}

// RemoveSavedFormulaAt deletes the formula at index; out of range is a
// no-op.
func (s *Session) RemoveSavedFormulaAt(index int) {
	s.formulas.RemoveAt(index)
	s.notifier.Notify(event.TopicFormulas)
}

// ClearSavedFormulas empties the saved-formula list.
func (s *Session) ClearSavedFormulas() {
	s.formulas.Clear()
	s.notifier.Notify(event.TopicFormulas)
}

// ClearHistory empties the evaluation history.
func (s *Session) ClearHistory() {
	s.history.Clear()
	s.notifier.Notify(event.TopicHistory)
}
